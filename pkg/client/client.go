// Package client is a typed HTTP client for the coach backend, used by the
// CLI and by frontends that render recommendations.
package client

import (
	"context"
	"fmt"

	"coach-backend/pkg/api"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

type Client struct {
	http *resty.Client
}

func New(baseURL string) *Client {
	return &Client{
		http: resty.New().SetBaseURL(baseURL),
	}
}

func (c *Client) Recommend(ctx context.Context, gpID, productType string) (api.Recommendation, error) {
	var out api.Recommendation
	err := c.post(ctx, "/recommend", api.RecommendRequest{GPId: gpID, ProductType: productType}, &out)
	return out, err
}

func (c *Client) SubmitTraining(ctx context.Context, datasetPath string) (api.TrainSubmitResponse, error) {
	var out api.TrainSubmitResponse
	err := c.post(ctx, "/train", api.TrainRequest{DatasetPath: datasetPath}, &out)
	return out, err
}

func (c *Client) GetTrainingRun(ctx context.Context, runId uuid.UUID) (api.TrainingRun, error) {
	var out api.TrainingRun
	err := c.get(ctx, "/train/"+runId.String(), &out)
	return out, err
}

func (c *Client) Topics(ctx context.Context) (api.TopicsResponse, error) {
	var out api.TopicsResponse
	err := c.get(ctx, "/topics", &out)
	return out, err
}

func (c *Client) Health(ctx context.Context) (api.HealthResponse, error) {
	var out api.HealthResponse
	err := c.get(ctx, "/health", &out)
	return out, err
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	res, err := c.http.R().SetContext(ctx).SetBody(body).SetResult(out).Post(path)
	return checkResponse(res, err, path)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	res, err := c.http.R().SetContext(ctx).SetResult(out).Get(path)
	return checkResponse(res, err, path)
}

func checkResponse(res *resty.Response, err error, path string) error {
	if err != nil {
		return fmt.Errorf("calling %s: %w", path, err)
	}
	if res.IsError() {
		return fmt.Errorf("calling %s: status %d: %s", path, res.StatusCode(), res.String())
	}
	return nil
}
