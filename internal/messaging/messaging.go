package messaging

import (
	"context"

	"github.com/google/uuid"
)

const TrainQueue = "train_queue"

type Task interface {
	Type() string

	Payload() []byte

	Ack() error

	Nack() error
}

// TrainTaskPayload asks the worker to retrain the model and store the
// artifact under ModelKey.
type TrainTaskPayload struct {
	RunId       uuid.UUID
	DatasetPath string
	ModelKey    string
}

type Publisher interface {
	PublishTrainTask(ctx context.Context, payload TrainTaskPayload) error

	Close()
}

type Receiver interface {
	Tasks() <-chan Task

	Close()
}
