// coachctl is a small CLI for exercising the coach backend, mirroring the
// calls a dashboard frontend makes.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"coach-backend/pkg/client"

	"github.com/google/uuid"
)

func usage() {
	fmt.Fprintf(os.Stderr, `usage: coachctl [-addr URL] <command> [args]

commands:
  recommend -gp <gp_id> -product <product_type>
  train [-dataset <path>]
  status <run_id>
  topics
  health
`)
	os.Exit(2)
}

func main() {
	addr := flag.String("addr", "http://localhost:5000", "backend base URL")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
	}

	c := client.New(*addr)
	ctx := context.Background()

	switch flag.Arg(0) {
	case "recommend":
		fs := flag.NewFlagSet("recommend", flag.ExitOnError)
		gp := fs.String("gp", "", "GP id")
		product := fs.String("product", "", "product type")
		_ = fs.Parse(flag.Args()[1:])
		if *gp == "" || *product == "" {
			log.Fatal("recommend requires -gp and -product")
		}
		rec, err := c.Recommend(ctx, *gp, *product)
		exitOn(err)
		printJSON(rec)

	case "train":
		fs := flag.NewFlagSet("train", flag.ExitOnError)
		datasetPath := fs.String("dataset", "", "dataset path on the server (optional)")
		_ = fs.Parse(flag.Args()[1:])
		res, err := c.SubmitTraining(ctx, *datasetPath)
		exitOn(err)
		printJSON(res)

	case "status":
		if flag.NArg() < 2 {
			log.Fatal("status requires a run id")
		}
		runId, err := uuid.Parse(flag.Arg(1))
		exitOn(err)
		run, err := c.GetTrainingRun(ctx, runId)
		exitOn(err)
		printJSON(run)

	case "topics":
		topics, err := c.Topics(ctx)
		exitOn(err)
		printJSON(topics)

	case "health":
		health, err := c.Health(ctx)
		exitOn(err)
		printJSON(health)

	default:
		usage()
	}
}

func exitOn(err error) {
	if err != nil {
		log.Fatal(err)
	}
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	exitOn(err)
	fmt.Println(string(out))
}
