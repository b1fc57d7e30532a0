package main

import (
	"flag"
	"log"

	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"

	"dev/bravebird/ui-check-go/pkg/api"
	"dev/bravebird/ui-check-go/pkg/config"
	"dev/bravebird/ui-check-go/pkg/database"
	"dev/bravebird/ui-check-go/pkg/temporal/activities"
	"dev/bravebird/ui-check-go/pkg/temporal/workflows"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	c, err := client.Dial(client.Options{
		HostPort: cfg.TemporalHost,
	})
	if err != nil {
		log.Fatalf("Failed to create Temporal client: %v", err)
	}
	defer c.Close()

	db, err := database.New(cfg.MySQLDSN)
	if err != nil {
		log.Printf("Warning: Failed to connect to database: %v", err)
		log.Println("Running without result recording")
		db = nil
	}
	if db != nil {
		defer db.Close()
	}

	acts := activities.NewActivities(db, cfg.ScreenshotDir, cfg.ChromeBin)

	w := worker.New(c, api.TaskQueue, worker.Options{
		// One browser per suite run; keep concurrent Chrome instances bounded
		MaxConcurrentActivityExecutionSize:     5,
		MaxConcurrentWorkflowTaskExecutionSize: 10,
	})

	w.RegisterWorkflow(workflows.UICheckWorkflow)

	w.RegisterActivity(acts.InitializeBrowserActivity)
	w.RegisterActivity(acts.CloseBrowserActivity)
	w.RegisterActivity(acts.RunCheckActivity)
	w.RegisterActivity(acts.TakeScreenshotActivity)
	w.RegisterActivity(acts.RecordResultsActivity)

	log.Printf("Starting Temporal worker on task queue: %s", api.TaskQueue)
	log.Printf("Temporal host: %s", cfg.TemporalHost)

	err = w.Run(worker.InterruptCh())
	if err != nil {
		log.Fatalf("Worker failed: %v", err)
	}
}
