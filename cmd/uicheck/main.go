package main

import (
	"flag"
	"log"
	"os"

	"dev/bravebird/ui-check-go/pkg/browser"
	"dev/bravebird/ui-check-go/pkg/checks"
	"dev/bravebird/ui-check-go/pkg/config"
	"dev/bravebird/ui-check-go/pkg/models"
)

// One-shot runner: executes the theme suite against TARGET_URL and exits
// nonzero if any check fails.
func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	suiteName := flag.String("suite", "theme-toggle", "suite to run")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	suite, ok := findSuite(cfg, *suiteName)
	if !ok {
		log.Fatalf("Unknown suite: %s", *suiteName)
	}

	session, err := browser.Launch(browser.Options{
		Headless:  cfg.Headless,
		ChromeBin: cfg.ChromeBin,
	})
	if err != nil {
		log.Fatalf("Failed to launch browser: %v", err)
	}
	defer session.Close()

	runner := checks.NewRunner(session, suite.TargetURL)
	results, status := runner.RunSuite(suite)

	for _, result := range results {
		switch {
		case result.ErrorMessage != "":
			log.Printf("[%d] %s: %s (%s)", result.SequenceID, result.Type, result.Status, result.ErrorMessage)
		case result.Expected != "":
			log.Printf("[%d] %s: %s (expected %s, observed %s)", result.SequenceID, result.Type, result.Status, result.Expected, result.Observed)
		default:
			log.Printf("[%d] %s: %s", result.SequenceID, result.Type, result.Status)
		}
	}

	log.Printf("Suite %s: %s", suite.Name, status)
	if status != models.StatusPassed {
		os.Exit(1)
	}
}

func findSuite(cfg *config.Config, name string) (models.CheckSuite, bool) {
	theme := checks.ThemeSuite(cfg.TargetURL)
	if name == theme.Name {
		return theme, true
	}
	for _, suite := range cfg.Suites {
		if suite.Name == name {
			return suite, true
		}
	}
	return models.CheckSuite{}, false
}
