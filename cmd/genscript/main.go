package main

import (
	"flag"
	"log"
	"os"

	"dev/bravebird/ui-check-go/pkg/checks"
	"dev/bravebird/ui-check-go/pkg/config"
	"dev/bravebird/ui-check-go/pkg/models"
)

// Renders a suite as a standalone go-rod program for debugging outside the
// service: go run generated_check.go
func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	suiteName := flag.String("suite", "theme-toggle", "suite to render")
	outPath := flag.String("o", "generated_check.go", "output file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	var suite models.CheckSuite
	theme := checks.ThemeSuite(cfg.TargetURL)
	if *suiteName == theme.Name {
		suite = theme
	} else {
		found := false
		for _, s := range cfg.Suites {
			if s.Name == *suiteName {
				suite = s
				found = true
				break
			}
		}
		if !found {
			log.Fatalf("Unknown suite: %s", *suiteName)
		}
	}

	script := checks.GenerateRodScript(suite)

	if err := os.WriteFile(*outPath, []byte(script), 0644); err != nil {
		log.Fatalf("Failed to write script: %v", err)
	}

	log.Printf("Generated rod script for suite %s: %s", suite.Name, *outPath)
}
