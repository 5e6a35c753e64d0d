package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"repo-summarizer/internal"
	"repo-summarizer/internal/cli"
	"repo-summarizer/internal/config"
	"repo-summarizer/internal/logger"
)

func main() {
	// Parse command-line arguments
	args, err := cli.Parse()
	if err != nil {
		log.Fatalf("Failed to parse arguments: %v", err)
	}

	// Handle help flag
	if args.ShowHelp {
		cli.ShowUsage()
		os.Exit(0)
	}

	if args.RepoURL == "" {
		log.Fatalf("a repository URL is required\n\nTry:\n  rsum --repo-url <url>\n\nOr run 'rsum --help' for more information")
	}

	// Context-only runs never call the model, so model configuration is not required
	needsModel := !args.ContextOnly

	// Load configuration from environment variables
	cfg, err := config.Load(needsModel)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Setup logging
	logger.Setup(cfg)

	// Create the summarizer pipeline
	summarizer, err := internal.New(cfg, needsModel)
	if err != nil {
		log.Fatalf("Failed to create summarizer: %v", err)
	}

	ctx := context.Background()

	var output string
	if args.ContextOnly {
		output, err = summarizer.BuildContextOnly(ctx, args.RepoURL)
		if err != nil {
			log.Fatalf("Failed to build repository context: %v", err)
		}
	} else {
		output, err = summarizer.Summarize(ctx, args.RepoURL)
		if err != nil {
			log.Fatalf("Failed to summarize repository: %v", err)
		}
	}

	// Print to stdout (user can redirect to file if needed)
	fmt.Print(output)
}
