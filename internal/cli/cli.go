package cli

import (
	"flag"
	"fmt"
)

// Args holds the parsed command-line arguments
type Args struct {
	RepoURL     string
	ContextOnly bool
	ShowHelp    bool
}

// Parse parses command-line arguments
func Parse() (*Args, error) {
	args := &Args{}

	// Define flags with both long and short forms
	flag.StringVar(&args.RepoURL, "repo-url", "", "GitHub or GitLab repository URL to summarize")
	flag.StringVar(&args.RepoURL, "r", "", "Repository URL (shorthand)")

	flag.BoolVar(&args.ContextOnly, "context-only", false, "Print the assembled repository context instead of calling the LLM")
	flag.BoolVar(&args.ContextOnly, "C", false, "Context-only mode (shorthand)")

	flag.BoolVar(&args.ShowHelp, "help", false, "Show help message")
	flag.BoolVar(&args.ShowHelp, "h", false, "Show help message (shorthand)")

	flag.Parse()

	// The URL may also be given as the single positional argument
	if args.RepoURL == "" && flag.NArg() > 0 {
		args.RepoURL = flag.Arg(0)
	}

	return args, nil
}

// ShowUsage displays usage information
func ShowUsage() {
	fmt.Println(`Repo Summarizer - LLM-backed repository summaries

USAGE:
  rsum --repo-url <url>
  rsum <url>

FLAGS:
  -r, --repo-url <url>     GitHub or GitLab repository URL
  -C, --context-only       Print the assembled context instead of calling the LLM
  -h, --help               Show this help message

EXAMPLES:
  # Summarize a repository
  rsum --repo-url "https://github.com/org/repo"
  rsum https://gitlab.com/group/project

  # Inspect the context that would be sent to the model
  rsum --context-only --repo-url "https://github.com/org/repo"

CONFIGURATION:
  All configuration is set via RSUM_* environment variables.
  See .env.example for all available options.`)
}
