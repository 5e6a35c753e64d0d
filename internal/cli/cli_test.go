package cli

import (
	"flag"
	"os"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		check func(*testing.T, *Args)
	}{
		{
			name: "help flag",
			args: []string{"cmd", "--help"},
			check: func(t *testing.T, args *Args) {
				if !args.ShowHelp {
					t.Error("ShowHelp should be true")
				}
			},
		},
		{
			name: "help shorthand",
			args: []string{"cmd", "-h"},
			check: func(t *testing.T, args *Args) {
				if !args.ShowHelp {
					t.Error("ShowHelp should be true")
				}
			},
		},
		{
			name: "repo URL flag",
			args: []string{"cmd", "--repo-url", "https://github.com/org/repo"},
			check: func(t *testing.T, args *Args) {
				if args.RepoURL != "https://github.com/org/repo" {
					t.Errorf("RepoURL = %v", args.RepoURL)
				}
				if args.ContextOnly {
					t.Error("ContextOnly should default to false")
				}
			},
		},
		{
			name: "repo URL shorthand",
			args: []string{"cmd", "-r", "https://github.com/org/repo"},
			check: func(t *testing.T, args *Args) {
				if args.RepoURL != "https://github.com/org/repo" {
					t.Errorf("RepoURL = %v", args.RepoURL)
				}
			},
		},
		{
			name: "positional repo URL",
			args: []string{"cmd", "https://gitlab.com/group/project"},
			check: func(t *testing.T, args *Args) {
				if args.RepoURL != "https://gitlab.com/group/project" {
					t.Errorf("RepoURL = %v", args.RepoURL)
				}
			},
		},
		{
			name: "flag wins over positional",
			args: []string{"cmd", "--repo-url", "https://github.com/a/b", "https://github.com/c/d"},
			check: func(t *testing.T, args *Args) {
				if args.RepoURL != "https://github.com/a/b" {
					t.Errorf("RepoURL = %v", args.RepoURL)
				}
			},
		},
		{
			name: "context-only mode",
			args: []string{"cmd", "--context-only", "--repo-url", "https://github.com/org/repo"},
			check: func(t *testing.T, args *Args) {
				if !args.ContextOnly {
					t.Error("ContextOnly should be true")
				}
			},
		},
		{
			name: "context-only shorthand",
			args: []string{"cmd", "-C", "https://github.com/org/repo"},
			check: func(t *testing.T, args *Args) {
				if !args.ContextOnly {
					t.Error("ContextOnly should be true")
				}
				if args.RepoURL != "https://github.com/org/repo" {
					t.Errorf("RepoURL = %v", args.RepoURL)
				}
			},
		},
		{
			name: "no arguments",
			args: []string{"cmd"},
			check: func(t *testing.T, args *Args) {
				if args.RepoURL != "" {
					t.Errorf("RepoURL = %v, expected empty", args.RepoURL)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Reset flag.CommandLine for each test
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ContinueOnError)

			// Save and restore os.Args
			oldArgs := os.Args
			defer func() { os.Args = oldArgs }()
			os.Args = tt.args

			args, err := Parse()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tt.check(t, args)
		})
	}
}
