package internal

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"repo-summarizer/internal/audit"
	"repo-summarizer/internal/config"
	"repo-summarizer/internal/engine"
	"repo-summarizer/internal/git/github"
	"repo-summarizer/internal/git/gitlab"
	"repo-summarizer/internal/git/types"
	"repo-summarizer/internal/llm"
	"repo-summarizer/internal/llm/providers"
	"repo-summarizer/internal/report"
)

// Summarizer wires the repository fetchers, the context engine, the LLM
// client, and the audit trail into the two pipeline modes.
type Summarizer struct {
	fetchers  []types.RepoFetcher
	llmClient providers.LLMClient
	config    *config.Config
	engineCfg *engine.Config
	audit     *audit.Logger
	dlq       *audit.DLQ
}

// New creates a Summarizer. The LLM client is only constructed when withModel
// is set; context-only runs never touch a provider.
func New(cfg *config.Config, withModel bool) (*Summarizer, error) {
	gitlabClient, err := gitlab.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitLab client: %w", err)
	}

	engineCfg, err := engine.LoadConfig(cfg.EngineConfigFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load engine configuration: %w", err)
	}
	engineCfg.TotalLimit = cfg.ContextLimitChars
	engineCfg.PerFileCap = cfg.PerFileCapChars

	s := &Summarizer{
		fetchers: []types.RepoFetcher{
			github.NewFetcher(cfg),
			gitlab.NewFetcher(gitlabClient, cfg),
		},
		config:    cfg,
		engineCfg: engineCfg,
		audit:     audit.NewLogger(cfg.AuditLogPath),
		dlq:       audit.NewDLQ(cfg.DLQPath),
	}

	if withModel {
		llmClient, err := providers.NewClient(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create LLM client: %w", err)
		}
		s.llmClient = llmClient
	}

	return s, nil
}

// BuildContextOnly fetches the repository and returns the rendered context
// blob without calling the LLM
func (s *Summarizer) BuildContextOnly(ctx context.Context, repoURL string) (string, error) {
	correlationID := uuid.NewString()
	s.audit.Log("api_request", "build_context", "call", "started", correlationID, map[string]interface{}{
		"repo_url": repoURL,
	})

	snapshot, err := s.fetchSnapshot(ctx, correlationID, repoURL)
	if err != nil {
		return "", err
	}

	blob := s.buildContext(correlationID, snapshot)

	s.audit.Log("api_request", "build_context", "call", "success", correlationID, map[string]interface{}{
		"repo_url":       repoURL,
		"context_chars":  len(blob.Text),
		"included_count": blob.IncludedCount,
	})

	return blob.Text, nil
}

// Summarize runs the full pipeline: fetch, build context, summarize with the
// LLM, and render the markdown report
func (s *Summarizer) Summarize(ctx context.Context, repoURL string) (string, error) {
	if s.llmClient == nil {
		return "", fmt.Errorf("no LLM client configured")
	}

	correlationID := uuid.NewString()
	s.audit.Log("api_request", "summarize", "call", "started", correlationID, map[string]interface{}{
		"repo_url": repoURL,
	})

	snapshot, err := s.fetchSnapshot(ctx, correlationID, repoURL)
	if err != nil {
		return "", err
	}

	start := time.Now()
	summary, blob, err := llm.SummarizeWithShrinkingBudget(s.llmClient, snapshot.Files, s.engineCfg)
	if err != nil {
		s.audit.LogStep(correlationID, audit.Step{
			Index:  2,
			Name:   "summarize_repo",
			Result: "failure",
			ErrorDetail: map[string]interface{}{
				"message": err.Error(),
				"where":   "llm.SummarizeWithShrinkingBudget",
			},
			Duration: time.Since(start),
		})
		s.dlq.Write(correlationID, "summarize_repo",
			map[string]interface{}{"repo_url": repoURL},
			map[string]interface{}{"message": err.Error()})
		return "", fmt.Errorf("failed to summarize repository: %w", err)
	}

	s.audit.LogStep(correlationID, audit.Step{
		Index:  2,
		Name:   "summarize_repo",
		Result: "success",
		OutputSummary: map[string]interface{}{
			"summary_chars": len(summary.Summary),
			"technologies":  len(summary.Technologies),
		},
		Duration: time.Since(start),
	})

	repoName := snapshot.Ref.Owner + "/" + snapshot.Ref.Name
	reportText, err := report.Generate(repoName, summary, blob, &report.Metadata{
		ModelID:        s.config.ModelID,
		GenerationTime: time.Now(),
	})
	if err != nil {
		s.audit.LogStep(correlationID, audit.Step{
			Index:  3,
			Name:   "render_report",
			Result: "failure",
			ErrorDetail: map[string]interface{}{
				"message": err.Error(),
				"where":   "report.Generate",
			},
		})
		return "", fmt.Errorf("failed to generate report: %w", err)
	}

	s.audit.LogStep(correlationID, audit.Step{
		Index:  3,
		Name:   "render_report",
		Result: "success",
		OutputSummary: map[string]interface{}{
			"report_chars": len(reportText),
		},
	})

	s.audit.Log("api_request", "summarize", "call", "success", correlationID, map[string]interface{}{
		"repo_url":       repoURL,
		"report_chars":   len(reportText),
		"included_count": blob.IncludedCount,
		"omitted_count":  blob.OmittedCount,
	})

	return reportText, nil
}

// fetchSnapshot resolves the fetcher for the URL and materializes the
// repository snapshot, recording the step in the audit trail
func (s *Summarizer) fetchSnapshot(ctx context.Context, correlationID, repoURL string) (*types.Snapshot, error) {
	fetcher, err := s.resolveFetcher(repoURL)
	if err != nil {
		s.audit.LogStep(correlationID, audit.Step{
			Index:  1,
			Name:   "fetch_snapshot",
			Result: "failure",
			ErrorDetail: map[string]interface{}{
				"message": err.Error(),
				"where":   "Summarizer.resolveFetcher",
			},
		})
		return nil, err
	}

	slog.Debug("Fetching repository snapshot", "platform", fetcher.Name(), "url", repoURL)

	start := time.Now()
	snapshot, err := fetcher.FetchSnapshot(ctx, repoURL)
	if err != nil {
		s.audit.LogStep(correlationID, audit.Step{
			Index:  1,
			Name:   "fetch_snapshot",
			Result: "failure",
			InputSummary: map[string]interface{}{
				"repo_url": repoURL,
				"platform": fetcher.Name(),
			},
			ErrorDetail: map[string]interface{}{
				"message": err.Error(),
				"where":   fetcher.Name() + ".FetchSnapshot",
			},
			Duration: time.Since(start),
		})
		s.dlq.Write(correlationID, "fetch_snapshot",
			map[string]interface{}{"repo_url": repoURL},
			map[string]interface{}{"message": err.Error()})
		return nil, fmt.Errorf("failed to fetch repository: %w", err)
	}

	s.audit.LogStep(correlationID, audit.Step{
		Index:  1,
		Name:   "fetch_snapshot",
		Result: "success",
		InputSummary: map[string]interface{}{
			"repo_url": repoURL,
			"platform": fetcher.Name(),
		},
		OutputSummary: map[string]interface{}{
			"file_count": len(snapshot.Files),
			"truncated":  snapshot.Truncated,
		},
		Duration: time.Since(start),
	})

	return snapshot, nil
}

// buildContext runs the deterministic context engine over the snapshot
func (s *Summarizer) buildContext(correlationID string, snapshot *types.Snapshot) *engine.Blob {
	start := time.Now()
	blob := engine.BuildContext(snapshot.Files, s.engineCfg)

	s.audit.LogStep(correlationID, audit.Step{
		Index:  2,
		Name:   "build_context",
		Result: "success",
		OutputSummary: map[string]interface{}{
			"context_chars":   len(blob.Text),
			"included_count":  blob.IncludedCount,
			"truncated_count": blob.TruncatedCount,
			"omitted_count":   blob.OmittedCount,
		},
		Duration: time.Since(start),
	})

	return blob
}

func (s *Summarizer) resolveFetcher(repoURL string) (types.RepoFetcher, error) {
	for _, fetcher := range s.fetchers {
		if fetcher.IsRepoURL(repoURL) {
			return fetcher, nil
		}
	}
	return nil, fmt.Errorf("unsupported repository URL: %s", repoURL)
}
