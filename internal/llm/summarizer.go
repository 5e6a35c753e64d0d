package llm

import (
	stderrors "errors"
	"fmt"
	"log/slog"

	"repo-summarizer/internal/engine"
	"repo-summarizer/internal/git/types"
	llmerrors "repo-summarizer/internal/llm/errors"
	"repo-summarizer/internal/llm/prompts/user"
	"repo-summarizer/internal/llm/providers"
)

// budgetFractions are the progressively smaller context budgets tried after
// the provider rejects a prompt for exceeding its context window. Each retry
// is a fresh full engine pass at the reduced limit, so results stay
// deterministic for a given snapshot and budget.
var budgetFractions = []float64{0.5, 0.25, 0.1}

// SummarizeWithShrinkingBudget builds the repository context, submits it to
// the LLM, and on context window errors rebuilds at smaller budgets before
// retrying. Returns the parsed summary and the context blob that produced it.
func SummarizeWithShrinkingBudget(
	client providers.LLMClient,
	files []types.RepoFile,
	engineCfg *engine.Config,
) (*Summary, *engine.Blob, error) {
	blob := engine.BuildContext(files, engineCfg)

	response, err := submit(client, blob)
	if err == nil {
		return ParseSummary(response), blob, nil
	}

	var cwErr *llmerrors.ContextWindowError
	if !stderrors.As(err, &cwErr) {
		return nil, nil, fmt.Errorf("failed to summarize repository: %w", err)
	}

	slog.Warn("Context window exceeded, retrying with smaller context budgets",
		"provider", cwErr.Provider,
		"status_code", cwErr.StatusCode)

	for _, fraction := range budgetFractions {
		reduced := *engineCfg
		reduced.TotalLimit = int(float64(engineCfg.TotalLimit) * fraction)
		if reduced.PerFileCap > reduced.TotalLimit {
			reduced.PerFileCap = reduced.TotalLimit
		}

		slog.Info("Attempting summarization with reduced context budget",
			"total_limit", reduced.TotalLimit)

		blob = engine.BuildContext(files, &reduced)

		response, err = submit(client, blob)
		if err == nil {
			return ParseSummary(response), blob, nil
		}

		if !stderrors.As(err, &cwErr) {
			return nil, nil, fmt.Errorf("failed to summarize repository: %w", err)
		}

		slog.Warn("Context window still exceeded", "total_limit", reduced.TotalLimit)
	}

	return nil, nil, fmt.Errorf("context exceeds model limits even at the smallest budget: %w", err)
}

func submit(client providers.LLMClient, blob *engine.Blob) (string, error) {
	prompt, err := user.RenderUserPrompt(blob.Text, &user.TruncationInfo{
		IncludedCount:        blob.IncludedCount,
		TruncatedCount:       blob.TruncatedCount,
		OmittedCount:         blob.OmittedCount,
		OmittedBytesEstimate: blob.OmittedBytesEstimate,
		LimitChars:           blob.LimitChars,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render user prompt: %w", err)
	}

	return client.Summarize(prompt)
}
