package user

import (
	"strings"
	"testing"
)

func TestRenderUserPrompt(t *testing.T) {
	prompt, err := RenderUserPrompt("## Repository structure\n\nfile contents here", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(prompt, "Summarize this repository") {
		t.Error("expected prompt preamble")
	}
	if !strings.Contains(prompt, "file contents here") {
		t.Error("expected context to be embedded")
	}
	if strings.Contains(prompt, "Note: the context was reduced") {
		t.Error("expected no truncation note without truncation info")
	}
}

func TestRenderUserPrompt_WithTruncation(t *testing.T) {
	info := &TruncationInfo{
		IncludedCount:        10,
		TruncatedCount:       2,
		OmittedCount:         3,
		OmittedBytesEstimate: 4096,
		LimitChars:           60000,
	}

	prompt, err := RenderUserPrompt("ctx", info)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(prompt, "Note: the context was reduced") {
		t.Error("expected truncation note")
	}
	for _, fragment := range []string{"60000-character budget", "10 files included", "2 truncated", "3 omitted", "4096 bytes"} {
		if !strings.Contains(prompt, fragment) {
			t.Errorf("expected truncation note to contain %q", fragment)
		}
	}
}

func TestRenderUserPrompt_LosslessContextSkipsNote(t *testing.T) {
	// included-only results carry no note even when info is passed
	info := &TruncationInfo{
		IncludedCount: 5,
		LimitChars:    60000,
	}

	prompt, err := RenderUserPrompt("ctx", info)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if strings.Contains(prompt, "Note: the context was reduced") {
		t.Error("expected no truncation note when nothing was cut")
	}
}
