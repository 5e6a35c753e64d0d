package graphql

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shurcooL/githubv4"
	"repo-summarizer/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		MaxFiles:         500,
		FetchConcurrency: 4,
	}
}

type graphqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

// newTestFetcher wires a Fetcher against an httptest server that answers
// default-branch and tree queries from a canned directory map.
func newTestFetcher(t *testing.T, cfg *config.Config, branch string, trees map[string]string) *Fetcher {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req graphqlRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if strings.Contains(req.Query, "defaultBranchRef") {
			fmt.Fprintf(w, `{"data": {"repository": {"defaultBranchRef": {"name": %q}}}}`, branch)
			return
		}

		expr, _ := req.Variables["expr"].(string)
		entries, ok := trees[expr]
		if !ok {
			fmt.Fprint(w, `{"data": {"repository": {"object": {"entries": []}}}}`)
			return
		}
		fmt.Fprintf(w, `{"data": {"repository": {"object": {"entries": %s}}}}`, entries)
	}))
	t.Cleanup(srv.Close)

	return &Fetcher{
		client: githubv4.NewEnterpriseClient(srv.URL, srv.Client()),
		config: cfg,
	}
}

func TestFetcher_Name(t *testing.T) {
	f := NewFetcher(testConfig())
	if f.Name() != "GitHub" {
		t.Errorf("expected GitHub, got %s", f.Name())
	}
}

func TestFetcher_IsRepoURL(t *testing.T) {
	f := NewFetcher(testConfig())

	if !f.IsRepoURL("https://github.com/owner/repo") {
		t.Error("expected repo URL to match")
	}
	if f.IsRepoURL("https://github.com/owner/repo/pulls") {
		t.Error("expected non-repo URL to not match")
	}
}

func TestFetchSnapshot(t *testing.T) {
	trees := map[string]string{
		"main:": `[
			{"name": "README.md", "path": "README.md", "type": "blob",
			 "object": {"byteSize": 5, "isBinary": false, "text": "hello"}},
			{"name": "logo.png", "path": "logo.png", "type": "blob",
			 "object": {"byteSize": 9, "isBinary": true, "text": null}},
			{"name": "src", "path": "src", "type": "tree", "object": {}}
		]`,
		"main:src": `[
			{"name": "app.go", "path": "src/app.go", "type": "blob",
			 "object": {"byteSize": 13, "isBinary": false, "text": "package src\n"}}
		]`,
	}

	f := newTestFetcher(t, testConfig(), "main", trees)

	snapshot, err := f.FetchSnapshot(context.Background(), "https://github.com/testowner/testrepo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if snapshot.DefaultBranch != "main" {
		t.Errorf("expected branch main, got %s", snapshot.DefaultBranch)
	}
	if snapshot.Truncated {
		t.Error("expected non-truncated snapshot")
	}
	if len(snapshot.Files) != 3 {
		t.Fatalf("expected 3 files, got %d", len(snapshot.Files))
	}

	byPath := make(map[string]int)
	for i, file := range snapshot.Files {
		byPath[file.Path] = i
	}

	readme := snapshot.Files[byPath["README.md"]]
	if !readme.ContentOK || readme.Content != "hello" {
		t.Errorf("unexpected README file: %+v", readme)
	}
	if readme.Depth != 0 {
		t.Errorf("expected depth 0, got %d", readme.Depth)
	}

	// binary blobs are listed without content
	logo := snapshot.Files[byPath["logo.png"]]
	if logo.ContentOK {
		t.Error("expected ContentOK=false for binary blob")
	}
	if logo.SizeBytes != 9 {
		t.Errorf("expected size preserved for binary blob, got %d", logo.SizeBytes)
	}

	appGo := snapshot.Files[byPath["src/app.go"]]
	if !appGo.ContentOK {
		t.Error("expected nested blob content to be fetched")
	}
	if appGo.Depth != 1 {
		t.Errorf("expected depth 1 for src/app.go, got %d", appGo.Depth)
	}
}

func TestFetchSnapshot_MaxFilesCap(t *testing.T) {
	trees := map[string]string{
		"main:": `[
			{"name": "a.txt", "path": "a.txt", "type": "blob",
			 "object": {"byteSize": 1, "isBinary": false, "text": "a"}},
			{"name": "b.txt", "path": "b.txt", "type": "blob",
			 "object": {"byteSize": 1, "isBinary": false, "text": "b"}},
			{"name": "c.txt", "path": "c.txt", "type": "blob",
			 "object": {"byteSize": 1, "isBinary": false, "text": "c"}}
		]`,
	}

	cfg := testConfig()
	cfg.MaxFiles = 2
	f := newTestFetcher(t, cfg, "main", trees)

	snapshot, err := f.FetchSnapshot(context.Background(), "https://github.com/testowner/testrepo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(snapshot.Files) != 2 {
		t.Errorf("expected max-files cap of 2, got %d files", len(snapshot.Files))
	}
	if !snapshot.Truncated {
		t.Error("expected snapshot to be marked truncated after cap")
	}
}

func TestFetchSnapshot_InvalidURL(t *testing.T) {
	f := NewFetcher(testConfig())

	_, err := f.FetchSnapshot(context.Background(), "git@github.com:owner/repo.git")
	if err == nil {
		t.Fatal("expected error for ssh-style URL")
	}
}

func TestBlobToRepoFile_OversizeText(t *testing.T) {
	text := "x"
	entry := treeEntry{
		Name: "huge.txt",
		Path: "huge.txt",
		Type: "blob",
	}
	entry.Object.Blob.ByteSize = maxBlobTextBytes + 1
	entry.Object.Blob.Text = &text

	file := blobToRepoFile(entry)
	if file.ContentOK {
		t.Error("expected ContentOK=false for oversize blob")
	}
	if file.SizeBytes != maxBlobTextBytes+1 {
		t.Errorf("expected size preserved, got %d", file.SizeBytes)
	}
}
