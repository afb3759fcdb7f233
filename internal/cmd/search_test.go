package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/jimezsa/hirenova/internal/config"
	"github.com/jimezsa/hirenova/internal/jobsearch"
	"github.com/jimezsa/hirenova/internal/models"
	"github.com/jimezsa/hirenova/internal/present"
	"github.com/jimezsa/hirenova/internal/seen"
	"github.com/rs/zerolog"
)

type fakeSearcher struct {
	mu    sync.Mutex
	calls []models.SearchParams
	total int
	fail  bool
}

func (f *fakeSearcher) Search(_ context.Context, p models.SearchParams) jobsearch.Outcome {
	f.mu.Lock()
	f.calls = append(f.calls, p)
	f.mu.Unlock()

	if f.fail {
		return jobsearch.Outcome{Result: jobsearch.Fallback(), Err: jobsearch.ErrNotConfigured, Fallback: true}
	}
	jobs := make([]models.Job, 0, 25)
	for i := 0; i < 25 && p.Start+i < f.total; i++ {
		n := strconv.Itoa(p.Start + i)
		jobs = append(jobs, models.Job{
			ID:      p.Keywords + "-" + n,
			Title:   p.Keywords + " engineer " + n,
			Company: &models.Company{Name: "Acme"},
			URL:     "https://example.com/" + n,
		})
	}
	return jobsearch.Outcome{Result: models.SearchResult{Jobs: jobs, Total: f.total}}
}

func (f *fakeSearcher) Calls() []models.SearchParams {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.SearchParams(nil), f.calls...)
}

func testContext(f *fakeSearcher) (*Context, *bytes.Buffer) {
	var out bytes.Buffer
	return &Context{
		Out:      &out,
		Err:      io.Discard,
		Config:   config.DefaultConfig(),
		Logger:   zerolog.Nop(),
		Searcher: f,
	}, &out
}

type searchDocument struct {
	State      string       `json:"state"`
	Jobs       []models.Job `json:"jobs"`
	Total      int          `json:"total"`
	Page       int          `json:"page"`
	TotalPages int          `json:"total_pages"`
}

func TestResolveFormat(t *testing.T) {
	cases := []struct {
		name   string
		ctx    *Context
		flag   string
		output string
		want   present.Format
	}{
		{"json flag wins", &Context{Out: io.Discard, JSONOutput: true}, "md", "jobs.csv", present.FormatJSON},
		{"plain flag", &Context{Out: io.Discard, PlainText: true}, "", "", present.FormatTSV},
		{"explicit format", &Context{Out: io.Discard}, "md", "jobs.csv", present.FormatMarkdown},
		{"json extension", &Context{Out: io.Discard}, "", "jobs.json", present.FormatJSON},
		{"html extension", &Context{Out: io.Discard}, "", "jobs.html", present.FormatHTML},
		{"unknown extension", &Context{Out: io.Discard}, "", "jobs.txt", present.FormatCSV},
		{"non-tty stdout", &Context{Out: &bytes.Buffer{}}, "", "", present.FormatCSV},
	}
	for _, tc := range cases {
		got, err := resolveFormat(tc.ctx, tc.flag, tc.output)
		if err != nil {
			t.Fatalf("%s: resolveFormat() error = %v", tc.name, err)
		}
		if got != tc.want {
			t.Fatalf("%s: resolveFormat() = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestResolveQueries(t *testing.T) {
	t.Run("empty is one unfiltered search", func(t *testing.T) {
		got, err := resolveQueries("  ", "")
		if err != nil || !reflect.DeepEqual(got, []string{""}) {
			t.Fatalf("resolveQueries() = %#v, %v", got, err)
		}
	})

	t.Run("comma list deduped case-insensitively", func(t *testing.T) {
		got, err := resolveQueries("Go, rust, , GO", "")
		if err != nil || !reflect.DeepEqual(got, []string{"Go", "rust"}) {
			t.Fatalf("resolveQueries() = %#v, %v", got, err)
		}
	})

	t.Run("too many", func(t *testing.T) {
		if _, err := resolveQueries("a,b,c,d,e,f,g,h,i,j,k", ""); err == nil {
			t.Fatalf("resolveQueries() error = nil, want limit error")
		}
	})

	t.Run("query files", func(t *testing.T) {
		dir := t.TempDir()
		arrayPath := filepath.Join(dir, "array.json")
		objectPath := filepath.Join(dir, "object.json")
		badPath := filepath.Join(dir, "bad.json")
		os.WriteFile(arrayPath, []byte(`["platform, infra", " sre "]`), 0o644)
		os.WriteFile(objectPath, []byte(`{"job_titles": ["backend"]}`), 0o644)
		os.WriteFile(badPath, []byte(`{"titles": ["x"]}`), 0o644)

		got, err := resolveQueries("go", arrayPath)
		if err != nil || !reflect.DeepEqual(got, []string{"go", "platform, infra", "sre"}) {
			t.Fatalf("array file = %#v, %v", got, err)
		}
		got, err = resolveQueries("", objectPath)
		if err != nil || !reflect.DeepEqual(got, []string{"backend"}) {
			t.Fatalf("object file = %#v, %v", got, err)
		}
		if _, err := resolveQueries("", badPath); err == nil {
			t.Fatalf("bad file error = nil")
		}
		if _, err := resolveQueries("", filepath.Join(dir, "missing.json")); err == nil {
			t.Fatalf("missing file error = nil")
		}
	})
}

func TestSearchFetchesRequestedPage(t *testing.T) {
	f := &fakeSearcher{total: 250}
	ctx, out := testContext(f)
	ctx.JSONOutput = true
	ctx.Config.DefaultLocation = "105080838"

	cmd := &SearchCmd{Query: "go", Page: 3, FilterOptions: FilterOptions{WorkType: "remote"}}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	calls := f.Calls()
	if len(calls) != 1 {
		t.Fatalf("calls = %d, want 1", len(calls))
	}
	want := models.SearchParams{
		Keywords:     "go",
		LocationID:   "105080838",
		OnsiteRemote: models.WorkRemote,
		Sort:         models.SortMostRelevant,
		Start:        50,
	}
	if calls[0] != want {
		t.Fatalf("params = %+v, want %+v", calls[0], want)
	}

	var doc searchDocument
	if err := json.Unmarshal(out.Bytes(), &doc); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out.String())
	}
	if doc.Page != 3 || doc.TotalPages != 10 || len(doc.Jobs) != 25 || doc.Jobs[0].ID != "go-50" {
		t.Fatalf("unexpected document: page %d/%d, %d jobs", doc.Page, doc.TotalPages, len(doc.Jobs))
	}
}

func TestSearchMultipleQueriesMerges(t *testing.T) {
	f := &fakeSearcher{total: 3}
	ctx, out := testContext(f)
	ctx.JSONOutput = true

	if err := (&SearchCmd{Query: "go,rust", Page: 1}).Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := len(f.Calls()); got != 2 {
		t.Fatalf("calls = %d, want 2", got)
	}
	var doc searchDocument
	if err := json.Unmarshal(out.Bytes(), &doc); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if len(doc.Jobs) != 6 || doc.Total != 6 || doc.TotalPages != 0 {
		t.Fatalf("unexpected merged document: %+v", doc)
	}
}

func TestSearchFallbackStillRenders(t *testing.T) {
	f := &fakeSearcher{fail: true}
	ctx, out := testContext(f)
	ctx.PlainText = true

	if err := (&SearchCmd{Page: 1}).Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 7 {
		t.Fatalf("tsv lines = %d, want header + 6", len(lines))
	}
}

func TestSearchSeenWorkflow(t *testing.T) {
	dir := t.TempDir()
	seenPath := filepath.Join(dir, "seen.json")
	newOut := filepath.Join(dir, "new.json")
	if err := seen.WriteJobs(seenPath, []models.Job{{ID: "go-0"}, {ID: "go-1"}}); err != nil {
		t.Fatalf("WriteJobs() error = %v", err)
	}

	f := &fakeSearcher{total: 5}
	ctx, out := testContext(f)
	ctx.JSONOutput = true
	cmd := &SearchCmd{Query: "go", Page: 1, Seen: seenPath, NewOnly: true, NewOut: newOut, SeenUpdate: true}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	var doc searchDocument
	if err := json.Unmarshal(out.Bytes(), &doc); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if len(doc.Jobs) != 3 || doc.Jobs[0].ID != "go-2" {
		t.Fatalf("new-only output = %+v", doc.Jobs)
	}

	unseen, err := seen.ReadJobs(newOut)
	if err != nil || len(unseen) != 3 {
		t.Fatalf("--new-out = %d jobs, %v", len(unseen), err)
	}
	history, err := seen.ReadJobs(seenPath)
	if err != nil || len(history) != 5 {
		t.Fatalf("history = %d jobs, %v; want 5", len(history), err)
	}

	out.Reset()
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("second Run() error = %v", err)
	}
	if err := json.Unmarshal(out.Bytes(), &doc); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if len(doc.Jobs) != 0 || doc.State != "empty" {
		t.Fatalf("second run should have nothing new: %+v", doc)
	}
}

func TestSearchValidate(t *testing.T) {
	cases := []SearchCmd{
		{Page: 0},
		{Page: math.MaxInt},
		{Page: 1, NewOnly: true},
		{Page: 1, NewOut: "a.json"},
		{Page: 1, SeenUpdate: true},
		{Page: 1, Seen: "seen.json", Output: "seen.json"},
		{Page: 1, Seen: "seen.json", NewOut: "seen.json"},
		{Page: 1, Seen: "seen.json", NewOut: "out.json", Output: "out.json"},
	}
	for i, tc := range cases {
		if err := tc.validate(); err == nil {
			t.Fatalf("case %d: validate() error = nil", i)
		}
	}
	ok := SearchCmd{Page: 2, Seen: "seen.json", NewOut: "new.json", Output: "out.csv"}
	if err := ok.validate(); err != nil {
		t.Fatalf("validate() error = %v", err)
	}
}

func TestUpdateSeenHistoryCreatesFileAndMerges(t *testing.T) {
	seenPath := filepath.Join(t.TempDir(), "jobs_seen.json")
	input := []models.Job{{ID: "1", Title: "Hardware Engineer", Company: &models.Company{Name: "Acme"}}}

	for i := 0; i < 2; i++ {
		if err := updateSeenHistory(seenPath, input); err != nil {
			t.Fatalf("updateSeenHistory() error = %v", err)
		}
	}
	got, err := seen.ReadJobs(seenPath)
	if err != nil || len(got) != 1 {
		t.Fatalf("history = %d jobs, %v; want 1", len(got), err)
	}

	input = append(input, models.Job{ID: "2", Title: "Embedded Engineer"})
	if err := updateSeenHistory(seenPath, input); err != nil {
		t.Fatalf("updateSeenHistory() error = %v", err)
	}
	got, _ = seen.ReadJobs(seenPath)
	if len(got) != 2 {
		t.Fatalf("history = %d jobs, want 2", len(got))
	}
}

func TestMergeUniqueJobsKeepsKeylessJobs(t *testing.T) {
	existing := []models.Job{{ID: "1"}}
	incoming := []models.Job{{ID: "1"}, {ID: "2"}, {URL: "https://example.com/no-key"}}
	got := mergeUniqueJobs(existing, incoming)
	if len(got) != 3 {
		t.Fatalf("mergeUniqueJobs() len = %d, want 3", len(got))
	}
}

func TestFormatSearchSummary(t *testing.T) {
	got := formatSearchSummary(present.View{Total: 120, Page: 2, TotalPages: 5, Degraded: true}, 6)
	want := "summary: new_jobs=6 total=120 page=2/5 degraded=true"
	if got != want {
		t.Fatalf("formatSearchSummary() = %q, want %q", got, want)
	}
	if got := formatSearchSummary(present.View{}, 0); got != "summary: new_jobs=0 total=0" {
		t.Fatalf("formatSearchSummary(empty) = %q", got)
	}
}
