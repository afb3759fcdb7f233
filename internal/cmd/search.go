package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/jimezsa/hirenova/internal/jobsearch"
	"github.com/jimezsa/hirenova/internal/models"
	"github.com/jimezsa/hirenova/internal/pagination"
	"github.com/jimezsa/hirenova/internal/params"
	"github.com/jimezsa/hirenova/internal/present"
	"github.com/jimezsa/hirenova/internal/seen"
	"github.com/jimezsa/hirenova/internal/session"
	"github.com/jimezsa/hirenova/internal/ui"
)

type SearchCmd struct {
	Query string `arg:"" optional:"" help:"Keywords (comma-separated for several searches). Empty searches everything."`
	FilterOptions
	Page       int    `help:"Result page to fetch (1-based)." default:"1"`
	Format     string `help:"Output format: cards, table, csv, json, md, tsv, html." enum:",cards,table,csv,json,md,tsv,html" default:""`
	Links      string `help:"Link display: short or full." enum:"short,full" default:"full"`
	Output     string `name:"output" short:"o" help:"Write output to a file."`
	Proxies    string `help:"Comma-separated proxy URLs."`
	QueryFile  string `help:"Path to JSON file with keyword queries (top-level string array or object with job_titles array)."`
	Seen       string `help:"Path to seen jobs JSON file."`
	NewOnly    bool   `help:"Output only unseen jobs (requires --seen)."`
	NewOut     string `help:"Write unseen jobs JSON to a file (requires --seen)."`
	SeenUpdate bool   `help:"Merge unseen jobs into the --seen history after the search (requires --seen)."`
}

const maxQueries = 10

type queryResult struct {
	query   string
	view    present.View
	outcome jobsearch.Outcome
}

func (s *SearchCmd) Run(ctx *Context) error {
	if err := s.validate(); err != nil {
		return err
	}

	queries, err := resolveQueries(s.Query, s.QueryFile)
	if err != nil {
		return err
	}
	searcher, err := ctx.searcher(s.Proxies)
	if err != nil {
		return err
	}

	stop := ctx.UI.StartSpinner("Searching...")
	results, err := runQueries(context.Background(), ctx, searcher, queries, s.FilterOptions, s.Page)
	stop()
	if err != nil {
		return err
	}
	reportDegraded(ctx, results)

	view := combineResults(results)
	jobs := view.Jobs

	var unseenJobs []models.Job
	if s.Seen != "" {
		seenJobs, err := seen.ReadJobsAllowMissing(s.Seen)
		if err != nil {
			return fmt.Errorf("read --seen: %w", err)
		}
		unseenJobs, _ = seen.Diff(jobs, seenJobs)
	}
	if s.NewOnly {
		view.Jobs = unseenJobs
	}

	if s.NewOut != "" {
		if err := seen.WriteJobs(s.NewOut, unseenJobs); err != nil {
			return fmt.Errorf("write --new-out: %w", err)
		}
	}

	format, err := resolveFormat(ctx, s.Format, s.Output)
	if err != nil {
		return err
	}

	writer := ctx.Out
	if s.Output != "" {
		file, err := os.Create(s.Output)
		if err != nil {
			return err
		}
		defer file.Close()
		writer = file
	}

	colorEnabled := ctx.colorEnabled() && s.Output == ""
	linkStyle := present.LinkStyleFull
	if s.Links == string(present.LinkStyleShort) {
		linkStyle = present.LinkStyleShort
	}
	if err := present.Render(writer, view, format, present.WriteOptions{
		ColorEnabled: colorEnabled,
		Hyperlinks:   colorEnabled && ui.IsTTY(writer),
		LinkStyle:    linkStyle,
		ShowDegraded: ctx.Config.ShowDegraded,
	}); err != nil {
		return err
	}

	if s.SeenUpdate {
		if err := updateSeenHistory(s.Seen, unseenJobs); err != nil {
			return err
		}
	}

	summaryJobs := jobs
	if s.Seen != "" {
		summaryJobs = unseenJobs
	}
	printSearchSummary(ctx, view, len(summaryJobs))
	return nil
}

func (s *SearchCmd) validate() error {
	hasSeen := strings.TrimSpace(s.Seen) != ""
	switch {
	case !validPage(s.Page):
		return fmt.Errorf("--page must be at least 1 and at most %d", math.MaxInt/pagination.ItemsPerPage+1)
	case s.NewOnly && !hasSeen:
		return fmt.Errorf("--new-only requires --seen")
	case s.NewOut != "" && !hasSeen:
		return fmt.Errorf("--new-out requires --seen")
	case s.SeenUpdate && !hasSeen:
		return fmt.Errorf("--seen-update requires --seen")
	case s.NewOut != "" && pathsEqual(s.Output, s.NewOut):
		return fmt.Errorf("--new-out path must differ from --output")
	case hasSeen && pathsEqual(s.Output, s.Seen):
		return fmt.Errorf("--output path must differ from --seen")
	case s.NewOut != "" && pathsEqual(s.NewOut, s.Seen):
		return fmt.Errorf("--new-out path must differ from --seen")
	}
	return nil
}

func validPage(page int) bool {
	_, err := params.StartFor(page, pagination.ItemsPerPage)
	return err == nil
}

// runQueries fetches the same page for every query, one session each.
func runQueries(ctx context.Context, cmdCtx *Context, searcher jobsearch.Searcher, queries []string, filters FilterOptions, page int) ([]queryResult, error) {
	results := make([]queryResult, 0, len(queries))
	for _, query := range queries {
		sess := session.New(searcher, session.Options{
			Defaults: cmdCtx.defaults(),
			Logger:   cmdCtx.Logger,
		})
		if err := sess.Open(ctx, filters.patch(query), page); err != nil {
			return nil, fmt.Errorf("search %q: %w", query, err)
		}
		results = append(results, queryResult{query: query, view: sess.View(), outcome: sess.Outcome()})
	}
	return results, nil
}

// combineResults returns the single view as is. Several queries are merged
// into one page of unique jobs without page controls.
func combineResults(results []queryResult) present.View {
	if len(results) == 1 {
		return results[0].view
	}

	var view present.View
	for _, res := range results {
		view.Jobs = mergeUniqueJobs(view.Jobs, res.view.Jobs)
		view.Degraded = view.Degraded || res.view.Degraded
		if view.Notice == "" {
			view.Notice = res.view.Notice
		}
	}
	if view.Jobs == nil {
		view.Jobs = []models.Job{}
	}
	view.Total = len(view.Jobs)
	return view
}

func mergeUniqueJobs(existing []models.Job, incoming []models.Job) []models.Job {
	if len(incoming) == 0 {
		return existing
	}
	merged, _ := seen.Merge(existing, incoming)
	for _, job := range incoming {
		if len(seen.Keys(job)) == 0 {
			merged = append(merged, job)
		}
	}
	return merged
}

func reportDegraded(ctx *Context, results []queryResult) {
	if ctx.UI == nil || !ctx.Verbose {
		return
	}
	for _, res := range results {
		if res.outcome.Err == nil {
			continue
		}
		ctx.UI.Warnf("search %q (%s): %v", res.query, jobsearch.Kind(res.outcome.Err), res.outcome.Err)
	}
}

func pathsEqual(a, b string) bool {
	if strings.TrimSpace(a) == "" || strings.TrimSpace(b) == "" {
		return false
	}
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA == nil && errB == nil {
		return absA == absB
	}
	return filepath.Clean(a) == filepath.Clean(b)
}

func updateSeenHistory(seenPath string, inputJobs []models.Job) error {
	seenJobs, err := seen.ReadJobsAllowMissing(seenPath)
	if err != nil {
		return fmt.Errorf("read --seen: %w", err)
	}
	merged, _ := seen.Merge(seenJobs, inputJobs)
	if err := seen.WriteJobs(seenPath, merged); err != nil {
		return fmt.Errorf("write --seen: %w", err)
	}
	return nil
}

func printSearchSummary(ctx *Context, view present.View, newJobs int) {
	if ctx == nil || ctx.Err == nil {
		return
	}
	_, _ = fmt.Fprintln(ctx.Err, formatSearchSummary(view, newJobs))
}

func formatSearchSummary(view present.View, newJobs int) string {
	summary := fmt.Sprintf("summary: new_jobs=%d total=%d", newJobs, view.Total)
	if view.TotalPages > 0 {
		summary += fmt.Sprintf(" page=%d/%d", view.Page, view.TotalPages)
	}
	if view.Degraded {
		summary += " degraded=true"
	}
	return summary
}

// resolveQueries merges positional and file queries. No query at all is a
// single empty-keyword search.
func resolveQueries(raw string, queryFile string) ([]string, error) {
	queries := splitQueries(raw)
	if strings.TrimSpace(queryFile) != "" {
		fileQueries, err := loadQueriesFromJSON(queryFile)
		if err != nil {
			return nil, err
		}
		queries = append(queries, fileQueries...)
	}

	out := make([]string, 0, len(queries))
	seenQueries := make(map[string]struct{}, len(queries))
	for _, query := range queries {
		key := strings.ToLower(query)
		if _, ok := seenQueries[key]; ok {
			continue
		}
		seenQueries[key] = struct{}{}
		out = append(out, query)
	}

	if len(out) == 0 {
		return []string{""}, nil
	}
	if len(out) > maxQueries {
		return nil, fmt.Errorf("too many queries: max %d", maxQueries)
	}
	return out, nil
}

func splitQueries(raw string) []string {
	return trimQueries(strings.Split(raw, ","))
}

func loadQueriesFromJSON(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read --query-file %q: %w", path, err)
	}

	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		return trimQueries(list), nil
	}

	var doc struct {
		JobTitles *[]string `json:"job_titles"`
	}
	if err := json.Unmarshal(data, &doc); err != nil || doc.JobTitles == nil {
		return nil, fmt.Errorf("invalid --query-file %q: expected a string array or an object with a \"job_titles\" string array", path)
	}
	return trimQueries(*doc.JobTitles), nil
}

func trimQueries(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		if value = strings.TrimSpace(value); value != "" {
			out = append(out, value)
		}
	}
	return out
}

func resolveFormat(ctx *Context, flag string, outputPath string) (present.Format, error) {
	switch {
	case ctx.JSONOutput:
		return present.FormatJSON, nil
	case ctx.PlainText:
		return present.FormatTSV, nil
	case flag != "":
		return present.ParseFormat(flag)
	case outputPath != "":
		return formatForPath(outputPath), nil
	case ui.IsTTY(ctx.Out):
		return present.FormatCards, nil
	default:
		return present.FormatCSV, nil
	}
}

func formatForPath(path string) present.Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return present.FormatJSON
	case ".md":
		return present.FormatMarkdown
	case ".tsv":
		return present.FormatTSV
	case ".html", ".htm":
		return present.FormatHTML
	default:
		return present.FormatCSV
	}
}
