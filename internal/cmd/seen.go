package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/jimezsa/hirenova/internal/seen"
)

type SeenCmd struct {
	Diff   SeenDiffCmd   `cmd:"" help:"Write unseen jobs (A-B) to JSON."`
	Update SeenUpdateCmd `cmd:"" help:"Merge new jobs into seen history JSON."`
}

type SeenDiffCmd struct {
	New   string `name:"new" required:"" help:"Path to new jobs JSON (A): a job array or a search --json document."`
	Seen  string `name:"seen" required:"" help:"Path to seen jobs JSON (B). Missing file is treated as empty."`
	Out   string `name:"out" required:"" help:"Output path for unseen jobs JSON (C)."`
	Stats bool   `name:"stats" help:"Print comparison stats."`
}

type SeenUpdateCmd struct {
	Seen  string `name:"seen" required:"" help:"Path to seen jobs JSON (B). Missing file is treated as empty."`
	Input string `name:"input" required:"" help:"Path to jobs JSON to merge: a job array or a search --json document."`
	Out   string `name:"out" help:"Output path for the updated history (defaults to --seen)."`
	Stats bool   `name:"stats" help:"Print merge stats."`
}

func (c *SeenDiffCmd) Run(ctx *Context) error {
	newJobs, err := seen.ReadJobs(c.New)
	if err != nil {
		return fmt.Errorf("read --new: %w", err)
	}
	seenJobs, err := seen.ReadJobsAllowMissing(c.Seen)
	if err != nil {
		return fmt.Errorf("read --seen: %w", err)
	}

	unseenJobs, stats := seen.Diff(newJobs, seenJobs)
	if err := seen.WriteJobs(c.Out, unseenJobs); err != nil {
		return fmt.Errorf("write --out: %w", err)
	}
	if !c.Stats {
		return nil
	}
	return writeStats(ctx, []statField{
		{"total_new", stats.TotalNew},
		{"total_seen", stats.TotalSeen},
		{"invalid_skipped", stats.InvalidSkipped()},
		{"unseen_emitted", stats.Unseen},
	})
}

func (c *SeenUpdateCmd) Run(ctx *Context) error {
	seenJobs, err := seen.ReadJobsAllowMissing(c.Seen)
	if err != nil {
		return fmt.Errorf("read --seen: %w", err)
	}
	inputJobs, err := seen.ReadJobs(c.Input)
	if err != nil {
		return fmt.Errorf("read --input: %w", err)
	}

	out := c.Out
	if out == "" {
		out = c.Seen
	}
	merged, stats := seen.Merge(seenJobs, inputJobs)
	if err := seen.WriteJobs(out, merged); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	if !c.Stats {
		return nil
	}
	return writeStats(ctx, []statField{
		{"total_seen", stats.TotalSeen},
		{"total_input", stats.TotalInput},
		{"invalid_skipped", stats.InvalidSkipped()},
		{"added", stats.Added},
		{"total_out", stats.TotalOut},
	})
}

type statField struct {
	name  string
	value int
}

// writeStats prints key=value pairs, or a JSON object with --json.
func writeStats(ctx *Context, fields []statField) error {
	if ctx.JSONOutput {
		obj := make(map[string]int, len(fields))
		for _, f := range fields {
			obj[f.name] = f.value
		}
		return json.NewEncoder(ctx.Out).Encode(obj)
	}
	for i, f := range fields {
		sep := " "
		if i == len(fields)-1 {
			sep = "\n"
		}
		if _, err := fmt.Fprintf(ctx.Out, "%s=%d%s", f.name, f.value, sep); err != nil {
			return err
		}
	}
	return nil
}
