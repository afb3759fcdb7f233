package seen

import (
	"strings"

	"github.com/jimezsa/hirenova/internal/models"
)

const (
	idPrefix     = "id:"
	keySeparator = "::"
)

// DiffStats describes one unseen filtering pass.
type DiffStats struct {
	TotalNew    int
	TotalSeen   int
	InvalidNew  int
	InvalidSeen int
	Unseen      int
}

func (s DiffStats) InvalidSkipped() int {
	return s.InvalidNew + s.InvalidSeen
}

// MergeStats describes one history update.
type MergeStats struct {
	TotalSeen    int
	TotalInput   int
	InvalidSeen  int
	InvalidInput int
	Added        int
	TotalOut     int
}

func (s MergeStats) InvalidSkipped() int {
	return s.InvalidSeen + s.InvalidInput
}

// Normalize lowercases and collapses whitespace.
func Normalize(value string) string {
	return strings.Join(strings.Fields(strings.ToLower(value)), " ")
}

// Keys lists the identities of a job: the upstream id when present and
// the normalized title+company pair when both parts are present. Reposts
// under a new id still match on title+company.
func Keys(job models.Job) []string {
	var keys []string
	if id := strings.TrimSpace(job.ID); id != "" {
		keys = append(keys, idPrefix+id)
	}
	title := Normalize(job.Title)
	company := Normalize(job.CompanyName())
	if title != "" && company != "" {
		keys = append(keys, title+keySeparator+company)
	}
	return keys
}

type keySet map[string]struct{}

func (s keySet) has(keys []string) bool {
	for _, key := range keys {
		if _, ok := s[key]; ok {
			return true
		}
	}
	return false
}

func (s keySet) add(keys []string) {
	for _, key := range keys {
		s[key] = struct{}{}
	}
}

// Diff returns the jobs of newJobs not present in seenJobs, dropping
// duplicates within newJobs. Jobs without any key are skipped.
func Diff(newJobs []models.Job, seenJobs []models.Job) ([]models.Job, DiffStats) {
	stats := DiffStats{TotalNew: len(newJobs), TotalSeen: len(seenJobs)}

	seen := make(keySet, len(seenJobs))
	for _, job := range seenJobs {
		keys := Keys(job)
		if len(keys) == 0 {
			stats.InvalidSeen++
			continue
		}
		seen.add(keys)
	}

	batch := make(keySet, len(newJobs))
	unseen := make([]models.Job, 0, len(newJobs))
	for _, job := range newJobs {
		keys := Keys(job)
		if len(keys) == 0 {
			stats.InvalidNew++
			continue
		}
		if batch.has(keys) {
			continue
		}
		batch.add(keys)
		if !seen.has(keys) {
			unseen = append(unseen, job)
		}
	}

	stats.Unseen = len(unseen)
	return unseen, stats
}

// Merge appends unseen input jobs to the history. Existing entries win
// collisions and keyless history entries are kept as they are.
func Merge(existingSeen []models.Job, inputJobs []models.Job) ([]models.Job, MergeStats) {
	stats := MergeStats{TotalSeen: len(existingSeen), TotalInput: len(inputJobs)}

	known := make(keySet, len(existingSeen)+len(inputJobs))
	out := make([]models.Job, 0, len(existingSeen)+len(inputJobs))

	for _, job := range existingSeen {
		keys := Keys(job)
		switch {
		case len(keys) == 0:
			stats.InvalidSeen++
		case known.has(keys):
			continue
		default:
			known.add(keys)
		}
		out = append(out, job)
	}

	for _, job := range inputJobs {
		keys := Keys(job)
		if len(keys) == 0 {
			stats.InvalidInput++
			continue
		}
		if known.has(keys) {
			continue
		}
		known.add(keys)
		out = append(out, job)
		stats.Added++
	}

	stats.TotalOut = len(out)
	return out, stats
}
