package seen

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jimezsa/hirenova/internal/models"
)

var errPathRequired = errors.New("path is required")

// ReadJobs reads jobs from path. Both a bare JSON array and a search
// document with a "jobs" field (the --json output) are accepted.
func ReadJobs(path string) ([]models.Job, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errPathRequired
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	jobs, err := decodeJobs(data)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return jobs, nil
}

func decodeJobs(data []byte) ([]models.Job, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return []models.Job{}, nil
	}

	var jobs []models.Job
	if data[0] == '{' {
		var doc struct {
			Jobs []models.Job `json:"jobs"`
		}
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
		jobs = doc.Jobs
	} else if err := json.Unmarshal(data, &jobs); err != nil {
		return nil, err
	}

	if jobs == nil {
		jobs = []models.Job{}
	}
	return jobs, nil
}

// ReadJobsAllowMissing treats a missing file as an empty history.
func ReadJobsAllowMissing(path string) ([]models.Job, error) {
	jobs, err := ReadJobs(path)
	if errors.Is(err, os.ErrNotExist) {
		return []models.Job{}, nil
	}
	return jobs, err
}

// WriteJobs writes jobs as an indented JSON array.
func WriteJobs(path string, jobs []models.Job) error {
	if strings.TrimSpace(path) == "" {
		return errPathRequired
	}
	if jobs == nil {
		jobs = []models.Job{}
	}
	data, err := json.MarshalIndent(jobs, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
