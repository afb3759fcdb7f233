package seen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jimezsa/hirenova/internal/models"
)

func TestReadWriteJobs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.json")

	jobs := []models.Job{job("1", "SRE", "Acme")}
	if err := WriteJobs(path, jobs); err != nil {
		t.Fatalf("WriteJobs() error = %v", err)
	}

	got, err := ReadJobs(path)
	if err != nil {
		t.Fatalf("ReadJobs() error = %v", err)
	}
	if len(got) != 1 || got[0].Title != "SRE" || got[0].CompanyName() != "Acme" {
		t.Fatalf("unexpected jobs read back: %+v", got)
	}
}

func TestReadJobsAcceptsSearchDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "search.json")
	doc := `{"state":"populated","jobs":[{"id":"5","title":"Go Dev","company":{"name":"Acme"}}],"total":1}`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	got, err := ReadJobs(path)
	if err != nil {
		t.Fatalf("ReadJobs() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != "5" || got[0].CompanyName() != "Acme" {
		t.Fatalf("unexpected jobs: %+v", got)
	}
}

func TestReadJobsEmptyAndMissing(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.json")
	if err := os.WriteFile(empty, []byte("  \n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	got, err := ReadJobs(empty)
	if err != nil || got == nil || len(got) != 0 {
		t.Fatalf("ReadJobs(empty) = %v, %v", got, err)
	}

	got, err = ReadJobsAllowMissing(filepath.Join(dir, "missing.json"))
	if err != nil || len(got) != 0 {
		t.Fatalf("ReadJobsAllowMissing() = %v, %v", got, err)
	}

	if _, err := ReadJobs(" "); err == nil {
		t.Fatalf("ReadJobs(blank) error = nil, want error")
	}
}
