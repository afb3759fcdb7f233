package models

// Company is the employer block attached to a posting. Logo may be empty.
type Company struct {
	Name            string `json:"name"`
	Logo            string `json:"logo"`
	URL             string `json:"url"`
	StaffCountRange string `json:"staffCountRange,omitempty"`
	Headquarter     string `json:"headquarter,omitempty"`
}

// Job is a posting as returned by the job-search API. Fields are passed
// through unchanged; Type, PostDate and Benefits are free text.
type Job struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	URL         string   `json:"url"`
	ReferenceID string   `json:"referenceId,omitempty"`
	PosterID    string   `json:"posterId,omitempty"`
	Company     *Company `json:"company,omitempty"`
	Location    string   `json:"location,omitempty"`
	Type        string   `json:"type,omitempty"`
	PostDate    string   `json:"postDate,omitempty"`
	Benefits    string   `json:"benefits,omitempty"`
}

// CompanyName returns the company name or "" when the block is missing.
func (j Job) CompanyName() string {
	if j.Company == nil {
		return ""
	}
	return j.Company.Name
}

// SearchResult is one page of results. Jobs is never nil; Total is the
// upstream match count and may exceed len(Jobs).
type SearchResult struct {
	Jobs  []Job `json:"jobs"`
	Total int   `json:"total"`
}
