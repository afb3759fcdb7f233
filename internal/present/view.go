package present

import (
	"strings"

	"github.com/jimezsa/hirenova/internal/models"
	"github.com/jimezsa/hirenova/internal/pagination"
)

// PlaceholderCount is the number of skeleton cards shown while loading,
// regardless of the expected result count.
const PlaceholderCount = 6

const (
	EmptyTitle = "No jobs found"
	EmptyHint  = "Try adjusting your search filters"

	DegradedNotice    = "Live job search is unavailable; showing sample listings."
	UnavailableNotice = "Live job search is unavailable."

	noLocation = "Location not specified"
	noType     = "Job type not specified"
	noDate     = "Date not specified"
)

type State int

const (
	StateLoading State = iota
	StateEmpty
	StatePopulated
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateEmpty:
		return "empty"
	default:
		return "populated"
	}
}

// View is everything a renderer needs for one frame.
type View struct {
	Loading    bool
	Jobs       []models.Job
	Total      int
	Degraded   bool
	Notice     string
	Page       int
	TotalPages int
	Pages      []pagination.Item
	Params     models.SearchParams
}

// State is decided by the loading flag first, then by len(Jobs). A
// degraded result with jobs is still Populated.
func (v View) State() State {
	if v.Loading {
		return StateLoading
	}
	if len(v.Jobs) == 0 {
		return StateEmpty
	}
	return StatePopulated
}

type Badge string

const (
	BadgeRemote   Badge = "Remote"
	BadgeHybrid   Badge = "Hybrid"
	BadgeContract Badge = "Contract"
)

type Card struct {
	Placeholder bool
	ID          string
	Title       string
	Company     string
	Logo        string
	Location    string
	Type        string
	Posted      string
	Benefits    string
	URL         string
	Badges      []Badge
}

// Cards maps the view to display cards: placeholders while loading,
// nothing when empty, one card per job in upstream order otherwise.
func Cards(v View) []Card {
	switch v.State() {
	case StateLoading:
		cards := make([]Card, PlaceholderCount)
		for i := range cards {
			cards[i].Placeholder = true
		}
		return cards
	case StateEmpty:
		return nil
	}

	cards := make([]Card, 0, len(v.Jobs))
	for _, job := range v.Jobs {
		cards = append(cards, CardFor(job))
	}
	return cards
}

func CardFor(job models.Job) Card {
	card := Card{
		ID:       job.ID,
		Title:    strings.TrimSpace(job.Title),
		Company:  strings.TrimSpace(job.CompanyName()),
		Location: orDefault(job.Location, noLocation),
		Type:     orDefault(job.Type, noType),
		Posted:   orDefault(job.PostDate, noDate),
		Benefits: strings.TrimSpace(job.Benefits),
		URL:      strings.TrimSpace(job.URL),
	}
	if job.Company != nil {
		card.Logo = job.Company.Logo
	}
	switch Badge(job.Type) {
	case BadgeRemote, BadgeHybrid, BadgeContract:
		card.Badges = []Badge{Badge(job.Type)}
	}
	return card
}

func orDefault(value, fallback string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}
	return value
}
