package params

import (
	"errors"
	"math"
	"sync"

	"github.com/jimezsa/hirenova/internal/models"
)

var ErrInvalidPage = errors.New("page must be positive and its offset must fit in an int")

// Patch is a partial update. Nil fields keep the current value.
type Patch struct {
	Keywords        *string
	LocationID      *string
	ExperienceLevel *models.ExperienceLevel
	OnsiteRemote    *models.OnsiteRemote
	TitleIDs        *string
	FunctionIDs     *string
	IndustryIDs     *string
	Sort            *models.Sort
	Start           *int
}

// Model holds the active filter, sort and pagination state. The page is
// never stored; it is always derived from Start.
type Model struct {
	mu      sync.Mutex
	current models.SearchParams
}

// New returns a model seeded from defaults. An empty sort becomes
// mostRelevant.
func New(defaults models.SearchParams) *Model {
	if defaults.Sort == "" {
		defaults.Sort = models.SortMostRelevant
	}
	if defaults.Start < 0 {
		defaults.Start = 0
	}
	return &Model{current: defaults}
}

func (m *Model) Update(p Patch) {
	m.mu.Lock()
	defer m.mu.Unlock()

	apply(&m.current.Keywords, p.Keywords)
	apply(&m.current.LocationID, p.LocationID)
	apply(&m.current.ExperienceLevel, p.ExperienceLevel)
	apply(&m.current.OnsiteRemote, p.OnsiteRemote)
	apply(&m.current.TitleIDs, p.TitleIDs)
	apply(&m.current.FunctionIDs, p.FunctionIDs)
	apply(&m.current.IndustryIDs, p.IndustryIDs)
	apply(&m.current.Sort, p.Sort)
	if p.Start != nil {
		start := *p.Start
		if start < 0 {
			start = 0
		}
		m.current.Start = start
	}
}

// StartFor returns (page-1)*pageSize, or ErrInvalidPage when either
// argument is below 1 or the product overflows.
func StartFor(page, pageSize int) (int, error) {
	if page < 1 || pageSize < 1 || page-1 > math.MaxInt/pageSize {
		return 0, ErrInvalidPage
	}
	return (page - 1) * pageSize, nil
}

// ResetToPage sets Start to (page-1)*pageSize. On error Start is left as is.
func (m *Model) ResetToPage(page, pageSize int) error {
	start, err := StartFor(page, pageSize)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.current.Start = start
	m.mu.Unlock()
	return nil
}

// Page returns the 1-based page that Start falls on.
func (m *Model) Page(pageSize int) int {
	if pageSize < 1 {
		return 1
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current.Start/pageSize + 1
}

func (m *Model) Snapshot() models.SearchParams {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

func apply[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// String returns a pointer to value, for building patches.
func String(value string) *string {
	return &value
}

func Int(value int) *int {
	return &value
}

func Experience(value string) *models.ExperienceLevel {
	level := models.ExperienceLevel(value)
	return &level
}

func Work(value string) *models.OnsiteRemote {
	work := models.OnsiteRemote(value)
	return &work
}

func SortOrder(value string) *models.Sort {
	sort := models.Sort(value)
	return &sort
}
