// Package session owns the state of one running search: the parameter
// model, the pagination controller and the last applied outcome.
package session

import (
	"context"
	"sync"

	"github.com/jimezsa/hirenova/internal/jobsearch"
	"github.com/jimezsa/hirenova/internal/models"
	"github.com/jimezsa/hirenova/internal/pagination"
	"github.com/jimezsa/hirenova/internal/params"
	"github.com/jimezsa/hirenova/internal/present"
	"github.com/rs/zerolog"
)

type Options struct {
	Defaults models.SearchParams
	PerPage  int
	Logger   zerolog.Logger
}

type Session struct {
	searcher jobsearch.Searcher
	model    *params.Model
	pager    *pagination.Controller
	logger   zerolog.Logger

	mu      sync.Mutex
	seq     uint64
	loading bool
	outcome jobsearch.Outcome
}

func New(searcher jobsearch.Searcher, opts Options) *Session {
	s := &Session{
		searcher: searcher,
		model:    params.New(opts.Defaults),
		logger:   opts.Logger,
		outcome:  jobsearch.Outcome{Result: models.SearchResult{Jobs: []models.Job{}}},
	}
	s.pager = pagination.NewController(s.model, opts.PerPage, s.fetch)
	return s
}

// Params returns the current parameters, including edits not yet fetched.
func (s *Session) Params() models.SearchParams {
	return s.model.Snapshot()
}

func (s *Session) Pager() *pagination.Controller {
	return s.pager
}

// Submit applies a filter edit, moves back to page 1 and fetches.
func (s *Session) Submit(ctx context.Context, patch params.Patch) error {
	patch.Start = nil
	s.model.Update(patch)
	if err := s.model.ResetToPage(1, s.pager.PerPage()); err != nil {
		return err
	}
	return s.fetch(ctx)
}

// Open applies patch and fetches page directly, before any total is
// known. It is how a bookmarked page is restored.
func (s *Session) Open(ctx context.Context, patch params.Patch, page int) error {
	start, err := params.StartFor(page, s.pager.PerPage())
	if err != nil {
		return err
	}
	patch.Start = &start
	s.model.Update(patch)
	return s.fetch(ctx)
}

func (s *Session) ChangePage(ctx context.Context, page int) error {
	return s.pager.OnPageChange(ctx, page)
}

func (s *Session) Next(ctx context.Context) error {
	return s.pager.Next(ctx)
}

func (s *Session) Prev(ctx context.Context) error {
	return s.pager.Prev(ctx)
}

// Refresh fetches the current parameters again. Nothing is cached, so
// this always reaches the searcher.
func (s *Session) Refresh(ctx context.Context) error {
	return s.fetch(ctx)
}

// Outcome is the last applied search outcome.
func (s *Session) Outcome() jobsearch.Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.outcome
}

func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// fetch searches with a snapshot of the parameters. Only the response of
// the most recent fetch is applied; older ones are dropped.
func (s *Session) fetch(ctx context.Context) error {
	snapshot := s.model.Snapshot()

	s.mu.Lock()
	s.seq++
	seq := s.seq
	s.loading = true
	s.mu.Unlock()

	outcome := s.searcher.Search(ctx, snapshot)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.seq {
		s.logger.Debug().
			Uint64("seq", seq).
			Uint64("latest", s.seq).
			Str("request_id", outcome.RequestID).
			Msg("dropping stale search response")
		return nil
	}
	s.loading = false
	if err := ctx.Err(); err != nil {
		return err
	}

	s.outcome = outcome
	s.pager.Observe(snapshot.Start, len(outcome.Result.Jobs), outcome.Result.Total, !outcome.Fallback)
	return nil
}

// View builds the presenter frame for the current state.
func (s *Session) View() present.View {
	s.mu.Lock()
	loading := s.loading
	outcome := s.outcome
	s.mu.Unlock()

	var notice string
	if outcome.Degraded() && !outcome.Fallback {
		notice = present.UnavailableNotice
	}
	return present.View{
		Loading:    loading,
		Jobs:       outcome.Result.Jobs,
		Total:      s.pager.Total(),
		Degraded:   outcome.Degraded(),
		Notice:     notice,
		Page:       s.pager.CurrentPage(),
		TotalPages: s.pager.TotalPages(),
		Pages:      s.pager.Pages(),
		Params:     s.model.Snapshot(),
	}
}
