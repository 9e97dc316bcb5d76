package services

import (
	"context"
	"fmt"
	"time"

	"github.com/comitanigiacomo/kanso-saturation/internal/core/domain"
)

type SessionService struct {
	repo         domain.SessionRepository
	defaultWeeks int
	location     *time.Location
	now          func() time.Time
}

type SessionOption func(*SessionService)

// WithClock replaces time.Now, mostly for tests that need a fixed "today".
func WithClock(now func() time.Time) SessionOption {
	return func(s *SessionService) {
		s.now = now
	}
}

// WithLocation sets the timezone in which "today" is evaluated.
func WithLocation(loc *time.Location) SessionOption {
	return func(s *SessionService) {
		if loc != nil {
			s.location = loc
		}
	}
}

func WithDefaultWeeks(weeks int) SessionOption {
	return func(s *SessionService) {
		if domain.ValidateWeeks(weeks) == nil {
			s.defaultWeeks = weeks
		}
	}
}

func NewSessionService(repo domain.SessionRepository, opts ...SessionOption) *SessionService {
	s := &SessionService{
		repo:         repo,
		defaultWeeks: domain.DefaultWeeks,
		location:     time.UTC,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type StartSessionInput struct {
	Weeks int
}

type ToggleInput struct {
	SessionID string
	Index     *int
	Date      string
	Version   int
}

type ToggleResult struct {
	Session     *domain.Session `json:"session"`
	Saturations []float64       `json:"saturations"`
	Changed     bool            `json:"changed"`
}

func (s *SessionService) Start(ctx context.Context, input StartSessionInput) (*domain.Session, error) {
	weeks := input.Weeks
	if weeks == 0 {
		weeks = s.defaultWeeks
	}

	session, err := domain.NewSession(s.now().In(s.location), weeks)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("session service: failed to create session: %w", err)
	}

	return session, nil
}

func (s *SessionService) Get(ctx context.Context, id string) (*domain.Session, error) {
	return s.repo.GetByID(ctx, id)
}

// Toggle flips one day, addressed by index or by date. Flipping a future
// day is not an error: the result reports Changed=false and nothing is stored.
func (s *SessionService) Toggle(ctx context.Context, input ToggleInput) (*ToggleResult, error) {
	session, err := s.repo.GetByID(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	if input.Version > 0 && session.Version != input.Version {
		return nil, domain.ErrSessionConflict
	}

	index, err := toggleTarget(session, input)
	if err != nil {
		return nil, err
	}

	changed, err := session.Toggle(index)
	if err != nil {
		return nil, err
	}

	if changed {
		if err := s.repo.Update(ctx, session); err != nil {
			return nil, err
		}
	}

	return &ToggleResult{
		Session:     session,
		Saturations: session.Saturations(),
		Changed:     changed,
	}, nil
}

// toggleTarget resolves the day to flip. When both index and date are given
// they must name the same day.
func toggleTarget(session *domain.Session, input ToggleInput) (int, error) {
	if input.Date == "" {
		if input.Index == nil {
			return 0, domain.ErrEntryIndexOutOfRange
		}
		return *input.Index, nil
	}

	index, err := session.IndexOf(input.Date)
	if err != nil {
		return 0, err
	}
	if input.Index != nil && *input.Index != index {
		return 0, fmt.Errorf("index %d does not match date %s: %w", *input.Index, input.Date, domain.ErrEntryIndexOutOfRange)
	}
	return index, nil
}

func (s *SessionService) SetExpanded(ctx context.Context, id string, expanded bool) (*domain.GridView, error) {
	session, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if session.Expanded != expanded {
		session.SetExpanded(expanded)
		if err := s.repo.Update(ctx, session); err != nil {
			return nil, err
		}
	}

	view := session.Grid(session.Expanded)
	return &view, nil
}

// Grid renders the session grid. A nil expanded uses the stored preference.
func (s *SessionService) Grid(ctx context.Context, id string, expanded *bool) (*domain.GridView, error) {
	session, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	show := session.Expanded
	if expanded != nil {
		show = *expanded
	}

	view := session.Grid(show)
	return &view, nil
}

func (s *SessionService) Summary(ctx context.Context, id string) (*domain.Summary, error) {
	session, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	summary := session.Summary()
	return &summary, nil
}

func (s *SessionService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
