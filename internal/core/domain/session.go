package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionConflict = errors.New("session version conflict")
)

// Session owns one tracked window. Its cutoff and entry dates are fixed at
// creation; only the logged flags and the expanded flag change afterwards.
type Session struct {
	ID        string     `json:"id"`
	Weeks     int        `json:"weeks"`
	Cutoff    string     `json:"cutoff"`
	Entries   []LogEntry `json:"entries"`
	Expanded  bool       `json:"expanded"`
	Version   int        `json:"version"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func NewSession(today time.Time, weeks int) (*Session, error) {
	if err := ValidateWeeks(weeks); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	return &Session{
		ID:        uuid.NewString(),
		Weeks:     weeks,
		Cutoff:    FormatDate(today),
		Entries:   GenerateLog(today, weeks),
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Clone returns a deep copy so callers can mutate entries without touching the original.
func (s *Session) Clone() *Session {
	c := *s
	c.Entries = make([]LogEntry, len(s.Entries))
	copy(c.Entries, s.Entries)
	return &c
}

func (s *Session) StartDate() string {
	if len(s.Entries) == 0 {
		return ""
	}
	return s.Entries[0].Date
}

// IsFuture reports whether the day at index falls after the cutoff. Indices
// outside the log are never future.
func (s *Session) IsFuture(index int) bool {
	if index < 0 || index >= len(s.Entries) {
		return false
	}
	return s.Entries[index].Date > s.Cutoff
}

// Toggle flips the logged flag at index. Days after the cutoff are inert:
// the call reports false and changes nothing.
func (s *Session) Toggle(index int) (bool, error) {
	if index < 0 || index >= len(s.Entries) {
		return false, ErrEntryIndexOutOfRange
	}
	if s.IsFuture(index) {
		return false, nil
	}

	s.Entries[index].Logged = !s.Entries[index].Logged
	s.UpdatedAt = time.Now().UTC()
	return true, nil
}

func (s *Session) IndexOf(date string) (int, error) {
	target, err := ParseDate(date)
	if err != nil {
		return -1, err
	}
	start, err := ParseDate(s.StartDate())
	if err != nil {
		return -1, ErrEntryIndexOutOfRange
	}

	index := int(target.Sub(start).Hours() / 24)
	if index < 0 || index >= len(s.Entries) || s.Entries[index].Date != date {
		return -1, ErrEntryIndexOutOfRange
	}
	return index, nil
}

func (s *Session) ToggleDate(date string) (bool, error) {
	index, err := s.IndexOf(date)
	if err != nil {
		return false, err
	}
	return s.Toggle(index)
}

func (s *Session) SetExpanded(expanded bool) {
	if s.Expanded == expanded {
		return
	}
	s.Expanded = expanded
	s.UpdatedAt = time.Now().UTC()
}

func (s *Session) Saturations() []float64 {
	return ComputeSaturations(s.Entries, s.Cutoff)
}

func (s *Session) Summary() Summary {
	return Summarize(s.Entries, s.Cutoff, DefaultModel)
}

func (s *Session) Grid(expanded bool) GridView {
	return BuildGrid(s.Entries, s.Cutoff, expanded)
}
