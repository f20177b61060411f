package core

import (
	"fmt"
	"strconv"
	"strings"
)

// MoodAssignment is one "dimension=value" pair from the command line.
type MoodAssignment struct {
	Dimension string
	Value     int
}

// ParseMoodAssignments parses "dim=value" pairs. Order is kept since each
// assignment propagates into the next.
func ParseMoodAssignments(pairs []string) ([]MoodAssignment, error) {
	out := make([]MoodAssignment, 0, len(pairs))
	for _, pair := range pairs {
		name, raw, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid mood '%s'. must be dimension=value", pair)
		}
		value, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("invalid value for mood '%s': %w", name, err)
		}
		out = append(out, MoodAssignment{Dimension: name, Value: value})
	}
	return out, nil
}

// ApplyAssignments sets each assignment in order.
func (s *Session) ApplyAssignments(assignments []MoodAssignment) error {
	for _, a := range assignments {
		if err := s.SetMood(a.Dimension, a.Value); err != nil {
			return err
		}
	}
	return nil
}
