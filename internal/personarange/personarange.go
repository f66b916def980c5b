// Package personarange parses the persona selection argument shared by every
// batch command.
package personarange

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	MinPersona = 1
	MaxPersona = 100
)

// Range is an inclusive span of persona numbers.
type Range struct {
	Min int
	Max int
}

// Full selects every persona.
func Full() Range {
	return Range{Min: MinPersona, Max: MaxPersona}
}

// Parse accepts "7", "3-20", "-20", "3-" and "all". Open ends default to the
// range bounds.
func Parse(s string) (Range, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" || s == "all" {
		return Full(), nil
	}

	r := Full()
	if !strings.Contains(s, "-") {
		n, err := strconv.Atoi(s)
		if err != nil {
			return Range{}, fmt.Errorf("invalid persona selection %q", s)
		}
		r.Min, r.Max = n, n
		return r, r.validate(s)
	}

	parts := strings.SplitN(s, "-", 2)
	if from := strings.TrimSpace(parts[0]); from != "" {
		n, err := strconv.Atoi(from)
		if err != nil {
			return Range{}, fmt.Errorf("invalid persona selection %q", s)
		}
		r.Min = n
	}
	if to := strings.TrimSpace(parts[1]); to != "" {
		n, err := strconv.Atoi(to)
		if err != nil {
			return Range{}, fmt.Errorf("invalid persona selection %q", s)
		}
		r.Max = n
	}
	return r, r.validate(s)
}

func (r Range) validate(raw string) error {
	if r.Min < MinPersona || r.Max > MaxPersona || r.Min > r.Max {
		return fmt.Errorf("persona selection %q out of range %d-%d", raw, MinPersona, MaxPersona)
	}
	return nil
}

// IDs expands the range into persona numbers in ascending order.
func (r Range) IDs() []int {
	ids := make([]int, 0, r.Max-r.Min+1)
	for n := r.Min; n <= r.Max; n++ {
		ids = append(ids, n)
	}
	return ids
}

// Contains reports whether n falls inside the range.
func (r Range) Contains(n int) bool {
	return n >= r.Min && n <= r.Max
}
