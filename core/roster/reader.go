// Package roster imports technician qualification rosters supplied by the
// training provider.
package roster

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Qualification is one roster entry: an employee name paired with the
// truck type they completed training for.
type Qualification struct {
	Name     string
	TypeCode string
}

// ReadQualifications parses the provider's line-oriented roster format:
// pairs of lines where the first carries the employee name as its last two
// whitespace-separated tokens and the second carries the truck type code.
// Blank lines between pairs are tolerated.
func ReadQualifications(r io.Reader) ([]Qualification, error) {
	sc := bufio.NewScanner(r)
	var recs []Qualification
	var pending string
	havePending := false
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		if !havePending {
			fields := strings.Fields(text)
			if len(fields) < 2 {
				return nil, fmt.Errorf("roster: line %d: expected first and last name, got %q", line, text)
			}
			pending = strings.Join(fields[len(fields)-2:], " ")
			havePending = true
			continue
		}
		recs = append(recs, Qualification{Name: pending, TypeCode: text})
		havePending = false
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("roster: read: %w", err)
	}
	if havePending {
		return nil, fmt.Errorf("roster: dangling name %q without a truck type", pending)
	}
	return recs, nil
}
