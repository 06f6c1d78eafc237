// Package schema parses raw generative output into strongly-typed Blueprint
// sections. It coerces acceptable structural variance (a bare string where a
// one-element list is expected, numeric strings where numbers are expected)
// but never invents missing data; anything unrecoverable becomes a
// domain.SchemaError.
package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// stringList accepts either a JSON array of strings or a bare string, which
// is treated as a one-element list. Entries are trimmed and empties dropped.
type stringList []string

func (l *stringList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*l = cleanStrings(list)
		return nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*l = cleanStrings([]string{single})
		return nil
	}
	return errors.New("expected a string or a list of strings")
}

// flexInt accepts a JSON number with an integral value or a numeric string.
type flexInt int

func (n *flexInt) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		if f != math.Trunc(f) {
			return fmt.Errorf("expected an integer, got %v", f)
		}
		*n = flexInt(int(f))
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		v, convErr := strconv.Atoi(strings.TrimSpace(s))
		if convErr != nil {
			return fmt.Errorf("expected an integer, got %q", s)
		}
		*n = flexInt(v)
		return nil
	}
	return errors.New("expected an integer")
}

// flexFloat accepts a JSON number or a numeric string.
type flexFloat float64

func (n *flexFloat) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*n = flexFloat(f)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		v, convErr := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if convErr != nil {
			return fmt.Errorf("expected a number, got %q", s)
		}
		*n = flexFloat(v)
		return nil
	}
	return errors.New("expected a number")
}

func cleanStrings(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
