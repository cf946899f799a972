package categorize

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Entry maps one item label onto its category ids.
type Entry struct {
	Value      string   `json:"value"`
	Categories []string `json:"categories"`
}

// Mapping is the validated categorization result.
type Mapping struct {
	Mapping []Entry `json:"mapping"`
}

// wireEntry uses pointers so absent fields are distinguishable from empty
// ones during shape validation.
type wireEntry struct {
	Value      *string   `json:"value"`
	Categories *[]string `json:"categories"`
}

type wireMapping struct {
	Mapping *[]wireEntry `json:"mapping"`
}

// ValidateMapping parses a raw model answer and checks the expected shape:
// {"mapping": [{"value": string, "categories": [string]}]}.
func ValidateMapping(raw string) (*Mapping, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, errors.New("empty categorization response")
	}

	var wire wireMapping
	if err := json.Unmarshal([]byte(raw), &wire); err != nil {
		return nil, fmt.Errorf("invalid categorization JSON: %w", err)
	}

	if wire.Mapping == nil {
		return nil, errors.New("invalid categorization structure: missing mapping array")
	}

	out := &Mapping{Mapping: make([]Entry, 0, len(*wire.Mapping))}

	for i, e := range *wire.Mapping {
		if e.Value == nil {
			return nil, fmt.Errorf("mapping entry %d: missing value", i)
		}

		if e.Categories == nil {
			return nil, fmt.Errorf("mapping entry %q: missing categories", *e.Value)
		}

		out.Mapping = append(out.Mapping, Entry{Value: *e.Value, Categories: *e.Categories})
	}

	return out, nil
}
