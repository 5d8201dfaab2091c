package hiring

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// CategoryScore is the points awarded for one rubric category.
type CategoryScore struct {
	Category string
	Points   int
	Max      int
}

// Breakdown is an ordered list of per-category scores. On the wire it
// is a JSON object keyed by category name, in rubric order, matching
// the shape the dashboard and chat front ends already consume.
type Breakdown []CategoryScore

type categoryPoints struct {
	Points int `json:"points"`
	Max    int `json:"max"`
}

// Get returns the entry for a category, if present.
func (b Breakdown) Get(category string) (CategoryScore, bool) {
	for _, c := range b {
		if c.Category == category {
			return c, true
		}
	}
	return CategoryScore{}, false
}

// Total sums awarded points across all categories.
func (b Breakdown) Total() int {
	total := 0
	for _, c := range b {
		total += c.Points
	}
	return total
}

func (b Breakdown) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range b {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(c.Category)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(categoryPoints{Points: c.Points, Max: c.Max})
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (b *Breakdown) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("breakdown: expected object, got %v", tok)
	}

	out := Breakdown{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("breakdown: expected string key, got %v", keyTok)
		}

		var val categoryPoints
		if err := dec.Decode(&val); err != nil {
			return err
		}
		out = append(out, CategoryScore{Category: key, Points: val.Points, Max: val.Max})
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*b = out
	return nil
}
