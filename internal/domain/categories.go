package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Categories is the registry mapping each discipline to its ordered list
// of category names. Both discipline and category order follow insertion
// order so that flattened views and exports stay deterministic; a plain
// map cannot provide that, hence the explicit order slice.
//
// The registry is competition-format configuration rather than per-event
// data: the manager's ClearAll deliberately leaves it untouched.
type Categories struct {
	order  []string
	byName map[string][]string
}

// NewCategories returns an empty registry.
func NewCategories() *Categories {
	return &Categories{byName: make(map[string][]string)}
}

// AddDiscipline registers a new discipline with no categories.
// Adding an existing discipline is a no-op.
func (c *Categories) AddDiscipline(discipline string) {
	if _, ok := c.byName[discipline]; ok {
		return
	}
	c.order = append(c.order, discipline)
	c.byName[discipline] = []string{}
}

// RemoveDiscipline deletes a discipline and all its categories.
// Removing an unknown discipline is a no-op.
func (c *Categories) RemoveDiscipline(discipline string) {
	if _, ok := c.byName[discipline]; !ok {
		return
	}
	delete(c.byName, discipline)
	for i, name := range c.order {
		if name == discipline {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// AddCategory appends a category to a discipline, creating the
// discipline first if needed. Duplicate categories within a discipline
// are ignored.
func (c *Categories) AddCategory(discipline, category string) {
	c.AddDiscipline(discipline)
	for _, existing := range c.byName[discipline] {
		if existing == category {
			return
		}
	}
	c.byName[discipline] = append(c.byName[discipline], category)
}

// RemoveCategory deletes one category from a discipline. Unknown
// disciplines or categories are a no-op.
func (c *Categories) RemoveCategory(discipline, category string) {
	cats, ok := c.byName[discipline]
	if !ok {
		return
	}
	for i, existing := range cats {
		if existing == category {
			c.byName[discipline] = append(cats[:i], cats[i+1:]...)
			return
		}
	}
}

// Disciplines returns the discipline names in insertion order.
func (c *Categories) Disciplines() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// For returns the ordered categories of one discipline. An unknown
// discipline yields an empty slice, not an error.
func (c *Categories) For(discipline string) []string {
	cats := c.byName[discipline]
	out := make([]string, len(cats))
	copy(out, cats)
	return out
}

// All returns every category name flattened discipline-major in
// insertion order, without discipline prefixes.
func (c *Categories) All() []string {
	var out []string
	for _, discipline := range c.order {
		out = append(out, c.byName[discipline]...)
	}
	return out
}

// AllPrefixed returns every category flattened discipline-major in
// insertion order, each formatted as "<Discipline> - <Category>".
func (c *Categories) AllPrefixed() []string {
	var out []string
	for _, discipline := range c.order {
		for _, cat := range c.byName[discipline] {
			out = append(out, discipline+" - "+cat)
		}
	}
	return out
}

// Len returns the number of registered disciplines.
func (c *Categories) Len() int { return len(c.order) }

// Clone returns an independent copy of the registry.
func (c *Categories) Clone() *Categories {
	clone := NewCategories()
	for _, discipline := range c.order {
		clone.AddDiscipline(discipline)
		for _, cat := range c.byName[discipline] {
			clone.AddCategory(discipline, cat)
		}
	}
	return clone
}

// MarshalJSON encodes the registry as a JSON object whose keys appear in
// discipline insertion order, matching the event-file schema's
// discipline-to-categories mapping.
func (c *Categories) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, discipline := range c.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(discipline)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		cats, err := json.Marshal(c.byName[discipline])
		if err != nil {
			return nil, err
		}
		buf.Write(cats)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a discipline-to-categories object, preserving
// the key order of the document. Standard map decoding would randomize
// discipline order and break deterministic flattening.
func (c *Categories) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("categories: expected object, got %v", tok)
	}

	c.order = nil
	c.byName = make(map[string][]string)

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		discipline, ok := tok.(string)
		if !ok {
			return fmt.Errorf("categories: expected discipline name, got %v", tok)
		}

		var cats []string
		if err := dec.Decode(&cats); err != nil {
			return fmt.Errorf("categories %q: %w", discipline, err)
		}

		c.AddDiscipline(discipline)
		for _, cat := range cats {
			c.AddCategory(discipline, cat)
		}
	}

	// Consume the closing brace.
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}
