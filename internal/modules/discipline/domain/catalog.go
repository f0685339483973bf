package domain

import (
	"fmt"
	"time"

	apperrors "exodus/internal/platform/errors"
)

// Catalog is the ordered, immutable list of disciplines for a season.
type Catalog struct {
	items []Discipline
	index map[string]int
}

func NewCatalog(items []Discipline) (Catalog, error) {
	c := Catalog{items: make([]Discipline, 0, len(items)), index: make(map[string]int, len(items))}
	for _, d := range items {
		if err := d.Validate(); err != nil {
			return Catalog{}, err
		}
		if _, dup := c.index[d.ID]; dup {
			return Catalog{}, fmt.Errorf("%w: duplicate discipline id %q", apperrors.ErrInvalidInput, d.ID)
		}
		c.index[d.ID] = len(c.items)
		c.items = append(c.items, d)
	}
	return c, nil
}

func (c Catalog) Len() int { return len(c.items) }

func (c Catalog) All() []Discipline {
	out := make([]Discipline, len(c.items))
	copy(out, c.items)
	return out
}

func (c Catalog) Find(id string) (Discipline, bool) {
	i, ok := c.index[id]
	if !ok {
		return Discipline{}, false
	}
	return c.items[i], true
}

// Applicable keeps catalog order.
func (c Catalog) Applicable(date time.Time) []Discipline {
	out := make([]Discipline, 0, len(c.items))
	for _, d := range c.items {
		if IsApplicable(d, date) {
			out = append(out, d)
		}
	}
	return out
}
