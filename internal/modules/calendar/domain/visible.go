package domain

import (
	"time"

	disciplinedomain "exodus/internal/modules/discipline/domain"
	progressdomain "exodus/internal/modules/progress/domain"
)

// VisibleDisciplines keeps catalog order. With showCompleted off, entries
// already completed in row are dropped.
func VisibleDisciplines(catalog disciplinedomain.Catalog, date time.Time, row progressdomain.Row, showCompleted bool) []disciplinedomain.Discipline {
	applicable := catalog.Applicable(date)
	if showCompleted {
		return applicable
	}
	out := make([]disciplinedomain.Discipline, 0, len(applicable))
	for _, d := range applicable {
		if row[d.ID] == progressdomain.StatusCompleted {
			continue
		}
		out = append(out, d)
	}
	return out
}
