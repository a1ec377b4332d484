package competition

import (
	"sort"

	"github.com/openfreestyle/scorekeep/internal/domain"
)

// UnassignedLabel stands in for an empty discipline or category when
// riders are grouped for display and export.
const UnassignedLabel = "Unassigned"

// RiderGroup is one display/export group of riders under a shared key.
// Groups are returned as an ordered slice rather than a map so that
// iteration order (group-creation order) is deterministic.
type RiderGroup struct {
	// Key is the group label, e.g. "PARK - Open Men" or "Unassigned".
	Key string

	// Riders are the group members in the view's documented sort order.
	Riders []*domain.Rider
}

// CategoriesWithRiders groups riders by "<discipline> - <category>".
// Empty discipline or category parts render as "Unassigned"; with an
// empty discipline the key is the category text alone. Groups appear in
// creation order (riders visited in ascending id), and riders within a
// group are sorted by name ascending, case-sensitive.
func (m *Manager) CategoriesWithRiders() []RiderGroup {
	groups := m.groupRiders(categoryKey)
	for _, g := range groups {
		riders := g.Riders
		sort.SliceStable(riders, func(i, j int) bool {
			return riders[i].Name < riders[j].Name
		})
	}
	return groups
}

// DisciplinesWithRiders groups riders by discipline (or "Unassigned"),
// with each group's riders sorted by (category, name) ascending.
func (m *Manager) DisciplinesWithRiders() []RiderGroup {
	groups := m.groupRiders(disciplineKey)
	for _, g := range groups {
		riders := g.Riders
		sort.SliceStable(riders, func(i, j int) bool {
			if riders[i].Category != riders[j].Category {
				return riders[i].Category < riders[j].Category
			}
			return riders[i].Name < riders[j].Name
		})
	}
	return groups
}

// groupRiders walks riders in ascending id order and buckets them under
// keyFn, preserving first-seen group order.
func (m *Manager) groupRiders(keyFn func(*domain.Rider) string) []RiderGroup {
	var groups []RiderGroup
	index := make(map[string]int)

	for _, rider := range m.Riders() {
		key := keyFn(rider)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, RiderGroup{Key: key})
		}
		groups[i].Riders = append(groups[i].Riders, rider)
	}
	return groups
}

func categoryKey(r *domain.Rider) string {
	category := r.Category
	if category == "" {
		category = UnassignedLabel
	}
	if r.Discipline == "" {
		return category
	}
	return r.Discipline + " - " + category
}

func disciplineKey(r *domain.Rider) string {
	if r.Discipline == "" {
		return UnassignedLabel
	}
	return r.Discipline
}
