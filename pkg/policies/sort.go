// pkg/policies/sort.go

package policies

import (
	"sort"
	"strings"
)

// SortField names a sortable Policy column.
type SortField string

const (
	SortByName         SortField = "name"
	SortByType         SortField = "type"
	SortByStatus       SortField = "status"
	SortByPriority     SortField = "priority"
	SortByLastModified SortField = "lastModified"
)

// Sort orders policies by the given field, stably. A nil priority compares
// less than every numeric value, so ascending order puts priority-less
// policies first and descending order puts them last.
func Sort(list []Policy, field SortField, descending bool) {
	sort.SliceStable(list, func(i, j int) bool {
		less := lessByField(list[i], list[j], field)
		if descending {
			return lessByField(list[j], list[i], field)
		}
		return less
	})
}

func lessByField(a, b Policy, field SortField) bool {
	switch field {
	case SortByType:
		return a.Type < b.Type
	case SortByStatus:
		return a.Status < b.Status
	case SortByPriority:
		return lessPriority(a.Priority, b.Priority)
	case SortByLastModified:
		return a.LastModified.Before(b.LastModified)
	default:
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	}
}

// lessPriority is a total order over optional priorities with no incomparable
// pairs: nil < any number, nil == nil.
func lessPriority(a, b *int) bool {
	switch {
	case a == nil && b == nil:
		return false
	case a == nil:
		return true
	case b == nil:
		return false
	default:
		return *a < *b
	}
}
