package policies_test

import (
	"testing"
	"time"

	"github.com/CodeMonkeyCybersecurity/metis/pkg/policies"
	"github.com/stretchr/testify/assert"
)

func priorityOf(n int) *int { return &n }

func TestSort_PriorityNilOrdersBeforeEveryNumber(t *testing.T) {
	list := []policies.Policy{
		{Name: "critical", Priority: priorityOf(1)},
		{Name: "no-priority", Priority: nil},
		{Name: "medium", Priority: priorityOf(3)},
		{Name: "another-nil", Priority: nil},
	}

	policies.Sort(list, policies.SortByPriority, false)

	assert.Equal(t, "no-priority", list[0].Name)
	assert.Equal(t, "another-nil", list[1].Name)
	assert.Equal(t, "critical", list[2].Name)
	assert.Equal(t, "medium", list[3].Name)
}

func TestSort_PriorityDescendingPutsNilLast(t *testing.T) {
	list := []policies.Policy{
		{Name: "no-priority", Priority: nil},
		{Name: "medium", Priority: priorityOf(3)},
		{Name: "critical", Priority: priorityOf(1)},
	}

	policies.Sort(list, policies.SortByPriority, true)

	assert.Equal(t, "medium", list[0].Name)
	assert.Equal(t, "critical", list[1].Name)
	assert.Equal(t, "no-priority", list[2].Name)
}

func TestSort_ByNameIsCaseInsensitive(t *testing.T) {
	list := []policies.Policy{
		{Name: "zebra"},
		{Name: "Alpha"},
		{Name: "mango"},
	}

	policies.Sort(list, policies.SortByName, false)

	assert.Equal(t, []string{"Alpha", "mango", "zebra"},
		[]string{list[0].Name, list[1].Name, list[2].Name})
}

func TestSort_IsStableForEqualKeys(t *testing.T) {
	list := []policies.Policy{
		{Name: "first", Priority: priorityOf(2)},
		{Name: "second", Priority: priorityOf(2)},
		{Name: "third", Priority: priorityOf(2)},
	}

	policies.Sort(list, policies.SortByPriority, false)

	assert.Equal(t, "first", list[0].Name)
	assert.Equal(t, "second", list[1].Name)
	assert.Equal(t, "third", list[2].Name)
}

func TestSort_ByLastModified(t *testing.T) {
	older := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	list := []policies.Policy{
		{Name: "newer", LastModified: newer},
		{Name: "older", LastModified: older},
	}

	policies.Sort(list, policies.SortByLastModified, false)
	assert.Equal(t, "older", list[0].Name)

	policies.Sort(list, policies.SortByLastModified, true)
	assert.Equal(t, "newer", list[0].Name)
}
