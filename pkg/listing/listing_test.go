package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	ID   int
	Name string
}

var rowColumns = Columns[row]{
	"id":   func(a, b row) int { return Compare(a.ID, b.ID) },
	"name": func(a, b row) int { return Compare(a.Name, b.Name) },
}

func TestSort(t *testing.T) {
	rows := []row{{3, "Carla"}, {1, "Bruno"}, {2, "Ana"}}

	tests := []struct {
		name        string
		column      string
		order       Order
		expectedIDs []int
		expectError bool
	}{
		{name: "no column keeps order", column: "", order: Asc, expectedIDs: []int{3, 1, 2}},
		{name: "id ascending", column: "id", order: Asc, expectedIDs: []int{1, 2, 3}},
		{name: "id descending", column: "id", order: Desc, expectedIDs: []int{3, 2, 1}},
		{name: "name ascending", column: "NAME", order: Asc, expectedIDs: []int{2, 1, 3}},
		{name: "unknown column", column: "phone", order: Asc, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sorted, err := Sort(rows, rowColumns, tt.column, tt.order)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			ids := make([]int, 0, len(sorted))
			for _, r := range sorted {
				ids = append(ids, r.ID)
			}
			assert.Equal(t, tt.expectedIDs, ids)
		})
	}

	// input slice must not be reordered
	assert.Equal(t, 3, rows[0].ID)
}

func TestParseOrder(t *testing.T) {
	o, err := ParseOrder("")
	require.NoError(t, err)
	assert.Equal(t, Asc, o)

	o, err = ParseOrder(" DESC ")
	require.NoError(t, err)
	assert.Equal(t, Desc, o)

	_, err = ParseOrder("sideways")
	assert.Error(t, err)
}

func TestFilterAndContainsFold(t *testing.T) {
	rows := []row{{1, "John Doe"}, {2, "Jane Smith"}, {3, "Alice Johnson"}}

	got := Filter(rows, func(r row) bool { return ContainsFold(r.Name, "JOHN") })
	assert.Len(t, got, 2)
	assert.Equal(t, 1, got[0].ID)
	assert.Equal(t, 3, got[1].ID)

	assert.Len(t, Filter(rows, func(r row) bool { return ContainsFold(r.Name, "") }), 3)
}
