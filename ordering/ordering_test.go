package ordering

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	id string
}

func itemID(it item) string { return it.id }

func items(ids ...string) []item {
	out := make([]item, len(ids))
	for i, id := range ids {
		out[i] = item{id: id}
	}
	return out
}

func TestReorderInsertsBeforeTarget(t *testing.T) {
	tests := []struct {
		name    string
		moved   string
		target  string
		want    []string
		changed bool
	}{
		{name: "later item moves up", moved: "D", target: "B", want: []string{"A", "D", "B", "C"}, changed: true},
		{name: "earlier item moves down", moved: "A", target: "C", want: []string{"B", "A", "C", "D"}, changed: true},
		{name: "adjacent move behaves like a swap", moved: "C", target: "B", want: []string{"A", "C", "B", "D"}, changed: true},
		{name: "already directly before target", moved: "A", target: "B", want: []string{"A", "B", "C", "D"}},
		{name: "to front", moved: "D", target: "A", want: []string{"D", "A", "B", "C"}, changed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := items("A", "B", "C", "D")

			out, updates := Reorder(in, itemID, tt.moved, tt.target)

			assert.Equal(t, tt.want, IDs(out, itemID))
			assert.Equal(t, []string{"A", "B", "C", "D"}, IDs(in, itemID), "input must not be modified")
			if !tt.changed {
				assert.Empty(t, updates)
				return
			}
			assert.Equal(t, Updates(tt.want), updates)
		})
	}
}

func TestReorderSamePositionIsIdentity(t *testing.T) {
	in := items("A", "B", "C")

	out, updates := Reorder(in, itemID, "B", "B")

	assert.Equal(t, []string{"A", "B", "C"}, IDs(out, itemID))
	assert.Empty(t, updates)
}

func TestReorderUnknownIDLeavesOrder(t *testing.T) {
	in := items("A", "B")

	out, updates := Reorder(in, itemID, "Z", "A")
	assert.Equal(t, []string{"A", "B"}, IDs(out, itemID))
	assert.Empty(t, updates)

	out, updates = Reorder(in, itemID, "A", "Z")
	assert.Equal(t, []string{"A", "B"}, IDs(out, itemID))
	assert.Empty(t, updates)
}

func TestReorderProducesTotalOrder(t *testing.T) {
	in := items("A", "B", "C", "D", "E", "F")
	moves := [][2]string{{"F", "A"}, {"B", "E"}, {"C", "C"}, {"A", "D"}, {"E", "F"}}

	cur := in
	for _, m := range moves {
		next, updates := Reorder(cur, itemID, m[0], m[1])
		if updates != nil {
			require.Len(t, updates, len(next))
			seen := map[int]bool{}
			for i, u := range updates {
				assert.Equal(t, i, u.Order)
				assert.Equal(t, next[i].id, u.ID)
				assert.False(t, seen[u.Order], "order values must be distinct")
				seen[u.Order] = true
			}
		}
		cur = next
	}
	assert.True(t, IsPermutation(IDs(in, itemID), IDs(cur, itemID)))
}

func TestArrange(t *testing.T) {
	in := items("A", "B", "C")

	out, ok := Arrange(in, itemID, []string{"C", "A", "B"})
	require.True(t, ok)
	assert.Equal(t, []string{"C", "A", "B"}, IDs(out, itemID))

	_, ok = Arrange(in, itemID, []string{"C", "A"})
	assert.False(t, ok)

	_, ok = Arrange(in, itemID, []string{"C", "A", "A"})
	assert.False(t, ok)
}

func TestIsPermutation(t *testing.T) {
	assert.True(t, IsPermutation(nil, nil))
	assert.True(t, IsPermutation([]string{"a", "b"}, []string{"b", "a"}))
	assert.False(t, IsPermutation([]string{"a", "b"}, []string{"a", "a"}))
	assert.False(t, IsPermutation([]string{"a", "b"}, []string{"a", "c"}))
	assert.False(t, IsPermutation([]string{"a"}, []string{"a", "b"}))
}
