// Package ordering computes new sibling orders for reorder gestures.
//
// Everything here is pure: inputs are never modified and every result is
// returned in a fresh slice.
package ordering

// Update is one persisted order value.
type Update struct {
	ID    string `json:"id"`
	Order int    `json:"order"`
}

// Reorder moves the item identified by movedID so it sits immediately before
// targetID. The moved item is removed first and the target's index is looked
// up in what remains, so adjacent moves behave like a swap and distant moves
// shift everything in between by one slot.
//
// The returned updates carry the new 0-based index of every item. When the
// resulting order equals the input (including movedID == targetID) updates is
// nil. Unknown ids are a caller error; the input order is returned unchanged.
func Reorder[T any](items []T, id func(T) string, movedID, targetID string) ([]T, []Update) {
	out := make([]T, len(items))
	copy(out, items)

	if movedID == targetID {
		return out, nil
	}

	from := indexOf(items, id, movedID)
	if from < 0 || indexOf(items, id, targetID) < 0 {
		return out, nil
	}

	moved := items[from]
	rest := make([]T, 0, len(items)-1)
	rest = append(rest, items[:from]...)
	rest = append(rest, items[from+1:]...)

	to := indexOf(rest, id, targetID)
	out = out[:0]
	out = append(out, rest[:to]...)
	out = append(out, moved)
	out = append(out, rest[to:]...)

	if SameOrder(IDs(items, id), IDs(out, id)) {
		return out, nil
	}
	return out, Updates(IDs(out, id))
}

// Arrange returns items rearranged to follow order. It reports false, and
// returns nil, when order is not a permutation of the item ids.
func Arrange[T any](items []T, id func(T) string, order []string) ([]T, bool) {
	if !IsPermutation(IDs(items, id), order) {
		return nil, false
	}
	byID := make(map[string]T, len(items))
	for _, it := range items {
		byID[id(it)] = it
	}
	out := make([]T, 0, len(order))
	for _, oid := range order {
		out = append(out, byID[oid])
	}
	return out, true
}

// Updates maps an ordered id list to 0-based order values.
func Updates(ids []string) []Update {
	out := make([]Update, len(ids))
	for i, id := range ids {
		out[i] = Update{ID: id, Order: i}
	}
	return out
}

// IDs extracts the ids of items in sequence.
func IDs[T any](items []T, id func(T) string) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = id(it)
	}
	return out
}

// Contains reports whether an item with the given id is present.
func Contains[T any](items []T, id func(T) string, want string) bool {
	return indexOf(items, id, want) >= 0
}

// SameOrder reports whether a and b list the same ids in the same sequence.
func SameOrder(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// IsPermutation reports whether proposed holds exactly the ids of current,
// each once, in any order.
func IsPermutation(current, proposed []string) bool {
	if len(current) != len(proposed) {
		return false
	}
	seen := make(map[string]int, len(current))
	for _, id := range current {
		seen[id]++
	}
	for _, id := range proposed {
		if seen[id] == 0 {
			return false
		}
		seen[id]--
	}
	return true
}

func indexOf[T any](items []T, id func(T) string, want string) int {
	for i, it := range items {
		if id(it) == want {
			return i
		}
	}
	return -1
}
