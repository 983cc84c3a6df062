package drilldown

import "github.com/google/uuid"

// Stack is the ordered sequence of open drill-down layers, bottom (oldest) to
// top (newest/active). It is the only mutable state in this package and is
// owned by whoever constructs it; all four mutations are synchronous and
// total (no error paths). The zero depth means "no overlay at all".
//
// Stack is not safe for concurrent use. The TUI mutates it exclusively from
// the bubbletea update loop, which is single-threaded.
type Stack struct {
	items []Item
}

func New() *Stack {
	return &Stack{}
}

// Push assigns a fresh id to item, appends it as the new top and returns the
// id. Any caller-supplied ID is overwritten. Push never fails; depth is not
// capped (the visual policy saturates instead, see StyleFor).
func (s *Stack) Push(item Item) string {
	item.ID = uuid.NewString()
	s.items = append(s.items, item)
	return item.ID
}

// Pop removes the top item. On an empty stack it is a no-op.
func (s *Stack) Pop() {
	if len(s.items) == 0 {
		return
	}
	s.items = s.items[:len(s.items)-1]
}

// PopTo truncates the stack so the item with the given id becomes the new
// top. Equivalent to repeated Pop until that item is topmost. If id is not on
// the stack the call is a no-op and the stack is left unchanged.
func (s *Stack) PopTo(id string) {
	i := s.IndexOf(id)
	if i < 0 {
		return
	}
	s.items = s.items[:i+1]
}

// Clear empties the stack unconditionally. Idempotent.
func (s *Stack) Clear() {
	s.items = nil
}

func (s *Stack) Len() int {
	return len(s.items)
}

// IndexOf returns the 0-based depth of id, or -1 if id is not on the stack.
func (s *Stack) IndexOf(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

// Top returns the current topmost item.
func (s *Stack) Top() (Item, bool) {
	if len(s.items) == 0 {
		return Item{}, false
	}
	return s.items[len(s.items)-1], true
}

// Items returns a copy of the stack, bottom first. Mutating the returned
// slice does not affect the stack.
func (s *Stack) Items() []Item {
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// TrailFor returns the breadcrumb trail for the layer at index i: the
// inclusive prefix items[0..i]. The trail is derived on every call, never
// stored. Out-of-range indexes return nil.
func (s *Stack) TrailFor(i int) []Item {
	if i < 0 || i >= len(s.items) {
		return nil
	}
	out := make([]Item, i+1)
	copy(out, s.items[:i+1])
	return out
}
