package drilldown

import (
	"reflect"
	"testing"
)

func TestPush_AppendsAndAssignsFreshIDs(t *testing.T) {
	t.Parallel()

	s := New()
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		before := s.Len()
		id := s.Push(Item{Type: TagContactsList, Title: "All Contacts"})
		if s.Len() != before+1 {
			t.Fatalf("push %d: expected len %d; got %d", i, before+1, s.Len())
		}
		if id == "" {
			t.Fatalf("push %d: expected non-empty id", i)
		}
		if seen[id] {
			t.Fatalf("push %d: id %q reused", i, id)
		}
		seen[id] = true

		top, ok := s.Top()
		if !ok || top.ID != id {
			t.Fatalf("push %d: expected new item on top; got %+v ok=%v", i, top, ok)
		}
	}
}

func TestPush_OverwritesCallerSuppliedID(t *testing.T) {
	t.Parallel()

	s := New()
	id := s.Push(Item{ID: "stale-id", Type: TagDealDetail, DealID: "deal-1", Title: "Acme renewal"})
	if id == "stale-id" {
		t.Fatalf("expected Push to assign a fresh id; kept caller id")
	}
	if got := s.IndexOf("stale-id"); got != -1 {
		t.Fatalf("expected caller id to be unreachable; found at index %d", got)
	}
}

func TestPush_DoesNotTouchItemsBelow(t *testing.T) {
	t.Parallel()

	s := New()
	s.Push(Item{Type: TagContactsList, Title: "All Contacts"})
	below := s.Items()[0]
	s.Push(Item{Type: TagContactDetail, ContactID: "contact-1", Title: "Jane Doe"})

	if got := s.Items()[0]; !reflect.DeepEqual(got, below) {
		t.Fatalf("expected covered item unchanged; before=%+v after=%+v", below, got)
	}
}

func TestPop_EmptyIsNoop(t *testing.T) {
	t.Parallel()

	s := New()
	s.Pop()
	s.Pop()
	if s.Len() != 0 {
		t.Fatalf("expected empty stack; got len %d", s.Len())
	}
}

func TestPop_RemovesExactlyTop(t *testing.T) {
	t.Parallel()

	s := New()
	a := s.Push(Item{Type: TagContactsList, Title: "All Contacts"})
	s.Push(Item{Type: TagContactDetail, ContactID: "contact-1", Title: "Jane Doe"})

	s.Pop()
	if s.Len() != 1 {
		t.Fatalf("expected len 1; got %d", s.Len())
	}
	top, _ := s.Top()
	if top.ID != a {
		t.Fatalf("expected %q on top after pop; got %q", a, top.ID)
	}
}

func TestPopTo_TruncatesToInclusivePrefix(t *testing.T) {
	t.Parallel()

	s := New()
	ids := make([]string, 0, 5)
	for i := 0; i < 5; i++ {
		ids = append(ids, s.Push(Item{Type: TagDealsList, Title: "Deals"}))
	}

	want := s.TrailFor(2)
	s.PopTo(ids[2])
	if s.Len() != 3 {
		t.Fatalf("expected len 3 after PopTo index 2; got %d", s.Len())
	}
	if got := s.Items(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected stack to equal original prefix; got %+v want %+v", got, want)
	}
	top, _ := s.Top()
	if top.ID != ids[2] {
		t.Fatalf("expected %q on top; got %q", ids[2], top.ID)
	}
}

func TestPopTo_EquivalentToRepeatedPop(t *testing.T) {
	t.Parallel()

	a := New()
	b := New()
	var aIDs []string
	for i := 0; i < 6; i++ {
		aIDs = append(aIDs, a.Push(Item{Type: TagTasksList, Title: "Tasks"}))
		b.Push(Item{Type: TagTasksList, Title: "Tasks"})
	}

	a.PopTo(aIDs[1])
	for b.Len() > 2 {
		b.Pop()
	}
	if a.Len() != b.Len() {
		t.Fatalf("expected PopTo and repeated Pop to agree on length; %d vs %d", a.Len(), b.Len())
	}
}

func TestPopTo_UnknownIDLeavesStackUnchanged(t *testing.T) {
	t.Parallel()

	s := New()
	s.Push(Item{Type: TagContactsList, Title: "All Contacts"})
	s.Push(Item{Type: TagContactDetail, ContactID: "contact-1", Title: "Jane Doe"})
	before := s.Items()

	s.PopTo("no-such-id")
	if got := s.Items(); !reflect.DeepEqual(got, before) {
		t.Fatalf("expected unchanged stack; before=%+v after=%+v", before, got)
	}
}

func TestClear_EmptiesAndIsIdempotent(t *testing.T) {
	t.Parallel()

	s := New()
	for i := 0; i < 4; i++ {
		s.Push(Item{Type: TagActivitiesList, Title: "Activities"})
	}
	s.Clear()
	if s.Len() != 0 {
		t.Fatalf("expected len 0 after clear; got %d", s.Len())
	}
	s.Clear()
	if s.Len() != 0 {
		t.Fatalf("expected clear on empty to stay empty; got %d", s.Len())
	}
}

func TestTrailFor_IsInclusivePrefixAtEveryDepth(t *testing.T) {
	t.Parallel()

	s := New()
	for i := 0; i < 5; i++ {
		s.Push(Item{Type: TagCompaniesList, Title: "Companies"})
	}
	all := s.Items()
	for i := 0; i < s.Len(); i++ {
		trail := s.TrailFor(i)
		if !reflect.DeepEqual(trail, all[:i+1]) {
			t.Fatalf("trail for layer %d: got %+v want %+v", i, trail, all[:i+1])
		}
	}
	if got := s.TrailFor(-1); got != nil {
		t.Fatalf("expected nil trail for negative index; got %+v", got)
	}
	if got := s.TrailFor(s.Len()); got != nil {
		t.Fatalf("expected nil trail for out-of-range index; got %+v", got)
	}
}

func TestItems_ReturnsDefensiveCopy(t *testing.T) {
	t.Parallel()

	s := New()
	s.Push(Item{Type: TagContactsList, Title: "All Contacts"})
	got := s.Items()
	got[0].Title = "mutated"

	top, _ := s.Top()
	if top.Title != "All Contacts" {
		t.Fatalf("expected stack unaffected by mutating the copy; got title %q", top.Title)
	}
}

func TestIDsUniqueAcrossPushesAndPops(t *testing.T) {
	t.Parallel()

	s := New()
	seen := map[string]bool{}
	for i := 0; i < 30; i++ {
		id := s.Push(Item{Type: TagDealDetail, DealID: "deal-1", Title: "Deal"})
		if seen[id] {
			t.Fatalf("id %q reassigned after pop", id)
		}
		seen[id] = true
		s.Pop()
	}
}

func TestEmptyTitleStillPushes(t *testing.T) {
	t.Parallel()

	s := New()
	id := s.Push(Item{Type: TagContactsList})
	if id == "" || s.Len() != 1 {
		t.Fatalf("expected push with empty title to succeed; id=%q len=%d", id, s.Len())
	}
}
