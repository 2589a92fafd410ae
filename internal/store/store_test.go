package store

import (
	"errors"
	"testing"

	"pdfscope/internal/search"
)

func sampleMatches(n int) []search.Match {
	out := make([]search.Match, n)
	for i := range out {
		out[i] = search.Match{PageIndex: i, MatchIndex: 0, Text: "cat"}
	}
	return out
}

func TestNew_Defaults(t *testing.T) {
	s := New(0.9)

	if s.CurrentPage() != 1 {
		t.Errorf("Expected current page 1, got %d", s.CurrentPage())
	}
	if s.Scale() != 0.9 {
		t.Errorf("Expected scale 0.9, got %v", s.Scale())
	}
	if s.ActiveIndex() != search.NoActiveMatch {
		t.Errorf("Expected no active match, got %d", s.ActiveIndex())
	}
	if !s.SidebarOpen() {
		t.Error("Expected sidebar open by default")
	}
	if _, ok := s.ActiveMatch(); ok {
		t.Error("ActiveMatch must not dereference the sentinel")
	}
}

func TestSetMatches_KeepsActiveIndexInRange(t *testing.T) {
	s := New(1)
	s.SetMatches(sampleMatches(5))
	if !s.SetActiveIndex(4) {
		t.Fatal("SetActiveIndex(4) should succeed")
	}

	s.SetMatches(sampleMatches(2))
	if s.ActiveIndex() != 1 {
		t.Errorf("Expected active index clamped to 1, got %d", s.ActiveIndex())
	}

	s.SetMatches(nil)
	if s.ActiveIndex() != search.NoActiveMatch {
		t.Errorf("Expected sentinel for empty list, got %d", s.ActiveIndex())
	}
}

func TestSetActiveIndex_RejectsOutOfRange(t *testing.T) {
	s := New(1)
	s.SetMatches(sampleMatches(3))

	for _, idx := range []int{-2, 3, 99} {
		if s.SetActiveIndex(idx) {
			t.Errorf("SetActiveIndex(%d) should be rejected", idx)
		}
	}
	if !s.SetActiveIndex(search.NoActiveMatch) {
		t.Error("sentinel must always be accepted")
	}
	if !s.SetActiveIndex(2) {
		t.Fatal("SetActiveIndex(2) should succeed")
	}
	m, ok := s.ActiveMatch()
	if !ok || m.PageIndex != 2 {
		t.Errorf("Expected active match on page 2, got %+v (%v)", m, ok)
	}
}

func TestSetFile_ResetsSearchState(t *testing.T) {
	s := New(1)
	s.SetSearchQuery("cat")
	s.SetMatches(sampleMatches(3))
	s.SetActiveIndex(1)
	s.SetCurrentPage(3)
	s.SetLoadError(errors.New("boom"))

	s.SetFile(nil)

	if s.SearchQuery() != "" || s.MatchCount() != 0 {
		t.Errorf("Expected search reset, got query %q and %d matches", s.SearchQuery(), s.MatchCount())
	}
	if s.ActiveIndex() != search.NoActiveMatch || s.CurrentPage() != 1 {
		t.Errorf("Expected active sentinel and page 1, got %d / %d", s.ActiveIndex(), s.CurrentPage())
	}
	if s.LoadError() != nil {
		t.Errorf("Expected load error cleared, got %v", s.LoadError())
	}
}

func TestSubscribe_NotifiesChangedFields(t *testing.T) {
	s := New(1)
	var seen []Field
	id := s.Subscribe(func(f Field, _ *Store) {
		seen = append(seen, f)
	})
	if id == "" {
		t.Fatal("Expected subscription id")
	}

	s.SetSearchQuery("cat")
	s.SetSearchQuery("cat") // 未变化，不通知
	s.SetScale(0.8)
	s.ToggleSidebar()

	want := []Field{FieldSearchQuery, FieldScale, FieldSidebar}
	if len(seen) != len(want) {
		t.Fatalf("Expected %v, got %v", want, seen)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("notification %d: expected %s, got %s", i, want[i], seen[i])
		}
	}

	s.Unsubscribe(id)
	s.SetScale(1)
	if len(seen) != len(want) {
		t.Errorf("Unsubscribed listener should not be called, got %v", seen)
	}
}

func TestMatches_ReturnsCopy(t *testing.T) {
	s := New(1)
	s.SetMatches(sampleMatches(2))

	got := s.Matches()
	got[0].Text = "changed"
	if s.Matches()[0].Text != "cat" {
		t.Error("Matches() must not expose internal slice")
	}
}
