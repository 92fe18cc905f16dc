package queue

import (
	"testing"

	"github.com/desertthunder/songbox/internal/models"
)

func item(url string) models.QueueItem {
	return models.QueueItem{URL: url}
}

func assertState(t *testing.T, s *Store, urls []string, current int) {
	t.Helper()
	snap := s.State()
	if len(snap.Items) != len(urls) {
		t.Fatalf("expected %d items, got %d", len(urls), len(snap.Items))
	}
	for i, url := range urls {
		if snap.Items[i].URL != url {
			t.Errorf("item %d: expected %s, got %s", i, url, snap.Items[i].URL)
		}
	}
	if snap.Current != current {
		t.Errorf("expected current %d, got %d", current, snap.Current)
	}
}

func TestAdd(t *testing.T) {
	t.Run("AppendsWithoutSelecting", func(t *testing.T) {
		s := New()
		s.Add(item("a"))
		s.Add(item("b"))
		assertState(t, s, []string{"a", "b"}, -1)
	})

	t.Run("IgnoresEmptyURL", func(t *testing.T) {
		s := New()
		s.Add(models.QueueItem{Title: "no url"})
		if s.Len() != 0 {
			t.Errorf("expected empty queue, got %d items", s.Len())
		}
	})

	t.Run("IgnoresDuplicateURL", func(t *testing.T) {
		s := New()
		s.Add(item("a"))
		s.Add(models.QueueItem{URL: "a", Title: "other"})
		assertState(t, s, []string{"a"}, -1)
		if got := s.State().Items[0].Title; got != "" {
			t.Errorf("duplicate add must not touch the existing item, got title %q", got)
		}
	})

	t.Run("DoesNotMoveCurrent", func(t *testing.T) {
		s := New()
		s.PlayNow(item("a"))
		s.Add(item("b"))
		assertState(t, s, []string{"a", "b"}, 0)
	})
}

func TestPlayNow(t *testing.T) {
	t.Run("PrependsNewItem", func(t *testing.T) {
		s := New()
		s.Add(item("a"))
		s.Add(item("b"))
		s.PlayNow(item("c"))
		assertState(t, s, []string{"c", "a", "b"}, 0)
	})

	t.Run("MovesExistingToFrontPreservingOrder", func(t *testing.T) {
		s := New()
		s.Add(item("a"))
		s.Add(item("b"))
		s.Add(item("c"))
		s.PlayNow(item("b"))
		assertState(t, s, []string{"b", "a", "c"}, 0)
	})

	t.Run("MergesMetadataNewFieldsWin", func(t *testing.T) {
		s := New()
		s.Add(models.QueueItem{URL: "a", Title: "old", Artist: "keep"})
		s.PlayNow(models.QueueItem{URL: "a", Title: "new"})
		got := s.State().Items[0]
		if got.Title != "new" {
			t.Errorf("expected merged title new, got %s", got.Title)
		}
		if got.Artist != "keep" {
			t.Errorf("expected retained artist keep, got %s", got.Artist)
		}
	})

	t.Run("IdempotentPosition", func(t *testing.T) {
		s := New()
		s.Add(item("a"))
		s.PlayNow(item("x"))
		s.PlayNow(item("x"))
		assertState(t, s, []string{"x", "a"}, 0)
	})

	t.Run("IgnoresEmptyURL", func(t *testing.T) {
		s := New()
		s.PlayNow(models.QueueItem{})
		assertState(t, s, nil, -1)
	})
}

func TestRemove(t *testing.T) {
	t.Run("IndexAdjustment", func(t *testing.T) {
		// queue [a b c] playing c: removing b keeps c current.
		s := New()
		s.PlayNow(item("a"))
		s.Add(item("b"))
		s.Add(item("c"))
		s.Next()
		s.Next()
		assertState(t, s, []string{"a", "b", "c"}, 2)

		s.Remove("b")
		assertState(t, s, []string{"a", "c"}, 1)
		if got := s.State().CurrentItem.URL; got != "c" {
			t.Errorf("expected still playing c, got %s", got)
		}
	})

	t.Run("CurrentItemFallsThrough", func(t *testing.T) {
		// queue [a b c] playing b: removing b points at c.
		s := New()
		s.PlayNow(item("a"))
		s.Add(item("b"))
		s.Add(item("c"))
		s.Next()
		assertState(t, s, []string{"a", "b", "c"}, 1)

		s.Remove("b")
		assertState(t, s, []string{"a", "c"}, 1)
		if got := s.State().CurrentItem.URL; got != "c" {
			t.Errorf("expected fallthrough to c, got %s", got)
		}
	})

	t.Run("LastCurrentClampsDown", func(t *testing.T) {
		s := New()
		s.PlayNow(item("a"))
		s.Add(item("b"))
		s.Next()
		s.Remove("b")
		assertState(t, s, []string{"a"}, 0)
	})

	t.Run("LastItemEmptiesQueue", func(t *testing.T) {
		s := New()
		s.PlayNow(item("a"))
		s.Remove("a")
		assertState(t, s, nil, -1)
		if s.State().CurrentItem != nil {
			t.Error("expected nil current item for empty queue")
		}
	})

	t.Run("UnknownURLIsNoop", func(t *testing.T) {
		s := New()
		s.PlayNow(item("a"))
		s.Remove("zzz")
		assertState(t, s, []string{"a"}, 0)
	})
}

func TestNavigation(t *testing.T) {
	t.Run("NoWraparoundForward", func(t *testing.T) {
		s := New()
		s.PlayNow(item("a"))
		s.Add(item("b"))
		s.Next()
		s.Next()
		assertState(t, s, []string{"a", "b"}, 1)
	})

	t.Run("NoWraparoundBackward", func(t *testing.T) {
		s := New()
		s.PlayNow(item("a"))
		s.Add(item("b"))
		s.Previous()
		assertState(t, s, []string{"a", "b"}, 0)
	})

	t.Run("NextWithoutSelectionIsNoop", func(t *testing.T) {
		s := New()
		s.Add(item("a"))
		s.Next()
		assertState(t, s, []string{"a"}, -1)
	})

	t.Run("HasNextHasPrevious", func(t *testing.T) {
		s := New()
		if s.HasNext() || s.HasPrevious() {
			t.Error("empty queue has no navigation")
		}
		s.PlayNow(item("a"))
		s.Add(item("b"))
		if !s.HasNext() {
			t.Error("expected HasNext at index 0 of 2")
		}
		if s.HasPrevious() {
			t.Error("expected no HasPrevious at index 0")
		}
		s.Next()
		if s.HasNext() {
			t.Error("expected no HasNext at last index")
		}
		if !s.HasPrevious() {
			t.Error("expected HasPrevious at index 1")
		}
	})
}

func TestClear(t *testing.T) {
	s := New()
	s.PlayNow(item("a"))
	s.Add(item("b"))
	s.Clear()
	assertState(t, s, nil, -1)
}

func TestSubscribe(t *testing.T) {
	t.Run("NotifiesAfterMutationSettles", func(t *testing.T) {
		s := New()
		var seen []Snapshot
		s.Subscribe(func(snap Snapshot) {
			seen = append(seen, snap)
		})

		s.PlayNow(item("a"))
		s.Add(item("b"))

		if len(seen) != 2 {
			t.Fatalf("expected 2 notifications, got %d", len(seen))
		}
		if seen[0].Current != 0 || seen[0].Items[0].URL != "a" {
			t.Errorf("first notification saw stale state: %+v", seen[0])
		}
		if len(seen[1].Items) != 2 {
			t.Errorf("second notification expected 2 items, got %d", len(seen[1].Items))
		}
	})

	t.Run("NoopMutationsDoNotNotify", func(t *testing.T) {
		s := New()
		count := 0
		s.Subscribe(func(Snapshot) { count++ })

		s.Add(models.QueueItem{})
		s.Remove("missing")
		s.Next()
		s.Previous()

		if count != 0 {
			t.Errorf("expected no notifications for no-ops, got %d", count)
		}
	})

	t.Run("Unsubscribe", func(t *testing.T) {
		s := New()
		count := 0
		unsub := s.Subscribe(func(Snapshot) { count++ })
		s.Add(item("a"))
		unsub()
		s.Add(item("b"))
		if count != 1 {
			t.Errorf("expected 1 notification after unsubscribe, got %d", count)
		}
	})

	t.Run("SubscriberMayReenterStore", func(t *testing.T) {
		s := New()
		s.Subscribe(func(snap Snapshot) {
			// Reads from inside a callback must not deadlock.
			_ = snap.Current
			s.Len()
		})
		s.Add(item("a"))
	})

	t.Run("SnapshotIsACopy", func(t *testing.T) {
		s := New()
		s.PlayNow(item("a"))
		snap := s.State()
		snap.Items[0].URL = "mutated"
		if got := s.State().Items[0].URL; got != "a" {
			t.Errorf("snapshot mutation leaked into store: %s", got)
		}
	})
}

// TestPlaybackScenario walks the end-to-end flow: play one track, enqueue a
// second, auto-advance on track end, then hit the end of the queue.
func TestPlaybackScenario(t *testing.T) {
	s := New()

	s.PlayNow(item("yt1"))
	assertState(t, s, []string{"yt1"}, 0)

	s.Add(item("yt2"))
	assertState(t, s, []string{"yt1", "yt2"}, 0)

	// Adapter reports ended; the sidebar advances.
	s.Next()
	assertState(t, s, []string{"yt1", "yt2"}, 1)

	// ended on the last track: nothing to advance to.
	s.Next()
	assertState(t, s, []string{"yt1", "yt2"}, 1)
}

// TestInvariants exercises a long mixed operation sequence and checks the two
// structural invariants after every step.
func TestInvariants(t *testing.T) {
	s := New()

	ops := []func(){
		func() { s.Add(item("a")) },
		func() { s.PlayNow(item("b")) },
		func() { s.Add(item("c")) },
		func() { s.PlayNow(item("a")) },
		func() { s.Remove("b") },
		func() { s.Next() },
		func() { s.PlayNow(item("d")) },
		func() { s.Remove("d") },
		func() { s.Previous() },
		func() { s.Remove("a") },
		func() { s.Remove("c") },
		func() { s.Next() },
		func() { s.Clear() },
	}

	for i, op := range ops {
		op()
		snap := s.State()

		seen := map[string]bool{}
		for _, it := range snap.Items {
			if seen[it.URL] {
				t.Fatalf("op %d: duplicate URL %s", i, it.URL)
			}
			seen[it.URL] = true
		}

		if snap.Current != -1 && (snap.Current < 0 || snap.Current >= len(snap.Items)) {
			t.Fatalf("op %d: current %d out of bounds for %d items", i, snap.Current, len(snap.Items))
		}
	}
}
