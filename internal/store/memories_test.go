package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/iammorganparry/memomap/internal/models"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func testMemory(id int64, mood models.Mood, date string) *models.Memory {
	return &models.Memory{
		ID:          id,
		Title:       "Trip",
		Description: "First hike",
		Date:        date,
		Mood:        mood,
		Lat:         40.0,
		Lng:         -74.0,
		CreatedAt:   id,
	}
}

func TestMemoryStoreCRUD(t *testing.T) {
	db := newTestDB(t)
	s := NewMemoryStore(db)

	t.Run("Insert and GetByID", func(t *testing.T) {
		m := testMemory(1, models.MoodHappy, "2024-05-01")
		if err := s.Insert(m); err != nil {
			t.Fatalf("insert: %v", err)
		}

		got, err := s.GetByID(1)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got == nil {
			t.Fatal("expected memory, got nil")
		}
		if got.Title != "Trip" || got.Description != "First hike" || got.Date != "2024-05-01" {
			t.Fatalf("fields do not match input: %+v", got)
		}
		if got.Mood != models.MoodHappy || got.Lat != 40.0 || got.Lng != -74.0 {
			t.Fatalf("fields do not match input: %+v", got)
		}
	})

	t.Run("GetByID on missing id returns nil", func(t *testing.T) {
		got, err := s.GetByID(999)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != nil {
			t.Fatalf("expected nil, got %+v", got)
		}
	})

	t.Run("Update preserves created_at", func(t *testing.T) {
		m := testMemory(1, models.MoodPeaceful, "2024-06-01")
		m.Title = "Night walk"
		m.Lat, m.Lng = 41.0, -73.0
		if err := s.Update(m); err != nil {
			t.Fatalf("update: %v", err)
		}

		got, _ := s.GetByID(1)
		if got.Title != "Night walk" || got.Mood != models.MoodPeaceful {
			t.Fatalf("update not applied: %+v", got)
		}
		if got.CreatedAt != 1 {
			t.Fatalf("created_at changed on update: %d", got.CreatedAt)
		}
	})

	t.Run("Update on missing id reports not found", func(t *testing.T) {
		err := s.Update(testMemory(999, models.MoodHappy, "2024-01-01"))
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Delete removes exactly the matching record", func(t *testing.T) {
		if err := s.Insert(testMemory(2, models.MoodSad, "2024-07-01")); err != nil {
			t.Fatalf("insert: %v", err)
		}
		if err := s.Delete(2); err != nil {
			t.Fatalf("delete: %v", err)
		}
		got, _ := s.GetByID(2)
		if got != nil {
			t.Fatal("memory still present after delete")
		}
		if got, _ := s.GetByID(1); got == nil {
			t.Fatal("delete removed an unrelated record")
		}
	})

	t.Run("Delete on missing id reports not found", func(t *testing.T) {
		if err := s.Delete(999); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestMemoryStoreList(t *testing.T) {
	db := newTestDB(t)
	s := NewMemoryStore(db)

	seed := []*models.Memory{
		testMemory(1, models.MoodHappy, "2024-05-01"),
		testMemory(2, models.MoodHappy, "2024-06-15"),
		testMemory(3, models.MoodPeaceful, "2024-06-20"),
		testMemory(4, models.MoodSad, "2024-07-01"),
	}
	for _, m := range seed {
		if err := s.Insert(m); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	t.Run("empty filter returns everything oldest first", func(t *testing.T) {
		got, err := s.List(models.Filter{})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(got) != 4 {
			t.Fatalf("expected 4, got %d", len(got))
		}
		if got[0].ID != 1 || got[3].ID != 4 {
			t.Fatalf("wrong order: %d..%d", got[0].ID, got[3].ID)
		}
	})

	t.Run("mood filter", func(t *testing.T) {
		got, _ := s.List(models.Filter{Mood: models.MoodHappy})
		if len(got) != 2 {
			t.Fatalf("expected 2 happy memories, got %d", len(got))
		}
		for _, m := range got {
			if m.Mood != models.MoodHappy {
				t.Fatalf("wrong mood in result: %s", m.Mood)
			}
		}
	})

	t.Run("date range filter", func(t *testing.T) {
		got, _ := s.List(models.Filter{From: "2024-06-01", To: "2024-06-30"})
		if len(got) != 2 {
			t.Fatalf("expected 2 in range, got %d", len(got))
		}
	})

	t.Run("conjunction of mood and range", func(t *testing.T) {
		got, _ := s.List(models.Filter{Mood: models.MoodHappy, From: "2024-06-01", To: "2024-06-30"})
		if len(got) != 1 || got[0].ID != 2 {
			t.Fatalf("expected only memory 2, got %+v", got)
		}
	})

	t.Run("mood with no matches returns empty", func(t *testing.T) {
		got, _ := s.List(models.Filter{Mood: models.MoodExcited})
		if len(got) != 0 {
			t.Fatalf("expected empty, got %d", len(got))
		}
	})
}

func TestMemoryStoreRandom(t *testing.T) {
	db := newTestDB(t)
	s := NewMemoryStore(db)

	t.Run("empty collection returns nil", func(t *testing.T) {
		m, err := s.Random()
		if err != nil {
			t.Fatalf("random: %v", err)
		}
		if m != nil {
			t.Fatalf("expected nil on empty collection, got %+v", m)
		}
	})

	t.Run("always a member of the collection", func(t *testing.T) {
		ids := map[int64]bool{1: true, 2: true, 3: true}
		for id := range ids {
			if err := s.Insert(testMemory(id, models.MoodHappy, "2024-05-01")); err != nil {
				t.Fatalf("seed: %v", err)
			}
		}
		for i := 0; i < 20; i++ {
			m, err := s.Random()
			if err != nil {
				t.Fatalf("random: %v", err)
			}
			if m == nil || !ids[m.ID] {
				t.Fatalf("random returned non-member: %+v", m)
			}
		}
	})
}

func TestMemoryStoreReplaceAll(t *testing.T) {
	db := newTestDB(t)
	s := NewMemoryStore(db)

	if err := s.Insert(testMemory(1, models.MoodHappy, "2024-05-01")); err != nil {
		t.Fatalf("seed: %v", err)
	}

	t.Run("replaces the whole collection", func(t *testing.T) {
		err := s.ReplaceAll([]*models.Memory{
			testMemory(10, models.MoodCool, "2025-01-01"),
			testMemory(11, models.MoodSad, "2025-02-01"),
		})
		if err != nil {
			t.Fatalf("replace: %v", err)
		}

		got, _ := s.List(models.Filter{})
		if len(got) != 2 {
			t.Fatalf("expected 2 after replace, got %d", len(got))
		}
		if old, _ := s.GetByID(1); old != nil {
			t.Fatal("prior record survived replace")
		}
	})

	t.Run("failure keeps prior collection", func(t *testing.T) {
		// Duplicate primary key forces the transaction to roll back.
		err := s.ReplaceAll([]*models.Memory{
			testMemory(20, models.MoodHappy, "2025-03-01"),
			testMemory(20, models.MoodHappy, "2025-03-02"),
		})
		if err == nil {
			t.Fatal("expected error on duplicate ids")
		}

		got, _ := s.List(models.Filter{})
		if len(got) != 2 || got[0].ID != 10 {
			t.Fatalf("prior collection not retained: %+v", got)
		}
	})

	t.Run("export round-trips through replace", func(t *testing.T) {
		exported, err := s.ExportAll()
		if err != nil {
			t.Fatalf("export: %v", err)
		}
		if err := s.ReplaceAll(exported); err != nil {
			t.Fatalf("reimport: %v", err)
		}
		again, _ := s.ExportAll()
		if len(again) != len(exported) {
			t.Fatalf("round trip changed size: %d != %d", len(again), len(exported))
		}
		for i := range again {
			if *again[i] != *exported[i] {
				t.Fatalf("round trip changed record %d: %+v != %+v", i, again[i], exported[i])
			}
		}
	})
}

func TestMetaStore(t *testing.T) {
	db := newTestDB(t)
	s := NewMetaStore(db)

	shown, err := s.WelcomeShown()
	if err != nil {
		t.Fatalf("read flag: %v", err)
	}
	if shown {
		t.Fatal("welcome flag set on fresh db")
	}

	if err := s.MarkWelcomeShown(); err != nil {
		t.Fatalf("set flag: %v", err)
	}
	// Idempotent
	if err := s.MarkWelcomeShown(); err != nil {
		t.Fatalf("set flag again: %v", err)
	}

	shown, _ = s.WelcomeShown()
	if !shown {
		t.Fatal("welcome flag not persisted")
	}
}
