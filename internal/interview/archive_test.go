package interview

import (
	"context"
	"errors"
	"testing"
	"time"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(gormsqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&ArchiveRecord{}, &Job{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func testSession(id string, turns ...string) Session {
	s := Session{
		ID:        id,
		Category:  MLTheory,
		Tone:      Neutral,
		Verbosity: VerbosityMedium,
		Topic:     "Transformers",
		CreatedAt: time.Now(),
	}
	speaker := SpeakerInterviewer
	for _, text := range turns {
		s.History = append(s.History, Turn{Speaker: speaker, Text: text, Timestamp: time.Now()})
		if speaker == SpeakerInterviewer {
			speaker = SpeakerCandidate
		} else {
			speaker = SpeakerInterviewer
		}
	}
	return s
}

func TestArchive_SaveIsIdempotentPerID(t *testing.T) {
	db := openTestDB(t)
	a := NewArchive(NewRepo(db))
	ctx := context.Background()

	if _, err := a.Save(ctx, testSession("s1", "opening")); err != nil {
		t.Fatalf("save 1: %v", err)
	}
	if _, err := a.Save(ctx, testSession("s1", "opening", "answer", "followup")); err != nil {
		t.Fatalf("save 2: %v", err)
	}

	var count int64
	if err := db.Model(&ArchiveRecord{}).Where("session_id = ?", "s1").Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 durable row, got %d", count)
	}

	rec, err := a.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(rec.Turns) != 3 {
		t.Fatalf("expected second save's 3 turns, got %d", len(rec.Turns))
	}
}

func TestArchive_ListMergesWithMemoryPrecedence(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepo(db)
	ctx := context.Background()

	// one record written through an earlier process (durable only)
	older := NewArchive(repo)
	if _, err := older.Save(ctx, testSession("durable-only", "opening", "answer")); err != nil {
		t.Fatalf("seed durable: %v", err)
	}

	a := NewArchive(repo)
	if _, err := a.Save(ctx, testSession("in-both", "opening")); err != nil {
		t.Fatalf("save: %v", err)
	}

	summaries, err := a.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(summaries))
	}

	byID := map[string]ArchiveSummary{}
	for _, s := range summaries {
		byID[s.SessionID] = s
	}
	if byID["durable-only"].TurnCount != 2 {
		t.Fatalf("durable summary wrong: %+v", byID["durable-only"])
	}
	if byID["in-both"].TurnCount != 1 {
		t.Fatalf("memory summary wrong: %+v", byID["in-both"])
	}
}

func TestArchive_GetFallsBackToDurable(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepo(db)
	ctx := context.Background()

	older := NewArchive(repo)
	if _, err := older.Save(ctx, testSession("cold", "opening", "answer")); err != nil {
		t.Fatalf("seed: %v", err)
	}

	// fresh archive: empty memory index, durable row present
	a := NewArchive(repo)
	rec, err := a.Get(ctx, "cold")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec.SessionID != "cold" || len(rec.Turns) != 2 || rec.Category != MLTheory {
		t.Fatalf("unexpected record: %+v", rec)
	}
}

func TestArchive_DeleteRemovesBothLocations(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepo(db)
	ctx := context.Background()

	a := NewArchive(repo)
	if _, err := a.Save(ctx, testSession("gone", "opening")); err != nil {
		t.Fatalf("save: %v", err)
	}

	if err := a.Delete(ctx, "gone"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := a.Get(ctx, "gone"); !errors.Is(err, ErrArchiveNotFound) {
		t.Fatalf("get after delete: %v", err)
	}

	if err := a.Delete(ctx, "gone"); !errors.Is(err, ErrArchiveNotFound) {
		t.Fatalf("second delete: %v", err)
	}
	if err := a.Delete(ctx, "never-existed"); !errors.Is(err, ErrArchiveNotFound) {
		t.Fatalf("delete missing: %v", err)
	}
}

func TestArchive_DeleteSucceedsWithDurableOnly(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepo(db)
	ctx := context.Background()

	older := NewArchive(repo)
	if _, err := older.Save(ctx, testSession("durable", "opening")); err != nil {
		t.Fatalf("seed: %v", err)
	}

	a := NewArchive(repo) // empty memory index
	if err := a.Delete(ctx, "durable"); err != nil {
		t.Fatalf("delete durable-only: %v", err)
	}
	if _, err := repo.GetArchive(ctx, "durable"); !errors.Is(err, ErrArchiveNotFound) {
		t.Fatalf("durable row still present: %v", err)
	}
}
