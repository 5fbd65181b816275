package interview

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"
)

// ArchivedSession is a durable snapshot of a session. Its lifecycle is
// independent of the live record: it can outlive the session, and a session
// can end without ever being archived.
type ArchivedSession struct {
	SessionID string    `json:"session_id"`
	Category  Category  `json:"category"`
	Topic     string    `json:"topic,omitempty"`
	Turns     []Turn    `json:"turns"`
	SavedAt   time.Time `json:"saved_at"`
}

// ArchiveSummary is the list-view projection of an archived session.
type ArchiveSummary struct {
	SessionID string    `json:"session_id"`
	Category  Category  `json:"category"`
	SavedAt   time.Time `json:"saved_at"`
	TurnCount int       `json:"turn_count"`
}

// Archive keeps a fast in-memory index in front of durable storage. Writes go
// to both; reads prefer the in-memory copy.
type Archive struct {
	mu   sync.RWMutex
	mem  map[string]ArchivedSession
	repo *Repo
}

func NewArchive(repo *Repo) *Archive {
	return &Archive{mem: make(map[string]ArchivedSession), repo: repo}
}

// Save snapshots the session keyed by its id. Re-saving the same id
// overwrites the previous archive rather than appending a duplicate. A
// durable-write failure is logged and does not fail the save; the in-memory
// copy still serves reads for this process.
func (a *Archive) Save(ctx context.Context, sess Session) (ArchivedSession, error) {
	rec := ArchivedSession{
		SessionID: sess.ID,
		Category:  sess.Category,
		Topic:     sess.Topic,
		Turns:     append([]Turn(nil), sess.History...),
		SavedAt:   time.Now(),
	}

	a.mu.Lock()
	a.mem[rec.SessionID] = rec
	a.mu.Unlock()

	row, err := archiveRow(rec)
	if err != nil {
		log.Printf("[archive] encode session=%s err=%v", rec.SessionID, err)
		return rec, nil
	}
	if err := a.repo.UpsertArchive(ctx, row); err != nil {
		log.Printf("[archive] durable write session=%s err=%v", rec.SessionID, err)
	}
	return rec, nil
}

// List merges summaries from the in-memory index and durable storage,
// de-duplicated by id with the in-memory copy taking precedence.
func (a *Archive) List(ctx context.Context) ([]ArchiveSummary, error) {
	a.mu.RLock()
	out := make([]ArchiveSummary, 0, len(a.mem))
	seen := make(map[string]bool, len(a.mem))
	for id, rec := range a.mem {
		out = append(out, ArchiveSummary{
			SessionID: id,
			Category:  rec.Category,
			SavedAt:   rec.SavedAt,
			TurnCount: len(rec.Turns),
		})
		seen[id] = true
	}
	a.mu.RUnlock()

	rows, err := a.repo.ListArchives(ctx)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		if seen[row.SessionID] {
			continue
		}
		out = append(out, ArchiveSummary{
			SessionID: row.SessionID,
			Category:  Category(row.Category),
			SavedAt:   row.SavedAt,
			TurnCount: row.TurnCount,
		})
	}
	return out, nil
}

// Get returns the archived session, preferring the in-memory copy.
func (a *Archive) Get(ctx context.Context, id string) (ArchivedSession, error) {
	a.mu.RLock()
	rec, ok := a.mem[id]
	a.mu.RUnlock()
	if ok {
		return rec, nil
	}

	row, err := a.repo.GetArchive(ctx, id)
	if err != nil {
		return ArchivedSession{}, err
	}
	return archiveFromRow(row)
}

// Delete removes the archive from both locations. It succeeds if at least one
// of the two had the record.
func (a *Archive) Delete(ctx context.Context, id string) error {
	a.mu.Lock()
	_, inMem := a.mem[id]
	if inMem {
		delete(a.mem, id)
	}
	a.mu.Unlock()

	deleted, err := a.repo.DeleteArchive(ctx, id)
	if err != nil {
		return err
	}
	if !inMem && !deleted {
		return ErrArchiveNotFound
	}
	return nil
}

func archiveRow(rec ArchivedSession) (*ArchiveRecord, error) {
	turns, err := json.Marshal(rec.Turns)
	if err != nil {
		return nil, err
	}
	return &ArchiveRecord{
		SessionID: rec.SessionID,
		Category:  string(rec.Category),
		Topic:     rec.Topic,
		Turns:     string(turns),
		TurnCount: len(rec.Turns),
		SavedAt:   rec.SavedAt,
	}, nil
}

func archiveFromRow(row *ArchiveRecord) (ArchivedSession, error) {
	var turns []Turn
	if row.Turns != "" {
		if err := json.Unmarshal([]byte(row.Turns), &turns); err != nil {
			return ArchivedSession{}, err
		}
	}
	return ArchivedSession{
		SessionID: row.SessionID,
		Category:  Category(row.Category),
		Topic:     row.Topic,
		Turns:     turns,
		SavedAt:   row.SavedAt,
	}, nil
}
