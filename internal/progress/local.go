// Package progress is the two-tier persistence bridge for session
// records: a durable on-device list capped at the most recent entries,
// mirrored best-effort to the remote progress API when the user is
// authenticated. Persistence problems are logged and swallowed; they
// never interrupt the exam flow.
package progress

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/linuxgeek/simulado/internal/localstore"
	"github.com/linuxgeek/simulado/internal/model"
)

// StorageKey holds the JSON-encoded record list in the local store, the
// same key the web client used in localStorage.
const StorageKey = "linuxgeek_progress"

// MaxRecords caps the local list; the oldest entry is evicted first.
const MaxRecords = 200

// LocalList is the device-local tier: an append-only (modulo eviction)
// list of session records on a KV store.
type LocalList struct {
	mu sync.Mutex
	kv localstore.KV
}

// NewLocalList creates the local tier over kv.
func NewLocalList(kv localstore.KV) *LocalList {
	return &LocalList{kv: kv}
}

// Append adds one record, evicting the oldest when the cap is exceeded.
// The read-modify-write runs under the list lock so no reader can observe
// an over-cap list.
func (l *LocalList) Append(ctx context.Context, rec model.SessionRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	records, err := l.readAll(ctx)
	if err != nil {
		return err
	}

	records = append(records, rec)
	if len(records) > MaxRecords {
		records = records[len(records)-MaxRecords:]
	}

	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode local records: %w", err)
	}
	if err := l.kv.Set(ctx, StorageKey, string(raw)); err != nil {
		return fmt.Errorf("write local records: %w", err)
	}
	return nil
}

// All returns every locally stored record, oldest first.
func (l *LocalList) All(ctx context.Context) ([]model.SessionRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.readAll(ctx)
}

func (l *LocalList) readAll(ctx context.Context) ([]model.SessionRecord, error) {
	raw, ok, err := l.kv.Get(ctx, StorageKey)
	if err != nil {
		return nil, fmt.Errorf("read local records: %w", err)
	}
	if !ok || raw == "" {
		return nil, nil
	}

	var records []model.SessionRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		// A corrupt list is unrecoverable; start over rather than
		// blocking every future append.
		return nil, nil
	}
	return records, nil
}
