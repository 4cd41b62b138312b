package progress

import (
	"context"
	"sync"
	"time"

	"github.com/linuxgeek/simulado/internal/model"
	"github.com/rs/zerolog"
)

// remoteTimeout bounds the detached remote write so a dead network
// cannot pin goroutines past Wait.
const remoteTimeout = 20 * time.Second

// Bridge writes finished session records to both tiers: the local list
// synchronously, the remote API in a detached goroutine so the caller
// never blocks on the network. Failures in either tier are logged and
// swallowed.
type Bridge struct {
	local  *LocalList
	remote *RemoteClient
	log    zerolog.Logger
	wg     sync.WaitGroup
}

// NewBridge wires the two persistence tiers. remote may be nil for a
// fully offline setup.
func NewBridge(local *LocalList, remote *RemoteClient, log zerolog.Logger) *Bridge {
	return &Bridge{
		local:  local,
		remote: remote,
		log:    log.With().Str("component", "progress_bridge").Logger(),
	}
}

// Persist stores rec locally, then kicks off the remote mirror write in
// the background when a token is present. It never returns an error;
// the exam result has already been shown to the user and persistence
// problems must not undo that.
func (b *Bridge) Persist(ctx context.Context, rec model.SessionRecord) {
	if err := b.local.Append(ctx, rec); err != nil {
		b.log.Error().Err(err).Str("record_id", rec.ID).Msg("local persist failed")
	}

	if b.remote == nil || !b.remote.Authenticated() {
		return
	}

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				b.log.Error().Interface("panic", r).Str("record_id", rec.ID).Msg("remote persist panicked")
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), remoteTimeout)
		defer cancel()

		if err := b.remote.Save(ctx, rec); err != nil {
			b.log.Warn().Err(err).Str("record_id", rec.ID).Msg("remote persist failed, record kept locally")
			return
		}
		b.log.Debug().Str("record_id", rec.ID).Msg("record mirrored to remote")
	}()
}

// Load returns the session history: the remote tier when authenticated
// and reachable, the local list otherwise. A reachable remote with zero
// rows still falls back to local so a fresh account sees device history.
func (b *Bridge) Load(ctx context.Context) ([]model.SessionRecord, error) {
	if b.remote != nil && b.remote.Authenticated() {
		records, err := b.remote.List(ctx)
		if err != nil {
			b.log.Warn().Err(err).Msg("remote history unavailable, using local")
		} else if len(records) > 0 {
			return records, nil
		}
	}
	return b.local.All(ctx)
}

// Wait blocks until every in-flight remote write has finished. Call it
// before process exit so background mirroring is not cut off.
func (b *Bridge) Wait() {
	b.wg.Wait()
}
