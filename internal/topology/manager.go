// (c) 2023-2024, xcm-relay Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package topology

import (
	"fmt"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/event"
	"github.com/ethereum/go-ethereum/log"
	"github.com/rjeczalik/notify"
)

// Manager watches a topology config file and republishes a fresh Snapshot
// whenever it changes, so operators can update the reserve/fee/policy
// tables without restarting the router. Its update loop is adapted from the
// teacher's account manager (accounts/manager.go): a single goroutine owns
// the current snapshot, subscriptions are served off an event.Feed, and
// shutdown drains through a quit channel — merge/drop of multiple backends
// becomes "take whichever reload happened most recently" here, since a
// router has exactly one topology rather than many wallet backends.
type Manager struct {
	path string

	current atomic.Value // *Snapshot
	feed    event.Feed

	quit chan chan error
	term chan struct{}
}

// NewManager loads the initial snapshot from path and starts the watcher.
func NewManager(path string) (*Manager, error) {
	snap, err := Load(path)
	if err != nil {
		return nil, err
	}
	m := &Manager{
		path: path,
		quit: make(chan chan error),
		term: make(chan struct{}),
	}
	m.current.Store(snap)

	events := make(chan notify.EventInfo, 8)
	if err := notify.Watch(path, events, notify.All); err != nil {
		return nil, fmt.Errorf("topology: watching %s: %w", path, err)
	}
	go m.watch(events)
	return m, nil
}

func (m *Manager) watch(events chan notify.EventInfo) {
	defer notify.Stop(events)
	for {
		select {
		case ev := <-events:
			log.Debug("topology", "event", ev.Event(), "path", ev.Path())
			snap, err := Load(m.path)
			if err != nil {
				log.Warn("topology: reload failed, keeping previous snapshot", "err", err)
				continue
			}
			m.current.Store(snap)
			m.feed.Send(SnapshotEvent{Snapshot: snap})
		case errc := <-m.quit:
			errc <- nil
			close(m.term)
			return
		}
	}
}

// Current returns the most recently loaded snapshot.
func (m *Manager) Current() *Snapshot { return m.current.Load().(*Snapshot) }

// Subscribe registers sink to receive a SnapshotEvent on every reload.
func (m *Manager) Subscribe(sink chan<- SnapshotEvent) event.Subscription {
	return m.feed.Subscribe(sink)
}

// Close stops the watcher.
func (m *Manager) Close() error {
	errc := make(chan error)
	m.quit <- errc
	return <-errc
}

// SnapshotEvent is published whenever the topology config is reloaded.
type SnapshotEvent struct {
	Snapshot *Snapshot
}
