package alert

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// ledgerZone is the offset alert timestamps are persisted in (market local
// time, UTC+8).
var ledgerZone = time.FixedZone("UTC+8", 8*60*60)

// Ledger maps security codes to the time of their last successful
// notification. It is the only durable state of the system: read once at run
// start, mutated in memory, written back at most once at run end.
type Ledger struct {
	mu      sync.Mutex
	path    string
	entries map[string]time.Time
	dirty   bool
}

// LoadLedger reads the ledger file. A missing file yields an empty ledger.
// Unreadable entries are dropped with a warning: a code whose timestamp fails
// to parse looks never-alerted, so the next breach re-alerts instead of being
// silently suppressed.
func LoadLedger(path string) (*Ledger, error) {
	l := &Ledger{path: path, entries: make(map[string]time.Time)}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return l, nil
		}
		return nil, fmt.Errorf("read ledger: %w", err)
	}

	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("ledger unreadable, starting empty")
		return l, nil
	}
	for code, ts := range raw {
		t, err := time.Parse(time.RFC3339, ts)
		if err != nil {
			log.Warn().Str("code", code).Str("timestamp", ts).Msg("ledger timestamp unparsable, treating as never alerted")
			continue
		}
		l.entries[code] = t
	}
	return l, nil
}

// LastAlert returns the recorded last-notification time for a code.
func (l *Ledger) LastAlert(code string) (time.Time, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	t, ok := l.entries[code]
	return t, ok
}

// Record sets the last-notification time for a code and marks the ledger
// dirty. Callers must only invoke this after a notification succeeded.
func (l *Ledger) Record(code string, t time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries[code] = t
	l.dirty = true
}

// Dirty reports whether any entry changed since load or the last save.
func (l *Ledger) Dirty() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.dirty
}

// Len returns the number of entries.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Save writes the ledger as a complete replacement of the file contents,
// timestamps rendered in UTC+8, and clears the dirty flag.
func (l *Ledger) Save() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	raw := make(map[string]string, len(l.entries))
	for code, t := range l.entries {
		raw[code] = t.In(ledgerZone).Format(time.RFC3339)
	}
	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal ledger: %w", err)
	}
	if dir := filepath.Dir(l.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create ledger dir: %w", err)
		}
	}
	if err := os.WriteFile(l.path, data, 0644); err != nil {
		return fmt.Errorf("write ledger: %w", err)
	}
	l.dirty = false
	return nil
}
