package alert

import "time"

// Gate decides whether a breaching security may be notified now. The decision
// reads the ledger but never mutates it; recording a sent alert is the
// caller's job and happens only after the notification succeeded.
type Gate struct {
	Cooldown time.Duration
}

// ShouldNotify is true for a code with no ledger entry, and for a code whose
// last alert is at least Cooldown in the past (inclusive boundary).
func (g Gate) ShouldNotify(ledger *Ledger, code string, now time.Time) bool {
	last, ok := ledger.LastAlert(code)
	if !ok {
		return true
	}
	return now.Sub(last) >= g.Cooldown
}

// SinceLast returns the elapsed time since the code's last alert, for
// cooldown status reporting. ok is false if the code was never alerted.
func (g Gate) SinceLast(ledger *Ledger, code string, now time.Time) (time.Duration, bool) {
	last, ok := ledger.LastAlert(code)
	if !ok {
		return 0, false
	}
	return now.Sub(last), true
}
