package export

import "sync/atomic"

// Guard refuses a second concurrent run of the same export kind. Different
// kinds use different guards and may run together.
type Guard struct {
	busy atomic.Bool
}

// Acquire claims the guard. The returned release must be called once the
// export finishes.
func (g *Guard) Acquire() (release func(), err error) {
	if !g.busy.CompareAndSwap(false, true) {
		return nil, ErrExportInProgress
	}
	var once atomic.Bool
	return func() {
		if once.CompareAndSwap(false, true) {
			g.busy.Store(false)
		}
	}, nil
}

// Busy reports whether an export holds the guard.
func (g *Guard) Busy() bool {
	return g.busy.Load()
}
