package rental

import "time"

// Clock supplies the current instant. Injected so tests control time;
// each engine operation reads it exactly once.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

func SystemClock() Clock { return systemClock{} }
