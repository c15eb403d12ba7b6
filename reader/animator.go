package reader // import "github.com/openleaf/openleaf/reader"

import "time"

// SleepAnimator simulates a flip by blocking for a fixed duration.
// Terminal readers use it so a held-down key cannot skip pages faster
// than the flip runs.
type SleepAnimator struct {
	Duration time.Duration
}

func (a *SleepAnimator) FlipForward() error {
	time.Sleep(a.Duration)
	return nil
}

func (a *SleepAnimator) FlipBackward() error {
	time.Sleep(a.Duration)
	return nil
}

// NopAnimator flips instantly.
type NopAnimator struct{}

func (NopAnimator) FlipForward() error  { return nil }
func (NopAnimator) FlipBackward() error { return nil }
