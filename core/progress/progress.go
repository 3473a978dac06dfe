// Package progress derives module completion and unlock state from per-video
// completion flags. Everything here is pure: results are recomputed from source
// data on every load and never persisted.
package progress

// CompletionThreshold is the watched percentage at which a video counts as completed.
const CompletionThreshold = 95

// Completer is anything that can report whether it has been completed.
type Completer interface {
	Completed() bool
}

type Result struct {
	Progress    int  `json:"progress"`
	IsCompleted bool `json:"isCompleted"`
}

// Compute returns round(100*completed/total), rounding half up, or 0 for an
// empty list. A module is completed only at exactly 100.
func Compute[T Completer](videos []T) Result {
	if len(videos) == 0 {
		return Result{}
	}

	var done int
	for _, v := range videos {
		if v.Completed() {
			done++
		}
	}

	p := Percent(done, len(videos))
	return Result{Progress: p, IsCompleted: p == 100}
}

// Percent is floor(100*part/total + 0.5) in integer arithmetic.
func Percent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return (200*part + total) / (2 * total)
}

// Locked reports whether the module at ordinal is locked. previous is the
// aggregate progress of the module at ordinal-1, nil when that module cannot be
// resolved or owns no videos.
func Locked(ordinal int, previous *int, authenticated bool) bool {
	if ordinal <= 1 {
		return false
	}

	if !authenticated || previous == nil {
		return true
	}

	return *previous < 100
}

// IsComplete applies the completion threshold to a watched percentage.
func IsComplete(pct float64) bool {
	return pct >= CompletionThreshold
}

// Clamp bounds a reported percentage to [0, 100].
func Clamp(pct float64) float64 {
	switch {
	case pct < 0:
		return 0
	case pct > 100:
		return 100
	}
	return pct
}
