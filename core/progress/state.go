package progress

// State is the derived lifecycle of a module for one viewer.
type State string

const (
	StateLocked     State = "LOCKED"
	StateAvailable  State = "AVAILABLE"
	StateInProgress State = "IN_PROGRESS"
	StateCompleted  State = "COMPLETED"
)

func StateOf(locked bool, progress int) State {
	switch {
	case locked:
		return StateLocked
	case progress >= 100:
		return StateCompleted
	case progress > 0:
		return StateInProgress
	default:
		return StateAvailable
	}
}

// Lockable is a module as seen by the summary widget.
type Lockable interface {
	Completer
	Unlocked() bool
}

type Summary struct {
	Completed int `json:"completed"`
	Available int `json:"available"`
	Total     int `json:"total"`
	Percent   int `json:"percent"`
}

// Summarize counts completed and unlocked modules.
func Summarize[T Lockable](modules []T) Summary {
	s := Summary{Total: len(modules)}
	for _, m := range modules {
		if m.Completed() {
			s.Completed++
		}
		if m.Unlocked() {
			s.Available++
		}
	}
	s.Percent = Percent(s.Completed, s.Total)
	return s
}
