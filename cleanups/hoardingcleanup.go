package cleanups

import "github.com/monopole/errortracker"

// Call is what a Hoarding cleanup saw on one invocation.
type Call[C any] struct {
	Function string
	Code     int
	Message  string
	Context  C
}

// Hoarding keeps a record of every invocation.
// Handy for tests, debugging etc.
type Hoarding[C any] struct {
	calls []Call[C]
}

// NewHoarding returns a new instance of Hoarding.
func NewHoarding[C any]() *Hoarding[C] {
	return &Hoarding[C]{}
}

// Func returns the cleanup to register with a Tracker.
func (h *Hoarding[C]) Func() errortracker.CleanupFunc[C] {
	return func(t *errortracker.Tracker[C], ctx C) {
		h.calls = append(h.calls, Call[C]{
			Function: t.ErrorFunction(),
			Code:     t.ErrorFlag(),
			Message:  t.ErrorMessage(),
			Context:  ctx,
		})
	}
}

// Calls returns the invocations seen so far, oldest first.
func (h *Hoarding[C]) Calls() []Call[C] { return h.calls }

// Last returns the latest invocation, if any.
func (h *Hoarding[C]) Last() (Call[C], bool) {
	if len(h.calls) == 0 {
		return Call[C]{}, false
	}
	return h.calls[len(h.calls)-1], true
}

// Reset forgets all invocations.
func (h *Hoarding[C]) Reset() { h.calls = nil }
