package cleanups

import "github.com/monopole/errortracker"

// Kondo returns a cleanup that quietly does nothing.
// Use it to make "no cleanup" explicit.
func Kondo[C any]() errortracker.CleanupFunc[C] {
	return func(*errortracker.Tracker[C], C) {}
}
