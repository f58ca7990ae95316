package cleanups

import (
	"fmt"
	"io"

	"github.com/monopole/errortracker"
)

// NewPrinting returns a cleanup that writes one line per invocation to w,
// naming the failed function, the code and the context.
// Only useful for examples, tests, debugging, etc.
func NewPrinting[C any](w io.Writer) errortracker.CleanupFunc[C] {
	return func(t *errortracker.Tracker[C], ctx C) {
		fmt.Fprintf(w, "cleanup after %s (flag %d): %v\n",
			t.ErrorFunction(), t.ErrorFlag(), ctx)
	}
}
