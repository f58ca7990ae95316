//go:build tools
// +build tools

package errortracker

// Developer tools, pinned in go.mod.  Install with e.g.
//   go install github.com/golangci/golangci-lint/cmd/golangci-lint
import (
	_ "github.com/client9/misspell/cmd/misspell"
	_ "github.com/golangci/golangci-lint/cmd/golangci-lint"
	_ "golang.org/x/lint/golint"
	_ "golang.org/x/tools/cmd/goimports"
)
