// Package version exposes build metadata for the invoicesort binary.
//
// The variables are set at build time:
//
//	go build -ldflags "-X github.com/jmylchreest/invoicesort/internal/version.Version=1.0.0"
package version

import (
	"fmt"
	"runtime"
	"strings"
)

var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// String returns the short version.
func String() string {
	return Version
}

// Full returns a multi-line description of the build.
func Full() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "invoicesort %s\n", Version)
	fmt.Fprintf(&sb, "  Commit:     %s\n", Commit)
	fmt.Fprintf(&sb, "  Built:      %s\n", BuildDate)
	fmt.Fprintf(&sb, "  Go version: %s\n", runtime.Version())
	fmt.Fprintf(&sb, "  OS/Arch:    %s/%s", runtime.GOOS, runtime.GOARCH)
	return sb.String()
}
