package app

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/collatz/internal/bignum"
)

// Build information, set with -ldflags "-X github.com/agbru/collatz/internal/app.Version=...".
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// HasVersionFlag reports whether args ask for the version.
func HasVersionFlag(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "--version", "-version", "-V":
			return true
		}
	}
	return false
}

// PrintVersion writes the build information, the platform and the detected
// CPU features.
func PrintVersion(out io.Writer) {
	fmt.Fprintf(out, "collatz %s\n", Version)
	fmt.Fprintf(out, "  commit:   %s\n", Commit)
	fmt.Fprintf(out, "  built:    %s\n", BuildDate)
	fmt.Fprintf(out, "  go:       %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	fmt.Fprintf(out, "  features: %s\n", bignum.DetectFeatures())
}
