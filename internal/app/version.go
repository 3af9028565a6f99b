package app

import (
	"fmt"
	"io"
	"runtime"
	"slices"
)

// Build information, set with -ldflags "-X" at release time.
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// versionFlags are the spellings accepted by HasVersionFlag.
var versionFlags = []string{"-version", "--version", "-V", "--V"}

// HasVersionFlag reports whether args ask for the version. It lets main
// print it before any other argument is validated.
func HasVersionFlag(args []string) bool {
	for _, arg := range args {
		if arg == "--" {
			return false
		}
		if slices.Contains(versionFlags, arg) {
			return true
		}
	}
	return false
}

// PrintVersion writes the build information to out.
func PrintVersion(out io.Writer) {
	fmt.Fprintf(out, "loganalyzer %s\n", Version)
	fmt.Fprintf(out, "  commit:  %s\n", Commit)
	fmt.Fprintf(out, "  built:   %s\n", BuildDate)
	fmt.Fprintf(out, "  go:      %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
