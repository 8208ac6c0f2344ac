package app

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"
)

// Build information, set with -ldflags "-X github.com/agbru/einteger/internal/app.Version=...".
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// HasVersionFlag reports whether args ask for the version. It is checked
// before flag parsing so that it works next to otherwise invalid flags.
func HasVersionFlag(args []string) bool {
	for _, a := range args {
		switch a {
		case "--version", "-version", "-V":
			return true
		}
	}
	return false
}

// PrintVersion writes the build information.
func PrintVersion(out io.Writer) {
	version, commit := Version, Commit
	if info, ok := debug.ReadBuildInfo(); ok && version == "dev" {
		if info.Main.Version != "" && info.Main.Version != "(devel)" {
			version = info.Main.Version
		}
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" && commit == "unknown" {
				commit = s.Value
			}
		}
	}
	fmt.Fprintf(out, "eintcalc %s\n", version)
	fmt.Fprintf(out, "  commit:  %s\n", commit)
	fmt.Fprintf(out, "  built:   %s\n", BuildDate)
	fmt.Fprintf(out, "  go:      %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
