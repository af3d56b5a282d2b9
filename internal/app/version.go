package app

import (
	"fmt"
	"io"
	"runtime"
)

// Version is the application version, overridden at build time:
//
//	go build -ldflags "-X github.com/agbru/bigcalc/internal/app.Version=v1.0.0"
var Version = "dev"

// HasVersionFlag reports whether args carries a version flag. It runs before
// flag parsing so the version prints even alongside invalid flags.
func HasVersionFlag(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "-V", "-version", "--version":
			return true
		}
	}
	return false
}

// PrintVersion writes the version banner.
func PrintVersion(out io.Writer) {
	fmt.Fprintf(out, "bigcalc %s (%s)\n", Version, runtime.Version())
}
