// Package buildinfo reports how a dgex binary was built, so that figure
// provenance can be traced back to an exact commit.
package buildinfo

import (
	"fmt"
	"os"
	"runtime/debug"
)

type BuildInfo struct {
	Package    string
	GoVersion  string
	Commit     string
	CommitTime string
	Modified   bool
}

func (b BuildInfo) String() string {
	mod := ""
	if b.Modified {
		mod = " Files in the repo were modified after that commit."
	}

	return fmt.Sprintf("This %s binary was built with %s at commit %v at time %v.%s", b.Package, b.GoVersion, b.Commit, b.CommitTime, mod)
}

func Get() BuildInfo {
	out := BuildInfo{}

	z, ok := debug.ReadBuildInfo()
	if !ok {
		return out
	}

	out.GoVersion = z.GoVersion
	out.Package = z.Path
	for _, s := range z.Settings {
		switch s.Key {
		case "vcs.revision":
			out.Commit = s.Value
		case "vcs.time":
			out.CommitTime = s.Value
		case "vcs.modified":
			out.Modified = s.Value == "true"
		}
	}

	return out
}

func PrintToStdErr() {
	fmt.Fprintf(os.Stderr, "%s\n", Get())
}
