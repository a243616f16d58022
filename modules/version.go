package modules

import (
	"runtime/debug"
	"sync"
)

// Application info
const (
	AppName        = "parttrack"
	AppVersion     = "0.1.0"
	AppDescription = "Part traceability client"
)

var (
	buildRevision     string
	buildRevisionOnce sync.Once
)

// BuildRevision returns the VCS revision embedded by the Go toolchain,
// shortened to 8 characters, or "development" when absent
func BuildRevision() string {
	buildRevisionOnce.Do(func() {
		buildRevision = "development"
		info, ok := debug.ReadBuildInfo()
		if !ok {
			return
		}
		dirty := false
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				if len(s.Value) > 8 {
					buildRevision = s.Value[:8]
				} else if s.Value != "" {
					buildRevision = s.Value
				}
			case "vcs.modified":
				dirty = s.Value == "true"
			}
		}
		if dirty && buildRevision != "development" {
			buildRevision += "-dirty"
		}
	})
	return buildRevision
}
