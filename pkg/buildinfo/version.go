// Package buildinfo carries the version stamped into generated models and
// reported by the CLI and server.
//
// Values are injected with ldflags:
//
//	go build -ldflags "-X github.com/matzehuels/archispec/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/archispec/pkg/buildinfo.Commit=$(git rev-parse HEAD)"
package buildinfo

import "fmt"

// Generator is the name recorded as a model's generator.
const Generator = "archispec"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info is the JSON form of the build metadata.
type Info struct {
	Generator string `json:"generator"`
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
}

// Current returns the build metadata of the running binary.
func Current() Info {
	return Info{Generator: Generator, Version: Version, Commit: Commit, Date: Date}
}

// Template returns the version template string for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
