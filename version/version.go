// Package version carries build metadata set with -ldflags.
package version

import (
	"fmt"
	"runtime"
)

// Overridden at build time:
//
//	go build -ldflags "-X github.com/joseph-ayodele/resume-extractor/version.GitRelease=v1.2.0"
var (
	GitRelease    = "dev"
	GitCommit     = "none"
	GitCommitDate = "unknown"
)

// GoInfo describes the toolchain and platform of the binary.
var GoInfo = fmt.Sprintf("%s %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH)
