package version

import (
	"fmt"
	"runtime"
)

// Version is injected at build time, e.g.
// go build -ldflags "-X github.com/lworkltd/jms-sender/service/version.Version=${BRANCH_NAME}.${BUILD_NUMBER}"
var Version = "unknown"

// String returns the name, version and Go version.
func String(name string) string {
	return fmt.Sprintf("%s %s (%s)", name, Version, runtime.Version())
}
