package hiveforge

import (
	"fmt"
	"runtime"
)

// Version is the SDK release version sent in the User-Agent header.
const Version = "1.4.0"

// userAgent identifies the SDK, the platform it runs on and whether execution
// happens inside the platform's own infrastructure.
func userAgent(isAtHome bool) string {
	return fmt.Sprintf("hiveforge-go/%s (%s; %s) isAtHome/%t", Version, runtime.GOOS, runtime.GOARCH, isAtHome)
}
