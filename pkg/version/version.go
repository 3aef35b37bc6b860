package version

import (
	"runtime"
)

var (
	// String gets defined by the build system.
	String = "0.0.0-dev"

	// Revision indicates the commit this binary was built from.
	Revision = "unknown"

	// Date indicates the build date.
	Date = "unknown"

	// Go running this binary.
	Go = runtime.Version()
)
