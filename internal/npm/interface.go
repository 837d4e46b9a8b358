package npm

import (
	"context"
)

// Installer provides an abstraction over the package manager install
// command for testability.
//
// The install step is the only subprocess the cleanup pipeline spawns. It
// runs to completion before the next step begins; no timeout and no
// cancellation once started beyond the passed context.
type Installer interface {
	// Install runs the package manager's install command in dir,
	// streaming its output to the operator's terminal.
	Install(dir string) error

	// Context support for the subprocess
	WithContext(ctx context.Context) Installer
}
