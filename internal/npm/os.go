package npm

import (
	"context"
	"fmt"
	"os"
	"os/exec"
)

// OSInstaller implements Installer using the real npm binary
type OSInstaller struct {
	ctx context.Context
}

// NewOSInstaller creates a new OSInstaller
func NewOSInstaller() *OSInstaller {
	return &OSInstaller{
		ctx: context.Background(),
	}
}

// WithContext returns a new installer with the given context
func (i *OSInstaller) WithContext(ctx context.Context) Installer {
	return &OSInstaller{
		ctx: ctx,
	}
}

// Install runs `npm install` in dir with inherited standard streams so the
// operator sees npm's own progress output.
func (i *OSInstaller) Install(dir string) error {
	cmd := exec.CommandContext(i.ctx, "npm", "install")
	cmd.Dir = dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("npm install failed: %w", err)
	}

	return nil
}
