package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/jakoblorz/go-eject/internal/filesystem"
	"github.com/jakoblorz/go-eject/internal/npm"
	"github.com/jakoblorz/go-eject/internal/prompt"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func newProjectFS(dir string) *filesystem.MockFileSystem {
	fs := filesystem.NewMockFileSystem()
	fs.SetCurrentDir(dir)
	fs.AddFile(dir+"/package.json", []byte(`{
  "name": "starter-template",
  "description": "demo",
  "keywords": ["demo"],
  "scripts": {"test": "jest", "cleanup": "node scripts/cleanup.mjs"},
  "devDependencies": {"jest": "^29.7.0"}
}
`))
	fs.AddFile(dir+"/README.md", []byte("# Starter\n"))
	return fs
}

func TestRootCommandRunsPipelineInCwd(t *testing.T) {
	fs := newProjectFS("/workspace/demo-app")
	confirmer := prompt.NewMockConfirmer(false, false)
	installer := npm.NewMockInstaller()

	cmd := NewRootCommand(fs, confirmer, installer)
	cmd.SetArgs([]string{})
	cmd.SetOut(&bytes.Buffer{})

	require.NoError(t, cmd.Execute())

	written, err := fs.ReadFile("/workspace/demo-app/package.json")
	require.NoError(t, err)
	require.Equal(t, "demo-app", gjson.GetBytes(written, "name").String())
	require.False(t, gjson.GetBytes(written, "scripts.test").Exists())
	require.Empty(t, installer.Calls)
}

func TestRootCommandStrictInstallFlag(t *testing.T) {
	fs := newProjectFS("/workspace/demo-app")
	confirmer := prompt.NewMockConfirmer(false, true)
	installer := npm.NewMockInstaller()
	installer.Err = errors.New("npm install failed: exit status 1")

	cmd := NewRootCommand(fs, confirmer, installer)
	cmd.SetArgs([]string{"--strict-install"})
	cmd.SetOut(&bytes.Buffer{})

	err := cmd.Execute()
	require.ErrorContains(t, err, "npm install failed")
}

func TestRootCommandLenientInstallDefault(t *testing.T) {
	fs := newProjectFS("/workspace/demo-app")
	confirmer := prompt.NewMockConfirmer(false, true)
	installer := npm.NewMockInstaller()
	installer.Err = errors.New("npm install failed: exit status 1")

	cmd := NewRootCommand(fs, confirmer, installer)
	cmd.SetArgs([]string{})
	cmd.SetOut(&bytes.Buffer{})

	require.NoError(t, cmd.Execute())
}
