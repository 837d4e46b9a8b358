package cli

import (
	"fmt"
	"os"

	"github.com/jakoblorz/go-eject/internal/cleanup"
	"github.com/jakoblorz/go-eject/internal/filesystem"
	"github.com/jakoblorz/go-eject/internal/npm"
	"github.com/jakoblorz/go-eject/internal/prompt"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// EjectCommand handles the root command
type EjectCommand struct {
	fs        filesystem.FileSystem
	confirm   prompt.Confirmer
	installer npm.Installer

	plain         bool
	strictYes     bool
	strictInstall bool
}

// NewRootCommand creates the root command
func NewRootCommand(fs filesystem.FileSystem, confirm prompt.Confirmer, installer npm.Installer) *cobra.Command {
	cmd := &EjectCommand{
		fs:        fs,
		confirm:   confirm,
		installer: installer,
	}

	rootCmd := &cobra.Command{
		Use:   "eject",
		Short: "Strip a starter template down to a blank project",
		Long: `Run eject inside a freshly-cloned starter template to remove its demo
scaffolding: the package is renamed after the directory, placeholder files
are reset or removed, and the test harness can be dropped on request.`,
		SilenceUsage: true,
		RunE:         cmd.Run,
	}

	rootCmd.Flags().BoolVar(&cmd.plain, "plain", false,
		"Use plain line prompts instead of interactive forms")
	rootCmd.Flags().BoolVar(&cmd.strictYes, "strict-yes", false,
		"Only accept a spelled-out \"yes\" as affirmative")
	rootCmd.Flags().BoolVar(&cmd.strictInstall, "strict-install", false,
		"Abort the run when the package install fails")

	return rootCmd
}

// Run executes the cleanup pipeline in the current directory
func (c *EjectCommand) Run(cmd *cobra.Command, args []string) error {
	config := cleanup.DefaultConfig()
	config.StrictInstall = c.strictInstall

	confirm := c.confirm
	if confirm == nil {
		confirm = c.newConfirmer(cmd)
	}

	installer := c.installer.WithContext(cmd.Context())

	pipeline := cleanup.New(c.fs, confirm, installer, config, cmd.OutOrStdout())
	if _, err := pipeline.Run(""); err != nil {
		return err
	}

	return nil
}

// newConfirmer picks the prompt implementation: themed huh forms on a
// terminal, plain line prompts otherwise or when --plain is set.
func (c *EjectCommand) newConfirmer(cmd *cobra.Command) prompt.Confirmer {
	if !c.plain && isatty.IsTerminal(os.Stdin.Fd()) {
		return prompt.NewHuhConfirmer()
	}

	tokens := prompt.DefaultAffirmatives
	if c.strictYes {
		tokens = prompt.StrictAffirmatives
	}
	return prompt.NewLineConfirmer(cmd.InOrStdin(), cmd.OutOrStdout(), tokens...)
}

// Execute runs the root command
func Execute() error {
	fs := filesystem.NewOSFileSystem()
	installer := npm.NewOSInstaller()

	rootCmd := NewRootCommand(fs, nil, installer)

	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command failed: %w", err)
	}

	return nil
}
