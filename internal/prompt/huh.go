package prompt

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	huh "github.com/charmbracelet/huh"
	"github.com/jakoblorz/go-eject/internal/tui"
)

// HuhConfirmer renders each question as a themed huh confirm form.
// It is the default Confirmer when stdin is a terminal.
type HuhConfirmer struct {
	theme *huh.Theme
}

// NewHuhConfirmer constructs a HuhConfirmer with the shared theme.
func NewHuhConfirmer() *HuhConfirmer {
	return &HuhConfirmer{theme: tui.NewHuhTheme()}
}

// Confirm runs a single yes/no form. Aborting the form (ctrl+c, esc)
// counts as a negative answer, matching the fail-safe default of the
// line-based prompt.
func (c *HuhConfirmer) Confirm(question string) (bool, error) {
	confirmed := false

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(question).
				Affirmative("Yes").
				Negative("No").
				Value(&confirmed),
		),
	).
		WithTheme(c.theme).
		WithShowHelp(true).
		WithProgramOptions(tea.WithAltScreen())

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, fmt.Errorf("failed to run confirm form: %w", err)
	}

	return confirmed, nil
}
