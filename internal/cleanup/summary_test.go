package cleanup

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/require"
)

func TestSummarySnapshots(t *testing.T) {
	t.Run("after install", func(t *testing.T) {
		out, err := renderSummary(summaryData{Name: "my-cool-app", Installed: true})
		require.NoError(t, err)
		snaps.MatchSnapshot(t, out)
	})

	t.Run("without install", func(t *testing.T) {
		out, err := renderSummary(summaryData{Name: "my-cool-app", Installed: false})
		require.NoError(t, err)
		snaps.MatchSnapshot(t, out)
	})
}

func TestSummaryMentionsInstallStep(t *testing.T) {
	withInstall, err := renderSummary(summaryData{Name: "app", Installed: true})
	require.NoError(t, err)
	require.NotContains(t, withInstall, "npm install")

	withoutInstall, err := renderSummary(summaryData{Name: "app", Installed: false})
	require.NoError(t, err)
	require.Contains(t, withoutInstall, "npm install")
}
