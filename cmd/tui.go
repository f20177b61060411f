package cmd

import (
	"github.com/huangsam/moodmixer/core"
	"github.com/huangsam/moodmixer/internal/tui"
	"github.com/spf13/cobra"
)

// tuiCmd opens the interactive mixer.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive mood mixer",
	Long: `Adjust the six mood sliders with the arrow keys and watch the
recommendations follow every change.

Keys: ↑/↓ pick a mood, ←/→ lower or raise it, o cycles occasions,
x randomizes, R resets, f favorites the top pick, ? shows help, q quits.`,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return tui.Run(rootCtx, core.LoadSession(cfg, profileStore()))
	},
}
