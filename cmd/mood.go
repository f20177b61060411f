package cmd

import (
	"context"

	"github.com/huangsam/moodmixer/core"
	"github.com/huangsam/moodmixer/internal/contract"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// moodCtx carries the --randomize choice into the executors.
func moodCtx() context.Context {
	return core.WithRandomize(rootCtx, viper.GetBool("randomize"))
}

// runMood builds a Run function for commands that take mood assignments.
func runMood(fatalMsg string, executor core.ExecutorFunc) func(*cobra.Command, []string) {
	return func(_ *cobra.Command, args []string) {
		if err := executor(moodCtx(), cfg, args); err != nil {
			contract.LogFatal(fatalMsg, err)
		}
	}
}

// recommendCmd ranks the catalog against a mood.
var recommendCmd = &cobra.Command{
	Use:   "recommend [dimension=value ...]",
	Short: "Rank cocktails against the current mood.",
	Long: `Score every drink in the catalog against a mood and show the best matches.

Each dimension=value assignment is applied in order, and every assignment
propagates through the interaction matrix before the next one. Values are
clamped to 1-10.

Examples:
  # Feeling lively
  moodmixer recommend energetic=9

  # Start from an occasion preset, then lean cozy
  moodmixer recommend --occasion date-night cozy=8

  # A group of four with the social model
  moodmixer recommend --model social --group-size 4 social=9

  # Machine-readable output
  moodmixer recommend relaxed=8 --output json`,
	PreRunE: sharedSetupWrapper,
	Run:     runMood("Recommendation failed", core.ExecuteRecommend),
}

// moodCmd shows the propagated mood vector.
var moodCmd = &cobra.Command{
	Use:   "mood [dimension=value ...]",
	Short: "Show the mood vector after propagation.",
	Long: `Apply mood assignments and print every dimension with its value,
influence and trend.

Examples:
  # See how energy pulls the other dimensions
  moodmixer mood energetic=10

  # Random starting point
  moodmixer mood --randomize --seed 42`,
	PreRunE: sharedSetupWrapper,
	Run:     runMood("Mood failed", core.ExecuteMood),
}

// barsCmd ranks bars against a mood.
var barsCmd = &cobra.Command{
	Use:   "bars [dimension=value ...]",
	Short: "Rank cocktail bars against the current mood.",
	Long: `Match the bars that serve cocktails against a mood.

Examples:
  moodmixer bars romantic=9
  moodmixer bars --occasion night-out --output csv`,
	PreRunE: sharedSetupWrapper,
	Run:     runMood("Bar matching failed", core.ExecuteBars),
}

// shareCmd prints share text for a drink or the current vibe.
var shareCmd = &cobra.Command{
	Use:   "share [dimension=value ...]",
	Short: "Print share text for a drink or the current vibe.",
	Long: `Build a short share message.

With --drink the message describes that drink; otherwise it describes the
current mood, group size and occasion.

Examples:
  moodmixer share --drink 2
  moodmixer share --occasion celebration --group-size 8`,
	PreRunE: sharedSetupWrapper,
	Run: func(cmd *cobra.Command, args []string) {
		drinkID, _ := cmd.Flags().GetInt("drink")
		if err := core.ExecuteShare(moodCtx(), cfg, args, drinkID); err != nil {
			contract.LogFatal("Share failed", err)
		}
	},
}

// pollCmd tallies a group vibe poll.
var pollCmd = &cobra.Command{
	Use:   "poll voter=vibe [voter=vibe ...]",
	Short: "Run a group vibe poll and recommend for the winner.",
	Long: `Record one vote per voter. Once at least two people voted and one vibe
holds 60% of the votes, that vibe is applied and recommendations follow.

Vibes: adventure, celebration, chill-social, cozy, high-energy, romantic

Examples:
  moodmixer poll ann=cozy bo=cozy cy=romantic`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecutePoll(rootCtx, cfg, args); err != nil {
			contract.LogFatal("Poll failed", err)
		}
	},
}
