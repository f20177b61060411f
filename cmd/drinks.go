package cmd

import (
	"strings"

	"github.com/huangsam/moodmixer/core"
	"github.com/huangsam/moodmixer/core/algo"
	"github.com/huangsam/moodmixer/internal/contract"
	"github.com/spf13/cobra"
)

// searchCmd finds drinks by keyword or browses with filters.
var searchCmd = &cobra.Command{
	Use:   "search [keywords ...]",
	Short: "Search the catalog by keyword or browse with filters.",
	Long: `Rank drinks by keyword relevance across name, spirit, ingredients, flavor,
glass and description. Without keywords, list the catalog narrowed by filters.

Examples:
  # Keyword search
  moodmixer search mint lime

  # Browse easy tequila drinks
  moodmixer search --spirit Tequila --difficulty Easy`,
	PreRunE: sharedSetupWrapper,
	Run: func(cmd *cobra.Command, args []string) {
		filters := algo.Filters{Field: algo.FilterAll}
		filters.Spirit, _ = cmd.Flags().GetString("spirit")
		filters.Difficulty, _ = cmd.Flags().GetString("difficulty")
		filters.Field, _ = cmd.Flags().GetString("field")
		if err := core.ExecuteSearch(rootCtx, cfg, strings.Join(args, " "), filters); err != nil {
			contract.LogFatal("Search failed", err)
		}
	},
}

// showCmd prints one drink and records it as recently viewed.
var showCmd = &cobra.Command{
	Use:     "show <drink-id>",
	Short:   "Show one drink and add it to recents.",
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		id, err := parseDrinkID(args[0])
		if err != nil {
			contract.LogFatal("Show failed", err)
		}
		if err := core.ExecuteShow(rootCtx, cfg, id); err != nil {
			contract.LogFatal("Show failed", err)
		}
	},
}

// surpriseCmd picks a random drink that is not a favorite.
var surpriseCmd = &cobra.Command{
	Use:     "surprise",
	Short:   "Pick a random drink you have not favorited yet.",
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSurprise(rootCtx, cfg); err != nil {
			contract.LogFatal("Surprise failed", err)
		}
	},
}

// favoritesCmd lists favorite drinks.
var favoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "List favorite drinks.",
	Long: `List favorite drinks, oldest first.

Subcommands:
  toggle - Add or remove a favorite

Examples:
  moodmixer favorites
  moodmixer favorites toggle 2`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteFavorites(rootCtx, cfg); err != nil {
			contract.LogFatal("Favorites failed", err)
		}
	},
}

// favoritesToggleCmd adds or removes a favorite.
var favoritesToggleCmd = &cobra.Command{
	Use:     "toggle <drink-id>",
	Short:   "Add or remove a favorite drink.",
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		id, err := parseDrinkID(args[0])
		if err != nil {
			contract.LogFatal("Toggle failed", err)
		}
		if err := core.ExecuteToggleFavorite(rootCtx, cfg, id); err != nil {
			contract.LogFatal("Toggle failed", err)
		}
	},
}

// recentCmd lists recently viewed drinks.
var recentCmd = &cobra.Command{
	Use:     "recent",
	Short:   "List recently viewed drinks, newest first.",
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteRecent(rootCtx, cfg); err != nil {
			contract.LogFatal("Recent failed", err)
		}
	},
}
