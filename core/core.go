// Package core has core logic for mood sessions, scoring and ranking.
package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/huangsam/moodmixer/core/algo"
	"github.com/huangsam/moodmixer/internal/catalog"
	"github.com/huangsam/moodmixer/internal/contract"
	"github.com/huangsam/moodmixer/internal/iocache"
	"github.com/huangsam/moodmixer/internal/logging"
	"github.com/huangsam/moodmixer/internal/outwriter"
	"github.com/huangsam/moodmixer/internal/pos"
	"github.com/huangsam/moodmixer/schema"
)

// ExecutorFunc defines the function signature for executing a mood-driven command.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, moods []string) error

// writer renders every CLI result.
var writer contract.OutputWriter = outwriter.NewOutWriter()

// stdout is where plain text results go.
var stdout io.Writer = os.Stdout

// newCLISession builds a session over the global profile store, then applies
// the randomize option and the mood assignments in order.
func newCLISession(ctx context.Context, cfg *contract.Config, moods []string) (*Session, error) {
	assignments, err := ParseMoodAssignments(moods)
	if err != nil {
		return nil, err
	}
	s := LoadSession(cfg, iocache.Manager.GetProfileStore())
	if shouldRandomize(ctx) {
		s.Randomize()
	}
	if err := s.ApplyAssignments(assignments); err != nil {
		return nil, err
	}
	printHeader(ctx, cfg, s)
	return s, nil
}

// printHeader writes the run settings to stderr for text output.
func printHeader(ctx context.Context, cfg *contract.Config, s *Session) {
	if shouldSuppressHeader(ctx) || cfg.Output != schema.TextOut {
		return
	}
	occasion := s.Occasion
	if occasion == "" {
		occasion = "none"
	}
	_, _ = fmt.Fprintf(os.Stderr, "🍸 model=%s policy=%s group=%d occasion=%s drinks=%d\n",
		s.Model.Name, s.Scorer.Policy, s.GroupSize, occasion, len(s.Catalog))
}

// ExecuteRecommend ranks the catalog against the mood and prints the top drinks.
// It serves as the main entry point for the 'recommend' command.
func ExecuteRecommend(ctx context.Context, cfg *contract.Config, moods []string) error {
	s, err := newCLISession(ctx, cfg, moods)
	if err != nil {
		return err
	}
	results := s.Recommend()
	logging.Debug().Int("results", len(results)).Str("policy", string(s.Scorer.Policy)).Msg("Recommendation pass")
	return writer.WriteRecommendations(results, s.Summary(results), cfg)
}

// ExecuteMood prints the mood vector after the assignments propagate.
func ExecuteMood(ctx context.Context, cfg *contract.Config, moods []string) error {
	s, err := newCLISession(ctx, cfg, moods)
	if err != nil {
		return err
	}
	return writer.WriteMood(s.MoodState(), s.Stats(), cfg)
}

// ExecuteBars ranks the cocktail bars against the mood.
func ExecuteBars(ctx context.Context, cfg *contract.Config, moods []string) error {
	s, err := newCLISession(ctx, cfg, moods)
	if err != nil {
		return err
	}
	return writer.WriteBarMatches(s.MatchBars(), cfg)
}

// ExecuteShare prints share text for a drink, or for the mood when drinkID is zero.
func ExecuteShare(ctx context.Context, cfg *contract.Config, moods []string, drinkID int) error {
	s, err := newCLISession(WithSuppressHeader(ctx), cfg, moods)
	if err != nil {
		return err
	}
	text := s.ShareVibe()
	if drinkID != 0 {
		if text, err = s.ShareDrink(drinkID); err != nil {
			return err
		}
	}
	_, err = fmt.Fprintln(stdout, text)
	return err
}

// ExecuteSearch ranks drinks by keyword relevance. An empty query browses
// the catalog through the filters instead.
func ExecuteSearch(ctx context.Context, cfg *contract.Config, query string, filters algo.Filters) error {
	s := LoadSession(cfg, iocache.Manager.GetProfileStore())
	if strings.TrimSpace(query) == "" {
		return writer.WriteDrinks(s.Browse(filters), "Drinks", cfg)
	}
	return writer.WriteSearchResults(s.Search(query), cfg)
}

// ExecuteShow prints one drink and records it as recently viewed.
func ExecuteShow(ctx context.Context, cfg *contract.Config, drinkID int) error {
	s := LoadSession(cfg, iocache.Manager.GetProfileStore())
	d, err := s.View(ctx, drinkID)
	if err != nil {
		return err
	}
	if err := writer.WriteDrinks([]schema.Drink{d}, d.Name, cfg); err != nil {
		return err
	}
	if cfg.Output == schema.TextOut {
		_, err = fmt.Fprintf(stdout, "%s\nIngredients: %s\nGarnish: %s\n%s\n",
			d.Description, strings.Join(d.Ingredients, ", "), d.Garnish, d.Instructions)
	}
	return err
}

// ExecuteSurprise picks a random drink that is not a favorite.
func ExecuteSurprise(ctx context.Context, cfg *contract.Config) error {
	s := LoadSession(cfg, iocache.Manager.GetProfileStore())
	d, err := s.Surprise(ctx)
	if err != nil {
		return err
	}
	if _, err := s.View(ctx, d.ID); err != nil {
		return err
	}
	return writer.WriteDrinks([]schema.Drink{d}, "Surprise", cfg)
}

// ExecuteFavorites lists favorite drinks.
func ExecuteFavorites(ctx context.Context, cfg *contract.Config) error {
	s := LoadSession(cfg, iocache.Manager.GetProfileStore())
	favs, err := s.Favorites(ctx)
	if err != nil {
		return err
	}
	return writer.WriteDrinks(favs, "Favorites", cfg)
}

// ExecuteToggleFavorite adds or removes a favorite.
func ExecuteToggleFavorite(ctx context.Context, cfg *contract.Config, drinkID int) error {
	s := LoadSession(cfg, iocache.Manager.GetProfileStore())
	added, err := s.ToggleFavorite(ctx, drinkID)
	if err != nil {
		return err
	}
	d, _ := s.Drink(drinkID)
	verb := "Removed from"
	if added {
		verb = "Added to"
	}
	_, err = fmt.Fprintf(stdout, "%s favorites: %s\n", verb, d.Name)
	return err
}

// ExecuteRecent lists recently viewed drinks.
func ExecuteRecent(ctx context.Context, cfg *contract.Config) error {
	s := LoadSession(cfg, iocache.Manager.GetProfileStore())
	recents, err := s.Recents(ctx)
	if err != nil {
		return err
	}
	return writer.WriteDrinks(recents, "Recently Viewed", cfg)
}

// ExecuteOrder places a simulated order for a drink at a bar.
func ExecuteOrder(ctx context.Context, cfg *contract.Config, drinkID int, barID string) error {
	s := LoadSession(cfg, iocache.Manager.GetProfileStore())
	d, bar, err := s.OrderTarget(drinkID, barID)
	if err != nil {
		return err
	}

	terminal := pos.NewTerminal(s.Store, cfg.Pricing, cfg.OrderDelay)
	if cfg.Output == schema.TextOut {
		_, _ = fmt.Fprintf(os.Stderr, "⏳ Sending %s to %s (%s)...\n", d.Name, bar.Name, terminal.Quote(d, bar))
	}
	order, err := terminal.PlaceOrder(ctx, d, bar)
	if err != nil {
		return err
	}
	if cfg.Output != schema.TextOut {
		return writer.WriteOrders([]schema.Order{order}, cfg)
	}
	_, err = fmt.Fprintln(stdout, pos.Confirmation(order))
	return err
}

// ExecuteOrders lists the order history, newest first.
func ExecuteOrders(ctx context.Context, cfg *contract.Config) error {
	store := iocache.Manager.GetProfileStore()
	if store == nil {
		return ErrNoStore
	}
	orders, err := store.Orders(ctx, 0)
	if err != nil {
		return err
	}
	return writer.WriteOrders(orders, cfg)
}

// ExecutePoll tallies "voter=vibe" votes. With consensus the vibe is applied
// and the recommendations for it are printed.
func ExecutePoll(ctx context.Context, cfg *contract.Config, votes []string) error {
	s := LoadSession(cfg, iocache.Manager.GetProfileStore())
	var winner string
	var agreed bool
	for _, v := range votes {
		voter, vibe, ok := strings.Cut(v, "=")
		if !ok || strings.TrimSpace(voter) == "" {
			return fmt.Errorf("invalid vote '%s'. must be voter=vibe", v)
		}
		var err error
		winner, agreed, err = s.Vote(strings.TrimSpace(voter), strings.ToLower(strings.TrimSpace(vibe)))
		if err != nil {
			return err
		}
	}

	for _, vc := range s.Poll.SortedTally() {
		if vc.Votes > 0 {
			_, _ = fmt.Fprintf(os.Stderr, "🗳️  %s: %d\n", vc.Vibe, vc.Votes)
		}
	}
	if !agreed {
		_, err := fmt.Fprintf(stdout, "No consensus yet (%d votes). Need %d+ votes with 60%% agreement.\n", s.Poll.Total(), 2)
		return err
	}
	_, _ = fmt.Fprintf(os.Stderr, "🎉 Group picked %s\n", winner)
	results := s.Recommend()
	return writer.WriteRecommendations(results, s.Summary(results), cfg)
}

// ExecuteImport merges drinks from path into the catalog and writes it to outPath.
// An empty outPath overwrites the configured catalog file.
func ExecuteImport(_ context.Context, cfg *contract.Config, path, format, sheet, outPath string) error {
	imported, err := catalog.ImportFile(path, format, sheet)
	if err != nil {
		return fmt.Errorf("failed to import %s: %w", path, err)
	}
	if outPath == "" {
		outPath = cfg.CatalogFile
	}
	if outPath == "" {
		return errors.New("--catalog or --into is required for import command")
	}

	existing, err := catalog.LoadDrinks(outPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to load catalog: %w", err)
		}
		existing = nil
	}
	merged, added := catalog.MergeWithProgress(os.Stderr, existing, imported)
	if err := catalog.SaveDrinks(outPath, merged); err != nil {
		return fmt.Errorf("failed to save catalog: %w", err)
	}
	logging.Info().Str("source", path).Int("added", added).Int("total", len(merged)).Msg("Catalog import complete")
	_, err = fmt.Fprintf(stdout, "Imported %d new drinks (%d total) into %s\n", added, len(merged), outPath)
	return err
}

// ExecuteExport writes the catalog to path as JSON or a spreadsheet, by extension.
func ExecuteExport(_ context.Context, cfg *contract.Config, path, sheet string) error {
	drinks := catalog.LoadDrinksOrSample(cfg.CatalogFile)
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		err = catalog.ExportExcel(path, sheet, drinks)
	case ".json":
		err = catalog.SaveDrinks(path, drinks)
	default:
		return fmt.Errorf("unsupported export file '%s'. must be .json, .xlsx", path)
	}
	if err != nil {
		return fmt.Errorf("failed to export catalog: %w", err)
	}
	_, err = fmt.Fprintf(stdout, "Exported %d drinks to: %s\n", len(drinks), path)
	return err
}
