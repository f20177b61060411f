package outwriter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/huangsam/moodmixer/internal/contract"
	"github.com/huangsam/moodmixer/internal/parquet"
	"github.com/huangsam/moodmixer/schema"
)

// ErrParquetUnsupported is returned for views that have no Parquet layout.
var ErrParquetUnsupported = errors.New("parquet output is only supported for recommendations and orders")

// WriteRecommendations outputs scored drinks, dispatching on the configured output format.
// summary is printed under the table.
func WriteRecommendations(results []schema.ScoredDrink, summary string, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRecommendationsJSON(w, results, summary)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRecommendationsCSV(w, results, cfg)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return parquet.WriteRecommendations(w, parquet.ConvertRecommendations(results))
		}, "Wrote Parquet")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRecommendationsTable(w, results, summary, cfg)
		}, "Wrote table")
	}
}

func writeRecommendationsTable(w io.Writer, results []schema.ScoredDrink, summary string, cfg *contract.Config) error {
	fmtFloat := createFormatters(cfg.Precision)
	label := labelFunc(cfg)
	nameWidth := GetMaxTableTextWidth(cfg, 60)

	data := make([][]string, 0, len(results))
	for i, r := range results {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			contract.TruncateText(r.Drink.Name, nameWidth),
			r.Drink.Spirit,
			fmtFloat(r.Score),
			label(r.Score),
			moodName(r.DominantMood, cfg.UseEmojis),
			r.Reason,
		})
	}
	if err := writeTable(w, []string{"Rank", "Drink", "Spirit", "Score", "Label", "Mood", "Reason"}, data); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, summary)
	return err
}

func writeRecommendationsCSV(w io.Writer, results []schema.ScoredDrink, cfg *contract.Config) error {
	fmtFloat := createFormatters(cfg.Precision)
	header := []string{"rank", "drink_id", "drink", "spirit", "score", "label", "dominant_mood", "intensity_match", "matching_moods", "reason"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for i, r := range results {
			rec := []string{
				strconv.Itoa(i + 1),
				strconv.Itoa(r.Drink.ID),
				r.Drink.Name,
				r.Drink.Spirit,
				fmtFloat(r.Score),
				contract.GetPlainLabel(r.Score),
				string(r.DominantMood),
				fmtFloat(r.IntensityMatch),
				strconv.Itoa(r.MatchingMoods),
				r.Reason,
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeRecommendationsJSON(w io.Writer, results []schema.ScoredDrink, summary string) error {
	type jsonRecommendation struct {
		Rank  int    `json:"rank"`
		Label string `json:"label"`
		schema.ScoredDrink
	}
	output := struct {
		Summary         string               `json:"summary"`
		Recommendations []jsonRecommendation `json:"recommendations"`
	}{
		Summary:         summary,
		Recommendations: make([]jsonRecommendation, len(results)),
	}
	for i, r := range results {
		output.Recommendations[i] = jsonRecommendation{Rank: i + 1, Label: contract.GetPlainLabel(r.Score), ScoredDrink: r}
	}
	return writeJSON(w, output)
}

// WriteSearchResults outputs keyword search hits.
func WriteSearchResults(results []schema.SearchResult, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, results)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSearchCSV(w, results)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return ErrParquetUnsupported
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSearchTable(w, results, cfg)
		}, "Wrote table")
	}
}

func writeSearchTable(w io.Writer, results []schema.SearchResult, cfg *contract.Config) error {
	if len(results) == 0 {
		_, err := fmt.Fprintln(w, "No drinks found")
		return err
	}
	nameWidth := GetMaxTableTextWidth(cfg, 50)
	data := make([][]string, 0, len(results))
	for i, r := range results {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			contract.TruncateText(r.Drink.Name, nameWidth),
			r.Drink.Spirit,
			r.Drink.Difficulty,
			strconv.Itoa(r.Score),
		})
	}
	return writeTable(w, []string{"Rank", "Drink", "Spirit", "Difficulty", "Relevance"}, data)
}

func writeSearchCSV(w io.Writer, results []schema.SearchResult) error {
	header := []string{"rank", "drink_id", "drink", "spirit", "difficulty", "relevance"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for i, r := range results {
			rec := []string{
				strconv.Itoa(i + 1),
				strconv.Itoa(r.Drink.ID),
				r.Drink.Name,
				r.Drink.Spirit,
				r.Drink.Difficulty,
				strconv.Itoa(r.Score),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteDrinks outputs a plain drink list such as favorites or recents.
func WriteDrinks(drinks []schema.Drink, title string, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, drinks)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeDrinksCSV(w, drinks)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return ErrParquetUnsupported
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeDrinksTable(w, drinks, title, cfg)
		}, "Wrote table")
	}
}

func writeDrinksTable(w io.Writer, drinks []schema.Drink, title string, cfg *contract.Config) error {
	if len(drinks) == 0 {
		_, err := fmt.Fprintf(w, "No %s yet\n", strings.ToLower(title))
		return err
	}
	if _, err := fmt.Fprintln(w, title); err != nil {
		return err
	}
	nameWidth := GetMaxTableTextWidth(cfg, 55)
	data := make([][]string, 0, len(drinks))
	for _, d := range drinks {
		data = append(data, []string{
			strconv.Itoa(d.ID),
			contract.TruncateText(d.Name, nameWidth),
			d.Spirit,
			d.Difficulty,
			d.Flavor,
			d.Glass,
		})
	}
	return writeTable(w, []string{"ID", "Drink", "Spirit", "Difficulty", "Flavor", "Glass"}, data)
}

func writeDrinksCSV(w io.Writer, drinks []schema.Drink) error {
	header := []string{"id", "name", "spirit", "difficulty", "flavor", "glass", "ingredients"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, d := range drinks {
			rec := []string{strconv.Itoa(d.ID), d.Name, d.Spirit, d.Difficulty, d.Flavor, d.Glass, strings.Join(d.Ingredients, "|")}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
