package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/huangsam/moodmixer/internal/contract"
	"github.com/huangsam/moodmixer/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// writeWithFile handles the common pattern of opening a file, writing to it, and cleaning up.
// It accepts a writer function that takes an io.Writer and returns an error.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	// Only close if it's not stdout
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		_, _ = fmt.Fprintf(os.Stderr, "💾 %s to %s\n", successMsg, outputFile)
	}
	return nil
}

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeCSVWithHeader handles the common pattern of creating a CSV writer,
// writing a header, and writing data rows.
func writeCSVWithHeader(w io.Writer, header []string, writeRows func(*csv.Writer) error) error {
	csvWriter := csv.NewWriter(w)

	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	if err := writeRows(csvWriter); err != nil {
		return err
	}

	csvWriter.Flush()
	return csvWriter.Error()
}

// writeTable renders rows under headers with right-aligned cells.
func writeTable(w io.Writer, headers []string, data [][]string) error {
	table := tablewriter.NewWriter(w)
	table.Header(headers)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// createFormatters creates the float formatter shared across output types.
func createFormatters(precision int) func(float64) string {
	return func(v float64) string {
		return fmt.Sprintf("%.*f", precision, v)
	}
}

// labelFunc picks the colored or plain score label.
func labelFunc(cfg *contract.Config) func(float64) string {
	if cfg.UseColors {
		return contract.GetColorLabel
	}
	return contract.GetPlainLabel
}

// dimension -> display emoji, across both models
var moodEmojis = map[schema.Dimension]string{
	schema.Energetic:   "⚡",
	schema.Energy:      "⚡",
	schema.Relaxed:     "😌",
	schema.Social:      "🥂",
	schema.Romantic:    "💕",
	schema.Romance:     "💕",
	schema.Adventurous: "🧭",
	schema.Adventure:   "🧭",
	schema.Celebratory: "🎉",
	schema.Celebration: "🎉",
	schema.Cozy:        "🛋️",
	schema.Comfort:     "🛋️",
}

// moodName returns the dimension name, with its emoji when enabled.
func moodName(dim schema.Dimension, useEmojis bool) string {
	if dim == "" {
		return "-"
	}
	if emoji, ok := moodEmojis[dim]; ok && useEmojis {
		return emoji + " " + string(dim)
	}
	return string(dim)
}
