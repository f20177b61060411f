package catalog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/huangsam/moodmixer/schema"
	"github.com/schollz/progressbar/v3"
)

// progressThreshold is the import size that earns a progress bar.
const progressThreshold = 50

// Import formats.
const (
	FormatJSON  = "json"
	FormatExcel = "xlsx"
	FormatTSV   = "tsv"
	FormatHTML  = "html"
)

// DetectFormat maps a file extension to an import format.
func DetectFormat(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".xlsx", ".xlsm":
		return FormatExcel, nil
	case ".tsv", ".txt":
		return FormatTSV, nil
	case ".html", ".htm":
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("unsupported import file '%s'. must be .json, .xlsx, .tsv, .html", path)
	}
}

// ImportFile reads drinks from path in the given format. An empty format is
// detected from the extension.
func ImportFile(path, format, sheet string) ([]schema.Drink, error) {
	if format == "" {
		var err error
		if format, err = DetectFormat(path); err != nil {
			return nil, err
		}
	}
	if format == FormatExcel {
		return ImportExcel(path, sheet)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	switch format {
	case FormatJSON:
		return DecodeDrinks(f)
	case FormatTSV:
		return ParseTSV(f)
	case FormatHTML:
		return ParseMenu(f)
	default:
		return nil, fmt.Errorf("invalid import format '%s'. must be json, xlsx, tsv, html", format)
	}
}

// MergeWithProgress merges like Merge and draws a progress bar on w for
// large imports.
func MergeWithProgress(w io.Writer, existing, imported []schema.Drink) ([]schema.Drink, int) {
	if w == nil || len(imported) < progressThreshold {
		return Merge(existing, imported, nil)
	}
	bar := progressbar.NewOptions(len(imported),
		progressbar.OptionSetWriter(w),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Merging drinks"),
		progressbar.OptionOnCompletion(func() { _, _ = fmt.Fprintln(w) }),
	)
	return Merge(existing, imported, func() { _ = bar.Add(1) })
}
