package catalog

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/huangsam/moodmixer/schema"
	"github.com/xuri/excelize/v2"
)

// DefaultSheet is the worksheet holding the drink table.
const DefaultSheet = "10_1.0.9"

// Spreadsheet columns that are not mood scores.
var excelTextColumns = map[string]struct{}{
	"id": {}, "d_name": {}, "d_cat": {}, "d_alcohol": {}, "d_glass": {},
	"d_ingredients": {}, "d_instructions": {}, "d_shopping": {},
}

// export order for mood score columns
var excelMoodColumns = []struct {
	column string
	dim    schema.Dimension
}{
	{"thirsty", schema.Energetic},
	{"calm", schema.Relaxed},
	{"fancy", schema.Romantic},
	{"adventurous", schema.Adventurous},
	{"celebration", schema.Celebratory},
	{"dark", schema.Cozy},
}

// ReadExcel parses the drink table from a workbook.
func ReadExcel(r io.Reader, sheet string) ([]schema.Drink, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()
	return readSheet(f, sheet)
}

// ImportExcel parses the drink table from a workbook on disk.
func ImportExcel(path, sheet string) ([]schema.Drink, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()
	return readSheet(f, sheet)
}

func readSheet(f *excelize.File, sheet string) ([]schema.Drink, error) {
	if sheet == "" {
		sheet = DefaultSheet
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return []schema.Drink{}, nil
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(h)), " ", "_")
	}
	cell := func(row []string, col string) string {
		for i, h := range header {
			if h == col && i < len(row) {
				return strings.TrimSpace(row[i])
			}
		}
		return ""
	}
	orDefault := func(v, def string) string {
		if v == "" {
			return def
		}
		return v
	}

	drinks := make([]schema.Drink, 0, len(rows)-1)
	for idx, row := range rows[1:] {
		name := cell(row, "d_name")
		if name == "" {
			continue
		}

		id, err := strconv.Atoi(cell(row, "id"))
		if err != nil {
			id = idx + 1
		}

		scores := make(map[string]float64)
		for i, h := range header {
			if _, text := excelTextColumns[h]; text || i >= len(row) {
				continue
			}
			if v, err := strconv.ParseFloat(strings.TrimSpace(row[i]), 64); err == nil {
				scores[h] = v
			}
		}

		ingredients := splitPipes(cell(row, "d_ingredients"))
		instructions := cell(row, "d_instructions")
		drinks = append(drinks, schema.Drink{
			ID:           id,
			Name:         name,
			Category:     orDefault(cell(row, "d_cat"), "Cocktail"),
			Alcoholic:    orDefault(cell(row, "d_alcohol"), "Alcoholic"),
			Glass:        orDefault(cell(row, "d_glass"), "Any Glass"),
			Ingredients:  ingredients,
			Instructions: instructions,
			Spirit:       DeriveSpirit(ingredients),
			Difficulty:   DeriveDifficulty(ingredients),
			Description:  DeriveDescription(instructions),
			Flavor:       DeriveFlavor(ingredients),
			Garnish:      DeriveGarnish(instructions),
			Moods:        ConvertMoods(scores),
		})
	}
	return drinks, nil
}

// ExportExcel writes the catalog using the same sheet layout ReadExcel reads.
func ExportExcel(path, sheet string, drinks []schema.Drink) error {
	if sheet == "" {
		sheet = DefaultSheet
	}
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return err
	}
	header := []any{"id", "d_name", "d_cat", "d_alcohol", "d_glass", "d_ingredients", "d_instructions"}
	for _, mc := range excelMoodColumns {
		header = append(header, mc.column)
	}
	if err := sw.SetRow("A1", header); err != nil {
		return err
	}

	for i, d := range drinks {
		row := []any{d.ID, d.Name, d.Category, d.Alcoholic, d.Glass, strings.Join(d.Ingredients, "|"), d.Instructions}
		for _, mc := range excelMoodColumns {
			if v, ok := d.Moods[mc.dim]; ok {
				row = append(row, v)
			} else {
				row = append(row, "")
			}
		}
		cellAddr, _ := excelize.CoordinatesToCellName(1, i+2) // A2, A3, ...
		if err := sw.SetRow(cellAddr, row); err != nil {
			return err
		}
	}
	if err := sw.Flush(); err != nil {
		return err
	}
	return f.SaveAs(path)
}

func splitPipes(s string) []string {
	out := make([]string, 0)
	for part := range strings.SplitSeq(s, "|") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
