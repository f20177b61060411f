// Package catalog loads, imports and saves the drink and bar catalogs.
package catalog

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/huangsam/moodmixer/internal/logging"
	"github.com/huangsam/moodmixer/schema"
)

//go:embed sample/*.json
var sampleFS embed.FS

// ErrDrinkNotFound is returned when a drink id is not in the catalog.
var ErrDrinkNotFound = errors.New("drink not found")

// ErrBarNotFound is returned when a bar id is not in the bar list.
var ErrBarNotFound = errors.New("bar not found")

// SampleDrinks returns the built-in fallback drinks.
func SampleDrinks() []schema.Drink {
	var drinks []schema.Drink
	data, err := sampleFS.ReadFile("sample/drinks.json")
	if err == nil {
		err = json.Unmarshal(data, &drinks)
	}
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded sample drinks are invalid: %v", err))
	}
	return drinks
}

// SampleBars returns the built-in bar list.
func SampleBars() []schema.Bar {
	var bars []schema.Bar
	data, err := sampleFS.ReadFile("sample/bars.json")
	if err == nil {
		err = json.Unmarshal(data, &bars)
	}
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded sample bars are invalid: %v", err))
	}
	return bars
}

// DecodeDrinks reads a JSON array of drinks.
func DecodeDrinks(r io.Reader) ([]schema.Drink, error) {
	var drinks []schema.Drink
	if err := json.NewDecoder(r).Decode(&drinks); err != nil {
		return nil, fmt.Errorf("decode drinks: %w", err)
	}
	return drinks, nil
}

// LoadDrinks reads a drink catalog file.
func LoadDrinks(path string) ([]schema.Drink, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return DecodeDrinks(f)
}

// LoadDrinksOrSample reads the catalog, falling back to the sample drinks when
// the path is empty or the file cannot be loaded.
func LoadDrinksOrSample(path string) []schema.Drink {
	if path == "" {
		return SampleDrinks()
	}
	drinks, err := LoadDrinks(path)
	if err != nil {
		logging.Warn().Err(err).Str("path", path).Msg("Failed to load drinks, using sample data")
		return SampleDrinks()
	}
	return drinks
}

// LoadBars reads a bar list file.
func LoadBars(path string) ([]schema.Bar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var bars []schema.Bar
	if err := json.Unmarshal(data, &bars); err != nil {
		return nil, fmt.Errorf("decode bars: %w", err)
	}
	return bars, nil
}

// LoadBarsOrSample reads the bar list, falling back to the built-in bars.
func LoadBarsOrSample(path string) []schema.Bar {
	if path == "" {
		return SampleBars()
	}
	bars, err := LoadBars(path)
	if err != nil {
		logging.Warn().Err(err).Str("path", path).Msg("Failed to load bars, using sample data")
		return SampleBars()
	}
	return bars
}

// EncodeDrinks writes the catalog as indented JSON.
func EncodeDrinks(w io.Writer, drinks []schema.Drink) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(drinks)
}

// SaveDrinks writes the catalog to path.
func SaveDrinks(path string, drinks []schema.Drink) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := EncodeDrinks(f, drinks); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Merge appends imported drinks whose lowercase name is not already present.
// Drinks without an id get sequential ids after the current maximum.
// onEach, when set, is called once per imported drink.
func Merge(existing, imported []schema.Drink, onEach func()) ([]schema.Drink, int) {
	merged := make([]schema.Drink, len(existing), len(existing)+len(imported))
	copy(merged, existing)

	names := make(map[string]struct{}, len(existing))
	ids := make(map[int]struct{}, len(existing))
	nextID := 0
	for _, d := range existing {
		names[strings.ToLower(d.Name)] = struct{}{}
		ids[d.ID] = struct{}{}
		nextID = max(nextID, d.ID)
	}

	added := 0
	for _, d := range imported {
		if onEach != nil {
			onEach()
		}
		key := strings.ToLower(strings.TrimSpace(d.Name))
		if key == "" {
			continue
		}
		if _, dup := names[key]; dup {
			continue
		}
		if _, taken := ids[d.ID]; d.ID == 0 || taken {
			nextID++
			d.ID = nextID
		}
		nextID = max(nextID, d.ID)
		names[key] = struct{}{}
		ids[d.ID] = struct{}{}
		merged = append(merged, d)
		added++
	}
	return merged, added
}
