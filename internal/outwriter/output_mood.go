package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/huangsam/moodmixer/internal/contract"
	"github.com/huangsam/moodmixer/internal/parquet"
	"github.com/huangsam/moodmixer/schema"
)

const moodBarWidth = 10

// trend -> arrow
var trendArrows = map[schema.Trend]string{
	schema.TrendUp:     "↑",
	schema.TrendDown:   "↓",
	schema.TrendSteady: "→",
}

// WriteMood outputs the mood vector with its stats text.
func WriteMood(states []schema.DimensionState, stats string, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, struct {
				Stats      string                  `json:"stats"`
				Dimensions []schema.DimensionState `json:"dimensions"`
			}{stats, states})
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeMoodCSV(w, states, cfg)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return ErrParquetUnsupported
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeMoodTable(w, states, stats, cfg)
		}, "Wrote table")
	}
}

func writeMoodTable(w io.Writer, states []schema.DimensionState, stats string, cfg *contract.Config) error {
	data := make([][]string, 0, len(states))
	for _, s := range states {
		data = append(data, []string{
			moodName(s.Dimension, cfg.UseEmojis),
			strconv.Itoa(s.Value),
			moodBar(s.Value),
			fmt.Sprintf("%.2f", s.Influence),
			trendArrows[s.Trend] + " " + string(s.Trend),
		})
	}
	if err := writeTable(w, []string{"Dimension", "Value", "Level", "Influence", "Trend"}, data); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, stats)
	return err
}

func writeMoodCSV(w io.Writer, states []schema.DimensionState, cfg *contract.Config) error {
	fmtFloat := createFormatters(cfg.Precision + 1)
	header := []string{"dimension", "value", "influence", "trend"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, s := range states {
			rec := []string{string(s.Dimension), strconv.Itoa(s.Value), fmtFloat(s.Influence), string(s.Trend)}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// moodBar draws a value in [1,10] as a fixed width bar.
func moodBar(value int) string {
	value = max(0, min(value, moodBarWidth))
	return strings.Repeat("█", value) + strings.Repeat("░", moodBarWidth-value)
}

// WriteBarMatches outputs bars ranked against the current mood.
func WriteBarMatches(matches []schema.BarMatch, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, matches)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeBarsCSV(w, matches)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return ErrParquetUnsupported
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeBarsTable(w, matches, cfg)
		}, "Wrote table")
	}
}

func writeBarsTable(w io.Writer, matches []schema.BarMatch, cfg *contract.Config) error {
	if len(matches) == 0 {
		_, err := fmt.Fprintln(w, "No bars available")
		return err
	}
	factorWidth := GetMaxTableTextWidth(cfg, 55)
	data := make([][]string, 0, len(matches))
	for i, m := range matches {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			m.Bar.Name,
			m.Bar.Type,
			fmt.Sprintf("%d%%", m.MoodMatch),
			fmt.Sprintf("%d%%", m.TypeMatch),
			contract.TruncateText(m.FactorText, factorWidth),
		})
	}
	return writeTable(w, []string{"Rank", "Bar", "Type", "Mood Match", "Type Match", "Factors"}, data)
}

func writeBarsCSV(w io.Writer, matches []schema.BarMatch) error {
	header := []string{"rank", "bar_id", "bar", "type", "mood_match", "type_match", "factors"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for i, m := range matches {
			rec := []string{
				strconv.Itoa(i + 1),
				m.Bar.ID,
				m.Bar.Name,
				m.Bar.Type,
				strconv.Itoa(m.MoodMatch),
				strconv.Itoa(m.TypeMatch),
				m.FactorText,
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteOrders outputs order history, newest first.
func WriteOrders(orders []schema.Order, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, orders)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeOrdersCSV(w, orders)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return parquet.WriteOrders(w, parquet.ConvertOrders(orders))
		}, "Wrote Parquet")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeOrdersTable(w, orders)
		}, "Wrote table")
	}
}

func writeOrdersTable(w io.Writer, orders []schema.Order) error {
	if len(orders) == 0 {
		_, err := fmt.Fprintln(w, "No orders yet")
		return err
	}
	data := make([][]string, 0, len(orders))
	for _, o := range orders {
		data = append(data, []string{
			shortID(o.OrderID),
			o.DrinkName,
			o.BarName,
			contract.FormatPrice(o.Price),
			o.OrderedAt.Local().Format(contract.DateTimeFormat),
		})
	}
	return writeTable(w, []string{"Order", "Drink", "Bar", "Price", "Ordered At"}, data)
}

func writeOrdersCSV(w io.Writer, orders []schema.Order) error {
	header := []string{"order_id", "drink_id", "drink", "bar_id", "bar", "price", "merchant_id", "ordered_at"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, o := range orders {
			rec := []string{
				o.OrderID,
				strconv.Itoa(o.DrinkID),
				o.DrinkName,
				o.BarID,
				o.BarName,
				fmt.Sprintf("%.2f", o.Price),
				o.MerchantID,
				o.OrderedAt.UTC().Format(contract.DateTimeFormat),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// shortID keeps the first uuid group.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}
