// Package parquet provides row types and writers for exporting recommendations
// and order history to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/huangsam/moodmixer/internal/contract"
	"github.com/huangsam/moodmixer/schema"
	"github.com/parquet-go/parquet-go"
)

// Recommendation is one ranked drink from a scoring pass.
type Recommendation struct {
	// Rank is the 1-based position in the result list
	Rank int32 `parquet:"rank,snappy"`

	DrinkID   int32  `parquet:"drink_id,snappy"`
	DrinkName string `parquet:"drink_name,snappy"`
	Spirit    string `parquet:"spirit,snappy"`

	// Score is the match score before rounding
	Score float64 `parquet:"score,snappy"`

	// Label is the plain score label (Perfect, Strong, Fair, Weak)
	Label  string `parquet:"label,snappy"`
	Reason string `parquet:"reason,snappy"`

	// DominantMood is empty for drinks without mood data
	DominantMood   *string `parquet:"dominant_mood,optional,snappy"`
	IntensityMatch float64 `parquet:"intensity_match,snappy"`
	MatchingMoods  int32   `parquet:"matching_moods,snappy"`
}

// Order is one simulated point-of-sale order.
type Order struct {
	OrderID   string  `parquet:"order_id,snappy"`
	DrinkID   int32   `parquet:"drink_id,snappy"`
	DrinkName string  `parquet:"drink_name,snappy"`
	BarID     string  `parquet:"bar_id,snappy"`
	BarName   string  `parquet:"bar_name,snappy"`
	Price     float64 `parquet:"price,snappy"`

	// MerchantID is null for bars without a POS merchant
	MerchantID *string `parquet:"merchant_id,optional,snappy"`

	// OrderedAt is stored as TIMESTAMP with nanosecond precision
	OrderedAt time.Time `parquet:"ordered_at,snappy"`
}

// ConvertRecommendations converts scored drinks to Parquet rows.
func ConvertRecommendations(scored []schema.ScoredDrink) []Recommendation {
	result := make([]Recommendation, len(scored))
	for i, s := range scored {
		var dominant *string
		if s.DominantMood != "" {
			d := string(s.DominantMood)
			dominant = &d
		}
		result[i] = Recommendation{
			Rank:           int32(i + 1),
			DrinkID:        int32(s.Drink.ID),
			DrinkName:      s.Drink.Name,
			Spirit:         s.Drink.Spirit,
			Score:          s.Score,
			Label:          contract.GetPlainLabel(s.Score),
			Reason:         s.Reason,
			DominantMood:   dominant,
			IntensityMatch: s.IntensityMatch,
			MatchingMoods:  int32(s.MatchingMoods),
		}
	}
	return result
}

// ConvertOrders converts store orders to Parquet rows.
func ConvertOrders(orders []schema.Order) []Order {
	result := make([]Order, len(orders))
	for i, o := range orders {
		var merchant *string
		if o.MerchantID != "" {
			m := o.MerchantID
			merchant = &m
		}
		result[i] = Order{
			OrderID:    o.OrderID,
			DrinkID:    int32(o.DrinkID),
			DrinkName:  o.DrinkName,
			BarID:      o.BarID,
			BarName:    o.BarName,
			Price:      o.Price,
			MerchantID: merchant,
			OrderedAt:  o.OrderedAt,
		}
	}
	return result
}

// WriteRecommendations writes recommendation rows to w.
func WriteRecommendations(w io.Writer, data []Recommendation) error {
	return writeRows(w, data)
}

// WriteOrders writes order rows to w.
func WriteOrders(w io.Writer, data []Order) error {
	return writeRows(w, data)
}

// WriteOrdersParquet writes order rows to a new file at outputPath.
func WriteOrdersParquet(data []Order, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := writeRows(file, data); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

// writeRows infers the schema from the struct tags of T.
func writeRows[T any](w io.Writer, data []T) error {
	writer := parquet.NewGenericWriter[T](w)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}
