package parquet

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/moodmixer/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStructTags(t *testing.T) {
	tests := []struct {
		name    string
		model   any
		columns []string
	}{
		{
			name:  "recommendation",
			model: new(Recommendation),
			columns: []string{
				"rank", "drink_id", "drink_name", "spirit", "score", "label",
				"reason", "dominant_mood", "intensity_match", "matching_moods",
			},
		},
		{
			name:  "order",
			model: new(Order),
			columns: []string{
				"order_id", "drink_id", "drink_name", "bar_id", "bar_name",
				"price", "merchant_id", "ordered_at",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := parquet.SchemaOf(tt.model)
			require.NotNil(t, s)
			for _, col := range tt.columns {
				_, ok := s.Lookup(col)
				assert.True(t, ok, "column %s should exist", col)
			}
		})
	}
}

func TestConvertRecommendations(t *testing.T) {
	scored := []schema.ScoredDrink{
		{Drink: schema.Drink{ID: 2, Name: "Old Fashioned", Spirit: "Whiskey"}, Score: 8.4, Reason: "Perfect for cozy mood", DominantMood: schema.Cozy, IntensityMatch: 9.5, MatchingMoods: 2},
		{Drink: schema.Drink{ID: 9, Name: "Mystery"}, Score: 3.1, Reason: "No mood data"},
	}
	rows := ConvertRecommendations(scored)
	require.Len(t, rows, 2)

	assert.Equal(t, int32(1), rows[0].Rank)
	assert.Equal(t, "Perfect", rows[0].Label)
	require.NotNil(t, rows[0].DominantMood)
	assert.Equal(t, "cozy", *rows[0].DominantMood)

	assert.Equal(t, int32(2), rows[1].Rank)
	assert.Equal(t, "Weak", rows[1].Label)
	assert.Nil(t, rows[1].DominantMood)
}

func TestWriteOrdersParquet(t *testing.T) {
	at := time.Date(2026, 3, 14, 21, 5, 0, 0, time.UTC)
	orders := []schema.Order{
		{OrderID: "a", DrinkID: 1, DrinkName: "Classic Margarita", BarID: "skyline", BarName: "Skyline", Price: 11, MerchantID: "m-1", OrderedAt: at},
		{OrderID: "b", DrinkID: 3, DrinkName: "Mojito", BarID: "final-score", BarName: "Final Score", Price: 7, OrderedAt: at.Add(time.Hour)},
	}
	path := filepath.Join(t.TempDir(), "orders.parquet")
	require.NoError(t, WriteOrdersParquet(ConvertOrders(orders), path))

	got, err := parquet.ReadFile[Order](path)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].OrderID)
	require.NotNil(t, got[0].MerchantID)
	assert.Equal(t, "m-1", *got[0].MerchantID)
	assert.Nil(t, got[1].MerchantID)
	assert.True(t, at.Equal(got[0].OrderedAt))
	assert.InDelta(t, 7.0, got[1].Price, 1e-9)
}

func TestWriteRecommendations(t *testing.T) {
	var buf bytes.Buffer
	rows := ConvertRecommendations([]schema.ScoredDrink{{Drink: schema.Drink{ID: 1, Name: "Mojito"}, Score: 6.5}})
	require.NoError(t, WriteRecommendations(&buf, rows))
	assert.Equal(t, "PAR1", buf.String()[:4])

	got, err := parquet.Read[Recommendation](bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Strong", got[0].Label)
}

func TestWriteOrdersParquetBadPath(t *testing.T) {
	err := WriteOrdersParquet(nil, filepath.Join(t.TempDir(), "missing", "orders.parquet"))
	assert.ErrorContains(t, err, "failed to create output file")
}
