package catalog

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/huangsam/moodmixer/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExcelRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.xlsx")
	want := SampleDrinks()
	require.NoError(t, ExportExcel(path, "", want))

	got, err := ImportExcel(path, DefaultSheet)
	require.NoError(t, err)
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].ID, got[i].ID)
		assert.Equal(t, want[i].Name, got[i].Name)
		assert.Equal(t, want[i].Ingredients, got[i].Ingredients)
		assert.Equal(t, want[i].Moods, got[i].Moods)
	}
}

func TestReadExcelHandBuilt(t *testing.T) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	const sheet = "Drinks"
	require.NoError(t, f.SetSheetName("Sheet1", sheet))
	rows := [][]any{
		{"id", "d_name", "d_cat", "d_alcohol", "d_glass", "d_ingredients", "d_instructions", "Thirsty", "Dark", "Notes"},
		{7, "Dark and Stormy", "Highball", "", "", "Dark Rum|Soda Water|Lime", "Build over ice. Garnish with lime.", 8, 9, "house pick"},
		{8, "", "Cocktail", "", "", "Water", "", 1, 1, ""},
		{"", "Mystery Punch", "", "", "", "", "", "", "", ""},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	got, err := ReadExcel(buf, sheet)
	require.NoError(t, err)
	require.Len(t, got, 2, "rows without a name are skipped")

	stormy := got[0]
	assert.Equal(t, 7, stormy.ID)
	assert.Equal(t, "Highball", stormy.Category)
	assert.Equal(t, "Alcoholic", stormy.Alcoholic)
	assert.Equal(t, "Any Glass", stormy.Glass)
	assert.Equal(t, "Rum", stormy.Spirit)
	assert.Equal(t, "Easy", stormy.Difficulty)
	assert.Equal(t, "Sour", stormy.Flavor)
	assert.Equal(t, "with lime", stormy.Garnish)
	assert.Equal(t, 8, stormy.Moods[schema.Energetic])
	assert.Equal(t, 9, stormy.Moods[schema.Cozy])
	assert.Equal(t, 5, stormy.Moods[schema.Relaxed])

	punch := got[1]
	assert.Equal(t, 3, punch.ID, "missing id falls back to row position")
	assert.Equal(t, "Cocktail", punch.Category)
	assert.Equal(t, "Mixed", punch.Spirit)

	buf, err = f.WriteToBuffer()
	require.NoError(t, err)
	_, err = ReadExcel(buf, "Missing")
	assert.Error(t, err)
}

const sampleTSV = "id\tname\tcategory\talcoholic\tglass\tingredients\tinstructions\tshopping\te\tr\tro\tc\tco\n" +
	"2545\tGrand Master\tCocktail\tAlcoholic\tHighball glass\t2 oz Scotch|1/2 oz Peppermint schnapps|3 oz Club soda|1 twist of Lemon peel\tPour and stir. Garnish with the lemon twist.\tScotch|Peppermint schnapps|Club soda|Lemon peel\t6\t2.5\t9\t5\t3.5\t26\n" +
	"too\tshort\n" +
	"286\tApplejack\tCocktail\tAlcoholic\tOld-fashioned glass\t1 part Jack Daniels|2 parts Apple schnapps|1 part Sweet and sour|1 part Club soda\tMix in glass on the rocks.\tJack Daniels\t6\tx\t12\t5\t0\n"

func TestParseTSV(t *testing.T) {
	got, err := ParseTSV(strings.NewReader(sampleTSV))
	require.NoError(t, err)
	require.Len(t, got, 2)

	gm := got[0]
	assert.Equal(t, 2545, gm.ID)
	assert.Equal(t, "Grand Master", gm.Name)
	assert.Equal(t, "Whiskey", gm.Spirit)
	assert.Equal(t, "Medium", gm.Difficulty)
	assert.Equal(t, "A cocktail cocktail with whiskey", gm.Description)
	assert.Equal(t, "Whiskey, Cocktail", gm.Flavor)
	assert.Equal(t, "None specified", gm.Garnish)
	assert.Equal(t, map[schema.Dimension]int{
		schema.Energetic:   6,
		schema.Relaxed:     2,
		schema.Romantic:    9,
		schema.Adventurous: 5,
		schema.Celebratory: 5,
		schema.Cozy:        3,
	}, gm.Moods)

	aj := got[1]
	assert.Equal(t, "Liqueur", aj.Spirit)
	assert.Equal(t, "A cocktail cocktail with 1 part jack daniels", aj.Description)
	assert.Equal(t, 5, aj.Moods[schema.Relaxed], "unparsable score is neutral")
	assert.Equal(t, 10, aj.Moods[schema.Romantic])
	assert.Equal(t, 1, aj.Moods[schema.Cozy])
}

const sampleMenu = `<html><body>
<div class="drink">
  <h3 class="name"> Paper Plane </h3>
  <p class="description">Bourbon, Aperol, Nonino and lemon.</p>
  <ul>
    <li class="ingredient">Bourbon</li>
    <li class="ingredient">Aperol</li>
    <li class="ingredient">Amaro Nonino</li>
    <li class="ingredient">Lemon Juice</li>
  </ul>
</div>
<div class="drink"><p class="description">No name here</p></div>
<div class="drink">
  <h3 class="name">House Spritz</h3>
  <span class="spirit">Aperitivo</span>
  <span class="glass">Wine Glass</span>
</div>
</body></html>`

func TestParseMenu(t *testing.T) {
	got, err := ParseMenu(strings.NewReader(sampleMenu))
	require.NoError(t, err)
	require.Len(t, got, 2)

	plane := got[0]
	assert.Equal(t, "Paper Plane", plane.Name)
	assert.Equal(t, "Bourbon", plane.Spirit)
	assert.Equal(t, "Medium", plane.Difficulty)
	assert.Equal(t, "Sour", plane.Flavor)
	assert.Len(t, plane.Ingredients, 4)
	assert.False(t, plane.HasProfile())

	spritz := got[1]
	assert.Equal(t, "Aperitivo", spritz.Spirit)
	assert.Equal(t, "Wine Glass", spritz.Glass)
	assert.Empty(t, spritz.Ingredients)
}
