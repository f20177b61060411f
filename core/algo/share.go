package algo

import (
	"fmt"
	"strings"

	"github.com/huangsam/moodmixer/schema"
)

// DrinkShareText builds the social post for a drink. Moods at or above 7
// are listed in model order.
func DrinkShareText(model schema.MoodModel, d schema.Drink) string {
	tags := make([]string, 0)
	for _, dim := range model.Dimensions {
		if v, ok := d.Moods[dim]; ok && v >= strongMood {
			tags = append(tags, string(dim))
		}
	}
	return fmt.Sprintf("Just discovered \"%s\" on ThinkDrink!\n\n%s\n\nPerfect for: %s\n\nJoin me at the bars! #ThinkDrink #Cocktails",
		d.Name, d.Description, strings.Join(tags, ", "))
}

// VibeShareText builds the group vibe post. In the classic model the
// social line falls back to celebratory.
func VibeShareText(model schema.MoodModel, values map[schema.Dimension]int, groupSize int, occasion string) string {
	line := func(label string, candidates ...schema.Dimension) string {
		for _, c := range candidates {
			if dim, ok := model.Resolve(c); ok {
				return fmt.Sprintf("%s: %d/10", label, userValue(values, dim))
			}
		}
		return fmt.Sprintf("%s: %d/10", label, schema.NeutralMoodValue)
	}
	if occasion == "" {
		occasion = "hangout"
	}
	var b strings.Builder
	b.WriteString("Setting the vibe with ThinkDrink!\n\n")
	b.WriteString(line("Energy", schema.Energy) + "\n")
	b.WriteString(line("Social", schema.Social, schema.Celebration) + "\n")
	b.WriteString(line("Adventure", schema.Adventure) + "\n\n")
	fmt.Fprintf(&b, "Group: %d people, %s\n\n", groupSize, occasion)
	b.WriteString("Join me at the bars! #ThinkDrink #Cocktails")
	return b.String()
}
