package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/huangsam/moodmixer/internal/contract"
	"github.com/huangsam/moodmixer/schema"
)

const maxPaneResults = 5

var trendMarks = map[schema.Trend]string{
	schema.TrendUp:     "↑",
	schema.TrendDown:   "↓",
	schema.TrendSteady: "→",
}

// View renders the sliders, the recommendation pane and the help line.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		paneStyle.Render(m.renderSliders()),
		paneStyle.Render(m.renderResults()),
	)

	footer := subtleStyle.Render(m.session.Stats())
	switch {
	case m.lastError != nil:
		footer = errorStyle.Render("✗ " + m.lastError.Error())
	case m.status != "":
		footer = statusStyle.Render(m.status)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("🍸 moodmixer"),
		panes,
		footer,
		m.help.View(m.keymap),
	)
}

func (m Model) renderSliders() string {
	var b strings.Builder
	b.WriteString(subtleStyle.Render("Mood") + "\n")
	for i, st := range m.session.MoodState() {
		cursor, style := "  ", normalStyle
		if i == m.cursor {
			cursor, style = "▸ ", selectedStyle
		}
		fill := float64(st.Value) / float64(schema.MaxMoodValue)
		fmt.Fprintf(&b, "%s%s %s %2d %s\n",
			cursor,
			style.Render(fmt.Sprintf("%-12s", st.Dimension)),
			m.slider.ViewAs(fill),
			st.Value,
			trendMarks[st.Trend],
		)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (m Model) renderResults() string {
	var b strings.Builder
	b.WriteString(subtleStyle.Render("Recommendations") + "\n")
	if len(m.results) == 0 {
		b.WriteString(subtleStyle.Render("No drinks match this mood yet"))
		return b.String()
	}
	for i, r := range m.results {
		if i == maxPaneResults {
			break
		}
		fmt.Fprintf(&b, "%d. %s %s %s\n   %s\n",
			i+1,
			r.Drink.Name,
			scoreStyle.Render(fmt.Sprintf("%.1f", r.Score)),
			contract.GetPlainLabel(r.Score),
			subtleStyle.Render(r.Reason),
		)
	}
	return strings.TrimSuffix(b.String(), "\n")
}
