// Package tui is an interactive terminal mixer: one slider per mood dimension
// and a recommendation pane that follows every change.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/huangsam/moodmixer/core"
	"github.com/huangsam/moodmixer/schema"
)

const sliderWidth = 20

// favoriteToggledMsg reports the result of a favorite toggle.
type favoriteToggledMsg struct {
	name  string
	added bool
	err   error
}

// Model holds the TUI state around one mood session.
type Model struct {
	ctx       context.Context
	session   *core.Session
	keymap    KeyMap
	help      help.Model
	slider    progress.Model
	results   []schema.ScoredDrink
	status    string
	lastError error
	cursor    int
	occasion  int
	width     int
	height    int
	quitting  bool
}

// NewModel builds the model and computes the first recommendations.
func NewModel(ctx context.Context, s *core.Session) Model {
	m := Model{
		ctx:      ctx,
		session:  s,
		keymap:   DefaultKeyMap(),
		help:     help.New(),
		slider:   progress.New(progress.WithSolidFill(string(primary)), progress.WithWidth(sliderWidth), progress.WithoutPercentage()),
		occasion: -1,
	}
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case favoriteToggledMsg:
		m.lastError = msg.err
		if msg.err == nil {
			if msg.added {
				m.status = "Added to favorites: " + msg.name
			} else {
				m.status = "Removed from favorites: " + msg.name
			}
		}
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	dims := m.session.Model.Dimensions
	m.lastError = nil

	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keymap.Up):
		m.cursor = (m.cursor - 1 + len(dims)) % len(dims)

	case key.Matches(msg, m.keymap.Down):
		m.cursor = (m.cursor + 1) % len(dims)

	case key.Matches(msg, m.keymap.Increase):
		m.nudge(1)

	case key.Matches(msg, m.keymap.Decrease):
		m.nudge(-1)

	case key.Matches(msg, m.keymap.Reset):
		m.session.Reset()
		m.occasion = -1
		m.status = "Mood reset"
		m.refresh()

	case key.Matches(msg, m.keymap.Randomize):
		m.session.Randomize()
		m.status = "Mood randomized"
		m.refresh()

	case key.Matches(msg, m.keymap.Occasion):
		names := schema.OccasionNames()
		m.occasion = (m.occasion + 1) % len(names)
		if err := m.session.ApplyOccasion(names[m.occasion]); err != nil {
			m.lastError = err
			break
		}
		m.status = "Occasion: " + names[m.occasion]
		m.refresh()

	case key.Matches(msg, m.keymap.Favorite):
		if len(m.results) == 0 {
			m.status = "Nothing to favorite yet"
			break
		}
		return m, m.toggleFavorite(m.results[0].Drink)
	}
	return m, nil
}

// nudge moves the selected slider by delta and propagates.
func (m *Model) nudge(delta int) {
	dim := m.session.Model.Dimensions[m.cursor]
	current, _ := m.session.Vector.Get(dim)
	if err := m.session.Vector.Set(dim, current+delta); err != nil {
		m.lastError = err
		return
	}
	m.status = ""
	m.refresh()
}

func (m *Model) refresh() {
	m.results = m.session.Recommend()
}

// toggleFavorite runs the store call outside Update.
func (m Model) toggleFavorite(d schema.Drink) tea.Cmd {
	ctx, s := m.ctx, m.session
	return func() tea.Msg {
		added, err := s.ToggleFavorite(ctx, d.ID)
		if err != nil {
			err = fmt.Errorf("favorite failed: %w", err)
		}
		return favoriteToggledMsg{name: d.Name, added: added, err: err}
	}
}

// Selected returns the dimension under the cursor.
func (m Model) Selected() schema.Dimension {
	return m.session.Model.Dimensions[m.cursor]
}

// Results returns the current recommendations.
func (m Model) Results() []schema.ScoredDrink {
	return m.results
}
