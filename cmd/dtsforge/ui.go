package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"dtsforge/internal/core/app"
)

var (
	titleStyle = lipgloss.NewStyle().
			MarginLeft(2).
			Foreground(lipgloss.Color("#3B82F6")).
			Bold(true).
			Render

	docStyle = lipgloss.NewStyle().Margin(1, 2)

	failureStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F87171")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FBBF24")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#64748B")).
			Italic(true)
)

type item struct {
	title, desc string
	failed      bool
}

func (i item) Title() string       { return i.title }
func (i item) Description() string { return i.desc }
func (i item) FilterValue() string { return i.title + i.desc }

type model struct {
	list       list.Model
	results    []app.LibraryResult
	lastUpdate time.Time
}

type updateMsg struct {
	results []app.LibraryResult
	when    time.Time
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v-4)
	case updateMsg:
		m.results = msg.results
		m.lastUpdate = msg.when

		items := []list.Item{}
		for _, r := range m.results {
			switch {
			case r.Err != nil:
				items = append(items, item{
					title:  r.Library + " — failed",
					desc:   r.Err.Error(),
					failed: true,
				})
			case r.Warnings > 0:
				items = append(items, item{
					title: r.Library,
					desc: fmt.Sprintf("%d files, %d degraded constructs in %v",
						r.Files, r.Warnings, r.Duration.Round(time.Millisecond)),
				})
			default:
				items = append(items, item{
					title: r.Library,
					desc:  fmt.Sprintf("%d files in %v", r.Files, r.Duration.Round(time.Millisecond)),
				})
			}
		}
		m.list.SetItems(items)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m model) View() string {
	var files, warnings, failed int
	for _, r := range m.results {
		files += r.Files
		warnings += r.Warnings
		if r.Err != nil {
			failed++
		}
	}

	status := statusStyle.Render(fmt.Sprintf("Last update: %v | %d libraries | %d files",
		m.lastUpdate.Format("15:04:05"), len(m.results), files))

	var summary string
	switch {
	case failed > 0:
		summary = fmt.Sprintf("⚠️  %s | %s",
			failureStyle.Render(fmt.Sprintf("%d Failed", failed)),
			warningStyle.Render(fmt.Sprintf("%d Warnings", warnings)))
	case warnings > 0:
		summary = warningStyle.Render(fmt.Sprintf("⚠️  %d Warnings", warnings))
	default:
		summary = successStyle.Render("✅ All Clean")
	}

	header := fmt.Sprintf("%s\n%s | %s\n", titleStyle("Declaration Converter"), status, summary)
	return docStyle.Render(header + "\n" + m.list.View())
}

func initialModel() model {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Converted Libraries"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)

	return model{
		list:       l,
		lastUpdate: time.Now(),
	}
}
