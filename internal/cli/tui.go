package cli

import (
	"fmt"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/flowlint/flowlint/pkg/rules"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// ruleListModel - Interactive rule browser
// =============================================================================

// ruleListModel is the bubbletea model for browsing the rule registry.
// The left pane lists rule IDs; the detail pane shows the selected rule's
// description, defaults, and citation.
type ruleListModel struct {
	rules  []rules.Rule
	cursor int
	height int
	offset int
}

// newRuleListModel creates a browser over the registered rules.
func newRuleListModel(rs []rules.Rule) ruleListModel {
	return ruleListModel{rules: rs, height: 15}
}

func (m ruleListModel) Init() tea.Cmd {
	return nil
}

func (m ruleListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc", "enter":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.rules)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		}
	}
	return m, nil
}

func (m ruleListModel) View() string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render("Registered rules") + "\n\n")

	end := min(m.offset+m.height, len(m.rules))
	for i := m.offset; i < end; i++ {
		r := m.rules[i]
		line := fmt.Sprintf("%-30s %s", r.ID, r.Defaults.Severity)
		if i == m.cursor {
			b.WriteString(listSelectedStyle.Render("> "+line) + "\n")
		} else {
			b.WriteString(listNormalStyle.Render("  "+line) + "\n")
		}
	}

	selected := m.rules[m.cursor]
	b.WriteString("\n" + listNormalStyle.Render(selected.Description) + "\n")
	b.WriteString(ruleDefaultsLine(selected) + "\n")
	if selected.Citation != "" {
		b.WriteString(listDimStyle.Render(selected.Citation) + "\n")
	}
	b.WriteString("\n" + listDimStyle.Render("↑/↓ navigate · q quit") + "\n")
	return b.String()
}

// ruleDefaultsLine formats a rule's default configuration for the detail pane.
func ruleDefaultsLine(r rules.Rule) string {
	parts := []string{fmt.Sprintf("severity: %s", r.Defaults.Severity)}
	if r.Defaults.Threshold > 0 {
		parts = append(parts, fmt.Sprintf("threshold: %v", r.Defaults.Threshold))
	}
	optionKeys := maps.Keys(r.Defaults.Options)
	slices.Sort(optionKeys)
	for _, key := range optionKeys {
		parts = append(parts, "option: "+key)
	}
	return listDimStyle.Render(strings.Join(parts, " · "))
}
