package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

type pickerKeys struct {
	Up, Down, Select, Quit key.Binding
}

var topicKeys = pickerKeys{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("⏎", "select")),
	Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

func (k pickerKeys) help() string {
	var parts []string
	for _, b := range []key.Binding{k.Up, k.Down, k.Select} {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	parts = append(parts, "1-9 jump")
	h := k.Quit.Help()
	return strings.Join(append(parts, h.Key+" "+h.Desc), "  ")
}

// TopicPickerModel is the bubbletea model for choosing a concept topic.
type TopicPickerModel struct {
	Topics   []string
	Cursor   int
	Selected string
}

// NewTopicPickerModel creates a picker over topics.
func NewTopicPickerModel(topics []string) TopicPickerModel {
	return TopicPickerModel{Topics: topics}
}

func (m TopicPickerModel) Init() tea.Cmd {
	return nil
}

func (m TopicPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(km, topicKeys.Quit):
		return m, tea.Quit
	case key.Matches(km, topicKeys.Up):
		if m.Cursor > 0 {
			m.Cursor--
		}
	case key.Matches(km, topicKeys.Down):
		if m.Cursor < len(m.Topics)-1 {
			m.Cursor++
		}
	case key.Matches(km, topicKeys.Select):
		if len(m.Topics) > 0 {
			m.Selected = m.Topics[m.Cursor]
		}
		return m, tea.Quit
	default:
		// 1-9 jump straight to a topic.
		if s := km.String(); len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
			if i := int(s[0] - '1'); i < len(m.Topics) {
				m.Cursor = i
				m.Selected = m.Topics[i]
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

func (m TopicPickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Concept"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(topicKeys.help()))
	b.WriteString("\n\n")

	for i, topic := range m.Topics {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		line := fmt.Sprintf("%s%d. %s", cursor, i+1, topic)
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// pickTopic runs the picker and returns the chosen topic, or "" if the user
// quit without choosing.
func pickTopic(topics []string) (string, error) {
	final, err := tea.NewProgram(NewTopicPickerModel(topics)).Run()
	if err != nil {
		return "", err
	}
	return final.(TopicPickerModel).Selected, nil
}
