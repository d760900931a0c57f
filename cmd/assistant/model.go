package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/AQEEL2547/Google-Assistant-Unofficial-Desktop-Client/core/notify"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	userStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	assistantStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	interimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	helpStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

type model struct {
	bus     notify.Bus
	noAudio bool

	input textinput.Model

	lines     []string
	interim   string
	listening bool
	active    bool

	oauthURL string

	width  int
	height int
}

func newModel(bus notify.Bus, noAudio bool) model {
	input := textinput.New()
	input.Placeholder = "Type a question, or press enter to speak"
	if noAudio {
		input.Placeholder = "Type a question"
	}
	input.Focus()

	return model{
		bus:     bus,
		noAudio: noAudio,
		input:   input,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - 4
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case transcriptionMsg:
		if msg.done {
			m.interim = ""
			m.appendLine(userStyle.Render("You: " + msg.text))
		} else {
			m.interim = msg.text
		}
		return m, nil

	case screenDataMsg:
		m.appendLine(assistantStyle.Render("Assistant: " + renderScreenData(msg)))
		return m, nil

	case endOfUtteranceMsg:
		m.listening = false
		return m, nil

	case conversationEndedMsg:
		m.active = false
		m.listening = false
		m.interim = ""
		return m, nil

	case conversationErrorMsg:
		m.appendLine(errorStyle.Render("Error: " + msg.message))
		return m, nil

	case initFailedMsg:
		m.appendLine(errorStyle.Render("Error: " + msg.err.Error()))
		return m, nil

	case microphoneMsg:
		m.listening = msg.listening
		m.active = true
		return m, nil

	case oauthPromptMsg:
		m.oauthURL = msg.authURL
		m.input.Reset()
		m.input.Placeholder = "Paste the authorization code"
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		if m.active {
			m.bus.Publish(notify.Message{Kind: notify.KindEndConversation})
			m.active = false
			m.listening = false
			return m, nil
		}
		return m, tea.Quit

	case "enter":
		text := strings.TrimSpace(m.input.Value())
		m.input.Reset()

		if m.oauthURL != "" {
			if text == "" {
				return m, nil
			}
			m.bus.Publish(notify.Message{
				Kind:    notify.KindOAuthCodeSubmitted,
				Payload: notify.OAuthCodePayload{Code: text},
			})
			m.oauthURL = ""
			m.input.Placeholder = "Type a question, or press enter to speak"
			return m, nil
		}

		if text == "" && m.noAudio {
			return m, nil
		}
		if text != "" {
			m.appendLine(userStyle.Render("You: " + text))
		} else {
			m.listening = true
		}
		m.active = true
		m.bus.Publish(notify.Message{
			Kind:    notify.KindInvoke,
			Payload: notify.InvokePayload{Query: text},
		})
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *model) appendLine(line string) {
	m.lines = append(m.lines, line)
	if max := 200; len(m.lines) > max {
		m.lines = m.lines[len(m.lines)-max:]
	}
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Google Assistant"))
	b.WriteString("\n\n")

	if m.oauthURL != "" {
		b.WriteString("Open this URL in a browser and authorize access:\n\n")
		b.WriteString(wrap(m.oauthURL, m.width))
		b.WriteString("\n\n")
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter: submit code • ctrl+c: quit"))
		return b.String()
	}

	visible := m.lines
	if maxLines := m.height - 8; maxLines > 0 && len(visible) > maxLines {
		visible = visible[len(visible)-maxLines:]
	}
	for _, line := range visible {
		b.WriteString(wrap(line, m.width))
		b.WriteString("\n")
	}
	if m.interim != "" {
		b.WriteString(interimStyle.Render("You: " + m.interim))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case m.listening:
		b.WriteString(statusStyle.Render("Listening..."))
	case m.active:
		b.WriteString(statusStyle.Render("Thinking..."))
	default:
		b.WriteString(statusStyle.Render("Ready"))
	}
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter: ask • esc: end turn / quit • ctrl+c: quit"))
	return b.String()
}

func wrap(text string, width int) string {
	if width <= 0 {
		return text
	}
	return wordwrap.String(text, width)
}

// renderScreenData flattens the visual response into terminal text. The
// backend sends HTML, which is reduced to its text content.
func renderScreenData(msg screenDataMsg) string {
	text := msg.data
	if msg.format == "html" {
		text = stripTags(text)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Sprintf("(%s response)", msg.format)
	}
	return text
}

func stripTags(html string) string {
	var b strings.Builder
	inTag := false
	for _, r := range html {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
			b.WriteRune(' ')
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
