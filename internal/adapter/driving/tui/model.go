package tui

import (
	"bytes"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/diillson/demand-forecast-go/internal/adapter/driven/render"
	"github.com/diillson/demand-forecast-go/internal/application/forecast"
	"github.com/diillson/demand-forecast-go/internal/domain/entity"
)

// allLabel é o nome exibido para a seleção vazia.
const allLabel = "All"

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("27")).
			Padding(0, 1)

	activeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	inactiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("242"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("242"))
)

// Model é o visualizador interativo. As séries são carregadas uma vez; cada
// troca de categoria cria um novo Controller para o novo trio.
type Model struct {
	series   entity.Series
	palette  *forecast.Palette
	observer forecast.Observer
	last     *lastEvent
	choices  []string
	index    int

	content string
	state   entity.RenderState
	renders int
	width   int
}

// NewModel monta o modelo já renderizado na categoria inicial (vazio = All).
func NewModel(series entity.Series, palette *forecast.Palette, observer forecast.Observer, initial string) Model {
	if palette == nil {
		palette = forecast.NewPalette(nil)
	}

	// "" representa All e fica por último no ciclo
	choices := append(palette.Categories(), "")
	index := len(choices) - 1
	for i, c := range choices {
		if c == initial {
			index = i
			break
		}
	}

	m := Model{
		series:   series,
		palette:  palette,
		observer: observer,
		last:     &lastEvent{},
		choices:  choices,
		index:    index,
	}
	m.render()
	return m
}

// Category devolve a categoria selecionada ("" para All).
func (m Model) Category() string {
	return m.choices[m.index]
}

// State devolve o estado da última renderização.
func (m Model) State() entity.RenderState {
	return m.state
}

// LastEvent devolve o último evento do pipeline, exibido na barra de status.
func (m Model) LastEvent() string {
	return m.last.text
}

// Renders conta quantos Controllers foram criados.
func (m Model) Renders() int {
	return m.renders
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "right", "l", "tab":
			m.index = (m.index + 1) % len(m.choices)
			m.render()
		case "left", "h", "shift+tab":
			m.index = (m.index - 1 + len(m.choices)) % len(m.choices)
			m.render()
		}
	}
	return m, nil
}

// render executa um Controller novo com renderizadores que escrevem num buffer.
func (m *Model) render() {
	var buf bytes.Buffer
	m.last.text = ""
	observers := forecast.Observers{m.last}
	if m.observer != nil {
		observers = append(observers, m.observer)
	}
	input := forecast.Input{
		Historical: m.series.Historical,
		Forecast:   m.series.Forecast,
		Category:   m.Category(),
	}
	ctrl := forecast.NewController(
		input,
		m.palette,
		render.NewTerminalRenderer(&buf),
		render.NewTableRenderer(&buf),
		observers,
	)
	m.state = ctrl.Run()
	m.content = buf.String()
	m.renders++
}

func (m Model) View() string {
	tabs := ""
	for i, c := range m.choices {
		name := c
		if name == "" {
			name = allLabel
		}
		if i == m.index {
			tabs += activeStyle.Render("[" + name + "]")
		} else {
			tabs += inactiveStyle.Render(" " + name + " ")
		}
		tabs += " "
	}

	line := fmt.Sprintf("state: %s", m.state.Stage)
	if m.last.text != "" {
		line += " • " + m.last.text
	}
	status := statusStyle.Render(line)
	help := helpStyle.Render("←/→ change category • q quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		headerStyle.Render("Demand Forecast"),
		tabs,
		"",
		m.content,
		status,
		help,
	)
}

// Run abre o visualizador em tela cheia até o usuário sair.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
