package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Styling
var (
	docStyle = lipgloss.NewStyle().Margin(1, 2)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#0a84ff")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#ff453a")).
			Padding(0, 1)
)

// Model defines the application state
type Model struct {
	mainMenu    list.Model
	pantryView  table.Model
	textInput   textinput.Model
	spinner     spinner.Model
	client      *ApiClient
	currentView string
	loading     bool
	answer      string
	plan        *PlanResponse
	error       string
}

// item represents a list item
type item struct {
	title, desc string
}

// FilterValue implements list.Item interface
func (i item) FilterValue() string { return i.title }

// Title implements list.Item interface
func (i item) Title() string { return i.title }

// Description implements list.Item interface
func (i item) Description() string { return i.desc }

// Messages produced by API commands
type adviceMsg struct{ advice *AdviceResponse }
type planMsg struct{ plan *PlanResponse }
type pantryMsg struct{ rows []map[string]string }
type errorMsg struct{ err string }

// Initialize the model
func initialModel() Model {
	// Initialize spinner
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	// Initialize main menu items
	items := []list.Item{
		item{title: "Ask the Advisor", desc: "Get cooking advice from your pantry"},
		item{title: "Weekly Plan", desc: "Generate a 7-day menu and shopping list"},
		item{title: "Pantry", desc: "View current pantry rows"},
		item{title: "Exit", desc: "Exit the application"},
	}

	// Initialize main menu
	mainMenu := list.New(items, list.NewDefaultDelegate(), 0, 0)
	mainMenu.Title = "Larder CLI"

	// Initialize pantry view
	columns := []table.Column{
		{Title: "Name", Width: 20},
		{Title: "Remaining", Width: 10},
		{Title: "Shelf Life", Width: 10},
		{Title: "Price", Width: 10},
	}
	pantryTable := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	// Initialize text input
	ti := textinput.New()
	ti.Placeholder = "What should I cook tonight?"
	ti.CharLimit = 200
	ti.Width = 50

	return Model{
		mainMenu:    mainMenu,
		pantryView:  pantryTable,
		textInput:   ti,
		spinner:     s,
		client:      NewApiClient(),
		currentView: "main",
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, tea.EnterAltScreen)
}

// Update handles UI updates
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "enter":
			if m.currentView == "main" {
				selected, ok := m.mainMenu.SelectedItem().(item)
				if ok {
					switch selected.title {
					case "Exit":
						return m, tea.Quit
					case "Ask the Advisor":
						m.currentView = "ask"
						m.textInput.SetValue("")
						m.textInput.Focus()
					case "Weekly Plan":
						m.currentView = "plan"
						m.loading = true
						return m, fetchPlan(m.client)
					case "Pantry":
						m.currentView = "pantry"
						m.loading = true
						return m, fetchPantry(m.client)
					}
				}
			} else if m.currentView == "ask" && m.textInput.Focused() {
				m.currentView = "answer"
				m.loading = true
				return m, fetchAdvice(m.client, m.textInput.Value())
			}
		case "esc":
			if m.currentView != "main" {
				m.currentView = "main"
				m.error = ""
			}
		case "q":
			if m.currentView != "ask" {
				return m, tea.Quit
			}
		}
	case adviceMsg:
		m.loading = false
		m.answer = msg.advice.Answer
		return m, nil
	case planMsg:
		m.loading = false
		m.plan = msg.plan
		return m, nil
	case pantryMsg:
		m.loading = false
		m.pantryView.SetRows(convertPantryRows(msg.rows))
		return m, nil
	case errorMsg:
		m.loading = false
		m.error = msg.err
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	switch m.currentView {
	case "main":
		m.mainMenu, cmd = m.mainMenu.Update(msg)
	case "ask":
		m.textInput, cmd = m.textInput.Update(msg)
	case "pantry":
		m.pantryView, cmd = m.pantryView.Update(msg)
	}

	return m, cmd
}

// View renders the UI
func (m Model) View() string {
	if m.error != "" {
		return docStyle.Render(errorStyle.Render(m.error) + "\n\nPress esc to go back.")
	}

	switch m.currentView {
	case "main":
		return docStyle.Render(m.mainMenu.View())
	case "ask":
		return docStyle.Render(
			titleStyle.Render("Ask the Advisor") + "\n\n" +
				m.textInput.View() + "\n\nPress enter to ask, esc to go back.")
	case "answer":
		if m.loading {
			return docStyle.Render(m.spinner.View() + " Thinking...")
		}
		return docStyle.Render(
			titleStyle.Render("Advice") + "\n\n" + m.answer + "\n\nPress esc to go back.")
	case "plan":
		if m.loading {
			return docStyle.Render(m.spinner.View() + " Planning your week...")
		}
		return docStyle.Render(renderPlan(m.plan) + "\n\nPress esc to go back.")
	case "pantry":
		if m.loading {
			return docStyle.Render(m.spinner.View() + " Loading pantry...")
		}
		return docStyle.Render(
			titleStyle.Render("Pantry") + "\n\n" + m.pantryView.View() + "\n\nPress esc to go back.")
	}

	return docStyle.Render(m.mainMenu.View())
}

// renderPlan lays out the three plan sections and the metrics
func renderPlan(plan *PlanResponse) string {
	if plan == nil {
		return "No plan yet."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Weekly Plan") + "\n\n")

	b.WriteString(sectionStyle.Render("Week Menu") + "\n")
	b.WriteString(orFallback(plan.WeekMenu, plan.Answer) + "\n\n")

	b.WriteString(sectionStyle.Render("Purchase List") + "\n")
	b.WriteString(orFallback(plan.PurchaseList, "-") + "\n\n")

	b.WriteString(sectionStyle.Render("Reminders") + "\n")
	b.WriteString(orFallback(plan.Reminders, "-") + "\n\n")

	fmt.Fprintf(&b, "Urgent items: %d | Pantry value: $%.2f | Avg horizon: %d day(s)",
		len(plan.Urgent), plan.TotalValue, plan.AvgDays)
	return b.String()
}

func orFallback(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// convertPantryRows maps raw rows into table rows
func convertPantryRows(rows []map[string]string) []table.Row {
	out := make([]table.Row, 0, len(rows))
	for _, r := range rows {
		out = append(out, table.Row{r["name"], r["remaining"], r["shelfLife"], r["price"]})
	}
	return out
}

// API commands

func fetchAdvice(client *ApiClient, question string) tea.Cmd {
	return func() tea.Msg {
		advice, err := client.Ask(question)
		if err != nil {
			return errorMsg{err.Error()}
		}
		return adviceMsg{advice}
	}
}

func fetchPlan(client *ApiClient) tea.Cmd {
	return func() tea.Msg {
		plan, err := client.Plan("", "")
		if err != nil {
			return errorMsg{err.Error()}
		}
		return planMsg{plan}
	}
}

func fetchPantry(client *ApiClient) tea.Cmd {
	return func() tea.Msg {
		rows, err := client.GetPantry()
		if err != nil {
			return errorMsg{err.Error()}
		}
		return pantryMsg{rows}
	}
}

func main() {
	p := tea.NewProgram(initialModel(), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}
