// Package tui provides an interactive, read-only statement viewer built on
// bubbletea. It is a consumer of ledger snapshots like any other screen;
// all writes go through the CLI commands.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vkoskivuori/taskupankki/internal/cli"
	"github.com/vkoskivuori/taskupankki/internal/ledger"
	"github.com/vkoskivuori/taskupankki/internal/money"
)

var baseStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.NormalBorder()).
	BorderForeground(lipgloss.Color("240"))

// Model is the bubbletea model for the statement viewer.
type Model struct {
	header string
	table  table.Model
}

// NewModel builds the viewer from a snapshot.
func NewModel(snap ledger.Snapshot) Model {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Title", Width: 28},
		{Title: "Category", Width: 12},
		{Title: "Recipient", Width: 22},
		{Title: "Amount", Width: 12},
		{Title: "Status", Width: 10},
	}

	rows := make([]table.Row, 0, len(snap.Transactions))
	for _, txn := range snap.Transactions {
		rows = append(rows, table.Row{
			txn.Date.Format("02.01.2006"),
			txn.Title,
			txn.Category,
			txn.Recipient,
			money.FormatEUR(txn.Amount),
			string(txn.Status),
		})
	}

	height := len(rows)
	if height > 12 {
		height = 12
	}
	if height < 1 {
		height = 1
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("229")).
		Background(cli.PrimaryColor).
		Bold(false)
	t.SetStyles(styles)

	header := fmt.Sprintf("%s  %s · %s",
		cli.FormatTitle("Tiliote"),
		snap.AccountHolderName,
		cli.BalanceStyle.Render(money.FormatEUR(snap.Balance)))

	return Model{table: t, header: header}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	return m.header + "\n" +
		baseStyle.Render(m.table.View()) + "\n" +
		cli.SubtleStyle.Render("↑/↓ move · q quit") + "\n"
}

// Run shows the viewer until the user quits.
func Run(snap ledger.Snapshot) error {
	_, err := tea.NewProgram(NewModel(snap)).Run()
	if err != nil {
		return fmt.Errorf("statement viewer failed: %w", err)
	}
	return nil
}
