package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/skillforge/coursepay/internal/coupon"
)

type CouponsModel struct {
	CommonModel
	couponService *coupon.Service

	table   table.Model
	coupons []*coupon.Coupon

	loading bool
	err     error
	status  string
}

func NewCouponsModel(couponSvc *coupon.Service) CouponsModel {
	columns := []table.Column{
		{Title: "Code", Width: 16},
		{Title: "Type", Width: 13},
		{Title: "Value", Width: 8},
		{Title: "Used", Width: 10},
		{Title: "Window", Width: 24},
		{Title: "Active", Width: 7},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return CouponsModel{
		couponService: couponSvc,
		table:         t,
	}
}

func (m CouponsModel) Title() string { return "Coupons" }
func (m CouponsModel) ShortHelp() string {
	return "Esc: back | x: deactivate | r: refresh"
}

func (m CouponsModel) Init() tea.Cmd {
	return m.loadCouponsCmd()
}

func (m CouponsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadCouponsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.coupons = msg.coupons
		m.refreshTable()
		return m, nil

	case couponDeactivatedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Deactivate failed: %v", msg.err)
			return m, nil
		}
		m.status = fmt.Sprintf("Deactivated %s", msg.code)
		return m, m.loadCouponsCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCouponsCmd()
		case "x":
			return m, m.deactivateCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m CouponsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading coupons...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	content := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *CouponsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.coupons))
	for _, c := range m.coupons {
		used := fmt.Sprintf("%d", c.UsedCount)
		if c.UsageLimit != nil {
			used = fmt.Sprintf("%d/%d", c.UsedCount, *c.UsageLimit)
		}

		window := "always"
		if c.StartsAt != nil || c.ExpiresAt != nil {
			from, until := "...", "..."
			if c.StartsAt != nil {
				from = FormatDate(*c.StartsAt)
			}
			if c.ExpiresAt != nil {
				until = FormatDate(*c.ExpiresAt)
			}
			window = from + " - " + until
		}

		active := "no"
		if c.IsActive {
			active = "yes"
		}

		rows = append(rows, table.Row{
			c.Code,
			string(c.Type),
			c.Value.String(),
			used,
			window,
			active,
		})
	}
	m.table.SetRows(rows)
}

// Messages

type loadCouponsMsg struct {
	coupons []*coupon.Coupon
	err     error
}

func (m CouponsModel) loadCouponsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		coupons, err := m.couponService.List(ctx)
		return loadCouponsMsg{coupons: coupons, err: err}
	}
}

type couponDeactivatedMsg struct {
	code string
	err  error
}

func (m CouponsModel) deactivateCmd() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.coupons) {
		return nil
	}

	c := m.coupons[idx]

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.couponService.Deactivate(ctx, c.ID); err != nil {
			return couponDeactivatedMsg{err: err}
		}

		return couponDeactivatedMsg{code: c.Code}
	}
}
