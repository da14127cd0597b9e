package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/skillforge/coursepay/internal/ledger"
	"github.com/skillforge/coursepay/internal/refund"
)

type paymentsState int

const (
	paymentsStateBrowse paymentsState = iota
	paymentsStateRefund
)

func statusPtr(s ledger.Status) *ledger.Status { return &s }

// statusFilters are cycled with the "s" key; the first entry means no filter.
var statusFilters = []*ledger.Status{
	nil,
	statusPtr(ledger.StatusPending),
	statusPtr(ledger.StatusCompleted),
	statusPtr(ledger.StatusFailed),
	statusPtr(ledger.StatusPartiallyRefunded),
	statusPtr(ledger.StatusRefunded),
}

type PaymentsModel struct {
	CommonModel
	ledgerService *ledger.Service
	refundService *refund.Service
	actorID       uuid.UUID

	state paymentsState
	table table.Model
	txs   []*ledger.Transaction
	form  *huh.Form

	statusFilterIdx int

	filter  ledger.ListFilter
	loading bool
	err     error
	status  string

	// Form bindings
	formAmount string
	formReason string
}

func NewPaymentsModel(ledgerSvc *ledger.Service, refundSvc *refund.Service, actorID uuid.UUID) PaymentsModel {
	columns := []table.Column{
		{Title: "Created", Width: 12},
		{Title: "Order", Width: 26},
		{Title: "Status", Width: 19},
		{Title: "Amount", Width: 10},
		{Title: "Discount", Width: 10},
		{Title: "Net", Width: 10},
		{Title: "Coupon", Width: 12},
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

	return PaymentsModel{
		ledgerService: ledgerSvc,
		refundService: refundSvc,
		actorID:       actorID,
		table:         t,
		filter:        ledger.ListFilter{},
	}
}

func (m PaymentsModel) Title() string { return "Payments" }
func (m PaymentsModel) ShortHelp() string {
	if m.state == paymentsStateRefund {
		return "Navigate form | Esc: cancel"
	}
	return "Esc: back | f: refund | s: status filter | r: refresh"
}

func (m PaymentsModel) Init() tea.Cmd {
	return m.loadTxsCmd()
}

func (m PaymentsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadPaymentsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.txs = msg.txs
		m.refreshTable()
		return m, nil

	case refundDoneMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Refund failed: %v", msg.err)
		} else {
			m.status = fmt.Sprintf("Refunded %s", FormatMoney(msg.amount, msg.currency))
		}
		m.state = paymentsStateBrowse
		m.form = nil
		m.table.Focus()
		return m, m.loadTxsCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case paymentsStateBrowse:
		return m.updateBrowse(msg)
	case paymentsStateRefund:
		return m.updateRefund(msg)
	}

	return m, nil
}

func (m PaymentsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadTxsCmd()
		case "f":
			return m.enterRefundMode()
		case "s":
			m.statusFilterIdx = (m.statusFilterIdx + 1) % len(statusFilters)
			m.filter.Status = statusFilters[m.statusFilterIdx]
			return m, m.loadTxsCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m PaymentsModel) enterRefundMode() (tea.Model, tea.Cmd) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.txs) {
		return m, nil
	}

	tx := m.txs[idx]
	if !tx.Status.Refundable() {
		m.status = fmt.Sprintf("Transaction %s is %s and cannot be refunded", tx.OrderID, tx.Status)
		return m, nil
	}

	m.formAmount = ""
	m.formReason = string(ledger.ReasonCustomerRequest)

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("amount").
				Title("Refund amount (cents)").
				Value(&m.formAmount).
				Validate(func(s string) error {
					_, err := ParseCents(s)
					return err
				}),

			huh.NewSelect[string]().
				Key("reason").
				Title("Reason").
				Options(
					huh.NewOption("Customer request", string(ledger.ReasonCustomerRequest)),
					huh.NewOption("Fraud", string(ledger.ReasonFraud)),
					huh.NewOption("Duplicate", string(ledger.ReasonDuplicate)),
					huh.NewOption("Other", string(ledger.ReasonOther)),
				).
				Value(&m.formReason),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = paymentsStateRefund
	m.table.Blur()
	return m, m.form.Init()
}

func (m PaymentsModel) updateRefund(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = paymentsStateBrowse
			m.form = nil
			m.table.Focus()
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.refundCmd()
}

func (m PaymentsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading payments...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	label := "All"
	if f := statusFilters[m.statusFilterIdx]; f != nil {
		label = string(*f)
	}

	header := fmt.Sprintf("Filter: [s] Status: %s", activeStyle(label))

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.state == paymentsStateRefund && m.form != nil {
		idx := m.table.Cursor()
		order := ""
		if idx >= 0 && idx < len(m.txs) {
			order = m.txs[idx].OrderID
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(
				fmt.Sprintf("Refund %s\n\n%s", order, m.form.View()),
			)

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

func (m *PaymentsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.txs))
	for _, tx := range m.txs {
		code := ""
		if tx.CouponCode != nil {
			code = *tx.CouponCode
		}
		rows = append(rows, table.Row{
			FormatDate(tx.CreatedAt),
			tx.OrderID,
			string(tx.Status),
			FormatMoney(tx.Amount, tx.Currency),
			FormatMoney(tx.DiscountAmount, tx.Currency),
			FormatMoney(tx.NetAmount, tx.Currency),
			code,
		})
	}
	m.table.SetRows(rows)
}

// Messages

type loadPaymentsMsg struct {
	txs []*ledger.Transaction
	err error
}

func (m PaymentsModel) loadTxsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		txs, err := m.ledgerService.List(ctx, m.filter)
		return loadPaymentsMsg{txs: txs, err: err}
	}
}

type refundDoneMsg struct {
	amount   int64
	currency string
	err      error
}

func (m PaymentsModel) refundCmd() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.txs) {
		return nil
	}

	tx := m.txs[idx]
	reason := ledger.RefundReason(m.formReason)

	amount, err := ParseCents(m.formAmount)
	if err != nil {
		return func() tea.Msg {
			return refundDoneMsg{err: err}
		}
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if _, err := m.refundService.ProcessRefund(ctx, refund.ProcessParams{
			TransactionID: tx.ID,
			Amount:        amount,
			Reason:        reason,
			ProcessedBy:   m.actorID,
		}); err != nil {
			return refundDoneMsg{err: err}
		}

		return refundDoneMsg{amount: amount, currency: tx.Currency}
	}
}
