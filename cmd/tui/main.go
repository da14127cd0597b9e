package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/skillforge/coursepay/cmd/tui/internal/view"
	"github.com/skillforge/coursepay/internal/config"
	"github.com/skillforge/coursepay/internal/coupon"
	couponStore "github.com/skillforge/coursepay/internal/coupon/store"
	"github.com/skillforge/coursepay/internal/database"
	"github.com/skillforge/coursepay/internal/gateway"
	"github.com/skillforge/coursepay/internal/ledger"
	ledgerStore "github.com/skillforge/coursepay/internal/ledger/store"
	"github.com/skillforge/coursepay/internal/refund"
)

type model struct {
	ledgerService *ledger.Service
	refundService *refund.Service
	couponService *coupon.Service
	actorID       uuid.UUID

	currentView View

	paymentsView view.PaymentsModel
	couponsView  view.CouponsModel
}

type View int

const (
	ViewMenu     View = 0
	ViewPayments View = 1
	ViewCoupons  View = 2
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	// Console refunds are attributed to the operator id from the
	// environment, or the zero id when unset.
	actorID, _ := uuid.Parse(os.Getenv("TUI_ACTOR_ID"))

	gatewayClient := gateway.NewHTTPClient(cfg.Gateway.BaseURL, cfg.Gateway.APIKey, cfg.Gateway.Timeout)

	ledgerSvc := ledger.NewService(ledgerStore.New(db))
	refundSvc := refund.NewService(ledgerSvc, gatewayClient)
	couponSvc := coupon.NewService(couponStore.New(db))

	return model{
		ledgerService: ledgerSvc,
		refundService: refundSvc,
		couponService: couponSvc,
		actorID:       actorID,
		currentView:   ViewMenu,
		paymentsView:  view.NewPaymentsModel(ledgerSvc, refundSvc, actorID),
		couponsView:   view.NewCouponsModel(couponSvc),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewPayments
				m.paymentsView = view.NewPaymentsModel(m.ledgerService, m.refundService, m.actorID)

				return m, m.paymentsView.Init()
			case "2":
				m.currentView = ViewCoupons
				m.couponsView = view.NewCouponsModel(m.couponService)

				return m, m.couponsView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewPayments:
		var newModel tea.Model
		newModel, cmd = m.paymentsView.Update(msg)
		m.paymentsView = newModel.(view.PaymentsModel)
	case ViewCoupons:
		var newModel tea.Model
		newModel, cmd = m.couponsView.Update(msg)
		m.couponsView = newModel.(view.CouponsModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Coursepay Ops\n\n" +
				"1. Payments\n" +
				"2. Coupons\n\n" +
				"q. Quit",
		)
	case ViewPayments:
		return m.paymentsView.View()
	case ViewCoupons:
		return m.couponsView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
