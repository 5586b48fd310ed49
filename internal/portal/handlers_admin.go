package portal

import (
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/trevor93/Aigency/internal/dashboard"
	"github.com/trevor93/Aigency/internal/dataservice"
)

// overviewRecentRows is the row cap for the quick-overview panels.
const overviewRecentRows = 5

const unknownClient = "Unknown"

type clientItem struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Email           string          `json:"email"`
	Company         string          `json:"company,omitempty"`
	Tier            string          `json:"subscription_tier"`
	Status          string          `json:"status"`
	StatusBadge     dashboard.Badge `json:"status_badge"`
	PaymentStatus   string          `json:"payment_status"`
	PaymentBadge    dashboard.Badge `json:"payment_badge"`
	MRR             float64         `json:"monthly_recurring_revenue"`
	NextPaymentDate *time.Time      `json:"next_payment_date"`
	CreatedAt       time.Time       `json:"created_at"`
}

type transactionItem struct {
	ID          string          `json:"id"`
	ClientName  string          `json:"client_name"`
	ClientEmail string          `json:"client_email,omitempty"`
	Amount      float64         `json:"amount"`
	Status      string          `json:"status"`
	StatusBadge dashboard.Badge `json:"status_badge"`
	Method      string          `json:"payment_method,omitempty"`
	Date        time.Time       `json:"transaction_date"`
	Notes       string          `json:"notes,omitempty"`
}

type automationItem struct {
	ID          string          `json:"id"`
	ClientName  string          `json:"client_name"`
	Type        string          `json:"automation_type"`
	Icon        string          `json:"icon"`
	Status      string          `json:"status"`
	StatusBadge dashboard.Badge `json:"status_badge"`
	Message     string          `json:"message"`
	Metadata    map[string]any  `json:"metadata,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

func newClientItem(c dataservice.ClientRecord) clientItem {
	return clientItem{
		ID:              c.ID,
		Name:            c.Name,
		Email:           c.Email,
		Company:         c.Company,
		Tier:            c.SubscriptionTier,
		Status:          c.Status,
		StatusBadge:     dashboard.ClientStatusBadge(c.Status),
		PaymentStatus:   c.PaymentStatus,
		PaymentBadge:    dashboard.PaymentStatusBadge(c.PaymentStatus),
		MRR:             c.MonthlyRecurringRevenue,
		NextPaymentDate: c.NextPaymentDate,
		CreatedAt:       c.CreatedAt,
	}
}

// newTransactionItem renders an unresolvable owner as "Unknown" instead of
// failing the row.
func newTransactionItem(t dataservice.Transaction) transactionItem {
	item := transactionItem{
		ID:          t.ID,
		ClientName:  unknownClient,
		Amount:      t.Amount,
		Status:      t.Status,
		StatusBadge: dashboard.TransactionStatusBadge(t.Status),
		Method:      t.PaymentMethod,
		Date:        t.TransactionDate,
		Notes:       t.Notes,
	}
	if t.Client != nil {
		item.ClientName = t.Client.Name
		item.ClientEmail = t.Client.Email
	}
	return item
}

func newAutomationItem(e dataservice.AutomationEvent) automationItem {
	item := automationItem{
		ID:          e.ID,
		ClientName:  unknownClient,
		Type:        e.AutomationType,
		Icon:        dashboard.AutomationIcon(e.AutomationType),
		Status:      e.Status,
		StatusBadge: dashboard.EventStatusBadge(e.Status),
		Message:     e.Message,
		Metadata:    e.Metadata,
		CreatedAt:   e.CreatedAt,
	}
	if e.Client != nil {
		item.ClientName = e.Client.Name
	}
	return item
}

type overviewResponse struct {
	Stats              dashboard.Stats  `json:"stats"`
	ActivePercent      *float64         `json:"active_percent"` // null when there are no clients
	RecentTransactions []transactionItem `json:"recent_transactions"`
	RecentAutomations  []automationItem  `json:"recent_automations"`
	Tabs               []dashboard.Tab   `json:"tabs"`
	ActiveTab          dashboard.Tab     `json:"active_tab"`
}

// HandleAdminOverview composes the overview tab: full-roster stats plus the
// most recent transactions and automation events. The three fetchers are
// independent and may resolve in any order; the response is assembled only
// after all of them complete. One failed fetch fails this load; the other
// tabs are unaffected and a refresh is an explicit user action.
func HandleAdminOverview(deps *Deps) http.HandlerFunc {
	return deps.Gate.RequireSession(func(w http.ResponseWriter, r *http.Request, user *dataservice.User) {
		var (
			clients dashboard.LoadResult[dataservice.ClientRecord]
			txns    dashboard.LoadResult[dataservice.Transaction]
			events  dashboard.LoadResult[dataservice.AutomationEvent]
			recent  []dataservice.AutomationEvent
		)

		start := time.Now()
		g, ctx := errgroup.WithContext(r.Context())
		g.Go(func() (err error) {
			clients, err = deps.Clients.Load(ctx, 0)
			recordFetch(dataservice.CollectionClients, start, err)
			return err
		})
		g.Go(func() (err error) {
			txns, err = deps.Transactions.Load(ctx, overviewRecentRows)
			recordFetch(dataservice.CollectionTxns, start, err)
			return err
		})
		g.Go(func() (err error) {
			events, err = deps.Automations.Load(ctx, overviewRecentRows)
			recordFetch(dataservice.CollectionAutomations, start, err)
			return err
		})
		g.Go(func() (err error) {
			recent, err = deps.Data.ListAutomationEventsSince(ctx, time.Now().Add(-24*time.Hour))
			return err
		})
		if err := g.Wait(); err != nil {
			writePortalError(w, "load_overview", err)
			return
		}

		stats := dashboard.ComputeStats(clients.Rows, recent, time.Now())
		resp := overviewResponse{
			Stats:              stats,
			RecentTransactions: make([]transactionItem, 0, len(txns.Rows)),
			RecentAutomations:  make([]automationItem, 0, len(events.Rows)),
			Tabs:               dashboard.Tabs,
			ActiveTab:          dashboard.ParseTab(r.URL.Query().Get("tab")),
		}
		if pct, ok := stats.ActivePercent(); ok {
			resp.ActivePercent = &pct
		}
		for _, t := range txns.Rows {
			resp.RecentTransactions = append(resp.RecentTransactions, newTransactionItem(t))
		}
		for _, e := range events.Rows {
			resp.RecentAutomations = append(resp.RecentAutomations, newAutomationItem(e))
		}

		writeJSON(w, http.StatusOK, resp)
	})
}

type clientsResponse struct {
	Clients []clientItem `json:"clients"`
	Showing int          `json:"showing"`
	Total   int          `json:"total"`
}

// HandleAdminClients returns the full roster, filtered by the request's
// search and status parameters.
func HandleAdminClients(deps *Deps) http.HandlerFunc {
	return deps.Gate.RequireSession(func(w http.ResponseWriter, r *http.Request, user *dataservice.User) {
		start := time.Now()
		res, err := deps.Clients.Load(r.Context(), 0)
		recordFetch(dataservice.CollectionClients, start, err)
		if err != nil {
			writePortalError(w, "load_clients", err)
			return
		}

		filter := dashboard.ClientFilter{
			Search:        r.URL.Query().Get("search"),
			Status:        r.URL.Query().Get("status"),
			PaymentStatus: r.URL.Query().Get("payment"),
		}
		filtered := filter.Apply(res.Rows)

		resp := clientsResponse{
			Clients: make([]clientItem, 0, len(filtered)),
			Showing: len(filtered),
			Total:   len(res.Rows),
		}
		for _, c := range filtered {
			resp.Clients = append(resp.Clients, newClientItem(c))
		}
		writeJSON(w, http.StatusOK, resp)
	})
}

type paymentsResponse struct {
	Stats        dashboard.PaymentStats `json:"stats"`
	Transactions []transactionItem      `json:"transactions"`
}

// HandleAdminPayments returns the payment ledger with its derived stats.
// Stats here always come from the unlimited fetch, so they reflect the
// whole ledger rather than a capped window.
func HandleAdminPayments(deps *Deps) http.HandlerFunc {
	return deps.Gate.RequireSession(func(w http.ResponseWriter, r *http.Request, user *dataservice.User) {
		start := time.Now()
		res, err := deps.Transactions.Load(r.Context(), 0)
		recordFetch(dataservice.CollectionTxns, start, err)
		if err != nil {
			writePortalError(w, "load_payments", err)
			return
		}

		resp := paymentsResponse{
			Stats:        dashboard.ComputePaymentStats(res.Rows),
			Transactions: make([]transactionItem, 0, len(res.Rows)),
		}
		for _, t := range res.Rows {
			resp.Transactions = append(resp.Transactions, newTransactionItem(t))
		}
		writeJSON(w, http.StatusOK, resp)
	})
}

type logsResponse struct {
	Events  []automationItem `json:"events"`
	Showing int              `json:"showing"`
	Total   int              `json:"total"`
}

// HandleAdminLogs returns the automation log, filtered by type and status.
func HandleAdminLogs(deps *Deps) http.HandlerFunc {
	return deps.Gate.RequireSession(func(w http.ResponseWriter, r *http.Request, user *dataservice.User) {
		start := time.Now()
		res, err := deps.Automations.Load(r.Context(), 0)
		recordFetch(dataservice.CollectionAutomations, start, err)
		if err != nil {
			writePortalError(w, "load_logs", err)
			return
		}

		filter := dashboard.EventFilter{
			Type:   r.URL.Query().Get("type"),
			Status: r.URL.Query().Get("status"),
		}
		filtered := filter.Apply(res.Rows)

		resp := logsResponse{
			Events:  make([]automationItem, 0, len(filtered)),
			Showing: len(filtered),
			Total:   len(res.Rows),
		}
		for _, e := range filtered {
			resp.Events = append(resp.Events, newAutomationItem(e))
		}
		writeJSON(w, http.StatusOK, resp)
	})
}

func recordFetch(collection string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	dataFetches.WithLabelValues(collection, outcome).Inc()
	fetchDuration.WithLabelValues(collection).Observe(time.Since(start).Seconds())
}
