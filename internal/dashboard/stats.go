package dashboard

import (
	"time"

	"github.com/trevor93/Aigency/internal/dataservice"
)

// recentWindow is the trailing window for the "recent automations" count.
const recentWindow = 24 * time.Hour

// Stats is the derived admin overview summary. It is recomputed in full on
// every load and never partially updated.
type Stats struct {
	TotalClients      int     `json:"total_clients"`
	ActiveClients     int     `json:"active_clients"`
	SuspendedClients  int     `json:"suspended_clients"`
	MonthlyRevenue    float64 `json:"monthly_revenue"`
	OverduePayments   int     `json:"overdue_payments"`
	RecentAutomations int     `json:"recent_automations"`
}

// ComputeStats derives the overview summary from in-memory collections.
// Monthly revenue sums recurring revenue over active clients only.
func ComputeStats(clients []dataservice.ClientRecord, events []dataservice.AutomationEvent, now time.Time) Stats {
	var s Stats
	s.TotalClients = len(clients)

	for _, c := range clients {
		switch c.Status {
		case dataservice.ClientStatusActive:
			s.ActiveClients++
			s.MonthlyRevenue += c.MonthlyRecurringRevenue
		case dataservice.ClientStatusSuspended:
			s.SuspendedClients++
		}
		if c.PaymentStatus == dataservice.PaymentStatusOverdue {
			s.OverduePayments++
		}
	}

	cutoff := now.Add(-recentWindow)
	for _, e := range events {
		if !e.CreatedAt.Before(cutoff) {
			s.RecentAutomations++
		}
	}
	return s
}

// ActivePercent returns the active share of all clients. ok is false when
// there are no clients at all; callers render a placeholder instead of
// dividing by zero.
func (s Stats) ActivePercent() (pct float64, ok bool) {
	if s.TotalClients == 0 {
		return 0, false
	}
	return float64(s.ActiveClients) / float64(s.TotalClients) * 100, true
}

// PaymentStats is the derived payment ledger summary. When computed from a
// row-capped fetch it reflects only the fetched window, not the true total.
type PaymentStats struct {
	TotalRevenue       float64 `json:"total_revenue"`
	SuccessfulPayments int     `json:"successful_payments"`
	FailedPayments     int     `json:"failed_payments"`
	PendingPayments    int     `json:"pending_payments"`
	AverageTransaction float64 `json:"average_transaction"`
}

// ComputePaymentStats derives payment totals from a transaction set.
// The average is 0 when there are no completed transactions.
func ComputePaymentStats(txns []dataservice.Transaction) PaymentStats {
	var s PaymentStats
	for _, t := range txns {
		switch t.Status {
		case dataservice.TxStatusCompleted:
			s.SuccessfulPayments++
			s.TotalRevenue += t.Amount
		case dataservice.TxStatusFailed:
			s.FailedPayments++
		case dataservice.TxStatusPending:
			s.PendingPayments++
		}
	}
	if s.SuccessfulPayments > 0 {
		s.AverageTransaction = s.TotalRevenue / float64(s.SuccessfulPayments)
	}
	return s
}
