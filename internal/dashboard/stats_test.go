package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/trevor93/Aigency/internal/dataservice"
)

func TestComputeStats(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	clients := []dataservice.ClientRecord{
		{Status: "active", MonthlyRecurringRevenue: 1000, PaymentStatus: "current"},
		{Status: "active", MonthlyRecurringRevenue: 500, PaymentStatus: "overdue"},
		{Status: "suspended", MonthlyRecurringRevenue: 800, PaymentStatus: "overdue"},
	}
	events := []dataservice.AutomationEvent{
		{CreatedAt: now.Add(-1 * time.Hour)},
		{CreatedAt: now.Add(-23 * time.Hour)},
		{CreatedAt: now.Add(-25 * time.Hour)}, // outside the 24h window
	}

	s := ComputeStats(clients, events, now)
	assert.Equal(t, 3, s.TotalClients)
	assert.Equal(t, 2, s.ActiveClients)
	assert.Equal(t, 1, s.SuspendedClients)
	assert.Equal(t, 1500.0, s.MonthlyRevenue)
	assert.Equal(t, 2, s.OverduePayments)
	assert.Equal(t, 2, s.RecentAutomations)
}

func TestMonthlyRevenueIgnoresInactiveClients(t *testing.T) {
	clients := []dataservice.ClientRecord{
		{Status: "active", MonthlyRecurringRevenue: 100},
		{Status: "suspended", MonthlyRecurringRevenue: 9999},
		{Status: "cancelled", MonthlyRecurringRevenue: 9999},
	}
	s := ComputeStats(clients, nil, time.Now())
	assert.Equal(t, 100.0, s.MonthlyRevenue)

	// Changing an inactive client's revenue must not change the sum.
	clients[1].MonthlyRecurringRevenue = 1
	s2 := ComputeStats(clients, nil, time.Now())
	assert.Equal(t, s.MonthlyRevenue, s2.MonthlyRevenue)
}

func TestStatusCountsPartitionTotal(t *testing.T) {
	clients := []dataservice.ClientRecord{
		{Status: "active"}, {Status: "suspended"}, {Status: "cancelled"}, {Status: "active"},
	}
	s := ComputeStats(clients, nil, time.Now())
	cancelled := 0
	for _, c := range clients {
		if c.Status == dataservice.ClientStatusCancelled {
			cancelled++
		}
	}
	assert.Equal(t, s.TotalClients, s.ActiveClients+s.SuspendedClients+cancelled)
}

func TestActivePercentZeroGuard(t *testing.T) {
	_, ok := Stats{}.ActivePercent()
	assert.False(t, ok, "zero clients must not divide")

	pct, ok := Stats{TotalClients: 4, ActiveClients: 3}.ActivePercent()
	assert.True(t, ok)
	assert.InDelta(t, 75.0, pct, 0.001)
}

func TestComputePaymentStats(t *testing.T) {
	txns := []dataservice.Transaction{
		{Amount: 100, Status: "completed"},
		{Amount: 50, Status: "failed"},
		{Amount: 200, Status: "completed"},
	}
	s := ComputePaymentStats(txns)
	assert.Equal(t, 300.0, s.TotalRevenue)
	assert.Equal(t, 2, s.SuccessfulPayments)
	assert.Equal(t, 1, s.FailedPayments)
	assert.Equal(t, 0, s.PendingPayments)
	assert.Equal(t, 150.0, s.AverageTransaction)
}

func TestPaymentStatsAverageIsTotal(t *testing.T) {
	// No completed transactions: average must be 0, never a division by zero.
	s := ComputePaymentStats([]dataservice.Transaction{
		{Amount: 10, Status: "failed"},
		{Amount: 20, Status: "pending"},
		{Amount: 30, Status: "refunded"},
	})
	assert.Equal(t, 0.0, s.AverageTransaction)
	assert.Equal(t, 0.0, s.TotalRevenue)

	s = ComputePaymentStats(nil)
	assert.Equal(t, 0.0, s.AverageTransaction)
}
