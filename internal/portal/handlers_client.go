package portal

import (
	"net/http"
	"time"

	"github.com/trevor93/Aigency/internal/dashboard"
	"github.com/trevor93/Aigency/internal/dataservice"
)

type clientAccountResponse struct {
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
}

// HandleClientAccount returns the signed-in client's own record, looked up
// by session email. A session without a client record gets 404 and the
// page shows its fallback copy.
func HandleClientAccount(deps *Deps) http.HandlerFunc {
	return deps.Gate.RequireSession(func(w http.ResponseWriter, r *http.Request, user *dataservice.User) {
		record, err := deps.Data.GetClientByEmail(r.Context(), user.Email)
		if err != nil {
			writePortalError(w, "load_client_account", err)
			return
		}
		if record == nil {
			writeError(w, http.StatusNotFound, "not_found", "No client record for this account")
			return
		}

		writeJSON(w, http.StatusOK, clientAccountResponse{
			Name:            record.Name,
			Email:           record.Email,
			Company:         record.Company,
			Tier:            record.SubscriptionTier,
			Status:          record.Status,
			StatusBadge:     dashboard.ClientStatusBadge(record.Status),
			PaymentStatus:   record.PaymentStatus,
			PaymentBadge:    dashboard.PaymentStatusBadge(record.PaymentStatus),
			MRR:             record.MonthlyRecurringRevenue,
			NextPaymentDate: record.NextPaymentDate,
		})
	})
}
