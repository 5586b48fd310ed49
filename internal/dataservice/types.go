package dataservice

import "time"

// Client status values. Status and payment status are independent axes: an
// active client can be overdue.
const (
	ClientStatusActive    = "active"
	ClientStatusSuspended = "suspended"
	ClientStatusCancelled = "cancelled"
)

// Payment status values.
const (
	PaymentStatusCurrent = "current"
	PaymentStatusOverdue = "overdue"
	PaymentStatusPending = "pending"
)

// Subscription tiers.
const (
	TierStarter    = "starter"
	TierPro        = "pro"
	TierEnterprise = "enterprise"
)

// Transaction status values.
const (
	TxStatusCompleted = "completed"
	TxStatusFailed    = "failed"
	TxStatusPending   = "pending"
	TxStatusRefunded  = "refunded"
)

// Automation event types.
const (
	AutomationPaymentReminder = "payment_reminder"
	AutomationSuspension      = "suspension"
	AutomationReactivation    = "reactivation"
	AutomationReport          = "report"
	AutomationNotification    = "notification"
)

// Automation event status values.
const (
	EventStatusSuccess = "success"
	EventStatusFailed  = "failed"
	EventStatusPending = "pending"
)

// ClientRecord is a subscriber row in the hosted backend. The name keeps it
// distinct from Client, the service client that fetches it.
type ClientRecord struct {
	ID                      string     `json:"id"`
	Name                    string     `json:"name"`
	Email                   string     `json:"email"`
	Company                 string     `json:"company"`
	SubscriptionTier        string     `json:"subscription_tier"`
	Status                  string     `json:"status"`
	PaymentStatus           string     `json:"payment_status"`
	MonthlyRecurringRevenue float64    `json:"monthly_recurring_revenue"`
	NextPaymentDate         *time.Time `json:"next_payment_date"`
	CreatedAt               time.Time  `json:"created_at"`
}

// ClientRef is the eagerly joined owner projection on transactions and
// automation events. A nil ClientRef means the owner no longer resolves.
type ClientRef struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Transaction is one payment ledger row.
type Transaction struct {
	ID              string     `json:"id"`
	ClientID        string     `json:"client_id"`
	Amount          float64    `json:"amount"`
	Status          string     `json:"status"`
	PaymentMethod   string     `json:"payment_method"`
	TransactionDate time.Time  `json:"transaction_date"`
	Notes           string     `json:"notes"`
	Client          *ClientRef `json:"client"`
}

// AutomationEvent is one automation log row. Metadata is an opaque payload
// interpreted only by display tooling.
type AutomationEvent struct {
	ID             string         `json:"id"`
	ClientID       string         `json:"client_id"`
	AutomationType string         `json:"automation_type"`
	Status         string         `json:"status"`
	Message        string         `json:"message"`
	Metadata       map[string]any `json:"metadata"`
	CreatedAt      time.Time      `json:"created_at"`
	Client         *ClientRef     `json:"client"`
}

// User is the identity record behind a session.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Session is an authenticated identity session. The token is opaque; the
// backend owns its lifecycle and the portal caches it only for the duration
// of a page visit (cookie).
type Session struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	User        User   `json:"user"`
}

// ContactSubmission is a write-only marketing form payload.
type ContactSubmission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company string `json:"company,omitempty"`
	Message string `json:"message"`
}

// NewsletterSubscriber is a write-only newsletter signup payload.
type NewsletterSubscriber struct {
	Email string `json:"email"`
}
