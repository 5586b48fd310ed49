package dashboard

import "github.com/trevor93/Aigency/internal/dataservice"

// Badge is the display mapping for an enum value. Each enum gets an
// exhaustive switch with an explicit default arm, so an unknown value from
// the backend renders as a neutral badge instead of panicking or falling
// through a map lookup.
type Badge struct {
	Label string `json:"label"`
	Tone  string `json:"tone"` // green, red, yellow, orange, gray, blue, purple
	Icon  string `json:"icon"`
}

// ClientStatusBadge maps a client status to its display badge.
func ClientStatusBadge(status string) Badge {
	switch status {
	case dataservice.ClientStatusActive:
		return Badge{Label: "Active", Tone: "green", Icon: "check-circle"}
	case dataservice.ClientStatusSuspended:
		return Badge{Label: "Suspended", Tone: "red", Icon: "alert-circle"}
	case dataservice.ClientStatusCancelled:
		return Badge{Label: "Cancelled", Tone: "gray", Icon: "x-circle"}
	default:
		return Badge{Label: status, Tone: "gray", Icon: "alert-circle"}
	}
}

// PaymentStatusBadge maps a client payment status to its display badge.
func PaymentStatusBadge(status string) Badge {
	switch status {
	case dataservice.PaymentStatusCurrent:
		return Badge{Label: "Current", Tone: "green"}
	case dataservice.PaymentStatusOverdue:
		return Badge{Label: "Overdue", Tone: "red"}
	case dataservice.PaymentStatusPending:
		return Badge{Label: "Pending", Tone: "yellow"}
	default:
		return Badge{Label: status, Tone: "gray"}
	}
}

// TransactionStatusBadge maps a transaction status to its display badge.
func TransactionStatusBadge(status string) Badge {
	switch status {
	case dataservice.TxStatusCompleted:
		return Badge{Label: "Completed", Tone: "green", Icon: "check-circle"}
	case dataservice.TxStatusFailed:
		return Badge{Label: "Failed", Tone: "red", Icon: "x-circle"}
	case dataservice.TxStatusPending:
		return Badge{Label: "Pending", Tone: "yellow", Icon: "clock"}
	case dataservice.TxStatusRefunded:
		return Badge{Label: "Refunded", Tone: "gray", Icon: "trending-down"}
	default:
		return Badge{Label: status, Tone: "gray", Icon: "clock"}
	}
}

// EventStatusBadge maps an automation event status to its display badge.
func EventStatusBadge(status string) Badge {
	switch status {
	case dataservice.EventStatusSuccess:
		return Badge{Label: "Success", Tone: "green", Icon: "check-circle"}
	case dataservice.EventStatusFailed:
		return Badge{Label: "Failed", Tone: "red", Icon: "x-circle"}
	case dataservice.EventStatusPending:
		return Badge{Label: "Pending", Tone: "yellow", Icon: "clock"}
	default:
		return Badge{Label: status, Tone: "yellow", Icon: "clock"}
	}
}

// AutomationIcon maps an automation type to its display icon.
func AutomationIcon(automationType string) string {
	switch automationType {
	case dataservice.AutomationPaymentReminder:
		return "mail"
	case dataservice.AutomationSuspension:
		return "alert-triangle"
	case dataservice.AutomationReactivation:
		return "check-circle"
	case dataservice.AutomationReport:
		return "bar-chart"
	case dataservice.AutomationNotification:
		return "bell"
	default:
		return "activity"
	}
}
