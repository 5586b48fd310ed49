package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnknownEnumValuesFallThroughDefaults(t *testing.T) {
	b := ClientStatusBadge("trial")
	assert.Equal(t, "trial", b.Label)
	assert.Equal(t, "gray", b.Tone)

	b = TransactionStatusBadge("chargeback")
	assert.Equal(t, "chargeback", b.Label)

	assert.Equal(t, "activity", AutomationIcon("unknown_type"))
}

func TestKnownBadges(t *testing.T) {
	assert.Equal(t, Badge{Label: "Active", Tone: "green", Icon: "check-circle"}, ClientStatusBadge("active"))
	assert.Equal(t, Badge{Label: "Overdue", Tone: "red"}, PaymentStatusBadge("overdue"))
	assert.Equal(t, Badge{Label: "Refunded", Tone: "gray", Icon: "trending-down"}, TransactionStatusBadge("refunded"))
	assert.Equal(t, Badge{Label: "Success", Tone: "green", Icon: "check-circle"}, EventStatusBadge("success"))
	assert.Equal(t, "mail", AutomationIcon("payment_reminder"))
}
