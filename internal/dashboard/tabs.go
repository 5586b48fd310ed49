package dashboard

// Tab identifies one admin dashboard view. Tab selection is its own small
// state machine: transitions happen only on explicit user selection and tab
// state never participates in browser history.
type Tab string

const (
	TabOverview Tab = "overview"
	TabClients  Tab = "clients"
	TabPayments Tab = "payments"
	TabLogs     Tab = "logs"
)

// DefaultTab is the initial tab state.
const DefaultTab = TabOverview

// Tabs lists all tabs in display order.
var Tabs = []Tab{TabOverview, TabClients, TabPayments, TabLogs}

// ParseTab validates a requested tab. An empty or unknown value resolves to
// the default rather than an error: a bad tab request is a UI glitch, not a
// failure.
func ParseTab(s string) Tab {
	switch Tab(s) {
	case TabOverview, TabClients, TabPayments, TabLogs:
		return Tab(s)
	default:
		return DefaultTab
	}
}
