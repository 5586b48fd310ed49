package dashboard

import (
	"strings"

	"github.com/trevor93/Aigency/internal/dataservice"
)

// FilterAll is the no-op value for a categorical filter axis.
const FilterAll = "all"

func axisMatches(filter, value string) bool {
	return filter == "" || filter == FilterAll || filter == value
}

// ClientFilter is the roster filter state: free-text search plus two
// categorical axes. Axes compose with AND; the zero value matches all.
type ClientFilter struct {
	Search        string
	Status        string
	PaymentStatus string
}

// Apply returns the clients matching the filter. The source slice is never
// mutated; the result is a fresh slice.
func (f ClientFilter) Apply(clients []dataservice.ClientRecord) []dataservice.ClientRecord {
	out := make([]dataservice.ClientRecord, 0, len(clients))
	term := strings.ToLower(strings.TrimSpace(f.Search))

	for _, c := range clients {
		if term != "" && !clientMatchesSearch(c, term) {
			continue
		}
		if !axisMatches(f.Status, c.Status) {
			continue
		}
		if !axisMatches(f.PaymentStatus, c.PaymentStatus) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// clientMatchesSearch is a case-insensitive substring match against name,
// email and company. An absent company is skipped, not counted as a miss.
func clientMatchesSearch(c dataservice.ClientRecord, lowerTerm string) bool {
	if strings.Contains(strings.ToLower(c.Name), lowerTerm) {
		return true
	}
	if strings.Contains(strings.ToLower(c.Email), lowerTerm) {
		return true
	}
	if c.Company != "" && strings.Contains(strings.ToLower(c.Company), lowerTerm) {
		return true
	}
	return false
}

// EventFilter is the automation log filter state.
type EventFilter struct {
	Type   string
	Status string
}

// Apply returns the events matching the filter.
func (f EventFilter) Apply(events []dataservice.AutomationEvent) []dataservice.AutomationEvent {
	out := make([]dataservice.AutomationEvent, 0, len(events))
	for _, e := range events {
		if !axisMatches(f.Type, e.AutomationType) {
			continue
		}
		if !axisMatches(f.Status, e.Status) {
			continue
		}
		out = append(out, e)
	}
	return out
}
