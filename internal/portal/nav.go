package portal

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// Page identifies one page state. Exactly one page is active per visit;
// the state is re-derived from the location on every navigation.
type Page string

const (
	PageHome              Page = "home"
	PageClientLogin       Page = "client-login"
	PageClientDashboard   Page = "client-dashboard"
	PagePaymentSuspension Page = "payment-suspension"
	PageAdminLogin        Page = "admin-login"
	PageAdminDashboard    Page = "admin-dashboard"
)

// PageForPath derives the page state for a URL path. Unrecognized paths
// resolve to the marketing home page; fallback reports whether that
// catch-all applied so misroutes stay visible in logs.
func PageForPath(path string) (page Page, fallback bool) {
	switch path {
	case "/login", "/client-login":
		return PageClientLogin, false
	case "/client-dashboard":
		return PageClientDashboard, false
	case "/payment-suspension":
		return PagePaymentSuspension, false
	case "/admin-login":
		return PageAdminLogin, false
	case "/admin-dashboard":
		return PageAdminDashboard, false
	case "/":
		return PageHome, false
	default:
		return PageHome, true
	}
}

// Path returns the canonical location for a page state.
func (p Page) Path() string {
	switch p {
	case PageClientLogin:
		return "/client-login"
	case PageClientDashboard:
		return "/client-dashboard"
	case PagePaymentSuspension:
		return "/payment-suspension"
	case PageAdminLogin:
		return "/admin-login"
	case PageAdminDashboard:
		return "/admin-dashboard"
	default:
		return "/"
	}
}

// Protected reports whether a page requires a session.
func (p Page) Protected() bool {
	return p == PageClientDashboard || p == PageAdminDashboard
}

// LoginPage returns the login page guarding a protected page.
func (p Page) LoginPage() Page {
	if p == PageAdminDashboard {
		return PageAdminLogin
	}
	return PageClientLogin
}

// NavMachine owns the current page state for one visit. All changes go
// through Transition; nothing else mutates the state.
type NavMachine struct {
	mu      sync.Mutex
	current Page
}

// NewNavMachine derives the initial state from the startup location.
func NewNavMachine(path string) *NavMachine {
	page, fallback := PageForPath(path)
	if fallback {
		log.Debug().Str("path", path).Msg("Unrecognized startup path, resolving to home")
	}
	return &NavMachine{current: page}
}

// Transition re-derives the page state from a location. It returns the new
// state; an unrecognized path lands on home and is logged as a fallback.
func (m *NavMachine) Transition(path string) Page {
	page, fallback := PageForPath(path)
	m.mu.Lock()
	prev := m.current
	m.current = page
	m.mu.Unlock()

	if fallback {
		log.Debug().Str("path", path).Str("from", string(prev)).Msg("Navigation fell back to home")
	}
	return page
}

// Current returns the active page state.
func (m *NavMachine) Current() Page {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}
