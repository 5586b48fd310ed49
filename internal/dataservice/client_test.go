package dataservice

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/trevor93/Aigency/internal/errors"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(ClientConfig{URL: srv.URL, AnonKey: "anon-key"})
	require.NoError(t, err)
	return c
}

func TestNewClientValidation(t *testing.T) {
	_, err := NewClient(ClientConfig{URL: "", AnonKey: "k"})
	assert.Error(t, err)

	_, err = NewClient(ClientConfig{URL: "https://example.com", AnonKey: ""})
	assert.Error(t, err)

	c, err := NewClient(ClientConfig{URL: "example.com", AnonKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", c.baseURL)
}

func TestSelectQueryEncode(t *testing.T) {
	q := SelectQuery{
		Select:  "*,client:clients(name,email)",
		OrderBy: "transaction_date",
		Desc:    true,
		Limit:   5,
		Filters: []Filter{{Column: "status", Op: "eq", Value: "completed"}},
	}
	v := q.encode()
	assert.Equal(t, "*,client:clients(name,email)", v.Get("select"))
	assert.Equal(t, "transaction_date.desc", v.Get("order"))
	assert.Equal(t, "5", v.Get("limit"))
	assert.Equal(t, "eq.completed", v.Get("status"))

	// Zero value defaults: select everything, no order, no limit.
	v = SelectQuery{}.encode()
	assert.Equal(t, "*", v.Get("select"))
	assert.Empty(t, v.Get("order"))
	assert.Empty(t, v.Get("limit"))
}

func TestListTransactionsPassesLimitAndEmbed(t *testing.T) {
	var gotQuery map[string]string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/payment_transactions", r.URL.Path)
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))
		gotQuery = map[string]string{
			"select": r.URL.Query().Get("select"),
			"order":  r.URL.Query().Get("order"),
			"limit":  r.URL.Query().Get("limit"),
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":"t1","client_id":"c1","amount":100,"status":"completed",
			 "payment_method":"card","transaction_date":"2026-08-01T00:00:00Z",
			 "client":{"name":"Acme Corp","email":"ops@acme.test"}},
			{"id":"t2","client_id":"gone","amount":50,"status":"failed",
			 "payment_method":"card","transaction_date":"2026-07-01T00:00:00Z",
			 "client":null}
		]`))
	}))

	rows, err := c.ListTransactions(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "*,client:clients(name,email)", gotQuery["select"])
	assert.Equal(t, "transaction_date.desc", gotQuery["order"])
	assert.Equal(t, "5", gotQuery["limit"])

	require.NotNil(t, rows[0].Client)
	assert.Equal(t, "Acme Corp", rows[0].Client.Name)
	// A missing owner surfaces as absent join data, not a failed fetch.
	assert.Nil(t, rows[1].Client)
}

func TestListClientsUnlimitedOmitsLimit(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, r.URL.Query().Has("limit"))
		assert.Equal(t, "created_at.desc", r.URL.Query().Get("order"))
		_, _ = w.Write([]byte(`[]`))
	}))

	rows, err := c.ListClients(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestSelectErrorIsTypedFetchFailure(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"permission denied"}`, http.StatusForbidden)
	}))

	_, err := c.ListClients(context.Background(), 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrFetchFailed))

	var pe *apperrors.PortalError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, CollectionClients, pe.Collection)
	assert.Equal(t, http.StatusForbidden, pe.StatusCode)
}

func TestGetClientByEmail(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "eq.demo@client.com", r.URL.Query().Get("email"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(`[{"id":"c1","name":"Demo","email":"demo@client.com",
			"status":"active","payment_status":"current",
			"subscription_tier":"pro","monthly_recurring_revenue":1200,
			"created_at":"2026-01-01T00:00:00Z"}]`))
	}))

	got, err := c.GetClientByEmail(context.Background(), "demo@client.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Demo", got.Name)

	// No row: nil, nil — absence is the caller's decision.
	c2 := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	got, err = c2.GetClientByEmail(context.Background(), "nobody@client.com")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSignInWithPassword(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/token", r.URL.Path)
		assert.Equal(t, "password", r.URL.Query().Get("grant_type"))

		var creds map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		if creds["password"] != "demo123" {
			http.Error(w, `{"error":"invalid_grant"}`, http.StatusBadRequest)
			return
		}
		_, _ = w.Write([]byte(`{"access_token":"tok-1","token_type":"bearer",
			"expires_in":3600,"user":{"id":"u1","email":"demo@client.com"}}`))
	}))

	session, err := c.SignInWithPassword(context.Background(), "demo@client.com", "demo123")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", session.AccessToken)
	assert.Equal(t, "demo@client.com", session.User.Email)

	_, err = c.SignInWithPassword(context.Background(), "demo@client.com", "wrong")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrAuthRequired))
}

func TestGetUser(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-1" {
			http.Error(w, `{}`, http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"id":"u1","email":"demo@client.com"}`))
	}))

	user, err := c.GetUser(context.Background(), "tok-1")
	require.NoError(t, err)
	assert.Equal(t, "demo@client.com", user.Email)

	_, err = c.GetUser(context.Background(), "expired")
	assert.True(t, errors.Is(err, apperrors.ErrAuthRequired))

	_, err = c.GetUser(context.Background(), "")
	assert.True(t, errors.Is(err, apperrors.ErrAuthRequired))
}

func TestSignOut(t *testing.T) {
	var called bool
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		assert.Equal(t, "/auth/v1/logout", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		w.WriteHeader(http.StatusNoContent)
	}))

	require.NoError(t, c.SignOut(context.Background(), "tok-1"))
	assert.True(t, called)
}

func TestSubmitContact(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/contact_submissions", r.URL.Path)
		assert.Equal(t, "return=minimal", r.Header.Get("Prefer"))
		var sub ContactSubmission
		require.NoError(t, json.NewDecoder(r.Body).Decode(&sub))
		assert.Equal(t, "Ada", sub.Name)
		w.WriteHeader(http.StatusCreated)
	}))

	err := c.SubmitContact(context.Background(), ContactSubmission{
		Name: "Ada", Email: "ada@example.com", Message: "hi",
	})
	require.NoError(t, err)
}

func TestListAutomationEventsSince(t *testing.T) {
	cutoff := time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "gte.2026-08-27T12:00:00Z", r.URL.Query().Get("created_at"))
		_, _ = w.Write([]byte(`[{"id":"e1","client_id":"c1","automation_type":"payment_reminder",
			"status":"success","message":"sent","metadata":{"channel":"email"},
			"created_at":"2026-08-28T01:00:00Z"}]`))
	}))

	rows, err := c.ListAutomationEventsSince(context.Background(), cutoff)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "email", rows[0].Metadata["channel"])
}
