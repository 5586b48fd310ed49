package dataservice

import (
	"context"
	"time"
)

// Collection names in the hosted backend.
const (
	CollectionClients     = "clients"
	CollectionTxns        = "payment_transactions"
	CollectionAutomations = "automation_logs"
	CollectionContact     = "contact_submissions"
	CollectionNewsletter  = "newsletter_subscribers"
)

// clientEmbed resolves the owning client's name and email in the same
// round trip as the parent rows.
const clientEmbed = "*,client:clients(name,email)"

// ListClients returns clients ordered by creation time, newest first.
// A limit of 0 fetches the full collection.
func (c *Client) ListClients(ctx context.Context, limit int) ([]ClientRecord, error) {
	var rows []ClientRecord
	err := c.Select(ctx, CollectionClients, SelectQuery{
		OrderBy: "created_at",
		Desc:    true,
		Limit:   limit,
	}, &rows)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// GetClientByEmail returns the client record for an email, or nil when no
// record exists. Absence is not an error here; the caller decides.
func (c *Client) GetClientByEmail(ctx context.Context, email string) (*ClientRecord, error) {
	var rows []ClientRecord
	err := c.Select(ctx, CollectionClients, SelectQuery{
		Filters: []Filter{{Column: "email", Op: "eq", Value: email}},
		Limit:   1,
	}, &rows)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// ListTransactions returns payment transactions with the owning client
// joined, ordered by transaction date, newest first.
func (c *Client) ListTransactions(ctx context.Context, limit int) ([]Transaction, error) {
	var rows []Transaction
	err := c.Select(ctx, CollectionTxns, SelectQuery{
		Select:  clientEmbed,
		OrderBy: "transaction_date",
		Desc:    true,
		Limit:   limit,
	}, &rows)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListAutomationEvents returns automation log rows with the owning client
// joined, ordered by creation time, newest first.
func (c *Client) ListAutomationEvents(ctx context.Context, limit int) ([]AutomationEvent, error) {
	var rows []AutomationEvent
	err := c.Select(ctx, CollectionAutomations, SelectQuery{
		Select:  clientEmbed,
		OrderBy: "created_at",
		Desc:    true,
		Limit:   limit,
	}, &rows)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListAutomationEventsSince returns automation events created at or after
// the cutoff, newest first. Used for the trailing-24h dashboard count.
func (c *Client) ListAutomationEventsSince(ctx context.Context, cutoff time.Time) ([]AutomationEvent, error) {
	var rows []AutomationEvent
	err := c.Select(ctx, CollectionAutomations, SelectQuery{
		OrderBy: "created_at",
		Desc:    true,
		Filters: []Filter{{Column: "created_at", Op: "gte", Value: cutoff.UTC().Format(time.RFC3339)}},
	}, &rows)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// SubmitContact inserts a contact form submission.
func (c *Client) SubmitContact(ctx context.Context, sub ContactSubmission) error {
	return c.Insert(ctx, CollectionContact, sub)
}

// SubscribeNewsletter inserts a newsletter signup.
func (c *Client) SubscribeNewsletter(ctx context.Context, sub NewsletterSubscriber) error {
	return c.Insert(ctx, CollectionNewsletter, sub)
}
