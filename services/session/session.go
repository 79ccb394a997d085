// Package session holds per-browser storefront state: the signed-in user,
// the upstream bearer token, the checkout draft, and the chat history. It is
// the server-side replacement for the ambient client store the UI used to
// keep, with explicit hydrate-on-request and persist-on-change semantics.
package session

import (
	"time"

	"dairyfront/models"
)

// Session is the full state for one storefront session.
type Session struct {
	ID            string               `json:"id"`
	User          *models.User         `json:"user,omitempty"`
	Admin         bool                 `json:"admin"`
	UpstreamToken string               `json:"upstreamToken,omitempty"`
	Checkout      *Checkout            `json:"checkout,omitempty"`
	Chat          []models.ChatMessage `json:"chat,omitempty"`
	CreatedAt     time.Time            `json:"createdAt"`
	LastUpdatedAt time.Time            `json:"lastUpdatedAt"`
}

// Checkout is the in-progress subscription draft plus the orchestrator state
// for this session. The draft is destroyed on discard or successful
// submission; Status survives so the outcome of the deferred payment call
// stays observable.
type Checkout struct {
	Draft *models.SubscriptionDraft `json:"draft,omitempty"`

	// Results of the one-shot address and wallet fetches made when
	// checkout was opened. Each carries its own error so a partial
	// failure does not block the other.
	HasAddress    bool    `json:"hasAddress"`
	AddressError  string  `json:"addressError,omitempty"`
	WalletBalance float64 `json:"walletBalance"`
	WalletError   string  `json:"walletError,omitempty"`

	// InFlight guards against duplicate concurrent submissions.
	InFlight bool `json:"inFlight"`

	Status models.CheckoutStatus `json:"status"`
}

// Authenticated reports whether a user is signed in on this session.
func (s *Session) Authenticated() bool {
	return s.User != nil && s.UpstreamToken != ""
}
