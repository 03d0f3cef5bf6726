package facade

import "github.com/sqrlid/idcore/identity"

// Callbacks is the full set of host hooks a Session invokes while
// driving a Transaction, per spec.md section 6. Every hook that can
// suspend the core mutex is passed the Transaction so it can resolve
// its User via the weak handle rather than the core aliasing one.
type Callbacks struct {
	// OnSelectUser asks the host which identity a new transaction
	// should act on.
	OnSelectUser func(t *Transaction) (*identity.User, error)

	// OnSelectAlternateIdentity is invoked when a server's relying
	// domain requests an identity other than the one selected.
	OnSelectAlternateIdentity func(t *Transaction)

	// OnAuthenticationRequired asks whether the host can supply
	// credentialKind right now; false means the transaction should be
	// cancelled rather than left waiting.
	OnAuthenticationRequired func(t *Transaction, credentialKind Credential) bool

	// OnAsk presents a two-button prompt to the user.
	OnAsk func(t *Transaction, message, button1Label, button2Label string) int

	// OnSend delivers a protocol payload to url and returns the raw
	// server response.
	OnSend func(t *Transaction, url string, payload []byte) ([]byte, error)

	// OnProgress reports 0-100 percent complete; returning 0 requests
	// cancellation of the in-progress EnScrypt iteration.
	OnProgress func(t *Transaction, progressPercent int) int

	// OnSaveSuggested is called after a mutation leaves a User dirty,
	// suggesting the host persist it via the catalog.
	OnSaveSuggested func(u *identity.User)

	// OnTransactionComplete delivers the terminal Status.
	OnTransactionComplete func(t *Transaction)
}
