// Package facade implements the SQRL client transaction surface: the
// callback contract a host application supplies, the transaction kinds
// the core services, and the credential/status vocabulary that crosses
// the boundary between core and host — spec.md sections 6 and 9.
package facade

import (
	"github.com/sixafter/nanoid"

	"github.com/sqrlid/idcore/identity"
)

// Kind names a user-facing transaction the core can service.
type Kind int

const (
	AuthQuery Kind = iota
	AuthIdent
	AuthDisable
	AuthEnable
	AuthRemove
	IdentitySave
	IdentityRescue
	IdentityRekey
	IdentityUnlock
	IdentityLock
	IdentityLoad
	IdentityGenerate
	IdentityChangePassword
)

func (k Kind) String() string {
	switch k {
	case AuthQuery:
		return "AUTH_QUERY"
	case AuthIdent:
		return "AUTH_IDENT"
	case AuthDisable:
		return "AUTH_DISABLE"
	case AuthEnable:
		return "AUTH_ENABLE"
	case AuthRemove:
		return "AUTH_REMOVE"
	case IdentitySave:
		return "IDENTITY_SAVE"
	case IdentityRescue:
		return "IDENTITY_RESCUE"
	case IdentityRekey:
		return "IDENTITY_REKEY"
	case IdentityUnlock:
		return "IDENTITY_UNLOCK"
	case IdentityLock:
		return "IDENTITY_LOCK"
	case IdentityLoad:
		return "IDENTITY_LOAD"
	case IdentityGenerate:
		return "IDENTITY_GENERATE"
	case IdentityChangePassword:
		return "IDENTITY_CHANGE_PASSWORD"
	default:
		return "UNKNOWN"
	}
}

// SiteAction collapses the original typed block hierarchy's empty
// site-action subclasses (Query/Ident/Disable/Enable/Remove) into a
// single tagged variant with per-variant data, per spec.md's design
// notes.
type SiteAction int

const (
	ActionQuery SiteAction = iota
	ActionIdent
	ActionDisable
	ActionEnable
	ActionRemove
)

// Credential names the kind of secret a callback is being asked for.
type Credential int

const (
	CredentialPassword Credential = iota
	CredentialHint
	CredentialRescueCode
	CredentialNewPassword
)

// Status is the terminal outcome reported to onTransactionComplete.
type Status int

const (
	StatusWorking Status = iota
	StatusSuccess
	StatusFailed
	StatusCancelled
)

// registry resolves a weak User handle by the ID the User was
// registered under, breaking the cyclic User/Transaction ownership the
// original client.cpp has: Transaction never holds a *User directly,
// only a user ID it can look up and which may no longer resolve.
type registry interface {
	Lookup(id string) (*identity.User, bool)
}

// Transaction is one in-flight operation against a User. It owns only
// a transaction ID and a weak reference into a registry; the User
// itself is never aliased here, so releasing a User and dropping a
// Transaction can happen in either order without a dangling pointer.
type Transaction struct {
	ID       string
	Kind     Kind
	Action   SiteAction
	Domain   string
	registry registry
	userID   string
	status   Status
}

// New creates a Transaction of the given kind against the User
// currently registered under userID. reg is typically a Session (see
// session.go).
func New(kind Kind, userID string, reg registry) (*Transaction, error) {
	id, err := nanoid.New()
	if err != nil {
		return nil, err
	}
	return &Transaction{ID: id, Kind: kind, userID: userID, registry: reg, status: StatusWorking}, nil
}

// User resolves the transaction's weak handle. It returns false if the
// identity has since been unregistered or was never registered;
// releasing a User does not unregister it.
func (t *Transaction) User() (*identity.User, bool) {
	return t.registry.Lookup(t.userID)
}

// Status returns the transaction's current terminal state.
func (t *Transaction) Status() Status { return t.status }

// Finish sets the transaction's terminal status. Cancelled is never
// upgraded to Failed: once a callback has cancelled, that outcome is
// final.
func (t *Transaction) Finish(s Status) {
	if t.status == StatusCancelled {
		return
	}
	t.status = s
}
