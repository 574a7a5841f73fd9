package ports

import "context"

// Identity is a signed-in staff member.
type Identity struct {
	Subject string
	Email   string
}

// AuthChangeFunc receives the identity whose session changed and the new identity, which
// is nil after sign-out.
type AuthChangeFunc func(previous Identity, current *Identity)

// AccessGuard gates the staff views. Both staff views require a non-empty identity.
type AccessGuard interface {
	// CurrentUser returns the identity attached to ctx by the transport, if any.
	CurrentUser(ctx context.Context) (Identity, bool)

	// OnAuthChange registers fn and returns a function that unregisters it.
	OnAuthChange(fn AuthChangeFunc) (unregister func())
}
