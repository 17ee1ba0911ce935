// Package credstore persists the bearer token across process restarts.
//
// The store is a single durable slot: exactly one opaque token string under
// one well-known key, written on login and wiped on logout or credential
// rejection.
package credstore

import "context"

const tokenKey = "token"

// Store is the durable credential slot.
//
// Load returns an empty string (and no error) when no token is held.
type Store interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}
