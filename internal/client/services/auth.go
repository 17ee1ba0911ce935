// Package services contains the application services of the userdesk
// client: credential exchange, profile resolution, and the role-gated
// user-management facade.
package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/aleksmv/userdesk/internal/client/api"
	"github.com/aleksmv/userdesk/internal/client/claims"
	"github.com/aleksmv/userdesk/internal/client/credstore"
	"github.com/aleksmv/userdesk/internal/client/models"
	"github.com/aleksmv/userdesk/internal/client/session"
	"github.com/aleksmv/userdesk/internal/logging"
)

// Gateway is the transport the services dispatch through. *api.Client
// satisfies it; tests substitute a stub. DoAnonymous carries the calls
// that must not trip the gateway's credential invalidation, login above
// all: a wrong password is not a revoked session.
type Gateway interface {
	Do(ctx context.Context, method, path string, body, out any) error
	DoAnonymous(ctx context.Context, method, path string, body, out any) error
}

// AuthService owns the session lifecycle.
//
// Contract:
//   - Initialize: seed the session from the stored token, then refresh it
//     from the server in the background. Idempotent, call once at startup.
//   - Login: exchange credentials for a token, persist it, seed the
//     session optimistically, refresh in the background.
//   - Logout: drop the session and the stored token. No server call.
//   - Register: create a new account. No session changes.
//   - Resolve: fetch the authoritative profile into the session.
//   - Admin: obtain the user-management facade; only ADMIN sessions get one.
//   - Wait: block until background profile refreshes finish.
type AuthService interface {
	Initialize(ctx context.Context) error
	Login(ctx context.Context, email, password string) error
	Logout(ctx context.Context) error
	Register(ctx context.Context, req RegisterRequest) error
	Resolve(ctx context.Context) (*models.User, error)
	Admin() (AdminService, error)
	Wait()
}

type authService struct {
	gw      Gateway
	tokens  credstore.Store
	session *session.Session
	log     logging.Logger

	initOnce sync.Once
	wg       sync.WaitGroup
}

// NewAuthService wires the credential exchange to the gateway, the
// credential store, and the session record it owns.
func NewAuthService(gw Gateway, tokens credstore.Store, sess *session.Session, log logging.Logger) AuthService {
	return &authService{gw: gw, tokens: tokens, session: sess, log: log}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// RegisterRequest is the payload of the account-creation endpoint.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password"`
}

// Validate mirrors the registration form checks: name, email, and password
// are required, and the email must at least look like one.
func (r RegisterRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("name is required")
	}
	if strings.TrimSpace(r.Email) == "" {
		return errors.New("email is required")
	}
	if !strings.Contains(r.Email, "@") {
		return errors.New("email is not valid")
	}
	if r.Password == "" {
		return ErrPasswordRequired
	}
	return nil
}

// Initialize seeds the session from the stored token: a fast local decode
// makes the identity visible immediately, then the authoritative profile
// is fetched in the background. Subsequent calls are no-ops.
func (a *authService) Initialize(ctx context.Context) error {
	var err error
	a.initOnce.Do(func() { err = a.initialize(ctx) })
	return err
}

func (a *authService) initialize(ctx context.Context) error {
	epoch := a.session.BeginLoading()

	token, err := a.tokens.Load(ctx)
	if err != nil {
		a.session.EndLoading(epoch)
		return fmt.Errorf("credential load error: %w", err)
	}
	if token == "" {
		a.session.EndLoading(epoch)
		return nil
	}

	cl, err := claims.Decode(token)
	if err != nil {
		// A token we cannot read is no identity at all.
		a.log.Warn(ctx, "stored token is not decodable, purging", "error", err)
		if cerr := a.tokens.Clear(ctx); cerr != nil {
			a.log.Error(ctx, "failed to purge stored token", "error", cerr)
		}
		a.session.EndLoading(epoch)
		return nil
	}

	a.session.SetUser(cl.User(), epoch)
	a.resolveAsync(ctx)
	return nil
}

// Login exchanges credentials for a bearer token. On success the token is
// persisted and the claims-derived identity becomes observable before the
// authoritative profile fetch begins; consumers may briefly see the
// optimistic data superseded. On failure nothing changes and the error
// carries the server-supplied message when one was given.
func (a *authService) Login(ctx context.Context, email, password string) error {
	var resp loginResponse
	if err := a.gw.DoAnonymous(ctx, http.MethodPost, "/auth/login", loginRequest{Email: email, Password: password}, &resp); err != nil {
		return err
	}
	if resp.Token == "" {
		return errors.New("login response carried no token")
	}

	if err := a.tokens.Save(ctx, resp.Token); err != nil {
		return fmt.Errorf("credential save error: %w", err)
	}

	epoch := a.session.BeginLoading()
	if cl, derr := claims.Decode(resp.Token); derr == nil {
		u := cl.User()
		if u.Email == "" {
			u.Email = email
		}
		a.session.SetUser(u, epoch)
	} else {
		// The server just issued this token, so it stays; the profile
		// fetch below supplies the identity the decode could not.
		a.log.Warn(ctx, "issued token is not decodable", "error", derr)
		a.session.EndLoading(epoch)
	}

	a.resolveAsync(ctx)
	return nil
}

// Logout ends the session locally. In-memory state is cleared first, so
// every observer sees the session gone even if the store cleanup fails.
func (a *authService) Logout(ctx context.Context) error {
	a.session.Clear()
	if err := a.tokens.Clear(ctx); err != nil {
		return fmt.Errorf("credential purge error: %w", err)
	}
	return nil
}

// Register creates a new account. The session, whatever its state, is
// untouched.
func (a *authService) Register(ctx context.Context, req RegisterRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return a.gw.DoAnonymous(ctx, http.MethodPost, "/auth/register", req, nil)
}

// Resolve fetches the authoritative profile and installs it in the
// session. A rejected credential has already been handled by the gateway,
// so it maps to an absent user with no error. Any other failure leaves the
// optimistic identity in place; a transient network error must not log the
// user out.
func (a *authService) Resolve(ctx context.Context) (*models.User, error) {
	epoch := a.session.Epoch()

	var p models.Profile
	err := a.gw.Do(ctx, http.MethodGet, "/api/v1/me", nil, &p)
	if errors.Is(err, api.ErrUnauthorized) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	u := p.User()
	if !a.session.SetUser(u, epoch) {
		// Logged out while the call was in flight; the result is stale.
		return nil, nil
	}
	return u, nil
}

// Admin returns the user-management facade when the current session holds
// the ADMIN role, and ErrForbidden otherwise. The facade re-checks the
// live role on every call, so a reference captured before a role change
// still fails safely.
func (a *authService) Admin() (AdminService, error) {
	if !a.session.IsAdmin() {
		return nil, api.ErrForbidden
	}
	return &adminService{gw: a.gw, session: a.session, log: a.log}, nil
}

// Wait blocks until background profile refreshes started by Initialize or
// Login have finished.
func (a *authService) Wait() {
	a.wg.Wait()
}

// resolveAsync refreshes the profile in the background, detached from the
// caller's context. Epoch tagging inside Resolve discards the result if
// the session ended meanwhile.
func (a *authService) resolveAsync(ctx context.Context) {
	ctx = context.WithoutCancel(ctx)
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		if _, err := a.Resolve(ctx); err != nil {
			a.log.Warn(ctx, "profile refresh failed", "error", err)
		}
	}()
}
