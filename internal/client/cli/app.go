// Package cli implements the interactive terminal client: a REPL over the
// session core, with the administrative command set visible only to ADMIN
// sessions.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/aleksmv/userdesk/internal/client/api"
	"github.com/aleksmv/userdesk/internal/client/config"
	"github.com/aleksmv/userdesk/internal/client/credstore"
	"github.com/aleksmv/userdesk/internal/client/services"
	"github.com/aleksmv/userdesk/internal/client/session"
	"github.com/aleksmv/userdesk/internal/logging"

	_ "modernc.org/sqlite"
)

type App struct {
	config  *config.Config
	auth    services.AuthService
	session *session.Session
	tokens  *credstore.SQLiteStore
	reader  *bufio.Reader
	log     logging.Logger
}

// NewApp is the composition root: it opens the credential store, builds the
// session record, the gateway, and the auth service, and wires them
// together. Nothing here is a package-level global; tests construct their
// own instances.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	tokens, err := credstore.Open(ctx, c.CredentialDB)
	if err != nil {
		return nil, fmt.Errorf("error initializing credential store: %w", err)
	}

	sess := session.New()
	gateway := api.New(c.BaseURL, c.RequestTimeout, tokens, sess, log)
	auth := services.NewAuthService(gateway, tokens, sess, log)

	return &App{
		config:  c,
		auth:    auth,
		session: sess,
		tokens:  tokens,
		reader:  bufio.NewReader(os.Stdin),
		log:     log,
	}, nil
}

// Run restores the session from the stored credential and hands control to
// the REPL. It returns when the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.tokens.Close()

	if err := a.auth.Initialize(ctx); err != nil {
		a.log.Error(ctx, "session restore failed", "error", err)
	}

	fmt.Println("Welcome to userdesk (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)

	a.auth.Wait()
}

func (a *App) isLoggedIn() bool {
	return a.session.Snapshot().User != nil
}

func (a *App) isAdmin() bool {
	return a.session.IsAdmin()
}

func (a *App) getStatus() string {
	snap := a.session.Snapshot()
	if snap.Loading {
		return "(...)"
	}
	if snap.User == nil {
		return ""
	}
	s := snap.User.Email
	if snap.User.Role != "" {
		s = s + " " + snap.User.Role
	}
	return fmt.Sprintf("(%s)", s)
}
