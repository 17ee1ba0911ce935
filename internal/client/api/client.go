// Package api dispatches HTTP requests to the user-management service,
// injecting the stored bearer credential and reacting uniformly to its
// rejection.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aleksmv/userdesk/internal/client/credstore"
	"github.com/aleksmv/userdesk/internal/client/session"
	"github.com/aleksmv/userdesk/internal/logging"
)

// Client is the authenticated request gateway. Every outbound call to the
// service goes through Do, or DoAnonymous for the endpoints that mint
// credentials instead of presenting them.
type Client struct {
	baseURL string
	hc      *http.Client
	tokens  credstore.Store
	session *session.Session
	log     logging.Logger
}

func New(baseURL string, timeout time.Duration, tokens credstore.Store, sess *session.Session, log logging.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: timeout},
		tokens:  tokens,
		session: sess,
		log:     log,
	}
}

// Do sends method/path with an optional JSON body and decodes a successful
// JSON response into out (when out is non-nil and the body is non-empty).
//
// The bearer header is attached only when a token is currently stored;
// when none is held the header is simply omitted, and endpoints requiring
// authentication answer 401. Responses are handled uniformly:
//
//   - 401: the stored token is purged, the session cleared, and
//     ErrUnauthorized returned.
//   - other non-2xx: an *HTTPError with the status and the server-supplied
//     {message}, when one was parseable.
//   - no response: a *TransportError. No automatic retries.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	return c.do(ctx, method, path, body, out, true)
}

// DoAnonymous is Do for endpoints that establish credentials rather than
// use them: no bearer header is sent, and a 401 is an ordinary *HTTPError.
// A rejected login attempt must not tear down whatever session already
// exists, so the uniform invalidation never applies here.
func (c *Client) DoAnonymous(ctx context.Context, method, path string, body, out any) error {
	return c.do(ctx, method, path, body, out, false)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, authed bool) error {
	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		rd = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	if authed {
		token, err := c.tokens.Load(ctx)
		if err != nil {
			return fmt.Errorf("credential load error: %w", err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if authed && resp.StatusCode == http.StatusUnauthorized {
		c.invalidate(ctx)
		return ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &HTTPError{Status: resp.StatusCode, Message: readMessage(resp.Body)}
	}

	if out == nil {
		return nil
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Err: err}
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// invalidate is the single reaction to a rejected credential: purge the
// stored token, then clear the session (which also advances the epoch).
// Runs detached from the request context so a canceled call still cleans up.
func (c *Client) invalidate(ctx context.Context) {
	ctx = context.WithoutCancel(ctx)
	if err := c.tokens.Clear(ctx); err != nil {
		c.log.Error(ctx, "failed to purge rejected credential", "error", err)
	}
	c.session.Clear()
}

// readMessage extracts the server-supplied {message} from an error body.
func readMessage(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 64<<10))
	if err != nil {
		return ""
	}
	var payload struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(data, &payload) != nil {
		return ""
	}
	return payload.Message
}
