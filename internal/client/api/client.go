// Package api is the authenticated request executor for the Presence
// service. It attaches bearer credentials, and on a 401 performs a bounded
// one-shot session renewal followed by a single retry of the original
// request. A 401 on the retry is final; renewal is never attempted twice
// for one logical call.
package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/campuskit/presence/internal/client/session"
	"github.com/campuskit/presence/internal/common"
	"github.com/campuskit/presence/internal/logging"
	"github.com/google/uuid"
)

// Client issues HTTP requests against the remote service. The session store
// is injected so the renewal path is mockable and tokens have a single owner.
type Client struct {
	baseURL string
	http    *http.Client
	store   session.Store
	log     logging.Logger
}

// New builds a Client. timeout bounds every request, the renewal round-trip
// included.
func New(baseURL string, timeout time.Duration, store session.Store, log logging.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		store:   store,
		log:     log,
	}
}

type response struct {
	status      int
	contentType string
	body        []byte
}

func (r *response) ok() bool {
	return r.status >= 200 && r.status < 300
}

// send performs one HTTP attempt. The payload bytes are re-wrapped in a fresh
// reader per attempt so a retry sends an identical body.
func (c *Client) send(ctx context.Context, method, path string, body *payload, token string) (*response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body.data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", body.contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}

	return &response{
		status:      resp.StatusCode,
		contentType: resp.Header.Get("Content-Type"),
		body:        data,
	}, nil
}

// do runs the full executor algorithm for one logical call:
//
//  1. attach the stored access token, if any
//  2. send
//  3. non-401 resolves immediately
//  4. 401: renew exactly once via the refresh token, then resend the original
//     request once with the new token; that outcome is final
//
// Side-effecting calls (multipart submissions included) go through the same
// path: the single bounded retry is an accepted at-least-once risk.
func (c *Client) do(ctx context.Context, method, path string, body *payload, normalize normalizer) ([]byte, error) {
	if normalize == nil {
		normalize = messageFromBody
	}
	reqID := uuid.NewString()

	resp, err := c.send(ctx, method, path, body, c.store.AccessToken(ctx))
	if err != nil {
		c.log.Error(ctx, "request failed", "request_id", reqID, "method", method, "path", path, "error", err)
		return nil, err
	}

	if resp.status != http.StatusUnauthorized {
		return c.resolve(ctx, reqID, method, path, resp, normalize)
	}

	token, renewed := c.renew(ctx, reqID)
	if !renewed {
		msg := normalize(resp.contentType, resp.body)
		if msg == "" {
			msg = "Unauthorized"
		}
		return nil, &Error{Status: resp.status, Message: msg}
	}

	c.log.Debug(ctx, "retrying with renewed token", "request_id", reqID, "method", method, "path", path)
	resp, err = c.send(ctx, method, path, body, token)
	if err != nil {
		return nil, err
	}
	return c.resolve(ctx, reqID, method, path, resp, normalize)
}

// resolve turns the final response of a call into a payload or typed error.
func (c *Client) resolve(ctx context.Context, reqID, method, path string, resp *response, normalize normalizer) ([]byte, error) {
	if resp.ok() {
		if resp.status == http.StatusNoContent || len(resp.body) == 0 {
			return nil, nil
		}
		return resp.body, nil
	}

	apiErr := &Error{Status: resp.status, Message: normalize(resp.contentType, resp.body)}
	c.log.Warn(ctx, "request rejected", "request_id", reqID, "method", method, "path", path, "status", resp.status)
	return nil, apiErr
}

// renew exchanges the stored refresh token for a new access token. Returns
// false when no refresh token exists or the renewal call fails in any way;
// the caller then surfaces the original 401 without further attempts. On
// success only the access token is persisted (the refresh token is unchanged)
// and the write happens before returning so the retry observes it.
func (c *Client) renew(ctx context.Context, reqID string) (string, bool) {
	refresh := c.store.RefreshToken(ctx)
	if refresh == "" {
		return "", false
	}

	body, err := jsonPayload(map[string]string{"refresh": refresh})
	if err != nil {
		return "", false
	}

	resp, err := c.send(ctx, http.MethodPost, "/token/refresh/", body, "")
	if err != nil || !resp.ok() {
		c.log.Warn(ctx, "session renewal failed", "request_id", reqID)
		return "", false
	}

	var data struct {
		Access string `json:"access"`
	}
	if err := decode(resp.body, &data); err != nil || data.Access == "" {
		return "", false
	}

	if err := c.store.UpdateAccessToken(ctx, data.Access); err != nil {
		c.log.Error(ctx, "failed to persist renewed token", "request_id", reqID, "error", err)
		return "", false
	}

	c.log.Debug(ctx, "session renewed", "request_id", reqID)
	return data.Access, true
}
