// Package client is a Go client for the moodlog HTTP API. It owns the
// persistent session: login stores the token, authenticated calls attach it
// as a bearer header, and a 401 on an authenticated call discards it — the
// server never revokes tokens, so that 401 is the only invalidation signal.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"moodlog/internal/apperr"
	"moodlog/internal/models"
	"moodlog/internal/stats"
)

// ErrNotLoggedIn is returned by authenticated calls made while anonymous.
var ErrNotLoggedIn = apperr.Auth("not logged in")

type Client struct {
	baseURL string
	http    *http.Client
	store   SessionStore
	session *Session
}

// New builds a client and loads any persisted session from store.
func New(baseURL string, store SessionStore) (*Client, error) {
	sess, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		store:   store,
		session: sess,
	}, nil
}

// Session returns the current session, or nil when anonymous.
func (c *Client) Session() *Session {
	return c.session
}

// Logout discards the session locally. The token itself stays valid until
// expiry; the server keeps no session state.
func (c *Client) Logout() error {
	c.session = nil
	return c.store.Clear()
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

func (c *Client) Register(ctx context.Context, username, password string) (*Session, error) {
	return c.authenticate(ctx, "/api/auth/register", username, password)
}

func (c *Client) Login(ctx context.Context, username, password string) (*Session, error) {
	return c.authenticate(ctx, "/api/auth/login", username, password)
}

func (c *Client) authenticate(ctx context.Context, path, username, password string) (*Session, error) {
	var tok tokenResponse
	if err := c.do(ctx, http.MethodPost, path, credentials{Username: username, Password: password}, &tok, false); err != nil {
		return nil, err
	}
	sess := &Session{Username: tok.Username, Token: tok.Token}
	if err := c.store.Save(sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	c.session = sess
	return sess, nil
}

type CreateMoodRequest struct {
	Mood    models.Mood `json:"mood"`
	Journal string      `json:"journal,omitempty"`
	Date    *time.Time  `json:"date,omitempty"`
}

func (c *Client) CreateMood(ctx context.Context, req CreateMoodRequest) (*models.MoodEntry, error) {
	var entry models.MoodEntry
	if err := c.do(ctx, http.MethodPost, "/api/moods", req, &entry, true); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (c *Client) ListMoods(ctx context.Context) ([]models.MoodEntry, error) {
	var entries []models.MoodEntry
	if err := c.do(ctx, http.MethodGet, "/api/moods", nil, &entries, true); err != nil {
		return nil, err
	}
	return entries, nil
}

// Stats holds the derived gamification numbers shown next to the history.
type Stats struct {
	TotalPoints   int `json:"total_points"`
	CurrentStreak int `json:"current_streak"`
	EntryCount    int `json:"entry_count"`
}

// DeriveStats fetches the user's entries and computes points and streak
// locally, using today's calendar day as the anchor.
func (c *Client) DeriveStats(ctx context.Context) (*Stats, error) {
	entries, err := c.ListMoods(ctx)
	if err != nil {
		return nil, err
	}
	dates := make([]time.Time, len(entries))
	for i, e := range entries {
		dates[i] = e.Date
	}
	return &Stats{
		TotalPoints:   stats.Points(len(entries)),
		CurrentStreak: stats.Streak(dates, time.Now()),
		EntryCount:    len(entries),
	}, nil
}

// ServerStats asks the server for the same numbers.
func (c *Client) ServerStats(ctx context.Context) (*Stats, error) {
	var s Stats
	if err := c.do(ctx, http.MethodGet, "/api/stats", nil, &s, true); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var u models.User
	if err := c.do(ctx, http.MethodGet, "/api/users/me", nil, &u, true); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, authed bool) error {
	if authed && c.session == nil {
		return ErrNotLoggedIn
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+c.session.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		// Only a rejected session token means the session is dead. A 401
		// from an unauthenticated call (a failed login) must not touch a
		// session that is already stored.
		if authed {
			c.session = nil
			_ = c.store.Clear()
		}
		return apperr.Auth(errorMessage(resp.Body))
	}
	if resp.StatusCode >= 400 {
		msg := errorMessage(resp.Body)
		switch resp.StatusCode {
		case http.StatusBadRequest:
			return apperr.Validation(msg)
		case http.StatusNotFound:
			return apperr.NotFound(msg)
		default:
			return apperr.Store(fmt.Errorf("%s %s: %s", method, path, msg))
		}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func errorMessage(body io.Reader) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(body).Decode(&payload); err != nil || payload.Message == "" {
		return "request failed"
	}
	return payload.Message
}
