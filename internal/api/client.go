package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"bingo-cli/internal/identity"
	"bingo-cli/internal/model"
)

// Client talks to the board service over HTTP with JSON bodies.
//
// Envelope conventions:
// - success: the resource (or {"boards": [...], "meta": {...}} for listings)
// - failure: {"error": "...", "fields": [{"field": "...", "msg": "..."}]}
type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client

	// SessionID correlates requests from one unauthenticated client; the
	// server uses it to attribute anonymous edits consistently.
	SessionID string
}

func NewClient(baseURL, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	c := &Client{
		BaseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		Token:   strings.TrimSpace(token),
		HTTP:    &http.Client{Timeout: timeout},
	}
	if c.Token == "" {
		c.SessionID = identity.NewSessionID()
	}
	return c
}

type errEnvelope struct {
	Error  string           `json:"error"`
	Fields []FieldViolation `json:"fields,omitempty"`
}

type listEnvelope struct {
	Boards []model.Board `json:"boards"`
	Meta   struct {
		HasMore *bool `json:"hasMore,omitempty"`
	} `json:"meta"`
}

func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, body any, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", op, err)
		}
		rd = bytes.NewReader(b)
	}

	u := c.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return fmt.Errorf("build %s request: %w", op, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	} else if c.SessionID != "" {
		req.Header.Set("X-Session-Id", c.SessionID)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &NetworkError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
		}
		return nil
	}

	var env errEnvelope
	// Best-effort decode; some proxies return plain text.
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	_ = json.Unmarshal(raw, &env)
	msg := strings.TrimSpace(env.Error)
	if msg == "" {
		msg = strings.TrimSpace(string(raw))
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return &UnauthorizedError{}
	case http.StatusForbidden:
		return &ForbiddenError{Ref: msg}
	case http.StatusNotFound:
		return &NotFoundError{Kind: "resource", Ref: path}
	case http.StatusConflict:
		return &ConflictError{Ref: path}
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		if len(env.Fields) > 0 {
			return &ValidationError{Violations: env.Fields}
		}
		return &ValidationError{Violations: []FieldViolation{{Field: "", Msg: msg}}}
	default:
		return &NetworkError{Op: op, Err: fmt.Errorf("unexpected status %d: %s", resp.StatusCode, msg)}
	}
}

func (c *Client) ListBoards(ctx context.Context, q model.ListQuery) (BoardPage, error) {
	vals := url.Values{}
	if s := strings.TrimSpace(q.Search); s != "" {
		vals.Set("search", s)
	}
	vals.Set("sortBy", string(q.SortBy))
	vals.Set("sortOrder", string(q.SortOrder))
	vals.Set("limit", strconv.Itoa(q.Limit))
	vals.Set("offset", strconv.Itoa(q.Offset))

	var env listEnvelope
	if err := c.do(ctx, "list boards", http.MethodGet, "/api/boards", vals, nil, &env); err != nil {
		return BoardPage{}, err
	}
	return BoardPage{Boards: env.Boards, HasMore: env.Meta.HasMore}, nil
}

func (c *Client) GetBoard(ctx context.Context, ownerHandle, slug string) (model.Board, error) {
	var b model.Board
	path := "/api/boards/" + url.PathEscape(ownerHandle) + "/" + url.PathEscape(slug)
	if err := c.do(ctx, "get board", http.MethodGet, path, nil, nil, &b); err != nil {
		if IsNotFound(err) {
			return model.Board{}, &NotFoundError{Kind: "board", Ref: ownerHandle + "/" + slug}
		}
		return model.Board{}, err
	}
	return b, nil
}

func (c *Client) ListCells(ctx context.Context, boardID string) ([]model.Cell, error) {
	var cells []model.Cell
	path := "/api/boards/" + url.PathEscape(boardID) + "/cells"
	if err := c.do(ctx, "list cells", http.MethodGet, path, nil, nil, &cells); err != nil {
		return nil, err
	}
	return cells, nil
}

func (c *Client) UpdateCell(ctx context.Context, boardID, cellID, value string) (model.Cell, error) {
	var cell model.Cell
	path := "/api/boards/" + url.PathEscape(boardID) + "/cells/" + url.PathEscape(cellID)
	body := map[string]string{"value": value}
	if err := c.do(ctx, "update cell", http.MethodPatch, path, nil, body, &cell); err != nil {
		return model.Cell{}, err
	}
	return cell, nil
}

func (c *Client) MarkCell(ctx context.Context, boardID, cellID string, marked bool) (model.Cell, error) {
	var cell model.Cell
	path := "/api/boards/" + url.PathEscape(boardID) + "/cells/" + url.PathEscape(cellID) + "/marked"
	body := map[string]bool{"marked": marked}
	if err := c.do(ctx, "mark cell", http.MethodPut, path, nil, body, &cell); err != nil {
		return model.Cell{}, err
	}
	return cell, nil
}

func (c *Client) CreateBoard(ctx context.Context, spec model.BoardSpec) (model.Board, error) {
	var b model.Board
	if err := c.do(ctx, "create board", http.MethodPost, "/api/boards", nil, spec, &b); err != nil {
		return model.Board{}, err
	}
	return b, nil
}

func (c *Client) CurrentUser(ctx context.Context) (*model.User, error) {
	var u model.User
	err := c.do(ctx, "current user", http.MethodGet, "/api/me", nil, nil, &u)
	if err != nil {
		var ue *UnauthorizedError
		if errors.As(err, &ue) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}
