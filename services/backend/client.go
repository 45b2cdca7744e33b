package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"gymdesk/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Client talks to the gym backend's schedule, client and plan endpoints.
type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
	Logger  *zap.Logger
}

// NewClient builds a client. timeout bounds the whole HTTP exchange; zero means none.
func NewClient(baseURL, token string, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Token:   token,
		HTTP:    &http.Client{Timeout: timeout},
		Logger:  logger,
	}
}

// FetchSchedules returns every slot record.
func (c *Client) FetchSchedules(ctx context.Context) ([]models.SlotRecord, error) {
	var records []models.SlotRecord
	if err := c.do(ctx, http.MethodGet, "/schedules", nil, nil, &records, true); err != nil {
		return nil, err
	}
	return records, nil
}

// UpdateSlot sends the patch and returns the slot as the backend now has it.
func (c *Client) UpdateSlot(ctx context.Context, id string, patch models.SlotPatch) (*models.SlotRecord, error) {
	var rec models.SlotRecord
	if err := c.do(ctx, http.MethodPatch, "/schedules/"+url.PathEscape(id), nil, patch, &rec, true); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (c *Client) DeleteSlot(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/schedules/"+url.PathEscape(id), nil, nil, nil, false)
}

// AssignClients adds clients to a slot.
func (c *Client) AssignClients(ctx context.Context, slotID string, clientIDs []string) error {
	body := models.AssignClientsRequest{Clients: clientIDs}
	return c.do(ctx, http.MethodPatch, "/schedules/assignClient/"+url.PathEscape(slotID), nil, body, nil, false)
}

// UnassignClient removes one client from one slot.
func (c *Client) UnassignClient(ctx context.Context, slotID, clientID string) error {
	path := "/schedules/deleteClient/" + url.PathEscape(slotID) + "/" + url.PathEscape(clientID)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil, false)
}

// FetchClients loads the records for ids in a single request.
func (c *Client) FetchClients(ctx context.Context, ids []string) ([]models.ClientRecord, error) {
	var records []models.ClientRecord
	body := models.ClientListRequest{ClientIDs: ids}
	if err := c.do(ctx, http.MethodPost, "/clients/list", nil, body, &records, true); err != nil {
		return nil, err
	}
	return records, nil
}

// SearchAssignableClients runs the paginated assignable-clients query. The free
// text is sent as name, email and CI; the backend ORs them.
func (c *Client) SearchAssignableClients(ctx context.Context, q models.AssignableClientsQuery) (*models.AssignableClientsPage, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(q.Page))
	query.Set("limit", strconv.Itoa(q.PageSize))
	if text := strings.TrimSpace(q.FreeText); text != "" {
		query.Set("name", text)
		query.Set("email", text)
		query.Set("CI", text)
	}
	var page models.AssignableClientsPage
	if err := c.do(ctx, http.MethodGet, "/plans/assignableClients", query, nil, &page, false); err != nil {
		return nil, err
	}
	return &page, nil
}

// Ping reports whether the backend answers HTTP at all.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/", nil)
	if err != nil {
		return err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// do performs one JSON request. With unwrap set, a {"data": ...} envelope around
// the payload is accepted as well as the bare payload.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any, unwrap bool) error {
	target := c.BaseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s body: %w", method, path, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return &BackendError{Method: method, Path: path, Message: err.Error(), Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	requestID := uuid.New().String()
	req.Header.Set("X-Request-ID", requestID)

	started := time.Now()
	resp, err := c.HTTP.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.Logger.Warn("backend call failed", zap.String("method", method), zap.String("path", path),
			zap.String("requestID", requestID), zap.Error(err))
		return &BackendError{Method: method, Path: path, Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &BackendError{Method: method, Path: path, Status: resp.StatusCode, Message: err.Error(), Err: err}
	}
	c.Logger.Debug("backend call", zap.String("method", method), zap.String("path", path),
		zap.Int("status", resp.StatusCode), zap.Duration("took", time.Since(started)), zap.String("requestID", requestID))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &BackendError{Method: method, Path: path, Status: resp.StatusCode, Message: errorMessage(raw)}
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if unwrap {
		raw = unwrapData(raw)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &BackendError{Method: method, Path: path, Status: resp.StatusCode, Message: "malformed response: " + err.Error(), Err: err}
	}
	return nil
}

func unwrapData(raw []byte) []byte {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return raw
	}
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return raw
	}
	if data, ok := envelope["data"]; ok && len(data) > 0 {
		if _, hasID := envelope["id"]; !hasID {
			return data
		}
	}
	return raw
}
