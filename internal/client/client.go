// Package client implementa el lado consumidor del engine: un API client
// HTTP y el reconciler de polling que mantiene una réplica local del canvas.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dropDatabas3/inkboard/internal/board"
	dto "github.com/dropDatabas3/inkboard/internal/http/dto/board"
)

// Client habla con el API del board. Todas las operaciones llevan el UserID
// configurado como authorId.
type Client struct {
	BaseURL string
	UserID  string
	Token   string // opcional: se manda como Bearer
	HTTP    *http.Client
}

// NewClient crea un client con timeouts razonables.
func NewClient(baseURL, userID string) *Client {
	return &Client{
		BaseURL: baseURL,
		UserID:  userID,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return http.DefaultClient
}

func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, strings.TrimRight(c.BaseURL, "/")+path, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4*1024))
		return fmt.Errorf("client: %s %s: status=%d body=%s", method, path, resp.StatusCode, string(b))
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// Fetch trae el snapshot completo y marca presencia.
func (c *Client) Fetch(ctx context.Context) (dto.FetchResponse, error) {
	var out dto.FetchResponse
	path := "/api/board/fetch"
	if c.UserID != "" {
		path += "?userId=" + url.QueryEscape(c.UserID)
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return dto.FetchResponse{}, err
	}
	return out, nil
}

// Submit agrega un record al canvas.
func (c *Client) Submit(ctx context.Context, rec board.Record) error {
	return c.do(ctx, http.MethodPost, "/api/board/submit", dto.SubmitRequest{
		Drawing: &rec,
		UserID:  c.UserID,
	}, nil)
}

// MoveShape reposiciona un shape por id.
func (c *Client) MoveShape(ctx context.Context, shapeID string, x, y float64) error {
	return c.do(ctx, http.MethodPost, "/api/board/move", dto.MoveRequest{
		ShapeID: shapeID,
		X:       board.Float64Ptr(x),
		Y:       board.Float64Ptr(y),
		UserID:  c.UserID,
	}, nil)
}

// DeleteShape borra un shape por id.
func (c *Client) DeleteShape(ctx context.Context, shapeID string) error {
	return c.do(ctx, http.MethodPost, "/api/board/delete", dto.DeleteRequest{
		ShapeID: shapeID,
		UserID:  c.UserID,
	}, nil)
}

// ClearAll limpia el canvas completo.
func (c *Client) ClearAll(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/board/clear", dto.ClearRequest{UserID: c.UserID}, nil)
}
