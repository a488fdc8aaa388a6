// Package booking ведёт запросы записи и отмены и сверяет подтверждённое
// сервером количество мест с каталогом.
package booking

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

const (
	createPath = "/api/bookings/create"
	cancelPath = "/api/bookings/cancel"
)

// CreateResult ответ на успешную запись
type CreateResult struct {
	Spots *int // nil, если сервер не прислал количество мест
}

// API операции сервиса записей, которые использует виджет
type API interface {
	Create(ctx context.Context, classID string) (CreateResult, error)
	Cancel(ctx context.Context, bookingID string) error
}

// Client HTTP-клиент сервиса записей
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient создаёт клиента. Таймаут клиента не задаётся: запрос, однажды
// отправленный, доводится до конца.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

type createRequest struct {
	ClassID string `json:"classId"`
}

type cancelRequest struct {
	BookingID string `json:"bookingId"`
}

type apiResponse struct {
	Spots *int   `json:"spots"`
	Error string `json:"error"`
}

// Create записывает посетителя на занятие
func (c *Client) Create(ctx context.Context, classID string) (CreateResult, error) {
	var resp apiResponse
	if err := c.post(ctx, createPath, createRequest{ClassID: classID}, &resp); err != nil {
		return CreateResult{}, err
	}
	return CreateResult{Spots: resp.Spots}, nil
}

// Cancel отменяет запись
func (c *Client) Cancel(ctx context.Context, bookingID string) error {
	var resp apiResponse
	return c.post(ctx, cancelPath, cancelRequest{BookingID: bookingID}, &resp)
}

func (c *Client) post(ctx context.Context, path string, payload any, out *apiResponse) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read body: %w", ErrTransport, err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		raw = []byte("{}")
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: decode status %d body: %w", ErrTransport, resp.StatusCode, err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	default:
		return &RejectedError{Status: resp.StatusCode, Message: out.Error}
	}
}

// IsRejected сообщает, отклонил ли сервер запрос
func IsRejected(err error) bool {
	var rejected *RejectedError
	return errors.As(err, &rejected)
}
