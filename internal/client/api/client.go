package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"

	"github.com/iudanet/lifetracker/pkg/api"
)

// ErrNotFound возвращается, когда сервер ответил 404
var ErrNotFound = errors.New("not found")

// StatusError описывает не-2xx ответ сервера
type StatusError struct {
	Message string
	Body    string
	Code    int
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server error (%d): %s", e.Code, e.Message)
	}
	return fmt.Sprintf("request failed with status %d: %s", e.Code, e.Body)
}

// Unwrap позволяет проверять 404 через errors.Is(err, ErrNotFound)
func (e *StatusError) Unwrap() error {
	if e.Code == http.StatusNotFound {
		return ErrNotFound
	}
	return nil
}

// Temporary reports whether repeating the request may succeed.
func (e *StatusError) Temporary() bool {
	return e.Code >= http.StatusInternalServerError || e.Code == http.StatusTooManyRequests
}

const (
	requestTimeout = 30 * time.Second
	maxRedirects   = 10
	maxErrorBody   = 64 << 10
)

// Client ходит в REST API сервера и открывает websocket-подписки
type Client struct {
	httpClient *http.Client
	dialer     *websocket.Dialer
	baseURL    string
}

// NewClient создает клиент для сервера по baseURL
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:       requestTimeout,
			CheckRedirect: keepAuthorization,
		},
		dialer: &websocket.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: requestTimeout,
		},
	}
}

// keepAuthorization переносит Bearer-токен на редирект
func keepAuthorization(req *http.Request, via []*http.Request) error {
	if len(via) >= maxRedirects {
		return fmt.Errorf("stopped after %d redirects", maxRedirects)
	}
	if auth := via[0].Header.Get("Authorization"); auth != "" {
		req.Header.Set("Authorization", auth)
	}
	return nil
}

// Register регистрирует нового пользователя
func (c *Client) Register(ctx context.Context, req api.RegisterRequest) (*api.RegisterResponse, error) {
	var resp api.RegisterResponse
	err := c.doRequest(ctx, http.MethodPost, "/api/v1/auth/register", "", req, &resp)
	if err != nil {
		return nil, fmt.Errorf("register request failed: %w", err)
	}
	return &resp, nil
}

// GetSalt получает public_salt пользователя
func (c *Client) GetSalt(ctx context.Context, username string) (*api.SaltResponse, error) {
	var resp api.SaltResponse
	path := "/api/v1/auth/salt/" + url.PathEscape(username)
	err := c.doRequest(ctx, http.MethodGet, path, "", nil, &resp)
	if err != nil {
		return nil, fmt.Errorf("get salt request failed: %w", err)
	}
	return &resp, nil
}

// Login выполняет аутентификацию пользователя
func (c *Client) Login(ctx context.Context, req api.LoginRequest) (*api.TokenResponse, error) {
	var resp api.TokenResponse
	err := c.doRequest(ctx, http.MethodPost, "/api/v1/auth/login", "", req, &resp)
	if err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	return &resp, nil
}

// Refresh обменивает refresh token на новую пару токенов
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*api.TokenResponse, error) {
	var resp api.TokenResponse
	req := api.RefreshRequest{RefreshToken: refreshToken}
	err := c.doRequest(ctx, http.MethodPost, "/api/v1/auth/refresh", "", req, &resp)
	if err != nil {
		return nil, fmt.Errorf("refresh request failed: %w", err)
	}
	return &resp, nil
}

// Logout отзывает refresh token на сервере
func (c *Client) Logout(ctx context.Context, accessToken, refreshToken string) error {
	req := api.LogoutRequest{RefreshToken: refreshToken}
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/auth/logout", accessToken, req, nil); err != nil {
		return fmt.Errorf("logout request failed: %w", err)
	}
	return nil
}

// GetDocument читает документ пользователя. Если документа нет,
// возвращает ошибку, для которой errors.Is(err, ErrNotFound)
func (c *Client) GetDocument(ctx context.Context, accessToken, userID string) (*api.DocumentResponse, error) {
	var resp api.DocumentResponse
	if err := c.doRequest(ctx, http.MethodGet, documentPath(userID), accessToken, nil, &resp); err != nil {
		return nil, fmt.Errorf("get document request failed: %w", err)
	}
	return &resp, nil
}

// MergeDocument выполняет merge-запись в документ пользователя
func (c *Client) MergeDocument(ctx context.Context, accessToken, userID string, req api.MergeRequest) (*api.DocumentResponse, error) {
	var resp api.DocumentResponse
	if err := c.doRequest(ctx, http.MethodPatch, documentPath(userID), accessToken, req, &resp); err != nil {
		return nil, fmt.Errorf("merge document request failed: %w", err)
	}
	return &resp, nil
}

// Subscribe открывает websocket-подписку на изменения документа
func (c *Client) Subscribe(ctx context.Context, accessToken, userID string) (*Stream, error) {
	u, err := url.Parse(c.baseURL + documentPath(userID) + "/subscribe")
	if err != nil {
		return nil, fmt.Errorf("invalid server url: %w", err)
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}

	header := http.Header{}
	header.Set("Authorization", "Bearer "+accessToken)

	conn, resp, err := c.dialer.DialContext(ctx, u.String(), header)
	if err != nil {
		if resp != nil {
			defer func() {
				_ = resp.Body.Close()
			}()
			return nil, fmt.Errorf("subscribe failed: %w", statusError(resp))
		}
		return nil, fmt.Errorf("subscribe failed: %w", err)
	}
	return &Stream{conn: conn}, nil
}

// Stream - открытая подписка на документ
type Stream struct {
	conn     *websocket.Conn
	closeErr error
	once     sync.Once
}

// Next blocks until the next document event arrives.
func (s *Stream) Next() (*api.DocumentEvent, error) {
	_, data, err := s.conn.ReadMessage()
	if err != nil {
		return nil, fmt.Errorf("failed to read event: %w", err)
	}
	var ev api.DocumentEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, fmt.Errorf("failed to decode event: %w", err)
	}
	return &ev, nil
}

// Close закрывает подписку; блокирующий Next вернёт ошибку
func (s *Stream) Close() error {
	s.once.Do(func() {
		_ = s.conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second),
		)
		s.closeErr = s.conn.Close()
	})
	return s.closeErr
}

func documentPath(userID string) string {
	return "/api/v1/users/" + url.PathEscape(userID) + "/lifeTracker/state"
}

// doRequest отправляет body как JSON и декодирует 2xx-ответ в result.
// Не-2xx ответ возвращается как *StatusError.
func (c *Client) doRequest(ctx context.Context, method, path, accessToken string, body, result any) error {
	req, err := c.newRequest(ctx, method, path, accessToken, body)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError(resp)
	}
	if result == nil {
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path, accessToken string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.MarshalNoEscape(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}
	return req, nil
}

func statusError(resp *http.Response) *StatusError {
	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	statusErr := &StatusError{Code: resp.StatusCode, Body: string(respBody)}

	var errResp api.ErrorResponse
	if err := json.Unmarshal(respBody, &errResp); err == nil {
		statusErr.Message = errResp.Message
		if statusErr.Message == "" {
			statusErr.Message = errResp.Error
		}
	}
	return statusErr
}
