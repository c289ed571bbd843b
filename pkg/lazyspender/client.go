package lazyspender

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// ClientConfig represents the configuration for the LazySpender API client.
type ClientConfig struct {
	APIURL  string
	Owner   string        // Owner scoping transaction and trend queries
	Timeout time.Duration // Default: 30 seconds
}

// Client is a LazySpender API client.
type Client struct {
	httpClient *http.Client
	baseURL    string
	owner      string
}

// NewClient creates a new LazySpender API client.
func NewClient(config ClientConfig) *Client {
	timeout := config.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: config.APIURL,
		owner:   config.Owner,
	}
}

// APIError is a non-2xx response from the LazySpender API.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("lazyspender API error (status %d): %s - %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("lazyspender API error (status %d): %s", e.StatusCode, e.Code)
}

// IsValidation reports whether the error was a 4xx rejection of the request.
func (e *APIError) IsValidation() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

// ListTransactions fetches one page of transactions, most recent first.
func (c *Client) ListTransactions(page, size int) (*Page[Transaction], error) {
	query := url.Values{}
	query.Set("owner", c.owner)
	query.Set("page", strconv.Itoa(page))
	query.Set("size", strconv.Itoa(size))

	var result Page[Transaction]
	if err := c.doJSON(http.MethodGet, "/api/transactions?"+query.Encode(), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// FetchAllTransactions fetches every transaction with forward pagination.
func (c *Client) FetchAllTransactions(pageSize int) ([]Transaction, error) {
	if pageSize <= 0 {
		pageSize = 100
	}

	var all []Transaction
	for page := 0; ; page++ {
		resp, err := c.ListTransactions(page, pageSize)
		if err != nil {
			return nil, fmt.Errorf("failed to list transactions (page=%d): %w", page, err)
		}

		all = append(all, resp.Content...)

		if !resp.HasNext {
			break
		}
	}

	return all, nil
}

// GetTransaction fetches a single transaction by ID.
func (c *Client) GetTransaction(id string) (*Transaction, error) {
	var result Transaction
	if err := c.doJSON(http.MethodGet, "/api/transactions/"+url.PathEscape(id), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateTransaction creates a new transaction and returns the stored record.
func (c *Client) CreateTransaction(req CreateTransactionRequest) (*Transaction, error) {
	var result Transaction
	if err := c.doJSON(http.MethodPost, "/api/transactions", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateTransaction replaces the transaction with the given ID.
func (c *Client) UpdateTransaction(id string, req CreateTransactionRequest) (*Transaction, error) {
	var result Transaction
	if err := c.doJSON(http.MethodPut, "/api/transactions/"+url.PathEscape(id), req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteTransaction deletes the transaction with the given ID.
func (c *Client) DeleteTransaction(id string) error {
	return c.doJSON(http.MethodDelete, "/api/transactions/"+url.PathEscape(id), nil, nil)
}

// DistinctNotes fetches the distinct note texts an owner has used,
// for autocomplete suggestions.
func (c *Client) DistinctNotes(owner string) ([]string, error) {
	query := url.Values{}
	query.Set("owner", owner)

	var result []string
	if err := c.doJSON(http.MethodGet, "/api/transactions/notes?"+query.Encode(), nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// BalanceTrend fetches the balance trend for an owner's accounts over a period.
func (c *Client) BalanceTrend(params BalanceTrendParams) (*BalanceTrendResponse, error) {
	query := url.Values{}
	query.Set("owner", params.Owner)
	for _, account := range params.Accounts {
		query.Add("accounts", account)
	}
	query.Set("period", string(params.Period))

	var result BalanceTrendResponse
	if err := c.doJSON(http.MethodGet, "/api/balance-trend?"+query.Encode(), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListPlannedPayments lists an owner's planned payments, optionally
// filtered by status. Pass an empty status for all.
func (c *Client) ListPlannedPayments(owner string, status PaymentStatus) ([]PlannedPayment, error) {
	query := url.Values{}
	query.Set("owner", owner)
	if status != "" {
		query.Set("status", string(status))
	}

	var result []PlannedPayment
	if err := c.doJSON(http.MethodGet, "/api/planned-payments?"+query.Encode(), nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// GetPlannedPayment fetches a planned payment by ID.
func (c *Client) GetPlannedPayment(id string) (*PlannedPayment, error) {
	var result PlannedPayment
	if err := c.doJSON(http.MethodGet, "/api/planned-payments/"+url.PathEscape(id), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreatePlannedPayment creates a new planned payment.
func (c *Client) CreatePlannedPayment(req PlannedPaymentRequest) (*PlannedPayment, error) {
	var result PlannedPayment
	if err := c.doJSON(http.MethodPost, "/api/planned-payments", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdatePlannedPayment replaces the planned payment with the given ID.
func (c *Client) UpdatePlannedPayment(id string, req PlannedPaymentRequest) (*PlannedPayment, error) {
	var result PlannedPayment
	if err := c.doJSON(http.MethodPut, "/api/planned-payments/"+url.PathEscape(id), req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeletePlannedPayment deletes the planned payment with the given ID.
func (c *Client) DeletePlannedPayment(id string) error {
	return c.doJSON(http.MethodDelete, "/api/planned-payments/"+url.PathEscape(id), nil, nil)
}

// ConfirmPlannedPayment posts the next due occurrence of a planned payment
// as a transaction and returns it.
func (c *Client) ConfirmPlannedPayment(id string) (*Transaction, error) {
	var result Transaction
	if err := c.doJSON(http.MethodPost, "/api/planned-payments/"+url.PathEscape(id)+"/confirm", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateUser creates a new user.
func (c *Client) CreateUser(req UserRequest) (*User, error) {
	var result User
	if err := c.doJSON(http.MethodPost, "/api/users", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetUserByOwner fetches the user record for an owner name.
func (c *Client) GetUserByOwner(owner string) (*User, error) {
	var result User
	if err := c.doJSON(http.MethodGet, "/api/users/owner/"+url.PathEscape(owner), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListUsers fetches all users.
func (c *Client) ListUsers() ([]User, error) {
	var result []User
	if err := c.doJSON(http.MethodGet, "/api/users", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// doJSON performs a request against the API. A nil body sends no payload;
// a nil result discards the response body.
func (c *Client) doJSON(method, path string, body, result any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.parseError(resp)
	}

	if result == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// parseError parses an error response from the LazySpender API.
func (c *Client) parseError(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{StatusCode: resp.StatusCode, Code: "unreadable_response"}
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err != nil || errResp.Error == "" {
		return &APIError{StatusCode: resp.StatusCode, Code: "unexpected_response", Message: string(body)}
	}

	return &APIError{StatusCode: resp.StatusCode, Code: errResp.Error, Message: errResp.Message}
}
