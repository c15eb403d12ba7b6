package reader // import "github.com/openleaf/openleaf/reader"

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/openleaf/openleaf/model"
)

// Client talks to an openleaf server over its HTTP API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// APIError represents a server error response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// NewClient constructs an API client.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Login authenticates and keeps the returned access token for the
// following calls.
func (c *Client) Login(username, password string) (*model.User, error) {
	payload, err := json.Marshal(model.UserLoginRequest{Username: username, Password: password})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/api/v1/auth/login", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, c.decodeError(resp)
	}

	for _, cookie := range resp.Cookies() {
		if strings.HasSuffix(cookie.Name, "access-token") {
			c.token = cookie.Value
		}
	}

	var user model.User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetBook returns one catalog entry.
func (c *Client) GetBook(id int) (*model.BookListItem, error) {
	req, err := http.NewRequest(http.MethodGet, fmt.Sprintf("%s/api/v1/books/%d", c.baseURL, id), nil)
	if err != nil {
		return nil, err
	}

	var book model.BookListItem
	if err := c.do(req, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

// GetProgress returns the stored reading position for a book.
func (c *Client) GetProgress(bookID int) (*model.ReadingProgress, error) {
	req, err := http.NewRequest(http.MethodGet, fmt.Sprintf("%s/api/v1/progress/%d", c.baseURL, bookID), nil)
	if err != nil {
		return nil, err
	}

	var progress model.ReadingProgress
	if err := c.do(req, &progress); err != nil {
		return nil, err
	}
	return &progress, nil
}

// SaveProgress writes the reading position for a book.
func (c *Client) SaveProgress(bookID, currentPage, totalPages int) error {
	payload, err := json.Marshal(map[string]int{
		"bookId":      bookID,
		"currentPage": currentPage,
		"totalPages":  totalPages,
	})
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/api/v1/progress", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, nil)
}

func (c *Client) do(req *http.Request, out any) error {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return c.decodeError(resp)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) decodeError(resp *http.Response) error {
	var errResp struct {
		ErrorMessage string `json:"error_message"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&errResp)
	msg := errResp.ErrorMessage
	if msg == "" {
		msg = resp.Status
	}
	return &APIError{Status: resp.StatusCode, Message: msg}
}

// RemoteProgressSink persists positions through the HTTP API.
type RemoteProgressSink struct {
	client *Client
	bookID int
}

func NewRemoteProgressSink(client *Client, bookID int) *RemoteProgressSink {
	return &RemoteProgressSink{client: client, bookID: bookID}
}

func (s *RemoteProgressSink) Save(currentPage, totalPages int) error {
	return s.client.SaveProgress(s.bookID, currentPage, totalPages)
}
