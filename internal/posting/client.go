package posting

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"heron-feed/internal/models"
	"heron-feed/internal/utils"
)

// Client is the HTTP implementation of Service.
type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

var _ Service = (*Client)(nil)

// NewClient builds a client for the posting service at baseURL. The session
// token is sent as a bearer credential on every request.
func NewClient(baseURL, token string) *Client {
	return &Client{
		BaseURL:    baseURL,
		Token:      token,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) Like(ctx context.Context, postID string) error {
	return c.do(ctx, http.MethodPost, "/post/"+url.PathEscape(postID)+"/like", nil, nil)
}

func (c *Client) Unlike(ctx context.Context, postID string) error {
	return c.do(ctx, http.MethodDelete, "/post/"+url.PathEscape(postID)+"/like", nil, nil)
}

func (c *Client) Comment(ctx context.Context, postID string, body string) (*models.Comment, error) {
	req := struct {
		PostID string `json:"postId"`
		Body   string `json:"body"`
	}{PostID: postID, Body: body}

	var comment models.Comment
	if err := c.do(ctx, http.MethodPost, "/post/"+url.PathEscape(postID)+"/comment", req, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

func (c *Client) DeletePost(ctx context.Context, postID string) error {
	return c.do(ctx, http.MethodDelete, "/post/"+url.PathEscape(postID), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return utils.NewAppError(utils.ErrInvalidInput, "failed to encode request", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return utils.NewAppError(utils.ErrUpstream, "failed to build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return utils.NewAppError(utils.ErrUpstream, "posting service unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return utils.NewAppError(utils.ErrUpstream,
			fmt.Sprintf("posting service returned %d: %s", resp.StatusCode, string(detail)), nil)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return utils.NewAppError(utils.ErrUpstream, "failed to decode response", err)
		}
	}
	return nil
}
