package rentclient

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// SharerHeader carries the acting user id to the backend.
const SharerHeader = "X-Sharer-User-Id"

// Client calls the marketplace backend over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Response is the backend reply passed through verbatim, body and status
// alike, so the gateway never re-shapes what the backend said.
type Response struct {
	Status int
	Body   []byte
}

// NewClient constructs a backend client.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) do(method, path string, userID int64, query url.Values, body any) (Response, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return Response{}, err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, target, reader)
	if err != nil {
		return Response{}, err
	}
	if userID != 0 {
		req.Header.Set(SharerHeader, strconv.FormatInt(userID, 10))
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Response{}, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<22))
	if err != nil {
		return Response{}, err
	}
	return Response{Status: resp.StatusCode, Body: data}, nil
}

func pageQuery(from, size int) url.Values {
	q := url.Values{}
	q.Set("from", strconv.Itoa(from))
	q.Set("size", strconv.Itoa(size))
	return q
}
