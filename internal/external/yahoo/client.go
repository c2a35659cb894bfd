package yahoo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/wonny/screener/internal/contracts"
	"github.com/wonny/screener/pkg/httputil"
	"github.com/wonny/screener/pkg/logger"
)

const (
	// DefaultBaseURL is the public Yahoo Finance query host
	DefaultBaseURL = "https://query1.finance.yahoo.com"

	screenerPath = "/v1/finance/screener"
)

// Client submits screening queries to the Yahoo Finance screener
// ⭐ SSOT: 스크리너 API 호출은 이 클라이언트에서만
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
	crumb      string
}

// NewClient creates a new screener client.
// httpClient should have retries disabled: a failed submission is terminal.
func NewClient(httpClient *httputil.Client, baseURL, crumb string, log *logger.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: httpClient,
		logger:     log,
		baseURL:    strings.TrimRight(baseURL, "/"),
		crumb:      crumb,
	}
}

// screenRequest is the POST body accepted by the screener endpoint
type screenRequest struct {
	Size       int       `json:"size"`
	Offset     int       `json:"offset"`
	SortField  string    `json:"sortField"`
	SortType   string    `json:"sortType"`
	QuoteType  string    `json:"quoteType"`
	Query      *WireNode `json:"query,omitempty"`
	UserID     string    `json:"userId"`
	UserIDType string    `json:"userIdType"`
}

type screenResponse struct {
	Finance struct {
		Result []struct {
			Count  int                      `json:"count"`
			Total  int                      `json:"total"`
			Quotes []map[string]interface{} `json:"quotes"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"finance"`
}

// Screen implements contracts.ScreeningBackend.
// Every failure is returned as *contracts.BackendExecutionError; an empty quote list is not an error.
func (c *Client) Screen(ctx context.Context, sub contracts.Submission) ([]contracts.Row, error) {
	body, err := buildRequest(sub)
	if err != nil {
		return nil, &contracts.BackendExecutionError{Err: err}
	}

	start := time.Now()
	resp, err := c.httpClient.PostJSON(ctx, c.endpoint(), body)
	if err != nil {
		return nil, &contracts.BackendExecutionError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &contracts.BackendExecutionError{StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &contracts.BackendExecutionError{StatusCode: resp.StatusCode, Err: errors.New(statusMessage(raw))}
	}

	rows, err := parseResponse(raw)
	if err != nil {
		return nil, &contracts.BackendExecutionError{StatusCode: resp.StatusCode, Err: err}
	}

	c.logger.WithFields(map[string]interface{}{
		"quote_type": sub.QuoteType,
		"sort_field": sub.SortField,
		"limit":      sub.Limit,
		"rows":       len(rows),
		"duration":   time.Since(start),
	}).Debug("Screener query completed")

	return rows, nil
}

func (c *Client) endpoint() string {
	endpoint := c.baseURL + screenerPath
	if c.crumb != "" {
		endpoint += "?" + url.Values{"crumb": {c.crumb}}.Encode()
	}
	return endpoint
}

func buildRequest(sub contracts.Submission) (*screenRequest, error) {
	query, err := Encode(sub.Query)
	if err != nil {
		return nil, fmt.Errorf("failed to encode query: %w", err)
	}

	sortType := "DESC"
	if sub.SortAscending {
		sortType = "ASC"
	}

	quoteType := sub.QuoteType
	if quoteType == "" {
		quoteType = contracts.QuoteTypeEquity
	}

	return &screenRequest{
		Size:       sub.Limit,
		Offset:     0,
		SortField:  sub.SortField,
		SortType:   sortType,
		QuoteType:  string(quoteType),
		Query:      query,
		UserID:     "",
		UserIDType: "guid",
	}, nil
}

func parseResponse(raw []byte) ([]contracts.Row, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var parsed screenResponse
	if err := dec.Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if e := parsed.Finance.Error; e != nil {
		return nil, fmt.Errorf("%s: %s", e.Code, e.Description)
	}
	if len(parsed.Finance.Result) == 0 {
		return []contracts.Row{}, nil
	}

	quotes := parsed.Finance.Result[0].Quotes
	rows := make([]contracts.Row, 0, len(quotes))
	for _, q := range quotes {
		rows = append(rows, contracts.Row(q))
	}
	return rows, nil
}

// statusMessage extracts the service's error description from a non-200 body
func statusMessage(raw []byte) string {
	var parsed screenResponse
	if err := json.Unmarshal(raw, &parsed); err == nil && parsed.Finance.Error != nil {
		return parsed.Finance.Error.Description
	}

	msg := strings.TrimSpace(string(raw))
	if len(msg) > 200 {
		msg = msg[:200]
	}
	if msg == "" {
		msg = "empty response"
	}
	return msg
}
