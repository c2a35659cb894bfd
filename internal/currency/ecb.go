package currency

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/wonny/screener/pkg/httputil"
	"github.com/wonny/screener/pkg/logger"
)

// Source labels
const (
	SourceECB      = "ecb"
	SourceCache    = "cache"
	SourceEmbedded = "embedded"
)

//go:embed eurofxref.xml
var embeddedRates []byte

// ecbEnvelope mirrors the ECB daily reference-rate document
type ecbEnvelope struct {
	XMLName xml.Name `xml:"Envelope"`
	Cube    struct {
		Days []struct {
			Time  string `xml:"time,attr"`
			Rates []struct {
				Currency string `xml:"currency,attr"`
				Rate     string `xml:"rate,attr"`
			} `xml:"Cube"`
		} `xml:"Cube"`
	} `xml:"Cube"`
}

// ParseECB decodes an ECB eurofxref document. Only the most recent day is used.
func ParseECB(r io.Reader, source string) (*RateTable, error) {
	var env ecbEnvelope
	if err := xml.NewDecoder(r).Decode(&env); err != nil {
		return nil, fmt.Errorf("failed to decode reference rates: %w", err)
	}
	if len(env.Cube.Days) == 0 {
		return nil, fmt.Errorf("reference rates document has no rate day")
	}

	day := env.Cube.Days[0]
	rates := make(map[string]float64, len(day.Rates))
	for _, r := range day.Rates {
		v, err := strconv.ParseFloat(strings.TrimSpace(r.Rate), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid rate for %s: %w", r.Currency, err)
		}
		rates[r.Currency] = v
	}

	return NewRateTable(day.Time, source, rates)
}

// Embedded returns the rate snapshot compiled into the binary
func Embedded() (*RateTable, error) {
	return ParseECB(bytes.NewReader(embeddedRates), SourceEmbedded)
}

// ECBSource fetches the daily reference rates from the ECB
type ECBSource struct {
	client *httputil.Client
	url    string
	logger *logger.Logger
}

// NewECBSource creates a new ECB rate source
func NewECBSource(client *httputil.Client, url string, log *logger.Logger) *ECBSource {
	return &ECBSource{
		client: client,
		url:    url,
		logger: log,
	}
}

// Fetch downloads and parses the current reference rates
func (s *ECBSource) Fetch(ctx context.Context) (*RateTable, error) {
	resp, err := s.client.Get(ctx, s.url)
	if err != nil {
		return nil, fmt.Errorf("fetch reference rates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch reference rates: status %d", resp.StatusCode)
	}

	table, err := ParseECB(resp.Body, SourceECB)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"date":       table.Date(),
		"currencies": len(table.Currencies()),
	}).Info("Reference rates fetched")

	return table, nil
}
