package fx

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// RatesClient pulls a USD-base rate feed published as XML:
//
//	<rates asOf="2026-08-31">
//	  <rate code="EUR" perUsd="0.92"/>
//	  ...
//	</rates>
//
// The feed is an external oracle; when it is unreachable the static
// table simply keeps its last known rates.
type RatesClient struct {
	url    string
	client *http.Client
	log    *logrus.Logger
}

func NewRatesClient(url string, log *logrus.Logger) *RatesClient {
	return &RatesClient{
		url: url,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

// Fetch downloads and parses the feed.
func (c *RatesClient) Fetch() (map[string]decimal.Decimal, error) {
	resp, err := c.client.Get(c.url)
	if err != nil {
		return nil, fmt.Errorf("rates request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read rates response: %w", err)
	}
	return ParseRatesXML(body)
}

// ParseRatesXML extracts the per-USD rates from a feed document.
func ParseRatesXML(raw []byte) (map[string]decimal.Decimal, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(raw); err != nil {
		return nil, fmt.Errorf("failed to parse rates XML: %w", err)
	}

	elements := doc.FindElements("//rates/rate")
	if len(elements) == 0 {
		return nil, fmt.Errorf("no rate entries found in feed")
	}

	rates := make(map[string]decimal.Decimal, len(elements))
	for _, el := range elements {
		code := el.SelectAttrValue("code", "")
		perUsd := el.SelectAttrValue("perUsd", "")
		if code == "" || perUsd == "" {
			continue
		}
		rate, err := decimal.NewFromString(perUsd)
		if err != nil || !rate.IsPositive() {
			continue
		}
		rates[code] = rate
	}
	if len(rates) == 0 {
		return nil, fmt.Errorf("no usable rate entries in feed")
	}
	return rates, nil
}

// Refresh fetches the feed and merges it into the table. Existing
// currencies absent from the feed keep their previous rates.
func (c *RatesClient) Refresh(table *StaticTable) error {
	rates, err := c.Fetch()
	if err != nil {
		return err
	}
	for code, rate := range rates {
		table.SetRate(code, rate)
	}
	if c.log != nil {
		c.log.Infof("Refreshed %d currency rates from %s", len(rates), c.url)
	}
	return nil
}
