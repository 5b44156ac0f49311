package drift

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"
	"path/filepath"

	"github.com/PaesslerAG/jsonpath"
	"github.com/smicfund/drift/date"
)

// Price acquisition is a collaborator boundary: the engines only see
// the resulting PriceTable. This file fetches adjusted closes from the
// EODHD API.

const eodhdAPIKeyEnv = "EODHD_API_KEY"

var eodhdAPIFlag = flag.String("eodhd-api-key", "", "EODHD API key for fetching prices.\nIf missing it is read from the environment variable "+eodhdAPIKeyEnv+". You can get one at https://eodhd.com/")

// EodhdAPIKey returns the API key from the flag or the environment.
func EodhdAPIKey() string {
	if *eodhdAPIFlag == "" {
		*eodhdAPIFlag = os.Getenv(eodhdAPIKeyEnv)
	}
	return *eodhdAPIFlag
}

// diskCache implements a simple disk cache for HTTP responses. The key
// includes today's date, so entries expire daily.
type diskCache struct {
	base http.RoundTripper
}

func (c *diskCache) RoundTrip(req *http.Request) (resp *http.Response, err error) {
	key := fmt.Sprintf("%s %s %s", date.Today(), req.Method, req.URL.String())
	key = fmt.Sprintf("%x", sha1.Sum([]byte(key)))

	cachedResp, err := c.get(key, req)
	if err == nil { // cache hit
		return cachedResp, nil
	}

	resp, err = c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	log.Printf("%v %v%v %v", resp.Request.Method, resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	if resp.StatusCode >= 300 {
		return resp, nil
	}
	if err := c.put(key, resp); err != nil {
		log.Printf("cache write err (ignored): %v", err)
	}
	return resp, nil
}

func (c *diskCache) get(key string, req *http.Request) (*http.Response, error) {
	content, err := os.ReadFile(filepath.Join(os.TempDir(), key))
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewBuffer(content)), req)
}

func (c *diskCache) put(key string, resp *http.Response) error {
	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}
	f, err := os.Create(filepath.Join(os.TempDir(), key))
	if err != nil {
		return err
	}
	_, err = f.Write(content)
	f.Close()
	return err
}

// daily returns a client caching responses until the end of the day.
func daily() *http.Client {
	client := new(http.Client)
	client.Transport = &diskCache{http.DefaultTransport}
	return client
}

// jwget performs an HTTP GET and unmarshals the JSON response into data.
func jwget(client *http.Client, addr string, data interface{}) error {
	resp, err := client.Get(addr)
	if err != nil {
		return err
	}
	if resp.StatusCode != 200 {
		return fmt.Errorf("cannot http GET %v%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	_, err = io.Copy(&buf, resp.Body)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return json.Unmarshal(buf.Bytes(), data)
}

// FetchDailyPrices downloads the adjusted close history of a ticker
// from 'from' onward and merges it into the table. The price window
// should start some days before the first transaction so the nearest
// trading day resolution has room on both sides.
func FetchDailyPrices(table *PriceTable, apiKey, ticker string, from date.Date) error {
	addr := fmt.Sprintf("https://eodhd.com/api/eod/%s?from=%s&period=d&fmt=json&api_token=%s",
		url.PathEscape(ticker), from, url.QueryEscape(apiKey))

	// the payload is a list of daily bars
	type bar struct {
		Date          date.Date `json:"date"`
		AdjustedClose float64   `json:"adjusted_close"`
	}
	var bars []bar
	if err := jwget(daily(), addr, &bars); err != nil {
		return fmt.Errorf("cannot fetch prices for %q: %w", ticker, err)
	}
	for _, b := range bars {
		table.Add(ticker, b.Date, b.AdjustedClose)
	}
	return nil
}

// FetchLatestQuote returns the most recent close for a ticker from the
// real-time endpoint, falling back to the previous close while the
// market has not printed one yet.
func FetchLatestQuote(apiKey, ticker string) (float64, error) {
	addr := fmt.Sprintf("https://eodhd.com/api/real-time/%s?fmt=json&api_token=%s",
		url.PathEscape(ticker), url.QueryEscape(apiKey))

	var jobj any
	if err := jwget(new(http.Client), addr, &jobj); err != nil {
		return math.NaN(), fmt.Errorf("cannot fetch quote for %q: %w", ticker, err)
	}
	for _, path := range []string{"$.close", "$.previousClose"} {
		jval, err := jsonpath.Get(path, jobj)
		if err != nil {
			continue
		}
		// jsonpath is never clear about whether it returns a list of
		// one answer or a single answer; keep the first one if any.
		if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
			jval = jlist[0]
		}
		if val, ok := jval.(float64); ok && val > 0 {
			return val, nil
		}
	}
	return math.NaN(), fmt.Errorf("no usable quote for %q", ticker)
}

// FetchUniverse downloads daily prices for every ticker the analysis
// needs: ledger tickers, registry fund tickers and the benchmark.
// Tickers the provider does not know are logged and excluded, they do
// not block the rest of the fetch.
func FetchUniverse(table *PriceTable, apiKey string, ledger *Ledger, registry *Registry, benchmark string) error {
	from := ledger.StartDate().Add(-10)

	universe := ledger.Tickers()
	for _, t := range registry.FundTickers() {
		universe = appendUnique(universe, t)
	}
	universe = appendUnique(universe, benchmark)

	var fetched int
	for _, ticker := range universe {
		if err := FetchDailyPrices(table, apiKey, ticker, from); err != nil {
			log.Printf("warning: %v", err)
			continue
		}
		fetched++
	}
	if fetched == 0 {
		return fmt.Errorf("no price data downloaded for any of %d tickers", len(universe))
	}
	return nil
}

func appendUnique(list []string, s string) []string {
	for _, v := range list {
		if v == s {
			return list
		}
	}
	return append(list, s)
}
