package statsclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dchirkov/eventum/dto"
	"github.com/dchirkov/eventum/utils"
)

// Client talks to the stats service. Recording is fire-and-forget and
// queries degrade to an empty result on any failure, so a stats outage
// never breaks the main service.
type Client struct {
	baseURL string
	app     string
	http    *http.Client
}

// New creates a stats client for the given service base URL, tagging every
// recorded hit with the app name.
func New(baseURL, app string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		app:     app,
		http:    &http.Client{Timeout: 3 * time.Second},
	}
}

// SaveHit records a hit asynchronously. Failures are logged and swallowed.
func (c *Client) SaveHit(uri, ip string) {
	hit := dto.EndpointHit{App: c.app, URI: uri, IP: ip}
	go func() {
		body, err := json.Marshal(hit)
		if err != nil {
			utils.Sugar.Warnf("stats client: marshal hit: %v", err)
			return
		}
		resp, err := c.http.Post(c.baseURL+"/hit", "application/json", bytes.NewReader(body))
		if err != nil {
			utils.Sugar.Warnf("stats client: save hit %s: %v", uri, err)
			return
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusCreated {
			utils.Sugar.Warnf("stats client: save hit %s: unexpected status %d", uri, resp.StatusCode)
		}
	}()
}

// GetStats fetches aggregated view counts for the given uris and time range.
// Any failure returns an empty slice; callers fall back to zero views.
func (c *Client) GetStats(start, end time.Time, uris []string, unique bool) []dto.ViewStats {
	params := url.Values{}
	params.Set("start", dto.FormatDateTime(start))
	params.Set("end", dto.FormatDateTime(end))
	if len(uris) > 0 {
		params.Set("uris", strings.Join(uris, ","))
	}
	params.Set("unique", fmt.Sprintf("%t", unique))

	resp, err := c.http.Get(c.baseURL + "/stats?" + params.Encode())
	if err != nil {
		utils.Sugar.Warnf("stats client: get stats: %v", err)
		return []dto.ViewStats{}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		utils.Sugar.Warnf("stats client: get stats: unexpected status %d", resp.StatusCode)
		return []dto.ViewStats{}
	}

	var stats []dto.ViewStats
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		utils.Sugar.Warnf("stats client: decode stats: %v", err)
		return []dto.ViewStats{}
	}
	return stats
}
