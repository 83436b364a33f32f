package infra

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/wewg24/rlc-bingo-manager-v2/internal/catalog"
)

// ProgramClient talks to the external program service, which owns the
// per-session game programs and the pull-tab deal library. Lookups are
// best-effort: callers fall back to the embedded catalog when the service is
// down, so a dead sidecar never blocks occasion entry.
type ProgramClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewProgramClient(baseURL string) *ProgramClient {
	return &ProgramClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Program fetches the ordered game list for a session-type code.
func (c *ProgramClient) Program(ctx context.Context, sessionType string) ([]catalog.SessionGame, error) {
	var games []catalog.SessionGame
	path := "/programs/" + url.PathEscape(sessionType)
	if err := c.getJSON(ctx, path, &games); err != nil {
		return nil, err
	}
	return games, nil
}

// PullTabDeal looks up one deal from the pull-tab library by identifier.
func (c *ProgramClient) PullTabDeal(ctx context.Context, identifier string) (*catalog.PullTabDeal, error) {
	var deal catalog.PullTabDeal
	path := "/pulltabs/" + url.PathEscape(identifier)
	if err := c.getJSON(ctx, path, &deal); err != nil {
		return nil, err
	}
	return &deal, nil
}

func (c *ProgramClient) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("programs: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("programs: service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrProgramNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("programs: service returned %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("programs: decode response: %w", err)
	}
	return nil
}

// ErrProgramNotFound marks an identifier the library does not carry; callers
// treat it as "use the manual/custom path", not as a service failure.
var ErrProgramNotFound = fmt.Errorf("programs: not found")
