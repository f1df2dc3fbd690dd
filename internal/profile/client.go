package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"doctorat/pkg/platform/sentinel"
)

const defaultTimeout = 2 * time.Second

// HTTPDirectory reads profiles from the directory service at
// GET {baseURL}/profiles/{id}.
type HTTPDirectory struct {
	baseURL    string
	httpClient *http.Client
}

func NewHTTPDirectory(baseURL string, timeout time.Duration) *HTTPDirectory {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &HTTPDirectory{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Fetch returns sentinel.ErrNotFound for unknown ids and
// sentinel.ErrUnavailable for transport failures and 5xx responses.
func (d *HTTPDirectory) Fetch(ctx context.Context, profileID uuid.UUID) (Profile, error) {
	endpoint := d.baseURL + "/profiles/" + url.PathEscape(profileID.String())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Profile{}, fmt.Errorf("build profile request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return Profile{}, fmt.Errorf("%w: %v", sentinel.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return Profile{}, sentinel.ErrNotFound
	case resp.StatusCode >= 500:
		return Profile{}, fmt.Errorf("%w: directory returned %d", sentinel.ErrUnavailable, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return Profile{}, fmt.Errorf("directory returned %d", resp.StatusCode)
	}

	var p Profile
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return Profile{}, fmt.Errorf("decode profile: %w", err)
	}
	if p.ID == uuid.Nil {
		p.ID = profileID
	}
	p.Placeholder = false
	return p, nil
}
