package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/fieldops/pulse/pkg/models/domain"
	"github.com/fieldops/pulse/pkg/services/config"
	"github.com/rs/zerolog"
)

const defaultPageSize = 500

// exportPaths maps each source to its tenant-relative export endpoint.
var exportPaths = map[domain.Source]string{
	domain.SourceCalls:         "telecom/v2/tenant/%s/calls",
	domain.SourceJobsCreated:   "jpm/v2/tenant/%s/jobs",
	domain.SourceJobsCompleted: "jpm/v2/tenant/%s/jobs",
	domain.SourceBookings:      "crm/v2/tenant/%s/bookings",
	domain.SourcePayments:      "accounting/v2/tenant/%s/payments",
	domain.SourceSoldEstimates: "sales/v2/tenant/%s/estimates",
}

type fieldServiceClient struct {
	baseURL string
	profile config.Profile
	http    *http.Client

	// tokenMu guards the cached token; report generation fetches all
	// selected sources concurrently through one shared client.
	tokenMu     sync.Mutex
	token       string
	tokenExpiry time.Time
}

// NewFieldServiceClient builds a RecordsClient for one tenant profile.
// Token acquisition is lazy and cached until expiry.
func NewFieldServiceClient(baseURL string, profile config.Profile) RecordsClient {
	return &fieldServiceClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		profile: profile,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *fieldServiceClient) FetchRecords(ctx context.Context, source domain.Source, window domain.TimeWindow) ([]domain.RawRecord, error) {
	path, ok := exportPaths[source]
	if !ok {
		return nil, fmt.Errorf("no export endpoint for source %q", source)
	}

	params := url.Values{}
	switch source {
	case domain.SourceJobsCompleted:
		params.Set("completedOnOrAfter", window.Start.UTC().Format(time.RFC3339))
		params.Set("completedBefore", window.End.UTC().Format(time.RFC3339))
		params.Set("jobStatus", "Completed")
	case domain.SourceSoldEstimates:
		params.Set("soldAfter", window.Start.UTC().Format(time.RFC3339))
		params.Set("soldBefore", window.End.UTC().Format(time.RFC3339))
	default:
		params.Set("createdOnOrAfter", window.Start.UTC().Format(time.RFC3339))
		params.Set("createdBefore", window.End.UTC().Format(time.RFC3339))
	}

	endpoint := fmt.Sprintf("%s/%s", c.baseURL, fmt.Sprintf(path, c.profile.TenantID))
	return c.fetchAllPages(ctx, endpoint, params)
}

func (c *fieldServiceClient) FetchJobTypes(ctx context.Context) ([]domain.JobType, error) {
	endpoint := fmt.Sprintf("%s/jpm/v2/tenant/%s/job-types", c.baseURL, c.profile.TenantID)
	records, err := c.fetchAllPages(ctx, endpoint, url.Values{})
	if err != nil {
		return nil, err
	}

	jobTypes := make([]domain.JobType, 0, len(records))
	for _, rec := range records {
		id, _ := rec["id"].(float64)
		threshold, _ := rec["soldThreshold"].(float64)
		jobTypes = append(jobTypes, domain.JobType{ID: int64(id), SoldThreshold: threshold})
	}
	return jobTypes, nil
}

type exportPage struct {
	Data    []domain.RawRecord `json:"data"`
	HasMore bool               `json:"hasMore"`
}

func (c *fieldServiceClient) fetchAllPages(ctx context.Context, endpoint string, params url.Values) ([]domain.RawRecord, error) {
	logger := zerolog.Ctx(ctx)

	var records []domain.RawRecord
	params.Set("pageSize", strconv.Itoa(defaultPageSize))
	for page := 1; ; page++ {
		params.Set("page", strconv.Itoa(page))
		body, err := c.get(ctx, endpoint+"?"+params.Encode())
		if err != nil {
			return nil, err
		}

		var result exportPage
		if err := json.Unmarshal(body, &result); err != nil {
			return nil, fmt.Errorf("decode export page: %w", err)
		}
		records = append(records, result.Data...)
		if !result.HasMore {
			break
		}
	}

	logger.Debug().Str("endpoint", endpoint).Int("records", len(records)).Msg("export fetched")
	return records, nil
}

func (c *fieldServiceClient) get(ctx context.Context, rawURL string) ([]byte, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("ST-App-Key", c.profile.AppKey)
	req.Header.Set("Authorization", token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("upstream returned %s for %s", resp.Status, rawURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read upstream response: %w", err)
	}
	return body, nil
}

// accessToken exchanges the tenant's client credentials for a bearer
// token, cached until shortly before expiry.
func (c *fieldServiceClient) accessToken(ctx context.Context) (string, error) {
	c.tokenMu.Lock()
	defer c.tokenMu.Unlock()

	if c.token != "" && time.Now().Before(c.tokenExpiry) {
		return c.token, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.profile.ClientID)
	form.Set("client_secret", c.profile.ClientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/connect/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token endpoint returned %s", resp.Status)
	}

	var payload struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}

	c.token = payload.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(payload.ExpiresIn-60) * time.Second)
	return c.token, nil
}
