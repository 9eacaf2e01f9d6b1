package directory

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"doctor-directory/internal/converter"
	"doctor-directory/internal/delivery/dto"
	"doctor-directory/internal/domain/entity"

	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
)

// Client fetches the full doctor directory. Implementations never fail: any
// problem is logged and reported as an empty directory.
type Client interface {
	FetchDoctors(ctx context.Context) []entity.Doctor
}

type HTTPClient struct {
	sourceURL  string
	httpClient *http.Client
	log        *logrus.Logger
}

// NewHTTPClient builds a client for sourceURL. A nil httpClient means
// http.DefaultClient; no timeout or retry is layered on top.
func NewHTTPClient(sourceURL string, httpClient *http.Client, log *logrus.Logger) *HTTPClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HTTPClient{
		sourceURL:  sourceURL,
		httpClient: httpClient,
		log:        log,
	}
}

// FetchDoctors issues a single GET and returns the normalized directory, or an
// empty slice on any failure.
func (c *HTTPClient) FetchDoctors(ctx context.Context) []entity.Doctor {
	sources, err := c.fetch(ctx)
	if err != nil {
		c.log.WithField("source", c.sourceURL).Errorf("Could not fetch doctors: %+v", err)
		return []entity.Doctor{}
	}

	doctors := converter.SourceDoctorsToEntities(sources)
	c.log.WithField("source", c.sourceURL).Infof("Fetched %d doctors", len(doctors))
	return doctors
}

func (c *HTTPClient) fetch(ctx context.Context) ([]dto.SourceDoctor, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.sourceURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request directory: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("HTTP error! status: %d", resp.StatusCode)
	}

	var sources []dto.SourceDoctor
	if err := json.NewDecoder(resp.Body).Decode(&sources); err != nil {
		return nil, fmt.Errorf("decode directory: %w", err)
	}
	return sources, nil
}
