package unsplash

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"
)

const initialBackoff = 500 * time.Millisecond

// Image is one representative photo with attribution.
type Image struct {
	URL              string `json:"unsplash_image_url"`
	PhotographerName string `json:"unsplash_photographer_name"`
	PhotographerURL  string `json:"unsplash_photographer_url"`
}

type searchResponse struct {
	Results []struct {
		URLs struct {
			Regular string `json:"regular"`
		} `json:"urls"`
		User struct {
			Name  string `json:"name"`
			Links struct {
				HTML string `json:"html"`
			} `json:"links"`
		} `json:"user"`
	} `json:"results"`
}

// Client queries the Unsplash search API for a single representative
// image per query. Constructed once at startup and shared by reference.
type Client struct {
	httpClient *http.Client
	apiURL     string
	accessKey  string
	maxRetries int
}

func NewClient(apiURL, accessKey string, timeout time.Duration, maxRetries int) *Client {
	if maxRetries <= 0 {
		maxRetries = 3
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		apiURL:     apiURL,
		accessKey:  accessKey,
		maxRetries: maxRetries,
	}
}

// Lookup returns at most one image for the plant name. A missing access
// key or an empty result set yields (nil, nil); only transport-level
// failures after all retries produce an error.
func (c *Client) Lookup(ctx context.Context, plantName string) (*Image, error) {
	if c.accessKey == "" {
		log.Info().Msg("Unsplash access key missing, skipping image fetch")
		return nil, nil
	}

	query := url.Values{}
	query.Set("query", plantName)
	query.Set("per_page", "1")
	query.Set("orientation", "landscape")

	var lastErr error

	// Exponential backoff retry loop
	for i := 0; i < c.maxRetries; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"?"+query.Encode(), nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Authorization", "Client-ID "+c.accessKey)
		req.Header.Set("Accept-Version", "v1")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("request failed: %w", err)
			log.Warn().Err(lastErr).Msgf("Unsplash attempt %d failed", i+1)
			if err := c.backoff(ctx, i); err != nil {
				return nil, fmt.Errorf("image lookup canceled: %w", err)
			}
			continue
		}

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			lastErr = fmt.Errorf("API returned non-200 status: %s, body: %s", resp.Status, string(body))
			log.Warn().Err(lastErr).Msgf("Unsplash attempt %d failed", i+1)
			if err := c.backoff(ctx, i); err != nil {
				return nil, fmt.Errorf("image lookup canceled: %w", err)
			}
			continue
		}

		var search searchResponse
		err = json.NewDecoder(resp.Body).Decode(&search)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}

		if len(search.Results) == 0 {
			log.Info().Str("query", plantName).Msg("no Unsplash image found")
			return nil, nil
		}

		first := search.Results[0]
		if first.URLs.Regular == "" {
			log.Warn().Str("query", plantName).Msg("Unsplash result missing image URL")
			return nil, nil
		}

		log.Info().Str("query", plantName).Str("photographer", first.User.Name).Msg("found Unsplash image")
		return &Image{
			URL:              first.URLs.Regular,
			PhotographerName: first.User.Name,
			PhotographerURL:  first.User.Links.HTML,
		}, nil
	}

	return nil, fmt.Errorf("failed to call Unsplash API after %d attempts: %w", c.maxRetries, lastErr)
}

// backoff waits the exponential delay before the next attempt. There is
// no wait after the final attempt, and cancellation cuts the wait short.
func (c *Client) backoff(ctx context.Context, attempt int) error {
	if attempt+1 >= c.maxRetries {
		return nil
	}
	select {
	case <-time.After(initialBackoff * time.Duration(math.Pow(2, float64(attempt)))):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
