package images

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"
)

const unsplashAPIURL = "https://api.unsplash.com/search/photos"

// UnsplashClient searches Unsplash for course cover images
type UnsplashClient struct {
	accessKey string
	client    *http.Client
}

// NewUnsplashClient creates an Unsplash search client
func NewUnsplashClient(accessKey string) *UnsplashClient {
	return &UnsplashClient{
		accessKey: accessKey,
		client:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *UnsplashClient) Name() string {
	return "unsplash"
}

type unsplashResponse struct {
	Results []struct {
		URLs struct {
			SmallS3 string `json:"small_s3"`
			Small   string `json:"small"`
		} `json:"urls"`
	} `json:"results"`
}

// SearchImage returns the small rendition URL of the first result
func (c *UnsplashClient) SearchImage(ctx context.Context, term string) (string, error) {
	if c.accessKey == "" {
		return "", fmt.Errorf("Unsplash API key is not set")
	}

	query := url.Values{}
	query.Set("per_page", "1")
	query.Set("query", term)
	query.Set("client_id", c.accessKey)
	query.Set("w", "1080")
	query.Set("h", "600")

	log.Printf("[Unsplash] Searching for: %q", term)
	req, err := http.NewRequestWithContext(ctx, "GET", unsplashAPIURL+"?"+query.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("api error: %d %s", resp.StatusCode, string(bodyBytes))
	}

	var parsed unsplashResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(parsed.Results) == 0 {
		return "", nil
	}
	if parsed.Results[0].URLs.SmallS3 != "" {
		return parsed.Results[0].URLs.SmallS3, nil
	}
	return parsed.Results[0].URLs.Small, nil
}
