package images

import (
	"context"
	"fmt"
	"log"

	g "github.com/serpapi/google-search-results-golang"
)

// SerpAPIClient searches Google Images via SerpApi as a secondary provider
type SerpAPIClient struct {
	apiKey string
}

// NewSerpAPIClient creates a SerpApi image search client
func NewSerpAPIClient(apiKey string) *SerpAPIClient {
	return &SerpAPIClient{apiKey: apiKey}
}

func (c *SerpAPIClient) Name() string {
	return "serpapi"
}

// SearchImage returns the first Google Images result for the term
func (c *SerpAPIClient) SearchImage(ctx context.Context, term string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("SerpApi API key is not set")
	}

	parameter := map[string]string{
		"engine": "google_images",
		"q":      term,
		"hl":     "en",
		"gl":     "us",
	}

	log.Printf("[SerpApi] Image search for: %q", term)
	search := g.NewGoogleSearch(parameter, c.apiKey)
	results, err := search.GetJSON()
	if err != nil {
		return "", fmt.Errorf("serpapi search failed: %w", err)
	}

	imageResults, ok := results["images_results"].([]interface{})
	if !ok || len(imageResults) == 0 {
		log.Printf("[SerpApi] No images_results found in response")
		return "", nil
	}

	first, ok := imageResults[0].(map[string]interface{})
	if !ok {
		return "", nil
	}
	if original, _ := first["original"].(string); original != "" {
		return original, nil
	}
	thumbnail, _ := first["thumbnail"].(string)
	return thumbnail, nil
}
