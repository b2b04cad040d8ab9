package youtube

import (
	"context"
	"fmt"
	"log"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// VideoSearch finds embeddable educational videos via the YouTube Data API
type VideoSearch struct {
	service *youtube.Service
}

// NewVideoSearch creates a YouTube Data API search client
func NewVideoSearch(apiKey string) (*VideoSearch, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("YouTube API key is not set")
	}
	svc, err := youtube.NewService(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create youtube service: %w", err)
	}
	return &VideoSearch{service: svc}, nil
}

// Search returns the first embeddable medium-duration video for the query.
// Zero results is a valid outcome: returns ("", nil), never an error.
func (v *VideoSearch) Search(ctx context.Context, query string) (string, error) {
	log.Printf("[YouTube.Search] Searching for: %q", query)

	resp, err := v.service.Search.List([]string{"id"}).
		Q(query).
		Type("video").
		VideoEmbeddable("true").
		VideoDuration("medium").
		MaxResults(5).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("youtube search failed: %w", err)
	}

	if len(resp.Items) == 0 || resp.Items[0].Id == nil {
		log.Printf("[YouTube.Search] No results for query: %q", query)
		return "", nil
	}

	videoID := resp.Items[0].Id.VideoId
	log.Printf("[YouTube.Search] Found video: %s", videoID)
	return videoID, nil
}
