package images

import (
	"context"
	"log"
	"net/url"
)

// Searcher resolves a search term to a single image URL.
// An empty result set yields ("", nil): the registry owns fallback policy.
type Searcher interface {
	Name() string
	SearchImage(ctx context.Context, term string) (string, error)
}

// Registry holds the configured image providers in priority order
type Registry struct {
	providers []Searcher
}

// NewRegistry creates an empty image provider registry
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a provider to the registry
func (r *Registry) Register(p Searcher) {
	r.providers = append(r.providers, p)
}

// Count returns the number of registered providers
func (r *Registry) Count() int {
	return len(r.providers)
}

// SearchImage tries each provider in order; when every provider fails or
// comes back empty it falls back to a deterministic placeholder built from
// the term, so content generation never dies on missing imagery.
func (r *Registry) SearchImage(ctx context.Context, term string) string {
	for _, p := range r.providers {
		imageURL, err := p.SearchImage(ctx, term)
		if err != nil {
			log.Printf("[Images] %s failed for %q: %v", p.Name(), term, err)
			continue
		}
		if imageURL != "" {
			return imageURL
		}
		log.Printf("[Images] %s returned no results for %q", p.Name(), term)
	}

	placeholder := PlaceholderURL(term)
	log.Printf("[Images] Falling back to placeholder for %q", term)
	return placeholder
}

// PlaceholderURL builds a stable stand-in image URL for a search term
func PlaceholderURL(term string) string {
	return "https://source.unsplash.com/featured/1080x600/?" + url.QueryEscape(term)
}
