package youtube

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// TranscriptExtractor pulls English captions for a video by scraping the
// watch page for caption track metadata and fetching the timedtext XML.
//
// Contract: GetTranscript returns "" on ANY failure (no captions, private
// video, network error). Callers treat an empty transcript as a valid
// terminal state and skip summarisation.
type TranscriptExtractor struct {
	watchBase string
	client    *http.Client
}

// NewTranscriptExtractor creates a transcript extractor
func NewTranscriptExtractor() *TranscriptExtractor {
	return &TranscriptExtractor{
		watchBase: "https://www.youtube.com",
		client:    &http.Client{Timeout: 30 * time.Second},
	}
}

type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
}

type timedText struct {
	Texts []struct {
		Value string `xml:",chardata"`
	} `xml:"text"`
}

// GetTranscript fetches and flattens the English captions for videoID.
func (t *TranscriptExtractor) GetTranscript(ctx context.Context, videoID string) string {
	tracks, err := t.fetchCaptionTracks(ctx, videoID)
	if err != nil {
		log.Printf("[Transcript] No caption tracks for %s: %v", videoID, err)
		return ""
	}

	track := tracks[0]
	for _, tr := range tracks {
		if strings.HasPrefix(tr.LanguageCode, "en") {
			track = tr
			break
		}
	}

	transcript, err := t.fetchTimedText(ctx, track.BaseURL)
	if err != nil {
		log.Printf("[Transcript] Failed to fetch timedtext for %s: %v", videoID, err)
		return ""
	}

	log.Printf("[Transcript] Extracted %d chars for %s", len(transcript), videoID)
	return transcript
}

// fetchCaptionTracks scrapes the watch page for the captionTracks JSON blob
func (t *TranscriptExtractor) fetchCaptionTracks(ctx context.Context, videoID string) ([]captionTrack, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", t.watchBase+"/watch?v="+videoID, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; transcript-fetcher)")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("watch page returned %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, err
	}

	var raw string
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := s.Text()
		if idx := strings.Index(text, `"captionTracks":`); idx != -1 {
			raw = extractJSONArray(text[idx+len(`"captionTracks":`):])
			return false
		}
		return true
	})
	if raw == "" {
		return nil, fmt.Errorf("captionTracks not present")
	}

	var tracks []captionTrack
	if err := json.Unmarshal([]byte(raw), &tracks); err != nil {
		return nil, fmt.Errorf("failed to parse captionTracks: %w", err)
	}
	if len(tracks) == 0 {
		return nil, fmt.Errorf("captionTracks empty")
	}
	return tracks, nil
}

// fetchTimedText downloads and flattens the timedtext XML into plain text
func (t *TranscriptExtractor) fetchTimedText(ctx context.Context, baseURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", baseURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := t.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("timedtext returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var parsed timedText
	if err := xml.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse timedtext: %w", err)
	}
	if len(parsed.Texts) == 0 {
		return "", fmt.Errorf("timedtext empty")
	}

	var sb strings.Builder
	for _, line := range parsed.Texts {
		sb.WriteString(html.UnescapeString(line.Value))
		sb.WriteString(" ")
	}
	return strings.ReplaceAll(strings.TrimSpace(sb.String()), "\n", " "), nil
}

// extractJSONArray returns the balanced JSON array starting at the first
// '[' of s. String literals are skipped so brackets inside text don't
// break the depth count.
func extractJSONArray(s string) string {
	start := strings.Index(s, "[")
	if start == -1 {
		return ""
	}
	depth := 0
	inString := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch c {
			case '\\':
				i++
			case '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}
