package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/FocuswithJustin/SharpAssistant/core/errors"
	"github.com/FocuswithJustin/SharpAssistant/core/text"
)

// DefaultESVEndpoint is the licensed passage-text API.
const DefaultESVEndpoint = "https://api.esv.org/v3/passage/text/"

// ESVProvider fetches passages from the licensed ESV API. The token is
// optional: without one the provider reports misses so the fallback
// chain takes over, and the rest of the pipeline is unaffected.
type ESVProvider struct {
	token    string
	endpoint string
	client   *http.Client
}

// NewESVProvider creates the provider. An empty token disables it.
func NewESVProvider(token, endpoint string) *ESVProvider {
	if endpoint == "" {
		endpoint = DefaultESVEndpoint
	}
	return &ESVProvider{
		token:    token,
		endpoint: endpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// Translation returns the provider's translation ID.
func (p *ESVProvider) Translation() text.TranslationID {
	return text.ESV
}

// Enabled reports whether a token is configured.
func (p *ESVProvider) Enabled() bool {
	return p.token != ""
}

// GetVerses fetches one passage. The range is sent as a single
// reference-string query; the API returns the whole passage as one
// text block, so the result is a single verse entry covering the range.
func (p *ESVProvider) GetVerses(ctx context.Context, book string, chapter, verseStart, verseEnd int) ([]text.Verse, error) {
	if !p.Enabled() {
		return nil, nil
	}

	reference := book + " " + strconv.Itoa(chapter)
	if verseStart > 0 {
		reference += ":" + strconv.Itoa(verseStart)
		if verseEnd > verseStart {
			reference += "-" + strconv.Itoa(verseEnd)
		}
	}

	passage, err := p.fetchPassage(ctx, reference)
	if err != nil {
		return nil, err
	}
	if passage == "" {
		return nil, nil
	}

	return []text.Verse{{
		Reference:   reference,
		Text:        passage,
		Translation: text.ESV,
		Language:    "en",
	}}, nil
}

func (p *ESVProvider) fetchPassage(ctx context.Context, reference string) (string, error) {
	params := url.Values{
		"q":                            {reference},
		"include-passage-references":   {"false"},
		"include-footnotes":            {"false"},
		"include-headings":             {"false"},
		"include-verse-numbers":        {"false"},
		"include-short-copyright":      {"false"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return "", errors.NewProvider("ESV", reference, err)
	}
	req.Header.Set("Authorization", "Token "+p.token)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", errors.NewProvider("ESV", reference, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errors.NewProvider("ESV", reference, fmt.Errorf("HTTP %d", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", errors.NewProvider("ESV", reference, err)
	}

	var payload struct {
		Passages []string `json:"passages"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", errors.NewProvider("ESV", reference, err)
	}
	if len(payload.Passages) == 0 {
		return "", nil
	}
	return strings.Join(strings.Fields(payload.Passages[0]), " "), nil
}
