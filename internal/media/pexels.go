// Package media finds supporting images and videos for lesson topics.
package media

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const defaultPexelsBaseURL = "https://api.pexels.com"

// PexelsClient searches the Pexels image API.
// A free key is available at https://www.pexels.com/api/.
type PexelsClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewPexelsClient creates a client with the given API key.
func NewPexelsClient(apiKey string) *PexelsClient {
	return &PexelsClient{
		apiKey:  apiKey,
		baseURL: defaultPexelsBaseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// NewPexelsClientWithBaseURL creates a client against a specific endpoint.
// Used by tests with httptest servers.
func NewPexelsClientWithBaseURL(apiKey, baseURL string) *PexelsClient {
	c := NewPexelsClient(apiKey)
	c.baseURL = baseURL
	return c
}

// Enabled reports whether an API key is configured.
func (c *PexelsClient) Enabled() bool {
	return c.apiKey != ""
}

// pexelsResponse is the subset of the search response we read.
type pexelsResponse struct {
	Photos []struct {
		Src struct {
			Large string `json:"large"`
		} `json:"src"`
	} `json:"photos"`
}

// SearchImage searches for a landscape image matching the query and
// returns the large-size image URL, or "" when nothing matched.
func (c *PexelsClient) SearchImage(ctx context.Context, query string) (string, error) {
	if !c.Enabled() {
		return "", nil
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("per_page", "1")
	params.Set("orientation", "landscape")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/search?"+params.Encode(), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("pexels search: status %d", resp.StatusCode)
	}

	var body pexelsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}
	if len(body.Photos) == 0 {
		return "", nil
	}
	return body.Photos[0].Src.Large, nil
}

// TopicImage finds an image for a lesson topic, trying progressively
// broader queries until one matches.
func (c *PexelsClient) TopicImage(ctx context.Context, topic string) (string, error) {
	queries := []string{
		topic + " media production",
		topic + " film",
		topic + " video",
		topic,
	}

	for _, q := range queries {
		imageURL, err := c.SearchImage(ctx, q)
		if err != nil {
			return "", err
		}
		if imageURL != "" {
			return imageURL, nil
		}
	}
	return "", nil
}
