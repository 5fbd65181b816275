package scrape

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/interviewninja/backend/internal/ai"
)

const (
	userAgent  = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	maxTextLen = 15000
)

// Problem is a structured interview problem extracted from a page.
type Problem struct {
	Name       string  `json:"name"`
	Content    string  `json:"content"`
	Difficulty *string `json:"difficulty,omitempty"`
}

// Scraper fetches pages and extracts interview problems from them.
type Scraper struct {
	HTTP     *http.Client
	Provider ai.Provider
}

func New(provider ai.Provider) *Scraper {
	return &Scraper{
		HTTP:     &http.Client{Timeout: 30 * time.Second},
		Provider: provider,
	}
}

// Fetch downloads a page, following redirects.
func (s *Scraper) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// ExtractText strips scripts, styles and page chrome from HTML and returns
// the readable text, capped for the extraction prompt.
func ExtractText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}

	doc.Find("script, style, nav, footer, header").Remove()

	var lines []string
	raw := doc.Find("body").Text()
	if strings.TrimSpace(raw) == "" {
		raw = doc.Text()
	}
	for _, line := range strings.Split(raw, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	text := strings.Join(lines, "\n")

	if len(text) > maxTextLen {
		text = text[:maxTextLen]
	}
	return text, nil
}

const extractSystemPrompt = "You are a helpful assistant that extracts structured data from text. Always respond with valid JSON only."

func extractPrompt(text, url string) string {
	return fmt.Sprintf(`Analyze the following text from a webpage and extract any interview problems, coding challenges, or practice questions.

For each problem found, extract:
1. name: The title or name of the problem
2. content: The full problem description/statement
3. difficulty: If mentioned (easy/medium/hard), otherwise null

Return the results as a JSON array of objects with keys: name, content, difficulty.
If no problems are found, return an empty array.

Text from %s:
---
%s
---

Return ONLY valid JSON, no other text.`, url, text)
}

// ExtractProblems asks the provider for structured problems found in the
// text. An unparseable reply degrades to a single raw-content problem instead
// of failing the request; a provider failure propagates.
func (s *Scraper) ExtractProblems(ctx context.Context, text, url string) ([]Problem, error) {
	reply, err := s.Provider.Chat(ctx, []ai.Message{
		{Role: "system", Content: extractSystemPrompt},
		{Role: "user", Content: extractPrompt(text, url)},
	})
	if err != nil {
		return nil, err
	}

	var items []struct {
		Name       string  `json:"name"`
		Content    string  `json:"content"`
		Difficulty *string `json:"difficulty"`
	}
	if err := json.Unmarshal([]byte(reply), &items); err != nil {
		content := text
		if len(content) > 2000 {
			content = content[:2000]
		}
		return []Problem{{Name: "Extracted Content", Content: content}}, nil
	}

	problems := make([]Problem, 0, len(items))
	for _, it := range items {
		name := it.Name
		if name == "" {
			name = "Unnamed Problem"
		}
		problems = append(problems, Problem{
			Name:       name,
			Content:    it.Content,
			Difficulty: it.Difficulty,
		})
	}
	return problems, nil
}
