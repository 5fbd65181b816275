package sandbox

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client proxies code execution to a Piston instance.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = "https://emkc.org/api/v2/piston"
	}
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Pinned versions for the languages the interviewer presents.
var languageVersions = map[string]string{
	"python":     "3.10.0",
	"javascript": "18.15.0",
	"typescript": "5.0.3",
	"java":       "15.0.2",
	"cpp":        "10.2.0",
	"c":          "10.2.0",
	"go":         "1.16.2",
	"rust":       "1.68.2",
	"ruby":       "3.0.1",
}

var languageAliases = map[string]string{
	"py":      "python",
	"python3": "python",
	"js":      "javascript",
	"node":    "javascript",
	"ts":      "typescript",
	"c++":     "cpp",
}

var fileExtensions = map[string]string{
	"python":     "py",
	"javascript": "js",
	"typescript": "ts",
	"java":       "java",
	"cpp":        "cpp",
	"c":          "c",
	"go":         "go",
	"rust":       "rs",
	"ruby":       "rb",
}

// NormalizeLanguage resolves common aliases to a Piston language name.
func NormalizeLanguage(language string) string {
	language = strings.ToLower(strings.TrimSpace(language))
	if canonical, ok := languageAliases[language]; ok {
		return canonical
	}
	return language
}

func fileExtension(language string) string {
	if ext, ok := fileExtensions[language]; ok {
		return ext
	}
	return "txt"
}

type ExecResult struct {
	Stdout   string `json:"stdout"`
	Stderr   string `json:"stderr"`
	ExitCode int    `json:"exit_code"`
}

type pistonFile struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

type pistonExecReq struct {
	Language           string       `json:"language"`
	Version            string       `json:"version"`
	Files              []pistonFile `json:"files"`
	Stdin              string       `json:"stdin"`
	Args               []string     `json:"args"`
	CompileTimeout     int          `json:"compile_timeout"`
	RunTimeout         int          `json:"run_timeout"`
	CompileMemoryLimit int          `json:"compile_memory_limit"`
	RunMemoryLimit     int          `json:"run_memory_limit"`
}

type pistonPhase struct {
	Stdout string `json:"stdout"`
	Stderr string `json:"stderr"`
	Code   int    `json:"code"`
}

type pistonExecResp struct {
	Run     pistonPhase `json:"run"`
	Compile pistonPhase `json:"compile"`
}

// Execute runs code remotely. Compile stderr, if any, is folded into the
// returned stderr ahead of the run output.
func (c *Client) Execute(ctx context.Context, code, language, stdin string) (ExecResult, error) {
	language = NormalizeLanguage(language)
	version, ok := languageVersions[language]
	if !ok {
		version = "*"
	}

	body, err := json.Marshal(pistonExecReq{
		Language: language,
		Version:  version,
		Files: []pistonFile{
			{Name: "main." + fileExtension(language), Content: code},
		},
		Stdin:              stdin,
		Args:               []string{},
		CompileTimeout:     10000,
		RunTimeout:         10000,
		CompileMemoryLimit: -1,
		RunMemoryLimit:     -1,
	})
	if err != nil {
		return ExecResult{}, err
	}

	url := strings.TrimRight(c.BaseURL, "/") + "/execute"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return ExecResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return ExecResult{}, fmt.Errorf("piston: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4*1024))
		return ExecResult{}, fmt.Errorf("piston: status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var decoded pistonExecResp
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return ExecResult{}, err
	}

	stderr := decoded.Run.Stderr
	if decoded.Compile.Stderr != "" {
		stderr = fmt.Sprintf("Compile Error:\n%s\n\n%s", decoded.Compile.Stderr, stderr)
	}

	return ExecResult{
		Stdout:   decoded.Run.Stdout,
		Stderr:   stderr,
		ExitCode: decoded.Run.Code,
	}, nil
}

type Runtime struct {
	Language string   `json:"language"`
	Version  string   `json:"version"`
	Aliases  []string `json:"aliases"`
}

// Runtimes lists the languages the Piston instance can run.
func (c *Client) Runtimes(ctx context.Context) ([]Runtime, error) {
	url := strings.TrimRight(c.BaseURL, "/") + "/runtimes"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("piston: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("piston: status %d", resp.StatusCode)
	}

	var runtimes []Runtime
	if err := json.NewDecoder(resp.Body).Decode(&runtimes); err != nil {
		return nil, err
	}
	return runtimes, nil
}
