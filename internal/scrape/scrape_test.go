package scrape

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/interviewninja/backend/internal/ai"
)

type fakeProvider struct {
	reply string
	err   error
	last  []ai.Message
}

func (p *fakeProvider) Chat(ctx context.Context, messages []ai.Message) (string, error) {
	_ = ctx
	p.last = append([]ai.Message(nil), messages...)
	return p.reply, p.err
}

const samplePage = `<html>
<head><title>Problems</title><style>body{color:red}</style></head>
<body>
<header>Site Header</header>
<nav>Home | About</nav>
<h1>Two Sum</h1>
<p>Given an array of integers, return indices of two numbers adding to a target.</p>
<script>console.log("tracking")</script>
<footer>Copyright</footer>
</body>
</html>`

func TestExtractText_StripsChrome(t *testing.T) {
	text, err := ExtractText(samplePage)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if !strings.Contains(text, "Two Sum") {
		t.Fatalf("content lost: %q", text)
	}
	for _, junk := range []string{"tracking", "color:red", "Site Header", "Home | About", "Copyright"} {
		if strings.Contains(text, junk) {
			t.Errorf("page chrome leaked: %q", junk)
		}
	}
}

func TestExtractText_CapsLength(t *testing.T) {
	huge := "<html><body><p>" + strings.Repeat("a", 20000) + "</p></body></html>"
	text, err := ExtractText(huge)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(text) > maxTextLen {
		t.Fatalf("text not capped: %d", len(text))
	}
}

func TestFetch_SetsUserAgentAndFollowsStatus(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte("<html>ok</html>"))
	}))
	defer srv.Close()

	s := New(&fakeProvider{})
	html, err := s.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if html != "<html>ok</html>" {
		t.Fatalf("html = %q", html)
	}
	if !strings.Contains(gotUA, "Mozilla/5.0") {
		t.Fatalf("user agent = %q", gotUA)
	}
}

func TestFetch_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	s := New(&fakeProvider{})
	if _, err := s.Fetch(context.Background(), srv.URL); err == nil {
		t.Fatalf("expected error on 403")
	}
}

func TestExtractProblems_ParsesJSON(t *testing.T) {
	prov := &fakeProvider{reply: `[{"name":"Two Sum","content":"Find two indices.","difficulty":"easy"}]`}
	s := New(prov)

	problems, err := s.ExtractProblems(context.Background(), "Two Sum ...", "https://example.com/problems")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(problems) != 1 {
		t.Fatalf("got %d problems", len(problems))
	}
	p := problems[0]
	if p.Name != "Two Sum" || p.Content != "Find two indices." || p.Difficulty == nil || *p.Difficulty != "easy" {
		t.Fatalf("unexpected problem: %+v", p)
	}
	if !strings.Contains(prov.last[1].Content, "https://example.com/problems") {
		t.Fatalf("prompt missing source url")
	}
}

func TestExtractProblems_FallsBackToRawContent(t *testing.T) {
	prov := &fakeProvider{reply: "Sorry, I could not find structured problems."}
	s := New(prov)

	text := strings.Repeat("b", 5000)
	problems, err := s.ExtractProblems(context.Background(), text, "https://example.com")
	if err != nil {
		t.Fatalf("extract should degrade, not fail: %v", err)
	}
	if len(problems) != 1 || problems[0].Name != "Extracted Content" {
		t.Fatalf("fallback problem missing: %+v", problems)
	}
	if len(problems[0].Content) != 2000 {
		t.Fatalf("fallback content not capped: %d", len(problems[0].Content))
	}
}

func TestExtractProblems_ProviderFailure(t *testing.T) {
	prov := &fakeProvider{err: errors.New("timeout")}
	s := New(prov)
	if _, err := s.ExtractProblems(context.Background(), "text", "u"); err == nil {
		t.Fatalf("expected provider error to propagate")
	}
}

func TestExtractProblems_NamesUnnamed(t *testing.T) {
	prov := &fakeProvider{reply: `[{"name":"","content":"Some statement"}]`}
	s := New(prov)

	problems, err := s.ExtractProblems(context.Background(), "t", "u")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if problems[0].Name != "Unnamed Problem" {
		t.Fatalf("name = %q", problems[0].Name)
	}
}
