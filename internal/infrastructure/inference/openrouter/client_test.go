package openrouter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/vkuzmin/visudoc/internal/core/domain"
	"github.com/vkuzmin/visudoc/internal/infrastructure/resilience"
)

func testExecutor() *resilience.Executor {
	return resilience.NewExecutor(resilience.Config{
		RetryMaxAttempts: 3,
		RetryBackoffStep: 1 * time.Millisecond,
		BreakerEnabled:   false,
	})
}

// chatServer replies to /chat/completions with the given content and records
// the prompt of the last request.
type chatServer struct {
	*httptest.Server

	content    string
	lastPrompt string
	requests   int
	failFirst  int
}

func newChatServer(t *testing.T, content string) *chatServer {
	t.Helper()
	cs := &chatServer{content: content}
	cs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cs.requests++
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode chat request: %v", err)
		}
		if len(req.Messages) > 0 {
			cs.lastPrompt = req.Messages[len(req.Messages)-1].Content
		}
		if cs.requests <= cs.failFirst {
			http.Error(w, `{"error":"upstream overloaded"}`, http.StatusBadGateway)
			return
		}
		fmt.Fprintf(w, `{"choices":[{"message":{"content":%q}}]}`, cs.content)
	}))
	t.Cleanup(cs.Server.Close)
	return cs
}

func newTestClient(t *testing.T, serverURL string) *Client {
	t.Helper()
	client, err := New(serverURL, "test-key", "", "", "", testExecutor())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return client
}

func TestNewRequiresAPIKey(t *testing.T) {
	_, err := New("", "", "", "", "", testExecutor())
	if !domain.IsKind(err, domain.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}

func TestClassifierMatchesExactLabel(t *testing.T) {
	server := newChatServer(t, "Invoice")
	classifier := NewClassifier(newTestClient(t, server.URL))

	results, err := classifier.Classify(context.Background(), "invoice text", domain.DefaultCategories)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 || results[0].Label != "Invoice" || results[0].Score != 0.85 {
		t.Fatalf("unexpected results: %+v", results)
	}
}

func TestClassifierMatchesLabelInsideReply(t *testing.T) {
	server := newChatServer(t, "The category is: invoice.")
	classifier := NewClassifier(newTestClient(t, server.URL))

	results, err := classifier.Classify(context.Background(), "invoice text", domain.DefaultCategories)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if results[0].Label != "Invoice" || results[0].Score != 0.85 {
		t.Fatalf("unexpected results: %+v", results)
	}
}

func TestClassifierUnmatchedReplyFallsBackToOther(t *testing.T) {
	server := newChatServer(t, "I cannot tell")
	classifier := NewClassifier(newTestClient(t, server.URL))

	results, err := classifier.Classify(context.Background(), "text", domain.DefaultCategories)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if results[0].Label != domain.LabelOther || results[0].Score != 0 {
		t.Fatalf("expected (Other, 0.0), got %+v", results)
	}
}

func TestQAKeepsFirstLineWithFullConfidence(t *testing.T) {
	server := newChatServer(t, "March 2024\nThe date appears in the header.")
	qa := NewQA(newTestClient(t, server.URL))

	answer, err := qa.AnswerQuestion(context.Background(), "doc", "when?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if answer.Text != "March 2024" || answer.Confidence != 0.85 {
		t.Fatalf("unexpected answer: %+v", answer)
	}
}

func TestQANotFoundSentinelLowersConfidence(t *testing.T) {
	server := newChatServer(t, "Not found")
	qa := NewQA(newTestClient(t, server.URL))

	answer, err := qa.AnswerQuestion(context.Background(), "doc", "when?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if answer.Text != "Not found" || answer.Confidence != 0.1 {
		t.Fatalf("unexpected answer: %+v", answer)
	}
}

func TestQAEmptyReplyIsZeroAnswer(t *testing.T) {
	server := newChatServer(t, "")
	qa := NewQA(newTestClient(t, server.URL))

	answer, err := qa.AnswerQuestion(context.Background(), "doc", "when?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if answer.Text != "" || answer.Confidence != 0 {
		t.Fatalf("expected zero answer, got %+v", answer)
	}
}

func TestSummarizerCapsInputLength(t *testing.T) {
	server := newChatServer(t, "short summary")
	s := NewSummarizer(newTestClient(t, server.URL))

	long := strings.Repeat("a", summaryInputMaxChars+500)
	summary, err := s.Summarize(context.Background(), long, domain.SummaryGeneral, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary != "short summary" {
		t.Fatalf("unexpected summary: %q", summary)
	}
	if strings.Contains(server.lastPrompt, strings.Repeat("a", summaryInputMaxChars+1)) {
		t.Fatalf("prompt carries more than %d document characters", summaryInputMaxChars)
	}
	if !strings.Contains(server.lastPrompt, strings.Repeat("a", summaryInputMaxChars)) {
		t.Fatalf("prompt is missing the capped document prefix")
	}
}

func TestSummarizerCapKeepsPromptValidUTF8(t *testing.T) {
	server := newChatServer(t, "short summary")
	s := NewSummarizer(newTestClient(t, server.URL))

	// Three-byte runes guarantee the cap falls mid-rune unless clipping
	// backs up to a boundary.
	long := strings.Repeat("語", summaryInputMaxChars/3+100)
	if _, err := s.Summarize(context.Background(), long, domain.SummaryGeneral, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !utf8.ValidString(server.lastPrompt) {
		t.Fatal("capped document text broke a rune in the prompt")
	}
}

func TestSummarizerStructuredPromptFollowsDocType(t *testing.T) {
	server := newChatServer(t, "structured")
	s := NewSummarizer(newTestClient(t, server.URL))

	if _, err := s.Summarize(context.Background(), "invoice body", domain.SummaryStructured, "Invoice"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(server.lastPrompt, "total amount") {
		t.Fatalf("invoice prompt is missing field instructions: %q", server.lastPrompt)
	}

	if _, err := s.Summarize(context.Background(), "resume body", domain.SummaryStructured, "Resume"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(server.lastPrompt, "email address") {
		t.Fatalf("resume prompt is missing field instructions: %q", server.lastPrompt)
	}
}

func TestCompleteRetriesTransientFailures(t *testing.T) {
	server := newChatServer(t, "Report")
	server.failFirst = 2
	classifier := NewClassifier(newTestClient(t, server.URL))

	results, err := classifier.Classify(context.Background(), "quarterly figures", domain.DefaultCategories)
	if err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if server.requests != 3 {
		t.Fatalf("expected exactly 2 retries before success, got %d requests", server.requests)
	}
	if results[0].Label != "Report" {
		t.Fatalf("unexpected results: %+v", results)
	}
}

func TestCompleteSendsAttributionHeaders(t *testing.T) {
	var referer, title string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		referer = r.Header.Get("HTTP-Referer")
		title = r.Header.Get("X-Title")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"Other"}}]}`))
	}))
	defer server.Close()

	client, err := New(server.URL, "test-key", "", "https://example.com", "visudoc", testExecutor())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, err := NewClassifier(client).Classify(context.Background(), "text", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if referer != "https://example.com" || title != "visudoc" {
		t.Fatalf("attribution headers not sent: referer=%q title=%q", referer, title)
	}
}
