package httpadapter

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestStatusRecorderCapturesStatusAndBytes(t *testing.T) {
	rec := httptest.NewRecorder()
	recorder := &statusRecorder{ResponseWriter: rec, statusCode: http.StatusOK}

	recorder.WriteHeader(http.StatusUnprocessableEntity)
	if _, err := recorder.Write([]byte(`{"error":"no text"}`)); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	if recorder.statusCode != http.StatusUnprocessableEntity {
		t.Fatalf("statusCode = %d", recorder.statusCode)
	}
	if recorder.bytesWritten != len(`{"error":"no text"}`) {
		t.Fatalf("bytesWritten = %d", recorder.bytesWritten)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("underlying writer saw status %d", rec.Code)
	}
}

func TestRequestIDMiddlewareGeneratesAndEchoes(t *testing.T) {
	var seen string
	handler := requestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = requestIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if seen == "" {
		t.Fatal("request id not set in context")
	}
	if rec.Header().Get(requestIDHeader) != seen {
		t.Fatalf("header %q does not match context id %q", rec.Header().Get(requestIDHeader), seen)
	}

	// A caller-provided id is kept as is.
	req = httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set(requestIDHeader, "req-123")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if seen != "req-123" || rec.Header().Get(requestIDHeader) != "req-123" {
		t.Fatalf("caller id not preserved: context=%q header=%q", seen, rec.Header().Get(requestIDHeader))
	}
}
