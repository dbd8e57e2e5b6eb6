package httpadapter

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vkuzmin/visudoc/internal/core/domain"
	"github.com/vkuzmin/visudoc/internal/core/ports"
	"github.com/vkuzmin/visudoc/internal/observability/metrics"
)

const defaultCleanupHours = 24

// allowedExtensions is the closed set of upload types the pipeline can handle.
var allowedExtensions = map[string]struct{}{
	".pdf":  {},
	".png":  {},
	".jpg":  {},
	".jpeg": {},
}

type Router struct {
	service     string
	analyzeUC   ports.DocumentAnalyzer
	qaUC        ports.DocumentQA
	summarizeUC ports.DocumentSummarizer
	store       ports.DocumentStore
	files       ports.ObjectStorage
	metrics     *metrics.HTTPServerMetrics
	maxFileSize int64
}

func NewRouter(
	service string,
	analyzeUC ports.DocumentAnalyzer,
	qaUC ports.DocumentQA,
	summarizeUC ports.DocumentSummarizer,
	store ports.DocumentStore,
	files ports.ObjectStorage,
	m *metrics.HTTPServerMetrics,
	maxFileSize int64,
) *Router {
	return &Router{
		service:     service,
		analyzeUC:   analyzeUC,
		qaUC:        qaUC,
		summarizeUC: summarizeUC,
		store:       store,
		files:       files,
		metrics:     m,
		maxFileSize: maxFileSize,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", rt.health)
	mux.HandleFunc("/api/upload", rt.upload)
	mux.HandleFunc("/api/analyze", rt.analyze)
	mux.HandleFunc("/api/query", rt.query)
	mux.HandleFunc("/api/summarize", rt.summarize)
	mux.HandleFunc("/api/cleanup", rt.cleanup)

	handler := accessLogMiddleware(mux)
	handler = rt.metrics.Middleware(rt.service, handler)
	return requestIDMiddleware(handler)
}

func (rt *Router) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) upload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if rt.maxFileSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, rt.maxFileSize)
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "multipart field 'file' is required")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if _, ok := allowedExtensions[ext]; !ok {
		writeError(w, http.StatusBadRequest, "unsupported file type, expected pdf, png, jpg or jpeg")
		return
	}

	id := uuid.NewString()
	if _, err := rt.files.Save(r.Context(), id+ext, file); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to store upload")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"file_id":  id,
		"filename": fileHeader.Filename,
	})
}

func (rt *Router) analyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req struct {
		FileID string `json:"file_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.FileID) == "" {
		writeError(w, http.StatusBadRequest, "file_id is required")
		return
	}

	path, err := rt.files.Find(r.Context(), req.FileID)
	if err != nil {
		rt.metrics.RecordAnalyzeRun(rt.service, "not_found", "", 0, 0)
		writeDomainError(w, err)
		return
	}

	start := time.Now()
	doc, err := rt.analyzeUC.Analyze(r.Context(), req.FileID, filepath.Base(path), path)
	if err != nil {
		rt.metrics.RecordAnalyzeRun(rt.service, "error", "", 0, time.Since(start))
		writeDomainError(w, err)
		return
	}
	rt.store.Put(*doc)
	rt.metrics.RecordAnalyzeRun(rt.service, "ok", doc.DocType, doc.Pages, time.Since(start))

	writeJSON(w, http.StatusOK, doc)
}

func (rt *Router) query(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req struct {
		FileID   string `json:"file_id"`
		Question string `json:"question"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		writeError(w, http.StatusBadRequest, "question is required")
		return
	}

	doc, ok := rt.store.Get(req.FileID)
	if !ok {
		writeError(w, http.StatusBadRequest, "analyze the document first")
		return
	}

	answer, err := rt.qaUC.Ask(r.Context(), doc.Text, req.Question, doc.DocType)
	if err != nil {
		rt.metrics.RecordQueryRequest(rt.service, "error")
		writeDomainError(w, err)
		return
	}
	rt.metrics.RecordQueryRequest(rt.service, "ok")

	writeJSON(w, http.StatusOK, answer)
}

func (rt *Router) summarize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req struct {
		FileID      string `json:"file_id"`
		SummaryType string `json:"summary_type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	doc, ok := rt.store.Get(req.FileID)
	if !ok {
		writeError(w, http.StatusBadRequest, "analyze the document first")
		return
	}

	summaryType := domain.ParseSummaryType(req.SummaryType)
	summary, err := rt.summarizeUC.Summarize(r.Context(), doc.Text, summaryType, doc.DocType)
	if err != nil {
		rt.metrics.RecordSummaryRequest(rt.service, string(summaryType), "error")
		writeDomainError(w, err)
		return
	}
	rt.metrics.RecordSummaryRequest(rt.service, string(summaryType), "ok")

	writeJSON(w, http.StatusOK, map[string]string{
		"summary_type": string(summaryType),
		"summary":      summary,
	})
}

func (rt *Router) cleanup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req struct {
		Hours int `json:"hours"`
	}
	// An empty body means the default retention window.
	_ = json.NewDecoder(r.Body).Decode(&req)
	if req.Hours <= 0 {
		req.Hours = defaultCleanupHours
	}

	removed := rt.store.EvictOlderThan(time.Duration(req.Hours) * time.Hour)
	for _, doc := range removed {
		if doc.Path == "" {
			continue
		}
		_ = rt.files.Remove(r.Context(), doc.Path)
	}
	rt.metrics.RecordCleanup(rt.service, len(removed))

	writeJSON(w, http.StatusOK, map[string]int{"removed": len(removed)})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
