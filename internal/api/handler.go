// Package api exposes the ingestion, classification, and summary
// operations over HTTP. Handlers are thin: all semantics live in the
// core packages behind small provider interfaces.
package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/ledgerline-dev/ledgerline/internal/model"
	"github.com/ledgerline-dev/ledgerline/internal/report"
	"github.com/ledgerline-dev/ledgerline/internal/store"
)

// Ingestor runs the CSV import pipeline.
type Ingestor interface {
	Ingest(ctx context.Context, r io.Reader, sourceName string) (*model.ProcessingLog, error)
}

// Classifier classifies pending transactions.
type Classifier interface {
	ClassifyPending(ctx context.Context) (*model.ProcessingLog, error)
}

// Handler serves the JSON API.
type Handler struct {
	store      store.Store
	ingestor   Ingestor
	classifier Classifier
}

// NewHandler creates a Handler.
func NewHandler(st store.Store, ing Ingestor, cl Classifier) *Handler {
	return &Handler{store: st, ingestor: ing, classifier: cl}
}

// Routes returns the API route table.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/summary", h.HandleSummary)
	mux.HandleFunc("POST /api/process", h.HandleProcess)
	mux.HandleFunc("POST /api/classify", h.HandleClassify)
	mux.HandleFunc("GET /api/transactions/unclassified", h.HandleUnclassified)
	mux.HandleFunc("GET /api/logs", h.HandleLogs)
	return mux
}

type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// HandleSummary returns overall, per-company, and per-category totals.
func (h *Handler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := report.Build(r.Context(), h.store)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, envelope{Message: "failed to build summary"})
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: summary})
}

// HandleProcess ingests a CSV export. The body is either a multipart
// upload with a "file" field or a raw CSV payload.
func (h *Handler) HandleProcess(w http.ResponseWriter, r *http.Request) {
	var src io.Reader = r.Body
	sourceName := "api_data.csv"

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		mf, header, err := r.FormFile("file")
		if err != nil {
			writeJSON(w, http.StatusBadRequest, envelope{Message: "missing file field"})
			return
		}
		defer mf.Close()
		src = mf
		sourceName = header.Filename
	}

	runLog, err := h.ingestor.Ingest(r.Context(), src, sourceName)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, envelope{Message: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Data:    runLog,
		Message: "import complete: " + runLog.Report(),
	})
}

// HandleClassify classifies all pending transactions.
func (h *Handler) HandleClassify(w http.ResponseWriter, r *http.Request) {
	runLog, err := h.classifier.ClassifyPending(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, envelope{Message: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Data:    runLog,
		Message: "classification complete: " + runLog.Report(),
	})
}

// HandleUnclassified lists transactions no rule has matched yet.
func (h *Handler) HandleUnclassified(w http.ResponseWriter, r *http.Request) {
	txns, err := h.store.UnclassifiedTransactions(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, envelope{Message: "failed to fetch transactions"})
		return
	}
	if txns == nil {
		txns = []model.Transaction{}
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: txns})
}

// HandleLogs lists processing logs, newest first.
func (h *Handler) HandleLogs(w http.ResponseWriter, r *http.Request) {
	logs, err := h.store.ProcessingLogs(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, envelope{Message: "failed to fetch logs"})
		return
	}
	if logs == nil {
		logs = []model.ProcessingLog{}
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: logs})
}
