package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"guestbook/internal/guestbook"
	"guestbook/internal/shared"

	"go.uber.org/zap"
)

const maxBodyBytes = 2 << 20

type API struct {
	Service *guestbook.Service
	Metrics *Metrics
	Log     *zap.Logger
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, shared.ErrorResponse{Error: msg})
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	defer r.Body.Close()
	return io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
}

func (a *API) ListEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := a.Service.ListEntries(r.Context())
	if err != nil {
		a.Log.Error("list entries failed", zap.String("request_id", RequestIDFrom(r.Context())), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "storage error")
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (a *API) CreateEntry(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		writeError(w, http.StatusBadRequest, "bad body")
		return
	}

	var req shared.CreateEntryRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}

	entry, err := a.Service.CreateEntry(r.Context(), req.Name, req.Message)
	if err != nil {
		var ve *guestbook.ValidationError
		if errors.As(err, &ve) {
			a.Metrics.validationFailures.Inc()
			writeError(w, http.StatusBadRequest, "Message is required")
			return
		}
		a.Log.Error("create entry failed", zap.String("request_id", RequestIDFrom(r.Context())), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "storage error")
		return
	}

	a.Metrics.entriesCreated.Inc()
	writeJSON(w, http.StatusCreated, entry)
}

func (a *API) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, shared.HealthResponse{Status: "ok"})
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}
