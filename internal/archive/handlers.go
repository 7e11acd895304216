package archive

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/drios/docscope/internal/document"
)

// maxUploadSize bounds the multipart form (generous for scanned PDFs).
const maxUploadSize = int64(50 << 20)

type uploadResponse struct {
	document.AnalysisOutcome
	Success bool `json:"success"`
}

// uploadError is the declared-failure payload. It deliberately rides a 200:
// the transport worked, the analysis did not, and clients branch on the
// error field.
type uploadError struct {
	Error    string `json:"error"`
	Filename string `json:"filename"`
	Success  bool   `json:"success"`
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "docscope backend ready",
	})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		slog.Error("Error parsing multipart form", "error", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "error parsing form",
		})
		return
	}

	f, header, err := r.FormFile("file")
	if err != nil {
		slog.Error("Error getting file from form", "error", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "no file provided",
		})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		slog.Error("Error reading file data", "error", err, "filename", header.Filename)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "error reading file",
		})
		return
	}

	outcome, err := s.service.ProcessDocument(r.Context(), header.Filename, data)
	if err != nil {
		var declared *AnalysisError
		if errors.As(err, &declared) {
			writeJSON(w, http.StatusOK, uploadError{
				Error:    declared.Message,
				Filename: header.Filename,
			})
			return
		}
		slog.Error("Error processing document", "filename", header.Filename, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "internal server error",
		})
		return
	}

	writeJSON(w, http.StatusOK, uploadResponse{
		AnalysisOutcome: *outcome,
		Success:         true,
	})
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := s.service.ListDocuments()
	if err != nil {
		slog.Error("Error listing documents", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if docs == nil {
		docs = []document.StoredDocument{}
	}
	writeJSON(w, http.StatusOK, map[string][]document.StoredDocument{
		"documents": docs,
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.service.Stats()
	if err != nil {
		slog.Error("Error computing stats", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid document id", http.StatusBadRequest)
		return
	}

	// Deleting an id that is already gone is acknowledged the same way.
	if err := s.service.DeleteDocument(id); err != nil {
		slog.Error("Error deleting document", "id", id, "error", err)
		http.Error(w, "Error deleting document", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}
