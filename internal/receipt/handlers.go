package receipt

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/zombor/invoice-ocr/internal/scanning"
)

// maxUploadSize allows high-resolution phone photos
const maxUploadSize = int64(50 << 20)

// setCORSHeaders sets CORS headers on a response
func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
	w.Header().Set("Access-Control-Max-Age", "3600")
}

// writeJSON writes v as a JSON response with the given status
func writeJSON(w http.ResponseWriter, status int, v any) {
	setCORSHeaders(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// writeError writes the failure payload
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, Failure{Success: false, Error: message})
}

// writeProcessError maps a processing error to its response
func writeProcessError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNoTextDetected):
		// Not an HTTP error: the request was fine, the document was blank
		writeJSON(w, http.StatusOK, Failure{Success: false, Message: "No text detected"})
	case errors.Is(err, ErrUnsupportedFileType):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, scanning.ErrDecode):
		writeError(w, http.StatusBadRequest, scanning.ErrDecode.Error())
	case errors.Is(err, ErrFetchFailed):
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "Error processing document")
	}
}

// handleHealth reports that the service is up and which engine it runs
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "running",
		"engine": s.service.EngineName(),
	})
}

// handleExtract processes an uploaded image
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		slog.Error("Error parsing multipart form", "error", err)
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "File is too large. Maximum size is 50MB.")
			return
		}
		writeError(w, http.StatusBadRequest, "Error parsing form")
		return
	}

	f, header, err := r.FormFile("file")
	if err != nil {
		slog.Error("Error getting file from form", "error", err)
		writeError(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer f.Close()

	// Reject before reading the body into memory
	if !AllowedFile(header.Filename, s.service.AllowedExtensions()) {
		writeError(w, http.StatusBadRequest, s.service.unsupported(header.Filename).Error())
		return
	}

	data, err := io.ReadAll(f)
	if err != nil {
		slog.Error("Error reading file data", "error", err, "filename", header.Filename)
		writeError(w, http.StatusInternalServerError, "Error reading file")
		return
	}

	resp, err := s.service.ProcessImage(header.Filename, data, header.Header.Get("Content-Type"))
	if err != nil {
		slog.Error("Error processing upload", "filename", header.Filename, "error", err)
		writeProcessError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleExtractURL downloads and processes a remote image
func (s *Server) handleExtractURL(w http.ResponseWriter, r *http.Request) {
	rawURL := r.URL.Query().Get("url")
	if rawURL == "" {
		writeError(w, http.StatusBadRequest, "url query parameter is required")
		return
	}

	resp, err := s.service.ProcessURL(r.Context(), rawURL)
	if err != nil {
		slog.Error("Error processing URL", "url", rawURL, "error", err)
		writeProcessError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleListExtractions returns the extraction history
func (s *Server) handleListExtractions(w http.ResponseWriter, r *http.Request) {
	extractions, err := s.service.ListExtractions()
	if err != nil {
		slog.Error("Error listing extractions", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, extractions)
}

// handleGetExtraction returns a single extraction
func (s *Server) handleGetExtraction(w http.ResponseWriter, r *http.Request) {
	extraction, err := s.service.GetExtraction(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "Extraction not found")
		return
	}
	writeJSON(w, http.StatusOK, extraction)
}

// handleGetExtractionFile returns the stored document of an extraction
func (s *Server) handleGetExtractionFile(w http.ResponseWriter, r *http.Request) {
	data, contentType, err := s.service.GetExtractionFile(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "File not found")
		return
	}

	setCORSHeaders(w)
	w.Header().Set("Content-Type", contentType)
	w.Write(data)
}

// handleDeleteExtraction deletes an extraction
func (s *Server) handleDeleteExtraction(w http.ResponseWriter, r *http.Request) {
	if err := s.service.DeleteExtraction(r.PathValue("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "Extraction not found")
			return
		}
		slog.Error("Error deleting extraction", "error", err)
		writeError(w, http.StatusInternalServerError, "Error deleting extraction")
		return
	}

	setCORSHeaders(w)
	w.WriteHeader(http.StatusNoContent)
}
