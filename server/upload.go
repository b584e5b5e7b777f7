package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/etnz/cashflow/bank"
)

type uploadResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Total   int    `json:"total"`
	Bank    string `json:"bank"`
}

// handleUpload imports an uploaded bank export into the store.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r)
	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUpload)
	if err := r.ParseMultipartForm(s.opts.MaxUpload); err != nil {
		s.metrics.uploads.WithLabelValues("rejected").Inc()
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("File too large, the limit is %d MiB", s.opts.MaxUpload>>20))
			return
		}
		writeError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		s.metrics.uploads.WithLabelValues("rejected").Inc()
		writeError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()
	if header.Filename == "" {
		s.metrics.uploads.WithLabelValues("rejected").Inc()
		writeError(w, http.StatusBadRequest, "No file selected")
		return
	}

	opts := s.opts.Bank
	opts.Log = *log
	imp, err := bank.Read(header.Filename, file, opts)
	if err != nil {
		s.metrics.uploads.WithLabelValues("rejected").Inc()
		log.Warn().Err(err).Str("filename", header.Filename).Msg("upload rejected")
		switch {
		case errors.Is(err, bank.ErrUnknownFormat):
			writeError(w, http.StatusBadRequest, "Unsupported file format. Use CSV or Excel.")
		case errors.Is(err, bank.ErrPassword):
			writeError(w, http.StatusBadRequest, "This Excel file is password-protected. Please export it as an unencrypted CSV or provide the password via the CLI.")
		case errors.Is(err, bank.ErrNoData):
			writeError(w, http.StatusBadRequest, "No valid data found in file")
		default:
			writeError(w, http.StatusBadRequest, fmt.Sprintf("Failed to read file: %v", err))
		}
		return
	}

	if s.opts.Categorizer != nil {
		s.opts.Categorizer.Categorize(imp.Transactions)
	}
	total, err := s.store.Append(imp.Transactions)
	if err != nil {
		s.metrics.uploads.WithLabelValues("failed").Inc()
		log.Error().Err(err).Msg("cannot save transactions")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := s.store.Record(header.Filename, imp.Bank(), len(imp.Transactions), imp.Currency(), "upload"); err != nil {
		log.Warn().Err(err).Msg("cannot record upload")
	}
	s.metrics.uploads.WithLabelValues("accepted").Inc()
	s.metrics.imported.Add(float64(len(imp.Transactions)))
	log.Info().Str("filename", header.Filename).Str("bank", imp.Bank()).Int("transactions", len(imp.Transactions)).Msg("upload imported")

	writeJSON(w, http.StatusOK, uploadResult{
		Success: true,
		Message: fmt.Sprintf("Added %d transactions", len(imp.Transactions)),
		Total:   total,
		Bank:    imp.Bank(),
	})
}
