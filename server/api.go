package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path"

	"github.com/etnz/cashflow"
	"github.com/etnz/cashflow/chart"
	"github.com/etnz/cashflow/dashboard"
	"github.com/etnz/cashflow/date"
	"github.com/go-chi/chi/v5"
)

// errorBody is the json body of every error.
type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(b)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorBody{Error: msg})
}

// withAnalysis calls f with the analysis of the stored transactions. Without
// transactions, the api answers an error body with a 200 status.
func (s *Server) withAnalysis(w http.ResponseWriter, r *http.Request, f func(*cashflow.Analysis)) {
	a, err := s.analysis()
	if errors.Is(err, cashflow.ErrNoData) {
		writeJSON(w, http.StatusOK, errorBody{Error: "No data loaded"})
		return
	}
	if err != nil {
		requestLogger(r).Error().Err(err).Msg("cannot load transactions")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	f(a)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	s.withAnalysis(w, r, func(a *cashflow.Analysis) {
		writeJSON(w, http.StatusOK, a.Overview)
	})
}

// handlePeriods serves /api/monthly and the like: the period is the last path segment.
func (s *Server) handlePeriods(w http.ResponseWriter, r *http.Request) {
	p, err := date.ParsePeriod(path.Base(r.URL.Path))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	s.withAnalysis(w, r, func(a *cashflow.Analysis) {
		writeJSON(w, http.StatusOK, a.Summary(p))
	})
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	s.withAnalysis(w, r, func(a *cashflow.Analysis) {
		writeJSON(w, http.StatusOK, a.Categories)
	})
}

func (s *Server) handleCategoryDetail(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	s.withAnalysis(w, r, func(a *cashflow.Analysis) {
		p, err := date.ParsePeriod(chi.URLParam(r, "period"))
		if err != nil {
			writeJSON(w, http.StatusOK, errorBody{Error: "Invalid period. Use: daily, weekly, monthly, quarterly, yearly"})
			return
		}
		report, err := cashflow.CategoryDetail(a.Transactions, name, p)
		if errors.Is(err, cashflow.ErrUnknownCategory) {
			writeJSON(w, http.StatusOK, errorBody{Error: fmt.Sprintf("Category %q not found", name)})
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, report)
	})
}

func (s *Server) handleMerchants(w http.ResponseWriter, r *http.Request) {
	s.withAnalysis(w, r, func(a *cashflow.Analysis) {
		writeJSON(w, http.StatusOK, a.Merchants)
	})
}

// handleTrends serves the Chart.js data of the top categories monthly spending.
func (s *Server) handleTrends(w http.ResponseWriter, r *http.Request) {
	s.withAnalysis(w, r, func(a *cashflow.Analysis) {
		writeJSON(w, http.StatusOK, dashboard.New(a, s.opts.Theme).CategoryTrends().Data)
	})
}

// handleChart serves the full Chart.js configuration of a dashboard chart.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	s.withAnalysis(w, r, func(a *cashflow.Analysis) {
		c, err := dashboard.New(a, s.opts.Theme).Chart(name)
		if err != nil {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, c)
	})
}

func (s *Server) handleChartPNG(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	a, err := s.analysis()
	if errors.Is(err, cashflow.ErrNoData) {
		http.Error(w, "No data loaded", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	err = dashboard.New(a, s.opts.Theme).WritePNG(&buf, name)
	if errors.Is(err, dashboard.ErrUnknownChart) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if err != nil {
		requestLogger(r).Warn().Err(err).Str("chart", name).Msg("cannot draw chart")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(buf.Bytes())
}

func (s *Server) handleScript(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/javascript")
	w.Write([]byte(chart.Script))
}

type uploadHistory struct {
	Files             []cashflow.Upload `json:"files"`
	TotalFiles        int               `json:"total_files"`
	TotalTransactions int               `json:"total_transactions"`
}

func (s *Server) handleUploadHistory(w http.ResponseWriter, r *http.Request) {
	h := s.store.History()
	writeJSON(w, http.StatusOK, uploadHistory{
		Files:             h.Files,
		TotalFiles:        len(h.Files),
		TotalTransactions: h.TotalTransactions(),
	})
}
