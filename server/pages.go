package server

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/etnz/cashflow"
	"github.com/etnz/cashflow/chart"
	"github.com/etnz/cashflow/dashboard"
	"github.com/etnz/cashflow/date"
	"github.com/etnz/cashflow/renderer"
	"github.com/go-chi/chi/v5"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

//go:embed templates/*.html
var templatesFS embed.FS

// pages are parsed once, each page with the layout.
var pages = func() map[string]*template.Template {
	res := make(map[string]*template.Template)
	for _, name := range []string{"dashboard", "category", "upload", "trends", "report"} {
		res[name] = template.Must(template.New("layout.html").Funcs(template.FuncMap{
			"title":   cashflow.DisplayName,
			"percent": percent,
		}).ParseFS(templatesFS, "templates/layout.html", "templates/"+name+".html"))
	}
	return res
}()

// percent formats an optional percentage, nil is blank.
func percent(p *float64) string {
	if p == nil {
		return ""
	}
	return fmt.Sprintf("%+.1f%%", *p)
}

// markdown converts reports to html, with tables.
var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

type page struct {
	Title   string
	HasData bool
	Charts  []template.HTML
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	var buf bytes.Buffer
	if err := pages[name].Execute(&buf, data); err != nil {
		requestLogger(r).Error().Err(err).Str("page", name).Msg("cannot render page")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

// charts renders charts for the browser. A chart that fails is logged and skipped.
func (s *Server) charts(r *http.Request, list ...*chart.Chart) []template.HTML {
	h := chart.HTML{Currency: s.opts.Theme.Currency}
	var res []template.HTML
	for _, c := range list {
		var buf bytes.Buffer
		if err := h.Render(&buf, c); err != nil {
			requestLogger(r).Warn().Err(err).Str("chart", c.Target).Msg("cannot render chart")
			continue
		}
		res = append(res, template.HTML(buf.String()))
	}
	return res
}

// pageAnalysis is like analysis but reports an empty store as a page without data.
func (s *Server) pageAnalysis(w http.ResponseWriter, r *http.Request) (*cashflow.Analysis, bool) {
	a, err := s.analysis()
	if errors.Is(err, cashflow.ErrNoData) {
		return nil, true
	}
	if err != nil {
		requestLogger(r).Error().Err(err).Msg("cannot load transactions")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return nil, false
	}
	return a, true
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	a, ok := s.pageAnalysis(w, r)
	if !ok {
		return
	}
	data := struct {
		page
		Overview   cashflow.OverviewSummary
		Categories []cashflow.CategoryTotal
		Merchants  []cashflow.MerchantTotal
	}{page: page{Title: "Dashboard"}}
	if a != nil {
		d := dashboard.New(a, s.opts.Theme)
		data.HasData = true
		data.Overview = a.Overview
		data.Categories = a.Categories
		data.Merchants = a.Merchants
		data.Charts = s.charts(r, d.MonthlySpendingIncome(), d.CategoryBreakdown(), d.CashFlowTrend(), d.TopMerchants())
	}
	s.render(w, r, "dashboard", data)
}

func (s *Server) handleCategoryPage(w http.ResponseWriter, r *http.Request) {
	a, ok := s.pageAnalysis(w, r)
	if !ok {
		return
	}
	period := date.Monthly
	if q := r.URL.Query().Get("period"); q != "" {
		p, err := date.ParsePeriod(q)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		period = p
	}
	data := struct {
		page
		Name    string
		Period  date.Period
		Periods []date.Period
		Report  cashflow.CategoryReport
	}{
		page:    page{Title: cashflow.DisplayName(chi.URLParam(r, "name"))},
		Name:    chi.URLParam(r, "name"),
		Period:  period,
		Periods: []date.Period{date.Daily, date.Weekly, date.Monthly, date.Quarterly, date.Yearly},
	}
	if a != nil {
		report, err := cashflow.CategoryDetail(a.Transactions, data.Name, period)
		if errors.Is(err, cashflow.ErrUnknownCategory) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		labels := make([]string, len(report.Periods))
		values := make([]float64, len(report.Periods))
		for i, p := range report.Periods {
			labels[i], values[i] = p.Period, p.Amount.Float()
		}
		data.HasData = true
		data.Report = report
		data.Charts = s.charts(r, s.opts.Theme.Bar("category_chart", labels, []chart.Dataset{
			{Label: data.Title, Data: values},
		}))
	}
	s.render(w, r, "category", data)
}

func (s *Server) handleUploadPage(w http.ResponseWriter, r *http.Request) {
	data := struct {
		page
		History cashflow.History
	}{page: page{Title: "Upload"}, History: s.store.History()}
	s.render(w, r, "upload", data)
}

func (s *Server) handleTrendsPage(w http.ResponseWriter, r *http.Request) {
	a, ok := s.pageAnalysis(w, r)
	if !ok {
		return
	}
	data := struct {
		page
		Trends []cashflow.TrendPoint
	}{page: page{Title: "Trends"}}
	if a != nil {
		d := dashboard.New(a, s.opts.Theme)
		data.HasData = true
		data.Trends = a.Trends
		data.Charts = s.charts(r, d.CategoryTrends(), d.QuarterlyComparison())
	}
	s.render(w, r, "trends", data)
}

// handleReport serves the markdown reports as html.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	a, ok := s.pageAnalysis(w, r)
	if !ok {
		return
	}
	data := struct {
		page
		Body template.HTML
	}{page: page{Title: "Report"}}
	if a != nil {
		var buf bytes.Buffer
		src := renderer.Report(a) + "\n" + renderer.AdvancedReport(a)
		if err := markdown.Convert([]byte(src), &buf); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		data.HasData = true
		data.Body = template.HTML(buf.String())
	}
	s.render(w, r, "report", data)
}
