package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/etnz/cashflow"
	"github.com/etnz/cashflow/date"
	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
)

func tx(day, merchant, category string, v float64) cashflow.Transaction {
	m := cashflow.M(v, cashflow.ReportingCurrency)
	return cashflow.Transaction{
		Date:     date.MustParse(day),
		Bank:     "Monzo",
		Type:     "Card payment",
		Merchant: merchant,
		Category: category,
		Amount:   m,
		Original: m,
		Income:   v > 0,
	}
}

// newServer returns a server over a store holding txs.
func newServer(t *testing.T, txs cashflow.Transactions) (*Server, *cashflow.Store) {
	t.Helper()
	store := cashflow.NewStore(t.TempDir(), zerolog.Nop())
	if len(txs) > 0 {
		if err := store.Save(txs); err != nil {
			t.Fatalf("Save() unexpected error: %v", err)
		}
	}
	return New(store, zerolog.Nop(), Options{}), store
}

func sample() cashflow.Transactions {
	return cashflow.Transactions{
		tx("2025-01-05", "Tesco", "groceries", -40),
		tx("2025-01-28", "ACME Ltd", "Income", 2000),
		tx("2025-02-03", "Tesco", "groceries", -60),
		tx("2025-02-14", "Odeon", "entertainment", -25),
		tx("2025-04-01", "Pret", "eating_out", -50),
	}
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
	}
}

func TestAPI_NoData(t *testing.T) {
	s, _ := newServer(t, nil)
	for _, target := range []string{"/api/summary", "/api/monthly", "/api/categories", "/api/merchants", "/api/trends", "/api/category/groceries/monthly"} {
		rec := get(t, s, target)
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s status = %d, want %d", target, rec.Code, http.StatusOK)
		}
		var body errorBody
		decode(t, rec, &body)
		if body.Error != "No data loaded" {
			t.Errorf("GET %s error = %q, want %q", target, body.Error, "No data loaded")
		}
	}
}

func TestAPI_Summary(t *testing.T) {
	s, _ := newServer(t, sample())
	rec := get(t, s, "/api/summary")
	var got map[string]any
	decode(t, rec, &got)
	want := map[string]any{
		"total_spending":    175.0,
		"total_income":      2000.0,
		"net_cash_flow":     1825.0,
		"spending_count":    4.0,
		"income_count":      1.0,
		"average_spending":  43.75,
		"average_income":    2000.0,
		"date_from":         "2025-01-05",
		"date_to":           "2025-04-01",
		"transaction_count": 5.0,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("GET /api/summary mismatch (-want +got):\n%s", diff)
	}
}

func TestAPI_Periods(t *testing.T) {
	s, _ := newServer(t, sample())
	tests := []struct {
		target string
		key    string
		want   []any
	}{
		{"/api/monthly", "month", []any{"2025-01", "2025-02", "2025-04"}},
		{"/api/quarterly", "quarter", []any{"2025-Q1", "2025-Q2"}},
		{"/api/yearly", "year", []any{2025.0}},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			var rows []map[string]any
			decode(t, get(t, s, tt.target), &rows)
			var got []any
			for _, r := range rows {
				got = append(got, r[tt.key])
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("GET %s %s mismatch (-want +got):\n%s", tt.target, tt.key, diff)
			}
		})
	}
}

func TestAPI_CategoryDetail(t *testing.T) {
	s, _ := newServer(t, sample())

	var report struct {
		ChartData []struct {
			Period string  `json:"period"`
			Amount float64 `json:"amount"`
		} `json:"chart_data"`
		Total float64 `json:"total"`
		Count int     `json:"count"`
	}
	decode(t, get(t, s, "/api/category/Groceries/monthly"), &report)
	if report.Count != 2 || report.Total != 100 {
		t.Errorf("groceries count, total = %d, %v, want 2, 100", report.Count, report.Total)
	}
	if len(report.ChartData) != 2 || report.ChartData[1].Period != "2025-02" || report.ChartData[1].Amount != 60 {
		t.Errorf("groceries chart data = %+v", report.ChartData)
	}

	var body errorBody
	decode(t, get(t, s, "/api/category/travel/monthly"), &body)
	if body.Error != `Category "travel" not found` {
		t.Errorf("unknown category error = %q", body.Error)
	}
	decode(t, get(t, s, "/api/category/groceries/hourly"), &body)
	if !strings.HasPrefix(body.Error, "Invalid period") {
		t.Errorf("invalid period error = %q", body.Error)
	}
}

func TestAPI_Trends(t *testing.T) {
	s, _ := newServer(t, sample())
	var got struct {
		Labels   []string `json:"labels"`
		Datasets []struct {
			Label string    `json:"label"`
			Data  []float64 `json:"data"`
			Fill  bool      `json:"fill"`
		} `json:"datasets"`
	}
	decode(t, get(t, s, "/api/trends"), &got)
	if diff := cmp.Diff([]string{"2025-01", "2025-02", "2025-04"}, got.Labels); diff != "" {
		t.Errorf("labels mismatch (-want +got):\n%s", diff)
	}
	if len(got.Datasets) != 3 {
		t.Fatalf("got %d datasets, want 3", len(got.Datasets))
	}
	if g := got.Datasets[2]; g.Label != "groceries" || !cmp.Equal(g.Data, []float64{40, 60, 0}) {
		t.Errorf("groceries dataset = %+v", g)
	}
}

func TestAPI_Charts(t *testing.T) {
	s, _ := newServer(t, sample())
	var c struct {
		Type string `json:"type"`
	}
	decode(t, get(t, s, "/api/charts/cash_flow_trend"), &c)
	if c.Type != "line" {
		t.Errorf("cash_flow_trend type = %q, want line", c.Type)
	}
	if rec := get(t, s, "/api/charts/pie"); rec.Code != http.StatusNotFound {
		t.Errorf("GET /api/charts/pie status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	if rec := get(t, s, "/charts/pie.png"); rec.Code != http.StatusNotFound {
		t.Errorf("GET /charts/pie.png status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

const monzoCSV = `Transaction ID,Date,Time,Type,Name,Emoji,Category,Amount,Currency,Money Out,Money In
tx_1,05/03/2025,08:15:00,Card payment,Tesco,,groceries,-12.50,GBP,-12.50,
tx_2,06/03/2025,12:00:00,Faster payment,ACME Ltd,,income,1500.00,GBP,,1500.00
`

func upload(t *testing.T, h http.Handler, field, filename, content string) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if field != "" {
		fw, err := mw.CreateFormFile(field, filename)
		if err != nil {
			t.Fatal(err)
		}
		fw.Write([]byte(content))
	}
	mw.Close()
	req := httptest.NewRequest(http.MethodPost, "/api/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestUpload(t *testing.T) {
	s, store := newServer(t, sample())
	rec := upload(t, s, "file", "monzo.csv", monzoCSV)
	if rec.Code != http.StatusOK {
		t.Fatalf("upload status = %d, body %s", rec.Code, rec.Body)
	}
	var got uploadResult
	decode(t, rec, &got)
	want := uploadResult{Success: true, Message: "Added 2 transactions", Total: 7, Bank: "Monzo"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("upload result mismatch (-want +got):\n%s", diff)
	}

	// Uploading the same file again adds no transaction but updates its history entry.
	decode(t, upload(t, s, "file", "monzo.csv", monzoCSV), &got)
	if got.Total != 7 {
		t.Errorf("second upload total = %d, want 7", got.Total)
	}
	h := store.History()
	if len(h.Files) != 1 || h.Files[0].Filename != "monzo.csv" || h.Files[0].Source != "upload" {
		t.Errorf("history = %+v, want a single monzo.csv upload", h.Files)
	}

	var hist uploadHistory
	decode(t, get(t, s, "/api/upload-history"), &hist)
	if hist.TotalFiles != 1 || hist.TotalTransactions != 2 {
		t.Errorf("upload history totals = %d files, %d transactions, want 1, 2", hist.TotalFiles, hist.TotalTransactions)
	}
}

func TestUpload_Rejected(t *testing.T) {
	s, _ := newServer(t, nil)
	tests := []struct {
		name, field, filename, content string
		want                           string
	}{
		{"no file", "", "", "", "No file uploaded"},
		{"unsupported", "file", "notes.txt", "hello", "Unsupported file format. Use CSV or Excel."},
		{"empty", "file", "empty.csv", "Date,Amount\n", "No valid data found in file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := upload(t, s, tt.field, tt.filename, tt.content)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
			var body errorBody
			decode(t, rec, &body)
			if body.Error != tt.want {
				t.Errorf("error = %q, want %q", body.Error, tt.want)
			}
		})
	}
}

func TestPages(t *testing.T) {
	s, _ := newServer(t, sample())
	tests := []struct {
		target string
		want   string
	}{
		{"/", `id="monthly_spending_income"`},
		{"/", "£2,000.00"},
		{"/category/groceries", "2 transactions"},
		{"/trends", "2025-04"},
		{"/upload", "No file imported yet."},
		{"/report", "<h2>Spending Trends</h2>"},
		{"/report", "<table>"},
	}
	for _, tt := range tests {
		rec := get(t, s, tt.target)
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s status = %d, want %d", tt.target, rec.Code, http.StatusOK)
			continue
		}
		if !strings.Contains(rec.Body.String(), tt.want) {
			t.Errorf("GET %s does not contain %q", tt.target, tt.want)
		}
	}
}

func TestPages_NoData(t *testing.T) {
	s, _ := newServer(t, nil)
	for _, target := range []string{"/", "/trends", "/report", "/category/groceries"} {
		rec := get(t, s, target)
		if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "No data loaded") {
			t.Errorf("GET %s = %d, want a no data page", target, rec.Code)
		}
	}
}

func TestMiddleware(t *testing.T) {
	s, _ := newServer(t, sample())
	rec := get(t, s, "/api/summary")
	if rec.Header().Get(HeaderRequestID) == "" {
		t.Errorf("response has no %s header", HeaderRequestID)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/summary", nil)
	req.Header.Set(HeaderRequestID, "abc")
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if got := rec.Header().Get(HeaderRequestID); got != "abc" {
		t.Errorf("request id = %q, want the received one", got)
	}

	metrics := get(t, s, "/metrics").Body.String()
	if !strings.Contains(metrics, `cashflow_http_requests_total{method="GET",route="/api/summary",status="200"} 2`) {
		t.Errorf("metrics do not count /api/summary requests:\n%s", metrics)
	}
}
