package cashflow

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/google/renameio/v2"
	"github.com/google/uuid"
)

// Upload records a file imported into the store.
type Upload struct {
	ID           string    `json:"id"`
	Filename     string    `json:"filename"`
	Bank         string    `json:"bank"`
	Transactions int       `json:"transactions"`
	Currency     string    `json:"currency"`
	UploadedAt   time.Time `json:"uploaded_at"`
	Source       string    `json:"source"`
}

// History lists the imported files.
type History struct {
	Files []Upload `json:"files"`
}

// TotalTransactions sums the transactions of every file.
func (h History) TotalTransactions() int {
	n := 0
	for _, f := range h.Files {
		n += f.Transactions
	}
	return n
}

// History reads the upload history. A missing or unreadable file is an empty history.
func (s *Store) History() History {
	h := History{Files: []Upload{}}
	content, err := os.ReadFile(s.HistoryPath())
	if errors.Is(err, fs.ErrNotExist) {
		return h
	}
	if err != nil {
		s.log.Warn().Err(err).Msg("cannot read upload history")
		return h
	}
	if err := json.Unmarshal(content, &h); err != nil {
		s.log.Warn().Err(err).Msg("invalid upload history, starting a new one")
		return History{Files: []Upload{}}
	}
	if h.Files == nil {
		h.Files = []Upload{}
	}
	return h
}

// Record adds an import to the history. A file already recorded under the same
// name has its transaction count and timestamp updated instead.
func (s *Store) Record(filename, bank string, transactions int, currency, source string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	h := s.History()
	now := s.now()
	found := false
	for i := range h.Files {
		if h.Files[i].Filename == filename {
			h.Files[i].Transactions = transactions
			h.Files[i].UploadedAt = now
			found = true
			break
		}
	}
	if !found {
		h.Files = append(h.Files, Upload{
			ID:           uuid.NewString(),
			Filename:     filename,
			Bank:         bank,
			Transactions: transactions,
			Currency:     currency,
			UploadedAt:   now,
			Source:       source,
		})
	}

	content, err := json.MarshalIndent(h, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	return renameio.WriteFile(s.HistoryPath(), content, 0o644)
}
