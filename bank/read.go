package bank

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// cfbMagic starts compound files: encrypted workbooks and legacy .xls files.
var cfbMagic = []byte{0xd0, 0xcf, 0x11, 0xe0}

// ReadCSV reads a csv export.
func ReadCSV(r io.Reader, opts Options) (Import, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	records, err := cr.ReadAll()
	if err != nil {
		return Import{}, fmt.Errorf("cannot read csv: %w", err)
	}
	if len(records) == 0 {
		return Import{}, ErrNoData
	}
	header := records[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	return Parse(Table{Header: trimAll(header), Rows: records[1:]}, opts)
}

// ReadExcel reads the first sheet of an xlsx export. Encrypted workbooks are
// decrypted with opts.Password, the empty password when none is given.
func ReadExcel(r io.Reader, opts Options) (Import, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return Import{}, err
	}
	encrypted := bytes.HasPrefix(content, cfbMagic)
	xopts := excelize.Options{}
	if encrypted {
		// without a password, the empty one is tried: some banks export
		// workbooks encrypted with it.
		xopts.Password = opts.Password
	}
	f, err := excelize.OpenReader(bytes.NewReader(content), xopts)
	if err != nil {
		if encrypted {
			return Import{}, fmt.Errorf("%w: %v", ErrPassword, err)
		}
		return Import{}, fmt.Errorf("cannot read workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return Import{}, ErrNoData
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return Import{}, fmt.Errorf("cannot read sheet %q: %w", sheets[0], err)
	}
	h := findHeader(rows)
	if h >= len(rows) {
		return Import{}, ErrNoData
	}
	opts.Log.Debug().Str("sheet", sheets[0]).Int("header_row", h).Msg("workbook opened")
	return Parse(Table{Header: trimAll(rows[h]), Rows: rows[h+1:]}, opts)
}

// ReadFile reads an export, csv or xlsx, depending on its extension.
func ReadFile(path string, opts Options) (Import, error) {
	f, err := os.Open(path)
	if err != nil {
		return Import{}, err
	}
	defer f.Close()
	imp, err := Read(path, f, opts)
	if err != nil {
		return Import{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return imp, nil
}

// Read is like ReadFile for content received under filename, e.g. an upload.
func Read(filename string, r io.Reader, opts Options) (Import, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return ReadCSV(r, opts)
	case ".xlsx":
		return ReadExcel(r, opts)
	default:
		return Import{}, fmt.Errorf("%w: %q", ErrUnknownFormat, filename)
	}
}

func trimAll(cells []string) []string {
	res := make([]string, len(cells))
	for i, c := range cells {
		res[i] = strings.TrimSpace(c)
	}
	return res
}
