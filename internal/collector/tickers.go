package collector

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrNoTickers is returned when neither the file nor the fallback yields a symbol.
var ErrNoTickers = errors.New("no tickers to scan")

// LoadTickers reads the Ticker column of a CSV file. When path is empty the
// fallback list is used. Blank entries are dropped and duplicates removed,
// keeping first-seen order.
func LoadTickers(path string, fallback []string) ([]string, error) {
	if path == "" {
		return NormalizeTickers(fallback)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ticker file: %w", err)
	}
	defer f.Close()
	return ParseTickers(f)
}

// ParseTickers reads a CSV with a header row containing a "Ticker" column.
func ParseTickers(r io.Reader) ([]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read ticker header: %w", err)
	}
	col := -1
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")), "ticker") {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, errors.New("ticker file has no Ticker column")
	}

	var raw []string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read ticker row: %w", err)
		}
		if col < len(rec) {
			raw = append(raw, rec[col])
		}
	}
	return NormalizeTickers(raw)
}

// NormalizeTickers upper-cases symbols, drops blanks and removes duplicates.
func NormalizeTickers(in []string) ([]string, error) {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, t := range in {
		t = strings.ToUpper(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	if len(out) == 0 {
		return nil, ErrNoTickers
	}
	return out, nil
}
