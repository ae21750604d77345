package color

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gocarina/gocsv"
)

// ReadCSV parses a "name,hex" table. Names are lowercased and trimmed; row
// order becomes match order.
func ReadCSV(r io.Reader) (*Table, error) {
	var rows []Entry
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("parse color csv: %w", err)
	}
	for i := range rows {
		rows[i].Name = strings.ToLower(strings.TrimSpace(rows[i].Name))
		rows[i].Hex = strings.TrimSpace(rows[i].Hex)
	}
	return NewTable(rows)
}

// LoadCSV reads a table from path.
func LoadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open color table %s: %w", path, err)
	}
	defer f.Close()

	t, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// WriteCSV writes the table with a header row, in match order.
func (t *Table) WriteCSV(w io.Writer) error {
	entries := t.Entries()
	if err := gocsv.Marshal(&entries, w); err != nil {
		return fmt.Errorf("write color csv: %w", err)
	}
	return nil
}
