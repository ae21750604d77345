package color

import (
	"fmt"
	"regexp"
)

// Entry pairs a lowercase Spanish colour name with its #RRGGBB code.
type Entry struct {
	Name string `csv:"name"`
	Hex  string `csv:"hex"`
}

var hexCodePattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// IsHexCode reports whether s is exactly a #RRGGBB code.
func IsHexCode(s string) bool {
	return hexCodePattern.MatchString(s)
}

// defaultEntries is the reference table. Order is significant: the first
// name contained in an utterance wins, so "naranja" shadows "anaranjado" and
// "verde" shadows every "verde ..." compound.
var defaultEntries = []Entry{
	{"rojo", "#FF0000"},
	{"celeste", "#80BFFF"},
	{"verde", "#008000"},
	{"azul", "#0000FF"},
	{"negro", "#000000"},
	{"blanco", "#FFFFFF"},
	{"naranja", "#FFA500"},
	{"morado", "#6F00FF"},
	{"lila", "#6F00FF"},
	{"purpura", "#800080"},
	{"marron", "#800000"},
	{"fucsia", "#FF00FF"},
	{"lima", "#00FF00"},
	{"plomo", "#555555"},
	{"plateado", "#C0C0C0"},
	{"amarillo", "#FFFF00"},
	{"gris", "#808080"},
	{"turquesa", "#40E0D0"},
	{"rosa", "#FFC0CB"},
	{"vino", "#8B0000"},
	{"coral", "#FF7F50"},
	{"dorado", "#FFD700"},
	{"esmeralda", "#50C878"},
	{"lavanda", "#E6E6FA"},
	{"oliva", "#808000"},
	{"salmon", "#FA8072"},
	{"cian", "#00FFFF"},
	{"beige", "#F5F5DC"},
	{"crema", "#FFFDD0"},
	{"chocolate", "#D2691E"},
	{"menta", "#98FF98"},
	{"marfil", "#FFFFF0"},
	{"caramelo", "#A0522D"},
	{"azul marino", "#000080"},
	{"verde esmeralda", "#50C878"},
	{"verde oliva", "#6B8E23"},
	{"rojo oscuro", "#8B0000"},
	{"anaranjado", "#FF4500"},
	{"violeta", "#8A2BE2"},
	{"verde limón", "#ADFF2F"},
}

// Default is the built-in table, constructed once at init.
var Default = MustTable(defaultEntries)

// Table is an immutable, ordered colour table.
type Table struct {
	entries []Entry
	folded  []string
}

// NewTable validates entries and returns a table preserving their order.
func NewTable(entries []Entry) (*Table, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("color table is empty")
	}

	t := &Table{
		entries: make([]Entry, len(entries)),
		folded:  make([]string, len(entries)),
	}
	for i, e := range entries {
		if e.Name == "" {
			return nil, fmt.Errorf("entry %d: empty name", i+1)
		}
		if !IsHexCode(e.Hex) {
			return nil, fmt.Errorf("entry %d (%s): invalid hex code %q", i+1, e.Name, e.Hex)
		}
		t.entries[i] = e
		t.folded[i] = fold(e.Name)
	}
	return t, nil
}

// MustTable is NewTable for tables known to be valid.
func MustTable(entries []Entry) *Table {
	t, err := NewTable(entries)
	if err != nil {
		panic(fmt.Sprintf("invalid color table: %v", err))
	}
	return t
}

// Entries returns a copy of the table in match order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.entries)
}
