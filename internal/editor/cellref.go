package editor

import (
	"fmt"
	"strconv"
	"strings"
)

// ColumnName converts a zero-based map column to letters: 0 is "A", 25 is
// "Z", 26 is "AA".
func ColumnName(n int) string {
	if n < 0 {
		return "?"
	}
	var b []byte
	for n >= 0 {
		b = append([]byte{byte('A' + n%26)}, b...)
		n = n/26 - 1
	}
	return string(b)
}

// ColumnIndex is the inverse of ColumnName. It is case-insensitive.
func ColumnIndex(s string) (int, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return -1, fmt.Errorf("empty column")
	}
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < 'A' || c > 'Z' {
			return -1, fmt.Errorf("invalid column letter %q", c)
		}
		n = n*26 + int(c-'A') + 1
	}
	return n - 1, nil
}

// CellName names a map cell the way the status bar shows it, e.g. "C4"
// for column 2, row 3.
func CellName(col, row int) string {
	return ColumnName(col) + strconv.Itoa(row+1)
}

// ParseCell parses a cell name like "C4" or "ab12" into zero-based column
// and row.
func ParseCell(s string) (col, row int, err error) {
	s = strings.TrimSpace(s)
	i := 0
	for i < len(s) && ((s[i] >= 'A' && s[i] <= 'Z') || (s[i] >= 'a' && s[i] <= 'z')) {
		i++
	}
	if i == 0 {
		return -1, -1, fmt.Errorf("cell %q: missing column letters", s)
	}
	if i == len(s) {
		return -1, -1, fmt.Errorf("cell %q: missing row number", s)
	}
	col, err = ColumnIndex(s[:i])
	if err != nil {
		return -1, -1, fmt.Errorf("cell %q: %w", s, err)
	}
	n, err := strconv.Atoi(strings.TrimSpace(s[i:]))
	if err != nil || n < 1 {
		return -1, -1, fmt.Errorf("cell %q: invalid row number", s)
	}
	return col, n - 1, nil
}
