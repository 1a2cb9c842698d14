package xlsx

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseCellRef parses a cell reference like "A1" or "AA100" into
// 0-indexed column and row numbers.
func ParseCellRef(ref string) (col, row int, err error) {
	if ref == "" {
		return 0, 0, fmt.Errorf("empty cell reference")
	}

	i := 0
	for i < len(ref) && isLetter(ref[i]) {
		i++
	}
	if i == 0 {
		return 0, 0, fmt.Errorf("invalid cell reference %q: no column letters", ref)
	}
	if i == len(ref) {
		return 0, 0, fmt.Errorf("invalid cell reference %q: no row number", ref)
	}

	col = ColumnIndex(ref[:i])
	if col < 0 {
		return 0, 0, fmt.Errorf("invalid column in %q", ref)
	}

	rowNum, err := strconv.Atoi(ref[i:])
	if err != nil || rowNum < 1 {
		return 0, 0, fmt.Errorf("invalid row in %q", ref)
	}
	return col, rowNum - 1, nil
}

// ColumnIndex converts a column label to a 0-indexed column number.
// A=0, B=1, ..., Z=25, AA=26, AB=27. Returns -1 for labels containing
// anything but letters.
func ColumnIndex(label string) int {
	label = strings.ToUpper(label)
	result := 0
	for _, c := range label {
		if c < 'A' || c > 'Z' {
			return -1
		}
		result = result*26 + int(c-'A') + 1
	}
	return result - 1
}

// ColumnLabel converts a 0-indexed column number to its letter label.
// 0=A, 1=B, ..., 25=Z, 26=AA, 27=AB.
func ColumnLabel(index int) string {
	if index < 0 {
		return ""
	}

	result := ""
	index++
	for index > 0 {
		index--
		result = string(rune('A'+index%26)) + result
		index /= 26
	}
	return result
}

// CellRef builds a cell reference string from 0-indexed coordinates.
func CellRef(col, row int) string {
	return fmt.Sprintf("%s%d", ColumnLabel(col), row+1)
}

func isLetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}
