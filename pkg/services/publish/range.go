package publish

import (
	"fmt"
	"strings"
)

// ColumnLetter converts a zero-based column index into spreadsheet letters:
// 0 is A, 25 is Z, 26 is AA, 701 is ZZ.
func ColumnLetter(n int) string {
	var b []byte
	for n >= 0 {
		b = append([]byte{byte('A' + n%26)}, b...)
		n = n/26 - 1
	}
	return string(b)
}

// SheetRange qualifies an A1 range with a quoted sheet title.
func SheetRange(sheet, a1 string) string {
	return fmt.Sprintf("'%s'!%s", strings.ReplaceAll(sheet, "'", "''"), a1)
}

// Span returns "A<fromRow>:<lastCol><toRow>" for a block of columns wide.
func Span(fromRow, toRow, columns int) string {
	return fmt.Sprintf("A%d:%s%d", fromRow, ColumnLetter(columns-1), toRow)
}
