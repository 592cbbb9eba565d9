package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// CSVHeader is the first row of every export.
var CSVHeader = []string{"Index", "ISBN", "Title", "Authors", "Publisher", "Likes", "ReviewCount"}

// WriteCSV writes books as CRLF-terminated CSV with a header row.
func WriteCSV(w io.Writer, books []Book) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, b := range books {
		row := []string{
			strconv.Itoa(b.Index),
			b.ISBN,
			b.Title,
			strings.Join(b.Authors, ", "),
			b.Publisher,
			strconv.Itoa(b.Likes),
			strconv.Itoa(len(b.Reviews)),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row %d: %w", b.Index, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
