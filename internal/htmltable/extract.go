// Package htmltable pulls a reporting date and (name, temperature) rows out of
// a single-table HTML page.
package htmltable

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/i474232898/bathing-water-aggregation/internal/common"
	"github.com/i474232898/bathing-water-aggregation/internal/water"
)

// Row is one body row of the table.
type Row struct {
	Name string
	// Temperature is nil when the last cell holds no number.
	Temperature *float64
}

// Table is the extracted content of the document.
type Table struct {
	// Date is "YYYY-MM-DD", or empty when the header carries no date.
	Date string
	Rows []Row
}

// Extract reads the first table of the document. The reporting date is taken
// from the parenthesized "DD.MM.YYYY" in the last header cell.
func Extract(r io.Reader) (Table, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return Table{}, fmt.Errorf("parse html: %w", err)
	}

	table := doc.Find("table").First()
	if table.Length() == 0 {
		return Table{}, nil
	}

	var out Table
	out.Date = headerDate(strings.TrimSpace(table.Find("thead tr th").Last().Text()))

	table.Find("tbody tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() == 0 {
			return
		}
		entry := Row{Name: strings.TrimSpace(cells.First().Text())}
		if v, ok := common.ParseLeadingFloat(cells.Last().Text()); ok {
			entry.Temperature = &v
		}
		out.Rows = append(out.Rows, entry)
	})

	return out, nil
}

func headerDate(text string) string {
	open := strings.Index(text, "(")
	if open < 0 {
		return ""
	}
	end := strings.Index(text[open:], ")")
	if end < 0 {
		return ""
	}
	iso, ok := water.ISODate(text[open+1 : open+end])
	if !ok {
		return ""
	}
	return iso
}
