package ingest

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"finlens/pkg/core/ratio"
)

// ParseHTMLTable extracts the first <table> from an HTML fragment (typically
// pasted from a browser or an exported report) into a LineItemTable. Cells
// are read in document order; colspan/rowspan gymnastics are out of scope
// for balance-sheet paste input.
func ParseHTMLTable(fragment string) (ratio.LineItemTable, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return nil, structureErrorf("failed to parse HTML: %v", err)
	}

	trs := doc.Find("table").First().Find("tr")
	if trs.Length() == 0 {
		return nil, structureErrorf("no table rows found in HTML input")
	}

	var rows [][]string
	trs.Each(func(_ int, tr *goquery.Selection) {
		var cells []string
		tr.Find("td, th").Each(func(_ int, cell *goquery.Selection) {
			cells = append(cells, strings.TrimSpace(cell.Text()))
		})
		if len(cells) > 0 {
			rows = append(rows, cells)
		}
	})

	return tableFromRows(rows)
}
