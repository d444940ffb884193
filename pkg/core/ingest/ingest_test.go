package ingest

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestCoerceNumber(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"1234", 1234},
		{"1,234.5", 1234.5},
		{" 250 ", 250},
		{"(300)", -300},
		{"-42", -42},
		{"1.5e3", 1500},
		{"", 0},
		{"-", 0},
		{"n/a", 0},
		{"TỔNG CỘNG", 0},
		{"$2,000", 2000},
	}
	for _, c := range cases {
		if got := CoerceNumber(c.in); math.Abs(got-c.want) > 0.0001 {
			t.Errorf("CoerceNumber(%q) = %f, want %f", c.in, got, c.want)
		}
	}
}

func TestParseCSV(t *testing.T) {
	data := []byte("Chỉ tiêu,Năm trước,Năm sau\nTÀI SẢN NGẮN HẠN,100,150\nTỔNG CỘNG TÀI SẢN,\"1,000\",abc\n")
	table, err := ParseCSV(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(table) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(table))
	}
	if table[0].Label != "TÀI SẢN NGẮN HẠN" || table[0].Prior != 100 || table[0].Current != 150 {
		t.Errorf("row 0 mismatch: %+v", table[0])
	}
	// Thousands separator parses; non-numeric coerces to 0.
	if table[1].Prior != 1000 || table[1].Current != 0 {
		t.Errorf("row 1 coercion mismatch: %+v", table[1])
	}
}

func TestParseCSV_WrongColumnCount(t *testing.T) {
	_, err := ParseCSV([]byte("Label,Prior\nCash,10\n"))
	var se *StructureError
	if !errors.As(err, &se) {
		t.Fatalf("expected *StructureError, got %v", err)
	}
}

func TestParseCSV_RaggedRowsPadToZero(t *testing.T) {
	table, err := ParseCSV([]byte("Label,Prior,Current\nCash,10\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if table[0].Current != 0 {
		t.Errorf("missing cell should coerce to 0, got %f", table[0].Current)
	}
}

func TestParseXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"Chỉ tiêu", "Năm trước", "Năm sau"},
		{"TÀI SẢN NGẮN HẠN", 100, 150},
		{"NỢ NGẮN HẠN", 50, 0},
		{"TỔNG CỘNG TÀI SẢN", 200, 300},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatal(err)
	}

	table, err := ParseXLSX(&buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(table) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(table))
	}
	if table[2].Label != "TỔNG CỘNG TÀI SẢN" || table[2].Prior != 200 || table[2].Current != 300 {
		t.Errorf("row 2 mismatch: %+v", table[2])
	}
}

func TestParseXLSX_NotAWorkbook(t *testing.T) {
	if _, err := ParseXLSX(bytes.NewReader([]byte("not an xlsx"))); err == nil {
		t.Fatal("expected error for invalid workbook")
	}
}

func TestParseHTMLTable(t *testing.T) {
	html := `<div><table>
		<tr><th>Item</th><th>Prior</th><th>Current</th></tr>
		<tr><td>TOTAL CURRENT ASSETS</td><td>100</td><td>150</td></tr>
		<tr><td>TOTAL ASSETS</td><td>200</td><td>300</td></tr>
	</table></div>`
	table, err := ParseHTMLTable(html)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(table) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(table))
	}
	if table[0].Label != "TOTAL CURRENT ASSETS" || table[0].Current != 150 {
		t.Errorf("row 0 mismatch: %+v", table[0])
	}
}

func TestParseHTMLTable_NoTable(t *testing.T) {
	_, err := ParseHTMLTable("<p>no table here</p>")
	var se *StructureError
	if !errors.As(err, &se) {
		t.Fatalf("expected *StructureError, got %v", err)
	}
}
