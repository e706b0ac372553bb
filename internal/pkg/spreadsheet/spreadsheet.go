package spreadsheet

import (
	"errors"
	"io"
	"strings"

	"pharmadz/internal/core/domain"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/gocarina/gocsv"
	"github.com/spf13/cast"
)

// Spreadsheet errors
var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrEmptySheet          = errors.New("sheet has no data rows")
	ErrMissingColumns      = errors.New("missing required columns")
)

// TemplateFilename is the download name of the import template.
const TemplateFilename = "template_stock.csv"

// templateRow mirrors the expected import schema. The csv tags define the
// template header row.
type templateRow struct {
	MedicationName string  `csv:"medication_name"`
	Quantity       int     `csv:"quantity"`
	Price          float64 `csv:"price"`
	Available      bool    `csv:"available"`
}

// IsSupportedFilename reports whether the filename carries a recognized
// spreadsheet extension. Checked before any parsing or upload handling.
func IsSupportedFilename(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, ".xlsx") || strings.HasSuffix(lower, ".xls")
}

// ParseStock reads the first sheet of an Excel workbook into a stock list.
// The header row must contain medication_name, quantity and price; available
// is optional and defaults to true. Rows with an empty medication name are
// skipped.
func ParseStock(r io.Reader) (domain.StockList, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}

	rows := f.GetRows(f.GetSheetName(1))
	if len(rows) < 2 {
		return nil, ErrEmptySheet
	}

	columns := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}

	nameCol, hasName := columns["medication_name"]
	qtyCol, hasQty := columns["quantity"]
	priceCol, hasPrice := columns["price"]
	availCol, hasAvail := columns["available"]
	if !hasName || !hasQty || !hasPrice {
		return nil, ErrMissingColumns
	}

	items := make(domain.StockList, 0, len(rows)-1)
	for _, row := range rows[1:] {
		name := strings.TrimSpace(cell(row, nameCol))
		if name == "" {
			continue
		}

		item := domain.StockItem{
			MedicationName: name,
			Quantity:       cast.ToInt(cell(row, qtyCol)),
			Price:          cast.ToFloat64(cell(row, priceCol)),
			Available:      true,
		}
		if hasAvail {
			if raw := strings.TrimSpace(cell(row, availCol)); raw != "" {
				item.Available = cast.ToBool(raw)
			}
		}

		items = append(items, item)
	}

	return items, nil
}

// Template renders the CSV import template: the header row plus example rows
// that brief pharmacy staff on the expected schema.
func Template() (string, error) {
	rows := []*templateRow{
		{MedicationName: "Paracétamol 500mg", Quantity: 50, Price: 120.0, Available: true},
		{MedicationName: "Ibuprofène 400mg", Quantity: 30, Price: 250.0, Available: true},
		{MedicationName: "Doliprane 1000mg", Quantity: 25, Price: 180.0, Available: false},
	}
	return gocsv.MarshalString(&rows)
}

// cell returns the value at index i, tolerating short rows.
func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return row[i]
}
