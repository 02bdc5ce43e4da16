package output

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/jmylchreest/invoicesort/pkg/invoice"
)

const xlsxSheet = "Results"

// WriteXLSX writes every record to a single-sheet workbook.
func WriteXLSX(w io.Writer, recs []invoice.Record) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), xlsxSheet); err != nil {
		return fmt.Errorf("xlsx sheet: %w", err)
	}

	headers := []string{"File", "Invoice", "Date", "Seller", "Item"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(xlsxSheet, cell, h)
	}

	for i, r := range recs {
		row := i + 2
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(xlsxSheet, cell, v)
		}
		write(1, r.FileName)
		write(2, r.IsInvoice)
		write(3, invoice.Value(r.InvoiceDate))
		write(4, invoice.Value(r.SellerName))
		write(5, invoice.Value(r.FirstItem))
	}

	_ = f.SetColWidth(xlsxSheet, "A", "A", 32) // file
	_ = f.SetColWidth(xlsxSheet, "B", "B", 10)
	_ = f.SetColWidth(xlsxSheet, "C", "C", 14) // date
	_ = f.SetColWidth(xlsxSheet, "D", "E", 32)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}
	return nil
}
