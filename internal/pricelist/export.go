package pricelist

import (
	"fmt"
	"io"

	"ortofrutticola/internal/domain"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Listino"

var header = []string{"Nome", "Categoria", "Prezzo", "Unità", "Origine", "Disponibile"}

// Write renders the catalog as an XLSX price list: one header row, then one
// row per product in catalog order. Out-of-stock products are included and
// flagged in the last column.
func Write(w io.Writer, products []domain.Product) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to drop default sheet: %w", err)
	}

	for col, title := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("failed to compute header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, title); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	for i, p := range products {
		available := "Sì"
		if !p.InStock {
			available = "No"
		}

		values := []interface{}{
			p.Name,
			p.Category,
			p.Price.StringFixed(2),
			p.Unit,
			p.Origin,
			available,
		}

		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return fmt.Errorf("failed to compute cell: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return fmt.Errorf("failed to write row %d: %w", i+2, err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
