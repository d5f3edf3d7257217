package output

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/shanto12/google-search/crawler"
)

const resultsSheet = "Results"

// WriteXLSX saves the crawl results to an Excel workbook with one row per
// (URL, email) pair.
func WriteXLSX(results []crawler.Result, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", resultsSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	if err := f.SetSheetRow(resultsSheet, "A1", &[]string{"URL", "Email"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	row := 2
	for _, r := range results {
		for _, email := range r.Emails {
			cell := fmt.Sprintf("A%d", row)
			if err := f.SetSheetRow(resultsSheet, cell, &[]string{r.URL, email}); err != nil {
				return fmt.Errorf("write row %d: %w", row, err)
			}
			row++
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}
