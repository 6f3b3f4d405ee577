// Package dataset reads the historical GP performance dataset from CSV.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"coach-backend/internal/core"
)

var requiredColumns = []string{
	core.ColumnGPId,
	core.ColumnProductType,
	core.ColumnAttempts,
	core.ColumnSuccesses,
	core.ColumnLastWeakTopic,
}

// ReadRecords parses the CSV at path into raw rows, preserving file order.
// The file must have a header naming all required columns; extra columns are
// ignored. Unreadable files and missing columns are DataErrors since neither
// can produce a usable training set.
func ReadRecords(path string) ([]core.RawRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, core.DataErrorf("cannot open dataset %s: %v", path, err)
	}
	defer f.Close()

	return parseRecords(f, path)
}

func parseRecords(r io.Reader, name string) ([]core.RawRecord, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, core.DataErrorf("dataset %s is empty", name)
	}
	if err != nil {
		return nil, core.DataErrorf("cannot read dataset %s header: %v", name, err)
	}

	columns := make(map[string]int, len(header))
	for i, h := range header {
		columns[strings.TrimSpace(h)] = i
	}
	for _, col := range requiredColumns {
		if _, ok := columns[col]; !ok {
			return nil, core.DataErrorf("dataset %s is missing required column %q", name, col)
		}
	}

	var records []core.RawRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, core.DataErrorf("cannot read dataset %s: %v", name, err)
		}
		records = append(records, core.RawRecord{
			GPId:          field(row, columns[core.ColumnGPId]),
			ProductType:   field(row, columns[core.ColumnProductType]),
			Attempts:      field(row, columns[core.ColumnAttempts]),
			Successes:     field(row, columns[core.ColumnSuccesses]),
			LastWeakTopic: field(row, columns[core.ColumnLastWeakTopic]),
		})
	}
	return records, nil
}

func field(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// Describe summarizes a dataset for startup logging.
func Describe(records []core.RawRecord) string {
	products := make(map[string]struct{})
	for _, r := range records {
		products[core.NormalizeProductType(r.ProductType)] = struct{}{}
	}
	return fmt.Sprintf("%d rows across %d product types", len(records), len(products))
}
