package io

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/matzehuels/csvtable/pkg/render/table"
)

// WriteCSV encodes data as CSV and writes it to w. Ragged rows are written
// as they are.
func WriteCSV(data table.Data, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(data); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Canonical returns the CSV encoding of data. Two tables with equal cells
// always produce equal bytes, whatever their source formatting was.
func Canonical(data table.Data) []byte {
	var buf bytes.Buffer
	_ = WriteCSV(data, &buf)
	return buf.Bytes()
}
