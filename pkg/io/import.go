package io

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"io"
	"os"

	"github.com/matzehuels/csvtable/pkg/errors"
	"github.com/matzehuels/csvtable/pkg/render/table"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadCSV decodes CSV from r into a table. Rows may have any number of
// fields. Blank lines are skipped and never become empty rows.
//
// ReadCSV returns an INVALID_INPUT error if the input cannot be tokenised,
// for example because a quoted field is never closed. The error message names
// the offending line. ReadCSV does not close r.
func ReadCSV(r io.Reader) (table.Data, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var data table.Data
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse csv")
		}
		data = append(data, record)
	}
	return data, nil
}

// ImportCSV reads the CSV file at path.
//
// A missing file yields a FILE_NOT_FOUND error and a directory an
// INVALID_INPUT error; otherwise the errors of [ReadCSV] apply.
func ImportCSV(path string) (table.Data, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "input file not found: %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()

	if info, err := f.Stat(); err == nil && info.IsDir() {
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s is a directory", path)
	}

	data, err := ReadCSV(f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	return data, nil
}
