// Package io provides CSV import and export for table data.
//
// # Overview
//
// Tables are read as rows of string cells. The first row is the header and
// fixes the column count used by layout; later rows may have more or fewer
// fields. Nothing is type-converted: numbers stay as they were written.
//
// # Reading
//
// Use [ImportCSV] to read a table from a file path, or [ReadCSV] to read from
// any io.Reader:
//
//	data, err := io.ImportCSV("input/scores.csv")
//	if errors.Is(err, errors.ErrCodeFileNotFound) {
//	    // report and stop
//	}
//
// Parsing is lenient:
//   - a leading UTF-8 byte order mark is dropped
//   - rows may be ragged
//   - stray quotes inside unquoted fields are kept literally
//   - blank lines are skipped
//
// An empty input yields an empty table and no error; deciding that there is
// nothing to render is up to the caller.
//
// # Writing
//
// [WriteCSV] writes a table back as RFC 4180 CSV. The output is canonical for
// a given table, which makes it suitable for content hashing.
package io
