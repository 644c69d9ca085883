// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package carddata parses card data tables from CSV bytes. The first
// record is the header; every following record is one card. Rows later
// overlay the resolved deck fields as the per-card template
// environment.
package carddata

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// Row is one card's column → value assignment.
type Row map[string]string

// Table is a parsed card data table.
type Table struct {
	// Columns are the header names, in file order.
	Columns []string

	// Rows are the cards, in file order.
	Rows []Row
}

// Parse parses CSV bytes into a Table. Ragged rows are an error; a
// header-only file yields a table with no rows; empty input is an
// error.
func Parse(data []byte) (*Table, error) {
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing card data: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("parsing card data: no header record")
	}

	table := &Table{
		Columns: records[0],
		Rows:    make([]Row, 0, len(records)-1),
	}
	for _, record := range records[1:] {
		row := make(Row, len(table.Columns))
		for i, column := range table.Columns {
			row[column] = record[i]
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}
