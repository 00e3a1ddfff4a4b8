// Copyright 2019 Paul Furley and Ian Drysdale
//
// This file is part of Fluidkeys WebOfTrust which makes it simple to use OpenPGP.
//
// Fluidkeys WebOfTrust is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Fluidkeys WebOfTrust is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with Fluidkeys WebOfTrust.  If not, see <https://www.gnu.org/licenses/>.

package table

import (
	"fmt"
	"strings"

	"github.com/fluidkeys/weboftrust/colour"
)

// formatTableStringsFromRows takes a slice of rows and converts it into a slice of
// strings, padding out the space between the values appropriately.
// e.g. ["Jane", "4", "Sheffield"], -> "Jane     4   Sheffield",
//      ["Gillian", "23", "Hull"]      "Gillian  23  Hull     "
func formatTableStringsFromRows(rows []row) []string {
	var rowStrings []string
	maxColumnWidths := getColumnWidths(rows)

	for _, row := range rows {
		var rowString string
		for columnIndex, value := range row {
			if value == divider {
				rowString += makeDividerString(maxColumnWidths[columnIndex])
			} else {
				rowString += makeCellString(value, maxColumnWidths[columnIndex])
			}
		}
		rowString = strings.TrimSuffix(rowString, gutter)
		rowStrings = append(rowStrings, rowString)
	}

	return rowStrings
}

// makeDividerString substitutes in our placeholder '---' with horizontal
// strings equal to the specified length. For example: 8 -> '────────'
func makeDividerString(length int) string {
	return fmt.Sprintf("%s%s", strings.Repeat("─", length), gutter)
}

func makeCellString(value string, cellLength int) string {
	return fmt.Sprintf(
		"%s%s%s",
		value,
		// This is more complicated since we have colours on strings
		strings.Repeat(" ", cellLength-len(colour.StripAllColourCodes(value))),
		gutter,
	)
}

// makeRowsFromColumns takes a slice of columns, and returns a slice of rows.
// It pads out any of the shorter columns with empty cells.
// e.g.  Columns  : ["Jim", "Jane", "Fi"], ["1", "2"]
//       => Rows  : [["Jim", "1"], ["Jane", "2"], ["Fi", ""]]
func makeRowsFromColumns(columns []column) []row {
	var rows []row

	totalRows := 0
	for _, column := range columns {
		if len(column) > totalRows {
			totalRows = len(column)
		}
	}

	var lengthenedColumns []column
	for _, column := range columns {
		lengthenedColumns = append(lengthenedColumns, lengthenWithEmptyCells(column, totalRows))
	}

	for rowCounter := 0; rowCounter < totalRows; rowCounter++ {
		var row row
		for _, column := range lengthenedColumns {
			row = append(row, column[rowCounter])
		}
		rows = append(rows, row)
	}

	return rows
}

// lengthenWithEmptyCells takes a column, fills it with blank cells such
// that it becomes the required length and returns this new column.
func lengthenWithEmptyCells(column column, requiredLength int) column {
	missingCells := requiredLength - len(column)
	for i := 0; i < missingCells; i++ {
		column = append(column, "")
	}
	return column
}

// getColumnWidths takes a slice of rows and then finds the length of the
// longest value in each column.
func getColumnWidths(rows []row) []int {
	if len(rows) == 0 {
		return []int{}
	}
	maxColumnWidths := make(map[int]int) // Column index -> Maximum width

	for _, row := range rows {
		for columnIndex, value := range row {
			width := len(colour.StripAllColourCodes(value))
			if width > maxColumnWidths[columnIndex] {
				maxColumnWidths[columnIndex] = width
			}
		}
	}

	var result []int
	for columnIndex := 0; columnIndex < len(rows[0]); columnIndex++ {
		result = append(result, maxColumnWidths[columnIndex])
	}
	return result
}

type row = []string
type column = []string

const gutter = "  "
const divider = "---"
