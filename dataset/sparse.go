// Copyright 2026 gorse Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dataset

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/juju/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// DefaultMaxId is the largest row or column id a COOBuilder accepts unless
// changed by SetMaxId. The row pointer of a matrix holds max row id + 2 ints.
const DefaultMaxId = 1<<24 - 1

// COOBuilder accumulates (row, col, value) triples in coordinate-list form.
// Duplicate coordinates are allowed and summed by ToCSR.
type COOBuilder struct {
	rows   []int32
	cols   []int32
	values []float64
	nRows  int
	nCols  int
	maxId  int
}

// NewCOOBuilder creates a COOBuilder with room for n entries.
func NewCOOBuilder(n int) *COOBuilder {
	return &COOBuilder{
		rows:   make([]int32, 0, n),
		cols:   make([]int32, 0, n),
		values: make([]float64, 0, n),
		maxId:  DefaultMaxId,
	}
}

// SetMaxId changes the largest accepted row or column id. It is capped at
// math.MaxInt32 - 1 so that dimensions fit in int32.
func (b *COOBuilder) SetMaxId(maxId int) {
	b.maxId = min(max(maxId, 0), math.MaxInt32-1)
}

// Add appends an entry. The shape grows to cover (row, col).
func (b *COOBuilder) Add(row, col int, value float64) error {
	if row < 0 || col < 0 {
		return errors.NotValidf("coordinate (%d, %d)", row, col)
	}
	if row > b.maxId || col > b.maxId {
		return errors.NotValidf("coordinate (%d, %d) beyond max id %d", row, col, b.maxId)
	}
	b.rows = append(b.rows, int32(row))
	b.cols = append(b.cols, int32(col))
	b.values = append(b.values, value)
	b.nRows = max(b.nRows, row+1)
	b.nCols = max(b.nCols, col+1)
	return nil
}

// Len returns the number of accumulated entries, duplicates included.
func (b *COOBuilder) Len() int {
	return len(b.values)
}

// ToCSR compacts accumulated entries into compressed-row form:
//
//  1. count entries per row and build the row pointer by prefix sum,
//  2. scatter entries into their rows, keeping insertion order,
//  3. sort each row by column and sum duplicate columns.
func (b *COOBuilder) ToCSR() (*CSRMatrix, error) {
	if len(b.values) == 0 {
		return nil, errors.Trace(ErrEmptyDataset)
	}
	// count entries per row
	indptr := make([]int, b.nRows+1)
	for _, row := range b.rows {
		indptr[row+1]++
	}
	for i := 0; i < b.nRows; i++ {
		indptr[i+1] += indptr[i]
	}
	// scatter entries
	indices := make([]int32, len(b.values))
	values := make([]float64, len(b.values))
	next := make([]int, b.nRows)
	copy(next, indptr[:b.nRows])
	for k, row := range b.rows {
		pos := next[row]
		indices[pos] = b.cols[k]
		values[pos] = b.values[k]
		next[row]++
	}
	// sort rows and merge duplicates in place
	nnz := 0
	for row := 0; row < b.nRows; row++ {
		begin, end := indptr[row], indptr[row+1]
		sort.Stable(rowView{indices: indices[begin:end], values: values[begin:end]})
		indptr[row] = nnz
		for k := begin; k < end; k++ {
			if nnz > indptr[row] && indices[nnz-1] == indices[k] {
				values[nnz-1] += values[k]
				continue
			}
			indices[nnz] = indices[k]
			values[nnz] = values[k]
			nnz++
		}
	}
	indptr[b.nRows] = nnz
	return &CSRMatrix{
		nRows:   b.nRows,
		nCols:   b.nCols,
		indptr:  indptr,
		indices: indices[:nnz:nnz],
		values:  values[:nnz:nnz],
	}, nil
}

type rowView struct {
	indices []int32
	values  []float64
}

func (r rowView) Len() int {
	return len(r.indices)
}

func (r rowView) Less(i, j int) bool {
	return r.indices[i] < r.indices[j]
}

func (r rowView) Swap(i, j int) {
	r.indices[i], r.indices[j] = r.indices[j], r.indices[i]
	r.values[i], r.values[j] = r.values[j], r.values[i]
}

// CSRMatrix is an immutable sparse matrix in compressed-row form. Entries of
// row u are indices[indptr[u]:indptr[u+1]] with values at the same positions,
// sorted by column.
type CSRMatrix struct {
	nRows   int
	nCols   int
	indptr  []int
	indices []int32
	values  []float64
}

// Shape returns the number of rows and columns.
func (m *CSRMatrix) Shape() (int, int) {
	return m.nRows, m.nCols
}

// NNZ returns the number of stored entries.
func (m *CSRMatrix) NNZ() int {
	return len(m.values)
}

// Density returns the fraction of stored cells.
func (m *CSRMatrix) Density() float64 {
	if m.nRows == 0 || m.nCols == 0 {
		return 0
	}
	return float64(m.NNZ()) / (float64(m.nRows) * float64(m.nCols))
}

// Row returns column indices and values of a row. The slices share memory
// with the matrix and must not be modified.
func (m *CSRMatrix) Row(row int) ([]int32, []float64) {
	if row < 0 || row >= m.nRows {
		return nil, nil
	}
	begin, end := m.indptr[row], m.indptr[row+1]
	return m.indices[begin:end:end], m.values[begin:end:end]
}

// At returns the value at (row, col), zero if absent.
func (m *CSRMatrix) At(row, col int) float64 {
	indices, values := m.Row(row)
	i := sort.Search(len(indices), func(i int) bool {
		return int(indices[i]) >= col
	})
	if i < len(indices) && int(indices[i]) == col {
		return values[i]
	}
	return 0
}

// ForEach iterates stored entries in row-major order.
func (m *CSRMatrix) ForEach(f func(row, col int, value float64)) {
	for row := 0; row < m.nRows; row++ {
		for k := m.indptr[row]; k < m.indptr[row+1]; k++ {
			f(row, int(m.indices[k]), m.values[k])
		}
	}
}

// Sum returns the sum of all entries.
func (m *CSRMatrix) Sum() float64 {
	return floats.Sum(m.values)
}

// RowSums returns the sum of each row.
func (m *CSRMatrix) RowSums() []float64 {
	sums := make([]float64, m.nRows)
	for row := range sums {
		_, values := m.Row(row)
		sums[row] = floats.Sum(values)
	}
	return sums
}

// Transpose returns the compressed-row form of the transposed matrix, that is
// the item-user layout of a user-item matrix.
func (m *CSRMatrix) Transpose() *CSRMatrix {
	indptr := make([]int, m.nCols+1)
	for _, col := range m.indices {
		indptr[col+1]++
	}
	for i := 0; i < m.nCols; i++ {
		indptr[i+1] += indptr[i]
	}
	indices := make([]int32, len(m.indices))
	values := make([]float64, len(m.values))
	next := make([]int, m.nCols)
	copy(next, indptr[:m.nCols])
	// rows are visited in order, so columns of the transpose come out sorted
	m.ForEach(func(row, col int, value float64) {
		pos := next[col]
		indices[pos] = int32(row)
		values[pos] = value
		next[col]++
	})
	return &CSRMatrix{
		nRows:   m.nCols,
		nCols:   m.nRows,
		indptr:  indptr,
		indices: indices,
		values:  values,
	}
}

// ToDense converts the matrix to a dense matrix.
func (m *CSRMatrix) ToDense() *mat.Dense {
	dense := mat.NewDense(m.nRows, m.nCols, nil)
	m.ForEach(func(row, col int, value float64) {
		dense.Set(row, col, value)
	})
	return dense
}

// String dumps stored entries, one "(row, col)\tvalue" per line. Values are
// written like Python floats, e.g. 13883.0 and 1e-05.
func (m *CSRMatrix) String() string {
	var builder strings.Builder
	m.ForEach(func(row, col int, value float64) {
		_, _ = fmt.Fprintf(&builder, "  (%d, %d)\t%s\n", row, col, formatValue(value))
	})
	return builder.String()
}

func formatValue(value float64) string {
	switch {
	case math.IsNaN(value):
		return "nan"
	case math.IsInf(value, 1):
		return "inf"
	case math.IsInf(value, -1):
		return "-inf"
	}
	if abs := math.Abs(value); abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(value, 'e', -1, 64)
	}
	text := strconv.FormatFloat(value, 'f', -1, 64)
	if !strings.Contains(text, ".") {
		text += ".0"
	}
	return text
}
