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
	"io"
	"math"
	"os"
	"sort"

	"github.com/juju/errors"
	"github.com/samber/lo"
)

// LabelColumns names the header columns of a label table.
type LabelColumns struct {
	Id        string
	Label     string
	Separator string
}

// DefaultLabelColumns matches artists.dat of the Last.fm dataset.
func DefaultLabelColumns() LabelColumns {
	return LabelColumns{
		Id:        "id",
		Label:     "name",
		Separator: DefaultSeparator,
	}
}

// LabelTable maps identifiers to labels. It is read-only once loaded.
type LabelTable struct {
	labels map[int]string
}

// LoadLabels loads a label table from a file.
func LoadLabels(path string, columns LabelColumns) (*LabelTable, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Trace(err)
	}
	defer file.Close()
	table, err := LoadLabelsFrom(file, columns)
	if err != nil {
		return nil, errors.Annotatef(err, "load labels from %s", path)
	}
	return table, nil
}

// LoadLabelsFrom decodes a label table from r. Later rows overwrite earlier
// rows with the same identifier.
func LoadLabelsFrom(r io.Reader, columns LabelColumns) (*LabelTable, error) {
	reader, err := NewTableReader(r, columns.Separator)
	if err != nil {
		return nil, errors.Trace(err)
	}
	idCol, err := reader.Column(columns.Id)
	if err != nil {
		return nil, errors.Trace(err)
	}
	labelCol, err := reader.Column(columns.Label)
	if err != nil {
		return nil, errors.Trace(err)
	}
	minFields := max(idCol, labelCol) + 1
	table := &LabelTable{labels: make(map[int]string)}
	for {
		fields, err := reader.Next()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, errors.Trace(err)
		}
		if len(fields) < minFields {
			return nil, errors.NotValidf("line %d: expect at least %d fields but got %d", reader.Line(), minFields, len(fields))
		}
		id, err := parseId(fields[idCol], math.MaxInt32)
		if err != nil {
			return nil, errors.Annotatef(err, "line %d: column %s", reader.Line(), columns.Id)
		}
		table.labels[id] = fields[labelCol]
	}
	return table, nil
}

// Len returns the number of labels.
func (t *LabelTable) Len() int {
	return len(t.labels)
}

// Get returns the label of an identifier.
func (t *LabelTable) Get(id int) (string, error) {
	if label, exist := t.labels[id]; exist {
		return label, nil
	}
	return "", errors.NotFoundf("label of id %d", id)
}

// Ids returns all identifiers in ascending order.
func (t *LabelTable) Ids() []int {
	ids := lo.Keys(t.labels)
	sort.Ints(ids)
	return ids
}

// LabelRetriever answers label queries for identifiers. It starts unloaded;
// queries fail with ErrNotLoaded until Load succeeds.
type LabelRetriever struct {
	columns LabelColumns
	table   *LabelTable
}

// NewLabelRetriever creates an unloaded LabelRetriever.
func NewLabelRetriever(columns LabelColumns) *LabelRetriever {
	return &LabelRetriever{columns: columns}
}

// Load replaces labels with those of a file. On failure the previous labels
// are kept.
func (r *LabelRetriever) Load(path string) error {
	table, err := LoadLabels(path, r.columns)
	if err != nil {
		return errors.Trace(err)
	}
	r.table = table
	return nil
}

// LoadFrom replaces labels with those decoded from a reader.
func (r *LabelRetriever) LoadFrom(reader io.Reader) error {
	table, err := LoadLabelsFrom(reader, r.columns)
	if err != nil {
		return errors.Trace(err)
	}
	r.table = table
	return nil
}

// IsLoaded returns true if labels have been loaded.
func (r *LabelRetriever) IsLoaded() bool {
	return r.table != nil
}

// Len returns the number of loaded labels.
func (r *LabelRetriever) Len() int {
	if r.table == nil {
		return 0
	}
	return r.table.Len()
}

// GetLabel returns the label of an identifier. It fails with ErrNotLoaded
// before any successful load and with a NotFound error for unknown ids.
func (r *LabelRetriever) GetLabel(id int) (string, error) {
	if r.table == nil {
		return "", errors.Trace(ErrNotLoaded)
	}
	return r.table.Get(id)
}
