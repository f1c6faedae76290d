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
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/juju/errors"
)

// Interaction is a weighted association between a user and an item.
type Interaction struct {
	UserId int
	ItemId int
	Weight float64
}

// InteractionColumns names the header columns of an interaction table.
// MaxId bounds user and item ids, zero means DefaultMaxId.
type InteractionColumns struct {
	User      string
	Item      string
	Weight    string
	Separator string
	MaxId     int
}

// DefaultInteractionColumns matches user_artists.dat of the Last.fm dataset.
func DefaultInteractionColumns() InteractionColumns {
	return InteractionColumns{
		User:      "userID",
		Item:      "artistID",
		Weight:    "weight",
		Separator: DefaultSeparator,
		MaxId:     DefaultMaxId,
	}
}

func (c InteractionColumns) maxId() int {
	if c.MaxId <= 0 {
		return DefaultMaxId
	}
	return c.MaxId
}

// LoadInteractions loads an interaction table into a user-item matrix.
func LoadInteractions(path string, columns InteractionColumns) (*CSRMatrix, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Trace(err)
	}
	defer file.Close()
	m, err := LoadInteractionsFrom(file, columns)
	if err != nil {
		return nil, errors.Annotatef(err, "load interactions from %s", path)
	}
	return m, nil
}

// LoadInteractionsFrom decodes an interaction table from r into a user-item
// matrix. Any malformed row fails the whole load.
func LoadInteractionsFrom(r io.Reader, columns InteractionColumns) (*CSRMatrix, error) {
	builder := NewCOOBuilder(0)
	builder.SetMaxId(columns.maxId())
	err := readInteractions(r, columns, func(interaction Interaction) error {
		return builder.Add(interaction.UserId, interaction.ItemId, interaction.Weight)
	})
	if err != nil {
		return nil, errors.Trace(err)
	}
	return builder.ToCSR()
}

// ReadInteractions decodes all records of an interaction table in file order.
func ReadInteractions(r io.Reader, columns InteractionColumns) ([]Interaction, error) {
	var interactions []Interaction
	err := readInteractions(r, columns, func(interaction Interaction) error {
		interactions = append(interactions, interaction)
		return nil
	})
	if err != nil {
		return nil, errors.Trace(err)
	}
	if len(interactions) == 0 {
		return nil, errors.Trace(ErrEmptyDataset)
	}
	return interactions, nil
}

func readInteractions(r io.Reader, columns InteractionColumns, handler func(Interaction) error) error {
	table, err := NewTableReader(r, columns.Separator)
	if err != nil {
		return errors.Trace(err)
	}
	userCol, err := table.Column(columns.User)
	if err != nil {
		return errors.Trace(err)
	}
	itemCol, err := table.Column(columns.Item)
	if err != nil {
		return errors.Trace(err)
	}
	weightCol, err := table.Column(columns.Weight)
	if err != nil {
		return errors.Trace(err)
	}
	minFields := max(userCol, itemCol, weightCol) + 1
	maxId := columns.maxId()
	for {
		fields, err := table.Next()
		if err == io.EOF {
			return nil
		} else if err != nil {
			return errors.Trace(err)
		}
		if len(fields) < minFields {
			return errors.NotValidf("line %d: expect at least %d fields but got %d", table.Line(), minFields, len(fields))
		}
		var interaction Interaction
		if interaction.UserId, err = parseId(fields[userCol], maxId); err != nil {
			return errors.Annotatef(err, "line %d: column %s", table.Line(), columns.User)
		}
		if interaction.ItemId, err = parseId(fields[itemCol], maxId); err != nil {
			return errors.Annotatef(err, "line %d: column %s", table.Line(), columns.Item)
		}
		if interaction.Weight, err = strconv.ParseFloat(strings.TrimSpace(fields[weightCol]), 64); err != nil {
			return errors.NewNotValid(err, fmt.Sprintf("line %d: column %s", table.Line(), columns.Weight))
		}
		if err = handler(interaction); err != nil {
			return errors.Annotatef(err, "line %d", table.Line())
		}
	}
}

// parseId parses a non-negative id no larger than maxId.
func parseId(text string, maxId int) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, errors.NewNotValid(err, "id")
	}
	if id < 0 || id > maxId {
		return 0, errors.NotValidf("id %d out of range [0, %d]", id, maxId)
	}
	return id, nil
}
