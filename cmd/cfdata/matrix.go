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

package main

import (
	"fmt"
	"strconv"

	"github.com/gorse-io/cfdata/common/log"
	"github.com/gorse-io/cfdata/dataset"
	"github.com/juju/errors"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newMatrixCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "matrix",
		Short: "Load the interaction table into a sparse user-item matrix and summarize it.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := loadConfig(cmd)
			if err != nil {
				return errors.Trace(err)
			}
			if path, _ := cmd.Flags().GetString("path"); path != "" {
				conf.Interactions.Path = path
			}

			// load interactions
			r, err := openLocation(cmd.Context(), cmd, conf.Blob, conf.Interactions.Path, "loading interactions")
			if err != nil {
				return errors.Trace(err)
			}
			defer r.Close()
			m, err := dataset.LoadInteractionsFrom(r, conf.Interactions.Columns())
			if err != nil {
				return errors.Annotatef(err, "failed to load interactions from %s", log.RedactURL(conf.Interactions.Path))
			}
			rows, cols := m.Shape()
			log.Logger().Info("load interactions",
				zap.Int("n_rows", rows),
				zap.Int("n_cols", cols),
				zap.Int("nnz", m.NNZ()))
			if transpose, _ := cmd.Flags().GetBool("transpose"); transpose {
				m = m.Transpose()
			}

			if dump, _ := cmd.Flags().GetBool("dump"); dump {
				_, _ = fmt.Fprint(cmd.OutOrStdout(), m.String())
				return nil
			}
			return errors.Trace(renderSummary(cmd, m))
		},
	}
	command.Flags().String("path", "", "location of the interaction table (overrides config)")
	command.Flags().Bool("dump", false, "print stored entries instead of the summary")
	command.Flags().Bool("transpose", false, "use the item-user layout")
	return command
}

// summarize lists properties of a matrix. Rows without stored entries are
// empty even if other rows sum to zero.
func summarize(m *dataset.CSRMatrix) [][]string {
	rows, cols := m.Shape()
	emptyRows := lo.CountBy(lo.Range(rows), func(row int) bool {
		indices, _ := m.Row(row)
		return len(indices) == 0
	})
	return [][]string{
		{"Rows", strconv.Itoa(rows)},
		{"Columns", strconv.Itoa(cols)},
		{"Non-zeros", strconv.Itoa(m.NNZ())},
		{"Density", strconv.FormatFloat(m.Density(), 'g', 6, 64)},
		{"Weight sum", strconv.FormatFloat(m.Sum(), 'g', -1, 64)},
		{"Empty rows", strconv.Itoa(emptyRows)},
	}
}

func renderSummary(cmd *cobra.Command, m *dataset.CSRMatrix) error {
	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.Header("Property", "Value")
	for _, line := range summarize(m) {
		if err := table.Append(line); err != nil {
			return errors.Trace(err)
		}
	}
	return table.Render()
}
