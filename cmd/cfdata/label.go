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
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newLabelCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "label [id]",
		Short: "Print the label of an identifier.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := loadConfig(cmd)
			if err != nil {
				return errors.Trace(err)
			}
			if path, _ := cmd.Flags().GetString("path"); path != "" {
				conf.Labels.Path = path
			}
			id := conf.Labels.DefaultId
			if len(args) > 0 {
				if id, err = strconv.Atoi(args[0]); err != nil {
					return errors.NewNotValid(err, "id")
				}
			}

			// load labels
			r, err := openLocation(cmd.Context(), cmd, conf.Blob, conf.Labels.Path, "loading labels")
			if err != nil {
				return errors.Trace(err)
			}
			defer r.Close()
			retriever := dataset.NewLabelRetriever(conf.Labels.Columns())
			if err = retriever.LoadFrom(r); err != nil {
				return errors.Annotatef(err, "failed to load labels from %s", log.RedactURL(conf.Labels.Path))
			}
			log.Logger().Info("load labels", zap.Int("n_labels", retriever.Len()))

			// lookup label
			label, err := retriever.GetLabel(id)
			if err != nil {
				return errors.Trace(err)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), label)
			return nil
		},
	}
	command.Flags().String("path", "", "location of the label table (overrides config)")
	return command
}
