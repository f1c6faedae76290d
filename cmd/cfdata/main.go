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
	"context"
	"fmt"
	"io"

	"github.com/gorse-io/cfdata/cmd/version"
	"github.com/gorse-io/cfdata/common/log"
	"github.com/gorse-io/cfdata/config"
	"github.com/gorse-io/cfdata/storage/blob"
	"github.com/juju/errors"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRootCommand() *cobra.Command {
	rootCommand := &cobra.Command{
		Use:           "cfdata",
		Short:         "Prepare interaction matrices and labels for collaborative filtering.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// setup logger
			debug, _ := cmd.Flags().GetBool("debug")
			log.SetLogger(cmd.Flags(), debug)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Show version
			if showVersion, _ := cmd.Flags().GetBool("version"); showVersion {
				_, _ = fmt.Fprint(cmd.OutOrStdout(), version.BuildInfo())
				return nil
			}
			return cmd.Help()
		},
	}
	log.AddFlags(rootCommand.PersistentFlags())
	rootCommand.PersistentFlags().Bool("debug", false, "use debug log mode")
	rootCommand.PersistentFlags().BoolP("quiet", "q", false, "hide progress bars")
	rootCommand.PersistentFlags().StringP("config", "c", "", "configuration file path")
	rootCommand.Flags().BoolP("version", "v", false, "cfdata version")
	rootCommand.AddCommand(newLabelCommand(), newMatrixCommand(), newVersionCommand())
	return rootCommand
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show build information.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprint(cmd.OutOrStdout(), version.BuildInfo())
		},
	}
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	log.Logger().Info("load config", zap.String("config", configPath))
	conf, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, errors.Annotate(err, "failed to load config")
	}
	return conf, nil
}

// openLocation opens an input location, showing read progress on stderr
// unless quiet.
func openLocation(ctx context.Context, cmd *cobra.Command, cfg config.BlobConfig, location, description string) (io.ReadCloser, error) {
	log.Logger().Info("open input", zap.String("location", log.RedactURL(location)))
	r, size, err := blob.Open(ctx, cfg, location)
	if err != nil {
		return nil, errors.Trace(err)
	}
	if quiet, _ := cmd.Flags().GetBool("quiet"); quiet {
		return r, nil
	}
	pbReader := progressbar.NewReader(r, progressbar.DefaultBytes(size, description))
	return &pbReader, nil
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		log.Logger().Fatal("failed to execute", zap.Error(err))
	}
	log.CloseLogger()
}
