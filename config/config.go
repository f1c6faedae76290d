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

package config

import (
	"github.com/go-playground/validator/v10"
	"github.com/gorse-io/cfdata/dataset"
	"github.com/juju/errors"
	"github.com/spf13/viper"
)

// Config is the configuration of cfdata.
type Config struct {
	Interactions InteractionsConfig `mapstructure:"interactions"`
	Labels       LabelsConfig       `mapstructure:"labels"`
	Blob         BlobConfig         `mapstructure:"blob"`
}

// InteractionsConfig locates the interaction table and names its columns.
type InteractionsConfig struct {
	Path         string `mapstructure:"path"`
	Separator    string `mapstructure:"separator" validate:"required"`
	UserColumn   string `mapstructure:"user_column" validate:"required"`
	ItemColumn   string `mapstructure:"item_column" validate:"required"`
	WeightColumn string `mapstructure:"weight_column" validate:"required"`
	MaxId        int    `mapstructure:"max_id" validate:"gte=0,lt=2147483647"`
}

func (c InteractionsConfig) Columns() dataset.InteractionColumns {
	return dataset.InteractionColumns{
		User:      c.UserColumn,
		Item:      c.ItemColumn,
		Weight:    c.WeightColumn,
		Separator: c.Separator,
		MaxId:     c.MaxId,
	}
}

// LabelsConfig locates the label table and names its columns.
type LabelsConfig struct {
	Path        string `mapstructure:"path"`
	Separator   string `mapstructure:"separator" validate:"required"`
	IdColumn    string `mapstructure:"id_column" validate:"required"`
	LabelColumn string `mapstructure:"label_column" validate:"required"`
	DefaultId   int    `mapstructure:"default_id" validate:"gte=0"`
}

func (c LabelsConfig) Columns() dataset.LabelColumns {
	return dataset.LabelColumns{
		Id:        c.IdColumn,
		Label:     c.LabelColumn,
		Separator: c.Separator,
	}
}

type BlobConfig struct {
	S3    S3Config        `mapstructure:"s3"`
	GCS   GCSConfig       `mapstructure:"gcs"`
	Azure AzureBlobConfig `mapstructure:"azure"`
}

type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	UseSSL          bool   `mapstructure:"use_ssl"`
}

type GCSConfig struct {
	CredentialsFile string `mapstructure:"credentials_file"`
}

type AzureBlobConfig struct {
	ConnectionString string `mapstructure:"connection_string"`
	AccountName      string `mapstructure:"account_name"`
	AccountKey       string `mapstructure:"account_key"`
	Endpoint         string `mapstructure:"endpoint" validate:"omitempty,url"`
}

func GetDefaultConfig() *Config {
	interactions := dataset.DefaultInteractionColumns()
	labels := dataset.DefaultLabelColumns()
	return &Config{
		Interactions: InteractionsConfig{
			Path:         "data/user_artists.dat",
			Separator:    interactions.Separator,
			UserColumn:   interactions.User,
			ItemColumn:   interactions.Item,
			WeightColumn: interactions.Weight,
			MaxId:        interactions.MaxId,
		},
		Labels: LabelsConfig{
			Path:        "data/artists.dat",
			Separator:   labels.Separator,
			IdColumn:    labels.Id,
			LabelColumn: labels.Label,
			DefaultId:   1,
		},
		Blob: BlobConfig{
			S3: S3Config{
				UseSSL: true,
			},
		},
	}
}

func setDefault(v *viper.Viper) {
	defaultConfig := GetDefaultConfig()
	// [interactions]
	v.SetDefault("interactions.path", defaultConfig.Interactions.Path)
	v.SetDefault("interactions.separator", defaultConfig.Interactions.Separator)
	v.SetDefault("interactions.user_column", defaultConfig.Interactions.UserColumn)
	v.SetDefault("interactions.item_column", defaultConfig.Interactions.ItemColumn)
	v.SetDefault("interactions.weight_column", defaultConfig.Interactions.WeightColumn)
	v.SetDefault("interactions.max_id", defaultConfig.Interactions.MaxId)
	// [labels]
	v.SetDefault("labels.path", defaultConfig.Labels.Path)
	v.SetDefault("labels.separator", defaultConfig.Labels.Separator)
	v.SetDefault("labels.id_column", defaultConfig.Labels.IdColumn)
	v.SetDefault("labels.label_column", defaultConfig.Labels.LabelColumn)
	v.SetDefault("labels.default_id", defaultConfig.Labels.DefaultId)
	// [blob.s3]
	v.SetDefault("blob.s3.endpoint", defaultConfig.Blob.S3.Endpoint)
	v.SetDefault("blob.s3.access_key_id", defaultConfig.Blob.S3.AccessKeyID)
	v.SetDefault("blob.s3.secret_access_key", defaultConfig.Blob.S3.SecretAccessKey)
	v.SetDefault("blob.s3.use_ssl", defaultConfig.Blob.S3.UseSSL)
	// [blob.gcs]
	v.SetDefault("blob.gcs.credentials_file", defaultConfig.Blob.GCS.CredentialsFile)
	// [blob.azure]
	v.SetDefault("blob.azure.connection_string", defaultConfig.Blob.Azure.ConnectionString)
	v.SetDefault("blob.azure.account_name", defaultConfig.Blob.Azure.AccountName)
	v.SetDefault("blob.azure.account_key", defaultConfig.Blob.Azure.AccountKey)
	v.SetDefault("blob.azure.endpoint", defaultConfig.Blob.Azure.Endpoint)
}

type configBinding struct {
	key string
	env string
}

func bindEnv(v *viper.Viper) error {
	bindings := []configBinding{
		{"interactions.path", "CFDATA_INTERACTIONS_PATH"},
		{"interactions.user_column", "CFDATA_INTERACTIONS_USER_COLUMN"},
		{"interactions.item_column", "CFDATA_INTERACTIONS_ITEM_COLUMN"},
		{"interactions.weight_column", "CFDATA_INTERACTIONS_WEIGHT_COLUMN"},
		{"interactions.max_id", "CFDATA_INTERACTIONS_MAX_ID"},
		{"labels.path", "CFDATA_LABELS_PATH"},
		{"labels.id_column", "CFDATA_LABELS_ID_COLUMN"},
		{"labels.label_column", "CFDATA_LABELS_LABEL_COLUMN"},
		{"labels.default_id", "CFDATA_LABELS_DEFAULT_ID"},
		{"blob.s3.endpoint", "CFDATA_S3_ENDPOINT"},
		{"blob.s3.access_key_id", "CFDATA_S3_ACCESS_KEY_ID"},
		{"blob.s3.secret_access_key", "CFDATA_S3_SECRET_ACCESS_KEY"},
		{"blob.gcs.credentials_file", "CFDATA_GCS_CREDENTIALS_FILE"},
		{"blob.azure.connection_string", "CFDATA_AZURE_CONNECTION_STRING"},
		{"blob.azure.account_name", "CFDATA_AZURE_ACCOUNT_NAME"},
		{"blob.azure.account_key", "CFDATA_AZURE_ACCOUNT_KEY"},
	}
	for _, binding := range bindings {
		if err := v.BindEnv(binding.key, binding.env); err != nil {
			return errors.Trace(err)
		}
	}
	return nil
}

// LoadConfig loads configuration from a TOML file. Environment variables
// override values in the file. An empty path loads defaults and environment
// variables only.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefault(v)
	if err := bindEnv(v); err != nil {
		return nil, errors.Trace(err)
	}
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Trace(err)
		}
	}
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Trace(err)
	}
	if err := config.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	return &config, nil
}

func (config *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(config); err != nil {
		return errors.NewNotValid(err, "config")
	}
	return nil
}
