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
	"os"
	"path/filepath"
	"testing"

	"github.com/gorse-io/cfdata/dataset"
	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnmarshal(t *testing.T) {
	config, err := LoadConfig("config.toml.template")
	require.NoError(t, err)

	// [interactions]
	assert.Equal(t, "data/user_artists.dat", config.Interactions.Path)
	assert.Equal(t, "\t", config.Interactions.Separator)
	assert.Equal(t, "userID", config.Interactions.UserColumn)
	assert.Equal(t, "artistID", config.Interactions.ItemColumn)
	assert.Equal(t, "weight", config.Interactions.WeightColumn)
	assert.Equal(t, dataset.DefaultMaxId, config.Interactions.MaxId)
	// [labels]
	assert.Equal(t, "data/artists.dat", config.Labels.Path)
	assert.Equal(t, "\t", config.Labels.Separator)
	assert.Equal(t, "id", config.Labels.IdColumn)
	assert.Equal(t, "name", config.Labels.LabelColumn)
	assert.Equal(t, 1, config.Labels.DefaultId)
	// [blob.s3]
	assert.Empty(t, config.Blob.S3.Endpoint)
	assert.True(t, config.Blob.S3.UseSSL)
	// [blob.gcs]
	assert.Empty(t, config.Blob.GCS.CredentialsFile)
	// [blob.azure]
	assert.Empty(t, config.Blob.Azure.ConnectionString)
}

func TestSetDefault(t *testing.T) {
	config, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, GetDefaultConfig(), config)
	assert.Equal(t, dataset.DefaultInteractionColumns(), config.Interactions.Columns())
	assert.Equal(t, dataset.DefaultLabelColumns(), config.Labels.Columns())
}

func TestBindEnv(t *testing.T) {
	variables := map[string]string{
		"CFDATA_INTERACTIONS_PATH":          "s3://lastfm/user_artists.dat",
		"CFDATA_INTERACTIONS_USER_COLUMN":   "userId",
		"CFDATA_INTERACTIONS_ITEM_COLUMN":   "movieId",
		"CFDATA_INTERACTIONS_WEIGHT_COLUMN": "rating",
		"CFDATA_INTERACTIONS_MAX_ID":        "300000",
		"CFDATA_LABELS_PATH":                "gs://lastfm/artists.dat",
		"CFDATA_LABELS_ID_COLUMN":           "movieId",
		"CFDATA_LABELS_LABEL_COLUMN":        "title",
		"CFDATA_LABELS_DEFAULT_ID":          "42",
		"CFDATA_S3_ENDPOINT":                "localhost:9000",
		"CFDATA_S3_ACCESS_KEY_ID":           "minioadmin",
		"CFDATA_S3_SECRET_ACCESS_KEY":       "minioadmin",
		"CFDATA_GCS_CREDENTIALS_FILE":       "/etc/gcs.json",
		"CFDATA_AZURE_CONNECTION_STRING":    "UseDevelopmentStorage=true",
		"CFDATA_AZURE_ACCOUNT_NAME":         "devstoreaccount1",
		"CFDATA_AZURE_ACCOUNT_KEY":          "key",
	}
	for key, value := range variables {
		t.Setenv(key, value)
	}

	config, err := LoadConfig("config.toml.template")
	require.NoError(t, err)
	assert.Equal(t, "s3://lastfm/user_artists.dat", config.Interactions.Path)
	assert.Equal(t, dataset.InteractionColumns{
		User:      "userId",
		Item:      "movieId",
		Weight:    "rating",
		Separator: "\t",
		MaxId:     300000,
	}, config.Interactions.Columns())
	assert.Equal(t, "gs://lastfm/artists.dat", config.Labels.Path)
	assert.Equal(t, "movieId", config.Labels.IdColumn)
	assert.Equal(t, "title", config.Labels.LabelColumn)
	assert.Equal(t, 42, config.Labels.DefaultId)
	assert.Equal(t, "localhost:9000", config.Blob.S3.Endpoint)
	assert.Equal(t, "minioadmin", config.Blob.S3.AccessKeyID)
	assert.Equal(t, "minioadmin", config.Blob.S3.SecretAccessKey)
	assert.Equal(t, "/etc/gcs.json", config.Blob.GCS.CredentialsFile)
	assert.Equal(t, "UseDevelopmentStorage=true", config.Blob.Azure.ConnectionString)
	assert.Equal(t, "devstoreaccount1", config.Blob.Azure.AccountName)
	assert.Equal(t, "key", config.Blob.Azure.AccountKey)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[interactions]
path = "ratings.csv"
separator = ","
user_column = "userId"
item_column = "movieId"
weight_column = "rating"
`), 0644))
	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "ratings.csv", config.Interactions.Path)
	assert.Equal(t, ",", config.Interactions.Separator)
	// unspecified sections fall back to defaults
	assert.Equal(t, GetDefaultConfig().Labels, config.Labels)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	config := GetDefaultConfig()
	assert.NoError(t, config.Validate())

	config.Interactions.WeightColumn = ""
	assert.True(t, errors.Is(config.Validate(), errors.NotValid))

	config = GetDefaultConfig()
	config.Interactions.MaxId = -1
	assert.True(t, errors.Is(config.Validate(), errors.NotValid))

	config = GetDefaultConfig()
	config.Labels.DefaultId = -1
	assert.True(t, errors.Is(config.Validate(), errors.NotValid))

	config = GetDefaultConfig()
	config.Blob.Azure.Endpoint = "not a url"
	assert.True(t, errors.Is(config.Validate(), errors.NotValid))
}
