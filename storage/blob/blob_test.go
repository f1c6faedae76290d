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

package blob

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorse-io/cfdata/config"
	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "artists.dat")
	require.NoError(t, os.WriteFile(path, []byte("id\tname\n1\tMALICE MIZER\n"), 0644))

	for _, location := range []string{path, FilePrefix + path} {
		r, size, err := Open(context.Background(), config.BlobConfig{}, location)
		require.NoError(t, err)
		assert.Equal(t, int64(23), size)
		data, err := io.ReadAll(r)
		assert.NoError(t, err)
		assert.Equal(t, "id\tname\n1\tMALICE MIZER\n", string(data))
		assert.NoError(t, r.Close())
	}

	_, _, err := Open(context.Background(), config.BlobConfig{}, filepath.Join(t.TempDir(), "missing.dat"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLocate(t *testing.T) {
	ctx := context.Background()
	store, name, err := Locate(ctx, config.BlobConfig{}, "data/artists.dat")
	assert.NoError(t, err)
	assert.IsType(t, &POSIX{}, store)
	assert.Equal(t, "data/artists.dat", name)

	store, name, err = Locate(ctx, config.BlobConfig{S3: config.S3Config{Endpoint: "localhost:9000"}}, "s3://lastfm/hetrec2011/artists.dat")
	assert.NoError(t, err)
	if assert.IsType(t, &S3{}, store) {
		assert.Equal(t, "lastfm", store.(*S3).bucket)
	}
	assert.Equal(t, "hetrec2011/artists.dat", name)

	store, name, err = Locate(ctx, config.BlobConfig{Azure: config.AzureBlobConfig{
		AccountName: "devstoreaccount1",
		AccountKey:  "Eby8vdM02xNOcqFlqUwJPLlmEtlCDXJ1OUzFT50uSRZ6IFsuFq2UVErCz4I6tq/K1SZFPTOtr/KBHBeksoGMGw==",
		Endpoint:    "http://127.0.0.1:10000/devstoreaccount1",
	}}, "azblob://lastfm/artists.dat")
	assert.NoError(t, err)
	if assert.IsType(t, &AzureBlob{}, store) {
		assert.Equal(t, "lastfm", store.(*AzureBlob).container)
	}
	assert.Equal(t, "artists.dat", name)
}

func TestLocate_Invalid(t *testing.T) {
	ctx := context.Background()
	_, _, err := Locate(ctx, config.BlobConfig{}, "ftp://lastfm/artists.dat")
	assert.True(t, errors.Is(err, errors.NotSupported))
	_, _, err = Locate(ctx, config.BlobConfig{}, "s3:///artists.dat")
	assert.True(t, errors.Is(err, errors.NotValid))
	_, _, err = Locate(ctx, config.BlobConfig{}, "s3://lastfm/")
	assert.True(t, errors.Is(err, errors.NotValid))
	// S3 requires an endpoint
	_, _, err = Locate(ctx, config.BlobConfig{}, "s3://lastfm/artists.dat")
	assert.True(t, errors.Is(err, errors.NotValid))
	// Azure requires credentials
	_, _, err = Locate(ctx, config.BlobConfig{}, "azblob://lastfm/artists.dat")
	assert.True(t, errors.Is(err, errors.NotValid))
}

type mockStore struct {
	objects map[string]string
	closed  int
}

func (m *mockStore) Open(_ context.Context, name string) (io.ReadCloser, int64, error) {
	content, exist := m.objects[name]
	if !exist {
		return nil, 0, errors.NotFoundf("object %s", name)
	}
	return io.NopCloser(strings.NewReader(content)), int64(len(content)), nil
}

func (m *mockStore) Close() error {
	m.closed++
	return nil
}

func TestOpenOnce(t *testing.T) {
	store := &mockStore{objects: map[string]string{"artists.dat": "id\tname\n"}}
	r, size, err := openOnce(context.Background(), store, "artists.dat")
	require.NoError(t, err)
	assert.Equal(t, int64(8), size)
	data, err := io.ReadAll(r)
	assert.NoError(t, err)
	assert.Equal(t, "id\tname\n", string(data))
	// the store lives until the reader is closed
	assert.Zero(t, store.closed)
	assert.NoError(t, r.Close())
	assert.Equal(t, 1, store.closed)

	// the store is released if the object is missing
	store = &mockStore{}
	_, _, err = openOnce(context.Background(), store, "tags.dat")
	assert.True(t, errors.Is(err, errors.NotFound))
	assert.Equal(t, 1, store.closed)
}
