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
	"net/url"
	"strings"

	"github.com/gorse-io/cfdata/config"
	"github.com/juju/errors"
)

const (
	FilePrefix  = "file://"
	S3Prefix    = "s3://"
	GCSPrefix   = "gs://"
	AzurePrefix = "azblob://"
)

// Store opens objects for reading. The returned size is -1 if unknown.
type Store interface {
	io.Closer
	Open(ctx context.Context, name string) (io.ReadCloser, int64, error)
}

// Open opens the object at a location. A location is a local path, or a URL
// with one of the schemes file, s3, gs and azblob.
func Open(ctx context.Context, cfg config.BlobConfig, location string) (io.ReadCloser, int64, error) {
	store, name, err := Locate(ctx, cfg, location)
	if err != nil {
		return nil, 0, errors.Trace(err)
	}
	r, size, err := openOnce(ctx, store, name)
	if err != nil {
		return nil, 0, errors.Annotatef(err, "open %s", location)
	}
	return r, size, nil
}

// openOnce opens an object and hands the store over to the reader. The store
// is closed with the reader, or at once if the object cannot be opened.
func openOnce(ctx context.Context, store Store, name string) (io.ReadCloser, int64, error) {
	r, size, err := store.Open(ctx, name)
	if err != nil {
		_ = store.Close()
		return nil, 0, errors.Trace(err)
	}
	return &storeReader{ReadCloser: r, store: store}, size, nil
}

type storeReader struct {
	io.ReadCloser
	store Store
}

func (r *storeReader) Close() error {
	err := r.ReadCloser.Close()
	if closeErr := r.store.Close(); err == nil {
		err = closeErr
	}
	return errors.Trace(err)
}

// Locate resolves a location to a store and an object name in the store.
func Locate(ctx context.Context, cfg config.BlobConfig, location string) (Store, string, error) {
	if !strings.Contains(location, "://") {
		return NewPOSIX(""), location, nil
	}
	if strings.HasPrefix(location, FilePrefix) {
		return NewPOSIX(""), location[len(FilePrefix):], nil
	}
	parsed, err := url.Parse(location)
	if err != nil {
		return nil, "", errors.NewNotValid(err, "location")
	}
	if parsed.Host == "" {
		return nil, "", errors.NotValidf("location %s without bucket", location)
	}
	name := strings.TrimPrefix(parsed.Path, "/")
	if name == "" {
		return nil, "", errors.NotValidf("location %s without object", location)
	}
	var store Store
	switch {
	case strings.HasPrefix(location, S3Prefix):
		store, err = NewS3(cfg.S3, parsed.Host)
	case strings.HasPrefix(location, GCSPrefix):
		store, err = NewGCS(ctx, cfg.GCS, parsed.Host)
	case strings.HasPrefix(location, AzurePrefix):
		store, err = NewAzureBlob(cfg.Azure, parsed.Host)
	default:
		return nil, "", errors.NotSupportedf("location %s", location)
	}
	if err != nil {
		return nil, "", errors.Trace(err)
	}
	return store, name, nil
}
