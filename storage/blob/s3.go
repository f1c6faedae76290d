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

	"github.com/gorse-io/cfdata/config"
	"github.com/juju/errors"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// S3 opens objects in a bucket of S3 compatible storage.
type S3 struct {
	*minio.Client
	bucket string
}

func NewS3(cfg config.S3Config, bucket string) (*S3, error) {
	if cfg.Endpoint == "" {
		return nil, errors.NotValidf("empty S3 endpoint")
	}
	minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, errors.Trace(err)
	}
	return &S3{
		Client: minioClient,
		bucket: bucket,
	}, nil
}

func (s *S3) Open(ctx context.Context, name string) (io.ReadCloser, int64, error) {
	object, err := s.Client.GetObject(ctx, s.bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, 0, errors.Trace(err)
	}
	// GetObject is lazy, stat surfaces missing objects before reading
	info, err := object.Stat()
	if err != nil {
		_ = object.Close()
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, 0, errors.NewNotFound(err, "s3://"+s.bucket+"/"+name)
		}
		return nil, 0, errors.Trace(err)
	}
	return object, info.Size, nil
}

// Close is a no-op, minio clients are not closed.
func (s *S3) Close() error {
	return nil
}
