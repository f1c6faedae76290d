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

	"github.com/juju/errors"
)

// POSIX opens files relative to a directory.
type POSIX struct {
	dir string
}

func NewPOSIX(dir string) *POSIX {
	return &POSIX{dir: dir}
}

func (p *POSIX) Open(_ context.Context, name string) (io.ReadCloser, int64, error) {
	fullPath := name
	if p.dir != "" {
		fullPath = filepath.Join(p.dir, name)
	}
	file, err := os.Open(fullPath)
	if err != nil {
		return nil, 0, errors.Trace(err)
	}
	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, 0, errors.Trace(err)
	}
	if info.IsDir() {
		_ = file.Close()
		return nil, 0, errors.NotValidf("%s is a directory", fullPath)
	}
	return file, info.Size(), nil
}

func (p *POSIX) Close() error {
	return nil
}
