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
	"bufio"
	"io"
	"strings"

	"github.com/juju/errors"
	"github.com/samber/lo"
)

// DefaultSeparator is the field separator of Last.fm style dumps.
const DefaultSeparator = "\t"

const maxLineSize = 1024 * 1024

// TableReader reads a delimited text table with a header row.
type TableReader struct {
	scanner *bufio.Scanner
	sep     []rune
	header  []string
	columns map[string]int
	scanned int // physical lines consumed
	line    int // first line of the last record
}

// NewTableReader reads the header row from r. An empty input is reported as
// ErrEmptyDataset since no column can be resolved.
func NewTableReader(r io.Reader, sep string) (*TableReader, error) {
	if sep == "" {
		sep = DefaultSeparator
	}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	t := &TableReader{scanner: scanner, sep: []rune(sep)}
	header, err := t.Next()
	if err == io.EOF {
		return nil, errors.Annotate(ErrEmptyDataset, "missing header")
	} else if err != nil {
		return nil, errors.Trace(err)
	}
	t.header = lo.Map(header, func(name string, _ int) string {
		return strings.TrimSpace(name)
	})
	t.columns = make(map[string]int, len(t.header))
	for i, name := range t.header {
		if _, exist := t.columns[name]; !exist {
			t.columns[name] = i
		}
	}
	return t, nil
}

// Header returns column names.
func (t *TableReader) Header() []string {
	return t.header
}

// Column returns the position of a named column.
func (t *TableReader) Column(name string) (int, error) {
	if i, exist := t.columns[name]; exist {
		return i, nil
	}
	return 0, errors.NotFoundf("column %q in header [%s]", name, strings.Join(t.header, ","))
}

// Line returns the 1-based line number of the last record returned by Next.
func (t *TableReader) Line() int {
	return t.line
}

// Next returns fields of the next non-empty record, or io.EOF at the end of input.
// A quoted field may span several lines.
func (t *TableReader) Next() ([]string, error) {
	var (
		fields  []string
		builder strings.Builder // current field
		quoted  bool            // whether current position in quote
		start   int             // first line of the record
	)
	for t.scanner.Scan() {
		t.scanned++
		text := t.scanner.Text()
		if !quoted {
			if strings.TrimSpace(text) == "" {
				continue
			}
			start = t.scanned
		} else {
			builder.WriteString("\n")
		}
		line := []rune(text)
		for i := 0; i < len(line); i++ {
			if !quoted && t.isSeparator(line[i:]) {
				// end of field
				fields = append(fields, builder.String())
				builder.Reset()
				i += len(t.sep) - 1
			} else if line[i] == '"' {
				if quoted {
					if i+1 >= len(line) || line[i+1] != '"' {
						// end of quoted
						quoted = false
					} else {
						i++
						builder.WriteRune('"')
					}
				} else if builder.Len() == 0 {
					// start of quoted
					quoted = true
				} else {
					builder.WriteRune('"')
				}
			} else {
				builder.WriteRune(line[i])
			}
		}
		if !quoted {
			fields = append(fields, builder.String())
			t.line = start
			return fields, nil
		}
	}
	if err := t.scanner.Err(); err != nil {
		return nil, errors.Trace(err)
	}
	if quoted {
		return nil, errors.NotValidf("unterminated quote at line %d", start)
	}
	return nil, io.EOF
}

func (t *TableReader) isSeparator(line []rune) bool {
	if len(line) < len(t.sep) {
		return false
	}
	for i, c := range t.sep {
		if line[i] != c {
			return false
		}
	}
	return true
}
