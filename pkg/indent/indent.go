// Copyright 2016 NetconfCentral.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package indent indents lines of text with a prefix.
package indent

import (
	"bytes"
	"io"
	"strings"
)

// String returns s with each line in s prefixed by indent.
func String(indent, s string) string {
	if indent == "" || s == "" {
		return s
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return indent + strings.Join(lines, indent)
}

// Bytes returns b with each line in b prefixed by indent.
func Bytes(indent, b []byte) []byte {
	if len(indent) == 0 || len(b) == 0 {
		return b
	}
	lines := bytes.SplitAfter(b, []byte{'\n'})
	if len(lines[len(lines)-1]) == 0 {
		lines = lines[:len(lines)-1]
	}
	return append(indent, bytes.Join(lines, indent)...)
}

type indenter struct {
	w       io.Writer
	prefix  string
	partial bool // true if the last line written was not newline terminated
}

// NewWriter returns an io.Writer that prefixes each line written to it with
// prefix and then writes the result to w.
func NewWriter(w io.Writer, prefix string) io.Writer {
	if prefix == "" {
		return w
	}
	return &indenter{
		w:      w,
		prefix: prefix,
	}
}

// Write writes the indented form of buf to the underlying writer with a
// single Write call.  The returned count is the number of bytes of buf,
// not of the expanded form, that made it out: a short write of a prefix
// does not count against buf.
func (in *indenter) Write(buf []byte) (int, error) {
	if len(buf) == 0 {
		return 0, nil
	}
	var out bytes.Buffer
	// srcOf[i] is how many bytes of buf are consumed once out.Bytes()[i]
	// has been written.
	srcOf := make([]int, 0, len(buf)+len(in.prefix))
	consumed := 0
	for _, c := range buf {
		if !in.partial {
			out.WriteString(in.prefix)
			for range in.prefix {
				srcOf = append(srcOf, consumed)
			}
		}
		out.WriteByte(c)
		consumed++
		srcOf = append(srcOf, consumed)
		in.partial = c != '\n'
	}
	n, err := in.w.Write(out.Bytes())
	if n >= out.Len() {
		return len(buf), err
	}
	if n <= 0 {
		return 0, err
	}
	return srcOf[n-1], err
}
