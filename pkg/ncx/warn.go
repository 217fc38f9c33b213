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

package ncx

// Warning suppression and the identifier/line length soft limits.

// Default soft limits, used when the Options limit is 0.  A negative
// Options limit disables the corresponding check.
const (
	DefaultWarnIDLen   = 64
	DefaultWarnLineLen = 72
)

// Suppress disables future emission of the warning code.  Error codes
// cannot be suppressed; suppressing one is a no-op.
func (c *Context) Suppress(code Code) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !code.IsError() {
		c.suppressed[code] = true
	}
}

// Unsuppress re-enables emission of the warning code.
func (c *Context) Unsuppress(code Code) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.suppressed, code)
}

// WarningEnabled reports whether the warning code would currently be
// emitted.  Error codes are always enabled.
func (c *Context) WarningEnabled(code Code) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return code.IsError() || !c.suppressed[code]
}

func (c *Context) warnSuppressed(code Code) bool { return c.suppressed[code] }

// checkWarnIDLen emits a single idlen-exceeded warning if name is
// longer than the configured soft limit.
func (c *Context) checkWarnIDLen(m *Module, loc Location, name string) {
	if c.opts.WarnIDLen > 0 && len(name) > c.opts.WarnIDLen {
		c.emit(m, loc, WarnIDLen,
			"identifier %q exceeds %d chars (%d)", name, c.opts.WarnIDLen, len(name))
	}
}

// checkWarnLineLen emits a single linelen-exceeded warning if the
// source line at loc was longer than the configured soft limit.
func (c *Context) checkWarnLineLen(m *Module, loc Location, linelen int) {
	if c.opts.WarnLineLen > 0 && linelen > c.opts.WarnLineLen {
		c.emit(m, loc, WarnLineLen,
			"line exceeds %d chars (%d)", c.opts.WarnLineLen, linelen)
	}
}
