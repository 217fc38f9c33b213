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

// Identifier syntax checks.  YANG identifiers (RFC 6020 section 6.2)
// start with a letter or underscore and continue with letters, digits,
// underscore, hyphen and dot.  Identifiers starting with "xml" in any
// case are reserved.

import "strings"

// MaxIdentifierLen is the hard limit on identifier length.  Longer
// identifiers are rejected outright; the soft limit in Options only
// warns.
const MaxIdentifierLen = 4095

func identStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func identChar(c byte) bool {
	return identStart(c) || c == '-' || c == '.' || (c >= '0' && c <= '9')
}

// IsIdentifier reports whether s is a valid YANG identifier.
func IsIdentifier(s string) bool {
	if s == "" || len(s) > MaxIdentifierLen || !identStart(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !identChar(s[i]) {
			return false
		}
	}
	return !strings.HasPrefix(strings.ToLower(s), "xml")
}

// IsNCName reports whether s is a valid XML NCName: an identifier with
// no colon.  Unlike YANG identifiers, NCNames may start with "xml".
func IsNCName(s string) bool {
	if s == "" || !identStart(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !identChar(s[i]) {
			return false
		}
	}
	return true
}

// getPrefix splits a possibly prefix qualified name into its prefix and
// base name.  A name with no prefix returns "" for the prefix.
func getPrefix(name string) (prefix, base string) {
	if i := strings.Index(name, ":"); i >= 0 {
		return name[:i], name[i+1:]
	}
	return "", name
}
