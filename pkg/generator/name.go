// SPDX-License-Identifier: MPL-2.0

package generator

// Name is a generator or parameter name.
type Name string

// IsValidName reports whether s can be used verbatim as an identifier in
// generated source: an ASCII letter followed by ASCII letters, digits or
// underscores, with no two underscores in a row.
func IsValidName(s string) bool {
	if s == "" {
		return false
	}
	if !isASCIILetter(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		if !isASCIILetter(c) && !isASCIIDigit(c) && c != '_' {
			return false
		}
		if c == '_' && s[i-1] == '_' {
			return false
		}
	}
	return true
}

// Validate returns an *InvalidNameError if n is not a valid name.
func (n Name) Validate() error {
	if !IsValidName(string(n)) {
		return &InvalidNameError{Name: string(n)}
	}
	return nil
}

// String returns the name.
func (n Name) String() string { return string(n) }

func isASCIILetter(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }

func isASCIIDigit(c byte) bool { return c >= '0' && c <= '9' }
