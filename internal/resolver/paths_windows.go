//go:build windows

package resolver

import "strings"

// DefaultPathsEqual ignores case since Windows paths are case-insensitive
func DefaultPathsEqual(a, b string) bool {
	return strings.EqualFold(a, b)
}
