// Package bookmark persists the presentation position as a fragment token,
// written to a sidecar file next to the deck so external edits can steer
// navigation.
package bookmark

import (
	"strconv"
	"strings"
)

const prefix = "slide-"

// Format renders the fragment token for a zero-based slide index. Tokens are
// 1-based on the wire: index 0 becomes "#slide-1".
func Format(index int) string {
	return "#" + prefix + strconv.Itoa(index+1)
}

// Parse extracts the zero-based slide index from a fragment token. The
// leading "#" is optional. Any token that is not "slide-<N>" with N a
// positive decimal integer is rejected.
func Parse(token string) (int, bool) {
	token = strings.TrimSpace(token)
	token = strings.TrimPrefix(token, "#")
	rest, ok := strings.CutPrefix(token, prefix)
	if !ok || rest == "" {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 1 {
		return 0, false
	}
	return n - 1, true
}
