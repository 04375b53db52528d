package app

import (
	"fmt"
	"strconv"
	"strings"
)

// calculateRelative resolves a one-axis position modifier against the span
// [start, end):
//
//	"N"   absolute offset from the start edge
//	"-N"  offset back from the end edge
//	"."   midpoint of the span
//
// Whitespace around the modifier is ignored.
func calculateRelative(modifier string, start, end int) (int, error) {
	modifier = strings.TrimSpace(modifier)
	switch {
	case modifier == ".":
		return start + (end-start)/2, nil
	case strings.HasPrefix(modifier, "-"):
		n, err := strconv.Atoi(modifier[1:])
		if err != nil || n < 0 {
			return 0, fmt.Errorf("invalid position modifier %q", modifier)
		}
		return end - n, nil
	default:
		n, err := strconv.Atoi(modifier)
		if err != nil {
			return 0, fmt.Errorf("invalid position modifier %q: %w", modifier, err)
		}
		return start + n, nil
	}
}
