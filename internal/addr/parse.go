package addr

import (
	"fmt"
	"regexp"
	"strconv"
)

// addressRegex parses a canonical address, e.g. `orders/queue.orders-dlq`
// or `orders/grant[3]`.
var addressRegex = regexp.MustCompile(`^([a-zA-Z0-9_-]+)/([a-zA-Z0-9_]+)(?:\.([a-zA-Z0-9_-]+)|\[(\d+)\])$`)

// Parse creates an Address by parsing its canonical string representation.
func Parse(raw string) (Address, error) {
	if raw == "" {
		return Address{}, fmt.Errorf("address cannot be empty")
	}

	matches := addressRegex.FindStringSubmatch(raw)
	if matches == nil {
		return Address{}, fmt.Errorf("invalid address format: %q", raw)
	}

	a := Address{Stack: matches[1], Kind: matches[2], Index: -1}
	switch {
	case matches[3] != "":
		a.Name = matches[3]
	case matches[4] != "":
		index, err := strconv.Atoi(matches[4])
		if err != nil {
			// Unreachable due to regex `\d+`
			return Address{}, fmt.Errorf("internal error parsing index: %w", err)
		}
		a.Index = index
	default:
		return Address{}, fmt.Errorf("invalid address format: %q", raw)
	}
	return a, nil
}
