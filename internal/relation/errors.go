package relation

import (
	"fmt"
)

// UnknownRelationshipError means a relationship kind with no registered
// definition was referenced.
type UnknownRelationshipError struct {
	Kind Kind
}

func (e UnknownRelationshipError) Error() string {
	return fmt.Sprintf("unknown relationship kind %q", e.Kind)
}
