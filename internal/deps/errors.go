package deps

import (
	"fmt"
	"strings"
)

// CycleError indicates a dependency cycle, either an existing one (Path) or
// one that adding From -> To would create.
type CycleError struct {
	From string
	To   string
	Path []string
}

func (e CycleError) Error() string {
	if len(e.Path) > 0 {
		return fmt.Sprintf("dependency cycle detected: %s", strings.Join(e.Path, " -> "))
	}
	return fmt.Sprintf("adding dependency %s -> %s would create a cycle", e.From, e.To)
}
