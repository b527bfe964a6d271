package bulk

import "strings"

// The literal operators pass on the command line to target every resource.
const AllKeyword = "all"

// Selector chooses which enumerated resources become deletion targets:
// either every resource of the kind, or those whose identifier carries an
// exact prefix.
type Selector struct {
	prefix string
	all    bool
}

// All selects every enumerated resource.
func All() Selector {
	return Selector{all: true}
}

// Prefix selects resources whose identifier starts with p. The keyword
// "all" is accepted here for CLI convenience and behaves like All.
func Prefix(p string) Selector {
	if p == AllKeyword {
		return All()
	}
	return Selector{prefix: p}
}

// Matches reports whether the identifier is selected.
func (s Selector) Matches(id string) bool {
	if s.all {
		return true
	}
	return strings.HasPrefix(id, s.prefix)
}

func (s Selector) String() string {
	if s.all {
		return AllKeyword
	}
	return s.prefix + "*"
}
