package model

// Filter is a set of field=value equality constraints for a read.
type Filter map[string]string

// Match reports whether issue satisfies every constraint.
// open is compared as a boolean; every other field as text.
// Unknown fields and unparsable booleans never match.
func (f Filter) Match(issue Issue) bool {
	for key, want := range f {
		if key == FieldOpen {
			b, err := ParseOpen(want)
			if err != nil || b != issue.Open {
				return false
			}
			continue
		}
		got, ok := issue.Field(key)
		if !ok || got != want {
			return false
		}
	}
	return true
}
