// Package selection tracks row ids picked for a batch action.
package selection

// Set is an immutable, insertion-ordered set of row ids. The zero value is
// the empty set.
type Set struct {
	ids []string
}

func New(ids ...string) Set {
	var s Set
	for _, id := range ids {
		if !s.Contains(id) {
			s = s.Toggle(id)
		}
	}
	return s
}

// Toggle returns a new set with id added when absent and removed when present.
func (s Set) Toggle(id string) Set {
	out := make([]string, 0, len(s.ids)+1)
	found := false
	for _, v := range s.ids {
		if v == id {
			found = true
			continue
		}
		out = append(out, v)
	}
	if !found {
		out = append(out, id)
	}
	return Set{ids: out}
}

func (s Set) Clear() Set { return Set{} }

func (s Set) Contains(id string) bool {
	for _, v := range s.ids {
		if v == id {
			return true
		}
	}
	return false
}

func (s Set) Len() int { return len(s.ids) }

// IDs returns the members in insertion order.
func (s Set) IDs() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

// Equal compares membership, not order.
func (s Set) Equal(o Set) bool {
	if s.Len() != o.Len() {
		return false
	}
	for _, v := range s.ids {
		if !o.Contains(v) {
			return false
		}
	}
	return true
}
