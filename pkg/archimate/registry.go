package archimate

import "github.com/matzehuels/archispec/pkg/specif"

// pairKey identifies a statement class over an unordered endpoint pair.
type pairKey struct {
	class  string
	lo, hi string
}

func newPairKey(class, a, b string) pairKey {
	if b < a {
		a, b = b, a
	}
	return pairKey{class: class, lo: a, hi: b}
}

// endpoints is an unordered endpoint pair regardless of class.
type endpoints struct{ lo, hi string }

func newEndpoints(a, b string) endpoints {
	if b < a {
		a, b = b, a
	}
	return endpoints{lo: a, hi: b}
}

// Registry holds the statements of one conversion in insertion order. At
// most one statement exists per class and unordered endpoint pair: adding
// B->A when A->B of the same class exists returns the existing statement.
type Registry struct {
	order  []string
	byID   map[string]*specif.Statement
	byPair map[pairKey]string
	byEnds map[endpoints][]string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byID:   make(map[string]*specif.Statement),
		byPair: make(map[pairKey]string),
		byEnds: make(map[endpoints][]string),
	}
}

// Add inserts s, deriving its id from class and endpoints when empty. If a
// statement with the same class and endpoints (in either orientation) or
// the same id already exists, Add returns that statement and false.
func (r *Registry) Add(s specif.Statement) (*specif.Statement, bool) {
	key := newPairKey(s.Class, s.Subject, s.Object)
	if id, ok := r.byPair[key]; ok {
		return r.byID[id], false
	}
	if s.ID == "" {
		s.ID = statementID(s.Class, s.Subject, s.Object)
	}
	if existing, ok := r.byID[s.ID]; ok {
		return existing, false
	}
	st := &s
	r.order = append(r.order, st.ID)
	r.byID[st.ID] = st
	r.byPair[key] = st.ID
	ends := newEndpoints(st.Subject, st.Object)
	r.byEnds[ends] = append(r.byEnds[ends], st.ID)
	return st, true
}

// Get returns the statement with the given id.
func (r *Registry) Get(id string) (*specif.Statement, bool) {
	s, ok := r.byID[id]
	return s, ok
}

// Has reports whether a statement with the given id exists.
func (r *Registry) Has(id string) bool {
	_, ok := r.byID[id]
	return ok
}

// Len returns the number of statements.
func (r *Registry) Len() int { return len(r.byID) }

// Between returns the first statement, in insertion order, connecting a and
// b in either orientation for which match returns true.
func (r *Registry) Between(a, b string, match func(*specif.Statement) bool) (*specif.Statement, bool) {
	for _, id := range r.byEnds[newEndpoints(a, b)] {
		if s := r.byID[id]; s != nil && (match == nil || match(s)) {
			return s, true
		}
	}
	return nil, false
}

// Retarget points the statement id at a new object, keeping indexes
// consistent. It returns false if id is unknown or the new pair is taken.
func (r *Registry) Retarget(id, object string) bool {
	s, ok := r.byID[id]
	if !ok {
		return false
	}
	newKey := newPairKey(s.Class, s.Subject, object)
	if other, taken := r.byPair[newKey]; taken && other != id {
		return false
	}
	r.unindex(s)
	s.Object = object
	r.byPair[newKey] = id
	ends := newEndpoints(s.Subject, s.Object)
	r.byEnds[ends] = append(r.byEnds[ends], id)
	return true
}

// Remove deletes the statement with the given id.
func (r *Registry) Remove(id string) {
	s, ok := r.byID[id]
	if !ok {
		return
	}
	r.unindex(s)
	delete(r.byID, id)
}

func (r *Registry) unindex(s *specif.Statement) {
	delete(r.byPair, newPairKey(s.Class, s.Subject, s.Object))
	ends := newEndpoints(s.Subject, s.Object)
	ids := r.byEnds[ends]
	for i, id := range ids {
		if id == s.ID {
			ids = append(ids[:i:i], ids[i+1:]...)
			break
		}
	}
	if len(ids) == 0 {
		delete(r.byEnds, ends)
	} else {
		r.byEnds[ends] = ids
	}
}

// Each calls fn for every live statement in insertion order. fn may remove
// the statement it is given.
func (r *Registry) Each(fn func(*specif.Statement)) {
	seen := make(map[string]bool, len(r.byID))
	for _, id := range r.order {
		if s, ok := r.byID[id]; ok && !seen[id] {
			seen[id] = true
			fn(s)
		}
	}
}

// Statements returns copies of all live statements in insertion order.
func (r *Registry) Statements() []specif.Statement {
	out := make([]specif.Statement, 0, len(r.byID))
	r.Each(func(s *specif.Statement) { out = append(out, *s) })
	return out
}

// RemoveDangling deletes statements whose subject is not a resource or whose
// object is neither a resource nor a live statement, repeating until no
// more are removed. Removing a statement can orphan statements that point
// at it. The removed statements are returned in removal order.
func (r *Registry) RemoveDangling(isResource func(string) bool) []specif.Statement {
	var removed []specif.Statement
	for {
		n := len(removed)
		r.Each(func(s *specif.Statement) {
			if isResource(s.Subject) && (isResource(s.Object) || r.Has(s.Object)) {
				return
			}
			removed = append(removed, *s)
			r.Remove(s.ID)
		})
		if len(removed) == n {
			return removed
		}
	}
}
