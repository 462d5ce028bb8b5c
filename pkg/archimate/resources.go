package archimate

import "github.com/matzehuels/archispec/pkg/specif"

// resourceTable holds resources in insertion order, unique by id.
type resourceTable struct {
	order []*specif.Resource
	byID  map[string]*specif.Resource
}

func newResourceTable() *resourceTable {
	return &resourceTable{byID: make(map[string]*specif.Resource)}
}

// add inserts r unless its id is taken and reports whether it was added.
func (t *resourceTable) add(r specif.Resource) bool {
	if _, ok := t.byID[r.ID]; ok {
		return false
	}
	res := &r
	t.order = append(t.order, res)
	t.byID[r.ID] = res
	return true
}

func (t *resourceTable) get(id string) (*specif.Resource, bool) {
	r, ok := t.byID[id]
	return r, ok
}

func (t *resourceTable) has(id string) bool {
	_, ok := t.byID[id]
	return ok
}

func (t *resourceTable) list() []specif.Resource {
	out := make([]specif.Resource, len(t.order))
	for i, r := range t.order {
		out[i] = *r
	}
	return out
}
