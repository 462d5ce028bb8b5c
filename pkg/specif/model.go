package specif

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

var (
	// ErrDuplicateID is returned by [Model.Validate] when two resources, two
	// statements, or a resource and a statement share an identifier.
	ErrDuplicateID = errors.New("duplicate id")

	// ErrDanglingSubject is returned by [Model.Validate] when a statement's
	// subject does not resolve to a resource.
	ErrDanglingSubject = errors.New("statement subject does not resolve to a resource")

	// ErrDanglingObject is returned by [Model.Validate] when a statement's
	// object resolves to neither a resource nor a statement.
	ErrDanglingObject = errors.New("statement object does not resolve")

	// ErrUnknownClass is returned by [Model.Validate] when a resource or
	// statement references an undeclared class.
	ErrUnknownClass = errors.New("unknown class")

	// ErrDanglingHierarchy is returned by [Model.Validate] when a hierarchy
	// node references a missing resource.
	ErrDanglingHierarchy = errors.New("hierarchy node references unknown resource")
)

// Validate checks identifier uniqueness, class references and referential
// closure. It returns the first violation found, wrapped with the offending id.
func (m *Model) Validate() error {
	ids := make(map[string]bool, len(m.Resources)+len(m.Statements))
	resources := make(map[string]bool, len(m.Resources))
	for _, r := range m.Resources {
		if ids[r.ID] {
			return fmt.Errorf("resource %s: %w", r.ID, ErrDuplicateID)
		}
		ids[r.ID] = true
		resources[r.ID] = true
	}
	statements := make(map[string]bool, len(m.Statements))
	for _, s := range m.Statements {
		if ids[s.ID] {
			return fmt.Errorf("statement %s: %w", s.ID, ErrDuplicateID)
		}
		ids[s.ID] = true
		statements[s.ID] = true
	}

	rcs := make(map[string]bool, len(m.ResourceClasses))
	for _, rc := range m.ResourceClasses {
		rcs[rc.ID] = true
	}
	scs := make(map[string]bool, len(m.StatementClasses))
	for _, sc := range m.StatementClasses {
		scs[sc.ID] = true
	}

	for _, r := range m.Resources {
		if !rcs[r.Class] {
			return fmt.Errorf("resource %s class %s: %w", r.ID, r.Class, ErrUnknownClass)
		}
	}
	for _, s := range m.Statements {
		if !scs[s.Class] {
			return fmt.Errorf("statement %s class %s: %w", s.ID, s.Class, ErrUnknownClass)
		}
		if !resources[s.Subject] {
			return fmt.Errorf("statement %s: %w", s.ID, ErrDanglingSubject)
		}
		if !resources[s.Object] && !statements[s.Object] {
			return fmt.Errorf("statement %s: %w", s.ID, ErrDanglingObject)
		}
	}

	var herr error
	Walk(m.Hierarchies, func(n *HierarchyNode, _ int) bool {
		if !resources[n.Resource] {
			herr = fmt.Errorf("node %s: %w", n.ID, ErrDanglingHierarchy)
			return false
		}
		return true
	})
	return herr
}

// Walk visits hierarchy nodes depth-first in pre-order. fn receives each
// node and its depth (0 for the given top-level nodes); returning false stops
// the walk.
func Walk(nodes []HierarchyNode, fn func(n *HierarchyNode, depth int) bool) {
	walk(nodes, 0, fn)
}

func walk(nodes []HierarchyNode, depth int, fn func(*HierarchyNode, int) bool) bool {
	for i := range nodes {
		if !fn(&nodes[i], depth) {
			return false
		}
		if !walk(nodes[i].Nodes, depth+1, fn) {
			return false
		}
	}
	return true
}

// Resource returns the resource with the given id.
func (m *Model) Resource(id string) (*Resource, bool) {
	for i := range m.Resources {
		if m.Resources[i].ID == id {
			return &m.Resources[i], true
		}
	}
	return nil, false
}

// Statement returns the statement with the given id.
func (m *Model) Statement(id string) (*Statement, bool) {
	for i := range m.Statements {
		if m.Statements[i].ID == id {
			return &m.Statements[i], true
		}
	}
	return nil, false
}

// StatementsOf returns all statements of the given class in model order.
func (m *Model) StatementsOf(class string) []Statement {
	var out []Statement
	for _, s := range m.Statements {
		if s.Class == class {
			out = append(out, s)
		}
	}
	return out
}

// Stats summarizes the size of a model.
type Stats struct {
	DataTypes         int
	PropertyClasses   int
	ResourceClasses   int
	StatementClasses  int
	Resources         int
	Statements        int
	HierarchyNodes    int
	ResourcesByClass  map[string]int
	StatementsByClass map[string]int
}

// Stats counts the entries of every collection and tallies resources and
// statements by class.
func (m *Model) Stats() Stats {
	st := Stats{
		DataTypes:         len(m.DataTypes),
		PropertyClasses:   len(m.PropertyClasses),
		ResourceClasses:   len(m.ResourceClasses),
		StatementClasses:  len(m.StatementClasses),
		Resources:         len(m.Resources),
		Statements:        len(m.Statements),
		ResourcesByClass:  map[string]int{},
		StatementsByClass: map[string]int{},
	}
	for _, r := range m.Resources {
		st.ResourcesByClass[r.Class]++
	}
	for _, s := range m.Statements {
		st.StatementsByClass[s.Class]++
	}
	Walk(m.Hierarchies, func(*HierarchyNode, int) bool {
		st.HierarchyNodes++
		return true
	})
	return st
}

// SortedClasses returns the keys of a per-class tally in ascending order.
func SortedClasses(counts map[string]int) []string {
	return slices.Sorted(maps.Keys(counts))
}
