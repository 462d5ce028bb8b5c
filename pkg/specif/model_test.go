package specif

import (
	"errors"
	"reflect"
	"testing"
)

func validModel() *Model {
	return &Model{
		ResourceClasses: []ResourceClass{
			{ID: "RC-Folder"},
			{ID: "RC-Actor", PropertyClasses: []string{"PC-Name"}},
		},
		StatementClasses: []StatementClass{{ID: "SC-serves"}, {ID: "SC-mentions"}},
		Resources: []Resource{
			{ID: "root", Class: "RC-Folder"},
			{ID: "a", Class: "RC-Actor", Properties: []Property{{Class: "PC-Name", Value: "A"}}},
			{ID: "b", Class: "RC-Actor"},
		},
		Statements: []Statement{
			{ID: "s1", Class: "SC-serves", Subject: "a", Object: "b"},
			{ID: "s2", Class: "SC-mentions", Subject: "root", Object: "s1"},
		},
		Hierarchies: []HierarchyNode{
			{ID: "n-root", Resource: "root", Nodes: []HierarchyNode{
				{ID: "n-a", Resource: "a"},
				{ID: "n-b", Resource: "b"},
			}},
		},
	}
}

func TestValidate(t *testing.T) {
	if err := validModel().Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}

	tests := []struct {
		name   string
		mutate func(m *Model)
		want   error
	}{
		{"duplicate resource", func(m *Model) { m.Resources[2].ID = "a" }, ErrDuplicateID},
		{"statement shares resource id", func(m *Model) { m.Statements[0].ID = "b" }, ErrDuplicateID},
		{"unknown resource class", func(m *Model) { m.Resources[1].Class = "RC-Missing" }, ErrUnknownClass},
		{"unknown statement class", func(m *Model) { m.Statements[0].Class = "SC-missing" }, ErrUnknownClass},
		{"dangling subject", func(m *Model) { m.Statements[0].Subject = "x" }, ErrDanglingSubject},
		{"statement as subject", func(m *Model) { m.Statements[1].Subject = "s1" }, ErrDanglingSubject},
		{"dangling object", func(m *Model) { m.Statements[0].Object = "x" }, ErrDanglingObject},
		{"dangling hierarchy", func(m *Model) { m.Hierarchies[0].Nodes[1].Resource = "x" }, ErrDanglingHierarchy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := validModel()
			tt.mutate(m)
			if err := m.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestWalk(t *testing.T) {
	m := validModel()

	var ids []string
	var depths []int
	Walk(m.Hierarchies, func(n *HierarchyNode, depth int) bool {
		ids = append(ids, n.ID)
		depths = append(depths, depth)
		return true
	})
	if want := []string{"n-root", "n-a", "n-b"}; !reflect.DeepEqual(ids, want) {
		t.Errorf("Walk order = %v, want %v", ids, want)
	}
	if want := []int{0, 1, 1}; !reflect.DeepEqual(depths, want) {
		t.Errorf("Walk depths = %v, want %v", depths, want)
	}

	visited := 0
	Walk(m.Hierarchies, func(n *HierarchyNode, _ int) bool {
		visited++
		return n.ID != "n-a"
	})
	if visited != 2 {
		t.Errorf("Walk should stop when fn returns false, visited %d", visited)
	}
}

func TestLookups(t *testing.T) {
	m := validModel()

	r, ok := m.Resource("a")
	if !ok || r.Class != "RC-Actor" {
		t.Errorf("Resource(a) = %v, %v", r, ok)
	}
	if v, ok := r.Property("PC-Name"); !ok || v != "A" {
		t.Errorf("Property(PC-Name) = %q, %v", v, ok)
	}
	if _, ok := m.Resource("missing"); ok {
		t.Error("Resource(missing) should not be found")
	}
	if s, ok := m.Statement("s1"); !ok || s.Object != "b" {
		t.Errorf("Statement(s1) = %v, %v", s, ok)
	}
	if got := m.StatementsOf("SC-serves"); len(got) != 1 || got[0].ID != "s1" {
		t.Errorf("StatementsOf(SC-serves) = %v", got)
	}
	if !m.ResourceClasses[1].HasPropertyClass("PC-Name") {
		t.Error("RC-Actor should list PC-Name")
	}
}

func TestStats(t *testing.T) {
	st := validModel().Stats()

	if st.Resources != 3 || st.Statements != 2 || st.HierarchyNodes != 3 {
		t.Errorf("unexpected counts: %+v", st)
	}
	if st.ResourcesByClass["RC-Actor"] != 2 {
		t.Errorf("ResourcesByClass[RC-Actor] = %d, want 2", st.ResourcesByClass["RC-Actor"])
	}
	if got := SortedClasses(st.StatementsByClass); !reflect.DeepEqual(got, []string{"SC-mentions", "SC-serves"}) {
		t.Errorf("SortedClasses = %v", got)
	}
}
