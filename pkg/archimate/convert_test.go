package archimate

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/archispec/pkg/errors"
	"github.com/matzehuels/archispec/pkg/specif"
	"github.com/matzehuels/archispec/pkg/xmltree"
)

func TestConvertSample(t *testing.T) {
	res := convert(t, loadSample(t), Options{FileName: "webshop.xml"})
	m := res.Model
	salt := simpleHash("id-model")

	assert.Equal(t, specif.Schema, m.Schema)
	assert.Equal(t, "id-model", m.ID)
	assert.Equal(t, "Webshop", m.Title)
	assert.Equal(t, "Order handling of the web shop.", m.Description)
	assert.Equal(t, testDate, m.CreatedAt)

	assert.Equal(t, []string{
		"v1", "v2", "A", "B", "D", "E",
		"ArchiMate-" + salt,
		"F-" + simpleHash("Views"+salt),
		"FolderDiagrams-" + salt,
	}, resourceIDs(m))

	classes := map[string]string{"v1": ClassDiagram, "A": ClassActor, "B": ClassActor, "D": ClassState, "E": ClassEvent}
	for id, class := range classes {
		r, ok := m.Resource(id)
		require.True(t, ok, id)
		assert.Equal(t, class, r.Class, id)
	}

	assert.Equal(t, []WarningKind{WarnUnknownElementType, WarnDanglingStatement}, warningKinds(res.Warnings))
	assert.Equal(t, "X", res.Warnings[0].ID)
	assert.Equal(t, "r4", res.Warnings[1].ID)

	_, ok := m.Statement("r4")
	assert.False(t, ok, "flow to an unmapped element must be dropped")
	assert.Len(t, m.Statements, 7)
}

func TestConvertRelationshipClasses(t *testing.T) {
	m := convert(t, loadSample(t), Options{}).Model

	tests := []struct {
		id, class, subject, object string
	}{
		{"r1", StatementServes, "A", "B"},
		{"r2", StatementReads, "B", "D"},
		{"r3", StatementTriggers, "E", "A"},
	}
	for _, tt := range tests {
		s, ok := m.Statement(tt.id)
		require.True(t, ok, tt.id)
		assert.Equal(t, tt.class, s.Class, tt.id)
		assert.Equal(t, tt.subject, s.Subject, tt.id)
		assert.Equal(t, tt.object, s.Object, tt.id)
	}

	s, _ := m.Statement("r3")
	assert.Equal(t, "starts", s.Title)
}

func TestConvertCustomAndNativeProperties(t *testing.T) {
	m := convert(t, loadSample(t), Options{}).Model

	a, _ := m.Resource("A")
	assert.Equal(t, []specif.Property{
		{Class: PropertyName, Value: "Frontend"},
		{Class: "PC-pd-cost", Value: "42"},
		{Class: PropertyType, Value: "archimate:ApplicationComponent"},
	}, a.Properties)
	assert.Equal(t, "alice", a.CreatedBy)
	assert.Equal(t, "2024-03-01T10:00:00+02:00", a.ChangedAt)

	var cost *specif.PropertyClass
	for i := range m.PropertyClasses {
		if m.PropertyClasses[i].ID == "PC-pd-cost" {
			cost = &m.PropertyClasses[i]
		}
	}
	require.NotNil(t, cost)
	assert.Equal(t, "Cost", cost.Title)
	assert.Equal(t, DataTypeInteger, cost.DataType)

	for _, rc := range m.ResourceClasses {
		if rc.ID == ClassActor {
			assert.True(t, rc.HasPropertyClass("PC-pd-cost"))
		}
		if rc.ID == ClassState {
			assert.False(t, rc.HasPropertyClass("PC-pd-cost"))
		}
	}
	for _, pc := range m.PropertyClasses {
		assert.NotEqual(t, "PC-pd-author", pc.ID, "native properties must not create classes")
	}

	b, _ := m.Resource("B")
	v, ok := b.Property(PropertyText)
	assert.True(t, ok)
	assert.Equal(t, "Places orders.", v)
	assert.Equal(t, testDate, b.ChangedAt)

	v1, _ := m.Resource("v1")
	v, _ = v1.Property(PropertyType)
	assert.Equal(t, "Application Usage Viewpoint", v)
}

func TestConvertNestingDefersToExplicitRelationship(t *testing.T) {
	m := convert(t, loadSample(t), Options{}).Model

	assert.Empty(t, m.StatementsOf(StatementContains), "r1 already relates A and B")
	assert.Len(t, between(m, StatementShows, "v1", "r1"), 1)
}

func TestConvertHierarchy(t *testing.T) {
	m := convert(t, loadSample(t), Options{}).Model
	salt := simpleHash("id-model")

	require.Len(t, m.Hierarchies, 1)
	root := m.Hierarchies[0]
	assert.Equal(t, "ArchiMate-"+salt, root.Resource)
	require.Len(t, root.Nodes, 2, "the empty folder is pruned")

	views := root.Nodes[0]
	assert.Equal(t, "F-"+simpleHash("Views"+salt), views.Resource)
	require.Len(t, views.Nodes, 1)
	assert.Equal(t, "v1", views.Nodes[0].Resource)

	diagrams := root.Nodes[1]
	assert.Equal(t, "FolderDiagrams-"+salt, diagrams.Resource)
	require.Len(t, diagrams.Nodes, 1)
	assert.Equal(t, "v2", diagrams.Nodes[0].Resource)

	folder, _ := m.Resource(diagrams.Resource)
	assert.Equal(t, DefaultDiagramsFolder, folder.Title)
	v, _ := folder.Property(PropertyType)
	assert.Equal(t, DefaultDiagramsType, v)
}

func TestConvertEveryDiagramPlacedOnce(t *testing.T) {
	d := doc{
		elements: []*xmltree.Node{element("A", "BusinessActor", "A")},
		views: []*xmltree.Node{
			view("v1", "One", node("A", box("0", "0", "10", "10"))),
			view("v2", "Two"),
			view("v3", "Three"),
		},
		organizations: []*xmltree.Node{
			xmltree.E("item", nil, xmltree.T("label", "Views"),
				xmltree.E("item", []string{"identifierRef", "v1"}),
				xmltree.E("item", []string{"identifierRef", "v1"}),
				xmltree.E("item", []string{"identifierRef", "missing"}),
				xmltree.E("item", nil, xmltree.T("label", "Nested"),
					xmltree.E("item", []string{"identifierRef", "v3"}),
				),
			),
		},
	}
	m := convert(t, d.build(), Options{}).Model

	counts := map[string]int{}
	specif.Walk(m.Hierarchies, func(n *specif.HierarchyNode, _ int) bool {
		counts[n.Resource]++
		return true
	})
	for _, id := range []string{"v1", "v2", "v3"} {
		assert.Equal(t, 1, counts[id], id)
	}
	assert.Zero(t, counts["missing"])
}

func TestConvertMissingModel(t *testing.T) {
	_, err := Convert(xmltree.E("something", nil, xmltree.E("else", nil)), Options{})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeMissingModel, errors.GetCode(err))
}

func TestConvertModelBelowRoot(t *testing.T) {
	envelope := xmltree.E("envelope", nil, doc{
		elements: []*xmltree.Node{element("A", "BusinessActor", "A")},
	}.build())
	m := convert(t, envelope, Options{}).Model
	_, ok := m.Resource("A")
	assert.True(t, ok)
}

func TestConvertTitleFallback(t *testing.T) {
	root := xmltree.E("model", []string{"identifier", "m"})
	m := convert(t, root, Options{FileName: "/tmp/landscape.xml"}).Model
	assert.Equal(t, "landscape", m.Title)
}

func TestConvertNestedNodesCreateContains(t *testing.T) {
	d := doc{
		elements: []*xmltree.Node{
			element("A", "ApplicationComponent", "Parent"),
			element("B", "ApplicationComponent", "Child"),
			element("C", "DataObject", "Grandchild"),
		},
		views: []*xmltree.Node{
			view("v", "Nested",
				node("A", box("0", "0", "400", "300"),
					xmltree.E("node", []string{"identifier", "label"},
						node("B", box("10", "10", "200", "150"),
							node("C", box("20", "20", "50", "50")),
						),
					),
				),
			),
		},
	}
	m := convert(t, d.build(), Options{}).Model

	ab := between(m, StatementContains, "A", "B")
	bc := between(m, StatementContains, "B", "C")
	require.Len(t, ab, 1, "a label node passes its parent through")
	require.Len(t, bc, 1)
	assert.Empty(t, between(m, StatementContains, "A", "C"), "only direct parents contain")

	assert.Len(t, between(m, StatementShows, "v", ab[0].ID), 1)
	assert.Len(t, between(m, StatementShows, "v", bc[0].ID), 1)
	for _, id := range []string{"A", "B", "C"} {
		assert.Len(t, between(m, StatementShows, "v", id), 1, id)
	}
}

func TestConvertFlatViewGeometry(t *testing.T) {
	d := doc{
		elements: []*xmltree.Node{
			element("A", "Node", "Server"),
			element("B", "SystemSoftware", "Database"),
			element("C", "SystemSoftware", "Elsewhere"),
		},
		views: []*xmltree.Node{
			view("v", "Flat",
				node("A", box("0", "0", "300", "200")),
				node("B", box("20", "30", "100", "50")),
				node("C", box("400", "0", "100", "50")),
				node("A", box("0", "0", "300", "200")),
			),
		},
	}
	m := convert(t, d.build(), Options{}).Model

	contains := m.StatementsOf(StatementContains)
	require.Len(t, contains, 1)
	assert.Equal(t, "A", contains[0].Subject)
	assert.Equal(t, "B", contains[0].Object)
}

func TestConvertGeometryTolerance(t *testing.T) {
	d := doc{
		elements: []*xmltree.Node{
			element("A", "Node", "Outer"),
			element("B", "Node", "Edge"),
		},
		views: []*xmltree.Node{
			view("v", "Flat",
				node("A", box("10", "10", "100", "100")),
				node("B", box("9.5", "10", "100.4", "100")),
			),
		},
	}
	m := convert(t, d.build(), Options{}).Model
	assert.Len(t, between(m, StatementContains, "A", "B"), 1)
}

func TestConvertContainmentIsSymmetric(t *testing.T) {
	nested := doc{
		elements: []*xmltree.Node{element("A", "Node", "A"), element("B", "Node", "B")},
		views:    []*xmltree.Node{view("v", "V", node("A", box("0", "0", "100", "100"), node("B", box("10", "10", "20", "20"))))},
	}
	flat := doc{
		elements: nested.elements,
		views:    []*xmltree.Node{view("v", "V", node("A", box("0", "0", "100", "100")), node("B", box("10", "10", "20", "20")))},
	}
	a := convert(t, nested.build(), Options{}).Model
	b := convert(t, flat.build(), Options{}).Model
	assert.Equal(t, a.StatementsOf(StatementContains), b.StatementsOf(StatementContains))
}

func TestConvertDeduplicatesReverseStatements(t *testing.T) {
	d := doc{
		elements: []*xmltree.Node{element("A", "ApplicationComponent", "A"), element("B", "ApplicationComponent", "B")},
		relationships: []*xmltree.Node{
			relationship("r1", "Association", "A", "B"),
			relationship("r2", "Association", "B", "A", "isDirected", "true"),
			relationship("r3", "Serving", "A", "B"),
		},
	}
	m := convert(t, d.build(), Options{}).Model

	assoc := m.StatementsOf(StatementIsAssociatedWith)
	require.Len(t, assoc, 1)
	assert.Equal(t, "r1", assoc[0].ID, "the first statement wins")
	assert.True(t, assoc[0].IsUndirected)
	assert.Len(t, m.StatementsOf(StatementServes), 1, "other classes between the pair are kept")
}

func TestConvertStrictSchema(t *testing.T) {
	d := doc{
		elements: []*xmltree.Node{
			element("D", "DataObject", "Data"),
			element("A", "ApplicationComponent", "App"),
		},
		relationships: []*xmltree.Node{relationship("r", "Serving", "D", "A")},
	}

	strict := convert(t, d.build(), Options{StrictSchema: true})
	_, ok := strict.Model.Statement("r")
	assert.False(t, ok)
	assert.Contains(t, warningKinds(strict.Warnings), WarnSchemaViolation)

	extend := convert(t, d.build(), Options{})
	_, ok = extend.Model.Statement("r")
	assert.True(t, ok)
	for _, sc := range extend.Model.StatementClasses {
		if sc.ID == StatementServes {
			assert.Contains(t, sc.SubjectClasses, ClassState)
		}
	}
}

func TestConvertShowsIsExemptFromSchema(t *testing.T) {
	d := doc{
		elements: []*xmltree.Node{element("G", "Grouping", "Group"), element("L", "Location", "Site")},
		views:    []*xmltree.Node{view("v", "V", node("G", box("0", "0", "10", "10")), node("L", box("50", "50", "10", "10")))},
	}
	m := convert(t, d.build(), Options{StrictSchema: true}).Model
	assert.Len(t, m.StatementsOf(StatementShows), 2)
}

func TestConvertVisibleOnly(t *testing.T) {
	d := doc{
		elements: []*xmltree.Node{
			element("A", "ApplicationComponent", "Drawn"),
			element("B", "ApplicationComponent", "Drawn too"),
			element("H", "ApplicationComponent", "Hidden"),
		},
		relationships: []*xmltree.Node{
			relationship("drawn", "Serving", "A", "B"),
			relationship("undrawn", "Flow", "A", "B"),
			relationship("composed", "Composition", "B", "A"),
			relationship("offscreen", "Serving", "A", "H"),
		},
		views: []*xmltree.Node{
			view("v", "V",
				node("A", box("0", "0", "10", "10")),
				node("B", box("50", "0", "10", "10")),
				connection("drawn"),
			),
		},
	}

	res := convert(t, d.build(), Options{VisibleOnly: true})
	m := res.Model
	_, ok := m.Resource("H")
	assert.False(t, ok)
	_, ok = m.Statement("drawn")
	assert.True(t, ok)
	_, ok = m.Statement("undrawn")
	assert.False(t, ok)
	_, ok = m.Statement("composed")
	assert.True(t, ok, "contains survives visibility filtering")
	assert.Contains(t, warningKinds(res.Warnings), WarnNotVisible)
	_, ok = m.Statement("offscreen")
	assert.False(t, ok, "relationship to a filtered element is absent")
	assert.Empty(t, showsOf(m, "offscreen"))

	all := convert(t, d.build(), Options{}).Model
	_, ok = all.Resource("H")
	assert.True(t, ok)
	_, ok = all.Statement("undrawn")
	assert.True(t, ok)
}

func TestConvertVisibleOnlyKeepsNestedRelationship(t *testing.T) {
	d := doc{
		elements: []*xmltree.Node{element("A", "Node", "A"), element("B", "Node", "B")},
		relationships: []*xmltree.Node{
			relationship("agg", "Aggregation", "A", "B"),
		},
		views: []*xmltree.Node{view("v", "V", node("A", box("0", "0", "100", "100"), node("B", box("10", "10", "20", "20"))))},
	}
	m := convert(t, d.build(), Options{VisibleOnly: true}).Model

	_, ok := m.Statement("agg")
	assert.True(t, ok)
	assert.Empty(t, m.StatementsOf(StatementContains))
	assert.Len(t, between(m, StatementShows, "v", "agg"), 1)
}

func TestConvertHiddenViews(t *testing.T) {
	hidden := view("hidden", "Scratch", node("S", box("0", "0", "10", "10")), connection("scratch"))
	hidden.Children = append(hidden.Children, propsNode(property("pd-hide", "TRUE")))
	d := doc{
		elements:      []*xmltree.Node{element("A", "BusinessActor", "Visible"), element("S", "BusinessActor", "Scratch only")},
		relationships: []*xmltree.Node{relationship("scratch", "Serving", "A", "S")},
		views:         []*xmltree.Node{view("shown", "Main", node("A", box("0", "0", "10", "10")), connection("scratch")), hidden},
		propertyDefs:  []*xmltree.Node{propertyDef("pd-hide", "boolean", "Hidden")},
	}

	res := convert(t, d.build(), Options{HiddenDiagramProperties: []string{"hidden"}, VisibleOnly: true})
	m := res.Model
	_, ok := m.Resource("hidden")
	assert.False(t, ok)
	_, ok = m.Resource("S")
	assert.False(t, ok, "elements shown only by hidden views are invisible")
	_, ok = m.Resource("A")
	assert.True(t, ok)
	assert.Contains(t, warningKinds(res.Warnings), WarnHiddenView)
	_, ok = m.Statement("scratch")
	assert.False(t, ok, "relationship to an element shown only by a hidden view is absent")
	assert.Empty(t, showsOf(m, "scratch"))

	m = convert(t, d.build(), Options{}).Model
	_, ok = m.Resource("hidden")
	assert.True(t, ok, "no hiding properties configured")
}

func TestConvertPropertyTitles(t *testing.T) {
	d := doc{
		elements: []*xmltree.Node{
			element("A", "BusinessActor", "A", propsNode(property("pd-1", "1"), property("pd-2", "2"))),
		},
		propertyDefs: []*xmltree.Node{
			propertyDef("pd-1", "number", "Cost"),
			propertyDef("pd-2", "number", "Cost"),
		},
	}

	titles := func(m *specif.Model) map[string]string {
		out := map[string]string{}
		for _, pc := range m.PropertyClasses {
			out[pc.ID] = pc.Title
		}
		return out
	}

	plain := titles(convert(t, d.build(), Options{}).Model)
	assert.Equal(t, "Cost", plain["PC-pd-1"])
	assert.Equal(t, "Cost", plain["PC-pd-2"])

	disambiguated := titles(convert(t, d.build(), Options{DisambiguatePropertyTitles: true}).Model)
	assert.Equal(t, "Cost", disambiguated["PC-pd-1"])
	assert.Equal(t, "Cost (pd-2)", disambiguated["PC-pd-2"])
}

func TestConvertPropertyErrors(t *testing.T) {
	d := doc{
		elements: []*xmltree.Node{
			element("A", "BusinessActor", "A", propsNode(
				property("pd-money", "10 EUR"),
				property("pd-unknown", "x"),
				property("pd-date", "not a date"),
			)),
			element("B", "BusinessActor", "B", propsNode(property("pd-money", "5 EUR"))),
		},
		propertyDefs: []*xmltree.Node{
			propertyDef("pd-money", "currency", "Budget"),
			propertyDef("pd-date", "date", "Deadline"),
		},
	}
	res := convert(t, d.build(), Options{})

	assert.Equal(t, []WarningKind{WarnUnsupportedPropertyType, WarnUnknownPropertyDefinition, WarnInvalidDate}, warningKinds(res.Warnings))
	a, _ := res.Model.Resource("A")
	_, ok := a.Property("PC-pd-money")
	assert.False(t, ok)
	_, ok = a.Property("PC-pd-date")
	assert.False(t, ok)
}

func TestConvertIntegerProperties(t *testing.T) {
	d := doc{
		elements: []*xmltree.Node{
			element("A", "BusinessActor", "A", propsNode(property("pd-cost", " 12 "))),
			element("B", "BusinessActor", "B", propsNode(property("pd-cost", "3.0"))),
			element("C", "BusinessActor", "C", propsNode(property("pd-cost", "12.5"))),
			element("D", "BusinessActor", "D", propsNode(property("pd-cost", "10 EUR"))),
		},
		propertyDefs: []*xmltree.Node{propertyDef("pd-cost", "number", "Cost")},
	}
	res := convert(t, d.build(), Options{})

	assert.Equal(t, []WarningKind{WarnInvalidNumber, WarnInvalidNumber}, warningKinds(res.Warnings))
	for id, want := range map[string]string{"A": "12", "B": "3"} {
		r, _ := res.Model.Resource(id)
		v, ok := r.Property("PC-pd-cost")
		assert.True(t, ok, id)
		assert.Equal(t, want, v, id)
	}
	for _, id := range []string{"C", "D"} {
		r, _ := res.Model.Resource(id)
		_, ok := r.Property("PC-pd-cost")
		assert.False(t, ok, id)
	}
}

func TestConvertMergedRelationshipKeepsShows(t *testing.T) {
	elements := []*xmltree.Node{element("A", "ApplicationComponent", "A"), element("B", "ApplicationComponent", "B")}
	relationships := []*xmltree.Node{
		relationship("r1", "Serving", "A", "B"),
		relationship("r2", "Serving", "B", "A"),
	}
	nodes := []*xmltree.Node{node("A", box("0", "0", "10", "10")), node("B", box("50", "0", "10", "10"))}

	t.Run("merged only", func(t *testing.T) {
		d := doc{
			elements:      elements,
			relationships: relationships,
			views:         []*xmltree.Node{view("v", "V", append(nodes, connection("r2"))...)},
		}
		res := convert(t, d.build(), Options{})

		_, ok := res.Model.Statement("r2")
		assert.False(t, ok)
		assert.Len(t, between(res.Model, StatementShows, "v", "r1"), 1)
		assert.Empty(t, showsOf(res.Model, "r2"))
		assert.NotContains(t, warningKinds(res.Warnings), WarnDanglingStatement)
	})

	t.Run("both drawn", func(t *testing.T) {
		d := doc{
			elements:      elements,
			relationships: relationships,
			views:         []*xmltree.Node{view("v", "V", append(nodes, connection("r1"), connection("r2"))...)},
		}
		res := convert(t, d.build(), Options{})

		assert.Len(t, between(res.Model, StatementShows, "v", "r1"), 1)
		assert.Empty(t, showsOf(res.Model, "r2"))
		assert.NotContains(t, warningKinds(res.Warnings), WarnDanglingStatement)
	})

	t.Run("visible only", func(t *testing.T) {
		d := doc{
			elements:      elements,
			relationships: relationships,
			views:         []*xmltree.Node{view("v", "V", append(nodes, connection("r2"))...)},
		}
		m := convert(t, d.build(), Options{VisibleOnly: true}).Model

		_, ok := m.Statement("r2")
		assert.True(t, ok, "r1 is not drawn, so r2 is kept")
		assert.Len(t, between(m, StatementShows, "v", "r2"), 1)
	})
}

func TestConvertTruncatesTitles(t *testing.T) {
	d := doc{elements: []*xmltree.Node{element("A", "BusinessActor", "abcdefghij")}}
	m := convert(t, d.build(), Options{TitleLength: 4}).Model
	a, _ := m.Resource("A")
	assert.Equal(t, "abcd", a.Title)
}

func TestConvertClassificationOverrides(t *testing.T) {
	d := doc{
		elements: []*xmltree.Node{
			element("A", "BusinessActor", "A"),
			element("J", "AndJunction", "J"),
		},
		relationships: []*xmltree.Node{relationship("r", "Access", "A", "J", "accessType", "Read")},
	}
	opts := Options{
		ElementTypes:      map[string]string{"AndJunction": ClassState},
		RelationshipTypes: map[string]string{"Access:Read": "SC-consults"},
	}
	m := convert(t, d.build(), opts).Model

	j, ok := m.Resource("J")
	require.True(t, ok)
	assert.Equal(t, ClassState, j.Class)
	s, ok := m.Statement("r")
	require.True(t, ok)
	assert.Equal(t, "SC-consults", s.Class)
}

func TestConvertGlossary(t *testing.T) {
	d := doc{
		elements: []*xmltree.Node{
			element("b", "BusinessActor", "beta"),
			element("a", "BusinessActor", "Alpha"),
			element("s", "DataObject", "Record"),
		},
	}
	m := convert(t, d.build(), Options{Glossary: true}).Model
	salt := simpleHash("id-test")

	root := m.Hierarchies[0]
	require.Len(t, root.Nodes, 1)
	glossary := root.Nodes[0]
	assert.Equal(t, "FolderGlossary-"+salt, glossary.Resource)
	require.Len(t, glossary.Nodes, 2, "empty class folders are omitted")

	actors := glossary.Nodes[0]
	assert.Equal(t, "FolderActor-"+salt, actors.Resource)
	require.Len(t, actors.Nodes, 2)
	assert.Equal(t, "a", actors.Nodes[0].Resource)
	assert.Equal(t, "b", actors.Nodes[1].Resource)
}

func TestConvertDeterministic(t *testing.T) {
	render := func() []byte {
		res := convert(t, loadSample(t), Options{Glossary: true})
		data, err := json.Marshal(res.Model)
		require.NoError(t, err)
		return data
	}
	assert.Equal(t, render(), render())
}

func TestConvertLogsWarnings(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)
	convert(t, loadSample(t), Options{Logger: logger})
	assert.Contains(t, buf.String(), "element type not mapped")
}
