package archimate

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/matzehuels/archispec/pkg/specif"
	"github.com/matzehuels/archispec/pkg/xmltree"
)

const testDate = "2024-05-01T12:00:00Z"

func element(id, typ, name string, children ...*xmltree.Node) *xmltree.Node {
	return xmltree.E("element", []string{"identifier", id, "xsi:type", typ},
		append([]*xmltree.Node{xmltree.T("name", name)}, children...)...)
}

func relationship(id, typ, source, target string, attrs ...string) *xmltree.Node {
	return xmltree.E("relationship", append([]string{"identifier", id, "xsi:type", typ, "source", source, "target", target}, attrs...))
}

func view(id, name string, children ...*xmltree.Node) *xmltree.Node {
	return xmltree.E("view", []string{"identifier", id, "xsi:type", "Diagram"},
		append([]*xmltree.Node{xmltree.T("name", name)}, children...)...)
}

func node(ref string, bounds [4]string, children ...*xmltree.Node) *xmltree.Node {
	return xmltree.E("node", []string{"identifier", "n-" + ref, "elementRef", ref,
		"x", bounds[0], "y", bounds[1], "w", bounds[2], "h", bounds[3]}, children...)
}

func connection(ref string) *xmltree.Node {
	return xmltree.E("connection", []string{"identifier", "c-" + ref, "relationshipRef", ref})
}

func property(def, value string) *xmltree.Node {
	return xmltree.E("property", []string{"propertyDefinitionRef", def}, xmltree.T("value", value))
}

func propsNode(props ...*xmltree.Node) *xmltree.Node {
	return xmltree.E("properties", nil, props...)
}

func propertyDef(id, typ, name string) *xmltree.Node {
	return xmltree.E("propertyDefinition", []string{"identifier", id, "type", typ}, xmltree.T("name", name))
}

// doc assembles a model from sections; nil sections are omitted.
type doc struct {
	elements      []*xmltree.Node
	relationships []*xmltree.Node
	views         []*xmltree.Node
	organizations []*xmltree.Node
	propertyDefs  []*xmltree.Node
}

func (d doc) build() *xmltree.Node {
	return xmltree.E("model", []string{"identifier", "id-test"},
		xmltree.T("name", "Test Model"),
		xmltree.E("elements", nil, d.elements...),
		xmltree.E("relationships", nil, d.relationships...),
		xmltree.E("organizations", nil, d.organizations...),
		xmltree.E("propertyDefinitions", nil, d.propertyDefs...),
		xmltree.E("views", nil, xmltree.E("diagrams", nil, d.views...)),
	)
}

func convert(t *testing.T, root *xmltree.Node, opts Options) *Result {
	t.Helper()
	if opts.FileDate == "" {
		opts.FileDate = testDate
	}
	res, err := Convert(root, opts)
	require.NoError(t, err)
	require.NoError(t, res.Model.Validate())
	return res
}

func loadSample(t *testing.T) *xmltree.Node {
	t.Helper()
	root, err := xmltree.ParseFile("testdata/sample.xml")
	require.NoError(t, err)
	return root
}

func resourceIDs(m *specif.Model) []string {
	ids := make([]string, len(m.Resources))
	for i, r := range m.Resources {
		ids[i] = r.ID
	}
	return ids
}

// between returns statements of class connecting subject and object.
func between(m *specif.Model, class, subject, object string) []specif.Statement {
	var out []specif.Statement
	for _, s := range m.Statements {
		if s.Class == class && s.Subject == subject && s.Object == object {
			out = append(out, s)
		}
	}
	return out
}

// showsOf returns shows statements whose object is id.
func showsOf(m *specif.Model, id string) []specif.Statement {
	var out []specif.Statement
	for _, s := range m.Statements {
		if s.Class == StatementShows && s.Object == id {
			out = append(out, s)
		}
	}
	return out
}

func warningKinds(ws []Warning) []WarningKind {
	kinds := make([]WarningKind, len(ws))
	for i, w := range ws {
		kinds[i] = w.Kind
	}
	return kinds
}

func box(x, y, w, h string) [4]string { return [4]string{x, y, w, h} }
