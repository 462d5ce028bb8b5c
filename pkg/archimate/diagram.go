package archimate

import (
	"github.com/matzehuels/archispec/pkg/specif"
	"github.com/matzehuels/archispec/pkg/xmltree"
)

// placedNode is an element occurrence in a flat view.
type placedNode struct {
	ref    string
	bounds Rect
}

// analyzeView registers a diagram resource for view together with its
// shows statements and queues the containment the view depicts.
func (c *converter) analyzeView(view *xmltree.Node) {
	id := view.Attr("identifier")
	if id == "" {
		c.warn(WarnMissingID, "", "view without identifier")
		return
	}
	if c.props.isHidden(view) {
		c.drop(WarnHiddenView, id, "view is marked hidden")
		return
	}

	rc := c.schema.resourceClass(ClassDiagram)
	x := c.props.extract(view, rc)
	typ := "ArchiMate Diagram"
	if vp := view.Attr("viewpoint"); vp != "" {
		typ = vp + " Viewpoint"
	}
	x.Properties = append(x.Properties, specif.Property{Class: PropertyType, Value: typ})
	if !c.addResource(id, ClassDiagram, x) {
		return
	}
	c.diagrams = append(c.diagrams, id)

	nodes := view.ChildrenByTag("node")
	flat := true
	for _, n := range nodes {
		if len(n.ChildrenByTag("node")) > 0 {
			flat = false
			break
		}
	}
	for _, n := range nodes {
		c.walkNode(id, n, "")
	}
	if flat {
		c.containedByBounds(id, nodes)
	}

	for _, conn := range view.FindAll("connection") {
		ref := attr(conn, "relationshipRef", "relationshipref")
		if ref == "" {
			continue
		}
		c.shownRelationships[ref] = true
		c.statements.Add(specif.Statement{
			Class:     StatementShows,
			Subject:   id,
			Object:    ref,
			ChangedAt: c.opts.FileDate,
		})
	}
}

// walkNode records shows statements for n and its descendants. parent is
// the nearest enclosing node that references an element; nodes without an
// element reference (labels, diagram references) pass it through.
func (c *converter) walkNode(diagram string, n *xmltree.Node, parent string) {
	ref := attr(n, "elementRef", "elementref")
	if ref != "" {
		c.show(diagram, ref)
		if parent != "" && parent != ref {
			c.queueContainment(diagram, parent, ref)
		}
		parent = ref
	}
	for _, child := range n.ChildrenByTag("node") {
		c.walkNode(diagram, child, parent)
	}
}

// containedByBounds infers containment from rectangle geometry for views
// exported without nesting.
func (c *converter) containedByBounds(diagram string, nodes []*xmltree.Node) {
	var placed []placedNode
	for _, n := range nodes {
		ref := attr(n, "elementRef", "elementref")
		if ref == "" {
			continue
		}
		b, ok := boundsOf(n)
		if !ok {
			continue
		}
		placed = append(placed, placedNode{ref: ref, bounds: b})
	}
	for i, a := range placed {
		for _, b := range placed[i+1:] {
			if a.ref == b.ref {
				continue
			}
			if a.bounds.Contains(b.bounds) {
				c.queueContainment(diagram, a.ref, b.ref)
			}
			if b.bounds.Contains(a.bounds) {
				c.queueContainment(diagram, b.ref, a.ref)
			}
		}
	}
}

func (c *converter) show(diagram, element string) {
	c.shownElements[element] = true
	c.statements.Add(specif.Statement{
		Class:     StatementShows,
		Subject:   diagram,
		Object:    element,
		ChangedAt: c.opts.FileDate,
	})
}

func (c *converter) queueContainment(diagram, parent, child string) {
	c.containment = append(c.containment, containment{diagram: diagram, parent: parent, child: child})
	c.nestedPairs[newEndpoints(parent, child)] = true
}
