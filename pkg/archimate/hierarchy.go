package archimate

import (
	"sort"
	"strings"

	"github.com/matzehuels/archispec/pkg/specif"
	"github.com/matzehuels/archispec/pkg/xmltree"
)

// hierarchy builds the single root tree of a conversion.
type hierarchy struct {
	c       *converter
	placed  map[string]bool
	folders map[string]specif.Resource // folder resources by id, created lazily
}

func (c *converter) buildHierarchy(model *xmltree.Node, root specif.Resource) specif.HierarchyNode {
	h := &hierarchy{
		c:       c,
		placed:  make(map[string]bool),
		folders: make(map[string]specif.Resource),
	}
	rootNode := specif.HierarchyNode{ID: "H-" + root.ID, Resource: root.ID, ChangedAt: c.opts.FileDate}

	orgs := model.Child("organizations")
	if orgs == nil {
		orgs = model.Child("organization")
	}
	for _, item := range orgs.ChildrenByTag("item") {
		if n, ok := h.item(item, rootNode.ID, len(rootNode.Nodes)); ok {
			rootNode.Nodes = append(rootNode.Nodes, n)
		}
	}

	if n, ok := h.unplacedDiagrams(rootNode.ID, len(rootNode.Nodes)); ok {
		rootNode.Nodes = append(rootNode.Nodes, n)
	}
	if c.opts.Glossary {
		if n, ok := h.glossary(rootNode.ID, len(rootNode.Nodes)); ok {
			rootNode.Nodes = append(rootNode.Nodes, n)
		}
	}

	// Folder resources follow the tree's pre-order.
	specif.Walk([]specif.HierarchyNode{rootNode}, func(n *specif.HierarchyNode, _ int) bool {
		if f, ok := h.folders[n.Resource]; ok {
			c.resources.add(f)
		}
		return true
	})
	return rootNode
}

// item converts one organizations entry. References place a diagram;
// labelled entries become folders. Folders that end up empty are dropped.
func (h *hierarchy) item(item *xmltree.Node, parent string, index int) (specif.HierarchyNode, bool) {
	at := h.c.opts.FileDate
	if ref := attr(item, "identifierRef", "identifierref"); ref != "" {
		if !h.placeable(ref) {
			return specif.HierarchyNode{}, false
		}
		h.placed[ref] = true
		return specif.HierarchyNode{ID: nodeID(parent, index, ref), Resource: ref, ChangedAt: at}, true
	}

	label := nameOf(item)
	if label == "" {
		return specif.HierarchyNode{}, false
	}
	folderID := "F-" + simpleHash(label+h.c.salt)
	node := specif.HierarchyNode{ID: nodeID(parent, index, folderID), Resource: folderID, ChangedAt: at}
	for _, child := range item.ChildrenByTag("item") {
		if n, ok := h.item(child, node.ID, len(node.Nodes)); ok {
			node.Nodes = append(node.Nodes, n)
		}
	}
	if len(node.Nodes) == 0 {
		return specif.HierarchyNode{}, false
	}
	if _, ok := h.folders[folderID]; !ok {
		x := h.c.props.extract(item, h.c.schema.resourceClass(ClassFolder))
		x.Properties = append(x.Properties, specif.Property{Class: PropertyType, Value: h.c.opts.FolderType})
		h.folders[folderID] = h.c.newResource(folderID, ClassFolder, x)
	}
	return node, true
}

// placeable reports whether id names a surviving, not yet placed diagram.
func (h *hierarchy) placeable(id string) bool {
	if h.placed[id] {
		return false
	}
	r, ok := h.c.resources.get(id)
	return ok && r.Class == ClassDiagram
}

// unplacedDiagrams collects diagrams not referenced by organizations into a
// default folder.
func (h *hierarchy) unplacedDiagrams(parent string, index int) (specif.HierarchyNode, bool) {
	var ids []string
	for _, id := range h.c.diagrams {
		if h.placeable(id) {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return specif.HierarchyNode{}, false
	}
	opts := h.c.opts
	folderID := "FolderDiagrams-" + h.c.salt
	node := specif.HierarchyNode{ID: nodeID(parent, index, folderID), Resource: folderID, ChangedAt: opts.FileDate}
	for i, id := range ids {
		h.placed[id] = true
		node.Nodes = append(node.Nodes, specif.HierarchyNode{ID: nodeID(node.ID, i, id), Resource: id, ChangedAt: opts.FileDate})
	}
	h.folders[folderID] = h.c.newResource(folderID, ClassFolder, extracted{
		Title: opts.DiagramsFolder,
		Properties: []specif.Property{
			{Class: PropertyName, Value: opts.DiagramsFolder},
			{Class: PropertyType, Value: opts.DiagramsType},
		},
	})
	return node, true
}

// glossary lists element resources grouped by class, sorted by title.
func (h *hierarchy) glossary(parent string, index int) (specif.HierarchyNode, bool) {
	opts := h.c.opts
	folderID := "FolderGlossary-" + h.c.salt
	node := specif.HierarchyNode{ID: nodeID(parent, index, folderID), Resource: folderID, ChangedAt: opts.FileDate}

	for _, group := range []struct{ class, title string }{
		{ClassActor, opts.ActorFolder},
		{ClassState, opts.StateFolder},
		{ClassEvent, opts.EventFolder},
		{ClassCollection, opts.CollectionFolder},
	} {
		var members []*specif.Resource
		for _, r := range h.c.resources.order {
			if r.Class == group.class {
				members = append(members, r)
			}
		}
		if len(members) == 0 {
			continue
		}
		sort.SliceStable(members, func(i, j int) bool {
			return strings.ToLower(members[i].Title) < strings.ToLower(members[j].Title)
		})
		subID := "Folder" + strings.TrimPrefix(group.class, "RC-") + "-" + h.c.salt
		sub := specif.HierarchyNode{ID: nodeID(node.ID, len(node.Nodes), subID), Resource: subID, ChangedAt: opts.FileDate}
		for i, r := range members {
			sub.Nodes = append(sub.Nodes, specif.HierarchyNode{ID: nodeID(sub.ID, i, r.ID), Resource: r.ID, ChangedAt: opts.FileDate})
		}
		h.folders[subID] = h.c.newResource(subID, ClassFolder, extracted{
			Title:      group.title,
			Properties: []specif.Property{{Class: PropertyName, Value: group.title}},
		})
		node.Nodes = append(node.Nodes, sub)
	}
	if len(node.Nodes) == 0 {
		return specif.HierarchyNode{}, false
	}
	h.folders[folderID] = h.c.newResource(folderID, ClassFolder, extracted{
		Title: opts.GlossaryFolder,
		Properties: []specif.Property{
			{Class: PropertyName, Value: opts.GlossaryFolder},
			{Class: PropertyType, Value: opts.GlossaryType},
		},
	})
	return node, true
}
