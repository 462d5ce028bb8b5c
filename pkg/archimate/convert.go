package archimate

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/archispec/pkg/buildinfo"
	"github.com/matzehuels/archispec/pkg/errors"
	"github.com/matzehuels/archispec/pkg/specif"
	"github.com/matzehuels/archispec/pkg/xmltree"
)

// WarningKind classifies a recoverable condition met during conversion.
type WarningKind string

const (
	WarnMissingID                 WarningKind = "missing-id"
	WarnDuplicateID               WarningKind = "duplicate-id"
	WarnUnknownElementType        WarningKind = "unknown-element-type"
	WarnUnknownRelationshipType   WarningKind = "unknown-relationship-type"
	WarnUnknownPropertyDefinition WarningKind = "unknown-property-definition"
	WarnUnsupportedPropertyType   WarningKind = "unsupported-property-type"
	WarnInvalidDate               WarningKind = "invalid-date"
	WarnInvalidNumber             WarningKind = "invalid-number"
	WarnSchemaViolation           WarningKind = "schema-violation"
	WarnDanglingStatement         WarningKind = "dangling-statement"

	// Filter outcomes. These are expected with the matching options and are
	// logged at debug level.
	WarnHiddenView WarningKind = "hidden-view"
	WarnNotVisible WarningKind = "not-visible"
)

// Warning records an item that was skipped or dropped.
type Warning struct {
	Kind    WarningKind `json:"kind"`
	ID      string      `json:"id,omitempty"`
	Message string      `json:"message"`
}

// Result is the outcome of a conversion.
type Result struct {
	Model    *specif.Model
	Warnings []Warning
}

// converter holds the state of one conversion.
type converter struct {
	opts       Options
	log        *log.Logger
	salt       string
	classifier *Classifier
	reconciler SchemaReconciler

	schema     *schema
	props      *properties
	resources  *resourceTable
	statements *Registry

	diagrams           []string
	shownElements      map[string]bool
	shownRelationships map[string]bool
	containment        []containment
	nestedPairs        map[endpoints]bool

	warnings []Warning
}

// Convert transforms an ArchiMate exchange document into a SpecIF model.
// doc may be the model element itself or any ancestor of it. A document
// without a model is the only fatal condition.
func Convert(doc *xmltree.Node, opts Options) (*Result, error) {
	model := doc.Find("model")
	if model == nil {
		return nil, errors.New(errors.ErrCodeMissingModel, "no ArchiMate model found in document")
	}
	opts.SetDefaults()

	c := &converter{
		opts:               opts,
		log:                opts.Logger,
		salt:               simpleHash(model.Attr("identifier")),
		classifier:         NewClassifier(opts.ElementTypes, opts.RelationshipTypes),
		reconciler:         NewSchemaReconciler(opts.StrictSchema),
		resources:          newResourceTable(),
		statements:         NewRegistry(),
		shownElements:      make(map[string]bool),
		shownRelationships: make(map[string]bool),
		nestedPairs:        make(map[endpoints]bool),
	}
	c.schema = newSchema(&c.opts)
	c.props = newProperties(c, model)

	views := model.Child("views").Child("diagrams").ChildrenByTag("view")
	if len(views) == 0 {
		views = model.FindAll("view")
	}
	for _, v := range views {
		c.analyzeView(v)
	}
	for _, e := range model.Child("elements").ChildrenByTag("element") {
		c.addElement(e)
	}
	for _, r := range model.Child("relationships").ChildrenByTag("relationship") {
		c.addRelationship(r)
	}

	c.reconcileContainment()
	c.reconcileSchema()
	for _, s := range c.statements.RemoveDangling(c.resources.has) {
		c.warn(WarnDanglingStatement, s.ID, "statement references a missing subject or object",
			"class", s.Class, "subject", s.Subject, "object", s.Object)
	}

	root := c.rootResource(model)
	c.resources.add(root)
	tree := c.buildHierarchy(model, root)

	m := &specif.Model{
		Schema:           specif.Schema,
		ID:               model.Attr("identifier"),
		Title:            root.Title,
		Description:      truncate(model.ChildText("documentation"), c.opts.DescriptionLength),
		Generator:        buildinfo.Generator,
		GeneratorVersion: buildinfo.Version,
		CreatedAt:        c.opts.FileDate,
		Resources:        c.resources.list(),
		Statements:       c.statements.Statements(),
		Hierarchies:      []specif.HierarchyNode{tree},
	}
	if m.ID == "" {
		m.ID = "ArchiMate-" + c.salt
	}
	c.schema.export(m)

	c.log.Debug("conversion finished",
		"resources", len(m.Resources),
		"statements", len(m.Statements),
		"warnings", len(c.warnings))
	return &Result{Model: m, Warnings: c.warnings}, nil
}

func (c *converter) addElement(e *xmltree.Node) {
	id := e.Attr("identifier")
	typ := e.Attr("xsi:type")
	if id == "" {
		c.warn(WarnMissingID, "", "element without identifier", "type", typ)
		return
	}
	class, ok := c.classifier.ElementClass(typ)
	if !ok {
		c.warn(WarnUnknownElementType, id, "element type not mapped", "type", typ)
		return
	}
	if c.opts.VisibleOnly && !c.shownElements[id] {
		c.drop(WarnNotVisible, id, "element not shown by any view")
		return
	}
	rc := c.schema.resourceClass(class)
	if rc == nil {
		rc = c.schema.ensureResourceClass(class, c.opts.FileDate)
	}
	x := c.props.extract(e, rc)
	x.Properties = append(x.Properties, specif.Property{Class: PropertyType, Value: c.opts.Namespace + typ})
	c.addResource(id, class, x)
}

func (c *converter) addRelationship(r *xmltree.Node) {
	id := r.Attr("identifier")
	typ := r.Attr("xsi:type")
	class, ok := c.classifier.RelationshipClass(typ, r.Attr("accessType"))
	if !ok {
		c.warn(WarnUnknownRelationshipType, id, "relationship type not mapped", "type", typ, "accessType", r.Attr("accessType"))
		return
	}
	subject, object := r.Attr("source"), r.Attr("target")
	if c.opts.VisibleOnly && !c.visibleRelationship(id, class, subject, object) {
		c.drop(WarnNotVisible, id, "relationship not shown by any view")
		return
	}

	x := c.props.extract(r, nil)
	s := specif.Statement{
		ID:          id,
		Class:       class,
		Subject:     subject,
		Object:      object,
		Title:       x.Title,
		Description: x.Description,
		Properties:  x.Properties,
		ChangedAt:   c.changedAt(x),
	}
	if typ == "Association" {
		s.IsUndirected = r.Attr("isDirected") != "true"
	}
	if existing, added := c.statements.Add(s); !added {
		c.log.Debug("statement merged", "id", id, "into", existing.ID, "class", class)
		c.retargetShows(id, existing.ID)
	}
}

// retargetShows moves shows statements from a merged relationship to the
// statement it was merged into. A view that already shows the survivor
// keeps a single statement.
func (c *converter) retargetShows(from, to string) {
	if from == to {
		return
	}
	var ids []string
	c.statements.Each(func(s *specif.Statement) {
		if s.Class == StatementShows && s.Object == from {
			ids = append(ids, s.ID)
		}
	})
	for _, id := range ids {
		if !c.statements.Retarget(id, to) {
			c.statements.Remove(id)
		}
	}
	if len(ids) > 0 {
		c.shownRelationships[to] = true
	}
}

// visibleRelationship reports whether a relationship survives VisibleOnly.
// A relationship is visible when a connection draws it, when a view nests
// its endpoints, or when its class is one the converter infers itself.
func (c *converter) visibleRelationship(id, class, subject, object string) bool {
	return c.shownRelationships[id] ||
		c.nestedPairs[newEndpoints(subject, object)] ||
		implicitStatements[class]
}

func (c *converter) rootResource(model *xmltree.Node) specif.Resource {
	x := c.props.extract(model, c.schema.resourceClass(ClassFolder))
	if x.Title == "" {
		x.Title = truncate(c.opts.Title, c.opts.TitleLength)
		if x.Title != "" {
			x.Properties = append([]specif.Property{{Class: PropertyName, Value: x.Title}}, x.Properties...)
		}
	}
	x.Properties = append(x.Properties, specif.Property{Class: PropertyType, Value: c.opts.RootType})
	return c.newResource("ArchiMate-"+c.salt, ClassFolder, x)
}

// addResource registers a resource and reports whether it was new.
func (c *converter) addResource(id, class string, x extracted) bool {
	if !c.resources.add(c.newResource(id, class, x)) {
		c.warn(WarnDuplicateID, id, "identifier already used")
		return false
	}
	return true
}

func (c *converter) newResource(id, class string, x extracted) specif.Resource {
	return specif.Resource{
		ID:         id,
		Title:      x.Title,
		Class:      class,
		Properties: x.Properties,
		CreatedBy:  x.CreatedBy,
		CreatedAt:  x.CreatedAt,
		ChangedBy:  x.ChangedBy,
		ChangedAt:  c.changedAt(x),
	}
}

func (c *converter) changedAt(x extracted) string {
	if x.ChangedAt != "" {
		return x.ChangedAt
	}
	return c.opts.FileDate
}

// warn records a recoverable problem and logs it.
func (c *converter) warn(kind WarningKind, id, msg string, keyvals ...any) {
	c.warnings = append(c.warnings, Warning{Kind: kind, ID: id, Message: msg})
	c.log.Warn(msg, append([]any{"kind", kind, "id", id}, keyvals...)...)
}

// drop records an item removed by a filter option.
func (c *converter) drop(kind WarningKind, id, msg string) {
	c.warnings = append(c.warnings, Warning{Kind: kind, ID: id, Message: msg})
	c.log.Debug(msg, "kind", kind, "id", id)
}
