package archimate

// elementClasses maps ArchiMate element types (xsi:type) to resource classes.
var elementClasses = map[string]string{
	// Business layer
	"BusinessActor":         ClassActor,
	"BusinessRole":          ClassActor,
	"BusinessCollaboration": ClassActor,
	"BusinessInterface":     ClassActor,
	"BusinessProcess":       ClassActor,
	"BusinessFunction":      ClassActor,
	"BusinessInteraction":   ClassActor,
	"BusinessService":       ClassActor,
	"BusinessEvent":         ClassEvent,
	"BusinessObject":        ClassState,
	"Contract":              ClassState,
	"Representation":        ClassState,
	"Product":               ClassState,

	// Application layer
	"ApplicationComponent":     ClassActor,
	"ApplicationCollaboration": ClassActor,
	"ApplicationInterface":     ClassActor,
	"ApplicationFunction":      ClassActor,
	"ApplicationInteraction":   ClassActor,
	"ApplicationProcess":       ClassActor,
	"ApplicationService":       ClassActor,
	"ApplicationEvent":         ClassEvent,
	"DataObject":               ClassState,

	// Technology layer
	"Node":                    ClassActor,
	"Device":                  ClassActor,
	"SystemSoftware":          ClassActor,
	"TechnologyCollaboration": ClassActor,
	"TechnologyInterface":     ClassActor,
	"Path":                    ClassActor,
	"CommunicationNetwork":    ClassActor,
	"TechnologyFunction":      ClassActor,
	"TechnologyProcess":       ClassActor,
	"TechnologyInteraction":   ClassActor,
	"TechnologyService":       ClassActor,
	"TechnologyEvent":         ClassEvent,
	"Artifact":                ClassState,

	// Physical layer
	"Equipment":           ClassActor,
	"Facility":            ClassActor,
	"DistributionNetwork": ClassActor,
	"Material":            ClassState,

	// Motivation, strategy and migration
	"Stakeholder":         ClassActor,
	"Deliverable":         ClassState,
	"ImplementationEvent": ClassEvent,

	// Composite elements
	"Location": ClassCollection,
	"Grouping": ClassCollection,
}

// relationshipClasses maps ArchiMate relationship types to statement
// classes. Access is resolved separately through accessClasses.
var relationshipClasses = map[string]string{
	"Composition":    StatementContains,
	"Aggregation":    StatementIsAggregatedBy,
	"Assignment":     StatementIsAssignedTo,
	"Realization":    StatementRealizes,
	"Serving":        StatementServes,
	"Influence":      StatementInfluences,
	"Triggering":     StatementTriggers,
	"Flow":           StatementPrecedes,
	"Specialization": StatementIsSpecializationOf,
	"Association":    StatementIsAssociatedWith,
}

// accessClasses resolves Access relationships by their accessType
// attribute. A missing attribute means Write, the exchange format's default.
var accessClasses = map[string]string{
	"":          StatementWrites,
	"Write":     StatementWrites,
	"Read":      StatementReads,
	"ReadWrite": StatementStores,
	"Access":    StatementIsAssociatedWith,
}

// Classifier maps source element and relationship types to SpecIF classes.
// It is read-only after construction and safe for concurrent use.
type Classifier struct {
	elements      map[string]string
	relationships map[string]string
}

// NewClassifier returns a classifier using the built-in tables, with the
// given overrides taking precedence.
func NewClassifier(elementOverrides, relationshipOverrides map[string]string) *Classifier {
	c := &Classifier{
		elements:      make(map[string]string, len(elementClasses)+len(elementOverrides)),
		relationships: make(map[string]string, len(relationshipClasses)+len(accessClasses)+len(relationshipOverrides)),
	}
	for k, v := range elementClasses {
		c.elements[k] = v
	}
	for k, v := range elementOverrides {
		c.elements[k] = v
	}
	for k, v := range relationshipClasses {
		c.relationships[k] = v
	}
	for k, v := range accessClasses {
		c.relationships[accessKey(k)] = v
	}
	for k, v := range relationshipOverrides {
		c.relationships[k] = v
	}
	return c
}

// ElementClass returns the resource class for an element type.
func (c *Classifier) ElementClass(typ string) (string, bool) {
	class, ok := c.elements[typ]
	return class, ok && class != ""
}

// RelationshipClass returns the statement class for a relationship type.
// Access relationships are looked up by access type first and fall back to
// a plain "Access" entry when one is configured.
func (c *Classifier) RelationshipClass(typ, accessType string) (string, bool) {
	if typ == "Access" {
		if class, ok := c.relationships[accessKey(accessType)]; ok && class != "" {
			return class, true
		}
	}
	class, ok := c.relationships[typ]
	return class, ok && class != ""
}

func accessKey(accessType string) string { return "Access:" + accessType }
