package archimate

import (
	"strconv"
	"strings"

	"github.com/matzehuels/archispec/pkg/specif"
)

// Data type identifiers.
const (
	DataTypeShortString   = "DT-ShortString"
	DataTypeFormattedText = "DT-FormattedText"
	DataTypeDateTime      = "DT-DateTime"
	DataTypeInteger       = "DT-Integer"
	DataTypeBoolean       = "DT-Boolean"
)

// Property class identifiers.
const (
	PropertyName    = "PC-Name"
	PropertyText    = "PC-Text"
	PropertyDiagram = "PC-Diagram"
	PropertyType    = "PC-Type"
)

// Resource class identifiers.
const (
	ClassDiagram    = "RC-Diagram"
	ClassActor      = "RC-Actor"
	ClassState      = "RC-State"
	ClassEvent      = "RC-Event"
	ClassCollection = "RC-Collection"
	ClassFolder     = "RC-Folder"
)

// Statement class identifiers.
const (
	StatementShows              = "SC-shows"
	StatementContains           = "SC-contains"
	StatementIsAssignedTo       = "SC-isAssignedTo"
	StatementIsComposedOf       = "SC-isComposedOf"
	StatementIsAggregatedBy     = "SC-isAggregatedBy"
	StatementIsSpecializationOf = "SC-isSpecializationOf"
	StatementRealizes           = "SC-realizes"
	StatementServes             = "SC-serves"
	StatementIsAssociatedWith   = "SC-isAssociatedWith"
	StatementInfluences         = "SC-influences"
	StatementStores             = "SC-stores"
	StatementWrites             = "SC-writes"
	StatementReads              = "SC-reads"
	StatementPrecedes           = "SC-precedes"
	StatementSignals            = "SC-signals"
	StatementTriggers           = "SC-triggers"
)

// implicitStatements are classes the converter infers from diagrams. They
// survive visibility filtering even when no connection draws them.
var implicitStatements = map[string]bool{
	StatementContains: true,
}

// schema holds the mutable class declarations of one conversion.
type schema struct {
	dataTypes        []specif.DataType
	propertyClasses  []specif.PropertyClass
	resourceClasses  []*specif.ResourceClass
	statementClasses []*specif.StatementClass

	resourceByID  map[string]*specif.ResourceClass
	statementByID map[string]*specif.StatementClass
}

func newSchema(opts *Options) *schema {
	at := opts.FileDate
	s := &schema{
		resourceByID:  make(map[string]*specif.ResourceClass),
		statementByID: make(map[string]*specif.StatementClass),
	}

	s.dataTypes = []specif.DataType{
		{ID: DataTypeShortString, Title: "String[" + strconv.Itoa(opts.TitleLength) + "]", Type: "xs:string", MaxLength: opts.TitleLength, ChangedAt: at},
		{ID: DataTypeFormattedText, Title: "Formatted Text", Type: "xhtml", MaxLength: opts.DescriptionLength, ChangedAt: at},
		{ID: DataTypeDateTime, Title: "Date and Time", Type: "xs:dateTime", ChangedAt: at},
		{ID: DataTypeInteger, Title: "Integer", Type: "xs:integer", ChangedAt: at},
		{ID: DataTypeBoolean, Title: "Boolean", Type: "xs:boolean", ChangedAt: at},
	}
	s.propertyClasses = []specif.PropertyClass{
		{ID: PropertyName, Title: "dcterms:title", DataType: DataTypeShortString, ChangedAt: at},
		{ID: PropertyText, Title: "dcterms:description", DataType: DataTypeFormattedText, ChangedAt: at},
		{ID: PropertyDiagram, Title: "SpecIF:Diagram", DataType: DataTypeFormattedText, ChangedAt: at},
		{ID: PropertyType, Title: "dcterms:type", DataType: DataTypeShortString, ChangedAt: at},
	}

	common := []string{PropertyName, PropertyText, PropertyType}
	for _, rc := range []specif.ResourceClass{
		{ID: ClassDiagram, Title: "SpecIF:View", Description: "A 'View' is a graphical model view with a specific communication purpose, e.g. a business process or system composition.", Instantiation: []string{"auto", "user"}, PropertyClasses: []string{PropertyName, PropertyText, PropertyDiagram, PropertyType}},
		{ID: ClassActor, Title: "FMC:Actor", Description: "An 'Actor' is a fundamental model element type representing an active entity, be it an activity, a process step, a function, a system component or a role.", Instantiation: []string{"auto"}},
		{ID: ClassState, Title: "FMC:State", Description: "A 'State' is a fundamental model element type representing a passive entity, be it a value, a condition, an information storage or even a physical shape.", Instantiation: []string{"auto"}},
		{ID: ClassEvent, Title: "FMC:Event", Description: "An 'Event' is a fundamental model element type representing a time reference, a change in condition/value or more generally a synchronisation primitive.", Instantiation: []string{"auto"}},
		{ID: ClassCollection, Title: "SpecIF:Collection", Description: "A 'Collection' is an arbitrary group of resources linked with a SpecIF:contains statement.", Instantiation: []string{"auto"}},
		{ID: ClassFolder, Title: DefaultFolderType, Description: "Folder with title and text for chapters or descriptive paragraphs.", IsHeading: true, Instantiation: []string{"auto", "user"}},
	} {
		if rc.PropertyClasses == nil {
			rc.PropertyClasses = append([]string(nil), common...)
		}
		rc.ChangedAt = at
		s.addResourceClass(&rc)
	}

	actor := []string{ClassActor}
	state := []string{ClassState}
	event := []string{ClassEvent}
	elements := []string{ClassActor, ClassState, ClassEvent}
	for _, sc := range []specif.StatementClass{
		{ID: StatementShows, Title: "SpecIF:shows", Description: "Statement: Plan shows Model-Element", SubjectClasses: []string{ClassDiagram}, ObjectClasses: []string{ClassActor, ClassState, ClassEvent, ClassCollection}},
		{ID: StatementContains, Title: "SpecIF:contains", Description: "Statement: Model-Element contains Model-Element", SubjectClasses: elements, ObjectClasses: elements},
		{ID: StatementIsAssignedTo, Title: "SpecIF:isAssignedTo", Description: "Statement: Model-Element is assigned to Model-Element", SubjectClasses: elements, ObjectClasses: elements},
		{ID: StatementIsComposedOf, Title: "SpecIF:isComposedOf", Description: "Statement: State is composed of State", SubjectClasses: state, ObjectClasses: state},
		{ID: StatementIsAggregatedBy, Title: "SpecIF:isAggregatedBy", Description: "Statement: State is aggregated by State", SubjectClasses: state, ObjectClasses: state},
		{ID: StatementIsSpecializationOf, Title: "SpecIF:isSpecializationOf", Description: "Statement: State is a specialization of State", SubjectClasses: state, ObjectClasses: state},
		{ID: StatementRealizes, Title: "SpecIF:realizes", Description: "Statement: Actor realizes Actor", SubjectClasses: actor, ObjectClasses: actor},
		{ID: StatementServes, Title: "SpecIF:serves", Description: "Statement: Actor serves Actor", SubjectClasses: actor, ObjectClasses: actor},
		{ID: StatementIsAssociatedWith, Title: "SpecIF:isAssociatedWith", Description: "Statement: Actor is associated with Actor", SubjectClasses: actor, ObjectClasses: actor},
		{ID: StatementInfluences, Title: "SpecIF:influences", Description: "Statement: Model-Element influences Model-Element", SubjectClasses: elements, ObjectClasses: elements},
		{ID: StatementStores, Title: "SpecIF:stores", Description: "Statement: Actor (Role, Function) writes and reads State (Information)", SubjectClasses: actor, ObjectClasses: state},
		{ID: StatementWrites, Title: "SpecIF:writes", Description: "Statement: Actor (Role, Function) writes State (Information)", SubjectClasses: actor, ObjectClasses: state},
		{ID: StatementReads, Title: "SpecIF:reads", Description: "Statement: Actor (Role, Function) reads State (Information)", SubjectClasses: actor, ObjectClasses: state},
		{ID: StatementPrecedes, Title: "SpecIF:precedes", Description: "Statement: Actor precedes Actor", SubjectClasses: actor, ObjectClasses: actor},
		{ID: StatementSignals, Title: "SpecIF:signals", Description: "Statement: Actor (Process, Function) or Event signals Event", SubjectClasses: []string{ClassActor, ClassEvent}, ObjectClasses: event},
		{ID: StatementTriggers, Title: "SpecIF:triggers", Description: "Statement: Event triggers Actor (Process, Function)", SubjectClasses: event, ObjectClasses: actor},
	} {
		sc.SubjectClasses = append([]string(nil), sc.SubjectClasses...)
		sc.ObjectClasses = append([]string(nil), sc.ObjectClasses...)
		sc.Instantiation = []string{"auto"}
		sc.ChangedAt = at
		s.addStatementClass(&sc)
	}
	return s
}

func (s *schema) addResourceClass(rc *specif.ResourceClass) {
	s.resourceClasses = append(s.resourceClasses, rc)
	s.resourceByID[rc.ID] = rc
}

func (s *schema) addStatementClass(sc *specif.StatementClass) {
	s.statementClasses = append(s.statementClasses, sc)
	s.statementByID[sc.ID] = sc
}

func (s *schema) addPropertyClass(pc specif.PropertyClass) {
	s.propertyClasses = append(s.propertyClasses, pc)
}

func (s *schema) resourceClass(id string) *specif.ResourceClass { return s.resourceByID[id] }

func (s *schema) statementClass(id string) *specif.StatementClass { return s.statementByID[id] }

// ensureStatementClass declares an unconstrained statement class for ids
// introduced by classification overrides.
func (s *schema) ensureStatementClass(id, at string) *specif.StatementClass {
	if sc := s.statementByID[id]; sc != nil {
		return sc
	}
	sc := &specif.StatementClass{ID: id, Title: titleFromClassID(id), Instantiation: []string{"auto"}, ChangedAt: at}
	s.addStatementClass(sc)
	return sc
}

// ensureResourceClass declares a resource class for ids introduced by
// classification overrides.
func (s *schema) ensureResourceClass(id, at string) *specif.ResourceClass {
	if rc := s.resourceByID[id]; rc != nil {
		return rc
	}
	rc := &specif.ResourceClass{ID: id, Title: titleFromClassID(id), Instantiation: []string{"auto"}, PropertyClasses: []string{PropertyName, PropertyText, PropertyType}, ChangedAt: at}
	s.addResourceClass(rc)
	return rc
}

// export copies the declarations into m.
func (s *schema) export(m *specif.Model) {
	m.DataTypes = append([]specif.DataType(nil), s.dataTypes...)
	m.PropertyClasses = append([]specif.PropertyClass(nil), s.propertyClasses...)
	m.ResourceClasses = make([]specif.ResourceClass, len(s.resourceClasses))
	for i, rc := range s.resourceClasses {
		m.ResourceClasses[i] = *rc
	}
	m.StatementClasses = make([]specif.StatementClass, len(s.statementClasses))
	for i, sc := range s.statementClasses {
		m.StatementClasses[i] = *sc
	}
}

func titleFromClassID(id string) string {
	for _, p := range []string{"RC-", "SC-"} {
		if rest, ok := strings.CutPrefix(id, p); ok && rest != "" {
			return "SpecIF:" + rest
		}
	}
	return id
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
