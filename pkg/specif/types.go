package specif

// Schema is the SpecIF schema URL written into every model.
const Schema = "https://specif.de/v1.0/schema.json"

// Model is a complete SpecIF document.
type Model struct {
	Schema           string           `json:"$schema"`
	ID               string           `json:"id"`
	Title            string           `json:"title,omitempty"`
	Description      string           `json:"description,omitempty"`
	Generator        string           `json:"generator,omitempty"`
	GeneratorVersion string           `json:"generatorVersion,omitempty"`
	CreatedAt        string           `json:"createdAt,omitempty"`
	DataTypes        []DataType       `json:"dataTypes"`
	PropertyClasses  []PropertyClass  `json:"propertyClasses"`
	ResourceClasses  []ResourceClass  `json:"resourceClasses"`
	StatementClasses []StatementClass `json:"statementClasses"`
	Resources        []Resource       `json:"resources"`
	Statements       []Statement      `json:"statements"`
	Hierarchies      []HierarchyNode  `json:"hierarchies"`
}

// DataType declares a value domain. Type uses the XML Schema names
// ("xs:string", "xs:dateTime", ...) plus "xhtml" for formatted text.
type DataType struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type"`
	MaxLength   int    `json:"maxLength,omitempty"`
	ChangedAt   string `json:"changedAt"`
}

// PropertyClass declares a property and its data type.
type PropertyClass struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	DataType  string `json:"dataType"`
	ChangedAt string `json:"changedAt"`
}

// ResourceClass declares a resource type and the property classes its
// instances may carry.
type ResourceClass struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Description     string   `json:"description,omitempty"`
	Icon            string   `json:"icon,omitempty"`
	IsHeading       bool     `json:"isHeading,omitempty"`
	Instantiation   []string `json:"instantiation,omitempty"`
	PropertyClasses []string `json:"propertyClasses"`
	ChangedAt       string   `json:"changedAt"`
}

// HasPropertyClass reports whether id is listed in the class's property classes.
func (rc *ResourceClass) HasPropertyClass(id string) bool {
	for _, pc := range rc.PropertyClasses {
		if pc == id {
			return true
		}
	}
	return false
}

// StatementClass declares an edge type. Empty SubjectClasses or
// ObjectClasses mean the respective end is unconstrained.
type StatementClass struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Description    string   `json:"description,omitempty"`
	Instantiation  []string `json:"instantiation,omitempty"`
	SubjectClasses []string `json:"subjectClasses,omitempty"`
	ObjectClasses  []string `json:"objectClasses,omitempty"`
	ChangedAt      string   `json:"changedAt"`
}

// Property is one typed value on a resource or statement.
type Property struct {
	Class string `json:"class"`
	Value string `json:"value"`
}

// Resource is a typed node.
type Resource struct {
	ID         string     `json:"id"`
	Title      string     `json:"title,omitempty"`
	Class      string     `json:"class"`
	Properties []Property `json:"properties,omitempty"`
	CreatedBy  string     `json:"createdBy,omitempty"`
	CreatedAt  string     `json:"createdAt,omitempty"`
	ChangedBy  string     `json:"changedBy,omitempty"`
	ChangedAt  string     `json:"changedAt"`
}

// Property returns the value of the first property with the given class.
func (r *Resource) Property(class string) (string, bool) {
	for _, p := range r.Properties {
		if p.Class == class {
			return p.Value, true
		}
	}
	return "", false
}

// Statement is a typed edge. Object may reference a resource or another
// statement.
type Statement struct {
	ID           string     `json:"id"`
	Class        string     `json:"class"`
	Subject      string     `json:"subject"`
	Object       string     `json:"object"`
	Title        string     `json:"title,omitempty"`
	Description  string     `json:"description,omitempty"`
	Properties   []Property `json:"properties,omitempty"`
	IsUndirected bool       `json:"isUndirected,omitempty"`
	ChangedAt    string     `json:"changedAt"`
}

// HierarchyNode is one node of a browsable tree.
type HierarchyNode struct {
	ID        string          `json:"id"`
	Resource  string          `json:"resource"`
	Nodes     []HierarchyNode `json:"nodes,omitempty"`
	ChangedAt string          `json:"changedAt"`
}
