package archimate

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/matzehuels/archispec/pkg/specif"
	"github.com/matzehuels/archispec/pkg/xmltree"
)

// propertyDefinition is one entry of the model's propertyDefinitions section.
type propertyDefinition struct {
	ID    string
	Title string
	Type  string
}

// dataTypeFor maps exchange-format property types to data types.
var dataTypeFor = map[string]string{
	"string":  DataTypeShortString,
	"date":    DataTypeDateTime,
	"number":  DataTypeInteger,
	"boolean": DataTypeBoolean,
}

// extracted holds everything read from one element, view or relationship.
type extracted struct {
	Title       string
	Description string
	Properties  []specif.Property
	CreatedBy   string
	CreatedAt   string
	ChangedBy   string
	ChangedAt   string
}

// properties resolves custom properties against the model's definitions
// and creates property classes on first use.
type properties struct {
	c       *converter
	defs    map[string]propertyDefinition
	classes map[string]string // definition id -> property class id
	titles  map[string]bool   // property class titles in use
	skipped map[string]bool   // definitions with unsupported types, reported once
	native  map[string]nativeField
}

type nativeField int

const (
	nativeNone nativeField = iota
	nativeCreatedBy
	nativeCreatedAt
	nativeChangedBy
	nativeChangedAt
)

func newProperties(c *converter, model *xmltree.Node) *properties {
	p := &properties{
		c:       c,
		defs:    make(map[string]propertyDefinition),
		classes: make(map[string]string),
		titles:  make(map[string]bool),
		skipped: make(map[string]bool),
		native:  make(map[string]nativeField),
	}
	for _, pc := range c.schema.propertyClasses {
		p.titles[pc.Title] = true
	}
	np := c.opts.NativeProperties
	for field, keys := range map[nativeField][]string{
		nativeCreatedBy: np.CreatedBy,
		nativeCreatedAt: np.CreatedAt,
		nativeChangedBy: np.ChangedBy,
		nativeChangedAt: np.ChangedAt,
	} {
		for _, k := range keys {
			p.native[strings.ToLower(k)] = field
		}
	}

	// 3.x: propertyDefinitions/propertyDefinition with a name child.
	// 2.x: propertydefs/propertydef with a name attribute.
	for _, tag := range []string{"propertyDefinition", "propertydef"} {
		for _, d := range model.FindAll(tag) {
			id := d.Attr("identifier")
			if id == "" {
				continue
			}
			title := d.ChildText("name")
			if title == "" {
				title = d.Attr("name")
			}
			if title == "" {
				title = id
			}
			p.defs[id] = propertyDefinition{ID: id, Title: title, Type: d.Attr("type")}
		}
	}
	return p
}

// definition resolves a property node's definition reference.
func (p *properties) definition(prop *xmltree.Node) (propertyDefinition, bool) {
	ref := attr(prop, "propertyDefinitionRef", "identifierref", "identifierRef")
	def, ok := p.defs[ref]
	if !ok {
		def.ID = ref
	}
	return def, ok
}

func (p *properties) nativeField(def propertyDefinition) nativeField {
	if f, ok := p.native[strings.ToLower(def.ID)]; ok {
		return f
	}
	return p.native[strings.ToLower(def.Title)]
}

// isHidden reports whether a view carries one of the configured hiding
// properties with the value "true".
func (p *properties) isHidden(view *xmltree.Node) bool {
	if len(p.c.opts.HiddenDiagramProperties) == 0 {
		return false
	}
	for _, prop := range propertyNodes(view) {
		def, ok := p.definition(prop)
		if !ok || !strings.EqualFold(propertyValue(prop), "true") {
			continue
		}
		for _, h := range p.c.opts.HiddenDiagramProperties {
			if strings.EqualFold(def.Title, h) || strings.EqualFold(def.ID, h) {
				return true
			}
		}
	}
	return false
}

// extract reads name, documentation and custom properties of n. Property
// classes used by n are added to rc when rc is non-nil.
func (p *properties) extract(n *xmltree.Node, rc *specif.ResourceClass) extracted {
	opts := p.c.opts
	var x extracted

	x.Title = truncate(nameOf(n), opts.TitleLength)
	x.Description = truncate(n.ChildText("documentation"), opts.DescriptionLength)
	if x.Title != "" {
		x.Properties = append(x.Properties, specif.Property{Class: PropertyName, Value: x.Title})
	}
	if x.Description != "" {
		x.Properties = append(x.Properties, specif.Property{Class: PropertyText, Value: x.Description})
	}

	owner := n.Attr("identifier")
	for _, prop := range propertyNodes(n) {
		def, ok := p.definition(prop)
		if !ok {
			p.c.warn(WarnUnknownPropertyDefinition, owner, "property references an undeclared definition", "definition", def.ID)
			continue
		}
		value := propertyValue(prop)

		if field := p.nativeField(def); field != nativeNone {
			p.setNative(&x, field, owner, value)
			continue
		}

		class, ok := p.class(def, owner)
		if !ok {
			continue
		}
		if rc != nil && !rc.HasPropertyClass(class) {
			rc.PropertyClasses = append(rc.PropertyClasses, class)
		}
		value, ok = p.convertValue(def, owner, value)
		if !ok {
			continue
		}
		x.Properties = append(x.Properties, specif.Property{Class: class, Value: value})
	}
	return x
}

func (p *properties) setNative(x *extracted, field nativeField, owner, value string) {
	switch field {
	case nativeCreatedBy:
		x.CreatedBy = value
	case nativeChangedBy:
		x.ChangedBy = value
	case nativeCreatedAt, nativeChangedAt:
		ts, ok := NormalizeDateTime(value)
		if !ok {
			p.c.warn(WarnInvalidDate, owner, "unparseable timestamp", "value", value)
			return
		}
		if field == nativeCreatedAt {
			x.CreatedAt = ts
		} else {
			x.ChangedAt = ts
		}
	}
}

// class returns the property class for def, registering it on first use.
func (p *properties) class(def propertyDefinition, owner string) (string, bool) {
	if id, ok := p.classes[def.ID]; ok {
		return id, true
	}
	if p.skipped[def.ID] {
		return "", false
	}
	dt, ok := dataTypeFor[def.Type]
	if !ok {
		p.skipped[def.ID] = true
		p.c.warn(WarnUnsupportedPropertyType, owner, "property type not supported", "definition", def.ID, "type", def.Type)
		return "", false
	}

	title := def.Title
	if p.titles[title] && p.c.opts.DisambiguatePropertyTitles {
		title = title + " (" + def.ID + ")"
	}
	id := "PC-" + def.ID
	p.titles[title] = true
	p.classes[def.ID] = id
	p.c.schema.addPropertyClass(specif.PropertyClass{
		ID:        id,
		Title:     title,
		DataType:  dt,
		ChangedAt: p.c.opts.FileDate,
	})
	return id, true
}

func (p *properties) convertValue(def propertyDefinition, owner, value string) (string, bool) {
	switch def.Type {
	case "date":
		ts, ok := NormalizeDateTime(value)
		if !ok {
			p.c.warn(WarnInvalidDate, owner, "unparseable timestamp", "definition", def.ID, "value", value)
		}
		return ts, ok
	case "number":
		n, ok := parseInteger(value)
		if !ok {
			p.c.warn(WarnInvalidNumber, owner, "value is not an integer", "definition", def.ID, "value", value)
		}
		return n, ok
	case "boolean":
		return strings.ToLower(value), true
	case "string":
		return truncate(value, p.c.opts.TitleLength), true
	}
	return value, true
}

// parseInteger normalizes value to a decimal integer. Floats without a
// fractional part such as "3.0" are accepted.
func parseInteger(value string) (string, bool) {
	value = strings.TrimSpace(value)
	if n, err := strconv.ParseInt(value, 10, 64); err == nil {
		return strconv.FormatInt(n, 10), true
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || f != float64(int64(f)) {
		return "", false
	}
	return strconv.FormatInt(int64(f), 10), true
}

func propertyNodes(n *xmltree.Node) []*xmltree.Node {
	return n.Child("properties").ChildrenByTag("property")
}

func propertyValue(prop *xmltree.Node) string {
	if v := prop.Child("value"); v != nil {
		return v.Text
	}
	return prop.Text
}

// nameOf returns the first name (3.x) or label (2.x) of n.
func nameOf(n *xmltree.Node) string {
	if s := n.ChildText("name"); s != "" {
		return s
	}
	if s := n.ChildText("label"); s != "" {
		return s
	}
	return n.Attr("name")
}

// attr returns the first non-empty attribute among names. The exchange
// format changed attribute casing between versions.
func attr(n *xmltree.Node, names ...string) string {
	for _, name := range names {
		if v := n.Attr(name); v != "" {
			return v
		}
	}
	return ""
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}
