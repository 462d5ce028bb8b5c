package archimate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifierElements(t *testing.T) {
	c := NewClassifier(nil, nil)

	tests := []struct {
		typ   string
		class string
		ok    bool
	}{
		{"BusinessActor", ClassActor, true},
		{"ApplicationComponent", ClassActor, true},
		{"TechnologyService", ClassActor, true},
		{"DataObject", ClassState, true},
		{"Artifact", ClassState, true},
		{"TechnologyEvent", ClassEvent, true},
		{"Grouping", ClassCollection, true},
		{"Location", ClassCollection, true},
		{"OrJunction", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.typ, func(t *testing.T) {
			class, ok := c.ElementClass(tt.typ)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.class, class)
		})
	}
}

func TestClassifierRelationships(t *testing.T) {
	c := NewClassifier(nil, nil)

	tests := []struct {
		typ, access string
		class       string
		ok          bool
	}{
		{"Serving", "", StatementServes, true},
		{"Composition", "", StatementContains, true},
		{"Aggregation", "", StatementIsAggregatedBy, true},
		{"Flow", "", StatementPrecedes, true},
		{"Influence", "", StatementInfluences, true},
		{"Access", "Read", StatementReads, true},
		{"Access", "Write", StatementWrites, true},
		{"Access", "", StatementWrites, true},
		{"Access", "ReadWrite", StatementStores, true},
		{"Access", "Sideways", "", false},
		{"Teleportation", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.typ+"/"+tt.access, func(t *testing.T) {
			class, ok := c.RelationshipClass(tt.typ, tt.access)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.class, class)
		})
	}
}

func TestClassifierOverrides(t *testing.T) {
	c := NewClassifier(
		map[string]string{"BusinessActor": ClassState, "Junction": ClassActor, "Grouping": ""},
		map[string]string{"Access": "SC-accesses"},
	)

	class, _ := c.ElementClass("BusinessActor")
	assert.Equal(t, ClassState, class)
	_, ok := c.ElementClass("Junction")
	assert.True(t, ok)
	_, ok = c.ElementClass("Grouping")
	assert.False(t, ok, "an empty override unmaps a type")

	class, _ = c.RelationshipClass("Access", "Read")
	assert.Equal(t, StatementReads, class, "per access type entries win")
	class, ok = c.RelationshipClass("Access", "Sideways")
	assert.True(t, ok)
	assert.Equal(t, "SC-accesses", class)

	// Built-in tables are untouched.
	class, _ = NewClassifier(nil, nil).ElementClass("BusinessActor")
	assert.Equal(t, ClassActor, class)
}
