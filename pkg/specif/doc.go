// Package specif defines the in-memory SpecIF object graph produced by the
// converter.
//
// # Overview
//
// A SpecIF [Model] consists of seven collections:
//
//   - DataTypes: value domains for properties (strings, text, dates, ...)
//   - PropertyClasses: typed property declarations referencing a data type
//   - ResourceClasses: node types listing their permitted property classes
//   - StatementClasses: edge types with optional subject/object allow-lists
//   - Resources: typed nodes (model elements, diagrams, folders)
//   - Statements: typed edges between resources, or from a resource to a statement
//   - Hierarchies: trees of [HierarchyNode] pointing at resources
//
// # Referential Closure
//
// [Model.Validate] checks that every statement subject resolves to a resource
// and every object resolves to a resource or another statement. Statements
// about statements occur when a diagram "shows" an inferred relationship.
//
// # Serialization
//
// The struct tags follow the SpecIF 1.0 JSON schema. Reading and writing
// files is handled by [io].
//
// [io]: github.com/matzehuels/archispec/pkg/io
package specif
