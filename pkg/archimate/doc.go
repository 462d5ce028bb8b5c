// Package archimate converts ArchiMate Open Exchange documents into SpecIF
// models.
//
// # Overview
//
// The converter consumes a parsed [xmltree.Node] tree and an [Options]
// record and produces a [specif.Model]. Parsing the XML and serializing the
// result are left to [xmltree] and [io]; this package only reconciles graphs:
//
//   - Classifying the many ArchiMate element and relationship types onto a
//     small SpecIF taxonomy (Actor, State, Event, Collection; shows,
//     contains, serves, ...)
//   - Reading names, documentation and custom properties, creating property
//     classes on demand
//   - Inferring "contains" relationships from diagrams, either from nested
//     nodes or from rectangle containment when a tool exports flat node lists
//   - Deduplicating statements, filtering invisible relationships, checking
//     or extending statement class allow-lists, and removing dangling edges
//   - Rebuilding a folder hierarchy from the organizations section
//
// # Pass Order
//
// [Convert] runs in a fixed order, each pass reading what earlier passes
// registered:
//
//  1. Views: diagram resources, "shows" statements, queued containment
//  2. Elements: resources for every classified element
//  3. Relationships: statements via the registry's dedup-on-insert
//  4. Containment reconciliation: queued pairs defer to explicit relationships
//  5. Validation: schema reconciliation, then dangling-reference cleanup
//  6. Hierarchy: organizations, then a default diagrams folder
//
// # Determinism
//
// Identifiers are content-derived (UUIDv5 over class and endpoints), so
// converting the same document twice with the same FileDate produces
// byte-identical output. Each call to [Convert] owns its registries; calls
// may run concurrently.
//
// # Errors
//
// Only a document without a model section is fatal. Everything else
// (unknown types, unsupported property types, schema violations, dangling
// references) is logged, recorded as a [Warning] on the [Result], and the
// offending item is dropped.
//
// [xmltree.Node]: github.com/matzehuels/archispec/pkg/xmltree.Node
// [xmltree]: github.com/matzehuels/archispec/pkg/xmltree
// [io]: github.com/matzehuels/archispec/pkg/io
// [specif.Model]: github.com/matzehuels/archispec/pkg/specif.Model
package archimate
