// Package pkg provides the core libraries for archispec.
//
// # Overview
//
// archispec converts ArchiMate Open Exchange documents into SpecIF models:
// every element becomes a typed resource, every relationship a typed
// statement, and the document's organization tree plus generated folders
// become a navigable hierarchy. The pkg directory is organized as follows:
//
//  1. [xmltree] - Parsing exchange XML into an untyped element tree
//  2. [archimate] - The conversion itself (classification, diagram analysis,
//     schema reconciliation, hierarchy assembly)
//  3. [specif] - The SpecIF object model and its validation
//  4. [pipeline] - Orchestration (parse → convert → render) with caching
//  5. [cache], [store] - Conversion cache and model persistence backends
//
// # Architecture
//
// The typical data flow through archispec:
//
//	Open Exchange XML
//	         ↓
//	    [xmltree] package (element tree)
//	         ↓
//	    [archimate] package (resources, statements, hierarchy)
//	         ↓
//	    [specif] package (validated model)
//	         ↓
//	    SpecIF JSON / DOT / SVG output
//
// # Quick Start
//
// Convert a document:
//
//	import (
//	    "github.com/matzehuels/archispec/pkg/archimate"
//	    "github.com/matzehuels/archispec/pkg/io"
//	    "github.com/matzehuels/archispec/pkg/xmltree"
//	)
//
//	// 1. Parse the document
//	doc, _ := xmltree.ParseFile("landscape.xml")
//
//	// 2. Convert it
//	res, _ := archimate.Convert(doc, archimate.Options{FileName: "landscape.xml"})
//
//	// 3. Write SpecIF JSON
//	_ = io.ExportJSON(res.Model, "landscape.specif.json")
//
// # Main Packages
//
// ## Conversion
//
// [archimate] - The converter. Elements and relationships are classified
// through overridable type tables, diagrams contribute shows and contains
// statements, and statements the schema does not permit are either added
// to the schema or dropped.
//
// [specif] - SpecIF data types, classes, resources, statements and
// hierarchy nodes, with referential validation.
//
// ## Infrastructure
//
// [cache] - Conversion cache with file and Redis backends.
//
// [store] - Model persistence with in-memory and MongoDB backends.
//
// [config] - TOML configuration for the CLI and server.
//
// [observability] - Hooks for parse, conversion, cache and server events.
//
// ## Output
//
// [io] - SpecIF JSON import and export.
//
// [render/nodelink] - Graphviz rendering of a model's statement graph.
//
// [pipeline] - The parse → convert → render pipeline shared by the CLI and
// the HTTP API.
package pkg
