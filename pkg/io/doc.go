// Package io reads and writes SpecIF models as JSON.
//
// # Export
//
// Use [ExportJSON] to write a model to a file, or [WriteJSON] to write to
// any io.Writer. Output is indented with two spaces and keeps the collection
// order of the model, so converting the same document twice yields
// byte-identical files:
//
//	if err := io.ExportJSON(res.Model, "model.specif.json"); err != nil {
//	    log.Fatal(err)
//	}
//
// # Import
//
// Use [ImportJSON] or [ReadJSON] to load a model written by this package or
// by another SpecIF tool. Both run [specif.Model.Validate] after decoding,
// so a model that loads has unique ids, declared classes and no dangling
// statements or hierarchy nodes.
//
// # Concurrency
//
// All functions are stateless. Models returned by [ReadJSON] are independent
// of the reader and may be modified freely.
//
// [specif.Model.Validate]: github.com/matzehuels/archispec/pkg/specif.Model.Validate
package io
