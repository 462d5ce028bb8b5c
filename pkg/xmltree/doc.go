// Package xmltree provides a minimal, read-only element tree for XML documents.
//
// The converter in [archimate] does not care about XML namespaces, processing
// instructions or comments: it walks a tree of tagged nodes with attributes,
// ordered children and inner text. This package produces exactly that tree.
//
// # Names
//
// Element tags and attribute keys use local names. Two namespaces are kept
// visible because the exchange format relies on them:
//
//   - XML Schema instance attributes are keyed "xsi:<local>" (e.g. "xsi:type")
//   - XML namespace attributes are keyed "xml:<local>" (e.g. "xml:lang")
//
// # Usage
//
//	root, err := xmltree.ParseFile("model.xml")
//	if err != nil {
//	    return err
//	}
//	for _, el := range root.FindAll("element") {
//	    fmt.Println(el.Attr("identifier"), el.Attr("xsi:type"))
//	}
//
// Trees can also be assembled in code with [E], which tests use to build
// source documents without XML fixtures.
//
// [archimate]: github.com/matzehuels/archispec/pkg/archimate
package xmltree
