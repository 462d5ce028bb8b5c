package xmltree

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	nsXSI = "http://www.w3.org/2001/XMLSchema-instance"
	nsXML = "http://www.w3.org/XML/1998/namespace"
)

// Parse reads an XML document from r and returns its root element.
// Comments, processing instructions and directives are skipped. Inner text
// is the concatenated character data of the element, trimmed of surrounding
// whitespace; text interleaved with child elements is concatenated as well.
func Parse(r io.Reader) (*Node, error) {
	dec := xml.NewDecoder(r)
	dec.Strict = true

	var (
		root  *Node
		stack []*Node
		texts []*strings.Builder
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			n := &Node{Tag: t.Name.Local, Attrs: make(map[string]string, len(t.Attr))}
			for _, a := range t.Attr {
				if key := attrKey(a.Name); key != "" {
					n.Attrs[key] = a.Value
				}
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("decode: multiple root elements")
				}
				root = n
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, n)
			}
			stack = append(stack, n)
			texts = append(texts, &strings.Builder{})
		case xml.CharData:
			if len(texts) > 0 {
				texts[len(texts)-1].Write(t)
			}
		case xml.EndElement:
			n := stack[len(stack)-1]
			n.Text = strings.TrimSpace(texts[len(texts)-1].String())
			stack = stack[:len(stack)-1]
			texts = texts[:len(texts)-1]
		}
	}

	if root == nil {
		return nil, fmt.Errorf("decode: document has no root element")
	}
	return root, nil
}

// ParseFile opens path and parses it with [Parse].
func ParseFile(path string) (*Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}

// attrKey maps an attribute name to its tree key. Namespace declarations
// are dropped.
func attrKey(name xml.Name) string {
	switch name.Space {
	case "":
		if name.Local == "xmlns" {
			return ""
		}
		return name.Local
	case "xmlns":
		return ""
	case nsXSI, "xsi":
		return "xsi:" + name.Local
	case nsXML, "xml":
		return "xml:" + name.Local
	default:
		return name.Local
	}
}
