package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/archispec/pkg/archimate"
	"github.com/matzehuels/archispec/pkg/specif"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Diagram restricts output to what the given diagram resource shows.
	Diagram string

	// IncludeShows draws diagram resources and their shows edges.
	IncludeShows bool

	// Detailed adds the resource class to node labels.
	Detailed bool
}

var classAttrs = map[string]string{
	archimate.ClassActor:      `shape=box, style="filled", fillcolor=white`,
	archimate.ClassState:      `shape=box, style="rounded,filled", fillcolor="#e8f1fb"`,
	archimate.ClassEvent:      `shape=hexagon, style="filled", fillcolor="#fdf3e1"`,
	archimate.ClassCollection: `shape=box, style="rounded,dashed"`,
	archimate.ClassDiagram:    `shape=note, style="filled", fillcolor="#eeeeee"`,
}

// ToDOT converts a model to Graphviz DOT source.
func ToDOT(m *specif.Model, opts Options) string {
	nodes, edges := selectGraph(m, opts)

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [fontsize=10, color=\"#555555\"];\n")
	buf.WriteString("\n")

	for _, r := range nodes {
		label := r.Title
		if label == "" {
			label = r.ID
		}
		if opts.Detailed {
			label += "\n«" + strings.TrimPrefix(r.Class, "RC-") + "»"
		}
		attrs := []string{fmt.Sprintf("label=%q", label)}
		if a, ok := classAttrs[r.Class]; ok {
			attrs = append(attrs, a)
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", r.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, s := range edges {
		attrs := []string{fmt.Sprintf("label=%q", edgeLabel(s))}
		if s.IsUndirected {
			attrs = append(attrs, "dir=none")
		}
		if s.Class == archimate.StatementShows {
			attrs = append(attrs, "style=dotted")
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", s.Subject, s.Object, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// selectGraph picks the resources and resource-to-resource statements to draw.
func selectGraph(m *specif.Model, opts Options) ([]specif.Resource, []specif.Statement) {
	var shown map[string]bool
	if opts.Diagram != "" {
		shown = map[string]bool{opts.Diagram: opts.IncludeShows}
		for _, s := range m.Statements {
			if s.Class == archimate.StatementShows && s.Subject == opts.Diagram {
				shown[s.Object] = true
			}
		}
	}

	drawn := make(map[string]bool)
	var nodes []specif.Resource
	for _, r := range m.Resources {
		switch {
		case r.Class == archimate.ClassFolder:
			continue
		case r.Class == archimate.ClassDiagram && !opts.IncludeShows:
			continue
		case shown != nil && !shown[r.ID]:
			continue
		}
		drawn[r.ID] = true
		nodes = append(nodes, r)
	}

	var edges []specif.Statement
	for _, s := range m.Statements {
		if !drawn[s.Subject] || !drawn[s.Object] {
			continue
		}
		if shown != nil && s.Class != archimate.StatementShows && !shown[s.ID] {
			continue
		}
		edges = append(edges, s)
	}
	return nodes, edges
}

func edgeLabel(s specif.Statement) string {
	if s.Title != "" {
		return s.Title
	}
	return strings.TrimPrefix(s.Class, "SC-")
}

// RenderSVG renders DOT source to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based svg header with one
// whose viewBox starts at the origin.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(header))
}
