// Package nodelink renders SpecIF models as node-link diagrams.
//
// Resources become Graphviz nodes shaped by class (actors as boxes, states
// as rounded boxes, events as hexagons, collections dashed) and statements
// become labelled edges. Folders never appear; diagrams appear only when
// [Options.IncludeShows] is set.
//
// # Usage
//
//	dot := nodelink.ToDOT(model, nodelink.Options{Diagram: "id-view-1"})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Diagram Filter
//
// With [Options.Diagram] set, only the elements and statements that view
// shows are drawn, which approximates the source view without its
// geometry.
package nodelink
