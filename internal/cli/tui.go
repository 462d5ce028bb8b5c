package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/archispec/pkg/specif"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	listFolderStyle   = lipgloss.NewStyle().Foreground(colorGreen)
)

// =============================================================================
// HierarchyModel - Interactive hierarchy browser
// =============================================================================

// treeRow is one visible line of the hierarchy.
type treeRow struct {
	node  *specif.HierarchyNode
	depth int
}

// HierarchyModel is the bubbletea model for browsing a SpecIF hierarchy.
type HierarchyModel struct {
	Model    *specif.Model
	Cursor   int
	Height   int
	Offset   int
	expanded map[string]bool
	rows     []treeRow

	resources map[string]*specif.Resource
	degree    map[string]int
}

// NewHierarchyModel creates a browser with the top-level nodes expanded.
func NewHierarchyModel(m *specif.Model) HierarchyModel {
	h := HierarchyModel{
		Model:     m,
		Height:    20,
		expanded:  map[string]bool{},
		resources: make(map[string]*specif.Resource, len(m.Resources)),
		degree:    map[string]int{},
	}
	for i := range m.Resources {
		h.resources[m.Resources[i].ID] = &m.Resources[i]
	}
	for _, s := range m.Statements {
		h.degree[s.Subject]++
		h.degree[s.Object]++
	}
	for _, n := range m.Hierarchies {
		h.expanded[n.ID] = true
	}
	h.rebuild()
	return h
}

// rebuild flattens the expanded part of the tree into rows.
func (m *HierarchyModel) rebuild() {
	m.rows = m.rows[:0]
	var visit func(nodes []specif.HierarchyNode, depth int)
	visit = func(nodes []specif.HierarchyNode, depth int) {
		for i := range nodes {
			n := &nodes[i]
			m.rows = append(m.rows, treeRow{node: n, depth: depth})
			if m.expanded[n.ID] {
				visit(n.Nodes, depth+1)
			}
		}
	}
	visit(m.Model.Hierarchies, 0)
	if m.Cursor >= len(m.rows) {
		m.Cursor = max(len(m.rows)-1, 0)
	}
}

// Selected returns the node under the cursor.
func (m HierarchyModel) Selected() *specif.HierarchyNode {
	if len(m.rows) == 0 {
		return nil
	}
	return m.rows[m.Cursor].node
}

func (m HierarchyModel) Init() tea.Cmd {
	return nil
}

func (m HierarchyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.rows)-1 {
				m.Cursor++
			}
		case "enter", " ":
			if n := m.Selected(); n != nil && len(n.Nodes) > 0 {
				m.expanded[n.ID] = !m.expanded[n.ID]
				m.rebuild()
			}
		case "right", "l":
			if n := m.Selected(); n != nil && len(n.Nodes) > 0 {
				m.expanded[n.ID] = true
				m.rebuild()
			}
		case "left", "h":
			m.collapse()
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 10
		if m.Height < 5 {
			m.Height = 5
		}
	}
	m.scroll()
	return m, nil
}

// collapse closes the selected node, or moves to its parent when it is
// already closed.
func (m *HierarchyModel) collapse() {
	if len(m.rows) == 0 {
		return
	}
	row := m.rows[m.Cursor]
	if m.expanded[row.node.ID] && len(row.node.Nodes) > 0 {
		m.expanded[row.node.ID] = false
		m.rebuild()
		return
	}
	for i := m.Cursor - 1; i >= 0; i-- {
		if m.rows[i].depth < row.depth {
			m.Cursor = i
			return
		}
	}
}

func (m *HierarchyModel) scroll() {
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

func (m HierarchyModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Model.Title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ expand/collapse  ← parent  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.rows))
	for i := m.Offset; i < end; i++ {
		row := m.rows[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		marker := "  "
		if len(row.node.Nodes) > 0 {
			marker = "+ "
			if m.expanded[row.node.ID] {
				marker = "- "
			}
		}
		title, class := m.label(row.node)
		line := cursor + strings.Repeat("  ", row.depth) + marker + title

		switch {
		case i == m.Cursor:
			b.WriteString(listSelectedStyle.Render(line))
		case class == "RC-Folder":
			b.WriteString(listFolderStyle.Render(line))
		default:
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString(" " + listDimStyle.Render(class))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.details())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.rows))))
	return b.String()
}

// label returns the display title and class of a node's resource.
func (m HierarchyModel) label(n *specif.HierarchyNode) (string, string) {
	r, ok := m.resources[n.Resource]
	if !ok {
		return n.Resource, "?"
	}
	title := r.Title
	if title == "" {
		title = r.ID
	}
	return title, r.Class
}

// details describes the selected resource.
func (m HierarchyModel) details() string {
	n := m.Selected()
	if n == nil {
		return listDimStyle.Render("  (empty hierarchy)")
	}
	r, ok := m.resources[n.Resource]
	if !ok {
		return listDimStyle.Render("  unresolved resource " + n.Resource)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "  %s  %s\n", StyleDim.Render("id"), StyleValue.Render(r.ID))
	fmt.Fprintf(&b, "  %s  %s\n", StyleDim.Render("properties"), StyleNumber.Render(fmt.Sprint(len(r.Properties))))
	fmt.Fprintf(&b, "  %s  %s", StyleDim.Render("statements"), StyleNumber.Render(fmt.Sprint(m.degree[r.ID])))
	return b.String()
}
