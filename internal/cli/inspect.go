package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/archispec/pkg/io"
	"github.com/matzehuels/archispec/pkg/specif"
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <model.specif.json>",
		Short: "Summarize a SpecIF model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := io.ImportJSON(args[0])
			if err != nil {
				return err
			}
			printInspect(m)
			return nil
		},
	}
}

func printInspect(m *specif.Model) {
	st := m.Stats()

	fmt.Println(StyleTitle.Render(m.Title))
	printKeyValue("id", m.ID)
	printKeyValue("generator", m.Generator+" "+m.GeneratorVersion)
	printKeyValue("created", m.CreatedAt)
	printNewline()

	fmt.Println(statsTable("Collection", [][]string{
		{"dataTypes", strconv.Itoa(st.DataTypes)},
		{"propertyClasses", strconv.Itoa(st.PropertyClasses)},
		{"resourceClasses", strconv.Itoa(st.ResourceClasses)},
		{"statementClasses", strconv.Itoa(st.StatementClasses)},
		{"resources", strconv.Itoa(st.Resources)},
		{"statements", strconv.Itoa(st.Statements)},
		{"hierarchy nodes", strconv.Itoa(st.HierarchyNodes)},
	}))
	if len(st.ResourcesByClass) > 0 {
		fmt.Println(statsTable("Resource class", classRows(st.ResourcesByClass)))
	}
	if len(st.StatementsByClass) > 0 {
		fmt.Println(statsTable("Statement class", classRows(st.StatementsByClass)))
	}
}

func classRows(counts map[string]int) [][]string {
	classes := specif.SortedClasses(counts)
	rows := make([][]string, len(classes))
	for i, class := range classes {
		rows[i] = []string{class, strconv.Itoa(counts[class])}
	}
	return rows
}

// statsTable renders name/count rows with the count column right-aligned.
func statsTable(header string, rows [][]string) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(header, "Count").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 1 {
				return cell.Foreground(colorCyan).Align(lipgloss.Right)
			}
			return cell.Foreground(colorWhite)
		}).
		Render()
}
