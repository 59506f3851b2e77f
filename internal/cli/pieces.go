package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/blockfill/pkg/core/shape"
)

// piecesCommand creates the catalog listing command.
func (c *CLI) piecesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "pieces",
		Short: "List the active piece catalog",
		Long: `List the pieces drawn during play, with colored previews.

Pieces come from the [[pieces]] section of the config file when present and
from the built-in catalog otherwise.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			cat, err := cfg.Catalog()
			if err != nil {
				return err
			}
			source := "built-in"
			if len(cfg.Pieces) > 0 {
				source = "config"
			}
			fmt.Println(StyleTitle.Render(fmt.Sprintf("%d pieces", len(cat))) + " " + StyleDim.Render("("+source+")"))
			fmt.Println(piecesTable(cat))
			return nil
		},
	}
}

func piecesTable(cat []shape.Shape) string {
	rows := make([][]string, len(cat))
	for i, s := range cat {
		rows[i] = []string{
			s.Name(),
			s.Color(),
			fmt.Sprint(s.Size()),
			fmt.Sprint(len(shape.Rotations(s))),
			renderPiece(s),
		}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		BorderRow(true).
		Headers("Name", "Color", "Cells", "Turns", "Preview").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			if col == 0 {
				return StyleHighlight
			}
			return StyleValue
		}).
		Render()
}
