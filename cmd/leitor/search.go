package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/tenrai/leitor/pkg/sources"
	"github.com/tenrai/leitor/pkg/utils"
)

var searchCmd = &cobra.Command{
	Use:   "search [termo]",
	Short: "Busca obras no catálogo",
	Long:  "Busca obras pelo nome e mostra os resultados em uma tabela",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		query := strings.Join(args, " ")
		page, _ := cmd.Flags().GetInt("page")

		reg := mustRegistry()
		defer reg.Close()

		results, err := reg.Source.Search(context.Background(),
			page, reg.Config.API.PageSize, sources.SearchQuery{Name: query})
		if err != nil {
			cobra.CheckErr(fmt.Errorf("busca falhou: %w", err))
		}

		if len(results) == 0 {
			fmt.Println("Nenhum resultado.")
			return
		}

		t := resultsTable().Headers("#", "Nome", "Slug")
		for i, work := range results {
			t.Row(fmt.Sprintf("%d", i+1),
				truncateString(work.Name, 58),
				utils.Slugify(work.Name))
		}
		fmt.Println(t)
	},
}

// resultsTable is the shared look of the listing commands.
func resultsTable() *table.Table {
	purple := lipgloss.Color("99")
	headerStyle := lipgloss.NewStyle().Foreground(purple).Bold(true).Align(lipgloss.Center)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	return table.New().
		Border(lipgloss.HiddenBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(purple)).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			default:
				return cellStyle
			}
		})
}

func init() {
	searchCmd.Flags().IntP("page", "p", 1, "página de resultados")
	rootCmd.AddCommand(searchCmd)
}
