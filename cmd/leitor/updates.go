package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tenrai/leitor/pkg/utils"
)

var updatesCmd = &cobra.Command{
	Use:   "updates",
	Short: "Mostra os últimos lançamentos",
	Long:  "Lista as obras atualizadas mais recentemente com seus capítulos novos",
	Run: func(cmd *cobra.Command, args []string) {
		page, _ := cmd.Flags().GetInt("page")

		reg := mustRegistry()
		defer reg.Close()

		works, err := reg.Source.Updates(context.Background(), page, reg.Config.API.PageSize)
		if err != nil {
			cobra.CheckErr(fmt.Errorf("carregar lançamentos falhou: %w", err))
		}

		if len(works) == 0 {
			fmt.Println("Nenhum lançamento.")
			return
		}

		now := time.Now()
		t := resultsTable().Headers("Obra", "Capítulo", "Quando")
		for _, work := range works {
			if len(work.Chapters) == 0 {
				t.Row(truncateString(work.Name, 40), "-", "-")
				continue
			}
			latest := work.Chapters[0]
			t.Row(truncateString(work.Name, 40),
				latest.DisplayName(),
				utils.RelativeShort(latest.CreatedAt, now))
		}
		fmt.Println(t)
	},
}

func init() {
	updatesCmd.Flags().IntP("page", "p", 1, "página de resultados")
	rootCmd.AddCommand(updatesCmd)
}
