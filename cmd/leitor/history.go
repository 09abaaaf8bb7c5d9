package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tenrai/leitor/pkg/utils"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Lista o seu histórico de leitura",
	Run: func(cmd *cobra.Command, args []string) {
		reg := mustRegistry()
		defer reg.Close()

		ctx := context.Background()
		reg.Sessions.Init(ctx)
		if reg.Sessions.User() == nil {
			fmt.Println("Você não está logado. Use 'leitor login'.")
			return
		}

		entries, err := reg.History.List(ctx)
		if err != nil {
			cobra.CheckErr(fmt.Errorf("carregar histórico falhou: %w", err))
		}

		if len(entries) == 0 {
			fmt.Println("Nenhuma leitura registrada.")
			return
		}

		now := time.Now()
		t := resultsTable().Headers("Obra", "Capítulo", "Lido")
		for _, e := range entries {
			t.Row(truncateString(e.WorkName, 40),
				e.ChapterName,
				utils.RelativeLong(e.ReadAt, now))
		}
		fmt.Println(t)
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
}
