package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tenrai/leitor/pkg/utils"
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Lista as obras da sua biblioteca",
	Run: func(cmd *cobra.Command, args []string) {
		reg := mustRegistry()
		defer reg.Close()

		ctx := context.Background()
		reg.Sessions.Init(ctx)
		if reg.Sessions.User() == nil {
			fmt.Println("Você não está logado. Use 'leitor login'.")
			return
		}

		entries, err := reg.Library.Entries(ctx)
		if err != nil {
			cobra.CheckErr(fmt.Errorf("carregar biblioteca falhou: %w", err))
		}

		if len(entries) == 0 {
			fmt.Println("Sua biblioteca está vazia.")
			return
		}

		now := time.Now()
		t := resultsTable().Headers("Obra", "Adicionada")
		for _, e := range entries {
			t.Row(truncateString(e.WorkName, 50),
				utils.RelativeLong(e.AddedAt, now))
		}
		fmt.Printf("\nBiblioteca (%d obras)\n", len(entries))
		fmt.Println(t)
	},
}

func init() {
	rootCmd.AddCommand(libraryCmd)
}
