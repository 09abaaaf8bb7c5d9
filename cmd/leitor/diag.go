package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/tenrai/leitor/pkg/app/styles"
	"github.com/tenrai/leitor/pkg/services"
)

var diagCmd = &cobra.Command{
	Use:   "diag",
	Short: "Testa a conexão com o catálogo e o backend",
	Run: func(cmd *cobra.Command, args []string) {
		reg := mustRegistry()
		defer reg.Close()

		ctx := context.Background()
		reg.Sessions.Init(ctx)

		fmt.Println("Rodando diagnóstico...")
		results := reg.Diagnostics.Run(ctx)

		failed := 0
		for _, r := range results {
			fmt.Printf("  %s %-28s %s\n", diagBadge(r.Status), r.Name, r.Elapsed.Round(time.Millisecond))
			if r.Err != nil {
				failed++
				fmt.Printf("      %v\n", r.Err)
			}
			if r.Hint != "" && r.Status != services.DiagOK {
				fmt.Printf("      dica: %s\n", r.Hint)
			}
		}

		if failed == 0 {
			fmt.Println("\nTudo certo.")
		} else {
			fmt.Printf("\n%d verificações falharam.\n", failed)
		}
	},
}

func diagBadge(status services.DiagStatus) string {
	switch status {
	case services.DiagOK:
		return lipgloss.NewStyle().Foreground(styles.Success).Render("ok  ")
	case services.DiagTimeout:
		return lipgloss.NewStyle().Foreground(styles.Warning).Render("time")
	default:
		return lipgloss.NewStyle().Foreground(styles.Error).Render("erro")
	}
}

func init() {
	rootCmd.AddCommand(diagCmd)
}
