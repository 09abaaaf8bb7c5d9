package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tenrai/leitor/pkg/utils"
)

var workCmd = &cobra.Command{
	Use:   "work [slug]",
	Short: "Mostra os detalhes de uma obra",
	Long:  "Mostra a descrição, os gêneros e a lista de capítulos de uma obra pelo slug",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		reg := mustRegistry()
		defer reg.Close()

		work, err := reg.Source.Work(context.Background(), args[0])
		if err != nil {
			cobra.CheckErr(fmt.Errorf("carregar obra falhou: %w", err))
		}

		fmt.Printf("\n%s\n", work.Name)
		if work.Status != "" {
			fmt.Printf("Status: %s\n", work.Status)
		}
		if len(work.Tags) > 0 {
			fmt.Print("Gêneros:")
			for _, tag := range work.Tags {
				fmt.Printf(" %s", tag.Name)
			}
			fmt.Println()
		}
		if work.Description != "" {
			fmt.Printf("\n%s\n", truncateString(work.Description, 400))
		}

		if len(work.Chapters) == 0 {
			fmt.Println("\nNenhum capítulo publicado.")
			return
		}

		now := time.Now()
		t := resultsTable().Headers("ID", "Capítulo", "Publicado")
		for _, ch := range work.Chapters {
			t.Row(fmt.Sprintf("%d", ch.ID),
				ch.DisplayName(),
				utils.RelativeLong(ch.CreatedAt, now))
		}
		fmt.Println(t)
	},
}

func init() {
	rootCmd.AddCommand(workCmd)
}
