package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tenrai/leitor/pkg/data"
)

var downloadCmd = &cobra.Command{
	Use:   "download [slug]",
	Short: "Baixa capítulos de uma obra como EPUB",
	Long:  "Baixa os capítulos de uma obra para leitura offline, um EPUB por capítulo",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		chaptersFlag, _ := cmd.Flags().GetString("chapters")

		reg := mustRegistry()
		defer reg.Close()

		ctx := context.Background()
		work, err := reg.Source.Work(ctx, args[0])
		if err != nil {
			cobra.CheckErr(fmt.Errorf("carregar obra falhou: %w", err))
		}

		chapters := work.Chapters
		if chaptersFlag != "" {
			chapters = filterRange(chapters, chaptersFlag)
			if chapters == nil {
				fmt.Println("Intervalo inválido. Use --chapters 1-10")
				return
			}
		}
		fmt.Printf("Baixando %d capítulos de %s...\n", len(chapters), work.Name)

		go func() {
			for progress := range reg.Downloader.Progress() {
				switch progress.Status {
				case "downloading":
					fmt.Printf("  Capítulo %s: %d/%d páginas\n",
						data.FormatNumber(progress.ChapterNumber),
						progress.CurrentPage, progress.TotalPages)
				case "complete":
					fmt.Printf("  Capítulo %s: %s\n",
						data.FormatNumber(progress.ChapterNumber), progress.FilePath)
				case "error":
					fmt.Printf("  Capítulo %s: %v\n",
						data.FormatNumber(progress.ChapterNumber), progress.Error)
				}
			}
		}()

		if err := reg.Downloader.DownloadWork(ctx, work.Summary(), chapters); err != nil {
			cobra.CheckErr(fmt.Errorf("download falhou: %w", err))
		}
		fmt.Println("\nDownload concluído.")
	},
}

// filterRange keeps the chapters whose number falls in "a-b". A single
// number selects just that chapter. Returns nil on a malformed flag.
func filterRange(chapters []data.ChapterSummary, flag string) []data.ChapterSummary {
	parts := strings.SplitN(flag, "-", 2)
	start, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return nil
	}
	end := start
	if len(parts) == 2 {
		end, err = strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return nil
		}
	}

	var out []data.ChapterSummary
	for _, ch := range chapters {
		if ch.Number >= start && ch.Number <= end {
			out = append(out, ch)
		}
	}
	return out
}

func init() {
	downloadCmd.Flags().StringP("chapters", "c", "", "intervalo de capítulos (ex.: 1-10)")
	rootCmd.AddCommand(downloadCmd)
}
