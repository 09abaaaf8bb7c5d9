package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/tenrai/leitor/pkg/app"
	"github.com/tenrai/leitor/pkg/config"
	"github.com/tenrai/leitor/pkg/services"
	"github.com/tenrai/leitor/pkg/utils"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "leitor",
	Short: "Leitor de obras no terminal",
	Long:  "Navegue pelo catálogo, acompanhe sua biblioteca e leia capítulos no terminal",
	Run: func(cmd *cobra.Command, args []string) {
		reg := mustRegistry()
		defer reg.Close()

		a := app.NewApp(reg)
		if err := a.Run(); err != nil {
			cobra.CheckErr(err)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "caminho do arquivo de configuração")
}

// mustRegistry builds the service graph from the config file, exiting
// on failure. Every subcommand starts here.
func mustRegistry() *services.Registry {
	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	cobra.CheckErr(err)

	reg, err := services.NewRegistry(cfg)
	cobra.CheckErr(err)
	return reg
}

func truncateString(s string, max int) string {
	return utils.Truncate(s, max)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
