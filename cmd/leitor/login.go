package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login [refresh-token]",
	Short: "Entra na sua conta",
	Long:  "Sem argumentos mostra o endereço de autorização; com o refresh token copiado do navegador, completa o login",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		reg := mustRegistry()
		defer reg.Close()

		if len(args) == 0 {
			fmt.Println("Abra este endereço no navegador e autorize o acesso:")
			fmt.Printf("\n  %s\n\n", reg.Backend.OAuthURL("google", "leitor://auth"))
			fmt.Println("Depois rode: leitor login <refresh-token>")
			return
		}

		session, err := reg.Backend.SignInWithRefreshToken(context.Background(), args[0])
		if err != nil {
			cobra.CheckErr(fmt.Errorf("login falhou: %w", err))
		}
		fmt.Printf("Logado como %s\n", session.User.DisplayName())
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sai da sua conta",
	Run: func(cmd *cobra.Command, args []string) {
		reg := mustRegistry()
		defer reg.Close()

		reg.Backend.SignOut()
		fmt.Println("Sessão encerrada.")
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
}
