package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/tenrai/leitor/pkg/services"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Mostra e atualiza o seu perfil",
	Long:  "Mostra o perfil da conta logada; com --avatar ou --banner, envia uma nova imagem",
	Run: func(cmd *cobra.Command, args []string) {
		avatarPath, _ := cmd.Flags().GetString("avatar")
		bannerPath, _ := cmd.Flags().GetString("banner")

		reg := mustRegistry()
		defer reg.Close()

		ctx := context.Background()
		reg.Sessions.Init(ctx)
		user := reg.Sessions.User()
		if user == nil {
			fmt.Println("Você não está logado. Use 'leitor login'.")
			return
		}

		if avatarPath != "" {
			url, err := uploadImage(ctx, reg, avatarPath, true)
			cobra.CheckErr(err)
			fmt.Printf("Avatar atualizado: %s\n", url)
		}
		if bannerPath != "" {
			url, err := uploadImage(ctx, reg, bannerPath, false)
			cobra.CheckErr(err)
			fmt.Printf("Banner atualizado: %s\n", url)
		}

		profile, err := reg.Profiles.Get(ctx)
		cobra.CheckErr(err)

		fmt.Printf("\n%s\n", user.DisplayName())
		if user.Email != "" {
			fmt.Println(user.Email)
		}
		if profile != nil {
			if profile.AvatarURL != "" {
				fmt.Printf("Avatar: %s\n", profile.AvatarURL)
			}
			if profile.BannerURL != "" {
				fmt.Printf("Banner: %s\n", profile.BannerURL)
			}
		}
	},
}

func uploadImage(ctx context.Context, reg *services.Registry, path string, avatar bool) (string, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	contentType := http.DetectContentType(body)
	if avatar {
		return reg.Profiles.SetAvatar(ctx, body, contentType)
	}
	return reg.Profiles.SetBanner(ctx, body, contentType)
}

func init() {
	profileCmd.Flags().String("avatar", "", "arquivo de imagem para o avatar")
	profileCmd.Flags().String("banner", "", "arquivo de imagem para o banner")
	rootCmd.AddCommand(profileCmd)
}
