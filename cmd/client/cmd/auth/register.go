// cmd/client/cmd/auth/register.go
package auth

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"teamfinder/cmd/client/cmd/types"
	"teamfinder/internal/app/client"
	"teamfinder/internal/domain/user"
)

var (
	regEmail     string
	regCountry   string
	regPlayStyle string
)

var RegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Зарегистрировать нового пользователя",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, _ := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if app == nil {
			return fmt.Errorf("приложение не инициализировано")
		}

		fmt.Println("=== Регистрация ===")
		fmt.Println()

		fmt.Print("Имя пользователя: ")
		var username string
		_, _ = fmt.Scanln(&username)

		fmt.Print("Пароль: ")
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return fmt.Errorf("ошибка чтения пароля: %w", err)
		}
		fmt.Println()

		fmt.Print("Повторите пароль: ")
		passwordConfirm, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return fmt.Errorf("ошибка чтения пароля: %w", err)
		}
		fmt.Println()

		if string(password) != string(passwordConfirm) {
			return fmt.Errorf("пароли не совпадают")
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		u, err := app.Register(ctx, user.RegisterRequest{
			Username:  username,
			Password:  string(password),
			Email:     regEmail,
			Country:   regCountry,
			PlayStyle: regPlayStyle,
		})
		if err != nil {
			return fmt.Errorf("ошибка регистрации: %w", err)
		}

		fmt.Println()
		fmt.Printf("✅ Пользователь %s зарегистрирован. Теперь выполните вход: teamfinder auth login\n", u.Username)
		return nil
	},
}

func init() {
	RegisterCmd.Flags().StringVar(&regEmail, "email", "", "email пользователя")
	RegisterCmd.Flags().StringVar(&regCountry, "country", "", "страна")
	RegisterCmd.Flags().StringVar(&regPlayStyle, "playstyle", "", "стиль игры")
}
