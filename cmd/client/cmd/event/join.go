// cmd/client/cmd/event/join.go
package event

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	joinNick string
	joinRole string
)

var JoinCmd = &cobra.Command{
	Use:   "join <id>",
	Short: "Записаться на событие",
	Long: `Запись на событие с указанием ника и роли.

В офлайн-режиме запись откладывается и будет отправлена на сервер
автоматически при восстановлении соединения.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := appFromContext(cmd)
		if err != nil {
			return err
		}

		if !app.IsAuthenticated() {
			return fmt.Errorf("требуется аутентификация. Выполните: teamfinder auth login")
		}

		u, ok := app.CurrentUser()
		if !ok {
			return fmt.Errorf("профиль пользователя не найден. Выполните вход заново")
		}

		eventID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("неверный идентификатор события: %q", args[0])
		}

		nick := joinNick
		if nick == "" {
			nick = u.Username
		}

		coord := app.Coordinator()
		if err := coord.Load(cmd.Context(), eventID); err != nil {
			return fmt.Errorf("ошибка загрузки события: %w", err)
		}

		queued, err := coord.Join(cmd.Context(), u.ID, nick, joinRole)
		if err != nil {
			return fmt.Errorf("запись не удалась: %w", err)
		}

		if queued {
			color.Yellow("⚠ Нет соединения с сервером: запись отложена и будет отправлена автоматически")
		} else {
			fmt.Println("✅ Вы записаны на событие!")
		}
		return nil
	},
}

func init() {
	JoinCmd.Flags().StringVar(&joinNick, "nick", "", "ник в списке участников (по умолчанию имя пользователя)")
	JoinCmd.Flags().StringVar(&joinRole, "role", "", "роль в команде")
}
