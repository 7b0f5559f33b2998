// cmd/client/cmd/event/leave.go
package event

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var LeaveCmd = &cobra.Command{
	Use:   "leave <id>",
	Short: "Отменить запись на событие",
	Args:  cobra.ExactArgs(1),
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

		coord := app.Coordinator()
		if err := coord.Load(cmd.Context(), eventID); err != nil {
			return fmt.Errorf("ошибка загрузки события: %w", err)
		}

		queued, err := coord.Leave(cmd.Context(), u.ID)
		if err != nil {
			return fmt.Errorf("отмена записи не удалась: %w", err)
		}

		if queued {
			color.Yellow("⚠ Нет соединения с сервером: отмена отложена и будет отправлена автоматически")
		} else {
			fmt.Println("✅ Запись отменена")
		}
		return nil
	},
}
