// cmd/client/cmd/sync/sync.go
package sync

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"teamfinder/cmd/client/cmd/types"
	"teamfinder/internal/app/client"
)

var showQueue bool

var SyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Управление синхронизацией",
	Long: `Воспроизведение очереди отложенных действий.

Обычно очередь воспроизводится автоматически при восстановлении сети;
команда позволяет запустить синхронизацию вручную и посмотреть очередь.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, _ := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if app == nil {
			return fmt.Errorf("приложение не инициализировано")
		}

		if showQueue {
			return printQueue(app)
		}

		fmt.Println("=== Синхронизация ===")

		before, err := app.PendingActions()
		if err != nil {
			return fmt.Errorf("ошибка чтения очереди: %w", err)
		}
		if len(before) == 0 {
			fmt.Println("Очередь пуста, синхронизация не требуется")
			return nil
		}

		fmt.Printf("Отложенных действий: %d\n", len(before))
		fmt.Println("Проверка соединения с сервером...")

		if err := app.Sync(cmd.Context()); err != nil {
			color.Yellow("⚠ %v", err)
			fmt.Println("Действия остаются в очереди и будут отправлены позже")
			return nil
		}

		after, err := app.PendingActions()
		if err != nil {
			return fmt.Errorf("ошибка чтения очереди: %w", err)
		}

		fmt.Println()
		if len(after) == 0 {
			fmt.Println("✅ Синхронизация завершена, очередь пуста")
		} else {
			color.Yellow("⚠ Синхронизация завершена частично, в очереди осталось действий: %d", len(after))
		}
		return nil
	},
}

func printQueue(app *client.App) error {
	actions, err := app.PendingActions()
	if err != nil {
		return fmt.Errorf("ошибка чтения очереди: %w", err)
	}

	if len(actions) == 0 {
		fmt.Println("Очередь пуста")
		return nil
	}

	fmt.Printf("Отложенные действия (%d):\n", len(actions))
	for i, a := range actions {
		switch a.Kind {
		case client.ActionJoin:
			fmt.Printf("  %d. join  событие #%d, ник %q, роль %q\n", i+1, a.EventID, a.Nick, a.Role)
		case client.ActionLeave:
			fmt.Printf("  %d. leave событие #%d, пользователь %d\n", i+1, a.EventID, a.UserID)
		}
	}
	return nil
}

func init() {
	SyncCmd.Flags().BoolVar(&showQueue, "queue", false, "показать очередь без синхронизации")
}
