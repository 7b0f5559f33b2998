// cmd/client/cmd/event/create.go
package event

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"teamfinder/internal/domain/event"
)

var (
	createTitle       string
	createDescription string
	createGameID      int64
	createStartsAt    string
	createEndsAt      string
	createMax         int
	createPublic      bool
)

var CreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Создать событие",
	Long: `Создание нового игрового события на сервере.

Создание требует соединения с сервером и не откладывается в очередь.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := appFromContext(cmd)
		if err != nil {
			return err
		}

		if !app.IsAuthenticated() {
			return fmt.Errorf("требуется аутентификация. Выполните: teamfinder auth login")
		}

		startsAt, err := time.Parse("2006-01-02 15:04", createStartsAt)
		if err != nil {
			return fmt.Errorf("неверный формат даты начала (ожидается ГГГГ-ММ-ДД ЧЧ:ММ): %w", err)
		}
		endsAt, err := time.Parse("2006-01-02 15:04", createEndsAt)
		if err != nil {
			return fmt.Errorf("неверный формат даты окончания (ожидается ГГГГ-ММ-ДД ЧЧ:ММ): %w", err)
		}

		created, err := app.CreateEvent(cmd.Context(), event.CreateRequest{
			Title:           createTitle,
			Description:     createDescription,
			GameID:          createGameID,
			StartsAt:        startsAt,
			EndsAt:          endsAt,
			MaxParticipants: createMax,
			Public:          createPublic,
		})
		if err != nil {
			return fmt.Errorf("ошибка создания события: %w", err)
		}

		fmt.Printf("✅ Событие создано: #%d %s\n", created.ID, created.Title)
		return nil
	},
}

func init() {
	CreateCmd.Flags().StringVar(&createTitle, "title", "", "название события")
	CreateCmd.Flags().StringVar(&createDescription, "description", "", "описание")
	CreateCmd.Flags().Int64Var(&createGameID, "game", 0, "идентификатор игры")
	CreateCmd.Flags().StringVar(&createStartsAt, "starts", "", "начало (ГГГГ-ММ-ДД ЧЧ:ММ)")
	CreateCmd.Flags().StringVar(&createEndsAt, "ends", "", "окончание (ГГГГ-ММ-ДД ЧЧ:ММ)")
	CreateCmd.Flags().IntVar(&createMax, "max", 10, "максимум участников")
	CreateCmd.Flags().BoolVar(&createPublic, "public", true, "публичное событие")

	_ = CreateCmd.MarkFlagRequired("title")
	_ = CreateCmd.MarkFlagRequired("starts")
	_ = CreateCmd.MarkFlagRequired("ends")
}
