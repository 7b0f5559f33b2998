// cmd/client/cmd/event/list.go
package event

import (
	"fmt"

	"github.com/spf13/cobra"
)

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "Показать список событий",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := appFromContext(cmd)
		if err != nil {
			return err
		}

		events, err := app.ListEvents(cmd.Context())
		if err != nil {
			return fmt.Errorf("ошибка получения списка событий: %w", err)
		}

		if len(events) == 0 {
			fmt.Println("Событий пока нет")
			return nil
		}

		for _, e := range events {
			fmt.Printf("#%-4d %-30s %s  мест %d/%d\n",
				e.ID, e.Title, e.StartsAt.Format("02.01.2006 15:04"),
				e.ParticipantCount, e.MaxParticipants,
			)
		}
		return nil
	},
}
