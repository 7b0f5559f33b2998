// cmd/client/cmd/event/view.go
package event

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var ViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Показать событие и список участников",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := appFromContext(cmd)
		if err != nil {
			return err
		}

		eventID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("неверный идентификатор события: %q", args[0])
		}

		coord := app.Coordinator()
		if err := coord.Load(cmd.Context(), eventID); err != nil {
			return fmt.Errorf("ошибка загрузки события: %w", err)
		}

		if coord.Offline() {
			color.Yellow("⚠ Офлайн-режим: показаны кэшированные данные")
			fmt.Println()
		}

		e := coord.Event()
		if e == nil {
			fmt.Println("Событие недоступно: нет данных в кэше")
			return nil
		}

		bold := color.New(color.Bold)
		bold.Printf("%s (#%d)\n", e.Title, e.ID)
		if e.Description != "" {
			fmt.Println(e.Description)
		}
		fmt.Printf("Начало:    %s\n", e.StartsAt.Format("02.01.2006 15:04"))
		fmt.Printf("Окончание: %s\n", e.EndsAt.Format("02.01.2006 15:04"))
		fmt.Printf("Мест:      %d/%d\n", e.ParticipantCount, e.MaxParticipants)

		participants := coord.Participants()
		fmt.Println()
		bold.Printf("Участники (%d):\n", len(participants))
		for i, p := range participants {
			marker := ""
			if p.ID.IsOptimistic() {
				marker = color.YellowString(" (ожидает подтверждения)")
			}
			fmt.Printf("  %d. %s — %s%s\n", i+1, p.Nick, p.Role, marker)
		}

		return nil
	},
}
