// cmd/client/cmd/event/participants.go
package event

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var ParticipantsCmd = &cobra.Command{
	Use:   "participants <id>",
	Short: "Показать участников события в порядке регистрации",
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
		}

		participants := coord.Participants()
		if len(participants) == 0 {
			fmt.Println("Участников пока нет")
			return nil
		}

		for i, p := range participants {
			marker := ""
			if p.ID.IsOptimistic() {
				marker = color.YellowString(" (ожидает подтверждения)")
			}
			fmt.Printf("%d. %s — %s%s\n", i+1, p.Nick, p.Role, marker)
		}
		return nil
	},
}
