package event

import (
	"fmt"

	"github.com/spf13/cobra"

	"teamfinder/cmd/client/cmd/types"
	"teamfinder/internal/app/client"
)

// EventCmd - родительская команда для операций с событиями
var EventCmd = &cobra.Command{
	Use:   "event",
	Short: "Просмотр событий и управление записью",
	Long: `Просмотр игровых событий, запись и отмена записи.

В офлайн-режиме показываются кэшированные данные, а запись и отмена
откладываются в очередь до восстановления сети.`,
}

func appFromContext(cmd *cobra.Command) (*client.App, error) {
	app, _ := cmd.Context().Value(types.ClientAppKey).(*client.App)
	if app == nil {
		return nil, fmt.Errorf("приложение не инициализировано")
	}
	return app, nil
}
