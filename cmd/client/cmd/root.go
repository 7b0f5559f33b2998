// cmd/client/cmd/root.go
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"

	"teamfinder/cmd/client/cmd/types"
	"teamfinder/internal/app/client"
	"teamfinder/internal/app/client/config"
	"teamfinder/internal/utils/logger"
)

var (
	cfg       *config.Config
	log       *slog.Logger
	app       *client.App
	serverURL string
	offline   bool
	debug     bool
)

var rootCmd = &cobra.Command{
	Use:   "teamfinder",
	Short: "Teamfinder - клиент для записи на игровые события",
	Long: `Teamfinder — клиент для поиска команды: регистрация на игровые
события, просмотр участников и отмена записи.

Клиент устойчив к пропаданию сети: действия, выполненные офлайн,
откладываются в очередь и воспроизводятся при восстановлении соединения,
а последние просмотренные события доступны из локального кэша.`,
	PersistentPreRunE: setupApp,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка: %v\n", err)
		os.Exit(1)
	}
}

func setupApp(cmd *cobra.Command, _ []string) error {
	cfg = config.MustLoad()

	// Переопределяем настройки из флагов командной строки
	if serverURL != "" {
		cfg.ServerAddress = serverURL
	}
	if offline {
		cfg.StartOffline = true
	}
	if debug {
		// Локальный pretty-handler пишет debug-уровень
		cfg.Env = "local"
	}

	log = logger.New(cfg.Env)

	var err error
	app, err = client.New(cfg, log)
	if err != nil {
		return fmt.Errorf("ошибка инициализации приложения: %w", err)
	}

	cmd.SetContext(context.WithValue(cmd.Context(), types.ClientAppKey, app))
	return nil
}

func init() {
	cobra.OnInitialize()

	// Глобальные флаги
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "адрес сервера Teamfinder")
	rootCmd.PersistentFlags().BoolVar(&offline, "offline", false, "стартовать в офлайн-режиме без пробы сервера")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "включить отладочный режим")

	// Команды добавляются в init() соответствующих файлов
}
