// cmd/client/cmd/init.go
package cmd

import (
	"teamfinder/cmd/client/cmd/auth"
	"teamfinder/cmd/client/cmd/event"
	"teamfinder/cmd/client/cmd/sync"
)

func init() {
	// Команды аутентификации
	rootCmd.AddCommand(auth.AuthCmd)
	auth.AuthCmd.AddCommand(auth.RegisterCmd)
	auth.AuthCmd.AddCommand(auth.LoginCmd)
	auth.AuthCmd.AddCommand(auth.LogoutCmd)

	// Команды работы с событиями
	rootCmd.AddCommand(event.EventCmd)
	event.EventCmd.AddCommand(event.ListCmd)
	event.EventCmd.AddCommand(event.ViewCmd)
	event.EventCmd.AddCommand(event.CreateCmd)
	event.EventCmd.AddCommand(event.JoinCmd)
	event.EventCmd.AddCommand(event.LeaveCmd)
	event.EventCmd.AddCommand(event.ParticipantsCmd)

	rootCmd.AddCommand(sync.SyncCmd)
}
