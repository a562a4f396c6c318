package cmd

import (
	"github.com/carousell/ct-go/pkg/logger/log"
	"github.com/spf13/cobra"
	"github.com/todomarket/whatsapp-bot/internal/app"
	"github.com/todomarket/whatsapp-bot/internal/kafka"
	"github.com/todomarket/whatsapp-bot/internal/server"
)

var rootCmd = &cobra.Command{
	Use:           "todomarket-bot",
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		app.Invoke(
			server.StartServer,
			kafka.StartConsumeMessages,
		).Run()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
