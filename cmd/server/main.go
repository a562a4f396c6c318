package main

import "github.com/todomarket/whatsapp-bot/cmd"

func main() {
	cmd.Execute()
}
