package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/reece-davies/trampoline-coach-ai/internal/client"
	"github.com/spf13/cobra"
)

var chatServerURL string

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with a running server from the terminal",
	Long:  `Start an interactive terminal chat against a running coach server, streaming replies as they arrive.`,
	RunE:  runChat,
}

func init() {
	chatCmd.Flags().StringVar(&chatServerURL, "server", "http://localhost:8080", "Base URL of the running server")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	controller := client.New(chatServerURL)

	fmt.Println("Trampoline Coach AI - type a question, or /quit to exit.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		message := strings.TrimSpace(scanner.Text())
		if message == "" {
			continue
		}
		if message == "/quit" || message == "/exit" {
			break
		}

		fmt.Print("coach: ")
		err := controller.Send(cmd.Context(), message, func(chunk string) {
			fmt.Print(chunk)
		})
		if err != nil {
			fmt.Printf("\nerror: %v", err)
		}
		fmt.Println()
	}

	return scanner.Err()
}
