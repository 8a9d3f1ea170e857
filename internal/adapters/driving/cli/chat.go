package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Ask questions about your bills interactively",
	Long: `Starts an interactive session. Each question is answered from the
indexed bill PDFs, with citations like [bill-march.pdf#2] pointing back to
the chunk the answer came from.

Type "reset" to clear the conversation, "exit" or "quit" to leave.`,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if err := bootstrap(ctx); err != nil {
		return err
	}
	defer indexStore.Close(ctx) //nolint:errcheck

	if err := llmService.Ping(ctx); err != nil {
		return fmt.Errorf("language model unavailable: %w", err)
	}

	cmd.Println("Ask about your bills. Type \"exit\" to leave.")

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		cmd.Print("> ")
		if !scanner.Scan() {
			break
		}

		question := strings.TrimSpace(scanner.Text())
		switch question {
		case "":
			continue
		case "exit", "quit":
			return nil
		case "reset":
			agentService.Reset()
			cmd.Println("Conversation cleared.")
			continue
		}

		answer, err := agentService.Ask(ctx, question)
		if err != nil {
			cmd.PrintErrf("Error: %v\n", err)
			continue
		}

		cmd.Println(answer.Text)
		if len(answer.Citations) > 0 {
			cmd.Printf("Sources: %s\n", strings.Join(answer.Citations, " "))
		}
		if !answer.Grounded {
			cmd.Println("Warning: the answer cites content that was not retrieved this session.")
		}
		cmd.Println()
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	return nil
}
