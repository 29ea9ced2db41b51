package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/guttosm/suppository-service/internal/compounding"
	"github.com/guttosm/suppository-service/internal/service"
	"github.com/spf13/cobra"
)

const (
	chatPrompt     = "> "
	chatSessionTTL = 24 * time.Hour
)

var quitWords = map[string]bool{"quit": true, "exit": true, "bye": true}

func newChatCommand(deps Dependencies) *cobra.Command {
	var quiet bool
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Enter batch inputs conversationally",
		Long: `Start an interactive session. Describe the batch in plain text, for example
"N=12; blank 1.8 g; base 0.95; API: Drug A 150 mg, rho 1.2", then type
"compute". "example" loads a worked example, "reset" clears the inputs and
"quit" leaves.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return runChat(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), deps, !quiet)
		},
	}
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "do not print the prompt")
	return cmd
}

func runChat(ctx context.Context, in io.Reader, out io.Writer, deps Dependencies, prompt bool) error {
	store := service.NewMemorySessionStore(1, chatSessionTTL)
	defer store.Stop()

	var opts []service.ChatOption
	if deps.MaxMessageLength > 0 {
		opts = append(opts, service.WithMaxMessageLength(deps.MaxMessageLength))
	}
	chat := service.NewChatService(store, deps.Calculator, opts...)

	reply, err := chat.Start(ctx)
	if err != nil {
		return err
	}
	printLines(out, reply.Lines)
	sessionID := reply.SessionID

	scanner := bufio.NewScanner(in)
	for {
		if prompt {
			fmt.Fprint(out, chatPrompt)
		}
		if !scanner.Scan() {
			break
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		if quitWords[strings.ToLower(text)] {
			break
		}

		reply, err := chat.Send(ctx, sessionID, text)
		switch {
		case err == nil:
		case errors.Is(err, service.ErrMessageTooLong):
			fmt.Fprintln(out, "That message is too long; send the inputs in smaller pieces.")
			continue
		default:
			var inputErr *compounding.InputError
			if errors.As(err, &inputErr) {
				printInputError(out, inputErr)
				continue
			}
			return err
		}

		printLines(out, reply.Lines)
		if reply.Outcome != nil {
			recordCLI(ctx, deps.History, *reply.Outcome)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return chat.End(ctx, sessionID)
}

func printLines(w io.Writer, lines []string) {
	for _, line := range lines {
		fmt.Fprintln(w, line)
	}
}
