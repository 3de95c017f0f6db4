package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hrygo/alemeno/ai/core/llm"
	"github.com/hrygo/alemeno/internal/profile"
)

// Exit codes of check-key.
const (
	exitKeyOK      = 0
	exitKeyMissing = 2
	exitKeyFailed  = 3
)

const checkKeyPrompt = "Say hello in one sentence."

func newCheckKeyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check-key [API_KEY]",
		Short: "Validate an LLM API key with a one-sentence chat",
		Long: "Validate an LLM API key by sending a short chat to the configured provider.\n" +
			"The key is read from the argument or from OPENAI_API_KEY.\n" +
			"Exit status is 2 when no key is available and 3 when the call fails.",
		Args: cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			p := &profile.Profile{}
			p.FromEnv()

			key := p.LLMAPIKey
			if len(args) == 1 && args[0] != "" {
				key = args[0]
			}
			cfg := llm.Config{
				Provider: p.LLMProvider,
				Model:    p.LLMModel,
				BaseURL:  p.LLMBaseURL,
				Timeout:  p.LLMTimeout,
			}
			os.Exit(runCheckKey(cmd.Context(), cmd.OutOrStdout(), cfg, key))
		},
	}
}

func runCheckKey(ctx context.Context, out io.Writer, cfg llm.Config, key string) int {
	if key == "" {
		fmt.Fprintln(out, "No API key provided. Pass as argument or set OPENAI_API_KEY env var.")
		return exitKeyMissing
	}
	if ctx == nil {
		ctx = context.Background()
	}

	cfg.APIKey = key
	cfg.MaxTokens = 20
	svc, err := llm.NewService(&cfg)
	if err != nil {
		fmt.Fprintln(out, "API test failed:", err)
		return exitKeyFailed
	}

	content, _, err := svc.Chat(ctx, []llm.Message{llm.UserMessage(checkKeyPrompt)})
	if err != nil {
		fmt.Fprintln(out, "API test failed:", err)
		return exitKeyFailed
	}

	fmt.Fprintln(out, "Success. Response:")
	fmt.Fprintln(out, strings.TrimSpace(content))
	return exitKeyOK
}
