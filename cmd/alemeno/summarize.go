package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/hrygo/alemeno/ai/core/llm"
	"github.com/hrygo/alemeno/ai/summary"
	"github.com/hrygo/alemeno/internal/profile"
)

func newSummarizeCommand() *cobra.Command {
	var (
		file   string
		apiKey string
		noAPI  bool
	)

	cmd := &cobra.Command{
		Use:   "summarize [TEXT...]",
		Short: "Summarize text from arguments, a .txt file, or stdin",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readSummarizeInput(file, args, cmd.InOrStdin())
			if err != nil {
				return err
			}

			p := &profile.Profile{}
			p.FromEnv()
			summarizer := summary.NewSummarizer(summary.Options{
				AmbientAPIKey: p.LLMAPIKey,
				ClientFactory: summary.NewClientFactory(llm.Config{
					Provider: p.LLMProvider,
					Model:    p.LLMModel,
					BaseURL:  p.LLMBaseURL,
					Timeout:  p.LLMTimeout,
				}),
				Timeout: time.Duration(p.LLMTimeout) * time.Second,
			})

			override := summary.WithAPIKey(apiKey)
			if noAPI {
				override = summary.NoRemote()
			}
			return runSummarize(cmd.Context(), cmd.OutOrStdout(), summarizer, text, override)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "read text from a .txt file")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "API key for this call, overrides OPENAI_API_KEY")
	cmd.Flags().BoolVar(&noAPI, "no-api", false, "never call the remote model, use the local heuristic")
	return cmd
}

// readSummarizeInput picks the text source: --file, then arguments, then stdin.
func readSummarizeInput(file string, args []string, stdin io.Reader) (string, error) {
	switch {
	case file != "":
		if !strings.EqualFold(filepath.Ext(file), ".txt") {
			return "", errors.Errorf("unsupported file type %q, only .txt files are accepted", filepath.Ext(file))
		}
		data, err := os.ReadFile(file)
		if err != nil {
			return "", errors.Wrap(err, "failed to read input file")
		}
		if !utf8.Valid(data) {
			return "", errors.Errorf("%s is not valid UTF-8 text", file)
		}
		return string(data), nil
	case len(args) > 0:
		return strings.Join(args, " "), nil
	default:
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", errors.Wrap(err, "failed to read stdin")
		}
		return string(data), nil
	}
}

func runSummarize(ctx context.Context, out io.Writer, summarizer *summary.Summarizer, text string, override summary.CredentialOverride) error {
	if text == "" {
		return errors.New("text required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	resp := summarizer.Summarize(ctx, text, override)
	_, err := fmt.Fprintln(out, resp.Summary)
	return err
}
