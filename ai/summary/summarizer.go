package summary

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/semaphore"

	"github.com/hrygo/alemeno/ai/core/llm"
)

// Summary sources reported in SummarizeResponse.Source.
const (
	SourceEmpty     = "empty"
	SourceHeuristic = "heuristic"
	SourceLLM       = "llm"
	SourceDegraded  = "degraded"
)

const (
	promptPrefix       = "Summarize the following text in 2-3 sentences:\n\n"
	summaryMaxTokens   = 150
	summaryTemperature = 0.2

	defaultTimeout             = 30 * time.Second
	defaultMaxConcurrentRemote = 4
)

// SummarizeResponse is the result of a summarize call.
type SummarizeResponse struct {
	Summary string
	Source  string // "empty" | "heuristic" | "llm" | "degraded"
	Latency time.Duration
}

// ClientFactory builds an LLM client bound to one API key.
type ClientFactory func(apiKey string) (llm.Service, error)

// Recorder receives one observation per summarize call.
type Recorder interface {
	RecordSummarize(source string, latency time.Duration)
}

// Options configures a Summarizer.
type Options struct {
	// AmbientAPIKey is used when the caller does not override the credential.
	AmbientAPIKey string
	ClientFactory ClientFactory
	// Timeout bounds the slot wait plus the remote call. Default 30s.
	Timeout time.Duration
	// MaxConcurrentRemote bounds in-flight remote calls. Default 4.
	MaxConcurrentRemote int64
	Metrics             Recorder
}

// Summarizer chooses between a remote LLM and the local heuristic.
// It is safe for concurrent use.
type Summarizer struct {
	ambientAPIKey string
	newClient     ClientFactory
	timeout       time.Duration
	sem           *semaphore.Weighted
	metrics       Recorder
}

// NewSummarizer creates a Summarizer. A nil ClientFactory means every call
// that would go remote uses the heuristic instead.
func NewSummarizer(opts Options) *Summarizer {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	maxConcurrent := opts.MaxConcurrentRemote
	if maxConcurrent <= 0 {
		maxConcurrent = defaultMaxConcurrentRemote
	}
	return &Summarizer{
		ambientAPIKey: opts.AmbientAPIKey,
		newClient:     opts.ClientFactory,
		timeout:       timeout,
		sem:           semaphore.NewWeighted(maxConcurrent),
		metrics:       opts.Metrics,
	}
}

// NewClientFactory returns a ClientFactory that builds services from base
// with the key swapped in and the summary generation settings applied.
func NewClientFactory(base llm.Config) ClientFactory {
	return func(apiKey string) (llm.Service, error) {
		cfg := base
		cfg.APIKey = apiKey
		cfg.MaxTokens = summaryMaxTokens
		cfg.Temperature = summaryTemperature
		return llm.NewService(&cfg)
	}
}

// Summarize never fails: remote errors degrade to a marked excerpt of text.
func (s *Summarizer) Summarize(ctx context.Context, text string, override CredentialOverride) *SummarizeResponse {
	start := time.Now()
	summary, source := s.summarize(ctx, text, override)
	resp := &SummarizeResponse{
		Summary: summary,
		Source:  source,
		Latency: time.Since(start),
	}
	if s.metrics != nil {
		s.metrics.RecordSummarize(resp.Source, resp.Latency)
	}
	return resp
}

func (s *Summarizer) summarize(ctx context.Context, text string, override CredentialOverride) (string, string) {
	if text == "" {
		return "", SourceEmpty
	}

	apiKey := override.resolve(s.ambientAPIKey)
	if apiKey == "" || s.newClient == nil {
		return HeuristicSummarize(text), SourceHeuristic
	}

	client, err := s.newClient(apiKey)
	if err != nil {
		slog.Warn("summary: failed to build LLM client, using heuristic",
			"credential", override.Kind().String(),
			"error", err,
		)
		return HeuristicSummarize(text), SourceHeuristic
	}

	content, err := s.callRemote(ctx, client, text)
	if err != nil {
		slog.Warn("summary: remote call failed, returning degraded summary",
			"credential", override.Kind().String(),
			"error", err,
		)
		return degradedSummary(text), SourceDegraded
	}
	return content, SourceLLM
}

func (s *Summarizer) callRemote(ctx context.Context, client llm.Service, text string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer s.sem.Release(1)

	content, err := chat(ctx, client, promptPrefix+text)
	if err != nil {
		return "", err
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return "", llm.ErrEmptyResponse
	}
	return content, nil
}

// chat turns a panicking client into an ordinary error so Summarize keeps its
// no-failure contract.
func chat(ctx context.Context, client llm.Service, prompt string) (content string, err error) {
	defer func() {
		if panicVal := recover(); panicVal != nil {
			err = errors.Errorf("llm client panic: %v", panicVal)
		}
	}()

	content, _, err = client.Chat(ctx, []llm.Message{llm.UserMessage(prompt)})
	return content, err
}
