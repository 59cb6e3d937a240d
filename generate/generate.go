// Package generate - haiku text generation with a large language model
package generate

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/alwitt/goutils"
	"github.com/apex/log"
	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const (
	// DefaultSubject subject used when the caller gives none
	DefaultSubject = "quiet mornings"
	// DefaultModel the default text generation model
	DefaultModel = "gpt-4.1-mini"

	promptTemplate = "Write an English haiku (three lines, 5-7-5 syllable pattern) " +
		"about the following subject: %s. " +
		"Return the haiku as three lines, each line on its own line."
)

// ErrMissingAPIKey no API key is configured
var ErrMissingAPIKey = errors.New(
	"OPENAI_API_KEY not set; add it to the config file or export it before running",
)

// Generator generates haikus
type Generator interface {
	/*
		Generate request a haiku about a subject

			@param ctx context.Context - execution context
			@param subject string - the haiku subject. Blank means DefaultSubject.
			@returns the generated haiku text
	*/
	Generate(ctx context.Context, subject string) (string, error)
}

// OpenAIConfig OpenAI client settings
type OpenAIConfig struct {
	APIKey     string
	Model      string
	BaseURL    string        // Optional (tests, compatible gateways)
	MaxRetries int           // Retry attempts for SDK transport
	Timeout    time.Duration // HTTP timeout
	HTTPClient *http.Client  // Optional (tests)
}

// openAIGenerator implements Generator with the OpenAI chat completion API
type openAIGenerator struct {
	goutils.Component
	model  string
	client openai.Client
}

/*
NewOpenAIGenerator define a new OpenAI backed haiku generator

	@param cfg OpenAIConfig - client settings
	@returns generator
*/
func NewOpenAIGenerator(cfg OpenAIConfig) (Generator, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(httpClient),
		option.WithMaxRetries(cfg.MaxRetries),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	logTags := log.Fields{"module": "generate", "component": "openai", "model": cfg.Model}

	return &openAIGenerator{
		Component: goutils.Component{
			LogTags: logTags,
			LogTagModifiers: []goutils.LogMetadataModifier{
				goutils.ModifyLogMetadataByRestRequestParam,
			},
		},
		model:  cfg.Model,
		client: openai.NewClient(opts...),
	}, nil
}

// BuildPrompt render the haiku prompt for a subject
func BuildPrompt(subject string) string {
	return fmt.Sprintf(promptTemplate, subject)
}

// PoemLines split a poem into its trimmed, non-empty lines
//
// A poem with no usable line is returned whole.
func PoemLines(poem string) []string {
	lines := []string{}
	for _, line := range strings.Split(poem, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return []string{poem}
	}
	return lines
}

/*
Generate request a haiku about a subject

	@param ctx context.Context - execution context
	@param subject string - the haiku subject. Blank means DefaultSubject.
	@returns the generated haiku text
*/
func (g *openAIGenerator) Generate(ctx context.Context, subject string) (string, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		subject = DefaultSubject
	}

	resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(g.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(BuildPrompt(subject)),
		},
	})
	if err != nil {
		err = mapOpenAIError(err)
		log.WithFields(g.LogTags).
			WithError(err).
			WithField("subject", subject).
			Error("Haiku generation failed")
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai returned no completion choices")
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("openai returned an empty haiku")
	}

	log.WithFields(g.LogTags).WithField("subject", subject).Debug("Generated haiku")
	return text, nil
}

// mapOpenAIError convert an SDK error into a readable error
func mapOpenAIError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return fmt.Errorf("OpenAI error (status %d): %s", apiErr.StatusCode, apiErr.Message)
		}
		return fmt.Errorf("OpenAI error (status %d)", apiErr.StatusCode)
	}
	return err
}
