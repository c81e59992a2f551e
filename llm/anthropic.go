package llm

import (
	"context"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/m4xw311/thinkmode/errors"
)

const defaultAnthropicModel = "claude-3-5-haiku-latest"

// AnthropicBackend is a backend for the Anthropic Messages API.
type AnthropicBackend struct {
	client *anthropic.Client
	model  string
}

// NewAnthropicBackend creates an AnthropicBackend. modelName is used for
// requests that do not name their own model.
func NewAnthropicBackend(cred Credential, modelName, baseURL string) (*AnthropicBackend, error) {
	if cred.Empty() {
		return nil, errors.Configuration("%s environment variable not set", credentialEnv[ProviderAnthropic])
	}

	opts := []option.RequestOption{option.WithAPIKey(cred.Secret())}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	client := anthropic.NewClient(opts...)

	if modelName == "" {
		modelName = defaultAnthropicModel
	}
	return &AnthropicBackend{client: &client, model: modelName}, nil
}

// Complete sends the prompt as a single user message.
func (a *AnthropicBackend) Complete(ctx context.Context, req Request) (string, error) {
	model := req.Model
	if model == "" {
		model = a.model
	}
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1024
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	}
	if req.Temperature != nil {
		params.Temperature = anthropic.Float(*req.Temperature)
	}

	resp, err := a.client.Messages.New(ctx, params)
	if err != nil {
		var apiErr *anthropic.Error
		status := 0
		if errors.As(err, &apiErr) {
			status = apiErr.StatusCode
		}
		return "", classify(ProviderAnthropic, status, err)
	}

	return processAnthropicResponse(resp)
}

// processAnthropicResponse concatenates the text blocks of a response.
func processAnthropicResponse(resp *anthropic.Message) (string, error) {
	var b strings.Builder
	for _, content := range resp.Content {
		if c, ok := content.AsAny().(anthropic.TextBlock); ok {
			b.WriteString(c.Text)
		}
	}
	if b.Len() == 0 {
		return "", malformed(ProviderAnthropic, "response has no text content")
	}
	return b.String(), nil
}
