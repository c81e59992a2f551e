package llm

import (
	"context"

	"github.com/m4xw311/thinkmode/errors"
	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
)

const (
	defaultOpenAIModel   = "gpt-4o-mini"
	defaultDeepSeekModel = "deepseek-chat"
	deepSeekBaseURL      = "https://api.deepseek.com/v1"
)

// OpenAIBackend is a backend for the OpenAI Chat Completion API and for
// OpenAI-compatible providers such as DeepSeek.
type OpenAIBackend struct {
	client   *openai.Client
	model    string
	provider string
}

// NewOpenAIBackend creates an OpenAIBackend. A non-empty baseURL points the
// client at a compatible endpoint; otherwise OPENAI_BASE_URL is honoured.
func NewOpenAIBackend(cred Credential, modelName, baseURL string) (*OpenAIBackend, error) {
	if cred.Empty() {
		return nil, errors.Configuration("%s environment variable not set", credentialEnv[ProviderOpenAI])
	}
	if modelName == "" {
		modelName = defaultOpenAIModel
	}
	return newOpenAICompatible(ProviderOpenAI, cred, modelName, baseURL), nil
}

// NewDeepSeekBackend creates an OpenAIBackend pointed at the DeepSeek API.
func NewDeepSeekBackend(cred Credential, modelName, baseURL string) (*OpenAIBackend, error) {
	if cred.Empty() {
		return nil, errors.Configuration("%s environment variable not set", credentialEnv[ProviderDeepSeek])
	}
	if modelName == "" {
		modelName = defaultDeepSeekModel
	}
	if baseURL == "" {
		baseURL = deepSeekBaseURL
	}
	return newOpenAICompatible(ProviderDeepSeek, cred, modelName, baseURL), nil
}

func newOpenAICompatible(provider string, cred Credential, modelName, baseURL string) *OpenAIBackend {
	options := []option.RequestOption{
		option.WithAPIKey(cred.Secret()),
	}
	if baseURL != "" {
		options = append(options, option.WithBaseURL(baseURL))
	}

	// The v2 SDK uses functional options for configuration.
	c := openai.NewClient(options...)
	return &OpenAIBackend{client: &c, model: modelName, provider: provider}
}

// Complete sends the prompt as a single user message.
func (o *OpenAIBackend) Complete(ctx context.Context, req Request) (string, error) {
	model := req.Model
	if model == "" {
		model = o.model
	}

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(model),
		Messages: []openai.ChatCompletionMessageParamUnion{openai.UserMessage(req.Prompt)},
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(req.MaxTokens)
	}
	if req.Temperature != nil {
		params.Temperature = openai.Float(*req.Temperature)
	}

	resp, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		var apiErr *openai.Error
		status := 0
		if errors.As(err, &apiErr) {
			status = apiErr.StatusCode
		}
		return "", classify(o.provider, status, err)
	}

	return processOpenaiResponse(o.provider, resp)
}

// processOpenaiResponse returns the content of the first choice.
func processOpenaiResponse(provider string, resp *openai.ChatCompletion) (string, error) {
	if len(resp.Choices) == 0 {
		return "", malformed(provider, "response has no choices")
	}
	content := resp.Choices[0].Message.Content
	if content == "" {
		return "", malformed(provider, "response has empty content")
	}
	return content, nil
}
