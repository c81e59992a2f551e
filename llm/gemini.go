package llm

import (
	"context"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/m4xw311/thinkmode/errors"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const defaultGeminiModel = "gemini-1.5-flash"

// GeminiBackend is a backend for the Google Gemini API.
type GeminiBackend struct {
	client *genai.Client
	model  string
}

// NewGeminiBackend creates a GeminiBackend.
func NewGeminiBackend(ctx context.Context, cred Credential, modelName string) (*GeminiBackend, error) {
	if cred.Empty() {
		return nil, errors.Configuration("%s environment variable not set", credentialEnv[ProviderGemini])
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cred.Secret()))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create genai client")
	}

	if modelName == "" {
		modelName = defaultGeminiModel
	}
	return &GeminiBackend{client: client, model: modelName}, nil
}

// Complete generates content for the prompt. A GenerativeModel carries its
// own generation settings, so one is built per request.
func (g *GeminiBackend) Complete(ctx context.Context, req Request) (string, error) {
	name := req.Model
	if name == "" {
		name = g.model
	}
	model := g.client.GenerativeModel(name)
	if req.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(req.MaxTokens))
	}
	if req.Temperature != nil {
		model.SetTemperature(float32(*req.Temperature))
	}

	resp, err := model.GenerateContent(ctx, genai.Text(req.Prompt))
	if err != nil {
		var apiErr *googleapi.Error
		status := 0
		if errors.As(err, &apiErr) {
			status = apiErr.Code
		}
		return "", classify(ProviderGemini, status, err)
	}

	return processGeminiResponse(resp)
}

// Close releases the underlying client.
func (g *GeminiBackend) Close() error {
	return g.client.Close()
}

// processGeminiResponse concatenates the text parts of the first candidate.
func processGeminiResponse(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", malformed(ProviderGemini, "received an empty response")
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	if b.Len() == 0 {
		return "", malformed(ProviderGemini, "response has no text parts")
	}
	return b.String(), nil
}
