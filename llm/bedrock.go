package llm

import (
	"context"
	"encoding/json"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/m4xw311/thinkmode/errors"
)

const defaultBedrockModel = "anthropic.claude-3-haiku-20240307-v1:0"

// BedrockBackend is a backend for Anthropic models on AWS Bedrock.
type BedrockBackend struct {
	client  *bedrockruntime.Client
	modelID string
}

// NewBedrockBackend creates a BedrockBackend.
// It requires AWS credentials to be configured in the environment.
func NewBedrockBackend(ctx context.Context, modelID string) (*BedrockBackend, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load AWS config")
	}

	region := cfg.Region
	if region == "" {
		region = os.Getenv("AWS_DEFAULT_REGION")
	}
	if region == "" {
		region = "us-east-1"
	}
	cfg.Region = region

	var opts []func(*bedrockruntime.Options)
	// Custom endpoint, useful for testing against a local stub.
	if endpoint := os.Getenv("BEDROCK_ENDPOINT_URL"); endpoint != "" {
		opts = append(opts, func(o *bedrockruntime.Options) {
			o.BaseEndpoint = aws.String(endpoint)
		})
	}

	if modelID == "" {
		modelID = defaultBedrockModel
	}
	return &BedrockBackend{
		client:  bedrockruntime.NewFromConfig(cfg, opts...),
		modelID: modelID,
	}, nil
}

// Complete invokes the model with a single user message.
func (b *BedrockBackend) Complete(ctx context.Context, req Request) (string, error) {
	modelID := req.Model
	if modelID == "" {
		modelID = b.modelID
	}

	body, err := createAnthropicRequest(req)
	if err != nil {
		return "", errors.Wrapf(err, "failed to create Anthropic request")
	}

	resp, err := b.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(modelID),
		ContentType: aws.String("application/json"),
		Body:        body,
	})
	if err != nil {
		var respErr *awshttp.ResponseError
		status := 0
		if errors.As(err, &respErr) {
			status = respErr.HTTPStatusCode()
		}
		return "", classify(ProviderBedrock, status, err)
	}

	return processBedrockResponse(resp.Body)
}

// createAnthropicRequest creates the request body for Anthropic models on Bedrock.
func createAnthropicRequest(req Request) ([]byte, error) {
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1024
	}
	request := map[string]interface{}{
		"anthropic_version": "bedrock-2023-05-31",
		"max_tokens":        maxTokens,
		"messages": []map[string]interface{}{
			{
				"role": "user",
				"content": []map[string]interface{}{
					{"type": "text", "text": req.Prompt},
				},
			},
		},
	}
	if req.Temperature != nil {
		request["temperature"] = *req.Temperature
	}
	return json.Marshal(request)
}

// processBedrockResponse extracts the text content of a Bedrock response.
func processBedrockResponse(body []byte) (string, error) {
	var response map[string]interface{}
	if err := json.Unmarshal(body, &response); err != nil {
		return "", errors.Execution(errors.ReasonMalformed, err, "bedrock: failed to unmarshal response")
	}

	if errMsg, ok := response["error"]; ok {
		return "", errors.Execution(errors.ReasonTransport, nil, "bedrock: API error: %v", errMsg)
	}

	contentArray, ok := response["content"].([]interface{})
	if !ok {
		return "", malformed(ProviderBedrock, "unexpected content format")
	}

	var b strings.Builder
	for _, item := range contentArray {
		itemMap, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		if itemMap["type"] != "text" {
			continue
		}
		if text, ok := itemMap["text"].(string); ok {
			b.WriteString(text)
		}
	}
	if b.Len() == 0 {
		return "", malformed(ProviderBedrock, "response has no text content")
	}
	return b.String(), nil
}
