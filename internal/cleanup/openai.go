package cleanup

import (
	"context"
	"fmt"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// OpenAIModel drives any OpenAI-compatible completion endpoint, including
// local model servers (GPT4All, llama.cpp) that speak the same protocol.
type OpenAIModel struct {
	client openai.Client
	model  string
}

// NewOpenAIModel creates a model client for the endpoint at baseURL.
func NewOpenAIModel(baseURL, apiKey, model string) (*OpenAIModel, error) {
	if model == "" {
		return nil, fmt.Errorf("%w: no model name configured", ErrNotInitialized)
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &OpenAIModel{
		client: openai.NewClient(opts...),
		model:  model,
	}, nil
}

// Generate runs one chat completion and returns the text of the first choice.
func (m *OpenAIModel) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(m.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	}
	if opts.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(opts.MaxTokens))
	}
	if opts.Temperature > 0 {
		params.Temperature = openai.Float(opts.Temperature)
	}
	if opts.TopP > 0 {
		params.TopP = openai.Float(opts.TopP)
	}

	// top_k is not part of the OpenAI schema but local servers honor it.
	var callOpts []option.RequestOption
	if opts.TopK > 0 {
		callOpts = append(callOpts, option.WithJSONSet("top_k", opts.TopK))
	}

	resp, err := m.client.Chat.Completions.New(ctx, params, callOpts...)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in completion response")
	}
	return resp.Choices[0].Message.Content, nil
}
