package generation

import (
	"context"
	"errors"
	"time"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAIProvider implements Provider using the official openai-go SDK
// (chat completions, vision parts for image attachments).
type OpenAIProvider struct {
	opts []option.RequestOption
}

var _ Provider = (*OpenAIProvider)(nil)

// NewOpenAIProvider creates a new OpenAI-backed provider
func NewOpenAIProvider(apiKey, baseURL string) *OpenAIProvider {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &OpenAIProvider{opts: opts}
}

func (p *OpenAIProvider) Complete(ctx context.Context, req Request) (*Response, error) {
	client := openai.NewClient(p.opts...)

	start := time.Now()
	resp, err := client.Chat.Completions.New(ctx, buildCompletionParams(req), option.WithRequestTimeout(req.Timeout))
	if err != nil {
		return nil, &ProviderError{Err: err}
	}
	if len(resp.Choices) == 0 {
		return nil, &ProviderError{Err: errors.New("empty choices in completion")}
	}

	model := resp.Model
	if model == "" {
		model = req.Model
	}

	return &Response{
		Raw:       resp.Choices[0].Message.Content,
		Model:     model,
		LatencyMs: int(time.Since(start).Milliseconds()),
	}, nil
}

// buildCompletionParams maps a pipeline request onto the chat completion
// call: one user message whose parts are the prompt text followed by any
// image attachments.
func buildCompletionParams(req Request) openai.ChatCompletionNewParams {
	parts := []openai.ChatCompletionContentPartUnionParam{
		openai.TextContentPart(req.Prompt),
	}
	for _, img := range req.Images {
		parts = append(parts, openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
			URL:    img.DataURL,
			Detail: "low",
		}))
	}

	return openai.ChatCompletionNewParams{
		Model:               openai.ChatModel(req.Model),
		Temperature:         openai.Float(req.Temperature),
		MaxCompletionTokens: openai.Int(int64(req.MaxTokens)),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(parts),
		},
	}
}
