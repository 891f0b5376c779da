package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// Turn is the model's reply for one completion round.
type Turn struct {
	Message   string
	ToolCalls []ToolCall
}

// Provider produces the next model turn for a session.
type Provider interface {
	Complete(ctx context.Context, system string, history []Message, tools []ToolDefinition) (Turn, error)
}

// OpenAIProvider implements Provider over the OpenAI chat completions API.
type OpenAIProvider struct {
	Client *openai.Client
	Model  string
}

// ProviderFromEnv builds a provider using environment configuration.
func ProviderFromEnv(provider, model string) (Provider, error) {
	if provider == "" {
		provider = strings.TrimSpace(os.Getenv("LLM_PROVIDER"))
	}
	if provider == "" {
		provider = "openai"
	}
	if provider != "openai" {
		return nil, fmt.Errorf("unsupported provider %q", provider)
	}
	apiKey := strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}
	return NewOpenAIProvider(model, apiKey, "")
}

// NewOpenAIProvider constructs an OpenAI provider with explicit settings.
// An empty baseURL uses the public API endpoint.
func NewOpenAIProvider(model, apiKey, baseURL string) (*OpenAIProvider, error) {
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("model is required")
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("api key is required")
	}
	clientConfig := openai.DefaultConfig(apiKey)
	if strings.TrimSpace(baseURL) != "" {
		clientConfig.BaseURL = strings.TrimRight(baseURL, "/")
	}
	return &OpenAIProvider{
		Client: openai.NewClientWithConfig(clientConfig),
		Model:  model,
	}, nil
}

// Complete sends the system context, history, and tools and maps the first
// choice back into a Turn.
func (p *OpenAIProvider) Complete(ctx context.Context, system string, history []Message, tools []ToolDefinition) (Turn, error) {
	messages, err := buildChatMessages(system, history)
	if err != nil {
		return Turn{}, err
	}
	request := openai.ChatCompletionRequest{
		Model:    p.Model,
		Messages: messages,
	}
	if len(tools) > 0 {
		request.Tools = buildChatTools(tools)
	}

	response, err := p.Client.CreateChatCompletion(ctx, request)
	if err != nil {
		return Turn{}, fmt.Errorf("create chat completion: %w", err)
	}
	if len(response.Choices) == 0 {
		return Turn{}, fmt.Errorf("chat completion returned no choices")
	}
	return turnFromMessage(response.Choices[0].Message)
}

func buildChatMessages(system string, history []Message) ([]openai.ChatCompletionMessage, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(history)+1)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: system,
	})
	for _, item := range history {
		switch item.Role {
		case RoleUser:
			messages = append(messages, openai.ChatCompletionMessage{
				Role:    openai.ChatMessageRoleUser,
				Content: item.Content,
			})
		case RoleAssistant:
			message := openai.ChatCompletionMessage{
				Role:    openai.ChatMessageRoleAssistant,
				Content: item.Content,
			}
			for _, call := range item.ToolCalls {
				arguments, err := json.Marshal(call.Args)
				if err != nil {
					return nil, fmt.Errorf("marshal tool arguments: %w", err)
				}
				message.ToolCalls = append(message.ToolCalls, openai.ToolCall{
					ID:   call.ID,
					Type: openai.ToolTypeFunction,
					Function: openai.FunctionCall{
						Name:      call.Name,
						Arguments: string(arguments),
					},
				})
			}
			messages = append(messages, message)
		case RoleTool:
			messages = append(messages, openai.ChatCompletionMessage{
				Role:       openai.ChatMessageRoleTool,
				ToolCallID: item.ToolCallID,
				Content:    item.Content,
			})
		default:
			return nil, fmt.Errorf("unsupported history role %q", item.Role)
		}
	}
	return messages, nil
}

func buildChatTools(tools []ToolDefinition) []openai.Tool {
	built := make([]openai.Tool, 0, len(tools))
	for _, tool := range tools {
		built = append(built, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        tool.Name,
				Description: tool.Description,
				Parameters:  tool.Parameters,
			},
		})
	}
	return built
}

func turnFromMessage(message openai.ChatCompletionMessage) (Turn, error) {
	turn := Turn{Message: message.Content}
	for _, call := range message.ToolCalls {
		args, err := ParseToolCallArgs(call.Function.Arguments)
		if err != nil {
			return Turn{}, fmt.Errorf("tool %s: %w", call.Function.Name, err)
		}
		turn.ToolCalls = append(turn.ToolCalls, ToolCall{
			ID:   call.ID,
			Name: call.Function.Name,
			Args: args,
		})
	}
	return turn, nil
}
