package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"travelagent/internal/types"
)

const (
	// DefaultModel matches the model the travel agent was tuned against.
	DefaultModel = "gemini-2.5-flash"

	weatherToolName = "get_weather"

	// maxToolRounds bounds the function-calling loop for one weather lookup.
	maxToolRounds = 4
)

// GeminiProvider implements LLMProvider using Google's Gemini models.
type GeminiProvider struct {
	client  *genai.Client
	suggest *genai.GenerativeModel
	weather *genai.GenerativeModel
	tool    WeatherTool
}

// NewGeminiProvider initializes a new Gemini client.
// apiKey should be provided from environment variables.
func NewGeminiProvider(ctx context.Context, apiKey, modelName string, tool WeatherTool) (*GeminiProvider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("gemini: missing api key")
	}
	if tool == nil {
		return nil, fmt.Errorf("gemini: weather tool is required")
	}
	if modelName == "" {
		modelName = DefaultModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	// Force JSON response for structured parsing.
	suggest := client.GenerativeModel(modelName)
	suggest.ResponseMIMEType = "application/json"
	suggest.SetTemperature(0.4)

	// JSON mode cannot be combined with function calling, so the weather
	// model answers in text and is cleaned before decoding.
	weather := client.GenerativeModel(modelName)
	weather.Tools = []*genai.Tool{weatherToolDecl()}
	weather.ToolConfig = &genai.ToolConfig{
		FunctionCallingConfig: &genai.FunctionCallingConfig{Mode: genai.FunctionCallingAuto},
	}
	weather.SetTemperature(0.2)

	return &GeminiProvider{
		client:  client,
		suggest: suggest,
		weather: weather,
		tool:    tool,
	}, nil
}

// Close cleans up the Gemini client resources.
func (p *GeminiProvider) Close() {
	p.client.Close()
}

func (p *GeminiProvider) SuggestByLocation(ctx context.Context, q LocationQuery) ([]types.Destination, error) {
	resp, err := p.suggest.GenerateContent(ctx, genai.Text(buildLocationPrompt(q)))
	if err != nil {
		return nil, fmt.Errorf("gemini generation error: %w", err)
	}
	text, err := responseText(resp)
	if err != nil {
		return nil, err
	}
	return parseDestinations(text)
}

func (p *GeminiProvider) SuggestByImage(ctx context.Context, q ImageQuery) ([]types.Destination, error) {
	if len(q.Data) == 0 {
		return nil, fmt.Errorf("gemini: empty image")
	}
	format := q.Format
	if format == "" {
		format = "jpeg"
	}

	resp, err := p.suggest.GenerateContent(ctx,
		genai.Text(buildImagePrompt(q.Preferences)),
		genai.ImageData(format, q.Data),
	)
	if err != nil {
		return nil, fmt.Errorf("gemini generation error: %w", err)
	}
	text, err := responseText(resp)
	if err != nil {
		return nil, err
	}
	return parseDestinations(text)
}

// chatSession is the part of *genai.ChatSession the weather loop uses.
type chatSession interface {
	SendMessage(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// Weather runs a chat session in which the model may call get_weather
// before producing the final JSON answer.
func (p *GeminiProvider) Weather(ctx context.Context, destination string) (*types.WeatherResult, error) {
	return runWeatherChat(ctx, p.weather.StartChat(), p.tool, destination)
}

func runWeatherChat(ctx context.Context, cs chatSession, tool WeatherTool, destination string) (*types.WeatherResult, error) {
	resp, err := cs.SendMessage(ctx, genai.Text(buildWeatherPrompt(destination)))
	if err != nil {
		return nil, fmt.Errorf("gemini generation error: %w", err)
	}

	for round := 0; ; round++ {
		calls := functionCalls(resp)
		if len(calls) == 0 {
			break
		}
		if round >= maxToolRounds {
			return nil, fmt.Errorf("gemini: exceeded %d tool rounds", maxToolRounds)
		}

		replies := make([]genai.Part, 0, len(calls))
		for _, fc := range calls {
			fr, err := callWeatherTool(tool, fc)
			if err != nil {
				return nil, err
			}
			replies = append(replies, fr)
		}

		resp, err = cs.SendMessage(ctx, replies...)
		if err != nil {
			return nil, fmt.Errorf("gemini tool response error: %w", err)
		}
	}

	text, err := responseText(resp)
	if err != nil {
		return nil, err
	}
	return parseWeather(text)
}

func weatherToolDecl() *genai.Tool {
	return &genai.Tool{
		FunctionDeclarations: []*genai.FunctionDeclaration{{
			Name:        weatherToolName,
			Description: "Get the current weather for a location.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"location": {
						Type:        genai.TypeString,
						Description: "City or destination name, e.g. Kyoto",
					},
					"unit": {
						Type:   genai.TypeString,
						Format: "enum",
						Enum:   []string{string(types.Celsius), string(types.Fahrenheit)},
					},
				},
				Required: []string{"location"},
			},
		}},
	}
}

// callWeatherTool executes a get_weather call locally and wraps the reading
// in the FunctionResponse the model expects.
func callWeatherTool(tool WeatherTool, fc genai.FunctionCall) (genai.FunctionResponse, error) {
	if fc.Name != weatherToolName {
		return genai.FunctionResponse{}, fmt.Errorf("gemini: unknown tool %q", fc.Name)
	}
	location, _ := fc.Args["location"].(string)
	if strings.TrimSpace(location) == "" {
		return genai.FunctionResponse{}, fmt.Errorf("gemini: get_weather called without location")
	}
	unit := types.Celsius
	if u, ok := fc.Args["unit"].(string); ok && u != "" {
		unit = types.TemperatureUnit(strings.ToLower(u))
	}

	w := tool.Current(location, unit)
	return genai.FunctionResponse{
		Name: weatherToolName,
		Response: map[string]any{
			"location":    w.Location,
			"temperature": w.Temperature,
			"unit":        string(w.Unit),
			"condition":   w.Condition,
			"humidity":    w.Humidity,
			"wind_speed":  w.WindSpeed,
		},
	}, nil
}
