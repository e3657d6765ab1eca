package ai

import (
	"context"

	"travelagent/internal/types"
)

// LLMProvider defines the contract for the travel suggestion model.
// This interface allows swapping Gemini for a fake in tests.
type LLMProvider interface {
	// SuggestByLocation returns destinations near or related to the query location.
	SuggestByLocation(ctx context.Context, q LocationQuery) ([]types.Destination, error)

	// SuggestByImage returns destinations similar to the landmark in the image.
	SuggestByImage(ctx context.Context, q ImageQuery) ([]types.Destination, error)

	// Weather looks up current weather for a destination through the get_weather tool.
	Weather(ctx context.Context, destination string) (*types.WeatherResult, error)
}

// WeatherTool is the local implementation the model calls via function calling.
type WeatherTool interface {
	Current(location string, unit types.TemperatureUnit) types.WeatherData
}
