package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"

	"travelagent/internal/types"
)

const destinationFormat = `For each destination, provide:
1. Name of the destination
2. %s
3. Best time to visit
4. Main attractions (list 3)
5. Estimated budget level (Budget/Moderate/Luxury)

Format your response as a JSON array with this structure:
[
  {
    "name": "Destination Name",
    "description": "Brief description",
    "best_time": "Best time to visit",
    "attractions": ["Attraction 1", "Attraction 2", "Attraction 3"],
    "budget_level": "Budget/Moderate/Luxury"
  }
]

Only return the JSON array, no additional text.`

func preferencesLine(prefs []string) string {
	if len(prefs) == 0 {
		return ""
	}
	return "\nUser preferences: " + strings.Join(prefs, ", ")
}

func buildLocationPrompt(q LocationQuery) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a travel expert. Generate 5 travel destination suggestions near or related to %s.", q.Location)
	if q.Address != "" && !strings.EqualFold(q.Address, q.Location) {
		fmt.Fprintf(&b, "\nThe location resolves to: %s", q.Address)
	}
	b.WriteString(preferencesLine(q.Preferences))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, destinationFormat, "Brief description (2-3 sentences)")
	return b.String()
}

func buildImagePrompt(prefs []string) string {
	var b strings.Builder
	b.WriteString("Analyze this landmark or travel image and suggest 5 similar travel destinations with comparable features, architecture, or atmosphere.")
	b.WriteString(preferencesLine(prefs))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, destinationFormat, "Brief description explaining similarity to the image (2-3 sentences)")
	return b.String()
}

func buildWeatherPrompt(destination string) string {
	return fmt.Sprintf(`Get the current weather for %s and return the information in the following JSON structure. Use the %s function to fetch the data, then format your response as valid JSON.

Your response must be ONLY a JSON object with this exact structure (no additional text, no markdown):

{
  "weather_data": {
    "location": "City Name",
    "temperature": 25,
    "unit": "celsius",
    "condition": "Clear Sky",
    "humidity": "65%%",
    "wind_speed": "15 km/h"
  },
  "description": "A natural language description of the weather, including advice for travelers."
}

Make sure the temperature is a number (not a string), and provide helpful travel advice in the description based on the weather conditions.`, destination, weatherToolName)
}

// cleanJSONString removes markdown code blocks if present (e.g. ```json ... ```)
func cleanJSONString(input string) string {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(input, "```json")
	input = strings.TrimPrefix(input, "```")
	input = strings.TrimSuffix(input, "```")
	return strings.TrimSpace(input)
}

// parseDestinations accepts either the bare array the prompt asks for or a
// {"destinations": [...]} object, which the model sometimes wraps it in.
func parseDestinations(raw string) ([]types.Destination, error) {
	clean := cleanJSONString(raw)

	var list []types.Destination
	if err := json.Unmarshal([]byte(clean), &list); err == nil {
		return types.NormalizeDestinations(list), nil
	}

	var wrapped types.SuggestionResponse
	if err := json.Unmarshal([]byte(clean), &wrapped); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w. Raw: %s", err, clean)
	}
	if wrapped.Destinations == nil {
		return nil, fmt.Errorf("response has no destinations. Raw: %s", clean)
	}
	return types.NormalizeDestinations(wrapped.Destinations), nil
}

func parseWeather(raw string) (*types.WeatherResult, error) {
	clean := cleanJSONString(raw)
	var res types.WeatherResult
	if err := json.Unmarshal([]byte(clean), &res); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w. Raw: %s", err, clean)
	}
	if res.WeatherData != nil && res.WeatherData.Unit == "" {
		res.WeatherData.Unit = types.Celsius
	}
	return &res, nil
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no response candidates from Gemini")
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	if strings.TrimSpace(sb.String()) == "" {
		return "", fmt.Errorf("gemini returned empty text parts")
	}
	return sb.String(), nil
}

// functionCalls extracts the tool invocations from the first candidate.
func functionCalls(resp *genai.GenerateContentResponse) []genai.FunctionCall {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil
	}
	var calls []genai.FunctionCall
	for _, part := range resp.Candidates[0].Content.Parts {
		switch fc := part.(type) {
		case genai.FunctionCall:
			calls = append(calls, fc)
		case *genai.FunctionCall:
			if fc != nil {
				calls = append(calls, *fc)
			}
		}
	}
	return calls
}
