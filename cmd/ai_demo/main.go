package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"travelagent/internal/ai"
	"travelagent/internal/weather"
)

func main() {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		log.Fatal("GEMINI_API_KEY environment variable not set")
	}

	location := "Kyoto"
	if len(os.Args) > 1 {
		location = os.Args[1]
	}

	ctx := context.Background()
	provider, err := ai.NewGeminiProvider(ctx, apiKey, ai.DefaultModel, weather.NewSimulator())
	if err != nil {
		log.Fatalf("Failed to initialize AI provider: %v", err)
	}
	defer provider.Close()

	fmt.Printf("Location: %s\n", location)
	dests, err := provider.SuggestByLocation(ctx, ai.LocationQuery{Location: location, Preferences: []string{"History"}})
	if err != nil {
		log.Fatalf("Error getting suggestions: %v", err)
	}
	for _, d := range dests {
		fmt.Printf("- %s [%s] %s\n", d.Name, d.BudgetLevel, d.Description)
	}
	if len(dests) == 0 {
		return
	}

	res, err := provider.Weather(ctx, dests[0].Name)
	if err != nil {
		log.Fatalf("Error fetching weather: %v", err)
	}
	if res.WeatherData != nil {
		fmt.Printf("Weather in %s: %g%s, %s\n", dests[0].Name, res.WeatherData.Temperature, res.WeatherData.Unit.Symbol(), res.WeatherData.Condition)
	}
	if res.Description != "" {
		fmt.Println(res.Description)
	}
}
