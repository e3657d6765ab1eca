// README: Travel value objects shared by the API, the client and the UI controller.
package types

import "strings"

// MaxPreferences caps how many preference tags a user may select per request.
const MaxPreferences = 3

type BudgetLevel string

const (
	BudgetLow      BudgetLevel = "Budget"
	BudgetModerate BudgetLevel = "Moderate"
	BudgetLuxury   BudgetLevel = "Luxury"
)

// ParseBudgetLevel matches the three known levels case-insensitively.
// Unknown values are returned verbatim with ok == false.
func ParseBudgetLevel(s string) (BudgetLevel, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "budget":
		return BudgetLow, true
	case "moderate":
		return BudgetModerate, true
	case "luxury":
		return BudgetLuxury, true
	}
	return BudgetLevel(strings.TrimSpace(s)), false
}

// Badge returns the colour class a card uses for this level.
func (b BudgetLevel) Badge() string {
	switch b {
	case BudgetLow:
		return "success"
	case BudgetModerate:
		return "warning"
	case BudgetLuxury:
		return "danger"
	default:
		return "secondary"
	}
}

// imageFormats maps the accepted upload MIME types to the subtype Gemini expects.
var imageFormats = map[string]string{
	"image/jpeg": "jpeg",
	"image/png":  "png",
	"image/webp": "webp",
	"image/heic": "heic",
	"image/heif": "heif",
}

// ImageFormat reports whether mime is an accepted landmark photo type and,
// if so, its subtype.
func ImageFormat(mime string) (string, bool) {
	f, ok := imageFormats[mime]
	return f, ok
}

// Destination is a single travel recommendation.
type Destination struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	BudgetLevel BudgetLevel `json:"budget_level"`
	BestTime    string      `json:"best_time"`
	Attractions []string    `json:"attractions"`
}

type TemperatureUnit string

const (
	Celsius    TemperatureUnit = "celsius"
	Fahrenheit TemperatureUnit = "fahrenheit"
)

// Symbol is the short suffix printed after a temperature.
func (u TemperatureUnit) Symbol() string {
	if u == Fahrenheit {
		return "°F"
	}
	return "°C"
}

type WeatherData struct {
	Location    string          `json:"location"`
	Temperature float64         `json:"temperature"`
	Unit        TemperatureUnit `json:"unit"`
	Condition   string          `json:"condition"`
	Humidity    string          `json:"humidity"`
	WindSpeed   string          `json:"wind_speed"`
}

// WeatherResult is the body of POST /api/weather. Both fields may be absent.
type WeatherResult struct {
	WeatherData *WeatherData `json:"weather_data,omitempty"`
	Description string       `json:"description,omitempty"`
}

type LocationRequest struct {
	Location    string   `json:"location"`
	Preferences []string `json:"preferences"`
}

type WeatherRequest struct {
	Destination string `json:"destination"`
}

type SuggestionResponse struct {
	Destinations []Destination `json:"destinations"`
}

// NormalizeDestinations canonicalises budget levels in place and returns ds.
func NormalizeDestinations(ds []Destination) []Destination {
	for i := range ds {
		lvl, _ := ParseBudgetLevel(string(ds[i].BudgetLevel))
		ds[i].BudgetLevel = lvl
		ds[i].Name = strings.TrimSpace(ds[i].Name)
		if ds[i].Attractions == nil {
			ds[i].Attractions = []string{}
		}
	}
	return ds
}

// SplitPreferences parses a comma separated tag list, dropping empty entries.
func SplitPreferences(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return CleanPreferences(strings.Split(raw, ","))
}

// CleanPreferences trims tags and drops empty ones and duplicates, keeping order.
func CleanPreferences(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, p := range in {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
