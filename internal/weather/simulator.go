// README: Simulated weather source backing the get_weather tool exposed to Gemini.
package weather

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"travelagent/internal/types"
)

var conditions = []string{
	"Clear Sky", "Partly Cloudy", "Cloudy", "Light Rain",
	"Sunny", "Overcast", "Scattered Clouds", "Mostly Sunny",
	"Foggy", "Windy", "Drizzle", "Fair",
}

// Simulator produces plausible dummy readings. No external calls are made.
type Simulator struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewSimulator() *Simulator {
	return NewSimulatorWithSeed(time.Now().UnixNano())
}

func NewSimulatorWithSeed(seed int64) *Simulator {
	return &Simulator{rnd: rand.New(rand.NewSource(seed))}
}

// Current returns a reading for location. Any unit other than celsius uses
// fahrenheit ranges.
func (s *Simulator) Current(location string, unit types.TemperatureUnit) types.WeatherData {
	s.mu.Lock()
	defer s.mu.Unlock()

	var temp int
	var wind string
	if unit == types.Celsius {
		temp = s.between(15, 30)
		wind = fmt.Sprintf("%d km/h", s.between(5, 25))
	} else {
		unit = types.Fahrenheit
		temp = s.between(59, 86)
		wind = fmt.Sprintf("%d mph", s.between(3, 15))
	}

	return types.WeatherData{
		Location:    location,
		Temperature: float64(temp),
		Unit:        unit,
		Condition:   conditions[s.rnd.Intn(len(conditions))],
		Humidity:    fmt.Sprintf("%d%%", s.between(40, 80)),
		WindSpeed:   wind,
	}
}

// between is inclusive on both ends.
func (s *Simulator) between(lo, hi int) int {
	return lo + s.rnd.Intn(hi-lo+1)
}
