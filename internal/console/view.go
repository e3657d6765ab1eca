// README: Terminal rendering of the controller's view.
package console

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"travelagent/internal/controller"
	"travelagent/internal/types"
)

const ansiReset = "\x1b[0m"

var badgeColors = map[string]string{
	"success":   "\x1b[32m",
	"warning":   "\x1b[33m",
	"danger":    "\x1b[31m",
	"secondary": "\x1b[90m",
}

var toastColors = map[controller.ToastKind]string{
	controller.ToastSuccess: "\x1b[32m",
	controller.ToastWarning: "\x1b[33m",
	controller.ToastError:   "\x1b[31m",
	controller.ToastInfo:    "\x1b[36m",
}

// View writes controller output to w. Colour escapes are emitted only when
// color is true.
type View struct {
	mu    sync.Mutex
	w     io.Writer
	color bool
}

func NewView(w io.Writer, color bool) *View {
	return &View{w: w, color: color}
}

func (v *View) ShowToast(kind controller.ToastKind, msg string) {
	v.printf("%s %s\n", v.paint(toastColors[kind], "["+string(kind)+"]"), msg)
}

func (v *View) SetLoading(loading bool) {
	if loading {
		v.printf("... finding destinations\n")
	}
}

func (v *View) RenderDestinations(dests []types.Destination) {
	if len(dests) == 0 {
		v.printf("No destinations found.\n")
		return
	}
	var b strings.Builder
	for i, d := range dests {
		level := d.BudgetLevel
		if level == "" {
			level = "Unknown"
		}
		fmt.Fprintf(&b, "\n%d. %s %s\n", i+1, d.Name, v.paint(badgeColors[d.BudgetLevel.Badge()], "("+string(level)+")"))
		if d.Description != "" {
			fmt.Fprintf(&b, "   %s\n", d.Description)
		}
		if d.BestTime != "" {
			fmt.Fprintf(&b, "   Best time: %s\n", d.BestTime)
		}
		if len(d.Attractions) > 0 {
			fmt.Fprintf(&b, "   Attractions: %s\n", strings.Join(d.Attractions, ", "))
		}
	}
	v.printf("%s", b.String())
}

// ShowImagePreview prints a summary; the data URL itself is not useful in a terminal.
func (v *View) ShowImagePreview(name, dataURL string) {
	mime := strings.TrimPrefix(dataURL, "data:")
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = mime[:i]
	}
	v.printf("Selected image %s (%s, %d bytes as data URL)\n", name, mime, len(dataURL))
}

func (v *View) OpenWeatherModal(destination string) {
	v.printf("\nWeather in %s\n... loading\n", destination)
}

func (v *View) RenderWeather(res types.WeatherResult) {
	var b strings.Builder
	if wd := res.WeatherData; wd != nil {
		fmt.Fprintf(&b, "  Temperature: %g%s\n", wd.Temperature, wd.Unit.Symbol())
		fmt.Fprintf(&b, "  Condition:   %s\n", wd.Condition)
		fmt.Fprintf(&b, "  Humidity:    %s\n", wd.Humidity)
		fmt.Fprintf(&b, "  Wind speed:  %s\n", wd.WindSpeed)
	}
	if res.Description != "" {
		fmt.Fprintf(&b, "  %s\n", res.Description)
	}
	v.printf("%s", b.String())
}

func (v *View) RenderWeatherError(msg string) {
	v.printf("  %s\n", v.paint(badgeColors["danger"], msg))
}

func (v *View) paint(code, s string) string {
	if !v.color || code == "" {
		return s
	}
	return code + s + ansiReset
}

func (v *View) printf(format string, args ...any) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fmt.Fprintf(v.w, format, args...)
}
