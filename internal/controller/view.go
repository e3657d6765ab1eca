package controller

import "travelagent/internal/types"

type ToastKind string

const (
	ToastInfo    ToastKind = "info"
	ToastSuccess ToastKind = "success"
	ToastWarning ToastKind = "warning"
	ToastError   ToastKind = "error"
)

// View renders controller output. Calls are made while the controller holds
// its lock, so implementations must not call back into the controller.
type View interface {
	ShowToast(kind ToastKind, msg string)
	// SetLoading(true) hides prior results and shows the spinner.
	SetLoading(loading bool)
	RenderDestinations(dests []types.Destination)
	ShowImagePreview(name, dataURL string)
	// OpenWeatherModal opens the modal in its loading state.
	OpenWeatherModal(destination string)
	RenderWeather(res types.WeatherResult)
	RenderWeatherError(msg string)
}
