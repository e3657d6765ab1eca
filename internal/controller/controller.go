// README: Client-side controller; validates input, calls the API and drives the view.
package controller

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/gabriel-vasile/mimetype"

	"travelagent/internal/types"
)

var (
	ErrEmptyLocation    = errors.New("location is required")
	ErrNoImage          = errors.New("no image selected")
	ErrNotImage         = errors.New("file is not an image")
	ErrUnsupportedImage = errors.New("unsupported image type")
	ErrEmptyDestination = errors.New("destination is required")
)

const (
	MsgEmptyLocation      = "Please enter a location"
	MsgNoImage            = "Please select an image"
	MsgNotImage           = "Please select an image file"
	MsgUnsupportedImage   = "Unsupported image type. Please use JPEG, PNG, WebP or HEIC."
	MsgTooManyPreferences = "You can select up to 3 preferences"
	MsgSuggestFailed      = "Failed to get suggestions. Please try again."
	MsgWeatherFailed      = "Failed to load weather information"
)

// API is satisfied by *client.Client.
type API interface {
	SuggestByLocation(ctx context.Context, location string, prefs []string) ([]types.Destination, error)
	SuggestByImage(ctx context.Context, filename string, data []byte, prefs []string) ([]types.Destination, error)
	Weather(ctx context.Context, destination string) (types.WeatherResult, error)
}

type selectedImage struct {
	name string
	mime string
	data []byte
}

type Controller struct {
	api   API
	view  View
	prefs *PreferenceSelector

	mu      sync.Mutex
	results surface
	weather surface
	image   *selectedImage
}

func New(api API, view View) *Controller {
	return &Controller{api: api, view: view, prefs: NewPreferenceSelector()}
}

func (c *Controller) Preferences() *PreferenceSelector {
	return c.prefs
}

// TogglePreference updates the selection and warns when the cap is hit.
func (c *Controller) TogglePreference(tag string, checked bool) error {
	err := c.prefs.Toggle(tag, checked)
	if errors.Is(err, ErrTooManyPreferences) {
		c.mu.Lock()
		c.view.ShowToast(ToastWarning, MsgTooManyPreferences)
		c.mu.Unlock()
	}
	return err
}

func (c *Controller) SubmitLocation(ctx context.Context, location string) ([]types.Destination, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		c.warn(MsgEmptyLocation)
		return nil, ErrEmptyLocation
	}

	gen := c.beginResults()
	dests, err := c.api.SuggestByLocation(ctx, location, c.prefs.Selected())
	return c.finishResults(gen, dests, err)
}

// SelectImage stores data for the next SubmitImage and shows a local preview.
func (c *Controller) SelectImage(name string, data []byte) error {
	mt := mimetype.Detect(data)
	if len(data) == 0 || !strings.HasPrefix(mt.String(), "image/") {
		c.warn(MsgNotImage)
		return fmt.Errorf("%w: %s", ErrNotImage, mt.String())
	}
	if _, ok := types.ImageFormat(mt.String()); !ok {
		c.warn(MsgUnsupportedImage)
		return fmt.Errorf("%w: %s", ErrUnsupportedImage, mt.String())
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.image = &selectedImage{name: name, mime: mt.String(), data: data}
	c.view.ShowImagePreview(name, dataURL(mt.String(), data))
	return nil
}

func (c *Controller) SubmitImage(ctx context.Context) ([]types.Destination, error) {
	c.mu.Lock()
	img := c.image
	c.mu.Unlock()
	if img == nil {
		c.warn(MsgNoImage)
		return nil, ErrNoImage
	}

	gen := c.beginResults()
	dests, err := c.api.SuggestByImage(ctx, img.name, img.data, c.prefs.Selected())
	return c.finishResults(gen, dests, err)
}

// OpenWeather opens the weather modal for destination and fills it in.
// Failures render inside the modal rather than as a toast.
func (c *Controller) OpenWeather(ctx context.Context, destination string) (types.WeatherResult, error) {
	destination = strings.TrimSpace(destination)
	if destination == "" {
		return types.WeatherResult{}, ErrEmptyDestination
	}

	c.mu.Lock()
	gen := c.weather.begin()
	c.view.OpenWeatherModal(destination)
	c.mu.Unlock()

	res, err := c.api.Weather(ctx, destination)

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.weather.current(gen) {
		return types.WeatherResult{}, ErrStale
	}
	if err != nil {
		c.weather.phase = PhaseFailure
		c.view.RenderWeatherError(MsgWeatherFailed)
		return types.WeatherResult{}, err
	}
	c.weather.phase = PhaseSuccess
	c.view.RenderWeather(res)
	return res, nil
}

func (c *Controller) ResultsPhase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.results.phase
}

func (c *Controller) WeatherPhase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.weather.phase
}

func (c *Controller) beginResults() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	gen := c.results.begin()
	c.view.SetLoading(true)
	return gen
}

func (c *Controller) finishResults(gen uint64, dests []types.Destination, err error) ([]types.Destination, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.results.current(gen) {
		return nil, ErrStale
	}
	c.view.SetLoading(false)
	if err != nil {
		c.results.phase = PhaseFailure
		c.view.ShowToast(ToastError, MsgSuggestFailed)
		return nil, err
	}
	c.results.phase = PhaseSuccess
	c.view.RenderDestinations(dests)
	return dests, nil
}

func (c *Controller) warn(msg string) {
	c.mu.Lock()
	c.view.ShowToast(ToastWarning, msg)
	c.mu.Unlock()
}

func dataURL(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}
