package controller

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelagent/internal/client"
	"travelagent/internal/types"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

type toast struct {
	kind ToastKind
	msg  string
}

type recordingView struct {
	mu            sync.Mutex
	toasts        []toast
	loading       []bool
	renders       [][]types.Destination
	previews      []string
	modals        []string
	weather       []types.WeatherResult
	weatherErrors []string
}

func (v *recordingView) ShowToast(kind ToastKind, msg string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.toasts = append(v.toasts, toast{kind, msg})
}

func (v *recordingView) SetLoading(loading bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.loading = append(v.loading, loading)
}

func (v *recordingView) RenderDestinations(dests []types.Destination) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.renders = append(v.renders, dests)
}

func (v *recordingView) ShowImagePreview(_ string, dataURL string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.previews = append(v.previews, dataURL)
}

func (v *recordingView) OpenWeatherModal(destination string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.modals = append(v.modals, destination)
}

func (v *recordingView) RenderWeather(res types.WeatherResult) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.weather = append(v.weather, res)
}

func (v *recordingView) RenderWeatherError(msg string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.weatherErrors = append(v.weatherErrors, msg)
}

type fakeAPI struct {
	mu         sync.Mutex
	calls      int
	gotPrefs   []string
	gotImage   string
	dests      []types.Destination
	weather    types.WeatherResult
	err        error
	gates      map[string]chan struct{}
	started    chan string
	byLocation map[string][]types.Destination
}

func (f *fakeAPI) record(prefs []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.gotPrefs = prefs
}

func (f *fakeAPI) SuggestByLocation(ctx context.Context, location string, prefs []string) ([]types.Destination, error) {
	f.record(prefs)
	if f.started != nil {
		f.started <- location
	}
	if gate, ok := f.gates[location]; ok {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if d, ok := f.byLocation[location]; ok {
		return d, nil
	}
	return f.dests, f.err
}

func (f *fakeAPI) SuggestByImage(_ context.Context, filename string, _ []byte, prefs []string) ([]types.Destination, error) {
	f.record(prefs)
	f.mu.Lock()
	f.gotImage = filename
	f.mu.Unlock()
	return f.dests, f.err
}

func (f *fakeAPI) Weather(ctx context.Context, destination string) (types.WeatherResult, error) {
	f.record(nil)
	if f.started != nil {
		f.started <- destination
	}
	if gate, ok := f.gates[destination]; ok {
		<-gate
	}
	return f.weather, f.err
}

func TestPreferenceCap(t *testing.T) {
	view := &recordingView{}
	c := New(&fakeAPI{}, view)

	for _, tag := range []string{"Beach", "History", "Food"} {
		require.NoError(t, c.TogglePreference(tag, true))
	}
	err := c.TogglePreference("Nature", true)
	assert.ErrorIs(t, err, ErrTooManyPreferences)
	assert.Equal(t, []string{"Beach", "History", "Food"}, c.Preferences().Selected())
	require.Len(t, view.toasts, 1)
	assert.Equal(t, toast{ToastWarning, MsgTooManyPreferences}, view.toasts[0])

	require.NoError(t, c.TogglePreference("History", false))
	require.NoError(t, c.TogglePreference("Nature", true))
	assert.Equal(t, []string{"Beach", "Food", "Nature"}, c.Preferences().Selected())
}

func TestPreferenceSelectorNeverExceedsCap(t *testing.T) {
	p := NewPreferenceSelector()
	tags := []string{"a", "b", "c", "d", "e"}
	for i := 0; i < 200; i++ {
		_ = p.Toggle(tags[i%len(tags)], i%3 != 0)
		assert.LessOrEqual(t, len(p.Selected()), types.MaxPreferences)
	}
}

func TestPreferenceSelectorIgnoresBlankAndRepeats(t *testing.T) {
	p := NewPreferenceSelector()
	require.NoError(t, p.Toggle("  ", true))
	require.NoError(t, p.Toggle(" Food ", true))
	require.NoError(t, p.Toggle("Food", true))
	assert.Equal(t, []string{"Food"}, p.Selected())

	p.Clear()
	assert.Empty(t, p.Selected())
	assert.NotNil(t, p.Selected())
}

func TestSubmitLocationEmptyMakesNoCall(t *testing.T) {
	api := &fakeAPI{}
	view := &recordingView{}
	c := New(api, view)

	for _, loc := range []string{"", "   ", "\t\n"} {
		_, err := c.SubmitLocation(context.Background(), loc)
		assert.ErrorIs(t, err, ErrEmptyLocation)
	}
	assert.Equal(t, 0, api.calls)
	assert.Empty(t, view.loading)
	require.Len(t, view.toasts, 3)
	assert.Equal(t, toast{ToastWarning, MsgEmptyLocation}, view.toasts[0])
	assert.Equal(t, PhaseIdle, c.ResultsPhase())
}

func TestSubmitLocationRendersCardsInOrder(t *testing.T) {
	dests := []types.Destination{{Name: "Lisbon"}, {Name: "Porto"}, {Name: "Faro"}}
	api := &fakeAPI{dests: dests}
	view := &recordingView{}
	c := New(api, view)
	require.NoError(t, c.TogglePreference("Food", true))

	got, err := c.SubmitLocation(context.Background(), "  Portugal ")
	require.NoError(t, err)
	assert.Equal(t, dests, got)
	assert.Equal(t, []bool{true, false}, view.loading)
	require.Len(t, view.renders, 1)
	assert.Equal(t, dests, view.renders[0])
	assert.Equal(t, []string{"Food"}, api.gotPrefs)
	assert.Equal(t, PhaseSuccess, c.ResultsPhase())
}

func TestSubmitLocationFailureShowsToast(t *testing.T) {
	api := &fakeAPI{err: errors.New("502")}
	view := &recordingView{}
	c := New(api, view)

	_, err := c.SubmitLocation(context.Background(), "Kyoto")
	require.Error(t, err)
	assert.Equal(t, 1, api.calls)
	assert.Equal(t, []bool{true, false}, view.loading)
	assert.Empty(t, view.renders)
	assert.Equal(t, []toast{{ToastError, MsgSuggestFailed}}, view.toasts)
	assert.Equal(t, PhaseFailure, c.ResultsPhase())
}

func TestSelectImage(t *testing.T) {
	view := &recordingView{}
	c := New(&fakeAPI{}, view)

	err := c.SelectImage("notes.txt", []byte("hello world"))
	assert.ErrorIs(t, err, ErrNotImage)
	assert.Equal(t, []toast{{ToastWarning, MsgNotImage}}, view.toasts)
	assert.Empty(t, view.previews)

	require.NoError(t, c.SelectImage("tower.png", pngHeader))
	require.Len(t, view.previews, 1)
	assert.True(t, strings.HasPrefix(view.previews[0], "data:image/png;base64,"))
}

func TestSubmitImageWithoutFileMakesNoCall(t *testing.T) {
	api := &fakeAPI{}
	view := &recordingView{}
	c := New(api, view)

	_, err := c.SubmitImage(context.Background())
	assert.ErrorIs(t, err, ErrNoImage)
	assert.Equal(t, 0, api.calls)
	assert.Equal(t, []toast{{ToastWarning, MsgNoImage}}, view.toasts)
}

func TestSubmitImage(t *testing.T) {
	dests := []types.Destination{{Name: "Paris"}}
	api := &fakeAPI{dests: dests}
	view := &recordingView{}
	c := New(api, view)
	require.NoError(t, c.TogglePreference("Culture", true))
	require.NoError(t, c.SelectImage("tower.png", pngHeader))

	got, err := c.SubmitImage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, dests, got)
	assert.Equal(t, "tower.png", api.gotImage)
	assert.Equal(t, []string{"Culture"}, api.gotPrefs)
	assert.Equal(t, [][]types.Destination{dests}, view.renders)
}

func TestWeatherSuccess(t *testing.T) {
	res := types.WeatherResult{
		WeatherData: &types.WeatherData{Location: "Kyoto", Temperature: 18, Unit: types.Celsius, Condition: "Cloudy", Humidity: "60%", WindSpeed: "8 km/h"},
		Description: "Mild.",
	}
	view := &recordingView{}
	c := New(&fakeAPI{weather: res}, view)

	got, err := c.OpenWeather(context.Background(), "Kyoto")
	require.NoError(t, err)
	assert.Equal(t, res, got)
	assert.Equal(t, []string{"Kyoto"}, view.modals)
	assert.Equal(t, []types.WeatherResult{res}, view.weather)
	assert.Equal(t, PhaseSuccess, c.WeatherPhase())
}

func TestWeatherFailureIsInlineNotToast(t *testing.T) {
	view := &recordingView{}
	c := New(&fakeAPI{err: errors.New("timeout")}, view)

	_, err := c.OpenWeather(context.Background(), "Kyoto")
	require.Error(t, err)
	assert.Equal(t, []string{"Kyoto"}, view.modals)
	assert.Equal(t, []string{MsgWeatherFailed}, view.weatherErrors)
	assert.Empty(t, view.toasts)
	assert.Equal(t, PhaseFailure, c.WeatherPhase())
}

func TestWeatherEmptyDestination(t *testing.T) {
	api := &fakeAPI{}
	view := &recordingView{}
	c := New(api, view)

	_, err := c.OpenWeather(context.Background(), " ")
	assert.ErrorIs(t, err, ErrEmptyDestination)
	assert.Equal(t, 0, api.calls)
	assert.Empty(t, view.modals)
}

func TestStaleResultsAreDiscarded(t *testing.T) {
	slow := []types.Destination{{Name: "Paris"}}
	fast := []types.Destination{{Name: "Kyoto"}}
	api := &fakeAPI{
		gates:      map[string]chan struct{}{"France": make(chan struct{})},
		started:    make(chan string, 2),
		byLocation: map[string][]types.Destination{"France": slow, "Japan": fast},
	}
	view := &recordingView{}
	c := New(api, view)

	type result struct {
		dests []types.Destination
		err   error
	}
	done := make(chan result, 1)
	go func() {
		d, err := c.SubmitLocation(context.Background(), "France")
		done <- result{d, err}
	}()
	require.Equal(t, "France", <-api.started)

	got, err := c.SubmitLocation(context.Background(), "Japan")
	require.NoError(t, err)
	assert.Equal(t, fast, got)
	<-api.started

	close(api.gates["France"])
	r := <-done
	assert.ErrorIs(t, r.err, ErrStale)
	assert.Nil(t, r.dests)

	assert.Equal(t, [][]types.Destination{fast}, view.renders)
	assert.Equal(t, PhaseSuccess, c.ResultsPhase())
}

func TestStaleWeatherIsDiscarded(t *testing.T) {
	api := &fakeAPI{
		gates:   map[string]chan struct{}{"Oslo": make(chan struct{})},
		started: make(chan string, 2),
		weather: types.WeatherResult{Description: "ok"},
	}
	view := &recordingView{}
	c := New(api, view)

	done := make(chan error, 1)
	go func() {
		_, err := c.OpenWeather(context.Background(), "Oslo")
		done <- err
	}()
	require.Equal(t, "Oslo", <-api.started)

	_, err := c.OpenWeather(context.Background(), "Rome")
	require.NoError(t, err)
	<-api.started

	close(api.gates["Oslo"])
	assert.ErrorIs(t, <-done, ErrStale)
	assert.Len(t, view.weather, 1)
	assert.Equal(t, []string{"Oslo", "Rome"}, view.modals)
}

// TestKyotoAgainstServer drives the controller through the real HTTP client.
func TestKyotoAgainstServer(t *testing.T) {
	var (
		mu     sync.Mutex
		bodies []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		mu.Lock()
		bodies = append(bodies, r.Method+" "+r.URL.Path+" "+string(b))
		mu.Unlock()
		_ = json.NewEncoder(w).Encode(map[string]any{"destinations": []map[string]any{{
			"name":         "Kyoto",
			"description":  "...",
			"budget_level": "Moderate",
			"best_time":    "Spring",
			"attractions":  []string{"Fushimi Inari"},
		}}})
	}))
	defer srv.Close()

	view := &recordingView{}
	c := New(client.New(srv.URL), view)
	require.NoError(t, c.TogglePreference("History", true))

	_, err := c.SubmitLocation(context.Background(), "Kyoto")
	require.NoError(t, err)

	assert.Equal(t, []string{`POST /api/suggest-by-location {"location":"Kyoto","preferences":["History"]}`}, bodies)
	require.Len(t, view.renders, 1)
	require.Len(t, view.renders[0], 1)
	card := view.renders[0][0]
	assert.Equal(t, "Kyoto", card.Name)
	assert.Equal(t, "warning", card.BudgetLevel.Badge())
}

func TestSelectImageRejectsTypesTheServerRefuses(t *testing.T) {
	api := &fakeAPI{}
	view := &recordingView{}
	c := New(api, view)

	gif := []byte("GIF89a\x01\x00\x01\x00\x80\x00\x00\xff\xff\xff\x00\x00\x00!\xf9\x04\x01\x00\x00\x00\x00,\x00\x00\x00\x00\x01\x00\x01\x00\x00\x02\x02D\x01\x00;")
	err := c.SelectImage("anim.gif", gif)
	assert.ErrorIs(t, err, ErrUnsupportedImage)
	assert.Equal(t, []toast{{ToastWarning, MsgUnsupportedImage}}, view.toasts)
	assert.Empty(t, view.previews)

	_, err = c.SubmitImage(context.Background())
	assert.ErrorIs(t, err, ErrNoImage)
	assert.Equal(t, 0, api.calls)
}
