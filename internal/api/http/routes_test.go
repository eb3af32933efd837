package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-dashboard/internal/dashboard"
	"github.com/i474232898/weather-dashboard/internal/location"
	"github.com/i474232898/weather-dashboard/internal/store"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

type stubProvider struct {
	daily  []weather.DailyRecord
	hourly []weather.HourlyRecord
	err    error
	coord  weather.Coordinate
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) Daily(_ context.Context, coord weather.Coordinate) ([]weather.DailyRecord, error) {
	p.coord = coord
	return p.daily, p.err
}

func (p *stubProvider) Hourly(_ context.Context, coord weather.Coordinate) ([]weather.HourlyRecord, error) {
	p.coord = coord
	return p.hourly, p.err
}

func week() weather.DailyForecast {
	out := make(weather.DailyForecast, weather.DailyDays)
	for i := range out {
		out[i] = weather.DailyRecord{
			Status:         weather.StatusNormal,
			Date:           fmt.Sprintf("2024-05-%02dT06:00:00-05:00", i+1),
			TemperatureMin: 50,
			TemperatureMax: 70,
			WeatherCode:    weather.CodeFor(1000),
		}
	}
	return out
}

func hours() weather.HourlyForecast {
	return weather.HourlyForecast{
		{Status: weather.StatusNormal, Hour: "2024-05-01T00:00:00Z", Temperature: 60},
		{Status: weather.StatusNormal, Hour: "2024-05-01T01:00:00Z", Temperature: 59},
	}
}

func decodeJSON(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// TestForecastCoordinateValidation verifies that the forecast endpoints reject
// missing or out-of-range coordinates with an error signal.
func TestForecastCoordinateValidation(t *testing.T) {
	app := fiber.New()
	p := &stubProvider{daily: week()}
	RegisterRoutes(app, weather.NewService(p))

	for _, query := range []string{"", "?lat=39.78", "?lat=abc&lng=1", "?lat=91&lng=0", "?lat=0&lng=181"} {
		for _, path := range []string{"/weather/daily", "/weather/hourly"} {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, path+query, nil))
			require.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode, path+query)

			var body map[string]any
			decodeJSON(t, resp, &body)
			assert.Equal(t, weather.StatusError, body["status"])
		}
	}
}

func TestDailyEndpoint(t *testing.T) {
	app := fiber.New()
	p := &stubProvider{daily: append(week(), weather.DailyRecord{Date: "2024-05-08"})}
	RegisterRoutes(app, weather.NewService(p))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/weather/daily?lat=39.78&lng=-89.65", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var forecast weather.DailyForecast
	decodeJSON(t, resp, &forecast)
	assert.Equal(t, week(), forecast)
	assert.Equal(t, weather.Coordinate{Lat: 39.78, Lng: -89.65}, p.coord)
}

func TestHourlyEndpoint(t *testing.T) {
	app := fiber.New()
	RegisterRoutes(app, weather.NewService(&stubProvider{hourly: hours()}))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/weather/hourly?lat=1&lng=2", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var forecast weather.HourlyForecast
	decodeJSON(t, resp, &forecast)
	assert.Equal(t, hours(), forecast)
}

func TestUpstreamFailureIsErrorSignal(t *testing.T) {
	app := fiber.New()
	RegisterRoutes(app, weather.NewService(&stubProvider{err: errors.New("quota exceeded")}))

	for _, path := range []string{"/weather/daily?lat=1&lng=2", "/weather/hourly?lat=1&lng=2"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadGateway, resp.StatusCode)

		var body map[string]any
		decodeJSON(t, resp, &body)
		assert.Equal(t, weather.StatusError, body["status"])
	}
}

type stubResolver struct {
	coord weather.Coordinate
	input location.Input
}

func (r *stubResolver) Resolve(_ context.Context, in location.Input) (weather.Coordinate, error) {
	r.input = in
	if err := in.Validate(); err != nil {
		return weather.Coordinate{}, err
	}
	return r.coord, nil
}

type stubFetcher struct{}

func (stubFetcher) FetchDaily(context.Context, weather.Coordinate) (weather.DailyForecast, error) {
	return week(), nil
}

func (stubFetcher) FetchHourly(context.Context, weather.Coordinate) (weather.HourlyForecast, error) {
	return hours(), nil
}

func newDashboardApp(t *testing.T, r *stubResolver) *fiber.App {
	t.Helper()
	renderer, err := dashboard.NewRenderer()
	require.NoError(t, err)

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	ctrl := dashboard.NewController(store.NewMemoryStore(10, time.Hour), r, stubFetcher{})
	RegisterDashboard(app, ctrl, renderer)
	return app
}

func open(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/weather", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	loc := resp.Header.Get(fiber.HeaderLocation)
	require.True(t, strings.HasPrefix(loc, "/weather/s/"), loc)
	return loc
}

func post(t *testing.T, app *fiber.App, path string, form url.Values) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func state(t *testing.T, app *fiber.App, page string) stateView {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, page+"/state", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var sv stateView
	decodeJSON(t, resp, &sv)
	return sv
}

func TestDashboardFlow(t *testing.T) {
	r := &stubResolver{coord: weather.Coordinate{Lat: 39.78, Lng: -89.65}}
	app := newDashboardApp(t, r)
	page := open(t, app)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, page, nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "text/html")
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), `id="input-info"`)

	resp = post(t, app, page+"/search", url.Values{"street": {"1 Main St"}, "city": {"Springfield"}, "state": {"IL"}})
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, page, resp.Header.Get(fiber.HeaderLocation))
	assert.Equal(t, location.KindAddress, r.input.Kind)

	sv := state(t, app, page)
	assert.Equal(t, "summary", sv.View)
	assert.True(t, sv.Panels.Card)
	assert.True(t, sv.Panels.Table)

	resp = post(t, app, page+"/days/2", nil)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)

	sv = state(t, app, page)
	assert.Equal(t, "detail", sv.View)
	require.NotNil(t, sv.Selected)
	assert.Equal(t, 2, *sv.Selected)
	assert.True(t, sv.Panels.Meteogram)
	assert.True(t, sv.Panels.RangeChart)

	post(t, app, page+"/fold", nil)
	sv = state(t, app, page)
	assert.True(t, sv.Folded)
	assert.False(t, sv.Panels.RangeChart)

	// Day selection is only offered on the summary.
	resp = post(t, app, page+"/days/1", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	post(t, app, page+"/clear", nil)
	sv = state(t, app, page)
	assert.Equal(t, "form", sv.View)
	assert.True(t, sv.Panels.Form)
}

func TestDashboardSearchValidationAndAuto(t *testing.T) {
	r := &stubResolver{coord: weather.Coordinate{Lat: 1, Lng: 2}}
	app := newDashboardApp(t, r)
	page := open(t, app)

	post(t, app, page+"/search", url.Values{"street": {"1 Main St"}})
	sv := state(t, app, page)
	assert.Equal(t, "form", sv.View)
	assert.Equal(t, "city", sv.Invalid)

	post(t, app, page+"/search", url.Values{"auto": {"on"}})
	assert.Equal(t, location.KindAuto, r.input.Kind)
	assert.Equal(t, "summary", state(t, app, page).View)
}

func TestDashboardUnknownSessionAndBadIndex(t *testing.T) {
	app := newDashboardApp(t, &stubResolver{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/weather/s/nope", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = post(t, app, "/weather/s/nope/clear", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	page := open(t, app)
	resp = post(t, app, page+"/days/first", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestEachVisitOpensNewSession(t *testing.T) {
	app := newDashboardApp(t, &stubResolver{})
	assert.NotEqual(t, open(t, app), open(t, app))
}

func TestErrorResponsesMatchTheRoute(t *testing.T) {
	app := newDashboardApp(t, &stubResolver{})
	page := open(t, app)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/weather/s/nope", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "text/html")
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), `<div id="err-message">dashboard session not found</div>`)
	assert.Contains(t, string(body), `href="/weather"`)

	resp = post(t, app, page+"/days/first", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "text/html")

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/weather/s/nope/state", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	var apiErr map[string]any
	decodeJSON(t, resp, &apiErr)
	assert.Equal(t, true, apiErr["error"])

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/weather/unknown", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON)
}

func TestIsPage(t *testing.T) {
	assert.True(t, isPage("/weather"))
	assert.True(t, isPage("/weather/s/abc"))
	assert.True(t, isPage("/weather/s/abc/days/2"))
	assert.False(t, isPage("/weather/s/abc/state"))
	assert.False(t, isPage("/weather/daily"))
	assert.False(t, isPage("/health"))
}
