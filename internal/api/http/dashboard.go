package httpapi

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-dashboard/internal/dashboard"
	"github.com/i474232898/weather-dashboard/internal/location"
	"github.com/i474232898/weather-dashboard/internal/store"
	"github.com/i474232898/weather-dashboard/internal/view"
)

// RegisterDashboard wires the page routes into the Fiber app.
func RegisterDashboard(app *fiber.App, ctrl *dashboard.Controller, renderer *dashboard.Renderer) {
	app.Get("/weather", func(c *fiber.Ctx) error {
		s := ctrl.Open()
		return c.Redirect(pagePath(s.ID), fiber.StatusSeeOther)
	})

	page := app.Group("/weather/s/:id")

	page.Get("/", func(c *fiber.Ctx) error {
		s, err := ctrl.Session(c.Params("id"))
		if err != nil {
			return sessionError(err)
		}
		body, err := renderer.Render(s.ID, s.State())
		if err != nil {
			return err
		}
		c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return c.Send(body)
	})

	page.Get("/state", func(c *fiber.Ctx) error {
		s, err := ctrl.Session(c.Params("id"))
		if err != nil {
			return sessionError(err)
		}
		return c.JSON(newStateView(s.State()))
	})

	page.Post("/search", func(c *fiber.Ctx) error {
		id := c.Params("id")
		in := location.Input{
			Kind:   location.KindAddress,
			Street: c.FormValue("street"),
			City:   c.FormValue("city"),
			State:  c.FormValue("state"),
		}
		if c.FormValue("auto") != "" {
			in.Kind = location.KindAuto
		}

		ctx := location.WithClientIP(c.UserContext(), c.IP())
		if _, err := ctrl.Submit(ctx, id, in); err != nil {
			return sessionError(err)
		}
		return c.Redirect(pagePath(id), fiber.StatusSeeOther)
	})

	page.Post("/days/:index", func(c *fiber.Ctx) error {
		id := c.Params("id")
		index, err := c.ParamsInt("index")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "day index must be a number")
		}

		if _, err := ctrl.SelectDay(c.UserContext(), id, index); err != nil {
			return sessionError(err)
		}
		return c.Redirect(pagePath(id), fiber.StatusSeeOther)
	})

	page.Post("/clear", func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := ctrl.Clear(id); err != nil {
			return sessionError(err)
		}
		return c.Redirect(pagePath(id), fiber.StatusSeeOther)
	})

	page.Post("/fold", func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := ctrl.ToggleFold(id); err != nil {
			return sessionError(err)
		}
		return c.Redirect(pagePath(id), fiber.StatusSeeOther)
	})
}

func pagePath(id string) string {
	return "/weather/s/" + id
}

func sessionError(err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, "dashboard session not found")
	case errors.Is(err, view.ErrInvalidTransition):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	default:
		return err
	}
}

// stateView is the JSON form of a view state.
type stateView struct {
	View     string      `json:"view"`
	Panels   view.Panels `json:"panels"`
	Pending  bool        `json:"pending"`
	Invalid  string      `json:"invalid,omitempty"`
	Coord    any         `json:"coord,omitempty"`
	Forecast any         `json:"forecast,omitempty"`
	Selected *int        `json:"selected,omitempty"`
	Hourly   any         `json:"hourly,omitempty"`
	Error    string      `json:"error,omitempty"`
	Folded   bool        `json:"folded"`
}

func newStateView(st view.State) stateView {
	sv := stateView{
		View:    st.Kind.String(),
		Panels:  view.Visible(st),
		Pending: st.Pending,
		Folded:  st.Folded,
	}
	if st.Invalid != nil {
		sv.Invalid = st.Invalid.Field
	}
	switch st.Kind {
	case view.Summary:
		sv.Coord, sv.Forecast = st.Coord, st.Forecast
	case view.Detail:
		sel := st.Selected
		sv.Coord, sv.Forecast, sv.Selected = st.Coord, st.Forecast, &sel
		if st.Hourly != nil {
			sv.Hourly = st.Hourly
		}
	case view.Error:
		sv.Error = dashboard.ErrorText(st.Cause)
	}
	return sv
}
