package httpapi

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

var validate = validator.New()

// RegisterRoutes wires the forecast endpoints into the Fiber app.
func RegisterRoutes(app *fiber.App, service *weather.Service) {
	w := app.Group("/weather")

	w.Get("/daily", func(c *fiber.Ctx) error {
		coord, err := parseCoordQuery(c)
		if err != nil {
			return errorSignal(c, fiber.StatusBadRequest, err.Error())
		}

		forecast, err := service.Daily(c.UserContext(), coord)
		if err != nil {
			return errorSignal(c, fiber.StatusBadGateway, "failed to fetch daily weather data")
		}
		return c.JSON(forecast)
	})

	w.Get("/hourly", func(c *fiber.Ctx) error {
		coord, err := parseCoordQuery(c)
		if err != nil {
			return errorSignal(c, fiber.StatusBadRequest, err.Error())
		}

		forecast, err := service.Hourly(c.UserContext(), coord)
		if err != nil {
			return errorSignal(c, fiber.StatusBadGateway, "failed to fetch hourly weather data")
		}
		return c.JSON(forecast)
	})
}

// errorSignal writes the {"status":"error"} body the dashboard recognises.
func errorSignal(c *fiber.Ctx, code int, message string) error {
	return c.Status(code).JSON(fiber.Map{
		"status":  weather.StatusError,
		"message": message,
	})
}

// coordQuery holds the lat/lng query parameters of the forecast endpoints.
type coordQuery struct {
	Lat string `validate:"required,latitude"`
	Lng string `validate:"required,longitude"`
}

func parseCoordQuery(c *fiber.Ctx) (weather.Coordinate, error) {
	q := coordQuery{
		Lat: c.Query("lat"),
		Lng: c.Query("lng"),
	}
	if err := validate.Struct(q); err != nil {
		return weather.Coordinate{}, errors.New("lat and lng must be valid coordinates")
	}

	lat, err := strconv.ParseFloat(q.Lat, 64)
	if err != nil {
		return weather.Coordinate{}, err
	}
	lng, err := strconv.ParseFloat(q.Lng, 64)
	if err != nil {
		return weather.Coordinate{}, err
	}
	return weather.Coordinate{Lat: lat, Lng: lng}, nil
}
