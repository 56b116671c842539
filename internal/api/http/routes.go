package httpapi

import (
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/verdantly/watering-advisor/internal/advisor"
	"github.com/verdantly/watering-advisor/internal/engine"
	"github.com/verdantly/watering-advisor/internal/store"
	"github.com/verdantly/watering-advisor/internal/weather"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *advisor.Service) {
	v1 := app.Group("/api/v1")

	// Latest plan for a configured location, computed on demand when no
	// snapshot exists yet.
	v1.Get("/plan", func(c *fiber.Ctx) error {
		loc, err := resolveLocation(c, service)
		if err != nil {
			return err
		}

		snap, err := service.Latest(loc)
		if errors.Is(err, store.ErrNotFound) {
			snap, err = service.Refresh(c.Context(), loc)
			if err != nil {
				return fiber.NewError(fiber.StatusBadGateway, "failed to compute watering plan")
			}
		} else if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to load watering plan")
		}

		return c.JSON(snap)
	})

	// Stored plan history for a location.
	v1.Get("/plan/history", func(c *fiber.Ctx) error {
		loc, err := resolveLocation(c, service)
		if err != nil {
			return err
		}

		var rng rangeQuery
		if err := rng.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := validate.Struct(rng); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		snapshots, err := service.History(loc, rng.From, rng.To)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no plan history for requested range")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch plan history")
		}

		return c.JSON(fiber.Map{
			"location":  loc,
			"from":      rng.From,
			"to":        rng.To,
			"snapshots": snapshots,
		})
	})

	// Pure engine endpoint: the caller supplies observations, policy, and
	// optionally the previous plan; nothing is fetched or stored.
	v1.Post("/plan", func(c *fiber.Ctx) error {
		var req planRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		res, err := service.PlanFromObservations(engine.Input{
			Observations: req.Observations,
			Policy:       req.Policy,
			Previous:     req.Previous,
			Today:        req.Today,
		})
		if err != nil {
			if isEngineInputError(err) {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to compute watering plan")
		}

		return c.JSON(res)
	})
}

// planRequest is the POST /plan body. The policy is validated key-by-key by
// the engine; validator only enforces the envelope.
type planRequest struct {
	Observations []engine.Observation `json:"observations" validate:"required,min=1,max=31"`
	Policy       engine.Policy        `json:"policy"`
	Previous     *engine.Plan         `json:"previous"`
	Today        string               `json:"today" validate:"required"`
}

// isEngineInputError reports whether the error is a caller mistake rather
// than an internal failure.
func isEngineInputError(err error) bool {
	var vErr *engine.ValidationError
	var cfgErr *engine.ConfigError
	return errors.Is(err, engine.ErrEmptyInput) ||
		errors.As(err, &vErr) ||
		errors.As(err, &cfgErr)
}

func resolveLocation(c *fiber.Ctx, service *advisor.Service) (weather.Location, error) {
	name := c.Query("location")
	if name == "" {
		return weather.Location{}, fiber.NewError(fiber.StatusBadRequest, "location query parameter is required")
	}
	loc, ok := service.Location(name)
	if !ok {
		return weather.Location{}, fiber.NewError(fiber.StatusNotFound, "unknown location")
	}
	return loc, nil
}

// rangeQuery holds query parameters for the history endpoint.
type rangeQuery struct {
	From time.Time `validate:"required"`
	To   time.Time `validate:"required,gtefield=From"`
}

func (r *rangeQuery) bind(c *fiber.Ctx) error {
	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr == "" || toStr == "" {
		return errors.New("from and to query parameters are required")
	}

	from, err := parseTime(fromStr)
	if err != nil {
		return err
	}
	to, err := parseTime(toStr)
	if err != nil {
		return err
	}

	r.From = from
	r.To = to
	return nil
}

// parseTime tries to parse either RFC3339 or Unix seconds.
func parseTime(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	if unix, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(unix, 0).UTC(), nil
	}
	return time.Time{}, errors.New("invalid time format; use RFC3339 or unix seconds")
}
