package httpapi

import (
	"context"
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/bathing-water-aggregation/internal/water"
)

var validate = newValidator()

// DataService is what the routes need from water.Service.
type DataService interface {
	Table(ctx context.Context) []water.Entry
	Registry(ctx context.Context) []water.Site
	Site(ctx context.Context, id string) (water.Site, error)
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service DataService) {
	v1 := app.Group("/api/v1")

	v1.Get("/table", func(c *fiber.Ctx) error {
		var q tableQuery
		if err := q.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		entries := service.Table(c.UserContext())
		return c.JSON(filterEntries(entries, q))
	})

	v1.Get("/registry", func(c *fiber.Ctx) error {
		q := regionQuery{Region: c.Query("region")}
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		sites := service.Registry(c.UserContext())
		return c.JSON(filterSites(sites, water.Region(q.Region)))
	})

	v1.Get("/registry/:id", func(c *fiber.Ctx) error {
		site, err := service.Site(c.UserContext(), c.Params("id"))
		if err != nil {
			if errors.Is(err, water.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no bathing site with that id")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to look up bathing site")
		}
		return c.JSON(site)
	})
}

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("region", func(fl validator.FieldLevel) bool {
		return water.Region(fl.Field().String()).Valid()
	})
	return v
}

// regionQuery holds the optional region filter.
type regionQuery struct {
	Region string `validate:"omitempty,region"`
}

// tableQuery holds query parameters for the table endpoint.
type tableQuery struct {
	Region     string `validate:"omitempty,region"`
	RecentOnly bool
}

func (q *tableQuery) bind(c *fiber.Ctx) error {
	q.Region = c.Query("region")

	if raw := c.Query("recent"); raw != "" {
		recent, err := strconv.ParseBool(raw)
		if err != nil {
			return errors.New("recent must be a boolean")
		}
		q.RecentOnly = recent
	}

	return validate.Struct(q)
}

// filterEntries returns a filtered copy; the cached slice is never modified.
func filterEntries(entries []water.Entry, q tableQuery) []water.Entry {
	if q.Region == "" && !q.RecentOnly {
		return entries
	}
	out := make([]water.Entry, 0, len(entries))
	for _, e := range entries {
		if q.Region != "" && e.Region != water.Region(q.Region) {
			continue
		}
		if q.RecentOnly && !e.Recent {
			continue
		}
		out = append(out, e)
	}
	return out
}

func filterSites(sites []water.Site, region water.Region) []water.Site {
	if region == "" {
		return sites
	}
	out := make([]water.Site, 0, len(sites))
	for _, s := range sites {
		if s.Region == region {
			out = append(out, s)
		}
	}
	return out
}
