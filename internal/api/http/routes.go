package httpapi

import (
	"bytes"
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/moveguider/internal/charts"
	"github.com/i474232898/moveguider/internal/checklist"
	"github.com/i474232898/moveguider/internal/clock"
	"github.com/i474232898/moveguider/internal/planner"
	"github.com/i474232898/moveguider/internal/profile"
	"github.com/i474232898/moveguider/internal/report"
	"github.com/i474232898/moveguider/internal/weather"
)

var validate = validator.New()

// Comparer fetches forecasts for two cities side by side.
type Comparer interface {
	Compare(ctx context.Context, city1, city2 string) weather.Comparison
}

// ProfileStore is the profile persistence contract used by the handlers.
type ProfileStore interface {
	Names() ([]string, error)
	Load(name string) (profile.Profile, error)
	Save(name string, p profile.Profile) error
	Delete(name string) error
}

// Deps are the collaborators behind the routes.
type Deps struct {
	Comparer Comparer
	Profiles ProfileStore
	Clock    clock.Clock
	Home     *time.Location
	Policy   planner.MidnightPolicy
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, deps Deps) {
	if deps.Clock == nil {
		deps.Clock = clock.SystemClock{}
	}
	if deps.Home == nil {
		deps.Home = time.UTC
	}

	app.Get("/dashboard", func(c *fiber.Ctx) error {
		r, err := deps.buildReport(c)
		if err != nil {
			return err
		}

		var buf bytes.Buffer
		if err := charts.Render(&buf, r); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to render dashboard")
		}
		c.Type("html", "utf-8")
		return c.Send(buf.Bytes())
	})

	v1 := app.Group("/api/v1")

	v1.Get("/compare", func(c *fiber.Ctx) error {
		r, err := deps.buildReport(c)
		if err != nil {
			return err
		}
		return c.JSON(r)
	})

	v1.Get("/profiles", func(c *fiber.Ctx) error {
		names, err := deps.Profiles.Names()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to read profiles")
		}
		return c.JSON(fiber.Map{"profiles": names})
	})

	v1.Get("/profiles/:name", func(c *fiber.Ctx) error {
		p, err := deps.loadProfile(profileParam(c))
		if err != nil {
			return err
		}
		return c.JSON(p)
	})

	v1.Put("/profiles/:name", func(c *fiber.Ctx) error {
		name := profileParam(c)

		var p profile.Profile
		if err := c.BodyParser(&p); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid profile body: "+err.Error())
		}
		if err := deps.Profiles.Save(name, p); err != nil {
			if errors.Is(err, profile.ErrInvalid) {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to save profile")
		}

		saved, err := deps.loadProfile(name)
		if err != nil {
			return err
		}
		return c.JSON(saved)
	})

	v1.Delete("/profiles/:name", func(c *fiber.Ctx) error {
		if err := deps.Profiles.Delete(profileParam(c)); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to delete profile")
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	v1.Get("/checklist", func(c *fiber.Ctx) error {
		var q checklistQuery
		if err := c.QueryParser(&q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		params := checklist.Params{
			From:     q.From,
			To:       q.To,
			Mode:     checklist.Mode(q.Mode),
			SimMonth: q.Month,
			Now:      deps.Clock.Now().In(deps.Home),
		}
		if err := validate.Struct(params); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		params.Profile = profile.LoadOrDefault(deps.Profiles, q.Profile)

		c.Type("txt", "utf-8")
		return c.SendString(checklist.Generate(params))
	})
}

// compareQuery holds the query parameters shared by /compare and /dashboard.
type compareQuery struct {
	City1    string `query:"city1" validate:"required"`
	City2    string `query:"city2" validate:"required"`
	Profile  string `query:"profile"`
	Duration int    `query:"duration" validate:"gte=0,lte=1440"`
	Top      int    `query:"top" validate:"gte=0,lte=50"`
	Policy   string `query:"policy" validate:"omitempty,oneof=clamp span"`
}

type checklistQuery struct {
	From    string `query:"from"`
	To      string `query:"to"`
	Mode    string `query:"mode"`
	Month   string `query:"month"`
	Profile string `query:"profile"`
}

func (d Deps) buildReport(c *fiber.Ctx) (report.Report, error) {
	var q compareQuery
	if err := c.QueryParser(&q); err != nil {
		return report.Report{}, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	q.City1, q.City2 = strings.TrimSpace(q.City1), strings.TrimSpace(q.City2)
	if err := validate.Struct(q); err != nil {
		return report.Report{}, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	policy := d.Policy
	if q.Policy != "" {
		policy, _ = planner.ParseMidnightPolicy(q.Policy)
	}

	name := q.Profile
	if name == "" {
		name = profile.DefaultName
	}
	p := profile.LoadOrDefault(d.Profiles, name)

	cmp := d.Comparer.Compare(c.UserContext(), q.City1, q.City2)
	if cmp.Series1 == nil && cmp.Series2 == nil {
		return report.Report{}, fiber.NewError(fiber.StatusBadGateway, "no weather data: "+strings.Join(cmp.Errors, "; "))
	}

	now := d.Clock.Now().In(d.Home)
	return report.Build(cmp, name, p, report.Options{
		Home:    d.Home,
		Ref:     planner.RefDateOf(now),
		Policy:  policy,
		Workout: time.Duration(q.Duration) * time.Minute,
		TopN:    q.Top,
		Now:     now,
	}), nil
}

// loadProfile maps store errors to HTTP errors for the profile endpoints. The
// default profile is always available, even before it has been written.
func (d Deps) loadProfile(name string) (profile.Profile, error) {
	if name == "" {
		name = profile.DefaultName
	}
	p, err := d.Profiles.Load(name)
	switch {
	case err == nil:
		return p, nil
	case errors.Is(err, profile.ErrNotFound) && name == profile.DefaultName:
		return profile.Seed(), nil
	case errors.Is(err, profile.ErrNotFound):
		return profile.Profile{}, fiber.NewError(fiber.StatusNotFound, err.Error())
	default:
		return profile.Profile{}, fiber.NewError(fiber.StatusInternalServerError, "failed to read profiles")
	}
}

func profileParam(c *fiber.Ctx) string {
	raw := c.Params("name")
	if name, err := url.PathUnescape(raw); err == nil {
		return name
	}
	return raw
}
