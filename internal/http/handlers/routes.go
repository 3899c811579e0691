package handlers

import (
	"errors"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	applog "workmarket/internal/log"
	"workmarket/internal/metrics"
	"workmarket/web"
)

const bodyLimit = 1 << 20 // 1 MiB

type Options struct {
	APIPrefix   string
	CORSOrigins string
	// Views renders the admin pages; nil uses the embedded templates.
	Views fiber.Views
	// Gatherer backs GET /metrics; nil leaves the route out.
	Gatherer prometheus.Gatherer
	// AccessLog receives one line per request; nil means stdout.
	AccessLog io.Writer

	LoginLimit  int
	LoginWindow time.Duration
}

func (o *Options) defaults() {
	if o.APIPrefix == "" {
		o.APIPrefix = "/api"
	}
	if o.CORSOrigins == "" {
		o.CORSOrigins = "*"
	}
	if o.Views == nil {
		o.Views = html.NewFileSystem(http.FS(web.Templates()), ".html")
	}
	if o.AccessLog == nil {
		o.AccessLog = os.Stdout
	}
	if o.LoginLimit <= 0 {
		o.LoginLimit = 5
	}
	if o.LoginWindow <= 0 {
		o.LoginWindow = 10 * time.Minute
	}
}

// NewApp wires middleware and every route onto a fresh fiber app.
func NewApp(d *Deps, opts Options) *fiber.App {
	opts.defaults()

	app := fiber.New(fiber.Config{
		Views:        opts.Views,
		ErrorHandler: ErrorHandler,
		BodyLimit:    bodyLimit,
	})

	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Output: opts.AccessLog,
		Format: "${time} ${locals:requestid} ${status} ${method} ${path} ${latency}\n",
	}))
	app.Use(recover.New())
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{AllowOrigins: opts.CORSOrigins}))
	app.Use(observe(d.Metrics))
	app.Use(Identify(d.Tokens))

	if opts.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}

	api := app.Group(opts.APIPrefix)
	api.Get("/health", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })

	api.Get("/listings", d.Listings.List)
	api.Get("/listings/:id", d.Listings.Get)
	api.Get("/listings/:id/availability", d.Listings.Availability)
	api.Post("/listings", d.Listings.Create)
	api.Delete("/listings/:id", d.Listings.Delete)

	api.Post("/enroll", d.Enrollments.Enroll)
	api.Get("/enrollments", d.Enrollments.List)

	api.Post("/purchase", d.Orders.Purchase)
	api.Get("/orders", d.Orders.List)

	api.Get("/cart", d.Cart.List)
	api.Post("/cart", d.Cart.Add)
	api.Get("/cart/summary", d.Cart.Summary)
	api.Delete("/cart/:id", d.Cart.Remove)

	api.Get("/messages", d.Messages.List)
	api.Post("/messages", d.Messages.Send)

	api.Get("/users", d.Auth.Users)
	api.Post("/auth/login", limiter.New(limiter.Config{
		Max:        opts.LoginLimit,
		Expiration: opts.LoginWindow,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "Too many attempts. Please try again later."})
		},
	}), d.Auth.Login)
	api.Get("/auth/me", d.Auth.Me)

	api.Get("/reports", d.Reports.List)
	api.Post("/reports", d.Reports.Flag)
	api.Post("/reports/:id/approve", d.Reports.Approve)
	api.Post("/reports/:id/remove", d.Reports.Remove)

	admin := app.Group("/admin", csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		ContextKey:     csrfLocal,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", map[string]any{"error": err.Error()})
			c.Status(fiber.StatusForbidden)
			return render(c, "notfound", fiber.Map{"Title": "Error", "Message": "Security check failed. Please refresh and try again."})
		},
	}))
	admin.Get("/reports", d.Admin.ReportsPage)
	admin.Post("/reports/:id/approve", d.Admin.Approve)
	admin.Post("/reports/:id/remove", d.Admin.Remove)

	app.Use(func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Not found")
	})
	return app
}

// observe records request latency by matched route so ids don't explode the
// label set.
func observe(rec metrics.Recorder) fiber.Handler {
	if rec == nil {
		rec = metrics.Nop{}
	}
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}
		rec.ObserveRequest(c.Method(), c.Route().Path, status, time.Since(start))
		return err
	}
}
