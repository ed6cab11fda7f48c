// Package server exposes the command bridge over HTTP.
package server

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rs/xid"

	"github.com/jrh3k5/qrsvg/bridge"
	"github.com/jrh3k5/qrsvg/config"
	"github.com/jrh3k5/qrsvg/failure"
	"github.com/jrh3k5/qrsvg/logging"
)

const contentTypeSVG = "image/svg+xml"

type generateRequest struct {
	Data string `json:"data"`
}

type exportRequest struct {
	SVG  string `json:"svg"`
	Path string `json:"path"`
}

// Service bundles the bridge with the HTTP-only concerns: the SVG cache and
// whether export is reachable.
type Service struct {
	bridge        *bridge.Bridge
	store         fiber.Storage
	cacheTTL      time.Duration
	cacheScope    string
	exportEnabled bool
}

// NewService creates a Service. store may be nil to disable caching.
// cacheScope must differ between configurations that render differently,
// since cached documents are shared through store.
func NewService(b *bridge.Bridge, cfg config.ServerConfig, store fiber.Storage, cacheScope string) *Service {
	return &Service{
		bridge:        b,
		store:         store,
		cacheTTL:      cfg.Cache.TTL,
		cacheScope:    cacheScope,
		exportEnabled: cfg.ExportEnabled,
	}
}

// SetupApp creates the Fiber app with all routes mounted.
func SetupApp(svc *Service) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			msg := "Internal Server Error"

			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				code = fiberErr.Code
				msg = fiberErr.Message
			}

			logging.Warn("Request failed", "path", c.Path(), "status", code, "message", msg)

			return c.Status(code).JSON(fiber.Map{
				"error": fiber.Map{
					"code":    code,
					"message": msg,
				},
			})
		},
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: func() string {
			return xid.New().String()
		},
	}))

	v1 := app.Group("/v1")
	v1.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	v1.Post("/invoke", svc.HandleInvoke)
	v1.Post("/generate", svc.HandleGenerate)
	v1.Post("/export", svc.HandleExport)

	app.Use(func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Not Found")
	})

	return app
}

// HandleInvoke runs a bridge request. Command failures are reported in the
// response body with status 200, as the bridge contract flattens them.
func (svc *Service) HandleInvoke(c *fiber.Ctx) error {
	var req bridge.Request
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Command == bridge.CommandExport && !svc.exportEnabled {
		return c.JSON(bridge.Response{Error: "export is disabled"})
	}

	if req.Command == bridge.CommandGenerate {
		if data, ok := req.Args[bridge.ArgData]; ok {
			doc, err := svc.generate(data)
			if err != nil {
				return c.JSON(bridge.Response{Error: err.Error()})
			}
			return c.JSON(bridge.Response{Result: doc})
		}
	}

	return c.JSON(svc.bridge.Invoke(req))
}

// HandleGenerate responds with the SVG document for the posted payload.
func (svc *Service) HandleGenerate(c *fiber.Ctx) error {
	var req generateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	doc, err := svc.generate(req.Data)
	if err != nil {
		return toFiberError(err)
	}

	c.Set(fiber.HeaderContentType, contentTypeSVG)
	return c.SendString(doc)
}

// HandleExport writes the posted SVG text to the posted path.
func (svc *Service) HandleExport(c *fiber.Ctx) error {
	if !svc.exportEnabled {
		return fiber.NewError(fiber.StatusForbidden, "export is disabled")
	}

	var req exportRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.Path == "" {
		return fiber.NewError(fiber.StatusBadRequest, "path is required")
	}

	if err := svc.bridge.Export(req.SVG, req.Path); err != nil {
		return toFiberError(err)
	}

	logging.Info("Exported SVG", "path", req.Path, "bytes", len(req.SVG))
	return c.SendStatus(fiber.StatusNoContent)
}

func (svc *Service) generate(data string) (string, error) {
	key := svc.cacheKey(data)
	if svc.store != nil {
		if cached, err := svc.store.Get(key); err != nil {
			logging.Warn("Failed to read cached SVG", "error", err.Error())
		} else if cached != nil {
			return string(cached), nil
		}
	}

	doc, err := svc.bridge.Generate(data)
	if err != nil {
		return "", err
	}

	if svc.store != nil {
		if err := svc.store.Set(key, []byte(doc), svc.cacheTTL); err != nil {
			logging.Warn("Failed to cache SVG", "error", err.Error())
		}
	}

	return doc, nil
}

func (svc *Service) cacheKey(data string) string {
	sum := sha256.Sum256([]byte(svc.cacheScope + "\x00" + data))
	return "qrsvg:" + hex.EncodeToString(sum[:])
}

func toFiberError(err error) error {
	if failure.KindOf(err) == failure.KindEncoding {
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	}

	return fiber.NewError(fiber.StatusInternalServerError, err.Error())
}
