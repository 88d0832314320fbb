// Package webserver serves the embedded browser page that plays against the API.
package webserver

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

//go:embed web
var webFS embed.FS

// Server is the web UI listener. The page itself holds no game state; it
// reads the API location from /config.
type Server struct {
	app    *fiber.App
	apiURL string
}

// New builds the web UI server for a page talking to the API at apiURL
func New(apiURL string) (*Server, error) {
	page, err := fs.Sub(webFS, "web")
	if err != nil {
		return nil, fmt.Errorf("web assets: %w", err)
	}

	s := &Server{
		app: fiber.New(fiber.Config{
			ReadTimeout:           10 * time.Second,
			WriteTimeout:          10 * time.Second,
			IdleTimeout:           30 * time.Second,
			DisableStartupMessage: true,
		}),
		apiURL: apiURL,
	}

	s.app.Use(logger.New(logger.Config{
		Format: "${time} WEB ${status} ${method} ${path} ${latency}\n",
	}))
	s.app.Use(cors.New())

	s.app.Get("/config", s.config)

	// every unknown path falls back to the page
	s.app.Use(filesystem.New(filesystem.Config{
		Root:               http.FS(page),
		Index:              "index.html",
		NotFoundFile:       "index.html",
		ContentTypeCharset: "utf-8",
	}))

	return s, nil
}

func (s *Server) config(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"apiUrl": s.apiURL})
}

// Listen blocks serving on host:port until Shutdown
func (s *Server) Listen(host string, port int) error {
	return s.app.Listen(fmt.Sprintf("%s:%d", host, port))
}

func (s *Server) Shutdown(timeout time.Duration) error {
	return s.app.ShutdownWithTimeout(timeout)
}
