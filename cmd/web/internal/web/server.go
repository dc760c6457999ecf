package web

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"thirdcoast.systems/darkroom/cmd/web/auth"
	"thirdcoast.systems/darkroom/cmd/web/ctxkeys"
	"thirdcoast.systems/darkroom/cmd/web/handlers/api/editor_api"
	"thirdcoast.systems/darkroom/cmd/web/handlers/content"
	staticpkg "thirdcoast.systems/darkroom/cmd/web/internal/web/utils/static"
	"thirdcoast.systems/darkroom/internal/editor"
)

// uploadOverhead is the allowance for multipart framing on top of the
// largest upload cap.
const uploadOverhead = 1 << 20

type Webserver struct {
	*echo.Echo
	sessionManager *auth.SessionManager
	staticCache    *staticpkg.StaticCache
	store          *editor.Store
	exporter       editor_api.Exporter
}

func NewWebserver(store *editor.Store, exporter editor_api.Exporter, sessionManager *auth.SessionManager) (*Webserver, error) {
	e := echo.New()

	// Initialize static cache
	staticCache, err := staticpkg.NewStaticCache()
	if err != nil {
		return nil, err
	}

	webserver := &Webserver{
		Echo:           e,
		sessionManager: sessionManager,
		staticCache:    staticCache,
		store:          store,
		exporter:       exporter,
	}

	if err = webserver.registerRoutes(); err != nil {
		return nil, err
	}

	if err = webserver.setupMiddleware(); err != nil {
		return nil, err
	}

	return webserver, nil
}

// bodyLimit sizes the request body limit so every view's upload cap is
// reachable and oversized files still get the inline error.
func bodyLimit(profiles editor.Profiles) string {
	return strconv.FormatInt(2*profiles.MaxUpload()+uploadOverhead, 10)
}

func (s *Webserver) setupMiddleware() error {
	s.HideBanner = true
	s.HidePort = true
	s.Use(middleware.BodyLimit(bodyLimit(s.store.Profiles())))
	s.Use(middleware.Recover())
	s.Use(middleware.RequestID())
	s.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
		Skipper: func(c echo.Context) bool {
			// PNG exports and uploaded images are already compressed.
			return strings.HasSuffix(c.Path(), "/export") || strings.HasPrefix(c.Path(), "/editor/:view/images/")
		},
	}))
	s.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		Skipper: func(c echo.Context) bool {
			switch c.Path() {
			case "/healthz", "/static/*":
				return true
			default:
				return false
			}
		},
		LogURI:       true,
		LogMethod:    true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  false,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"remote_ip", v.RemoteIP,
				"request_id", v.RequestID,
			}
			if v.Error != nil {
				fields = append(fields, "error", v.Error)
			}
			slog.Info("request", fields...)
			return nil
		},
	}))

	// Middleware to tie the browser to its editing sessions
	s.Use(s.editorSessionMiddleware)

	return nil
}

// editorSessionMiddleware issues or reads the editor cookie and stores the
// id in the request context for handlers.
func (s *Webserver) editorSessionMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if strings.HasPrefix(c.Request().URL.Path, "/static/") || c.Request().URL.Path == "/healthz" {
			return next(c)
		}

		id, err := s.sessionManager.EnsureID(c.Response().Writer, c.Request())
		if err != nil {
			slog.Error("failed to issue editor session", "error", err)
			return echo.ErrInternalServerError
		}

		ctx := context.WithValue(c.Request().Context(), ctxkeys.EditorID, id)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}

func (s *Webserver) registerRoutes() error {
	editorGroup := s.Group("/editor/:view")
	editorGroup.GET("", content.HandleEditorPage(s.store))
	editorGroup.POST("/upload", editor_api.HandleUpload(s.store))
	editorGroup.POST("/clear", editor_api.HandleClear(s.store))
	editorGroup.POST("/export", editor_api.HandleExport(s.store, s.exporter))
	editorGroup.GET("/images/:id", editor_api.HandleImage(s.store))

	// Editor SSE endpoints
	apiGroup := s.Group("/api/editor/:view")
	apiGroup.POST("/filter", editor_api.HandleFilter(s.store))
	apiGroup.POST("/enhancement", editor_api.HandleEnhancement(s.store))
	apiGroup.POST("/category", editor_api.HandleCategory(s.store))
	apiGroup.POST("/curve", editor_api.HandleCurve(s.store))
	apiGroup.POST("/intensity", editor_api.HandleIntensity(s.store))
	apiGroup.POST("/adjustment", editor_api.HandleAdjustment(s.store))
	apiGroup.POST("/reset", editor_api.HandleReset(s.store))
	apiGroup.POST("/before-after", editor_api.HandleBeforeAfter(s.store))

	// Health check
	s.GET("/healthz", func(c echo.Context) error {
		return c.String(200, "ok")
	})

	// Static file serving
	s.GET("/static/*", s.staticCache.ServeStaticFile("/static/"))

	s.GET("/", content.HandleHomePage(s.store.Profiles()))

	return nil
}
