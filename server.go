package pubkit

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

const rebuildDebounce = 300 * time.Millisecond

// Server serves the built site for local development and rebuilds it when
// content or static files change.
type Server struct {
	Echo *echo.Echo

	builder *Builder
	logger  *zap.Logger
	buildMu sync.Mutex
}

// NewServer creates a dev server around b. Routes are registered immediately
// so the handler can be exercised without listening.
func NewServer(b *Builder) *Server {
	if b.cache == nil {
		b.cache = NewArticleCache()
	}
	s := &Server{
		Echo:    echo.New(),
		builder: b,
		logger:  b.logger,
	}
	s.Echo.HideBanner = true
	s.Echo.HidePort = true
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddleware() {
	e := s.Echo
	e.HTTPErrorHandler = s.httpErrorHandler

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			s.logger.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency))
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(noStoreMiddleware)
}

// noStoreMiddleware keeps browsers from caching pages between rebuilds.
func noStoreMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set("Cache-Control", "no-store")
		return next(c)
	}
}

func (s *Server) setupRoutes() {
	s.Echo.Static("/", s.builder.Config.OutputDir)
}

func (s *Server) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	if errors.As(err, &he) && he.Code == http.StatusNotFound {
		page := filepath.Join(s.builder.Config.OutputDir, "404.html")
		if body, readErr := os.ReadFile(page); readErr == nil {
			_ = c.HTMLBlob(http.StatusNotFound, body)
			return
		}
	}
	if he == nil || he.Code >= 500 {
		s.logger.Error("server error", zap.Error(err))
	}
	s.Echo.DefaultHTTPErrorHandler(err, c)
}

// Rebuild runs one build, serialized with any other rebuild in flight. A
// failed build is logged and leaves the previous output in place.
func (s *Server) Rebuild(ctx context.Context) error {
	s.buildMu.Lock()
	defer s.buildMu.Unlock()
	_, err := s.builder.Build(ctx)
	if err != nil {
		s.logger.Error("build failed", zap.Error(err))
	}
	return err
}

// Run builds the site, starts the watcher and serves on addr until ctx is
// cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	if err := s.Rebuild(ctx); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	for _, dir := range []string{s.builder.Config.ContentDir, s.builder.Config.StaticDir} {
		if err := watchTree(watcher, dir); err != nil {
			s.logger.Warn("not watching directory", zap.String("dir", dir), zap.Error(err))
		}
	}
	go s.watch(ctx, watcher)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("dev server listening",
			zap.String("addr", addr),
			zap.Bool("drafts", s.builder.Config.Dev))
		if err := s.Echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.Echo.Shutdown(shutdownCtx)
}

func (s *Server) watch(ctx context.Context, watcher *fsnotify.Watcher) {
	var timer *time.Timer
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			if event.Has(fsnotify.Create) {
				if fi, err := os.Stat(event.Name); err == nil && fi.IsDir() {
					_ = watchTree(watcher, event.Name)
				}
			}
			s.logger.Debug("change detected", zap.String("path", event.Name), zap.String("op", event.Op.String()))
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(rebuildDebounce, func() {
				_ = s.Rebuild(ctx)
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			s.logger.Warn("watcher error", zap.Error(err))
		}
	}
}

// watchTree adds dir and all of its subdirectories to the watcher.
func watchTree(w *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.Add(path)
		}
		return nil
	})
}
