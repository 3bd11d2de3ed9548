// Package server exposes the meta-command interpreter and the model registry over HTTP.
package server

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"lpubmeta/internal/ldraw"
	"lpubmeta/internal/logger"
	"lpubmeta/internal/meta"
	"lpubmeta/internal/version"
)

// BodyLimit caps request bodies; LDraw documents are text and rarely approach it.
const BodyLimit = "16M"

// Handler handles API requests against one model registry.
type Handler struct {
	registry *ldraw.Registry
	log      *log.Logger
}

// NewHandler creates a new API handler.
func NewHandler(registry *ldraw.Registry) *Handler {
	return &Handler{
		registry: registry,
		log:      logger.NewStyledLogger("Server"),
	}
}

// New builds the echo instance with middleware and routes.
func New(h *Handler) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		Skipper: func(c echo.Context) bool {
			return c.Request().URL.Path == "/api/health"
		},
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error != nil {
				h.log.Warn("Request failed", "method", v.Method, "uri", v.URI, "status", v.Status, "error", v.Error)
				return nil
			}
			h.log.Debug("Request", "method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency)
			return nil
		},
	}))
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 1024 * 4,
	}))
	e.Use(middleware.BodyLimit(BodyLimit))

	api := e.Group("/api")
	api.GET("/health", h.HandleHealth)
	api.POST("/parse", h.HandleParse)
	api.POST("/load", h.HandleLoad)
	api.GET("/models", h.HandleModels)
	api.GET("/models/:name", h.HandleModel)
	api.POST("/count", h.HandleCount)
	api.GET("/snapshot", h.HandleSnapshot)
	return e
}

// Serve runs the server on addr until ctx is cancelled, then shuts it down.
func Serve(ctx context.Context, e *echo.Echo, addr string) error {
	errc := make(chan error, 1)
	go func() {
		errc <- e.Start(addr)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func errorJSON(c echo.Context, status int, msg string) error {
	return c.JSON(status, map[string]string{"error": msg})
}

// HandleHealth returns server health status.
func (h *Handler) HandleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ok",
		"version": version.GetBaseVersion(),
	})
}

type parseRequest struct {
	Model string   `json:"model"`
	Lines []string `json:"lines"`
	Text  string   `json:"text"`
}

type parseResponse struct {
	Results  []meta.LineResult `json:"results"`
	Failures int               `json:"failures"`
	Settings []settingView     `json:"settings"`
}

type settingView struct {
	Where meta.Where `json:"where"`
	Line  string     `json:"line"`
}

// HandleParse interprets the posted lines against a fresh grammar. Lines come either as
// a list or as one text block.
func (h *Handler) HandleParse(c echo.Context) error {
	var req parseRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request body")
	}
	lines := req.Lines
	if len(lines) == 0 && req.Text != "" {
		lines = strings.Split(strings.ReplaceAll(req.Text, "\r\n", "\n"), "\n")
	}
	if len(lines) == 0 {
		return errorJSON(c, http.StatusBadRequest, "no lines to parse")
	}
	model := req.Model
	if model == "" {
		model = "request"
	}

	m := meta.New()
	m.SetLogger(h.log)
	resp := parseResponse{Results: m.ParseModel(model, lines, false)}
	for _, res := range resp.Results {
		if res.Rc.IsError() {
			resp.Failures++
		}
	}
	for _, st := range m.Settings() {
		resp.Settings = append(resp.Settings, settingView{Where: st.Here, Line: st.Line})
	}
	return c.JSON(http.StatusOK, resp)
}

type loadRequest struct {
	Name     string `json:"name"`
	Document string `json:"document"`
}

// HandleLoad replaces the served document with the posted one.
func (h *Handler) HandleLoad(c echo.Context) error {
	var req loadRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request body")
	}
	if req.Name == "" || req.Document == "" {
		return errorJSON(c, http.StatusBadRequest, "name and document are required")
	}
	if err := h.registry.Read(req.Name, strings.NewReader(req.Document), time.Now()); err != nil {
		return errorJSON(c, http.StatusUnprocessableEntity, err.Error())
	}
	h.log.Info("Document loaded", "name", req.Name, "models", len(h.registry.SubFileOrder()))
	return c.JSON(http.StatusOK, h.registry.Metadata())
}

type modelSummary struct {
	Name       string `json:"name"`
	Lines      int    `json:"lines"`
	Level      int    `json:"level"`
	Submodel   bool   `json:"submodel"`
	Unofficial bool   `json:"unofficial"`
	Modified   bool   `json:"modified"`
}

type modelsResponse struct {
	Document ldraw.Metadata `json:"document"`
	MPD      bool           `json:"mpd"`
	Models   []modelSummary `json:"models"`
}

// HandleModels lists the models of the served document in load order.
func (h *Handler) HandleModels(c echo.Context) error {
	resp := modelsResponse{
		Document: h.registry.Metadata(),
		MPD:      h.registry.IsMpd(),
		Models:   []modelSummary{},
	}
	for _, k := range h.registry.SubFileOrder() {
		f, ok := h.registry.Get(k)
		if !ok {
			continue
		}
		resp.Models = append(resp.Models, modelSummary{
			Name:       f.Name,
			Lines:      len(f.Contents),
			Level:      f.Level,
			Submodel:   h.registry.IsSubmodel(k),
			Unofficial: f.UnofficialPart,
			Modified:   f.Modified,
		})
	}
	return c.JSON(http.StatusOK, resp)
}

// HandleModel returns one model with its contents and counts.
func (h *Handler) HandleModel(c echo.Context) error {
	name, err := url.PathUnescape(c.Param("name"))
	if err != nil {
		name = c.Param("name")
	}
	f, ok := h.registry.Get(name)
	if !ok {
		return errorJSON(c, http.StatusNotFound, ldraw.ErrNotFound.Error())
	}
	return c.JSON(http.StatusOK, f)
}

type countRequest struct {
	Name     string `json:"name"`
	Document string `json:"document"`
}

// HandleCount counts the served document, or a posted one without touching the served
// state. ?format=yaml returns the report as YAML.
func (h *Handler) HandleCount(c echo.Context) error {
	var req countRequest
	if c.Request().ContentLength != 0 {
		if err := c.Bind(&req); err != nil {
			return errorJSON(c, http.StatusBadRequest, "invalid request body")
		}
	}

	reg := h.registry
	if req.Document != "" {
		if req.Name == "" {
			req.Name = "request.ldr"
		}
		reg = ldraw.New()
		reg.SetLogger(h.log)
		if err := reg.Read(req.Name, strings.NewReader(req.Document), time.Now()); err != nil {
			return errorJSON(c, http.StatusUnprocessableEntity, err.Error())
		}
	}
	if reg.TopLevelFile() == "" {
		return errorJSON(c, http.StatusConflict, ldraw.ErrNoTopLevel.Error())
	}

	rep := reg.Report()
	switch format := c.QueryParam("format"); format {
	case "", "json":
		return c.JSON(http.StatusOK, rep)
	default:
		data, err := rep.Encode(format)
		if err != nil {
			return errorJSON(c, http.StatusBadRequest, err.Error())
		}
		return c.Blob(http.StatusOK, "application/yaml", data)
	}
}

// HandleSnapshot returns the registry state as MessagePack.
func (h *Handler) HandleSnapshot(c echo.Context) error {
	var buf bytes.Buffer
	if err := ldraw.WriteSnapshot(&buf, h.registry.Snapshot()); err != nil {
		return errorJSON(c, http.StatusInternalServerError, "failed to encode snapshot")
	}
	return c.Blob(http.StatusOK, "application/msgpack", buf.Bytes())
}
