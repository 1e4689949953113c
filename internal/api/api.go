// Package api exposes the registry and dispatcher over HTTP. Handlers stay
// thin: decode, delegate, map the error kind to a status code.
package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/databridge-io/databridge/internal/dispatch"
	"github.com/databridge-io/databridge/internal/registry"
	"github.com/databridge-io/databridge/pkg/adapter"
	"github.com/databridge-io/databridge/pkg/dbcapabilities"
	"github.com/databridge-io/databridge/pkg/logger"
)

// Server holds the handler dependencies.
type Server struct {
	reg  *registry.Registry
	disp *dispatch.Dispatcher
	log  logger.Logger
}

// NewRouter builds the gin engine with all routes registered.
func NewRouter(reg *registry.Registry, disp *dispatch.Dispatcher, log logger.Logger) *gin.Engine {
	s := &Server{reg: reg, disp: disp, log: log}

	r := gin.New()
	r.Use(gin.Recovery(), s.requestLog())

	r.GET("/health", s.health)
	r.GET("/connections", s.listConnections)
	r.POST("/connections", s.addConnection)
	r.DELETE("/connections/:name", s.removeConnection)
	r.POST("/query/:name", s.query)
	r.GET("/schema/:name", s.schema)
	r.GET("/performance/:name", s.performance)
	r.POST("/migrate/:name", s.migrate)
	r.POST("/backup/:name", s.backup)
	r.POST("/export/:name", s.export)
	return r
}

func (s *Server) requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "connections": s.reg.Len()})
}

func (s *Server) listConnections(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"connections": s.reg.List()})
}

type addConnectionRequest struct {
	Name string `json:"name" binding:"required"`
	Type string `json:"type" binding:"required"`
	DSN  string `json:"dsn" binding:"required"`
}

func (s *Server) addConnection(c *gin.Context) {
	var req addConnectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.bindError(c, err)
		return
	}
	id, ok := dbcapabilities.ParseID(req.Type)
	if !ok {
		s.writeError(c, adapter.NewInvalidInputError("type", "unknown database type "+req.Type))
		return
	}

	cfg := adapter.ConnectionConfig{Name: req.Name, DatabaseID: id, DSN: req.DSN}
	if err := s.reg.Add(c.Request.Context(), cfg); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "connection added", "name": req.Name})
}

func (s *Server) removeConnection(c *gin.Context) {
	name := c.Param("name")
	if err := s.reg.Remove(c.Request.Context(), name); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "connection removed", "name": name})
}

type queryRequest struct {
	Query  string         `json:"query" binding:"required"`
	Params map[string]any `json:"params"`
}

func (s *Server) query(c *gin.Context) {
	var req queryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.bindError(c, err)
		return
	}
	result, err := s.disp.RunQuery(c.Request.Context(), c.Param("name"), req.Query, req.Params)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) schema(c *gin.Context) {
	schema, err := s.disp.GetSchema(c.Request.Context(), c.Param("name"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tables": schema})
}

func (s *Server) performance(c *gin.Context) {
	report, err := s.disp.GetStats(c.Request.Context(), c.Param("name"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

type migrateRequest struct {
	Script string         `json:"script" binding:"required"`
	Params map[string]any `json:"params"`
}

// migrate runs a caller-supplied migration script on one connection. It is
// the query path with migration framing in the response.
func (s *Server) migrate(c *gin.Context) {
	var req migrateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.bindError(c, err)
		return
	}
	result, err := s.disp.RunQuery(c.Request.Context(), c.Param("name"), req.Script, req.Params)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "migration completed", "result": result})
}

type backupRequest struct {
	BackupPath string `json:"backup_path"`
}

func (s *Server) backup(c *gin.Context) {
	var req backupRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			s.bindError(c, err)
			return
		}
	}
	path, err := s.disp.Backup(c.Request.Context(), c.Param("name"), req.BackupPath)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "backup completed", "path": path})
}

type exportRequest struct {
	Query  string         `json:"query" binding:"required"`
	Params map[string]any `json:"params"`
	Format string         `json:"format"`
}

func (s *Server) export(c *gin.Context) {
	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.bindError(c, err)
		return
	}
	result, err := s.disp.Export(c.Request.Context(), c.Param("name"), req.Query, req.Params, req.Format)
	if err != nil {
		s.writeError(c, err)
		return
	}
	if result.Path != "" {
		c.JSON(http.StatusOK, gin.H{"message": "export written", "path": result.Path})
		return
	}
	c.Data(http.StatusOK, result.ContentType, result.Payload)
}

func (s *Server) bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_input", "details": err.Error()})
}

func (s *Server) writeError(c *gin.Context, err error) {
	kind, status := classify(err)
	if status >= http.StatusInternalServerError {
		s.log.Error("request failed", "path", c.Request.URL.Path, "error", err)
	}
	c.JSON(status, gin.H{"error": kind, "details": err.Error()})
}

func classify(err error) (string, int) {
	switch {
	case errors.Is(err, adapter.ErrInvalidInput):
		return "invalid_input", http.StatusBadRequest
	case errors.Is(err, adapter.ErrNotFound):
		return "not_found", http.StatusNotFound
	case errors.Is(err, adapter.ErrDuplicateName):
		return "duplicate_name", http.StatusConflict
	case errors.Is(err, adapter.ErrUnsupportedOperation):
		return "unsupported_operation", http.StatusUnprocessableEntity
	case errors.Is(err, adapter.ErrTimeout):
		return "timeout", http.StatusGatewayTimeout
	case errors.Is(err, adapter.ErrConnectFailed):
		return "connect_failed", http.StatusBadGateway
	case errors.Is(err, adapter.ErrBackupFailed):
		return "backup_failed", http.StatusInternalServerError
	default:
		return "query_failed", http.StatusInternalServerError
	}
}
