package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linkmark/linkmark-api/internal/bookmarks/service"
	"github.com/linkmark/linkmark-api/pkg/logger"
	"github.com/linkmark/linkmark-api/pkg/metrics"
	"github.com/linkmark/linkmark-api/pkg/middleware"
)

// CreateRequest is the body of POST /bookmarks/add
type CreateRequest struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

// Handler exposes the bookmark API over HTTP.
type Handler struct {
	svc *service.Service
}

func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Register mounts the bookmark routes behind the auth middleware.
func (h *Handler) Register(r gin.IRouter, ver middleware.Verifier) {
	g := r.Group("/bookmarks", middleware.Auth(ver))
	g.POST("/add", h.Create)
	g.GET("", h.List)
	g.POST("/:id/delete", h.Delete)
}

func (h *Handler) Create(c *gin.Context) {
	ident := middleware.IdentityFrom(c)
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.BookmarkRequests.WithLabelValues("create", "invalid").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	b, err := h.svc.Create(c.Request.Context(), ident, req.URL, req.Title)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			metrics.BookmarkRequests.WithLabelValues("create", "invalid").Inc()
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Errorf("create bookmark failed (user=%s): %v", ident.ID, err)
		metrics.BookmarkRequests.WithLabelValues("create", "error").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create bookmark"})
		return
	}
	metrics.BookmarkRequests.WithLabelValues("create", "ok").Inc()
	c.JSON(http.StatusOK, b)
}

func (h *Handler) List(c *gin.Context) {
	ident := middleware.IdentityFrom(c)
	list, err := h.svc.List(c.Request.Context(), ident)
	if err != nil {
		logger.Errorf("list bookmarks failed (user=%s): %v", ident.ID, err)
		metrics.BookmarkRequests.WithLabelValues("list", "error").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch bookmarks"})
		return
	}
	metrics.BookmarkRequests.WithLabelValues("list", "ok").Inc()
	c.JSON(http.StatusOK, list)
}

func (h *Handler) Delete(c *gin.Context) {
	ident := middleware.IdentityFrom(c)
	id := c.Param("id")
	if err := h.svc.Delete(c.Request.Context(), ident, id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			metrics.BookmarkRequests.WithLabelValues("delete", "not_found").Inc()
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		logger.Errorf("delete bookmark failed (user=%s id=%s): %v", ident.ID, id, err)
		metrics.BookmarkRequests.WithLabelValues("delete", "error").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete bookmark"})
		return
	}
	metrics.BookmarkRequests.WithLabelValues("delete", "ok").Inc()
	c.JSON(http.StatusOK, gin.H{"success": true})
}
