package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/memegallery/api/internal/logger"
	"github.com/memegallery/api/internal/service"
)

// MemeHandler exposes the meme list/create operations over HTTP.
type MemeHandler struct {
	memeService *service.MemeService
}

// NewMemeHandler creates a new meme handler.
func NewMemeHandler(memeService *service.MemeService) *MemeHandler {
	return &MemeHandler{
		memeService: memeService,
	}
}

// CreateMemeRequest is the POST /memes request body. url, title and author
// are required; description and rating are optional. Retried POSTs create
// duplicate records; create is at-least-once by design.
type CreateMemeRequest struct {
	URL         string  `json:"url" binding:"required"`
	Title       string  `json:"title" binding:"required"`
	Description *string `json:"description"`
	Rating      *int    `json:"rating"`
	Author      string  `json:"author" binding:"required"`
}

// ListMemes handles GET /memes. Returns the full table as a JSON array,
// empty array when no memes exist. No pagination at this system's scale.
func (h *MemeHandler) ListMemes(c *gin.Context) {
	ctx := c.Request.Context()

	memes, err := h.memeService.List(ctx)
	if err != nil {
		logger.CtxError(ctx, "Failed to list memes: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to list memes",
		})
		return
	}

	c.JSON(http.StatusOK, memes)
}

// CreateMeme handles POST /memes. Malformed or incomplete bodies are
// rejected with 400 before reaching the store; store failures map to 500
// with an opaque payload, the driver diagnostic goes to the log only.
func (h *MemeHandler) CreateMeme(c *gin.Context) {
	ctx := c.Request.Context()

	var req CreateMemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "invalid request body: " + err.Error(),
		})
		return
	}

	meme, err := h.memeService.Create(ctx, service.CreateMemeInput{
		URL:         req.URL,
		Title:       req.Title,
		Description: req.Description,
		Rating:      req.Rating,
		Author:      req.Author,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.CtxError(ctx, "Failed to create meme: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to create meme",
		})
		return
	}

	c.JSON(http.StatusCreated, meme)
}

// GetMeme handles GET /memes/:id.
func (h *MemeHandler) GetMeme(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meme id"})
		return
	}

	meme, err := h.memeService.Get(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "meme not found"})
			return
		}
		logger.CtxError(ctx, "Failed to get meme %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to get meme",
		})
		return
	}

	c.JSON(http.StatusOK, meme)
}

// GetStats handles GET /stats.
func (h *MemeHandler) GetStats(c *gin.Context) {
	ctx := c.Request.Context()

	stats, err := h.memeService.Stats(ctx)
	if err != nil {
		logger.CtxError(ctx, "Failed to get stats: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to get stats",
		})
		return
	}

	c.JSON(http.StatusOK, stats)
}
