package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"casino-gateway/internal/models"
	"casino-gateway/internal/services"
)

// ContentHandler serves the public presentation surface: game catalog,
// symbol sets, settings and branding. None of it requires a session.
type ContentHandler struct {
	content *services.ContentService
}

func NewContentHandler(content *services.ContentService) *ContentHandler {
	return &ContentHandler{content: content}
}

func (h *ContentHandler) GetCatalog(c *gin.Context) {
	entries, err := h.content.Catalog(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"games":   entries,
	})
}

func (h *ContentHandler) GetCatalogEntry(c *gin.Context) {
	entry, err := h.content.CatalogEntry(c.Request.Context(), c.Param("gameID"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"game":    entry,
	})
}

func (h *ContentHandler) GetSymbolSet(c *gin.Context) {
	gameType := models.GameType(c.Param("gameType"))
	if !gameType.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown game type"})
		return
	}

	set, err := h.content.SymbolSet(c.Request.Context(), gameType)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"symbols": set,
	})
}

func (h *ContentHandler) GetSettings(c *gin.Context) {
	settings, err := h.content.Settings(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"settings": settings,
	})
}

func (h *ContentHandler) GetBranding(c *gin.Context) {
	branding, err := h.content.Branding(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"branding": branding,
	})
}

func (h *ContentHandler) GetTheme(c *gin.Context) {
	theme, err := h.content.ThemeConfig(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"theme":   theme,
	})
}

func (h *ContentHandler) GetBanner(c *gin.Context) {
	banner, err := h.content.BannerConfig(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"banner":  banner,
	})
}
