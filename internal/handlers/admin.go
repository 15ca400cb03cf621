package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"casino-gateway/internal/models"
	"casino-gateway/internal/services"
)

type AdminHandler struct {
	admin *services.AdminService
}

func NewAdminHandler(admin *services.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// Unlock sits outside the admin gate; everything else in this handler is
// behind it.
func (h *AdminHandler) Unlock(c *gin.Context) {
	principal, sessionID, ok := principalFrom(c)
	if !ok {
		return
	}

	var req models.AdminUnlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := h.admin.Unlock(c.Request.Context(), principal, sessionID, req.Password); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AdminHandler) Lock(c *gin.Context) {
	_, sessionID, ok := principalFrom(c)
	if !ok {
		return
	}

	if err := h.admin.Lock(c.Request.Context(), sessionID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to lock admin mode"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AdminHandler) UpdateSettings(c *gin.Context) {
	principal, _, ok := principalFrom(c)
	if !ok {
		return
	}

	var settings models.CasinoSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := h.admin.UpdateSettings(c.Request.Context(), principal, &settings); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// --- Catalog ---

func (h *AdminHandler) AddCatalogEntry(c *gin.Context) {
	principal, _, ok := principalFrom(c)
	if !ok {
		return
	}

	var entry models.GameCatalogEntry
	if err := c.ShouldBindJSON(&entry); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := h.admin.AddCatalogEntry(c.Request.Context(), principal, &entry); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AdminHandler) UpdateCatalogEntry(c *gin.Context) {
	principal, _, ok := principalFrom(c)
	if !ok {
		return
	}

	var entry models.GameCatalogEntry
	if err := c.ShouldBindJSON(&entry); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := h.admin.UpdateCatalogEntry(c.Request.Context(), principal, c.Param("gameID"), &entry); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AdminHandler) RemoveCatalogEntry(c *gin.Context) {
	principal, _, ok := principalFrom(c)
	if !ok {
		return
	}

	if err := h.admin.RemoveCatalogEntry(c.Request.Context(), principal, c.Param("gameID")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// --- Symbols and presentation ---

func (h *AdminHandler) UpdateSymbolSet(c *gin.Context) {
	principal, _, ok := principalFrom(c)
	if !ok {
		return
	}

	gameType := models.GameType(c.Param("gameType"))
	if !gameType.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown game type"})
		return
	}

	var set models.GameSymbolSet
	if err := c.ShouldBindJSON(&set); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := h.admin.UpdateSymbolSet(c.Request.Context(), principal, gameType, &set); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AdminHandler) UpdateBranding(c *gin.Context) {
	principal, _, ok := principalFrom(c)
	if !ok {
		return
	}

	var branding models.SiteBranding
	if err := c.ShouldBindJSON(&branding); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := h.admin.UpdateBranding(c.Request.Context(), principal, &branding); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AdminHandler) SetTheme(c *gin.Context) {
	principal, _, ok := principalFrom(c)
	if !ok {
		return
	}

	var theme models.ThemeConfig
	if err := c.ShouldBindJSON(&theme); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := h.admin.SetThemeConfig(c.Request.Context(), principal, &theme); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AdminHandler) SetBanner(c *gin.Context) {
	principal, _, ok := principalFrom(c)
	if !ok {
		return
	}

	var banner models.BannerConfig
	if err := c.ShouldBindJSON(&banner); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := h.admin.SetBannerConfig(c.Request.Context(), principal, &banner); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// --- Assets ---

// UploadAsset streams a multipart file through to the ledger's asset
// store. The upload runs to completion once started.
func (h *AdminHandler) UploadAsset(c *gin.Context) {
	principal, _, ok := principalFrom(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing file"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read file"})
		return
	}
	defer file.Close()

	asset := &models.AppAsset{
		AssetID:       models.GenerateAssetID(),
		Name:          c.PostForm("name"),
		Description:   c.PostForm("description"),
		AssetCategory: c.PostForm("category"),
	}
	if asset.Name == "" {
		asset.Name = fileHeader.Filename
	}

	err = h.admin.StoreAsset(c.Request.Context(), principal, asset, file, fileHeader.Size, nil)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"asset":   asset,
	})
}

func (h *AdminHandler) UpdateAsset(c *gin.Context) {
	principal, _, ok := principalFrom(c)
	if !ok {
		return
	}

	var asset models.AppAsset
	if err := c.ShouldBindJSON(&asset); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := h.admin.UpdateAsset(c.Request.Context(), principal, c.Param("assetID"), &asset); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AdminHandler) DeleteAsset(c *gin.Context) {
	principal, _, ok := principalFrom(c)
	if !ok {
		return
	}

	if err := h.admin.DeleteAsset(c.Request.Context(), principal, c.Param("assetID")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
