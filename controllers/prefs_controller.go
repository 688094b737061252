package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	errs "github.com/emekaobi/storefront-backend/common/errors"
	"github.com/emekaobi/storefront-backend/prefs"
)

type PrefsController struct {
	Store *prefs.Store
}

func NewPrefsController(store *prefs.Store) *PrefsController {
	return &PrefsController{Store: store}
}

// GetTheme returns the current UI theme
func (pc *PrefsController) GetTheme(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"theme": pc.Store.Theme()})
}

// SetTheme switches the UI theme
func (pc *PrefsController) SetTheme(c *gin.Context) {
	var req struct {
		Theme prefs.Theme `json:"theme"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(errs.Wrap(errs.ErrInvalidInput, err))
		return
	}
	if req.Theme != prefs.ThemeLight && req.Theme != prefs.ThemeDark {
		_ = c.Error(errs.New(http.StatusBadRequest, "theme must be light or dark", nil))
		return
	}

	pc.Store.SetTheme(req.Theme)
	c.JSON(http.StatusOK, gin.H{"theme": pc.Store.Theme()})
}
