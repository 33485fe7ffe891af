// Package assets serves the stylesheet the page layouts link to.
package assets

import (
	"embed"
	"io/fs"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/skilltreedocs/skilltreedocs/pkg/errors"
	"github.com/skilltreedocs/skilltreedocs/pkg/logger"
)

// URLPrefix is where the layouts expect static files.
const URLPrefix = "/static"

//go:embed static/*
var staticFS embed.FS

// Embedded returns the built-in static files.
func Embedded() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// RegisterRoutes serves dir under URLPrefix, or the embedded files when dir
// is empty or missing. Unmatched routes get a JSON 404.
func RegisterRoutes(r *gin.Engine, dir string) {
	if dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			r.Static(URLPrefix, dir)
			logger.Debug("Serving static files from disk", zap.String("dir", dir))
		} else {
			logger.Warn("Static directory not found, using embedded files", zap.String("dir", dir))
			dir = ""
		}
	}
	if dir == "" {
		r.StaticFS(URLPrefix, http.FS(Embedded()))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"code":    errors.ErrCodeNotFound,
			"message": "Resource not found",
		})
	})
}

// HasEmbeddedAssets reports whether any static file was embedded.
func HasEmbeddedAssets() bool {
	entries, err := staticFS.ReadDir("static")
	if err != nil {
		return false
	}
	return len(entries) > 0
}
