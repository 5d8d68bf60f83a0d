package api

import (
	"embed"
	"io/fs"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
)

//go:embed dist
var embeddedDist embed.FS

// staticAssets exposes the embedded dist/ tree rooted at dist/, matching
// the layout a browser request path expects.
func staticAssets() fs.FS {
	sub, err := fs.Sub(embeddedDist, "dist")
	if err != nil {
		panic(err)
	}
	return sub
}

// staticHandler serves the embedded single-page-app bundle: a request for a
// path with a file extension must match an embedded asset exactly (404
// otherwise); a request without an extension falls back to index.html so
// client-side routing works. Paths containing ".." are rejected outright
// (spec §4.5).
func staticHandler(assets fs.FS) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqPath := strings.TrimPrefix(c.Request.URL.Path, "/")
		if reqPath == "" {
			reqPath = "index.html"
		}

		if strings.Contains(reqPath, "..") {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}

		data, err := fs.ReadFile(assets, reqPath)
		if err != nil {
			if path.Ext(reqPath) != "" {
				c.AbortWithStatus(http.StatusNotFound)
				return
			}
			// No extension: fall back to the SPA shell.
			data, err = fs.ReadFile(assets, "index.html")
			if err != nil {
				c.AbortWithStatus(http.StatusNotFound)
				return
			}
			reqPath = "index.html"
		}

		contentType := mime.TypeByExtension(path.Ext(reqPath))
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		c.Data(http.StatusOK, contentType, data)
	}
}
