//go:build !js

package sources

import (
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sambuaneesh/why-py/logs"
)

// Host serves interpreter modules as static files for browser playgrounds.
type Host struct {
	engine   *gin.Engine
	fsys     fs.FS
	manifest Manifest
}

func NewHost(fsys fs.FS, manifest Manifest, logger logs.Logger) *Host {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowHeaders:    []string{"Origin", "Accept", "Cache-Control"},
		MaxAge:          12 * time.Hour,
	}))
	engine.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("serve",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	})

	host := &Host{
		engine:   engine,
		fsys:     fsys,
		manifest: manifest,
	}
	engine.GET("/manifest", host.serveManifest)
	engine.GET("/interpreter/:file", host.serveModule)
	engine.HEAD("/interpreter/:file", host.serveModule)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return host
}

func (h *Host) Handler() http.Handler {
	return h.engine
}

func (h *Host) serveManifest(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"modules": h.manifest,
		"ext":     Ext,
	})
}

func (h *Host) serveModule(c *gin.Context) {
	file := path.Clean(c.Param("file"))
	name, ok := strings.CutSuffix(file, Ext)
	if !ok || !h.manifest.Contains(name) {
		c.String(http.StatusNotFound, "no such module: %s", file)
		return
	}
	content, err := fs.ReadFile(h.fsys, file)
	if err != nil {
		c.String(http.StatusNotFound, "no such module: %s", file)
		return
	}
	c.Data(http.StatusOK, "text/plain; charset=utf-8", content)
}
