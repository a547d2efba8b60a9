package web

import (
	"embed"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed index.html
var assets embed.FS

// Register serves the single-page UI at the root path.
func Register(r *gin.Engine) {
	r.GET("/", serveIndex)
	r.GET("/index.html", serveIndex)
}

func serveIndex(c *gin.Context) {
	data, err := assets.ReadFile("index.html")
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", data)
}
