// Package pages serves the static HTML views. The pages themselves are
// an external collaborator; this handler only maps routes to files.
package pages

import (
	"path/filepath"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	viewsDir string
}

func NewHandler(viewsDir string) *Handler {
	return &Handler{viewsDir: viewsDir}
}

func (h *Handler) RegisterRoutes(r *gin.Engine, requireSession gin.HandlerFunc) {
	r.GET("/", h.page("home.html"))
	r.GET("/login", h.page("login.html"))
	r.GET("/register", h.page("register.html"))

	r.GET("/book", requireSession, h.page("book.html"))
	r.GET("/manage", requireSession, h.page("manage.html"))
}

func (h *Handler) page(name string) gin.HandlerFunc {
	path := filepath.Join(h.viewsDir, name)
	return func(c *gin.Context) {
		c.File(path)
	}
}
