package admin

import "github.com/blogicum-next/internal/provider"

// Handler serves the admin panel API.
type Handler struct {
	*provider.Container
}

// New creates the admin handler.
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
