package api

import (
	"github.com/EnspikondPlus/neophytic-rooms-purple-base/api/i"
	"github.com/gin-gonic/gin"
)

// Router manages the HTTP server and its dependencies.
type Router struct {
	addr        string
	ginMode     string
	controllers []i.Controller
}

// Config holds configuration settings for creating a new Router instance.
type Config struct {
	Addr        string // Address to listen on
	GinMode     string // Mode for the Gin framework (e.g., release, debug, test)
	Controllers []i.Controller
}

// NewRouter creates a new Router instance with the given configuration.
func NewRouter(config Config) *Router {
	return &Router{
		addr:        config.Addr,
		ginMode:     config.GinMode,
		controllers: config.Controllers,
	}
}

// Run starts the HTTP server with all controllers registered at the root.
//
// The A2A protocol fixes the route layout: the agent card is discovered at
// /.well-known/agent.json and the JSON-RPC endpoint lives at the advertised
// root URL, so no versioned base path is used.
func (r *Router) Run() error {
	if r.ginMode != "" {
		gin.SetMode(r.ginMode)
	}
	gin.ForceConsoleColor()
	router := gin.Default()

	root := router.Group("/")
	{
		for _, c := range r.controllers {
			c.Register(root)
		}
	}

	return router.Run(r.addr)
}
