package i

import "github.com/gin-gonic/gin"

// Controller registers a related group of routes on the router.
type Controller interface {
	Register(route *gin.RouterGroup)
}
