package router

import "github.com/gin-gonic/gin"

// Module is one slice of the Yatter API. Name labels it in startup logs.
type Module interface {
	Name() string
	Register(rg *gin.RouterGroup)
}
