package httpresp

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the success shape every endpoint returns; errors use
// httperr.HTTPError instead.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

type ListResponse[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}

func OK(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, Envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func Created(c *gin.Context, message string, data any) {
	c.JSON(http.StatusCreated, Envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func List[T any](c *gin.Context, message string, data []T) {
	c.JSON(http.StatusOK, Envelope{
		Success: true,
		Message: message,
		Data: ListResponse[T]{
			Data:  data,
			Total: len(data),
		},
	})
}
