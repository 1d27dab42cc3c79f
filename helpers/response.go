package helpers

import (
	"github.com/gin-gonic/gin"
)

// Response is the success envelope every endpoint returns.
type Response struct {
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

// ErrorResponse is the failure envelope.
type ErrorResponse struct {
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message"`
	Errors     []string `json:"errors"`
	Success    bool     `json:"success"`
}

// Respond writes a success envelope.
func Respond(c *gin.Context, status int, data any, message string) {
	c.JSON(status, Response{
		StatusCode: status,
		Data:       data,
		Message:    message,
		Success:    status < 400,
	})
}

// RespondError writes the failure envelope for an APIError and aborts the chain.
func RespondError(c *gin.Context, apiErr *APIError) {
	errs := apiErr.Errors
	if errs == nil {
		errs = []string{}
	}
	c.AbortWithStatusJSON(apiErr.Status, ErrorResponse{
		StatusCode: apiErr.Status,
		Message:    apiErr.Message,
		Errors:     errs,
		Success:    false,
	})
}
