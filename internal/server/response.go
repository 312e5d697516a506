package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/recipebook/internal/apperrors"
	"github.com/skillsenselab/recipebook/internal/logger"
)

// StatusResponse is the body for operations that report an outcome rather
// than a resource (login, and every error).
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Error writes the structured error response for err. Anything that is not
// an AppError collapses to a generic 500; internal causes are logged
// server-side and never serialized.
func Error(c *gin.Context, err error) {
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		appErr = apperrors.Internal(err)
	}

	if appErr.HTTPStatus >= http.StatusInternalServerError {
		logger.WithComponent("http").WithError(appErr).Error("Request failed", map[string]interface{}{
			"code":   string(appErr.Code),
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	}

	c.JSON(appErr.HTTPStatus, appErr.ToResponse())
}

// OK sends a 200 response with the given body.
func OK(c *gin.Context, body any) {
	c.JSON(http.StatusOK, body)
}

// Created sends a 201 response with the given body.
func Created(c *gin.Context, body any) {
	c.JSON(http.StatusCreated, body)
}

// NoContent sends a 204 with no body.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Success sends a 200 with a {status:"success", message} body.
func Success(c *gin.Context, message string) {
	c.JSON(http.StatusOK, StatusResponse{Status: "success", Message: message})
}
