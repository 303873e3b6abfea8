package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/foodiego/services"
	"github.com/yeremiapane/foodiego/utils"
)

// errorStatus maps the action error kinds to HTTP statuses. Order matters
// only for readability; the kinds are distinct values.
var errorStatus = []struct {
	kind   error
	status int
}{
	{services.ErrInvalidFields, http.StatusBadRequest},
	{services.ErrInvalidAmount, http.StatusBadRequest},
	{services.ErrNoFile, http.StatusBadRequest},
	{services.ErrNotImage, http.StatusBadRequest},
	{services.ErrUnauthorized, http.StatusUnauthorized},
	{services.ErrInvalidCredentials, http.StatusUnauthorized},
	{services.ErrForbidden, http.StatusForbidden},
	{services.ErrNotFound, http.StatusNotFound},
	{services.ErrEmailExists, http.StatusConflict},
	{services.ErrPaymentFailed, http.StatusInternalServerError},
	{services.ErrUploadFailed, http.StatusInternalServerError},
}

// publicError resolves err to its status and the message callers may see.
// Unknown errors become a generic 500.
func publicError(err error) (int, string) {
	for _, e := range errorStatus {
		if errors.Is(err, e.kind) {
			return e.status, e.kind.Error()
		}
	}
	return http.StatusInternalServerError, services.ErrSomethingWentWrong.Error()
}

// respondActionError answers with the action-result shape {error}.
func respondActionError(c *gin.Context, err error) {
	status, message := publicError(err)
	c.JSON(status, services.ActionResult{Error: message})
}

// respondResult writes an action result with the status derived from its kind.
func respondResult(c *gin.Context, result services.ActionResult, successStatus int) {
	if result.OK() {
		c.JSON(successStatus, result)
		return
	}
	status, _ := publicError(result.Kind())
	c.JSON(status, result)
}

// bindJSON decodes the request body; malformed bodies answer Invalid fields.
func bindJSON(c *gin.Context, v interface{}) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		respondActionError(c, services.ErrInvalidFields)
		return false
	}
	return true
}

// paramID parses a positive numeric path parameter.
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		respondActionError(c, services.ErrInvalidFields)
		return 0, false
	}
	return uint(id), true
}

// respondEnvelopeError answers a read endpoint failure in the envelope shape.
func respondEnvelopeError(c *gin.Context, err error) {
	status, message := publicError(err)
	if status == http.StatusInternalServerError {
		utils.ErrorLogger.WithError(err).WithField("path", c.FullPath()).Error("Request failed")
	}
	c.JSON(status, utils.JSONResponse{Status: false, Message: message})
}
