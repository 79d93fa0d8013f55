// Package controllers holds the HTTP handlers. Controllers stay thin:
// decode the request, call a service, translate the result into the
// shared JSON envelope.
package controllers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/pehnava/pehnava/app/services"
	"github.com/pehnava/pehnava/pkg/logger"
	"github.com/pehnava/pehnava/pkg/middleware"
	"github.com/pehnava/pehnava/pkg/response"
)

// currentUserID extracts the authenticated caller's ObjectID.
func currentUserID(r *http.Request) (primitive.ObjectID, bool) {
	hex, ok := middleware.UserIDFromCtx(r)
	if !ok {
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}

// objectIDParam parses a URL parameter as an ObjectID.
func objectIDParam(r *http.Request, name string) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(chi.URLParam(r, name))
}

// writeServiceError maps service-layer sentinels onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		response.NotFound(w)
	case errors.Is(err, services.ErrForbidden):
		response.Forbidden(w)
	case errors.Is(err, services.ErrUnauthorized):
		response.Unauthorized(w)
	case errors.Is(err, services.ErrValidation):
		response.Error(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, services.ErrConflict):
		response.Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrSynthesisBusy):
		response.Error(w, http.StatusTooManyRequests, "Try-on service is busy, retry shortly")
	case errors.Is(err, services.ErrSynthesisDisabled):
		response.Error(w, http.StatusServiceUnavailable, "Try-on synthesis is not available")
	default:
		logger.WithCtx(r.Context()).Error("unhandled service error", "error", err)
		response.Error(w, http.StatusInternalServerError, "Internal server error")
	}
}
