// Package server provides the HTTP REST API for the CV builder.
package server

import (
	"net/http"

	"github.com/jonathan/cv-builder/internal/record"
	"github.com/jonathan/cv-builder/internal/render"
	"github.com/jonathan/cv-builder/internal/schemas"
	"github.com/jonathan/cv-builder/internal/session"
)

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	switch err.(type) {
	case *session.NotFoundError:
		return http.StatusNotFound
	case *session.StageError:
		return http.StatusConflict
	case *session.ExternalCallError:
		return http.StatusBadGateway
	case *record.ValidationError, *record.ParseError, *schemas.ValidationError:
		return http.StatusUnprocessableEntity
	case *render.UnknownTemplateError:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
