package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/tiendita/storefront/app/services"
	"github.com/unrolled/render"
)

type errorResponse struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}

// respondError translates the service error taxonomy into HTTP statuses:
// 404 unknown resource, 409 retryable conflict, 422 out of stock / empty
// cart / bad transition, 500 everything else.
func respondError(rnd *render.Render, w http.ResponseWriter, err error) {
	var oos *services.OutOfStockError

	switch {
	case errors.Is(err, services.ErrNotFound):
		_ = rnd.JSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, services.ErrConflict):
		_ = rnd.JSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.As(err, &oos):
		_ = rnd.JSON(w, http.StatusUnprocessableEntity, errorResponse{Error: oos.Error(), Details: map[string]string{
			"variant_id": oos.VariantID,
		}})
	case errors.Is(err, services.ErrEmptyCart), errors.Is(err, services.ErrInvalidStatusTransition):
		_ = rnd.JSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	default:
		log.Printf("internal error: %v", err)
		_ = rnd.JSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

// decodePayload parses the JSON body into dst and validates it; on failure
// it writes the 400 itself and reports false.
func decodePayload(rnd *render.Render, validate *validator.Validate, w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		_ = rnd.JSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return false
	}
	if err := validate.Struct(dst); err != nil {
		var validationErrors validator.ValidationErrors
		details := map[string]string{}
		if errors.As(err, &validationErrors) {
			for _, fieldErr := range validationErrors {
				details[fieldErr.Field()] = fieldErr.Tag()
			}
		}
		_ = rnd.JSON(w, http.StatusBadRequest, errorResponse{Error: "validation failed", Details: details})
		return false
	}
	return true
}
