// internal/adapters/in/http/handlers/helpers.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	uc "onlineshop/internal/application/usecase"
	cartdom "onlineshop/internal/domain/cart"
	orderdom "onlineshop/internal/domain/order"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method_not_allowed"})
}

func notFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found"})
}

// writeErr maps usecase and domain sentinel errors onto HTTP status codes.
func writeErr(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, uc.ErrNotAuthenticated):
		code = http.StatusUnauthorized
	case errors.Is(err, uc.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, uc.ErrMinQuantity):
		code = http.StatusUnprocessableEntity
	case errors.Is(err, uc.ErrInvalidArgument),
		errors.Is(err, cartdom.ErrInvalidLine),
		isOrderValidation(err):
		code = http.StatusBadRequest
	case errors.Is(err, orderdom.ErrCancelWindowClosed),
		errors.Is(err, orderdom.ErrIllegalTransition):
		code = http.StatusConflict
	}
	writeJSON(w, code, map[string]string{"error": err.Error()})
}

var orderValidationErrs = []error{
	orderdom.ErrInvalidID,
	orderdom.ErrInvalidUserID,
	orderdom.ErrInvalidTimestamp,
	orderdom.ErrInvalidStatus,
	orderdom.ErrInvalidTotalPrice,
	orderdom.ErrInvalidPayment,
	orderdom.ErrInvalidItems,
	orderdom.ErrInvalidItemSnapshot,
}

func isOrderValidation(err error) bool {
	for _, sentinel := range orderValidationErrs {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// sseWriter prepares a response for server-sent events. The returned send
// function writes one "data:" frame per call and flushes immediately.
func sseWriter(w http.ResponseWriter) (send func(v any) error, ok bool) {
	flusher, canFlush := w.(http.Flusher)
	if !canFlush {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return nil, false
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	return func(v any) error {
		payload, err := json.Marshal(v)
		if err != nil {
			return err
		}
		if _, err := w.Write([]byte("data: ")); err != nil {
			return err
		}
		if _, err := w.Write(payload); err != nil {
			return err
		}
		if _, err := w.Write([]byte("\n\n")); err != nil {
			return err
		}
		flusher.Flush()
		return nil
	}, true
}
