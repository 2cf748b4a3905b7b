package httpx

import (
	"encoding/json"
	"net/http"
)

// errorBody is the uniform error envelope every stock endpoint returns.
type errorBody struct {
	Error string `json:"error"`
}

// JSON writes v as a JSON response with the given status. Stock responses
// are small DTOs, so encoding errors after the header is written are
// discarded rather than streamed.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// JSONError writes the {"error": message} envelope used by errhttp and the
// stock handlers.
func JSONError(w http.ResponseWriter, status int, message string) {
	JSON(w, status, errorBody{Error: message})
}

// SafeError returns the message to expose for an error response. In
// production, 5xx details are replaced with the generic status text so
// store or pricing internals never leak to clients; 4xx messages always
// pass through because they describe the caller's own request.
func SafeError(err error, status int, isProduction bool) string {
	if isProduction && status >= http.StatusInternalServerError {
		return http.StatusText(status)
	}
	return err.Error()
}
