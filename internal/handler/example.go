package handler

import (
	"net/http"

	"github.com/authgate/authgate-go/internal/middleware"
)

// HandleExample handles GET /api/example, a demonstration route that is only
// reachable through the Bearer-token gate.
func HandleExample(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "This is a protected route",
		"user_id": userID,
	})
}
