package middleware

import (
	"net/http"

	"github.com/gatherly/events-backend-go/internal/domain/auth"
	"github.com/gatherly/events-backend-go/internal/domain/user"
	"github.com/gatherly/events-backend-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

func OrganizerOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		role, ok := claims["role"].(string)
		if !ok || role != string(user.RoleOrganizer) {
			response.HandleError(w, user.ErrOrganizerPrivilegeRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
