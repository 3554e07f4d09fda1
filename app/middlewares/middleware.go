package middlewares

import (
	"context"
	"log"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/prabeshkharel/earnkart/app/helpers"
	"github.com/prabeshkharel/earnkart/app/models"
	"github.com/prabeshkharel/earnkart/app/repositories"
)

const (
	AuthSessionName = "earnkart-auth"
	authUserIDKey   = "user_id"
)

// SetAuthenticatedUser writes the user into the auth session after login.
func SetAuthenticatedUser(store sessions.Store, w http.ResponseWriter, r *http.Request, userID string) error {
	session, err := store.Get(r, AuthSessionName)
	if err != nil {
		return err
	}
	session.Values[authUserIDKey] = userID
	return session.Save(r, w)
}

// ClearAuthenticatedUser drops the auth session on logout.
func ClearAuthenticatedUser(store sessions.Store, w http.ResponseWriter, r *http.Request) error {
	session, err := store.Get(r, AuthSessionName)
	if err != nil {
		return err
	}
	delete(session.Values, authUserIDKey)
	session.Options.MaxAge = -1
	return session.Save(r, w)
}

// AuthMiddleware resolves the session user and puts the ID on the request
// context. Requests without a valid session are redirected to login.
func AuthMiddleware(store sessions.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := store.Get(r, AuthSessionName)
			if err != nil {
				log.Printf("AuthMiddleware: failed to read session: %v", err)
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			userID, ok := session.Values[authUserIDKey].(string)
			if !ok || userID == "" {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			ctx := context.WithValue(r.Context(), helpers.ContextKeyUserID, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminMiddleware additionally requires the session user to hold the admin
// role. Runs after AuthMiddleware.
func AdminMiddleware(userRepo repositories.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, _ := helpers.UserIDFromContext(r.Context())
			user, err := userRepo.FindByID(r.Context(), userID)
			if err != nil || user == nil {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			if user.Role != models.RoleAdmin {
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}
			ctx := context.WithValue(r.Context(), helpers.ContextKeyUser, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
