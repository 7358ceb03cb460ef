package http

import (
	"database/sql"
	"net/http"

	"github.com/gorilla/mux"

	"stellarion-backend/internal/domain"
)

type Handlers struct {
	Applications  *ApplicationHandler
	RoleRequests  *RoleRequestHandler
	Users         *UserHandler
	Notifications *NotificationHandler
}

// NewRouter wires the full HTTP surface. Authenticated routes sit behind
// the verify-then-reconcile middleware; reviewer routes additionally gate
// on the Reviewers role set.
func NewRouter(h Handlers, authMW *AuthMiddleware, db *sql.DB) *mux.Router {
	r := mux.NewRouter()
	r.Use(RequestLog)

	r.HandleFunc("/healthz", healthHandler(db)).Methods("GET")

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(authMW.Authenticate)

	api.HandleFunc("/applications", h.Applications.Submit).Methods("POST")
	api.HandleFunc("/applications", h.Applications.ListOwn).Methods("GET")
	api.HandleFunc("/applications/{id:[0-9]+}", h.Applications.Get).Methods("GET")
	api.HandleFunc("/applications/{id:[0-9]+}", h.Applications.Edit).Methods("PUT")
	api.HandleFunc("/applications/{id:[0-9]+}", h.Applications.Delete).Methods("DELETE")

	api.HandleFunc("/role-requests", h.RoleRequests.Submit).Methods("POST")
	api.HandleFunc("/role-requests", h.RoleRequests.ListOwn).Methods("GET")

	api.HandleFunc("/profile", h.Users.GetProfile).Methods("GET")
	api.HandleFunc("/profile", h.Users.UpdateProfile).Methods("PUT")
	api.HandleFunc("/profile", h.Users.Deactivate).Methods("DELETE")

	api.HandleFunc("/notifications", h.Notifications.List).Methods("GET")
	api.HandleFunc("/notifications/{id:[0-9]+}/read", h.Notifications.MarkAsRead).Methods("PUT")

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(RequireRoles(domain.Reviewers))

	admin.HandleFunc("/applications", h.Applications.ListAll).Methods("GET")
	admin.HandleFunc("/applications/{id:[0-9]+}/status", h.Applications.Review).Methods("PUT")
	admin.HandleFunc("/role-requests", h.RoleRequests.ListAll).Methods("GET")
	admin.HandleFunc("/role-requests/{id:[0-9]+}/review", h.RoleRequests.Review).Methods("PUT")

	return r
}

func healthHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, envelope{Error: "database unreachable"})
			return
		}
		writeMessage(w, http.StatusOK, "ok")
	}
}
