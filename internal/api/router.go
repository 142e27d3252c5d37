package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/grest/greenspace-server/internal/api/recovery"
	respond "github.com/grest/greenspace-server/internal/api/respond"
	"github.com/grest/greenspace-server/internal/services"
	"github.com/grest/greenspace-server/internal/vegetation"
)

// SearchPusher broadcasts a search query to every attached map surface.
type SearchPusher interface {
	PushSearch(query string) error
}

// NewRouter wires all HTTP routes. watchHandler serves the websocket
// surface attachment; it shares the same point service so mutations it
// performs fan out like any other.
func NewRouter(svc *services.PointService, sender ChatSender, veg *vegetation.Service, watchHandler http.Handler, pusher SearchPusher) *mux.Router {
	router := mux.NewRouter()

	router.Use(recovery.Middleware)

	healthHandler := NewHealthHandler()
	pointHandler := NewPointHandler(svc)
	chatHandler := NewChatHandler(sender)
	vegetationHandler := NewVegetationHandler(veg)

	router.HandleFunc("/api/health", healthHandler.CheckHealth).Methods("GET")

	router.HandleFunc("/api/points", pointHandler.ListPoints).Methods("GET")
	router.HandleFunc("/api/points", pointHandler.CreatePoint).Methods("POST")
	router.HandleFunc("/api/points/defaults", pointHandler.GetDefaults).Methods("GET")
	router.HandleFunc("/api/points/search", pushSearchHandler(pusher)).Methods("POST")
	router.Handle("/api/points/watch", watchHandler).Methods("GET")
	router.HandleFunc("/api/points/{pointId}", pointHandler.GetPoint).Methods("GET")
	router.HandleFunc("/api/points/{pointId}", pointHandler.UpdatePoint).Methods("PATCH")
	router.HandleFunc("/api/points/{pointId}", pointHandler.DeletePoint).Methods("DELETE")

	router.HandleFunc("/api/chat", chatHandler.SendMessage).Methods("POST")
	router.HandleFunc("/api/vegetation", vegetationHandler.GetSummary).Methods("GET")

	return router
}

// pushSearchHandler POST /api/points/search
// Relays a query to the attached web map surfaces; they filter locally.
func pushSearchHandler(pusher SearchPusher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Query string `json:"query"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.WriteBadRequest(w, "Invalid JSON")
			return
		}
		if err := pusher.PushSearch(req.Query); err != nil {
			respond.WriteInternalError(w, err.Error())
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
