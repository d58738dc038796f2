package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/partyquiz/hotseat-backend/internal/hub"
	"github.com/partyquiz/hotseat-backend/internal/ws"
)

// SetupRoutes wires the public HTTP surface. publicURL is the externally
// reachable base the QR code embeds.
func SetupRoutes(h *hub.Hub, publicURL string, log *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Post("/rooms", CreateRoom(h))
	r.Get("/rooms/{code}/qr", RoomQR(h, publicURL))
	r.Get("/ws", ws.Handler(h, log))
	r.Get("/healthz", Healthz)
	return r
}
