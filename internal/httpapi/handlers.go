package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/partyquiz/hotseat-backend/internal/hub"
	"github.com/partyquiz/hotseat-backend/internal/lobby"
)

type createRoomRequest struct {
	Username string `json:"username"`
}

type createRoomResponse struct {
	Code string `json:"code"`
}

type failureResponse struct {
	Reason string `json:"reason"`
}

// CreateRoom spins up a fresh room and returns its join code. The creator
// names themselves here and then connects over /ws with the same username.
func CreateRoom(h *hub.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createRoomRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil ||
			strings.TrimSpace(req.Username) == "" {
			writeJSON(w, http.StatusBadRequest, failureResponse{Reason: "Invalid data"})
			return
		}

		reply := make(chan hub.Created, 1)
		h.Inbox() <- hub.CreateRoom{Reply: reply}
		created := <-reply

		writeJSON(w, http.StatusCreated, createRoomResponse{Code: created.Code})
	}
}

// RoomQR renders a PNG QR code pointing phones at the room's join page.
func RoomQR(h *hub.Hub, publicURL string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := chi.URLParam(r, "code")

		reply := make(chan *lobby.Lobby, 1)
		h.Inbox() <- hub.GetRoom{Code: code, Reply: reply}
		if <-reply == nil {
			http.Error(w, "room not found", http.StatusNotFound)
			return
		}

		joinURL := fmt.Sprintf("%s/join/%s", publicURL, code)
		png, err := qrcode.Encode(joinURL, qrcode.Medium, 256)
		if err != nil {
			http.Error(w, "failed to render qr", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(png)
	}
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
