package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/driftchat/drift/internal/adapter/driven/gateway/ws"
	"github.com/driftchat/drift/internal/core/service"
)

type Handler struct {
	Match *service.MatchService
	Hub   *ws.Hub

	log            zerolog.Logger
	allowedOrigins []string
	upgrader       websocket.Upgrader
}

func NewHandler(match *service.MatchService, hub *ws.Hub, log zerolog.Logger, allowedOrigins []string) *Handler {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	h := &Handler{
		Match:          match,
		Hub:            hub,
		log:            log,
		allowedOrigins: allowedOrigins,
	}
	h.upgrader = newUpgrader(allowedOrigins)
	return h
}

func (h *Handler) NewRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: h.allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Get("/stats", h.Stats)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/ws", h.ServeWS)

	fs := http.FileServer(http.Dir("./static"))
	r.Handle("/*", fs)

	return r
}

func (h *Handler) Stats(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int{
		"online":  h.Match.Online(),
		"waiting": h.Match.Waiting(),
	})
}
