package main

import (
	"log"
	"net/http"
	"os"
	"strings"

	"seventeen-lite/internal/auth"
	"seventeen-lite/internal/gateway"
	"seventeen-lite/internal/history"
	"seventeen-lite/internal/lobby"
)

func main() {
	authService, authMode, err := auth.NewServiceFromEnv()
	if err != nil {
		log.Fatalf("[Server] Failed to init auth service: %v", err)
	}
	defer authService.Close()
	historyService, historyMode, err := history.NewServiceFromEnv(authMode)
	if err != nil {
		log.Fatalf("[Server] Failed to init history service: %v", err)
	}
	defer historyService.Close()

	lby := lobby.New()
	defer lby.Shutdown()
	gw := gateway.New(authService, lby, historyService)
	authHTTP := auth.NewHTTPHandler(authService)
	historyHTTP := history.NewHTTPHandler(authService, historyService)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", gw.HandleWebSocket)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	authHTTP.RegisterRoutes(mux)
	historyHTTP.RegisterRoutes(mux)

	addr := listenAddr()
	log.Printf("[Server] Auth mode: %s", authMode)
	log.Printf("[Server] History mode: %s", historyMode)
	log.Printf("[Server] Starting WebSocket server on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("[Server] Failed to start: %v", err)
	}
}

func listenAddr() string {
	if v := strings.TrimSpace(os.Getenv("LISTEN_ADDR")); v != "" {
		return v
	}
	return ":8080"
}
