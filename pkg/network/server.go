package network

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/hearttiles/server/pkg/log"
)

// WSServer serves the websocket endpoint backed by a Hub.
type WSServer struct {
	hub  *Hub
	port int
	tls  *TLSConfig
}

type TLSConfig struct {
	CertFile string
	KeyFile  string
}

type NewWSServerOptions struct {
	Hub  *Hub
	Port int
	TLS  *TLSConfig
}

func NewWSServer(opts NewWSServerOptions) *WSServer {
	return &WSServer{
		hub:  opts.Hub,
		port: opts.Port,
		tls:  opts.TLS,
	}
}

// Start starts the websocket server and blocks until ctx is done or
// the listener fails.
func (s *WSServer) Start(ctx context.Context) {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.hub.ServeWS)

	addr := fmt.Sprintf(":%d", s.port)
	server := &http.Server{Addr: addr, Handler: mux}

	go func() {
		<-ctx.Done()
		server.Shutdown(ctx)
	}()

	var listenAndServe func() error
	if s.tls != nil {
		log.Info("WebSocket server listening on %s with TLS", addr)
		listenAndServe = func() error {
			return server.ListenAndServeTLS(s.tls.CertFile, s.tls.KeyFile)
		}
	} else {
		log.Info("WebSocket server listening on %s", addr)
		listenAndServe = server.ListenAndServe
	}
	if err := listenAndServe(); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			log.Info("WebSocket server closed")
			return
		}
		log.Error("WebSocket server error: %v", err)
	}
}
