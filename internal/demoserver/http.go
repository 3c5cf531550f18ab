package demoserver

import (
	"log"
	"net/http"
)

// Server is the demo tool's HTTP+WebSocket control surface: it drives the
// cofdm core and streams status/progress events over a Server/setupRoutes
// split.
type Server struct {
	mux     *http.ServeMux
	handler *Handlers
	addr    string
}

// NewServer builds a Server bound to addr, routing through handler.
func NewServer(addr string, handler *Handlers) *Server {
	s := &Server{
		mux:     http.NewServeMux(),
		handler: handler,
		addr:    addr,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/transmit", s.handler.HandleTransmit)
	s.mux.HandleFunc("/api/status", s.handler.HandleStatus)
	s.mux.HandleFunc("/ws", s.handler.HandleWebSocket)
}

// Start blocks, serving until the process exits or ListenAndServe errors.
func (s *Server) Start() error {
	log.Printf("demoserver: listening on %s", s.addr)
	return http.ListenAndServe(s.addr, s.mux)
}
