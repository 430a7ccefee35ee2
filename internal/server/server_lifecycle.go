package server

import (
	"fmt"
	"log"
	"net"
	"net/http"
)

// Start begins listening for connections.
// This method blocks, so call it in a goroutine if you need to do
// other work. For non-blocking startup with error handling, use
// StartAsync() instead.
func (s *Server) Start() error {
	mux := s.createMux()

	s.httpServer = &http.Server{
		Addr:    s.addr,
		Handler: mux,
	}

	log.Printf("server: listening on %s", s.addr)

	// ListenAndServe blocks until the server is stopped or an error
	// occurs. It returns http.ErrServerClosed on graceful shutdown.
	return s.httpServer.ListenAndServe()
}

// StartAsync starts the server in a goroutine and reports startup
// errors. The listener is created first so a port conflict surfaces
// immediately rather than after the caller has printed the connect URL.
//
// The returned channel receives nil if startup succeeded, or an error
// if the listener could not be created.
func (s *Server) StartAsync() <-chan error {
	errCh := make(chan error, 1)

	mux := s.createMux()

	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		errCh <- fmt.Errorf("failed to listen on %s: %w", s.addr, err)
		close(errCh)
		return errCh
	}

	s.httpServer = &http.Server{
		Handler: mux,
	}

	go func() {
		log.Printf("server: listening on %s", s.addr)
		errCh <- nil
		close(errCh)

		if err := s.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			log.Printf("server: serve error: %v", err)
		}
	}()

	return errCh
}

// Stop gracefully shuts down the server.
// Connected clients get a close frame, their connections are torn
// down, and no new connections are accepted.
func (s *Server) Stop() error {
	s.mu.Lock()

	if s.stopped {
		s.mu.Unlock()
		return nil
	}
	s.stopped = true

	// Signal every client; writePump sends the close frame and closes
	// the connection when it sees done.
	for client := range s.clients {
		client.signalClose()
	}
	s.clients = make(map[*Client]bool)

	s.mu.Unlock()

	if s.httpServer != nil {
		return s.httpServer.Close()
	}
	return nil
}
