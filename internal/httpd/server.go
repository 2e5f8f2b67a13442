// Package httpd exposes the entity services over HTTP and hosts the
// realtime sync endpoint. Each route maps 1:1 onto a service operation;
// the core packages stay transport-agnostic.
package httpd

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/jacentio/sceneforge/stream"
	"github.com/jacentio/sceneforge/svc"
)

// Server wires the services to their routes.
type Server struct {
	projects    *svc.ProjectService
	users       *svc.UserService
	tokens      *svc.TokenIssuer
	broadcaster *stream.Broadcaster
	logger      *slog.Logger
	upgrader    websocket.Upgrader
}

// New creates the HTTP server surface.
func New(projects *svc.ProjectService, users *svc.UserService, tokens *svc.TokenIssuer, broadcaster *stream.Broadcaster, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		projects:    projects,
		users:       users,
		tokens:      tokens,
		broadcaster: broadcaster,
		logger:      logger,
		upgrader: websocket.Upgrader{
			// The editor frontend is served from its own origin.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Handler returns the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /projects", s.requireAuth(s.listProjects))
	mux.HandleFunc("GET /projects/{id}", s.requireAuth(s.getProject))
	mux.HandleFunc("POST /projects", s.requireAuth(s.createProject))
	mux.HandleFunc("PATCH /projects/{id}", s.requireAuth(s.updateProject))
	mux.HandleFunc("DELETE /projects/{id}", s.requireAuth(s.deleteProject))

	mux.HandleFunc("POST /users/register", s.register)
	mux.HandleFunc("POST /users/login", s.login)
	mux.HandleFunc("GET /users", s.requireAuth(s.listUsers))
	mux.HandleFunc("GET /users/{id}", s.requireAuth(s.getUser))
	mux.HandleFunc("PATCH /users/{id}", s.requireAuth(s.updateUser))
	mux.HandleFunc("DELETE /users/{id}", s.requireAuth(s.deleteUser))

	mux.HandleFunc("GET /sync", s.sync)

	return mux
}

// sync upgrades the connection and attaches it to the broadcaster until the
// client goes away.
func (s *Server) sync(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the failure response.
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	sub := stream.NewSubscriber(conn)
	s.broadcaster.Attach(sub)
	defer func() {
		s.broadcaster.Detach(sub)
		sub.Close()
	}()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Clients never send payloads; the read loop only notices disconnects.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	_ = sub.Run(ctx)
}
