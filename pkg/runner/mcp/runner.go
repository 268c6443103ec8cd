package mcp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"tableflip.dev/mindgrid/pkg/app"
)

// Transport names how the MCP server is exposed.
type Transport string

const (
	// TransportHTTP serves MCP via the streamable HTTP transport.
	TransportHTTP Transport = "http"
	// TransportStdio serves MCP over stdio.
	TransportStdio Transport = "stdio"
)

// Runner wires an app.Service into an MCP server and serves it.
type Runner struct {
	Service *app.Service
	Name    string
	Version string
	Log     *zap.Logger

	Transport        Transport
	HTTPListenAddr   string
	HTTPEndpointPath string
	OnHTTPListening  func(net.Addr)
	HTTPServerCert   string
	HTTPServerKey    string
	// AllowedOrigins enables CORS for browser based clients when set.
	AllowedOrigins []string
}

// Do builds the MCP server and serves it until ctx ends or the transport
// fails.
func (r Runner) Do(ctx context.Context) error {
	if r.Service == nil {
		return errors.New("mcp: runner has no service")
	}
	srv := r.newServer(orDefault(r.Name, "mindgrid"), orDefault(r.Version, "dev"))

	switch r.Transport {
	case TransportStdio:
		return server.ServeStdio(srv)
	case "", TransportHTTP:
		return r.serveHTTP(ctx, srv)
	}
	return fmt.Errorf("mcp: unknown transport %q", r.Transport)
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v == "" {
		return def
	}
	return v
}

func (r Runner) newServer(name, version string) *server.MCPServer {
	srv := server.NewMCPServer(
		fmt.Sprintf("%s MCP", name),
		version,
		server.WithResourceCapabilities(false, false),
		server.WithToolCapabilities(false),
		server.WithInstructions("Read and change MindGrid tasks, habits, goals, notes, events, highlights and finances, and read analytics."),
		server.WithResourceRecovery(),
		server.WithRecovery(),
	)

	svc := NewService(r.Service)
	registerResources(srv, svc)
	registerTools(srv, svc)
	return srv
}

func (r Runner) logger() *zap.Logger {
	if r.Log == nil {
		return zap.NewNop()
	}
	return r.Log
}

// Router mounts the streamable MCP handler at path next to a health check.
func (r Runner) Router(handler http.Handler, path string) http.Handler {
	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.Recoverer)
	router.Use(requestLogger(r.logger()))
	if len(r.AllowedOrigins) > 0 {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins: r.AllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "Mcp-Session-Id", "Mcp-Protocol-Version"},
			ExposedHeaders: []string{"Mcp-Session-Id"},
			MaxAge:         300,
		}))
	}

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("ok"))
	})
	router.Handle(path, handler)
	return router
}

func requestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, req.ProtoMajor)
			next.ServeHTTP(ww, req)
			log.Debug("mcp request",
				zap.String("method", req.Method),
				zap.String("path", req.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)),
				zap.String("requestID", chimiddleware.GetReqID(req.Context())),
			)
		})
	}
}

func (r Runner) serveHTTP(ctx context.Context, srv *server.MCPServer) error {
	useTLS := r.HTTPServerCert != "" || r.HTTPServerKey != ""
	if useTLS && (r.HTTPServerCert == "" || r.HTTPServerKey == "") {
		return errors.New("mcp: tls needs both a certificate and a key")
	}

	path := "/" + strings.TrimLeft(orDefault(r.HTTPEndpointPath, "/mcp"), "/")
	ln, err := net.Listen("tcp", orDefault(r.HTTPListenAddr, "127.0.0.1:8080"))
	if err != nil {
		return fmt.Errorf("mcp: listen: %w", err)
	}
	if r.OnHTTPListening != nil {
		r.OnHTTPListening(ln.Addr())
	}
	r.logger().Info("mcp listening", zap.Stringer("addr", ln.Addr()), zap.String("path", path), zap.Bool("tls", useTLS))

	httpSrv := &http.Server{
		Handler:           r.Router(server.NewStreamableHTTPServer(srv), path),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if useTLS {
			err = httpSrv.ServeTLS(ln, r.HTTPServerCert, r.HTTPServerKey)
		} else {
			err = httpSrv.Serve(ln)
		}
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
