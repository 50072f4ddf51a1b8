package web

import (
	"context"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/mogaika/scenegraph/logging"
)

const shutdownTimeout = 5 * time.Second

func NewRouter(i *Inspector) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/json/scene", i.HandlerJsonScene).Methods(http.MethodGet)
	r.HandleFunc("/json/scene/{node}", i.HandlerJsonNode).Methods(http.MethodGet)
	r.HandleFunc("/json/frame", i.HandlerJsonFrame).Methods(http.MethodGet)
	r.HandleFunc("/export/scene.{format:glb|gltf|fbx}", i.HandlerExportScene).Methods(http.MethodGet)
	r.HandleFunc("/dump/scene", i.HandlerDumpScene).Methods(http.MethodGet)
	r.HandleFunc("/ws/frames", i.HandlerWsFrames)
	return r
}

// StartServer listens on addr and serves the inspector until ctx is done.
func StartServer(ctx context.Context, addr string, i *Inspector) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Wrapf(err, "Failed to listen on %q", addr)
	}
	return Serve(ctx, l, i)
}

// Serve serves the inspector on l. Cancelling ctx shuts the server down
// gracefully and Serve returns nil.
func Serve(ctx context.Context, l net.Listener, i *Inspector) error {
	var h http.Handler = handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(NewRouter(i))
	// stdout is reserved for dumps and frame reports
	h = handlers.LoggingHandler(os.Stderr, h)

	srv := &http.Server{
		Handler:     h,
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	log := logging.From(ctx).Named("web")
	log.Info("Starting server", zap.Stringer("addr", l.Addr()))

	stop := make(chan struct{})
	defer close(stop)
	shutdown := make(chan error, 1)
	go func() {
		select {
		case <-ctx.Done():
			sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			shutdown <- srv.Shutdown(sctx)
		case <-stop:
		}
	}()

	err := srv.Serve(l)
	if !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrapf(err, "Server failed")
	}
	if err := <-shutdown; err != nil {
		return errors.Wrapf(err, "Failed to shut down server")
	}
	log.Info("Server stopped")
	return nil
}
