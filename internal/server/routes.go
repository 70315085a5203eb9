package server

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gorilla/mux"
)

//go:embed static
var staticFS embed.FS

type RouterOptions struct {
	StaticDir   string // empty serves the embedded assets
	CORSOrigins []string
}

func staticHandler(dir string) http.Handler {
	if dir != "" {
		return http.FileServer(http.Dir(dir))
	}
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err) // embedded path is fixed at compile time
	}
	return http.FileServer(http.FS(sub))
}

// NewRouter wires the routes and wraps them in the middleware chain.
func NewRouter(api *API, opts RouterOptions) http.Handler {
	r := mux.NewRouter()
	r.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)

	r.HandleFunc("/api/entries", api.ListEntries).Methods(http.MethodGet)
	r.HandleFunc("/api/entries", api.CreateEntry).Methods(http.MethodPost)
	r.HandleFunc("/healthz", api.Healthz).Methods(http.MethodGet)
	r.Handle("/metrics", api.Metrics.Handler()).Methods(http.MethodGet)
	r.PathPrefix("/").Handler(staticHandler(opts.StaticDir)).Methods(http.MethodGet, http.MethodHead)

	log := api.Log.Named("http")

	var h http.Handler = r
	h = CORS(opts.CORSOrigins)(h)
	h = Recover(log)(h)
	h = api.Metrics.Instrument(h)
	h = AccessLog(log)(h)
	h = RequestID(h)
	return h
}
