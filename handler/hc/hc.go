package hc

import (
	"net/http"
	"time"

	"defilend/core"
	"defilend/handler/render"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
)

// Handle handle hc request
func Handle(ver string, ledgerSrv core.ILedgerService) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.NoCache)
	r.Handle("/", handle(ver, ledgerSrv))
	return r
}

func handle(version string, ledgerSrv core.ILedgerService) http.HandlerFunc {
	b := time.Now()
	return func(w http.ResponseWriter, r *http.Request) {
		uptime := time.Since(b).Truncate(time.Millisecond)

		pool := "initialized"
		if _, err := ledgerSrv.Pool(r.Context()); err == core.ErrPoolNotFound {
			pool = "missing"
		} else if err != nil {
			pool = "unavailable"
		}

		render.JSON(w, render.H{
			"uptime":  uptime.String(),
			"version": version,
			"pool":    pool,
		})
	}
}
