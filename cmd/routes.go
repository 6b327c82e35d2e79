package main

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"
)

func (app *application) JWTMiddlewareWithRole(requiredRole string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return app.JWTMiddleware(next, requiredRole)
	}
}

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, app.logRequest, secureHeaders, makeResponseJSON)
	adminAuthMiddleware := standardMiddleware.Append(app.JWTMiddlewareWithRole("admin"))

	mux := pat.New()

	// Global search
	mux.Get("/search", standardMiddleware.ThenFunc(app.searchHandler.Search))
	mux.Get("/search/suggestions", standardMiddleware.ThenFunc(app.searchHandler.Suggestions))
	mux.Get("/search/popular", standardMiddleware.ThenFunc(app.searchHandler.PopularSearches))

	// Admin
	mux.Del("/admin/search/cache", adminAuthMiddleware.ThenFunc(app.searchHandler.ClearCache))

	return mux
}
