package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundErrorResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedErrorResponse)

	router.HandlerFunc(http.MethodGet, "/health", app.healthCheckHandler)

	// user handlers
	router.HandlerFunc(http.MethodPost, "/user/create", app.requireJSON(app.createUserHandler))
	router.HandlerFunc(http.MethodPost, "/verify", app.requireJSON(app.verifyUserHandler))
	router.HandlerFunc(http.MethodGet, "/user/get", app.listUsersHandler)
	router.HandlerFunc(http.MethodDelete, "/user/delete/:id", app.deleteUserHandler)
	router.HandlerFunc(http.MethodPut, "/user/update/:id", app.requireJSON(app.updateUserEmailHandler))
	router.HandlerFunc(http.MethodPut, "/user/editpassword/:id", app.requireJSON(app.updateUserPasswordHandler))

	// blog handlers
	router.HandlerFunc(http.MethodGet, "/blog/get", app.listBlogsHandler)
	router.HandlerFunc(http.MethodGet, "/blog/get/:id", app.getBlogHandler)
	router.HandlerFunc(http.MethodGet, "/blog/status/:status", app.getBlogsByStatusHandler)
	router.HandlerFunc(http.MethodPost, "/blog/create", app.requireJSON(app.createBlogHandler))
	router.HandlerFunc(http.MethodPut, "/blog/update/:id", app.requireJSON(app.updateBlogHandler))
	router.HandlerFunc(http.MethodDelete, "/blog/delete/:id", app.deleteBlogHandler)

	return app.recoverPanic(app.enableCORS(app.logRequest(router)))
}
