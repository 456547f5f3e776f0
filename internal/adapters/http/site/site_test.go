package site

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSiteHandler(t *testing.T) {
	Convey("Given a router with the site registered", t, func() {
		r := chi.NewRouter()
		Register(context.Background(), r)

		serve := func(path string) *httptest.ResponseRecorder {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
			return w
		}

		Convey("When requesting the root", func() {
			w := serve("/")

			Convey("Then it redirects to the index page", func() {
				So(w.Code, ShouldEqual, http.StatusTemporaryRedirect)
				So(w.Header().Get("Location"), ShouldEqual, IndexPath)
			})
		})

		Convey("When requesting the index page", func() {
			w := serve(IndexPath)

			Convey("Then HTML is served", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldContainSubstring, "text/html")
				So(w.Body.String(), ShouldContainSubstring, `id="signup-form"`)
			})
		})

		Convey("When requesting the script", func() {
			w := serve("/static/app.js")

			Convey("Then it talks to the activities API", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, "/activities")
				So(w.Body.String(), ShouldContainSubstring, "result.detail")
			})
		})

		Convey("When requesting the stylesheet", func() {
			w := serve("/static/styles.css")

			Convey("Then CSS is served", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldContainSubstring, "text/css")
			})
		})

		Convey("When requesting a missing asset", func() {
			w := serve("/static/missing.js")

			Convey("Then it is not found", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestSiteHandlerWithNilRouter(t *testing.T) {
	Convey("Given a nil router", t, func() {
		Convey("When registering the site", func() {
			Convey("Then it should panic", func() {
				So(func() { Register(context.Background(), nil) }, ShouldPanic)
			})
		})
	})
}
