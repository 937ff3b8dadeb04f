package response

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

func TestHandlerSendsWhenHandlerReturns(t *testing.T) {
	handler := Config{}.Handler(func(b *Builder) error {
		b.SetBody("Hello world", "text/plain", "")
		b.SetHeader("X-Test", Scalar("yes"))
		return nil
	})
	req, err := http.NewRequest("GET", "/", nil)
	if err != nil {
		t.Fatal(err)
	}
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if body, err := io.ReadAll(rr.Result().Body); err != nil || fmt.Sprintf("%s", body) != "Hello world" {
		t.Fatalf("Body is %s", body)
	}
	if ct := rr.Result().Header.Get("Content-Type"); ct != "text/plain; charset=utf-8" {
		t.Fatalf("Content-Type header is %s", ct)
	}
	if h := rr.Result().Header.Get("X-Test"); h != "yes" {
		t.Fatalf("X-Test header is %s", h)
	}
}

func TestHandlerRespectsTerminalCall(t *testing.T) {
	handler := Config{}.Handler(func(b *Builder) error {
		return b.Redirect("/login", true)
	})
	req, _ := http.NewRequest("GET", "/", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusMovedPermanently {
		t.Fatalf("Status is %d", rr.Code)
	}
	if loc := rr.Header().Get("Location"); loc != "/login" {
		t.Fatalf("Location is %s", loc)
	}
}

func TestHandlerErrorSends500(t *testing.T) {
	handler := Config{}.Handler(func(b *Builder) error {
		b.Body = "half done"
		return errors.New("boom")
	})
	req, _ := http.NewRequest("GET", "/", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("Status is %d", rr.Code)
	}
	if body := rr.Body.String(); body != "Internal Server Error" {
		t.Fatalf("Body is %s", body)
	}
}

func TestHandlerInvalidStatusSends500(t *testing.T) {
	handler := Config{}.Handler(func(b *Builder) error {
		b.SetStatus(999)
		return nil
	})
	req, _ := http.NewRequest("GET", "/", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("Status is %d", rr.Code)
	}
}

func TestHandlerWithRouter(t *testing.T) {
	r := chi.NewRouter()
	config := Config{Router: r}
	r.Get("/items/{id}", config.Handler(func(b *Builder) error {
		if b.Router() != r {
			return errors.New("router not passed on")
		}
		b.Body = "item " + chi.URLParam(b.Request(), "id")
		return nil
	}).ServeHTTP)
	r.NotFound(config.Handler(func(b *Builder) error {
		return b.NotFound("no such page")
	}).ServeHTTP)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/items/42", nil))
	if rr.Code != http.StatusOK || rr.Body.String() != "item 42" {
		t.Fatalf("Got %d %s", rr.Code, rr.Body.String())
	}

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/nope", nil))
	if rr.Code != http.StatusNotFound || rr.Body.String() != "no such page" {
		t.Fatalf("Got %d %s", rr.Code, rr.Body.String())
	}
}

func TestGetRequestSourceIp(t *testing.T) {
	for addr, want := range map[string]string{
		"1.2.3.4:10000":  "1.2.3.4",
		"[1:2:3]:10000":  "[1:2:3]",
		"no-port-at-all": "no-port-at-all",
	} {
		if ip := getRequestSourceIp(&http.Request{RemoteAddr: addr}); ip != want {
			t.Fatalf("Source IP for %s is %s", addr, ip)
		}
	}
}
