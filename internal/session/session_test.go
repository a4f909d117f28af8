package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRelay(t *testing.T) {
	t.Run("Forwards browser cookies to the API request", func(t *testing.T) {
		browserReq := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
		browserReq.AddCookie(&http.Cookie{Name: "sid", Value: "abc"})
		browserReq.AddCookie(&http.Cookie{Name: "other", Value: "x"})

		relay := NewRelay(httptest.NewRecorder(), browserReq)

		apiReq := httptest.NewRequest(http.MethodGet, "http://api.local/auth/check", nil)
		relay.Apply(apiReq)

		cookie, err := apiReq.Cookie("sid")
		if err != nil {
			t.Fatalf("Expected sid cookie on API request: %v", err)
		}
		if cookie.Value != "abc" {
			t.Errorf("Expected value abc, got %s", cookie.Value)
		}
		if len(apiReq.Cookies()) != 2 {
			t.Errorf("Expected 2 cookies, got %d", len(apiReq.Cookies()))
		}
	})

	t.Run("Relays Set-Cookie back to the browser", func(t *testing.T) {
		w := httptest.NewRecorder()
		relay := NewRelay(w, httptest.NewRequest(http.MethodGet, "/", nil))

		apiRes := httptest.NewRecorder()
		http.SetCookie(apiRes, &http.Cookie{Name: "sid", Value: "fresh", Path: "/"})
		relay.Capture(apiRes.Result())

		cookies := w.Result().Cookies()
		if len(cookies) != 1 {
			t.Fatalf("Expected 1 cookie relayed, got %d", len(cookies))
		}
		if cookies[0].Name != "sid" || cookies[0].Value != "fresh" {
			t.Errorf("Unexpected cookie %+v", cookies[0])
		}
	})
}

func TestMemory(t *testing.T) {
	t.Run("Captured cookies apply to later requests", func(t *testing.T) {
		sess := NewMemory()

		res := httptest.NewRecorder()
		http.SetCookie(res, &http.Cookie{Name: "sid", Value: "abc"})
		sess.Capture(res.Result())

		req := httptest.NewRequest(http.MethodGet, "http://api.local/posts", nil)
		sess.Apply(req)

		cookie, err := req.Cookie("sid")
		if err != nil {
			t.Fatalf("Expected sid cookie: %v", err)
		}
		if cookie.Value != "abc" {
			t.Errorf("Expected value abc, got %s", cookie.Value)
		}
	})

	t.Run("Expired cookie is dropped", func(t *testing.T) {
		sess := NewMemory()

		res := httptest.NewRecorder()
		http.SetCookie(res, &http.Cookie{Name: "sid", Value: "abc"})
		sess.Capture(res.Result())

		res = httptest.NewRecorder()
		http.SetCookie(res, &http.Cookie{Name: "sid", Value: "", MaxAge: -1})
		sess.Capture(res.Result())

		req := httptest.NewRequest(http.MethodGet, "http://api.local/posts", nil)
		sess.Apply(req)

		if len(req.Cookies()) != 0 {
			t.Errorf("Expected no cookies after logout, got %d", len(req.Cookies()))
		}
	})
}
