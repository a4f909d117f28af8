// Package session models the cookie-based API session as an explicit
// capability instead of ambient browser state. The remote API owns the
// session; we only carry its cookie back and forth.
package session

import (
	"net/http"
	"sync"
)

// Session attaches credentials to outbound API requests and records
// credentials the API sets in its responses.
type Session interface {
	Apply(req *http.Request)
	Capture(res *http.Response)
}

// Relay bridges a single browser request to the API: the browser's cookies
// are forwarded on outbound calls, and any Set-Cookie the API returns is
// relayed back to the browser. One Relay per incoming request.
type Relay struct {
	r *http.Request
	w http.ResponseWriter
}

func NewRelay(w http.ResponseWriter, r *http.Request) *Relay {
	return &Relay{r: r, w: w}
}

func (s *Relay) Apply(req *http.Request) {
	for _, c := range s.r.Cookies() {
		req.AddCookie(c)
	}
}

func (s *Relay) Capture(res *http.Response) {
	for _, c := range res.Cookies() {
		http.SetCookie(s.w, c)
	}
}

// Memory holds cookies in process. It serves CLI consumers and tests, where
// there is no browser to relay to.
type Memory struct {
	mu      sync.Mutex
	cookies map[string]*http.Cookie
}

func NewMemory() *Memory {
	return &Memory{cookies: make(map[string]*http.Cookie)}
}

func (s *Memory) Apply(req *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.cookies {
		req.AddCookie(c)
	}
}

func (s *Memory) Capture(res *http.Response) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range res.Cookies() {
		if c.MaxAge < 0 {
			delete(s.cookies, c.Name)
			continue
		}
		s.cookies[c.Name] = c
	}
}
