package gateway

import (
	"net/http"
	"time"
)

// Cookie is the persisted form of a session cookie.
type Cookie struct {
	Name    string    `json:"name"`
	Value   string    `json:"value"`
	Path    string    `json:"path,omitempty"`
	Expires time.Time `json:"expires,omitempty"`
}

// Session carries the credentials attached to every gateway call: the
// backend's session cookies and, when the backend hands one out, a bearer
// token.
type Session struct {
	Cookies []Cookie `json:"cookies,omitempty"`
	Token   string   `json:"token,omitempty"`
}

// Empty reports whether the session carries no credentials.
func (s Session) Empty() bool {
	return len(s.Cookies) == 0 && s.Token == ""
}

// Cookie returns the value of the named cookie.
func (s Session) Cookie(name string) (string, bool) {
	for _, c := range s.Cookies {
		if c.Name == name {
			return c.Value, true
		}
	}
	return "", false
}

func (s Session) httpCookies() []*http.Cookie {
	out := make([]*http.Cookie, 0, len(s.Cookies))
	for _, c := range s.Cookies {
		path := c.Path
		if path == "" {
			path = "/"
		}
		out = append(out, &http.Cookie{Name: c.Name, Value: c.Value, Path: path, Expires: c.Expires})
	}
	return out
}

func sessionFromCookies(cookies []*http.Cookie, token string) Session {
	s := Session{Token: token}
	for _, c := range cookies {
		s.Cookies = append(s.Cookies, Cookie{Name: c.Name, Value: c.Value})
	}
	return s
}
