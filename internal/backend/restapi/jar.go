package restapi

import (
	"encoding/json"
	"net/http"
	"net/url"
	"os"
	"sync"
	"time"
)

// storedCookie is the on-disk form of a session cookie.
type storedCookie struct {
	Name    string    `json:"name"`
	Value   string    `json:"value"`
	Expires time.Time `json:"expires,omitempty"`
}

// persistentJar is a cookie jar for a single API host that survives across
// process runs. Cookies are written to a 0600 JSON file on every change,
// the same way stored credentials are handled elsewhere in the config dir.
type persistentJar struct {
	mu      sync.Mutex
	path    string
	host    string
	cookies map[string]storedCookie
}

// newPersistentJar loads the jar file if present. A missing or unreadable
// file yields an empty jar rather than an error.
func newPersistentJar(path string, base *url.URL) *persistentJar {
	j := &persistentJar{
		path:    path,
		host:    base.Hostname(),
		cookies: make(map[string]storedCookie),
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return j
	}
	var stored []storedCookie
	if err := json.Unmarshal(data, &stored); err != nil {
		return j
	}
	now := time.Now()
	for _, c := range stored {
		if !c.Expires.IsZero() && c.Expires.Before(now) {
			continue
		}
		j.cookies[c.Name] = c
	}
	return j
}

// SetCookies implements http.CookieJar for the API host only.
func (j *persistentJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	if u.Hostname() != j.host {
		return
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	for _, c := range cookies {
		if c.Name == "" {
			continue
		}
		// An empty value or a past expiry is a deletion.
		if c.Value == "" || (!c.Expires.IsZero() && c.Expires.Before(time.Now())) || c.MaxAge < 0 {
			delete(j.cookies, c.Name)
			continue
		}
		sc := storedCookie{Name: c.Name, Value: c.Value, Expires: c.Expires}
		if c.MaxAge > 0 {
			sc.Expires = time.Now().Add(time.Duration(c.MaxAge) * time.Second)
		}
		j.cookies[c.Name] = sc
	}
	j.save()
}

// Cookies implements http.CookieJar.
func (j *persistentJar) Cookies(u *url.URL) []*http.Cookie {
	if u.Hostname() != j.host {
		return nil
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	now := time.Now()
	var out []*http.Cookie
	for name, c := range j.cookies {
		if !c.Expires.IsZero() && c.Expires.Before(now) {
			delete(j.cookies, name)
			continue
		}
		out = append(out, &http.Cookie{Name: c.Name, Value: c.Value})
	}
	return out
}

// save writes the jar under j.mu.
func (j *persistentJar) save() {
	stored := make([]storedCookie, 0, len(j.cookies))
	for _, c := range j.cookies {
		stored = append(stored, c)
	}
	data, err := json.MarshalIndent(stored, "", "  ")
	if err != nil {
		return
	}
	// Best effort: a failed write means the session won't outlive the
	// process, which the next session validation handles.
	_ = os.WriteFile(j.path, data, 0600)
}
