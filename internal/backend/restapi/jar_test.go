package restapi

import (
	"encoding/json"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jarURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func TestPersistentJar_RoundTripsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookies.json")
	base := jarURL(t, "http://127.0.0.1:5000")

	j := newPersistentJar(path, base)
	j.SetCookies(base, []*http.Cookie{{Name: "session", Value: "abc123"}})

	// A fresh jar built from the same file sees the session cookie.
	j2 := newPersistentJar(path, base)
	cookies := j2.Cookies(base)
	require.Len(t, cookies, 1)
	assert.Equal(t, "session", cookies[0].Name)
	assert.Equal(t, "abc123", cookies[0].Value)
}

func TestPersistentJar_IgnoresOtherHosts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookies.json")
	base := jarURL(t, "http://127.0.0.1:5000")
	other := jarURL(t, "http://evil.example.com")

	j := newPersistentJar(path, base)
	j.SetCookies(other, []*http.Cookie{{Name: "session", Value: "abc123"}})

	assert.Empty(t, j.Cookies(base))
	assert.Nil(t, j.Cookies(other))
}

func TestPersistentJar_EmptyValueDeletes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookies.json")
	base := jarURL(t, "http://127.0.0.1:5000")

	j := newPersistentJar(path, base)
	j.SetCookies(base, []*http.Cookie{{Name: "session", Value: "abc123"}})
	j.SetCookies(base, []*http.Cookie{{Name: "session", Value: ""}})

	assert.Empty(t, j.Cookies(base))
}

func TestPersistentJar_MaxAgeNegativeDeletes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookies.json")
	base := jarURL(t, "http://127.0.0.1:5000")

	j := newPersistentJar(path, base)
	j.SetCookies(base, []*http.Cookie{{Name: "session", Value: "abc123"}})
	j.SetCookies(base, []*http.Cookie{{Name: "session", Value: "abc123", MaxAge: -1}})

	assert.Empty(t, j.Cookies(base))
}

func TestPersistentJar_ExpiredCookiesDropOnLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookies.json")
	base := jarURL(t, "http://127.0.0.1:5000")

	stored := []storedCookie{
		{Name: "stale", Value: "x", Expires: time.Now().Add(-time.Hour)},
		{Name: "fresh", Value: "y", Expires: time.Now().Add(time.Hour)},
	}
	data, err := json.Marshal(stored)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	j := newPersistentJar(path, base)
	cookies := j.Cookies(base)
	require.Len(t, cookies, 1)
	assert.Equal(t, "fresh", cookies[0].Name)
}

func TestPersistentJar_CorruptFileYieldsEmptyJar(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookies.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	base := jarURL(t, "http://127.0.0.1:5000")
	j := newPersistentJar(path, base)
	assert.Empty(t, j.Cookies(base))
}

func TestPersistentJar_FilePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookies.json")
	base := jarURL(t, "http://127.0.0.1:5000")

	j := newPersistentJar(path, base)
	j.SetCookies(base, []*http.Cookie{{Name: "session", Value: "abc123"}})

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
