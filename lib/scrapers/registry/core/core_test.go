package core

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"registry-harvester/lib/telemetry"

	"github.com/stretchr/testify/require"
)

const loginFormPage = `<html><body>
<form action="login.php" method="post"><input type="text" name="username"/></form>
</body></html>`

const contentPage = `<html><body><table><tr><td>Student Content</td></tr></table></body></html>`

type fakeAuthenticator struct {
	calls  int
	cookie *http.Cookie
	err    error
}

func (a *fakeAuthenticator) Authenticate(ctx context.Context) ([]*http.Cookie, error) {
	a.calls++
	if a.err != nil {
		return nil, a.err
	}
	return []*http.Cookie{a.cookie}, nil
}

func newSessionServer(t testing.TB) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/page.php", func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie("session")
		if err != nil || c.Value != "valid" {
			fmt.Fprint(w, loginFormPage)
			return
		}
		fmt.Fprint(w, contentPage)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestFetchReauthenticatesOnce(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:registry-core")
	defer cleanup()

	server := newSessionServer(t)
	auth := &fakeAuthenticator{
		cookie: &http.Cookie{Name: "session", Value: "valid", Path: "/"},
	}
	client, err := NewClient(context.Background(), ClientOptions{
		BaseUrl:       server.URL,
		Authenticator: auth,
	})
	require.NoError(t, err)

	page, err := client.Fetch(context.Background(), "page.php")
	require.NoError(t, err)
	require.False(t, page.IsLoginForm())
	require.Contains(t, string(page.Body), "Student Content")
	require.Equal(t, 1, auth.calls)

	// the session cookie is kept, no second login
	page, err = client.Fetch(context.Background(), "page.php")
	require.NoError(t, err)
	require.False(t, page.IsLoginForm())
	require.Equal(t, 1, auth.calls)
}

func TestFetchSurfacesUnauthenticatedPage(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:registry-core")
	defer cleanup()

	server := newSessionServer(t)
	// an authenticator that never produces a working session
	auth := &fakeAuthenticator{
		cookie: &http.Cookie{Name: "session", Value: "expired", Path: "/"},
	}
	client, err := NewClient(context.Background(), ClientOptions{
		BaseUrl:       server.URL,
		Authenticator: auth,
	})
	require.NoError(t, err)

	page, err := client.Fetch(context.Background(), "page.php")
	require.NoError(t, err)
	// no retry loop: the login form comes back to the caller
	require.True(t, page.IsLoginForm())
	require.Equal(t, 1, auth.calls)
}

func TestFetchWithoutAuthenticator(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:registry-core")
	defer cleanup()

	server := newSessionServer(t)
	client, err := NewClient(context.Background(), ClientOptions{
		BaseUrl: server.URL,
	})
	require.NoError(t, err)

	page, err := client.Fetch(context.Background(), "page.php")
	require.NoError(t, err)
	require.True(t, page.IsLoginForm())
}

func TestFetchReturnsNon2xxPages(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:registry-core")
	defer cleanup()

	mux := http.NewServeMux()
	mux.HandleFunc("/missing.php", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, "<html><body>not here</body></html>")
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client, err := NewClient(context.Background(), ClientOptions{BaseUrl: server.URL})
	require.NoError(t, err)

	page, err := client.Fetch(context.Background(), "missing.php")
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, page.StatusCode)
	require.Contains(t, string(page.Body), "not here")
}
