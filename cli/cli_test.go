package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"portfolio_site_go/config"
	"portfolio_site_go/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes siteadmin with args and returns stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd("test")
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func configPath(t *testing.T) string {
	return filepath.Join(t.TempDir(), "config.yaml")
}

func saveConfig(t *testing.T, path, url string) {
	t.Helper()
	cfg := &config.AdminConfig{
		API:      config.AdminAPIConfig{URL: url, Username: "admin", Password: "secret"},
		Defaults: config.AdminDefaults{Output: "human", Timeout: 5, Locale: "en"},
	}
	require.NoError(t, cfg.SaveTo(path))
}

func postJSON() map[string]interface{} {
	return map[string]interface{}{
		"id": 12, "title": "Hello", "excerpt": "Hi", "content": "# Hello",
		"tags": []string{"go"}, "is_published": true, "created_at": "2026-02-04T09:08:32.000078",
	}
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "siteadmin version test\n", out)
}

func TestLogin(t *testing.T) {
	mock := testutil.NewRESTMock(t, "admin", "secret")
	mock.Handle(http.MethodPost, "/api/v1/login/token", func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		if r.PostForm.Get("username") != "admin" || r.PostForm.Get("password") != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"detail":"Incorrect username or password"}`)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"access_token":"tok","token_type":"bearer"}`)
	})

	t.Run("FlagsSaveConfig", func(t *testing.T) {
		path := configPath(t)
		out, err := run(t, "", "login", "--config", path, "--url", mock.URL()+"/", "-u", "admin", "-p", "secret", "--locale", "zh")
		require.NoError(t, err)
		assert.Contains(t, out, "Successfully logged in")

		cfg, err := config.LoadAdminFrom(path)
		require.NoError(t, err)
		assert.Equal(t, mock.URL(), cfg.API.URL)
		assert.Equal(t, "admin", cfg.API.Username)
		assert.Equal(t, "secret", cfg.API.Password)
		assert.Equal(t, "zh", cfg.Defaults.Locale)

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	})

	t.Run("PromptsForMissingValues", func(t *testing.T) {
		path := configPath(t)
		out, err := run(t, mock.URL()+"\nadmin\n", "login", "--config", path, "--password", "secret")
		require.NoError(t, err)
		assert.Contains(t, out, "Backend API URL")
		assert.Contains(t, out, "Username: ")

		cfg, err := config.LoadAdminFrom(path)
		require.NoError(t, err)
		assert.Equal(t, mock.URL(), cfg.API.URL)
		assert.Equal(t, "admin", cfg.API.Username)
	})

	t.Run("BadCredentials", func(t *testing.T) {
		path := configPath(t)
		_, err := run(t, "", "login", "--config", path, "--url", mock.URL(), "-u", "admin", "-p", "wrong")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "authentication failed")

		_, statErr := os.Stat(path)
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("InvalidURL", func(t *testing.T) {
		_, err := run(t, "", "login", "--config", configPath(t), "--url", "ftp://x", "-u", "a", "-p", "b")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "http://")
	})
}

func TestLogout(t *testing.T) {
	path := configPath(t)

	out, err := run(t, "", "logout", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Already logged out")

	saveConfig(t, path, "http://127.0.0.1:1")
	out, err = run(t, "", "logout", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Successfully logged out")

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestPostsList(t *testing.T) {
	mock := testutil.NewRESTMock(t, "admin", "secret")
	mock.HandleJSON(http.MethodGet, "/api/v1/blog/", http.StatusOK, map[string]interface{}{
		"items": []interface{}{postJSON()}, "total": 1, "page": 1, "size": 12,
	})
	path := configPath(t)
	saveConfig(t, path, mock.URL())

	t.Run("Table", func(t *testing.T) {
		out, err := run(t, "", "posts", "list", "--config", path)
		require.NoError(t, err)
		assert.Contains(t, out, "Hello")
		assert.Contains(t, out, "4 Feb 2026")
		assert.Contains(t, out, "published")
		assert.Contains(t, out, "Page 1 of 1 (1 posts)")
	})

	t.Run("ChineseDates", func(t *testing.T) {
		out, err := run(t, "", "posts", "list", "--config", path, "--locale", "zh")
		require.NoError(t, err)
		assert.Contains(t, out, "2026年2月4日")
	})

	t.Run("JSON", func(t *testing.T) {
		out, err := run(t, "", "posts", "list", "--config", path, "--json")
		require.NoError(t, err)
		var page map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(out), &page))
		assert.EqualValues(t, 1, page["total"])
	})

	t.Run("NotConfigured", func(t *testing.T) {
		_, err := run(t, "", "posts", "list", "--config", configPath(t))
		assert.ErrorIs(t, err, config.ErrNotConfigured)
	})
}

func TestPostsGet(t *testing.T) {
	mock := testutil.NewRESTMock(t, "admin", "secret")
	mock.HandleJSON(http.MethodGet, "/api/v1/blog/12", http.StatusOK, postJSON())
	path := configPath(t)
	saveConfig(t, path, mock.URL())

	out, err := run(t, "", "posts", "get", "12", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Title:     Hello")
	assert.Contains(t, out, "4 February 2026 at 09:08 am")
	assert.Contains(t, out, "# Hello")

	_, err = run(t, "", "posts", "get", "99", "--config", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	_, err = run(t, "", "posts", "get", "abc", "--config", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "positive number")
}

func TestPostsMutations(t *testing.T) {
	mock := testutil.NewRESTMock(t, "admin", "secret")
	var received map[string]interface{}
	capture := func(status int) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			received = map[string]interface{}{}
			_ = json.NewDecoder(r.Body).Decode(&received)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			_ = json.NewEncoder(w).Encode(postJSON())
		}
	}
	mock.Handle(http.MethodPost, "/api/v1/blog/", capture(http.StatusOK))
	mock.Handle(http.MethodPatch, "/api/v1/blog/12", capture(http.StatusOK))
	mock.Handle(http.MethodDelete, "/api/v1/blog/12", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	path := configPath(t)
	saveConfig(t, path, mock.URL())

	t.Run("CreateFromFile", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "post.md")
		require.NoError(t, os.WriteFile(file, []byte("# Hello"), 0644))

		out, err := run(t, "", "posts", "create", "--config", path, "--title", "Hello", "--content-file", file, "--tags", "go, web,", "--publish")
		require.NoError(t, err)
		assert.Contains(t, out, "Post created: 12 Hello")
		assert.Equal(t, "# Hello", received["content"])
		assert.Equal(t, []interface{}{"go", "web"}, received["tags"])
		assert.Equal(t, true, received["is_published"])
	})

	t.Run("CreateRequiresTitle", func(t *testing.T) {
		_, err := run(t, "", "posts", "create", "--config", path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--title")
	})

	t.Run("UpdateSendsOnlyChangedFields", func(t *testing.T) {
		_, err := run(t, "", "posts", "update", "12", "--config", path, "--publish=false")
		require.NoError(t, err)
		assert.Equal(t, map[string]interface{}{"is_published": false}, received)
	})

	t.Run("UpdateNothing", func(t *testing.T) {
		_, err := run(t, "", "posts", "update", "12", "--config", path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "nothing to update")
	})

	t.Run("Delete", func(t *testing.T) {
		out, err := run(t, "", "posts", "delete", "12", "--config", path)
		require.NoError(t, err)
		assert.Contains(t, out, "Post deleted: 12")
	})

	t.Run("WrongPassword", func(t *testing.T) {
		_, err := run(t, "", "posts", "delete", "12", "--config", path, "-p", "nope")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "authentication failed")
	})
}

func TestProjects(t *testing.T) {
	mock := testutil.NewRESTMock(t, "admin", "secret")
	project := map[string]interface{}{
		"id": 3, "title": "Portfolio", "description": "This site", "category": "Web",
		"tags": []string{"Go", "templ"}, "order": "1",
	}
	mock.HandleJSON(http.MethodGet, "/api/v1/projects/", http.StatusOK, []interface{}{project})
	var patch map[string]interface{}
	mock.Handle(http.MethodPatch, "/api/v1/projects/3", func(w http.ResponseWriter, r *http.Request) {
		patch = map[string]interface{}{}
		_ = json.NewDecoder(r.Body).Decode(&patch)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(project)
	})
	path := configPath(t)
	saveConfig(t, path, mock.URL())

	out, err := run(t, "", "projects", "list", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Portfolio")
	assert.Contains(t, out, "Go,templ")
	assert.Contains(t, out, "Total: 1 projects")

	_, err = run(t, "", "projects", "update", "3", "--config", path, "--order", "2", "--github", "https://github.com/x/y")
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"order": "2", "github_url": "https://github.com/x/y"}, patch)
}

func TestFlagsWithoutConfigFile(t *testing.T) {
	mock := testutil.NewRESTMock(t, "admin", "secret")
	mock.HandleJSON(http.MethodGet, "/api/v1/projects/", http.StatusOK, []interface{}{})

	out, err := run(t, "", "projects", "list", "--config", configPath(t), "--url", mock.URL())
	require.NoError(t, err)
	assert.Contains(t, out, "Total: 0 projects")

	_, err = run(t, "", "projects", "delete", "3", "--config", configPath(t), "--url", mock.URL())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "username and password are required")
}

func TestDate(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{"Default", []string{"2026-02-04T09:08:32.000078"}, "4 Feb 2026\n"},
		{"Chinese long", []string{"2026-02-04T09:08:32", "--locale", "zh", "--style", "long"}, "2026年2月4日星期三\n"},
		{"Datetime", []string{"2026-02-04T09:08:32", "-s", "datetime"}, "4 February 2026 at 09:08 am\n"},
		{"Garbage echoed", []string{"soon"}, "soon\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, "", append([]string{"date"}, tt.args...)...)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out)
		})
	}

	_, err := run(t, "", "date", "2026-02-04", "--style", "weird")
	require.Error(t, err)
}

func TestParseTags(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, parseTags(" a, ,b,"))
	assert.Equal(t, []string{}, parseTags(""))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "abc…", truncate("abcdef", 4))
}
