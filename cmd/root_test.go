package cmd

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alturino/restaurant/internal/constants"
)

func TestRootCommandTree(t *testing.T) {
	root := NewRootCommand()

	for _, path := range [][]string{
		{"cart", "list"},
		{"cart", "add"},
		{"cart", "qty"},
		{"cart", "remove"},
		{"cart", "clear"},
		{"cart", "totals"},
		{"cart", "checkout"},
		{"cart", "serve"},
		{"orders"},
		{"kitchen", "pending"},
		{"kitchen", "complete"},
		{"kitchen", "delete"},
		{"kitchen", "history"},
		{"menu"},
		{"menu", "categories"},
		{"login"},
		{"logout"},
		{"whoami"},
		{"register"},
	} {
		found, _, err := root.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], found.Name())
	}
	assert.NotNil(t, root.PersistentFlags().Lookup("config"))
}

func TestCartCommandsWithMemoryStore(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("RESTAURANT_STORAGE_DRIVER", "memory")

	run := func(args ...string) string {
		t.Helper()
		out := bytes.Buffer{}
		root := NewRootCommand()
		root.SetOut(&out)
		root.SetArgs(args)
		require.NoError(t, root.ExecuteContext(t.Context()))
		return out.String()
	}

	out := run("cart", "add", "7", "--name", "Ceviche", "--price", "8.00", "-q", "3")
	assert.Contains(t, out, "Ceviche")
	assert.Contains(t, out, "26.88")

	assert.Contains(t, run("cart", "checkout"), "cart is empty")
}

func TestKitchenCommands(t *testing.T) {
	mu := sync.Mutex{}
	requests := []string{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		requests = append(requests, r.Method+" "+r.URL.RequestURI())
		mu.Unlock()
		switch r.URL.Path {
		case constants.PATH_KITCHEN_PENDING:
			_, _ = w.Write([]byte(`[{"id":7,"status":"Pendiente","total":12.5,"cliente":{"nombres":"Ana","apellidos":"Quispe"},"items":[{"item":{"title":"Lomo"},"quantity":2,"precio":5}]}]`))
		case constants.PATH_KITCHEN_HISTORY:
			_, _ = w.Write([]byte(`[]`))
		default:
			w.WriteHeader(http.StatusNoContent)
		}
	}))
	defer server.Close()

	t.Chdir(t.TempDir())
	t.Setenv("RESTAURANT_STORAGE_DRIVER", "memory")
	t.Setenv("RESTAURANT_API_BASE_URL", server.URL)

	run := func(args ...string) string {
		t.Helper()
		out := bytes.Buffer{}
		root := NewRootCommand()
		root.SetOut(&out)
		root.SetArgs(args)
		require.NoError(t, root.ExecuteContext(t.Context()))
		return out.String()
	}

	out := run("kitchen", "pending")
	assert.Contains(t, out, "Ana Quispe")
	assert.Contains(t, out, "2 x Lomo")
	assert.Contains(t, run("kitchen", "complete", "7"), "order 7 completed")
	assert.Contains(t, run("kitchen", "delete", "7"), "order 7 deleted")
	assert.Contains(t, run("kitchen", "history", "--today"), "no orders in history")

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{
		"GET " + constants.PATH_KITCHEN_PENDING,
		"PUT " + constants.PATH_KITCHEN_ORDERS + "/7/status",
		"DELETE " + constants.PATH_KITCHEN_ORDERS + "/7",
		"GET " + constants.PATH_KITCHEN_HISTORY + "?date=today",
	}, requests)
}
