package init_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-arrower/records"
	"github.com/go-arrower/records/cmd"
	inventory "github.com/go-arrower/records/contexts/inventory/init"
)

var ctx = context.Background()

func newContainer(t *testing.T, store records.StoreKind) *records.Container {
	t.Helper()

	dc, err := records.InitialiseDefaultDependencies(ctx, &records.Config{
		ApplicationName: "records",
		Environment:     records.TestEnv,
		Store:           records.Store{Kind: store, Dir: t.TempDir()},
	})
	require.NoError(t, err)

	return dc
}

func TestNewInventoryContext(t *testing.T) {
	t.Parallel()

	t.Run("routes", func(t *testing.T) {
		t.Parallel()

		dc := newContainer(t, records.MemoryStore)

		ic, err := inventory.NewInventoryContext(ctx, dc)
		require.NoError(t, err)
		require.NoError(t, ic.Setup(ctx))

		req := httptest.NewRequest(http.MethodPost, "/inventory/items", strings.NewReader(`{"name":"Webcam","quantity":4}`))
		req.Header.Set("Content-Type", "application/json")

		rec := httptest.NewRecorder()
		dc.WebRouter.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"id":6`)

		rec = httptest.NewRecorder()
		dc.WebRouter.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/inventory/items", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"name":"USB Drive"`)
		assert.Contains(t, rec.Body.String(), `"name":"Webcam"`)
	})

	t.Run("missing dependencies", func(t *testing.T) {
		t.Parallel()

		_, err := inventory.NewInventoryContext(ctx, &records.Container{})
		assert.ErrorIs(t, err, records.ErrMissingDependency)
	})
}

func TestInventoryContext_Command(t *testing.T) {
	t.Parallel()

	t.Run("json file without a configured store", func(t *testing.T) {
		t.Parallel()

		ic, err := inventory.NewInventoryContext(ctx, newContainer(t, records.MemoryStore))
		require.NoError(t, err)

		dir := t.TempDir()

		out, err := cmd.TestExecute(t, ic.Command(), "--dir", dir)
		assert.NoError(t, err)
		assert.Contains(t, out, "Items loaded in a new session")
		assert.Contains(t, out, "#1 Laptop, 5 in stock")
		assert.Contains(t, out, "#5 USB Drive, 20 in stock")

		_, err = os.Stat(filepath.Join(dir, "inventory.items"))
		assert.NoError(t, err)
	})

	t.Run("configured store", func(t *testing.T) {
		t.Parallel()

		dc := newContainer(t, records.JSONStore)

		ic, err := inventory.NewInventoryContext(ctx, dc)
		require.NoError(t, err)

		out, err := cmd.TestExecute(t, ic.Command())
		assert.NoError(t, err)
		assert.Contains(t, out, "#3 Keyboard, 10 in stock")

		_, err = os.Stat(filepath.Join(dc.Config.Store.Dir, "inventory.items"))
		assert.NoError(t, err)
	})
}
