//go:build unit

package bootstrap_test

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"envelope-ledger/internal/pkg/config"
	"envelope-ledger/tests/common/httptest"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const seedCatalog = `
partners:
  - id: 6f1c2d7e-6a51-4f0e-9a43-3c1b0a4d2e10
    name: SwissLife
    envelope: 1000000
    products:
      - id: 0b7e9a52-1c3d-4e5f-8a9b-0c1d2e3f4a5b
        category: autocall
        title: Autocall Euro Stoxx 50 2031
`

func TestMemoryStoreApp(t *testing.T) {
	seedFile := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(seedFile, []byte(seedCatalog), 0o600))

	cfg := config.NewTestConfig()
	cfg.Store.SeedFile = seedFile
	router := startApp(t, cfg, nil)

	w := httptest.PerformRequest(t, router, http.MethodGet, "/health", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.PerformRequest(t, router, http.MethodGet, "/api/partners/"+uuid.NewString()+"/capacity", nil, "")
	httptest.AssertErrorResponse(t, w, http.StatusUnauthorized, "Access token required")

	runSwissLifeFlow(t, newClient(t, router, cfg),
		uuid.MustParse("6f1c2d7e-6a51-4f0e-9a43-3c1b0a4d2e10"),
		uuid.MustParse("0b7e9a52-1c3d-4e5f-8a9b-0c1d2e3f4a5b"))
}
