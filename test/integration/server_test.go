package integration

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/stocklight/inventory-backend/internal/database"
	"github.com/stocklight/inventory-backend/internal/http/handler"
	"github.com/stocklight/inventory-backend/internal/http/router"
	"github.com/stocklight/inventory-backend/internal/repository"
	"github.com/stocklight/inventory-backend/internal/service"
)

// newInventoryTestServer stands up the full HTTP stack over a throwaway
// sqlite file: real repositories, real services, real router.
func newInventoryTestServer(t *testing.T) (string, *http.Client, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(t.TempDir()+"/inventory.db"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	productSvc := service.NewProductService(repository.NewProductRepository(db))
	userSvc := service.NewUserService(repository.NewUserRepository(db))

	h := router.NewRouter(router.Dependencies{
		ProductHandler:  handler.NewProductHandler(productSvc),
		UserHandler:     handler.NewUserHandler(userSvc),
		APIRateLimitRPM: 10000,
	})

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv.URL, srv.Client(), db
}

func doJSON(t *testing.T, client *http.Client, method, url string, body any) (int, []byte) {
	t.Helper()
	var buf io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, url, buf)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}
