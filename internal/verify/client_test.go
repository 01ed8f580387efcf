package verify

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/itemlab/itemlab/internal/db"
	"github.com/itemlab/itemlab/internal/httpapi"
	"github.com/itemlab/itemlab/internal/repo"
	"github.com/itemlab/itemlab/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func startItemsAPI(t *testing.T) *httptest.Server {
	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gormDB.AutoMigrate(&db.Item{}))

	database := &db.DB{DB: gormDB}
	log := logger.NewLogger("test", "error")
	itemRepo := repo.NewItemRepository(database, log)

	server := httpapi.NewServer(database, itemRepo, nil, log)
	ts := httptest.NewServer(server.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func TestRunFullScenario(t *testing.T) {
	ts := startItemsAPI(t)

	var out bytes.Buffer
	client := NewClient(ts.URL, &out)
	client.Run()

	report := out.String()
	assert.Contains(t, report, "Starting verification...")
	assert.Contains(t, report, "Testing CREATE item...")
	assert.Contains(t, report, "Testing READ ALL items...")
	assert.Contains(t, report, "Testing READ ONE item")
	assert.Contains(t, report, "Testing UPDATE item")
	assert.Contains(t, report, "Testing PATCH item")
	assert.Contains(t, report, "Testing DELETE item")
	assert.NotContains(t, report, "Failed to create item")

	// Every step against a healthy service reports success
	assert.Equal(t, 7, strings.Count(report, "Status: 200"))

	// The final READ ALL must show the store empty again
	assert.True(t, strings.HasSuffix(strings.TrimSpace(report), "Response: []"))
}

func TestRunTransportFailure(t *testing.T) {
	ts := startItemsAPI(t)
	url := ts.URL
	ts.Close() // connection refused from here on

	var out bytes.Buffer
	client := NewClient(url, &out)
	client.Run()

	report := out.String()
	assert.Contains(t, report, "Error:")
	assert.Contains(t, report, "Failed to create item, skipping other tests.")
	assert.NotContains(t, report, "Testing READ ALL items...")
}

func TestRunCreateRejected(t *testing.T) {
	// A service that rejects every call must truncate the sequence after CREATE
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadRequest)
	}))
	t.Cleanup(ts.Close)

	var out bytes.Buffer
	client := NewClient(ts.URL, &out)
	client.Run()

	report := out.String()
	assert.Contains(t, report, "Status: 400")
	assert.Contains(t, report, "Failed to create item, skipping other tests.")
	assert.NotContains(t, report, "Testing DELETE item")
}

func TestRunCreateWithoutID(t *testing.T) {
	// 200 without an id in the body still counts as a failed CREATE
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"name":"Test Item"}`))
	}))
	t.Cleanup(ts.Close)

	var out bytes.Buffer
	client := NewClient(ts.URL, &out)
	client.Run()

	assert.Contains(t, out.String(), "Failed to create item, skipping other tests.")
}
