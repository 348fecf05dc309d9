package server

import (
	"net/http"
	"net/http/httptest"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teerapatch/rodhai/db"
	"github.com/teerapatch/rodhai/models"
)

type stubLostCarService struct{}

func (stubLostCarService) CreateReport(uint, string, *models.CreateReportRequest, []string, string) (*models.LostCar, error) {
	return nil, nil
}

func (stubLostCarService) UpdateReport(uint, uuid.UUID, *models.CreateReportRequest) (*models.LostCar, error) {
	return nil, nil
}

func (stubLostCarService) UpdateStatus(uint, bool, uuid.UUID, string) error { return nil }

func (stubLostCarService) GetReport(uuid.UUID) (*models.LostCar, error) { return nil, nil }

func (stubLostCarService) GetReportsByOwner(uint) ([]models.LostCar, error) { return nil, nil }

func (stubLostCarService) Search(filter db.SearchFilter) (*models.SearchResponse, error) {
	return &models.SearchResponse{
		Data:       []models.LostCar{{LicensePlate: "กข 1234"}},
		TotalCount: 41,
	}, nil
}

func TestHubBroadcastsToastPayload(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.register(conn)
	}))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool {
		hub.mu.Lock()
		defer hub.mu.Unlock()
		return len(hub.clients) == 1
	}, time.Second, 10*time.Millisecond)

	hub.Notify("Signed out", "", models.SeveritySuccess)

	var got models.Notification
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, "Signed out", got.Title)
	assert.Equal(t, models.SeveritySuccess, got.Severity)
	assert.NotEmpty(t, got.Timestamp)
}

func TestSearchSocketDeliversPagesAndReleasesWriters(t *testing.T) {
	gin.SetMode(gin.TestMode)
	s := &Server{LostCarService: stubLostCarService{}}

	router := gin.New()
	router.GET("/ws/search", s.handleSearchWS())
	srv := httptest.NewServer(router)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/search"
	before := runtime.NumGoroutine()

	for i := 0; i < 10; i++ {
		conn, _, err := websocket.DefaultDialer.Dial(url, nil)
		require.NoError(t, err)
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))

		// The session opens with the current (empty) query.
		var out searchOutput
		require.NoError(t, conn.ReadJSON(&out))
		assert.Equal(t, int64(41), out.TotalCount)
		assert.Equal(t, 3, out.TotalPages)
		assert.Equal(t, 1, out.Page)

		require.NoError(t, conn.WriteJSON(searchInput{Type: "page", Value: "2"}))
		require.NoError(t, conn.ReadJSON(&out))
		assert.Equal(t, 2, out.Page)
		assert.True(t, out.ScrollToTop)

		conn.Close()
	}

	// Closed sessions release their writer goroutines instead of piling up.
	require.Eventually(t, func() bool {
		return runtime.NumGoroutine() <= before+3
	}, 2*time.Second, 50*time.Millisecond)
}
