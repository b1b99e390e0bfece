package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthHandler_Ready(t *testing.T) {
	tests := []struct {
		name           string
		redisDown      bool
		expectedStatus int
		expectedChecks map[string]string
	}{
		{
			name:           "all dependencies up",
			expectedStatus: http.StatusOK,
			expectedChecks: map[string]string{"database": "ok", "redis": "ok"},
		},
		{
			name:           "redis down",
			redisDown:      true,
			expectedStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
			require.NoError(t, err)
			defer mockDB.Close()
			mock.ExpectPing()

			mr := miniredis.RunT(t)
			client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
			defer client.Close()
			if tt.redisDown {
				mr.Close()
			}

			h := NewHealthHandler(sqlx.NewDb(mockDB, "sqlmock"), client, time.Second, nil)
			w := httptest.NewRecorder()
			h.Ready(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

			assert.Equal(t, tt.expectedStatus, w.Code)

			var body struct {
				Data HealthStatus `json:"data"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, "ok", body.Data.Checks["database"])
			if tt.expectedChecks != nil {
				assert.Equal(t, tt.expectedChecks, body.Data.Checks)
			} else {
				assert.Equal(t, "error", body.Data.Status)
				assert.Contains(t, body.Data.Checks["redis"], "failed")
			}
		})
	}
}

func TestHealthHandler_Health(t *testing.T) {
	h := NewHealthHandler(nil, nil, 0, nil)
	w := httptest.NewRecorder()

	h.Health(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}
