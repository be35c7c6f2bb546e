package get_availability

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	getAvailability "github.com/planbay/scheduling-service/internal/usecase/get_availability"
	"github.com/planbay/scheduling-service/pkg/types"
)

type stubLogger struct{}

func (stubLogger) Info(string, ...interface{})  {}
func (stubLogger) Warn(string, ...interface{})  {}
func (stubLogger) Error(string, ...interface{}) {}

type fakeUseCase struct {
	lastReq *getAvailability.Request
	result  *getAvailability.Response
}

func (u *fakeUseCase) Execute(_ context.Context, req *getAvailability.Request) (*getAvailability.Response, error) {
	u.lastReq = req
	return u.result, nil
}

func availabilityResult(resources ...getAvailability.ResourceAvailability) *getAvailability.Response {
	return &getAvailability.Response{
		Date:      time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		OrgID:     1,
		Resources: resources,
	}
}

func bayAvailability(id int64, name string) getAvailability.ResourceAvailability {
	return getAvailability.ResourceAvailability{
		ResourceID:   id,
		ResourceName: name,
		Capacity:     1,
		Open:         true,
		FreeIntervals: []getAvailability.FreeInterval{
			{StartTime: types.TimeString("09:00"), EndTime: types.TimeString("18:00")},
		},
		MaxConcurrency: 0,
	}
}

func getAvailabilityRequest(t *testing.T, h *Handler, query string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/locations/10/availability?"+query, nil)
	req = mux.SetURLVars(req, map[string]string{"locationId": "10"})
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_SingleResourceFlatResponse(t *testing.T) {
	uc := &fakeUseCase{result: availabilityResult(bayAvailability(100, "Bay 1"))}
	h := NewHandler(uc, stubLogger{})

	rec := getAvailabilityRequest(t, h, "orgId=1&date=2025-06-02&resourceId=100")
	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, uc.lastReq.ResourceID)
	assert.Equal(t, int64(100), *uc.lastReq.ResourceID)

	var resp map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	// Плоская структура: freeIntervals и maxConcurrency на верхнем уровне
	assert.Contains(t, resp, "freeIntervals")
	assert.Contains(t, resp, "maxConcurrency")
	assert.NotContains(t, resp, "resources")

	var flat SingleResourceResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &flat))
	assert.Equal(t, int64(100), flat.ResourceID)
	require.Len(t, flat.FreeIntervals, 1)
	assert.Equal(t, "09:00", flat.FreeIntervals[0].StartTime)
}

func TestHandle_LocationModeWrapsResources(t *testing.T) {
	uc := &fakeUseCase{result: availabilityResult(
		bayAvailability(100, "Bay 1"),
		bayAvailability(101, "Bay 2"),
	)}
	h := NewHandler(uc, stubLogger{})

	rec := getAvailabilityRequest(t, h, "orgId=1&date=2025-06-02")
	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, uc.lastReq.LocationID)
	assert.Equal(t, int64(10), *uc.lastReq.LocationID)

	var resp AvailabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2025-06-02", resp.Date)
	require.Len(t, resp.Resources, 2)
	assert.Equal(t, int64(101), resp.Resources[1].ResourceID)
}
