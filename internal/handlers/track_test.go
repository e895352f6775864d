package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/xnorik/xnorik-backend/internal/db"
	"github.com/xnorik/xnorik-backend/internal/models"
	"github.com/xnorik/xnorik-backend/internal/tracking"
)

func trackRequest(code string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/track/"+code, nil)
	req.SetPathValue("code", code)
	return req
}

func TestTrackHandler_Lookup(t *testing.T) {
	t.Run("matching code returns the record", func(t *testing.T) {
		mockServices := new(MockServiceCollection)
		handler := NewTrackHandler(tracking.NewResolver(mockServices), tracking.NewWatcher(mockServices))

		rec := ownedRecord(primitive.NewObjectID().Hex(), models.StatusRepair)
		mockServices.On("FindServiceByTrackingCode", mock.Anything, "AB12CD34").Return(rec, nil)

		w := httptest.NewRecorder()
		handler.Lookup(w, trackRequest("AB12CD34"))

		assert.Equal(t, http.StatusOK, w.Code)

		var response struct {
			Found    bool                  `json:"found"`
			Record   *models.ServiceRecord `json:"record"`
			Progress int                   `json:"progress"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.True(t, response.Found)
		assert.Equal(t, models.StatusRepair, response.Record.CurrentStatus)
		assert.Equal(t, 60, response.Progress)
	})

	t.Run("lowercase code is normalized before comparing", func(t *testing.T) {
		mockServices := new(MockServiceCollection)
		handler := NewTrackHandler(tracking.NewResolver(mockServices), tracking.NewWatcher(mockServices))

		rec := ownedRecord(primitive.NewObjectID().Hex(), models.StatusPending)
		mockServices.On("FindServiceByTrackingCode", mock.Anything, "AB12CD34").Return(rec, nil)

		w := httptest.NewRecorder()
		handler.Lookup(w, trackRequest("ab12cd34"))

		assert.Equal(t, http.StatusOK, w.Code)
		mockServices.AssertCalled(t, "FindServiceByTrackingCode", mock.Anything, "AB12CD34")
	})

	t.Run("unknown code is an informational miss, not an error", func(t *testing.T) {
		mockServices := new(MockServiceCollection)
		handler := NewTrackHandler(tracking.NewResolver(mockServices), tracking.NewWatcher(mockServices))

		mockServices.On("FindServiceByTrackingCode", mock.Anything, "ZZ99XX11").Return(nil, db.ErrServiceNotFound)

		w := httptest.NewRecorder()
		handler.Lookup(w, trackRequest("ZZ99XX11"))

		assert.Equal(t, http.StatusOK, w.Code)

		var response struct {
			Found   bool   `json:"found"`
			Message string `json:"message"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.False(t, response.Found)
		assert.NotEmpty(t, response.Message)
	})

	t.Run("store failure is a server error", func(t *testing.T) {
		mockServices := new(MockServiceCollection)
		handler := NewTrackHandler(tracking.NewResolver(mockServices), tracking.NewWatcher(mockServices))

		mockServices.On("FindServiceByTrackingCode", mock.Anything, "AB12CD34").
			Return(nil, assert.AnError)

		w := httptest.NewRecorder()
		handler.Lookup(w, trackRequest("AB12CD34"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestTrackHandler_Live_NotFound(t *testing.T) {
	mockServices := new(MockServiceCollection)
	handler := NewTrackHandler(tracking.NewResolver(mockServices), tracking.NewWatcher(mockServices))

	mockServices.On("FindServiceByTrackingCode", mock.Anything, "ZZ99XX11").Return(nil, db.ErrServiceNotFound)

	req := httptest.NewRequest(http.MethodGet, "/api/track/ZZ99XX11/live", nil)
	req.SetPathValue("code", "ZZ99XX11")
	w := httptest.NewRecorder()

	handler.Live(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
