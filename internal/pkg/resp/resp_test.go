package resp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"relaychat/internal/pkg/errs"
)

func TestRespondSuccess(t *testing.T) {
	rec := httptest.NewRecorder()

	RespondSuccess(rec, map[string]string{"status": "ok"})

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.JSONEq(t, `{"code":0,"message":"success","data":{"status":"ok"}}`, rec.Body.String())
}

func TestRespondError(t *testing.T) {
	rec := httptest.NewRecorder()

	RespondError(rec, errs.NewError(errs.ErrRoomNotFound))

	require.Equal(t, http.StatusNotFound, rec.Code)

	var body JSONResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, errs.ErrRoomNotFound, body.Code)
	require.Nil(t, body.Data)
}

func TestRespondError_NilBecomesUnknown(t *testing.T) {
	rec := httptest.NewRecorder()

	RespondError(rec, nil)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
}
