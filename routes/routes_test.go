package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"paint-estimator/controllers"
	"paint-estimator/services"
)

func setupTestRouter(t *testing.T) (*gin.Engine, *services.RoomService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()
	roomSvc := services.NewRoomService(logger)
	rc := controllers.NewRoomController(roomSvc, services.NewReportService(logger), logger, 2)
	return SetupRouter(rc, nil, logger), roomSvc
}

func postForm(r http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func livingRoomForm() url.Values {
	return url.Values{
		"name":    {"Living Room"},
		"length":  {"12"},
		"width":   {"10"},
		"height":  {"8"},
		"doors":   {"1"},
		"windows": {"2"},
		"coats":   {"2"},
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestHealth(t *testing.T) {
	r, _ := setupTestRouter(t)
	w := do(r, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestIndex_EmptyShowsNoData(t *testing.T) {
	r, _ := setupTestRouter(t)

	w := do(r, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No rooms yet. Add one above to begin.")
	assert.NotContains(t, w.Body.String(), "<table>")
}

func TestSubmitForm_AddsRoomAndRendersTable(t *testing.T) {
	r, roomSvc := setupTestRouter(t)

	w := postForm(r, "/rooms", livingRoomForm())
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/?added=Living+Room", w.Header().Get("Location"))
	assert.Equal(t, 1, roomSvc.Count())

	page := do(r, http.MethodGet, "/?added=Living+Room", "")
	body := page.Body.String()
	assert.Contains(t, body, "Added room: Living Room")
	assert.Contains(t, body, "842.00")
	assert.Contains(t, body, `<div class="metric-label">Total Paintable Area × Coats</div>`)
	assert.Contains(t, body, `<div class="metric">842 sq ft</div>`)
	assert.Contains(t, body, "/export/csv")
}

func TestSubmitForm_BlankNameIsIgnored(t *testing.T) {
	r, roomSvc := setupTestRouter(t)

	form := livingRoomForm()
	form.Set("name", "   ")
	w := postForm(r, "/rooms", form)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	assert.Equal(t, 0, roomSvc.Count())
}

func TestSubmitForm_RejectsBadNumbers(t *testing.T) {
	r, roomSvc := setupTestRouter(t)

	form := livingRoomForm()
	form.Set("length", "twelve")
	w := postForm(r, "/rooms", form)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Please enter a valid number")

	form = livingRoomForm()
	form.Set("length", "-3")
	w = postForm(r, "/rooms", form)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Length must be at least 0")

	form = livingRoomForm()
	form.Set("coats", "0")
	w = postForm(r, "/rooms", form)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Coats must be at least 1")

	assert.Equal(t, 0, roomSvc.Count())
}

func TestSubmitForm_RejectsNonFiniteAndHugeValues(t *testing.T) {
	r, roomSvc := setupTestRouter(t)

	cases := map[string]string{
		"length": "Inf",
		"width":  "NaN",
		"height": "-Inf",
		"doors":  "439208192231179800",
		"coats":  "101",
	}
	for field, value := range cases {
		form := livingRoomForm()
		form.Set(field, value)
		w := postForm(r, "/rooms", form)
		assert.Equal(t, http.StatusBadRequest, w.Code, "%s=%s", field, value)
	}

	form := livingRoomForm()
	form.Set("length", "Inf")
	w := postForm(r, "/rooms", form)
	assert.Contains(t, w.Body.String(), "Length must be at most 10000")

	assert.Equal(t, 0, roomSvc.Count())

	// the list stays encodable
	w = do(r, http.MethodGet, "/api/rooms", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode(t, w).Success)
}

func TestSubmitForm_DefaultCoats(t *testing.T) {
	r, roomSvc := setupTestRouter(t)

	form := livingRoomForm()
	form.Del("coats")
	postForm(r, "/rooms", form)

	require.Equal(t, 1, roomSvc.Count())
	assert.Equal(t, 2, roomSvc.List()[0].Coats)
}

func TestDeleteFromForm(t *testing.T) {
	r, roomSvc := setupTestRouter(t)
	postForm(r, "/rooms", livingRoomForm())
	id := roomSvc.List()[0].ID

	w := postForm(r, "/rooms/"+id+"/delete", url.Values{})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.True(t, roomSvc.IsEmpty())

	w = postForm(r, "/rooms/"+id+"/delete", url.Values{})
	assert.Equal(t, http.StatusSeeOther, w.Code)
}

func TestDownloadCSV(t *testing.T) {
	r, _ := setupTestRouter(t)

	w := do(r, http.MethodGet, "/export/csv", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "paint_estimate.csv")
	assert.Equal(t, 1, strings.Count(w.Body.String(), "\n"))

	postForm(r, "/rooms", livingRoomForm())
	w = do(r, http.MethodGet, "/api/rooms/export.csv", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasSuffix(w.Body.String(), "Living Room,12,10,8,1,2,352.00,120.00,51.00,421.00,2,842.00\n"))
}

func TestDownloadXLSX(t *testing.T) {
	r, _ := setupTestRouter(t)
	postForm(r, "/rooms", livingRoomForm())

	w := do(r, http.MethodGet, "/export/xlsx", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, services.XLSXMimeType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "paint_estimate.xlsx")
	assert.True(t, strings.HasPrefix(w.Body.String(), "PK"))
}

func TestAPI_CreateListDelete(t *testing.T) {
	r, roomSvc := setupTestRouter(t)

	w := do(r, http.MethodPost, "/api/rooms", `{"name":"Living Room","length":12,"width":10,"height":8,"doors":1,"windows":2,"coats":2}`)
	require.Equal(t, http.StatusCreated, w.Code)
	env := decode(t, w)
	assert.True(t, env.Success)

	var room struct {
		Name               string  `json:"name"`
		TotalAreaWithCoats float64 `json:"totalAreaWithCoats"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &room))
	assert.Equal(t, "Living Room", room.Name)
	assert.Equal(t, 842.0, room.TotalAreaWithCoats)

	w = do(r, http.MethodGet, "/api/rooms", "")
	require.Equal(t, http.StatusOK, w.Code)
	var summary struct {
		Empty      bool    `json:"empty"`
		TotalArea  float64 `json:"totalArea"`
		TotalLabel string  `json:"totalLabel"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &summary))
	assert.False(t, summary.Empty)
	assert.Equal(t, "842 sq ft", summary.TotalLabel)

	w = do(r, http.MethodDelete, "/api/rooms/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Please enter a valid integer", decode(t, w).Error)

	w = do(r, http.MethodDelete, "/api/rooms/2", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Invalid number", decode(t, w).Error)
	assert.Equal(t, 1, roomSvc.Count())

	w = do(r, http.MethodDelete, "/api/rooms/1", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, roomSvc.IsEmpty())
}

func TestAPI_CreateRejectsOutOfBoundsNumbers(t *testing.T) {
	r, roomSvc := setupTestRouter(t)

	for _, body := range []string{
		`{"name":"Hall","length":1e400,"width":1,"height":1,"coats":1}`,
		`{"name":"Hall","length":20000,"width":1,"height":1,"coats":1}`,
		`{"name":"Hall","length":1,"width":1,"height":1,"doors":439208192231179800,"coats":1}`,
	} {
		w := do(r, http.MethodPost, "/api/rooms", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.False(t, decode(t, w).Success)
	}
	assert.Equal(t, 0, roomSvc.Count())
}

func TestAPI_CreateRejectsBlankName(t *testing.T) {
	r, roomSvc := setupTestRouter(t)

	w := do(r, http.MethodPost, "/api/rooms", `{"name":"  ","length":1,"width":1,"height":1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Room name cannot be empty", decode(t, w).Error)
	assert.Equal(t, 0, roomSvc.Count())
}
