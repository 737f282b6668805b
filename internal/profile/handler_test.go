package profile

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"myapp_backend/internal/common"
	"myapp_backend/internal/config"
	"myapp_backend/internal/shared"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testUserHeader = "X-Test-User"

func setupRouter(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc, dir := newTestService(t)
	h := NewHandler(svc, &config.Config{UploadMaxBytes: 1 << 20}, zap.NewNop())

	// stands in for the session middleware: the header carries the userId
	fakeSession := func(c *gin.Context) {
		if id := c.GetHeader(testUserHeader); id != "" {
			common.SetSession(c, &shared.Session{Email: id + "@abc.com", UserID: id})
		}
		c.Next()
	}

	r := gin.New()
	h.RegisterRoutes(r.Group("/api"), fakeSession)
	return r, dir
}

type profileBody struct {
	Success bool     `json:"success"`
	Profile *Profile `json:"profile"`
}

func decodeProfile(t *testing.T, w *httptest.ResponseRecorder) profileBody {
	t.Helper()
	var body profileBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func multipartRequest(t *testing.T, path, userID string, fields map[string]string, avatarName, avatarContent string) *http.Request {
	t.Helper()
	buf := new(bytes.Buffer)
	mw := multipart.NewWriter(buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if avatarName != "" {
		part, err := mw.CreateFormFile("avatar", avatarName)
		require.NoError(t, err)
		_, err = part.Write([]byte(avatarContent))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if userID != "" {
		req.Header.Set(testUserHeader, userID)
	}
	return req
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetProfile_EmptyBeforeSave(t *testing.T) {
	r, _ := setupRouter(t)

	for _, path := range []string{"/api/profile", "/api/editProfile"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set(testUserHeader, "alice")
		w := serve(r, req)

		require.Equal(t, http.StatusOK, w.Code, path)
		assert.JSONEq(t, `{"profile":null}`, w.Body.String())
	}
}

func TestProfileRoutes_WithoutUser(t *testing.T) {
	r, _ := setupRouter(t)

	w := serve(r, httptest.NewRequest(http.MethodGet, "/api/profile", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = serve(r, multipartRequest(t, "/api/editProfile", "", map[string]string{"firstName": "x"}, "", ""))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"error":"Unauthorized"`)
}

func TestSaveProfile_MultipartWithAvatar(t *testing.T) {
	r, _ := setupRouter(t)

	w := serve(r, multipartRequest(t, "/api/editProfile", "alice",
		map[string]string{"firstName": "Alice", "lastName": "Smith", "unknown": "dropped"},
		"Me.PNG", "png bytes"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decodeProfile(t, w)
	assert.True(t, body.Success)
	require.NotNil(t, body.Profile)
	assert.Equal(t, "alice", body.Profile.UserID)
	assert.Equal(t, "Alice", body.Profile.FirstName)
	assert.True(t, strings.HasPrefix(body.Profile.Avatar, "/uploads/"))
	assert.NotContains(t, w.Body.String(), "dropped")

	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	req.Header.Set(testUserHeader, "alice")
	got := decodeProfile(t, serve(r, req))
	require.NotNil(t, got.Profile)
	assert.Equal(t, body.Profile.Avatar, got.Profile.Avatar)
}

func TestSaveProfile_EmptyAvatarPartIgnored(t *testing.T) {
	r, dir := setupRouter(t)

	w := serve(r, multipartRequest(t, "/api/profile", "alice", map[string]string{"firstName": "Alice"}, "empty.png", ""))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeProfile(t, w).Profile.Avatar)
	assert.Equal(t, 0, countFiles(t, dir))
}

func TestSaveProfile_URLEncoded(t *testing.T) {
	r, _ := setupRouter(t)

	form := url.Values{"firstName": {"Bob"}, "maritalStatus": {"Married"}}
	req := httptest.NewRequest(http.MethodPost, "/api/profile", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set(testUserHeader, "bob")

	w := serve(r, req)
	require.Equal(t, http.StatusOK, w.Code)
	p := decodeProfile(t, w).Profile
	assert.Equal(t, "Bob", p.FirstName)
	assert.Equal(t, "Married", p.MaritalStatus)
}

func TestSaveProfile_TooLarge(t *testing.T) {
	r, _ := setupRouter(t)

	w := serve(r, multipartRequest(t, "/api/profile", "alice", nil, "big.png", strings.Repeat("x", 2<<20)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
