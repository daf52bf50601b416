package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/classroom-gateway/internal/middleware"
	"github.com/noah-isme/classroom-gateway/internal/models"
	"github.com/noah-isme/classroom-gateway/internal/validation"
)

var (
	teacher = &models.Identity{UserID: 1, UserType: models.UserTypeTeacher, Token: "t"}
	student = &models.Identity{UserID: 7, UserType: models.UserTypeStudent, Token: "s"}
)

type apiError struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details"`
}

type envelope struct {
	Data  json.RawMessage        `json:"data"`
	Error *apiError              `json:"error"`
	Meta  map[string]interface{} `json:"meta"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func testValidator() *validation.Validator {
	return validation.New(validation.Options{
		Location:    time.UTC,
		Now:         func() time.Time { return time.Date(2026, 10, 15, 10, 30, 0, 0, time.UTC) },
		MaxFileSize: 1 << 20,
	})
}

func newJSONContext(method, path string, body interface{}, identity *models.Identity, params gin.Params) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = params
	if identity != nil {
		c.Set(middleware.ContextUserKey, identity)
	}
	return c, w
}

type testFile struct {
	field       string
	name        string
	contentType string
	content     []byte
}

func newMultipartContext(t *testing.T, method, path string, fields map[string]string, files []testFile, identity *models.Identity, params gin.Params) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for _, f := range files {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", `form-data; name="`+f.field+`"; filename="`+f.name+`"`)
		header.Set("Content-Type", f.contentType)
		part, err := mw.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(f.content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(method, path, body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	c.Request = req
	c.Params = params
	if identity != nil {
		c.Set(middleware.ContextUserKey, identity)
	}
	return c, w
}

func ids(pairs ...string) gin.Params {
	params := make(gin.Params, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		params = append(params, gin.Param{Key: pairs[i], Value: pairs[i+1]})
	}
	return params
}
