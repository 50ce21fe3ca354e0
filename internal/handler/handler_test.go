package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"ai-digest/config"
	"ai-digest/internal/model"
)

const validArticleJSON = `{"title":"New Model Released","description":"A new model was released today.","sourceName":"TechCrunch","url":"https://techcrunch.com/article","trendingScore":0.8,"tags":["AI","Tech"]}`

// newTestRouter 启动一个假Gemini服务和内存数据库,返回完整路由
func newTestRouter(t *testing.T, geminiText string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := map[string]any{
			"candidates": []any{
				map[string]any{
					"content": map[string]any{
						"parts": []any{map[string]any{"text": geminiText}},
					},
				},
			},
		}
		json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Article{}, &model.Subscriber{}))

	cfg := &config.Config{
		Gemini: config.GeminiConfig{
			APIKey:  "test-key",
			Model:   "test-model",
			BaseURL: srv.URL,
		},
	}

	r := gin.New()
	NewHandler(db, cfg).RegisterRoutes(r)
	return r
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestGenerateDigest(t *testing.T) {
	r := newTestRouter(t, "["+validArticleJSON+"]")

	w := doJSON(r, http.MethodGet, "/api/digest/generate", "")
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	articles := body["articles"].([]any)
	sources := body["sources"].([]any)
	require.Len(t, articles, 1)
	require.Len(t, sources, 1)
}

func TestGenerateDigestCooldown(t *testing.T) {
	r := newTestRouter(t, "["+validArticleJSON+"]")

	w := doJSON(r, http.MethodGet, "/api/digest/generate", "")
	require.Equal(t, http.StatusOK, w.Code)

	// 冷却期内的第二次请求:状态仍是200,错误放在响应体里
	w = doJSON(r, http.MethodGet, "/api/digest/generate", "")
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	require.Equal(t, true, body["error"])
	require.Contains(t, body["message"], "Please wait")
}

func TestGenerateDigestMissingAPIKey(t *testing.T) {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Article{}, &model.Subscriber{}))

	r := gin.New()
	NewHandler(db, &config.Config{}).RegisterRoutes(r)

	w := doJSON(r, http.MethodGet, "/api/digest/generate", "")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Contains(t, decodeBody(t, w)["message"], "configuration error")
}

func TestGenerateDigestFallsBackOnBadOutput(t *testing.T) {
	r := newTestRouter(t, "I refuse to answer in JSON.")

	w := doJSON(r, http.MethodGet, "/api/digest/generate", "")
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	require.Len(t, body["articles"].([]any), 5)
	require.Len(t, body["sources"].([]any), 5)
}

func TestSaveAndFetchArticles(t *testing.T) {
	r := newTestRouter(t, "[]")

	w := doJSON(r, http.MethodPost, "/api/articles", `{"articles":[`+validArticleJSON+`]}`)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, "Articles saved successfully.", decodeBody(t, w)["message"])

	w = doJSON(r, http.MethodGet, "/api/articles", "")
	require.Equal(t, http.StatusOK, w.Code)

	articles := decodeBody(t, w)["articles"].([]any)
	require.Len(t, articles, 1)

	saved := articles[0].(map[string]any)
	require.Len(t, saved["id"].(string), 36)

	// 时间戳按ISO-8601下发
	_, err := time.Parse(time.RFC3339, saved["createdAt"].(string))
	require.NoError(t, err)
}

func TestSaveArticlesRejectsEmptyAndOversize(t *testing.T) {
	r := newTestRouter(t, "[]")

	w := doJSON(r, http.MethodPost, "/api/articles", `{"articles":[]}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPost, "/api/articles", `not json`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	batch := `{"articles":[` + validArticleJSON
	for i := 0; i < 20; i++ {
		batch += "," + validArticleJSON
	}
	batch += `]}`

	w = doJSON(r, http.MethodPost, "/api/articles", batch)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, decodeBody(t, w)["message"], "Too many articles")
}

func TestClearArticles(t *testing.T) {
	r := newTestRouter(t, "[]")

	// 空库清空
	w := doJSON(r, http.MethodDelete, "/api/articles", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, float64(0), decodeBody(t, w)["deletedCount"])

	doJSON(r, http.MethodPost, "/api/articles", `{"articles":[`+validArticleJSON+`,`+validArticleJSON+`]}`)

	w = doJSON(r, http.MethodDelete, "/api/articles", "")
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	require.Equal(t, float64(2), body["deletedCount"])
	require.Contains(t, body["message"], "Successfully cleared")
}

func TestSubscribe(t *testing.T) {
	r := newTestRouter(t, "[]")

	w := doJSON(r, http.MethodPost, "/api/subscribe", `{"email":"user@example.com"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "Successfully subscribed!", decodeBody(t, w)["message"])

	// 非法邮箱被binding拦下
	w = doJSON(r, http.MethodPost, "/api/subscribe", `{"email":"not-an-email"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodDelete, "/api/subscribe", `{"email":"user@example.com"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "Successfully unsubscribed!", decodeBody(t, w)["message"])
}

func TestGetStatus(t *testing.T) {
	r := newTestRouter(t, "[]")

	doJSON(r, http.MethodPost, "/api/articles", `{"articles":[`+validArticleJSON+`]}`)
	doJSON(r, http.MethodPost, "/api/subscribe", `{"email":"user@example.com"}`)

	w := doJSON(r, http.MethodGet, "/api/status", "")
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	require.Equal(t, float64(1), body["total_articles"])
	require.Equal(t, float64(1), body["total_subscribers"])
}
