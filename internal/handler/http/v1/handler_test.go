package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/crime_map/internal/classifier"
	classifier_mocks "github.com/shenikar/crime_map/internal/classifier/mocks"
	"github.com/shenikar/crime_map/internal/config"
	"github.com/shenikar/crime_map/internal/models"
	"github.com/shenikar/crime_map/internal/report"
	report_mocks "github.com/shenikar/crime_map/internal/report/mocks"
	"github.com/shenikar/crime_map/internal/service/mocks"
	"github.com/shenikar/crime_map/internal/spatial"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type testMocks struct {
	crimes    *mocks.MockCrimeService
	reports   *report_mocks.MockService
	predictor *classifier_mocks.MockPredictor
	uploadDir string
}

// newTestHandler создает Handler с мокированными зависимостями
func newTestHandler(t *testing.T) (*Handler, *testMocks, *gin.Engine) {
	ctrl := gomock.NewController(t)
	m := &testMocks{
		crimes:    mocks.NewMockCrimeService(ctrl),
		reports:   report_mocks.NewMockService(ctrl),
		predictor: classifier_mocks.NewMockPredictor(ctrl),
		uploadDir: t.TempDir(),
	}

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	cfg := &config.Config{
		UploadDir:     m.uploadDir,
		MaxUploadSize: 1 << 20,
	}

	handler := NewHandler(m.crimes, m.reports, m.predictor, logger, cfg)

	// Настройка Gin роутера для тестов
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestLogger(logger))
	api := router.Group("/api")
	handler.RegisterRoutes(api)

	return handler, m, router
}

// makeRequest - вспомогательная функция для выполнения HTTP-запросов
func makeRequest(router *gin.Engine, method, url string, body io.Reader, headers ...map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, h := range headers {
		for key, value := range h {
			req.Header.Set(key, value)
		}
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// makeUpload собирает multipart-запрос с одним файлом
func makeUpload(t *testing.T, router *gin.Engine, field, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if field != "" {
		part, err := mw.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/extract-report", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func sampleCollection(t *testing.T) *spatial.FeatureCollection {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	fc, _ := spatial.NewAssembler(logger).Assemble(
		spatial.Plan{Mode: spatial.ModeClustered},
		[]spatial.Row{{Category: "THEFT", Count: 4, Geometry: []byte(`{"type":"Point","coordinates":[-122.4,37.8]}`)}},
	)
	return fc
}

func TestGetCrimes_Success(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.crimes.EXPECT().
		GetCrimes(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, q spatial.ViewportQuery) (*spatial.FeatureCollection, error) {
			assert.Equal(t, 13, q.Zoom)
			assert.Equal(t, []string{"THEFT", "ASSAULT"}, q.Categories)
			require.NotNil(t, q.BBox)
			assert.Equal(t, -122.5, q.BBox.MinLng)
			return sampleCollection(t), nil
		}).Times(1)

	w := makeRequest(router, "GET", "/api/crimes?categories=THEFT,ASSAULT&min_lng=-122.5&min_lat=37.7&max_lng=-122.3&max_lat=37.9&zoom=13", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get(truncatedHeader))
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "FeatureCollection", resp["type"])
	features := resp["features"].([]interface{})
	require.Len(t, features, 1)
	props := features[0].(map[string]interface{})["properties"].(map[string]interface{})
	assert.Equal(t, true, props["clustered"])
	assert.Equal(t, float64(4), props["count"])
}

func TestGetCrimes_InvalidParamsDegrade(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.crimes.EXPECT().
		GetCrimes(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, q spatial.ViewportQuery) (*spatial.FeatureCollection, error) {
			assert.Nil(t, q.BBox)
			assert.Equal(t, spatial.DefaultZoom, q.Zoom)
			return spatial.NewFeatureCollection(nil), nil
		}).Times(1)

	w := makeRequest(router, "GET", "/api/crimes?min_lng=abc&min_lat=37.7&max_lng=-122.3&zoom=close", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"type":"FeatureCollection","features":[]}`, w.Body.String())
}

func TestGetCrimes_Truncated(t *testing.T) {
	_, m, router := newTestHandler(t)
	fc := spatial.NewFeatureCollection(nil)
	fc.Truncated = true

	m.crimes.EXPECT().GetCrimes(gomock.Any(), gomock.Any()).Return(fc, nil).Times(1)

	w := makeRequest(router, "GET", "/api/crimes?zoom=16", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "true", w.Header().Get(truncatedHeader))
	assert.Contains(t, w.Body.String(), `"truncated":true`)
}

func TestGetCrimes_ServiceError(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.crimes.EXPECT().GetCrimes(gomock.Any(), gomock.Any()).Return(nil, errors.New("pq: relation does not exist")).Times(1)

	w := makeRequest(router, "GET", "/api/crimes", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"type":"FeatureCollection","features":[],"error":"failed to load crimes"}`, w.Body.String())
	assert.NotContains(t, w.Body.String(), "relation")
}

func TestListCategories(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.crimes.EXPECT().ListCategories(gomock.Any()).
		Return([]models.CategoryCount{{Name: "THEFT", Count: 10}, {Name: "ARSON", Count: 1}}, nil).Times(1)

	w := makeRequest(router, "GET", "/api/categories", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"name":"THEFT","count":10},{"name":"ARSON","count":1}]`, w.Body.String())
}

func TestListCategories_ServiceError(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.crimes.EXPECT().ListCategories(gomock.Any()).Return(nil, errors.New("db error")).Times(1)

	w := makeRequest(router, "GET", "/api/categories", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestGetHeatmap(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.crimes.EXPECT().
		GetHeatmap(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, q spatial.ViewportQuery) (*spatial.Heatmap, error) {
			assert.Equal(t, []string{"ROBBERY"}, q.Categories)
			return &spatial.Heatmap{Points: []spatial.HeatPoint{{37.8, -122.4, 1}}, Truncated: true}, nil
		}).Times(1)

	w := makeRequest(router, "GET", "/api/heatmap?categories=ROBBERY", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "true", w.Header().Get(truncatedHeader))
	assert.JSONEq(t, `[[37.8,-122.4,1]]`, w.Body.String())
}

func TestGetHeatmap_EmptyAndError(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.crimes.EXPECT().GetHeatmap(gomock.Any(), gomock.Any()).Return(&spatial.Heatmap{}, nil).Times(1)
	w := makeRequest(router, "GET", "/api/heatmap", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	m.crimes.EXPECT().GetHeatmap(gomock.Any(), gomock.Any()).Return(nil, errors.New("db error")).Times(1)
	w = makeRequest(router, "GET", "/api/heatmap", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestGetStats(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.crimes.EXPECT().GetStats(gomock.Any()).Return(&models.Stats{
		TotalCrimes:   3,
		TopCategories: []models.CategoryCount{{Name: "THEFT", Count: 3}},
	}, nil).Times(1)

	w := makeRequest(router, "GET", "/api/stats", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"total_crimes":3,"top_categories":[{"name":"THEFT","count":3}]}`, w.Body.String())
}

func TestGetStats_ServiceError(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.crimes.EXPECT().GetStats(gomock.Any()).Return(nil, errors.New("db error")).Times(1)

	w := makeRequest(router, "GET", "/api/stats", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "error")
}

func TestHealthCheck(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.crimes.EXPECT().CheckHealth(gomock.Any()).Return(nil).Times(1)
	w := makeRequest(router, "GET", "/api/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "connected", resp.Database)
	assert.NotEmpty(t, resp.Timestamp)

	m.crimes.EXPECT().CheckHealth(gomock.Any()).Return(errors.New("connection refused")).Times(1)
	w = makeRequest(router, "GET", "/api/health", nil)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "disconnected", resp.Database)
}

func TestPredictCategory_Success(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.predictor.EXPECT().
		Predict(gomock.Any(), "Wallet stolen from a parked car").
		Return(classifier.Prediction{Category: "LARCENY/THEFT", Confidence: 0.87}, nil).Times(1)

	w := makeRequest(router, "POST", "/api/predict-category", bytes.NewBufferString(`{"description":"Wallet stolen from a parked car"}`))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"category":"LARCENY/THEFT","confidence":0.87}`, w.Body.String())
}

func TestPredictCategory_BadRequests(t *testing.T) {
	cases := []struct {
		body    string
		message string
	}{
		{`{"description": "x"`, "No description provided"},
		{`{"text":"stolen"}`, "No description provided"},
		{`{"description": 42}`, "Invalid description format"},
		{`{"description": ""}`, "Invalid description format"},
		{`{"description": null}`, "Invalid description format"},
	}
	for _, tc := range cases {
		t.Run(tc.body, func(t *testing.T) {
			_, m, router := newTestHandler(t)
			m.predictor.EXPECT().Predict(gomock.Any(), gomock.Any()).Times(0) // Предиктор не должен вызываться

			w := makeRequest(router, "POST", "/api/predict-category", bytes.NewBufferString(tc.body))

			assert.Equal(t, http.StatusBadRequest, w.Code)
			var resp map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tc.message, resp["error"])
			assert.Equal(t, false, resp["success"])
		})
	}
}

func TestPredictCategory_BlankDescription(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.predictor.EXPECT().Predict(gomock.Any(), "   ").Return(classifier.Prediction{}, classifier.ErrEmptyText).Times(1)

	w := makeRequest(router, "POST", "/api/predict-category", bytes.NewBufferString(`{"description":"   "}`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid description format")
}

func TestPredictCategory_ModelUnavailable(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.predictor.EXPECT().
		Predict(gomock.Any(), gomock.Any()).
		Return(classifier.Prediction{}, fmt.Errorf("%w: file not found", classifier.ErrModelUnavailable)).Times(1)

	w := makeRequest(router, "POST", "/api/predict-category", bytes.NewBufferString(`{"description":"stolen bike"}`))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["success"])
	assert.Contains(t, resp["error"], "Prediction failed")
}

func TestExtractReport_Success(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.reports.EXPECT().
		ExtractReport(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, path string) (*report.Report, error) {
			assert.Equal(t, m.uploadDir, filepath.Dir(path))
			content, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, "%PDF-1.4 body", string(content))
			return &report.Report{
				Coordinates: report.Coordinates{Latitude: "37.78", Longitude: "-122.40"},
				Description: "Petty theft from locked auto.",
			}, nil
		}).Times(1)

	w := makeUpload(t, router, "file", "Report.PDF", []byte("%PDF-1.4 body"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"coordinates":{"latitude":"37.78","longitude":"-122.40"},"description":"Petty theft from locked auto."}`, w.Body.String())

	// Загруженный файл удаляется после обработки
	entries, err := os.ReadDir(m.uploadDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestExtractReport_NoFile(t *testing.T) {
	_, m, router := newTestHandler(t)
	m.reports.EXPECT().ExtractReport(gomock.Any(), gomock.Any()).Times(0)

	w := makeUpload(t, router, "", "", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "No file provided")
}

func TestExtractReport_NotPDFExtension(t *testing.T) {
	_, m, router := newTestHandler(t)
	m.reports.EXPECT().ExtractReport(gomock.Any(), gomock.Any()).Times(0)

	w := makeUpload(t, router, "file", "notes.txt", []byte("hello"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "File must be a PDF")
}

func TestExtractReport_ServiceErrors(t *testing.T) {
	cases := []struct {
		err    error
		status int
		text   string
	}{
		{report.ErrNotPDF, http.StatusBadRequest, "File must be a PDF"},
		{report.ErrNothingExtracted, http.StatusBadRequest, "Could not extract coordinates or description"},
		{errors.New("pdftotext failed"), http.StatusInternalServerError, "Error extracting data from PDF"},
	}
	for _, tc := range cases {
		t.Run(tc.text, func(t *testing.T) {
			_, m, router := newTestHandler(t)
			m.reports.EXPECT().ExtractReport(gomock.Any(), gomock.Any()).Return(nil, tc.err).Times(1)

			w := makeUpload(t, router, "file", "report.pdf", []byte("%PDF-1.4"))

			assert.Equal(t, tc.status, w.Code)
			assert.Contains(t, w.Body.String(), tc.text)
			entries, err := os.ReadDir(m.uploadDir)
			require.NoError(t, err)
			assert.Empty(t, entries)
		})
	}
}

func TestRequestLogger_SetsRequestID(t *testing.T) {
	_, m, router := newTestHandler(t)
	m.crimes.EXPECT().CheckHealth(gomock.Any()).Return(nil).Times(2)

	w := makeRequest(router, "GET", "/api/health", nil)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	w = makeRequest(router, "GET", "/api/health", nil, map[string]string{RequestIDHeader: "abc-123"})
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestRateLimit(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RateLimit(0.001, 1, logger))
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, makeRequest(router, "GET", "/ping", nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, makeRequest(router, "GET", "/ping", nil).Code)
}

func TestRateLimit_Disabled(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RateLimit(0, 0, logger))
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 20; i++ {
		assert.Equal(t, http.StatusOK, makeRequest(router, "GET", "/ping", nil).Code)
	}
}

func TestCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(CORS([]string{"http://localhost:3000"}))
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := makeRequest(router, "GET", "/ping", nil, map[string]string{"Origin": "http://localhost:3000"})
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	w = makeRequest(router, "GET", "/ping", nil, map[string]string{"Origin": "http://evil.example"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}
