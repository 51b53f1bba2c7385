package v1

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shenikar/crime_map/internal/classifier"
	"github.com/shenikar/crime_map/internal/config"
	"github.com/shenikar/crime_map/internal/metrics"
	"github.com/shenikar/crime_map/internal/report"
	"github.com/shenikar/crime_map/internal/service"
	"github.com/shenikar/crime_map/internal/spatial"
	"github.com/sirupsen/logrus"
)

const (
	truncatedHeader = "X-Result-Truncated"

	msgNothingExtracted = "Could not extract coordinates or description from the PDF. Please ensure the PDF contains the required information."
)

type Handler struct {
	crimeService  service.CrimeService
	reportService report.Service
	predictor     classifier.Predictor
	logger        *logrus.Logger
	validate      *validator.Validate
	cfg           *config.Config
}

func NewHandler(
	crimeService service.CrimeService,
	reportService report.Service,
	predictor classifier.Predictor,
	logger *logrus.Logger,
	cfg *config.Config,
) *Handler {
	return &Handler{
		crimeService:  crimeService,
		reportService: reportService,
		predictor:     predictor,
		logger:        logger,
		validate:      validator.New(),
		cfg:           cfg,
	}
}

// @Summary Get crimes for a map viewport
// @Description Individual incidents at zoom >= 15, grid clusters below. Missing or invalid bbox coordinates disable the spatial filter.
// @Tags Crimes
// @Produce json
// @Param categories query string false "Comma-separated categories"
// @Param min_lng query number false "West bound"
// @Param min_lat query number false "South bound"
// @Param max_lng query number false "East bound"
// @Param max_lat query number false "North bound"
// @Param zoom query int false "Map zoom level" default(12)
// @Success 200 {object} spatial.FeatureCollection
// @Failure 500 {object} spatial.FeatureCollection "Empty collection with an error field"
// @Router /crimes [get]
func (h *Handler) getCrimes(c *gin.Context) {
	log := h.logger.WithField("method", "getCrimes")

	var params ViewportParams
	_ = c.ShouldBindQuery(&params) // все поля строковые, некорректные значения отбрасывает нормализатор
	q := ViewportParamsToQuery(params)

	fc, err := h.crimeService.GetCrimes(c.Request.Context(), q)
	if err != nil {
		log.WithError(err).Error("Failed to get crimes from service")
		c.JSON(http.StatusInternalServerError, spatial.ErrorCollection("failed to load crimes"))
		return
	}
	if fc.Truncated {
		c.Header(truncatedHeader, "true")
	}
	c.JSON(http.StatusOK, fc)
}

// @Summary List crime categories
// @Description Categories ordered by incident count, empty categories excluded
// @Tags Crimes
// @Produce json
// @Success 200 {array} CategoryResponse
// @Failure 500 {array} CategoryResponse "Empty list"
// @Router /categories [get]
func (h *Handler) listCategories(c *gin.Context) {
	log := h.logger.WithField("method", "listCategories")

	categories, err := h.crimeService.ListCategories(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to list categories from service")
		c.JSON(http.StatusInternalServerError, []CategoryResponse{})
		return
	}
	c.JSON(http.StatusOK, ModelsToCategoryResponses(categories))
}

// @Summary Get heatmap points
// @Description [lat, lng, 1] triples, at most 10000. Header X-Result-Truncated is set when the cap was hit.
// @Tags Crimes
// @Produce json
// @Param categories query string false "Comma-separated categories"
// @Param min_lng query number false "West bound"
// @Param min_lat query number false "South bound"
// @Param max_lng query number false "East bound"
// @Param max_lat query number false "North bound"
// @Success 200 {array} spatial.HeatPoint
// @Failure 500 {array} spatial.HeatPoint "Empty list"
// @Router /heatmap [get]
func (h *Handler) getHeatmap(c *gin.Context) {
	log := h.logger.WithField("method", "getHeatmap")

	var params ViewportParams
	_ = c.ShouldBindQuery(&params)
	q := ViewportParamsToQuery(params)

	heatmap, err := h.crimeService.GetHeatmap(c.Request.Context(), q)
	if err != nil {
		log.WithError(err).Error("Failed to get heatmap from service")
		c.JSON(http.StatusInternalServerError, []spatial.HeatPoint{})
		return
	}
	if heatmap.Truncated {
		c.Header(truncatedHeader, "true")
	}
	points := heatmap.Points
	if points == nil {
		points = []spatial.HeatPoint{}
	}
	c.JSON(http.StatusOK, points)
}

// @Summary Get crime statistics
// @Description Total number of crimes and counts for every category
// @Tags Crimes
// @Produce json
// @Success 200 {object} StatsResponse
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /stats [get]
func (h *Handler) getStats(c *gin.Context) {
	log := h.logger.WithField("method", "getStats")

	stats, err := h.crimeService.GetStats(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to get stats from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, ModelToStatsResponse(stats))
}

// @Summary Health check
// @Description Checks the connection to the database
// @Tags System
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	now := time.Now().UTC().Format(time.RFC3339)

	if err := h.crimeService.CheckHealth(c.Request.Context()); err != nil {
		h.logger.WithField("method", "healthCheck").WithError(err).Error("Health check failed")
		c.JSON(http.StatusServiceUnavailable, HealthResponse{
			Status:    "error",
			Database:  "disconnected",
			Timestamp: now,
			Error:     "database unavailable",
		})
		return
	}
	c.JSON(http.StatusOK, HealthResponse{Status: "ok", Database: "connected", Timestamp: now})
}

// @Summary Extract data from a PDF incident report
// @Description Best-effort coordinates and description from the report text
// @Tags Reports
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "PDF report"
// @Success 200 {object} ExtractReportResponse
// @Failure 400 {object} map[string]string "No file, not a PDF or nothing extracted"
// @Failure 413 {object} map[string]string "File too large"
// @Failure 500 {object} map[string]string "Extraction failed"
// @Router /extract-report [post]
func (h *Handler) extractReport(c *gin.Context) {
	log := h.logger.WithField("method", "extractReport")

	if h.cfg.MaxUploadSize > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.cfg.MaxUploadSize)
	}

	file, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			log.WithError(err).Warn("Upload exceeds size limit")
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "File too large"})
			return
		}
		log.WithError(err).Warn("No file in request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}
	if file.Filename == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file selected"})
		return
	}
	if !strings.EqualFold(filepath.Ext(file.Filename), ".pdf") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File must be a PDF"})
		return
	}

	dst := filepath.Join(h.cfg.UploadDir, uuid.NewString()+".pdf")
	log = log.WithField("upload", filepath.Base(dst))
	if err := c.SaveUploadedFile(file, dst); err != nil {
		log.WithError(err).Error("Failed to save uploaded file")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save uploaded file"})
		return
	}
	defer func() {
		if err := os.Remove(dst); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.WithError(err).Warn("Could not remove uploaded file")
		}
	}()

	extracted, err := h.reportService.ExtractReport(c.Request.Context(), dst)
	switch {
	case errors.Is(err, report.ErrNotPDF):
		c.JSON(http.StatusBadRequest, gin.H{"error": "File must be a PDF"})
		return
	case errors.Is(err, report.ErrNothingExtracted):
		c.JSON(http.StatusBadRequest, gin.H{"error": msgNothingExtracted})
		return
	case err != nil:
		log.WithError(err).Error("Failed to extract report")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error extracting data from PDF"})
		return
	}
	c.JSON(http.StatusOK, ReportToResponse(extracted))
}

// @Summary Predict crime category
// @Description Predicts a category from a free-text description
// @Tags Reports
// @Accept json
// @Produce json
// @Param request body PredictRequest true "Description to classify"
// @Success 200 {object} PredictResponse
// @Failure 400 {object} map[string]interface{} "No description provided or invalid format"
// @Failure 500 {object} map[string]interface{} "Prediction failed"
// @Router /predict-category [post]
func (h *Handler) predictCategory(c *gin.Context) {
	log := h.logger.WithField("method", "predictCategory")

	var body map[string]json.RawMessage
	if err := c.ShouldBindJSON(&body); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "No description provided", "success": false})
		return
	}
	raw, ok := body["description"]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No description provided", "success": false})
		return
	}

	var input PredictRequest
	if err := json.Unmarshal(raw, &input.Description); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid description format", "success": false})
		return
	}
	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid description format", "success": false})
		return
	}

	prediction, err := h.predictor.Predict(c.Request.Context(), input.Description)
	switch {
	case errors.Is(err, classifier.ErrEmptyText):
		metrics.PredictionsTotal.WithLabelValues("invalid").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid description format", "success": false})
		return
	case err != nil:
		metrics.PredictionsTotal.WithLabelValues("failed").Inc()
		log.WithError(err).Error("Prediction failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Prediction failed: " + err.Error(), "success": false})
		return
	}

	metrics.PredictionsTotal.WithLabelValues("ok").Inc()
	log.WithFields(logrus.Fields{
		"category":   prediction.Category,
		"confidence": prediction.Confidence,
	}).Info("Prediction successful")
	c.JSON(http.StatusOK, PredictionToResponse(prediction))
}
