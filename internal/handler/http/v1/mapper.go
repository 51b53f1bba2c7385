package v1

import (
	"github.com/shenikar/crime_map/internal/classifier"
	"github.com/shenikar/crime_map/internal/models"
	"github.com/shenikar/crime_map/internal/report"
	"github.com/shenikar/crime_map/internal/spatial"
)

// ViewportParamsToQuery разбирает сырые параметры запроса в нормализованный запрос окна
func ViewportParamsToQuery(p ViewportParams) spatial.ViewportQuery {
	return spatial.ParseViewport(spatial.RawParams{
		Categories: p.Categories,
		MinLng:     p.MinLng,
		MinLat:     p.MinLat,
		MaxLng:     p.MaxLng,
		MaxLat:     p.MaxLat,
		Zoom:       p.Zoom,
	})
}

func ModelsToCategoryResponses(categories []models.CategoryCount) []CategoryResponse {
	responses := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		responses = append(responses, CategoryResponse{Name: c.Name, Count: c.Count})
	}
	return responses
}

func ModelToStatsResponse(stats *models.Stats) StatsResponse {
	return StatsResponse{
		TotalCrimes:   stats.TotalCrimes,
		TopCategories: ModelsToCategoryResponses(stats.TopCategories),
	}
}

func ReportToResponse(r *report.Report) ExtractReportResponse {
	return ExtractReportResponse{
		Coordinates: CoordinatesResponse{
			Latitude:  r.Coordinates.Latitude,
			Longitude: r.Coordinates.Longitude,
		},
		Description: r.Description,
	}
}

func PredictionToResponse(p classifier.Prediction) PredictResponse {
	return PredictResponse{
		Success:    true,
		Category:   p.Category,
		Confidence: p.Confidence,
	}
}
