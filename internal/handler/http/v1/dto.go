package v1

// ViewportParams параметры окна карты, все необязательные
// @Description Параметры окна карты
type ViewportParams struct {
	Categories string `form:"categories"`
	MinLng     string `form:"min_lng"`
	MinLat     string `form:"min_lat"`
	MaxLng     string `form:"max_lng"`
	MaxLat     string `form:"max_lat"`
	Zoom       string `form:"zoom"`
}

// PredictRequest DTO для предсказания категории
// @Description DTO для предсказания категории по описанию
type PredictRequest struct {
	Description string `json:"description" validate:"required"`
}

// PredictResponse DTO ответа предсказания
// @Description Результат предсказания категории
type PredictResponse struct {
	Success    bool    `json:"success"`
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
}

// HealthResponse DTO проверки состояния
// @Description Состояние сервиса и хранилища
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Timestamp string `json:"timestamp"`
	Error     string `json:"error,omitempty"`
}

// ExtractReportResponse DTO извлеченных из PDF данных
// @Description Координаты и описание из отчета
type ExtractReportResponse struct {
	Coordinates CoordinatesResponse `json:"coordinates"`
	Description string              `json:"description"`
}

type CoordinatesResponse struct {
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}

// CategoryResponse элемент списка категорий
// @Description Категория и количество инцидентов
type CategoryResponse struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// StatsResponse DTO статистики
// @Description Общее количество и разбивка по категориям
type StatsResponse struct {
	TotalCrimes   int64              `json:"total_crimes"`
	TopCategories []CategoryResponse `json:"top_categories"`
}
