package models

// CategoryCount - количество инцидентов одной категории
type CategoryCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// Stats - сводная статистика по всем инцидентам
type Stats struct {
	TotalCrimes   int64           `json:"total_crimes"`
	TopCategories []CategoryCount `json:"top_categories"`
}
