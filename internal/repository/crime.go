package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shenikar/crime_map/internal/models"
	"github.com/shenikar/crime_map/internal/service"
	"github.com/shenikar/crime_map/internal/spatial"
)

// DB - подмножество *pgxpool.Pool, которое нужно репозиторию
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type CrimeRepository struct {
	db DB
}

func NewCrimeRepository(db DB) service.CrimeRepository {
	return &CrimeRepository{db: db}
}

// QueryPlan выполняет план: либо выборку точек, либо агрегацию по сетке
func (r *CrimeRepository) QueryPlan(ctx context.Context, plan spatial.Plan) ([]spatial.Row, error) {
	if plan.Mode == spatial.ModeIndividual {
		return r.findIncidents(ctx, plan)
	}
	return r.clusterIncidents(ctx, plan)
}

func (r *CrimeRepository) findIncidents(ctx context.Context, plan spatial.Plan) ([]spatial.Row, error) {
	where, args := buildWhere(plan.Filter)
	query := `
		SELECT
			id,
			category,
			date,
			ST_AsGeoJSON(geometry) AS geojson
		FROM crimes_data` + where

	if plan.Limit > 0 {
		args = append(args, plan.Limit)
		query += fmt.Sprintf("\n\t\tLIMIT $%d", len(args))
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query incidents: %w", err)
	}
	defer rows.Close()

	result := make([]spatial.Row, 0)
	for rows.Next() {
		var (
			row      spatial.Row
			category *string
			date     *time.Time
			geojson  *string
		)
		if err := rows.Scan(&row.ID, &category, &date, &geojson); err != nil {
			return nil, fmt.Errorf("failed to scan incident row: %w", err)
		}
		row.Category = deref(category)
		row.Date = date
		if geojson != nil {
			row.Geometry = []byte(*geojson)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error incident iteration: %w", err)
	}
	return result, nil
}

func (r *CrimeRepository) clusterIncidents(ctx context.Context, plan spatial.Plan) ([]spatial.Row, error) {
	where, args := buildWhere(plan.Filter)
	args = append(args, plan.ClusterFactor)
	grid := len(args)

	query := `
		SELECT
			ST_AsGeoJSON(ST_Centroid(ST_Collect(geometry))) AS geojson,
			category,
			COUNT(id) AS count
		FROM crimes_data` + where + fmt.Sprintf(`
		GROUP BY ST_SnapToGrid(geometry, $%d::float8, $%d::float8), category`, grid, grid)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query clusters: %w", err)
	}
	defer rows.Close()

	result := make([]spatial.Row, 0)
	for rows.Next() {
		var (
			row      spatial.Row
			category *string
			geojson  *string
		)
		if err := rows.Scan(&geojson, &category, &row.Count); err != nil {
			return nil, fmt.Errorf("failed to scan cluster row: %w", err)
		}
		row.Category = deref(category)
		if geojson != nil {
			row.Geometry = []byte(*geojson)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error cluster iteration: %w", err)
	}
	return result, nil
}

// buildWhere собирает фильтры категорий и bbox; координаты передаются параметрами, а не текстом WKT
func buildWhere(f spatial.Filter) (string, []any) {
	var (
		clauses []string
		args    []any
	)
	if len(f.Categories) > 0 {
		args = append(args, f.Categories)
		clauses = append(clauses, fmt.Sprintf("category = ANY($%d)", len(args)))
	}
	if f.BBox != nil {
		args = append(args, f.BBox.MinLng, f.BBox.MinLat, f.BBox.MaxLng, f.BBox.MaxLat)
		n := len(args)
		clauses = append(clauses, fmt.Sprintf(
			"ST_Within(geometry, ST_MakeEnvelope($%d, $%d, $%d, $%d, 4326))", n-3, n-2, n-1, n))
	}
	if len(clauses) == 0 {
		return "", args
	}
	return "\n\t\tWHERE " + strings.Join(clauses, " AND "), args
}

// CategoryCounts возвращает категории по убыванию количества, пустые категории отбрасываются
func (r *CrimeRepository) CategoryCounts(ctx context.Context) ([]models.CategoryCount, error) {
	query := `
		SELECT category, COUNT(id) AS count
		FROM crimes_data
		WHERE category IS NOT NULL AND category <> ''
		GROUP BY category
		ORDER BY count DESC, category;
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to count categories: %w", err)
	}
	defer rows.Close()

	counts := make([]models.CategoryCount, 0)
	for rows.Next() {
		var c models.CategoryCount
		if err := rows.Scan(&c.Name, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error category iteration: %w", err)
	}
	return counts, nil
}

// CountCrimes возвращает общее количество записей
func (r *CrimeRepository) CountCrimes(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(id) FROM crimes_data;`).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count crimes: %w", err)
	}
	return total, nil
}

// CheckConnection проверяет и соединение, и наличие таблицы
func (r *CrimeRepository) CheckConnection(ctx context.Context) error {
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM crimes_data LIMIT 1);`).Scan(&exists); err != nil {
		return fmt.Errorf("failed to reach crimes_data: %w", err)
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
