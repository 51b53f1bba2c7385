package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/shenikar/crime_map/internal/models"
	"github.com/shenikar/crime_map/internal/spatial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func newMockRepo(t *testing.T) (*CrimeRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return &CrimeRepository{db: mock}, mock
}

func TestQueryPlan_Individual(t *testing.T) {
	repo, mock := newMockRepo(t)
	date := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	plan := spatial.Plan{
		Mode:  spatial.ModeIndividual,
		Limit: spatial.MaxIndividualRows,
		Filter: spatial.Filter{
			Categories: []string{"THEFT"},
			BBox:       &spatial.BBox{MinLng: -122.5, MinLat: 37.7, MaxLng: -122.3, MaxLat: 37.9},
		},
	}

	rows := pgxmock.NewRows([]string{"id", "category", "date", "geojson"}).
		AddRow(int64(1), strPtr("THEFT"), &date, strPtr(`{"type":"Point","coordinates":[-122.4,37.8]}`)).
		AddRow(int64(2), (*string)(nil), (*time.Time)(nil), (*string)(nil))
	mock.ExpectQuery(regexp.QuoteMeta("ST_AsGeoJSON(geometry) AS geojson")).
		WithArgs([]string{"THEFT"}, -122.5, 37.7, -122.3, 37.9, spatial.MaxIndividualRows).
		WillReturnRows(rows)

	result, err := repo.QueryPlan(context.Background(), plan)

	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, int64(1), result[0].ID)
	assert.Equal(t, "THEFT", result[0].Category)
	assert.Equal(t, date, *result[0].Date)
	assert.JSONEq(t, `{"type":"Point","coordinates":[-122.4,37.8]}`, string(result[0].Geometry))
	assert.Empty(t, result[1].Category)
	assert.Nil(t, result[1].Date)
	assert.Nil(t, result[1].Geometry)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQueryPlan_Clustered(t *testing.T) {
	repo, mock := newMockRepo(t)
	plan := spatial.Plan{Mode: spatial.ModeClustered, ClusterFactor: 0.025}

	rows := pgxmock.NewRows([]string{"geojson", "category", "count"}).
		AddRow(strPtr(`{"type":"Point","coordinates":[1,2]}`), strPtr("ASSAULT"), int64(17))
	mock.ExpectQuery(regexp.QuoteMeta("GROUP BY ST_SnapToGrid(geometry, $1::float8, $1::float8), category")).
		WithArgs(0.025).
		WillReturnRows(rows)

	result, err := repo.QueryPlan(context.Background(), plan)

	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "ASSAULT", result[0].Category)
	assert.Equal(t, int64(17), result[0].Count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQueryPlan_Error(t *testing.T) {
	repo, mock := newMockRepo(t)
	dbErr := errors.New("relation \"crimes_data\" does not exist")

	mock.ExpectQuery("FROM crimes_data").WithArgs(0.05).WillReturnError(dbErr)

	_, err := repo.QueryPlan(context.Background(), spatial.Plan{Mode: spatial.ModeClustered, ClusterFactor: 0.05})

	assert.ErrorIs(t, err, dbErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBuildWhere(t *testing.T) {
	where, args := buildWhere(spatial.Filter{})
	assert.Empty(t, where)
	assert.Empty(t, args)

	where, args = buildWhere(spatial.Filter{Categories: []string{"A", "B"}})
	assert.Contains(t, where, "category = ANY($1)")
	assert.Equal(t, []any{[]string{"A", "B"}}, args)

	where, args = buildWhere(spatial.Filter{
		Categories: []string{"A"},
		BBox:       &spatial.BBox{MinLng: 1, MinLat: 2, MaxLng: 3, MaxLat: 4},
	})
	assert.Contains(t, where, "category = ANY($1) AND ST_Within(geometry, ST_MakeEnvelope($2, $3, $4, $5, 4326))")
	assert.Equal(t, []any{[]string{"A"}, 1.0, 2.0, 3.0, 4.0}, args)
}

func TestCategoryCounts(t *testing.T) {
	repo, mock := newMockRepo(t)

	rows := pgxmock.NewRows([]string{"category", "count"}).
		AddRow("THEFT", int64(30)).
		AddRow("ARSON", int64(2))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE category IS NOT NULL AND category <> ''")).WillReturnRows(rows)

	counts, err := repo.CategoryCounts(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []models.CategoryCount{{Name: "THEFT", Count: 30}, {Name: "ARSON", Count: 2}}, counts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountCrimes(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(id) FROM crimes_data")).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(1234)))

	total, err := repo.CountCrimes(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(1234), total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckConnection(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	assert.NoError(t, repo.CheckConnection(context.Background()))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).WillReturnError(errors.New("connection refused"))
	assert.Error(t, repo.CheckConnection(context.Background()))

	assert.NoError(t, mock.ExpectationsWereMet())
}
