package dto_test

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"vietour/shared/constant"
	"vietour/shared/dto"
	"vietour/shared/model"

	"github.com/stretchr/testify/assert"
)

func TestMetadata_FromModel(t *testing.T) {
	createdAt := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	updatedAt := time.Date(2025, 1, 2, 12, 0, 0, 0, time.UTC)

	metadata := &dto.Metadata{}
	metadata.FromModel(model.Metadata{CreatedAt: createdAt, UpdatedAt: updatedAt})

	assert.NotEmpty(t, metadata.CreatedAt)
	assert.NotEmpty(t, metadata.UpdatedAt)

	parsed, err := time.Parse(constant.DateFormat, metadata.CreatedAt)
	assert.NoError(t, err)
	assert.True(t, parsed.Equal(createdAt))
}

func TestMetadata_FromModelZero(t *testing.T) {
	metadata := &dto.Metadata{}
	metadata.FromModel(model.Metadata{})

	assert.Empty(t, metadata.CreatedAt)
	assert.Empty(t, metadata.UpdatedAt)
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name           string
		queryParams    map[string]string
		defaultRequest bool
		expected       dto.QueryParams
	}{
		{
			name:           "all parameters",
			queryParams:    map[string]string{"page": "2", "limit": "20", "sort_by": "start_date", "sort_dir": "asc"},
			defaultRequest: false,
			expected:       dto.QueryParams{Page: 2, Limit: 20, SortBy: "start_date", SortDir: dto.SortDirAsc},
		},
		{
			name:           "defaults applied",
			queryParams:    map[string]string{},
			defaultRequest: true,
			expected:       dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:           "invalid values ignored",
			queryParams:    map[string]string{"page": "-1", "limit": "abc", "sort_dir": "sideways"},
			defaultRequest: true,
			expected:       dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := url.Values{}
			for key, value := range tt.queryParams {
				values.Set(key, value)
			}

			req := &http.Request{URL: &url.URL{RawQuery: values.Encode()}}

			var params dto.QueryParams
			params.FromRequest(req, tt.defaultRequest)

			assert.Equal(t, tt.expected, params)
		})
	}
}

func TestQueryParams_Sanitize(t *testing.T) {
	params := dto.QueryParams{SortBy: "start_date; DROP TABLE bookings"}
	params.Sanitize("start_date", "created_at")

	assert.Equal(t, constant.DefaultValueSortBy, params.SortBy)
	assert.Equal(t, constant.DefaultValueSortDir, params.SortDir)

	params = dto.QueryParams{SortBy: "start_date", SortDir: dto.SortDirAsc}
	params.Sanitize("start_date")

	assert.Equal(t, "start_date", params.SortBy)
	assert.Equal(t, dto.SortDirAsc, params.SortDir)
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	group := dto.FilterGroup{Operator: dto.FilterGroupOperatorAnd}
	group.Add(dto.Filter{Field: "status", Value: "Pending", Operator: dto.FilterOperatorEq, Table: "bookings"})
	group.Add(dto.Filter{Field: "tour_guide_id", Value: []string{"g1", "g2"}, Operator: dto.FilterOperatorIn})
	group.Add(dto.Filter{Field: "ignored", Operator: "unknown"})

	where, args := group.GetWhereClause()

	assert.Equal(t, "(bookings.status = :status AND tour_guide_id IN (:tour_guide_id_0, :tour_guide_id_1))", where)
	assert.Equal(t, map[string]any{"status": "Pending", "tour_guide_id_0": "g1", "tour_guide_id_1": "g2"}, args)
}

func TestFilterGroup_Empty(t *testing.T) {
	group := dto.FilterGroup{}

	where, args := group.GetWhereClause()

	assert.Empty(t, where)
	assert.Empty(t, args)
}
