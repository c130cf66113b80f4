package dto_test

import (
	"net/http/httptest"
	"net/url"
	"testing"

	"hotel/shared/dto"

	"github.com/stretchr/testify/assert"
)

func TestQueryParams_FromRequest(t *testing.T) {
	sortable := []string{"check_in_date", "room_number", "guest_name"}

	tests := []struct {
		name     string
		query    string
		expected dto.QueryParams
		offset   int
	}{
		{
			name:     "no parameters lists everything by check-in",
			query:    "",
			expected: dto.QueryParams{SortBy: "check_in_date", SortDir: "ASC"},
		},
		{
			name:     "all valid parameters",
			query:    "page=2&limit=20&sort_by=room_number&sort_dir=desc",
			expected: dto.QueryParams{Page: 2, Limit: 20, SortBy: "room_number", SortDir: "DESC"},
			offset:   20,
		},
		{
			name:     "unknown sort column falls back",
			query:    url.Values{"sort_by": {"guest_phone;DROP TABLE bookings"}}.Encode(),
			expected: dto.QueryParams{SortBy: "check_in_date", SortDir: "ASC"},
		},
		{
			name:     "invalid sort direction falls back",
			query:    "sort_by=guest_name&sort_dir=sideways",
			expected: dto.QueryParams{SortBy: "guest_name", SortDir: "ASC"},
		},
		{
			name:     "limit without page starts at first page",
			query:    "limit=5",
			expected: dto.QueryParams{Page: 1, Limit: 5, SortBy: "check_in_date", SortDir: "ASC"},
		},
		{
			name:     "negative and garbage numbers are ignored",
			query:    "page=-1&limit=abc",
			expected: dto.QueryParams{SortBy: "check_in_date", SortDir: "ASC"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/bookings?"+tt.query, nil)

			params := dto.QueryParams{}
			params.FromRequest(req, sortable...)

			assert.Equal(t, tt.expected, params)
			assert.Equal(t, tt.offset, params.Offset())
		})
	}
}

func TestFilter_GetWhereClause(t *testing.T) {
	tests := []struct {
		name   string
		filter dto.Filter
		where  string
		args   map[string]any
	}{
		{
			name:   "eq uses field as arg name",
			filter: dto.Filter{Field: "room_number", Value: "101", Operator: dto.FilterOperatorEq},
			where:  "room_number = :room_number",
			args:   map[string]any{"room_number": "101"},
		},
		{
			name:   "strict less with explicit arg name",
			filter: dto.Filter{Field: "check_in_date", ArgName: "stay_end", Value: "2024-06-05", Operator: dto.FilterOperatorLess},
			where:  "check_in_date < :stay_end",
			args:   map[string]any{"stay_end": "2024-06-05"},
		},
		{
			name:   "strict greater with table prefix",
			filter: dto.Filter{Table: "bookings", Field: "check_out_date", ArgName: "stay_start", Value: "2024-06-01", Operator: dto.FilterOperatorGreater},
			where:  "bookings.check_out_date > :stay_start",
			args:   map[string]any{"stay_start": "2024-06-01"},
		},
		{
			name:   "not equal",
			filter: dto.Filter{Field: "id", ArgName: "exclude_id", Value: int64(3), Operator: dto.FilterOperatorNotEq},
			where:  "id != :exclude_id",
			args:   map[string]any{"exclude_id": int64(3)},
		},
		{
			name:   "in expands slice values",
			filter: dto.Filter{Field: "room_number", Value: []string{"101", "102"}, Operator: dto.FilterOperatorIn},
			where:  "room_number IN (:room_number_0, :room_number_1) ",
			args:   map[string]any{"room_number_0": "101", "room_number_1": "102"},
		},
		{
			name:   "unknown operator",
			filter: dto.Filter{Field: "id", Operator: "between"},
			where:  "",
			args:   map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.filter.GetWhereClause()

			assert.Equal(t, tt.where, where)
			assert.Equal(t, tt.args, args)
		})
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	group := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "room_number", Value: "101", Operator: dto.FilterOperatorEq},
			dto.FilterGroup{
				Operator: dto.FilterGroupOperatorOr,
				Filters: []any{
					dto.Filter{Field: "guest_name", Value: "Ana", Operator: dto.FilterOperatorEq},
					dto.Filter{Field: "guest_phone", Operator: dto.FilterIsNull},
				},
			},
		},
	}

	where, args := group.GetWhereClause()

	assert.Equal(t, "(room_number = :room_number AND (guest_name = :guest_name OR guest_phone IS NULL))", where)
	assert.Equal(t, map[string]any{"room_number": "101", "guest_name": "Ana"}, args)
}

func TestFilterGroup_Empty(t *testing.T) {
	group := dto.FilterGroup{Operator: dto.FilterGroupOperatorAnd}

	where, args := group.GetWhereClause()

	assert.Empty(t, where)
	assert.Empty(t, args)
}
