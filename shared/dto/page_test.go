package dto_test

import (
	"gearshare/shared/dto"
	"gearshare/shared/failure"
	"net/http"
	"net/url"
	"testing"
)

func intPtr(v int) *int {
	return &v
}

func newRequest(t *testing.T, params map[string]string) *http.Request {
	t.Helper()

	u, err := url.Parse("http://example.com/test")
	if err != nil {
		t.Fatalf("failed to parse URL: %v", err)
	}

	query := u.Query()
	for key, value := range params {
		query.Set(key, value)
	}
	u.RawQuery = query.Encode()

	req, err := http.NewRequest(http.MethodGet, u.String(), nil)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	return req
}

func TestParsePageRequest(t *testing.T) {
	tests := []struct {
		name     string
		params   map[string]string
		wantErr  bool
		expected dto.PageRequest
	}{
		{
			name:     "both params present",
			params:   map[string]string{"from": "5", "size": "10"},
			expected: dto.PageRequest{From: intPtr(5), Size: intPtr(10)},
		},
		{
			name:     "no params",
			params:   map[string]string{},
			expected: dto.PageRequest{},
		},
		{
			name:     "only from",
			params:   map[string]string{"from": "0"},
			expected: dto.PageRequest{From: intPtr(0)},
		},
		{
			name:    "non-integer from",
			params:  map[string]string{"from": "abc"},
			wantErr: true,
		},
		{
			name:    "non-integer size",
			params:  map[string]string{"from": "0", "size": "ten"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := dto.ParsePageRequest(newRequest(t, tt.params))

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				if !failure.IsKind(err, failure.KindValidation) {
					t.Errorf("expected a validation failure, got %v", err)
				}

				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			assertIntPtr(t, "From", tt.expected.From, page.From)
			assertIntPtr(t, "Size", tt.expected.Size, page.Size)
		})
	}
}

func assertIntPtr(t *testing.T, name string, expected, got *int) {
	t.Helper()

	if (expected == nil) != (got == nil) {
		t.Fatalf("expected %s presence %v, got %v", name, expected != nil, got != nil)
	}

	if expected != nil && *expected != *got {
		t.Errorf("expected %s to be %d, got %d", name, *expected, *got)
	}
}

func TestPageRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		page    dto.PageRequest
		wantErr bool
	}{
		{name: "empty request", page: dto.PageRequest{}},
		{name: "valid params", page: dto.PageRequest{From: intPtr(0), Size: intPtr(20)}},
		{name: "negative from alone", page: dto.PageRequest{From: intPtr(-1)}, wantErr: true},
		{name: "zero size alone", page: dto.PageRequest{Size: intPtr(0)}, wantErr: true},
		{name: "negative size", page: dto.PageRequest{From: intPtr(0), Size: intPtr(-5)}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.page.Validate()

			if tt.wantErr {
				if !failure.IsKind(err, failure.KindValidation) {
					t.Errorf("expected a validation failure, got %v", err)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestPageRequest_Pageable(t *testing.T) {
	tests := []struct {
		name     string
		page     dto.PageRequest
		expected dto.Pageable
	}{
		{
			name:     "unpaginated when from absent",
			page:     dto.PageRequest{Size: intPtr(10)},
			expected: dto.Pageable{SortBy: "start_at", SortDir: dto.SortDirDesc},
		},
		{
			name:     "unpaginated when size absent",
			page:     dto.PageRequest{From: intPtr(0)},
			expected: dto.Pageable{SortBy: "start_at", SortDir: dto.SortDirDesc},
		},
		{
			name:     "offset snaps to the containing page",
			page:     dto.PageRequest{From: intPtr(5), Size: intPtr(10)},
			expected: dto.Pageable{Limit: 10, Offset: 0, SortBy: "start_at", SortDir: dto.SortDirDesc},
		},
		{
			name:     "second page",
			page:     dto.PageRequest{From: intPtr(6), Size: intPtr(3)},
			expected: dto.Pageable{Limit: 3, Offset: 6, SortBy: "start_at", SortDir: dto.SortDirDesc},
		},
		{
			name:     "from inside second page",
			page:     dto.PageRequest{From: intPtr(2), Size: intPtr(3)},
			expected: dto.Pageable{Limit: 3, Offset: 0, SortBy: "start_at", SortDir: dto.SortDirDesc},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.page.Pageable("start_at", dto.SortDirDesc)

			if got != tt.expected {
				t.Errorf("expected %+v, got %+v", tt.expected, got)
			}
		})
	}
}
