package models

import (
	"database/sql"
	"reflect"
	"testing"
)

func TestTributeRoundTrip(t *testing.T) {
	photos := []string{"https://cdn.example.com/a.jpg", "blob:abc", "https://cdn.example.com/b.jpg"}

	tribute, err := NewTribute("Ana", "Rest in peace", photos)
	if err != nil {
		t.Fatalf("NewTribute() failed: %v", err)
	}
	tribute.ID = 7
	tribute.CreatedAt = sql.NullString{String: "2024-05-01 10:00:00", Valid: true}

	resp := tribute.ToResponse()

	if resp.ID != 7 {
		t.Errorf("ID = %d, want 7", resp.ID)
	}
	if resp.From != "Ana" {
		t.Errorf("From = %q, want %q", resp.From, "Ana")
	}
	if resp.Msg != "Rest in peace" {
		t.Errorf("Msg = %q, want %q", resp.Msg, "Rest in peace")
	}
	if !reflect.DeepEqual(resp.Photos, photos) {
		t.Errorf("Photos = %v, want %v", resp.Photos, photos)
	}
	if resp.Date != "2024-05-01 10:00:00" {
		t.Errorf("Date = %q, want created_at passed through", resp.Date)
	}
}

func TestNewTribute_NilPhotosStoredAsEmptyArray(t *testing.T) {
	tribute, err := NewTribute("Ana", "Hello", nil)
	if err != nil {
		t.Fatalf("NewTribute() failed: %v", err)
	}

	if !tribute.Photos.Valid || tribute.Photos.String != "[]" {
		t.Errorf("Photos = %+v, want valid \"[]\"", tribute.Photos)
	}
}

func TestDecodePhotos(t *testing.T) {
	tests := []struct {
		name     string
		raw      sql.NullString
		expected []string
	}{
		{
			name:     "null column",
			raw:      sql.NullString{},
			expected: []string{},
		},
		{
			name:     "empty string",
			raw:      sql.NullString{String: "", Valid: true},
			expected: []string{},
		},
		{
			name:     "empty array",
			raw:      sql.NullString{String: "[]", Valid: true},
			expected: []string{},
		},
		{
			name:     "json null",
			raw:      sql.NullString{String: "null", Valid: true},
			expected: []string{},
		},
		{
			name:     "malformed json",
			raw:      sql.NullString{String: "[\"a.jpg\",", Valid: true},
			expected: []string{},
		},
		{
			name:     "object instead of array",
			raw:      sql.NullString{String: `{"url":"a.jpg"}`, Valid: true},
			expected: []string{},
		},
		{
			name:     "ordered urls",
			raw:      sql.NullString{String: `["b.jpg","a.jpg"]`, Valid: true},
			expected: []string{"b.jpg", "a.jpg"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := DecodePhotos(tt.raw)
			if result == nil {
				t.Fatal("DecodePhotos() returned nil, want non-nil slice")
			}
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("DecodePhotos(%q) = %v, want %v", tt.raw.String, result, tt.expected)
			}
		})
	}
}

func TestToResponses_MalformedRowDoesNotAffectOthers(t *testing.T) {
	rows := []*Tribute{
		{ID: 2, FromName: "B", Message: "m2", Photos: sql.NullString{String: "not json", Valid: true}},
		{ID: 1, FromName: "A", Message: "m1", Photos: sql.NullString{String: `["x.png"]`, Valid: true}},
	}

	responses := ToResponses(rows)

	if len(responses) != 2 {
		t.Fatalf("ToResponses() returned %d items, want 2", len(responses))
	}
	if len(responses[0].Photos) != 0 {
		t.Errorf("malformed row photos = %v, want empty", responses[0].Photos)
	}
	if !reflect.DeepEqual(responses[1].Photos, []string{"x.png"}) {
		t.Errorf("valid row photos = %v, want [x.png]", responses[1].Photos)
	}
}

func TestTributeValidate(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		msg     string
		wantErr bool
	}{
		{"valid", "Ana", "Hello", false},
		{"missing from", "", "Hello", true},
		{"missing msg", "Ana", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tribute := &Tribute{FromName: tt.from, Message: tt.msg}
			err := tribute.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParsePageRequest(t *testing.T) {
	limits := DefaultPageLimits()

	tests := []struct {
		name         string
		page         string
		pageSize     string
		expectedPage int
		expectedSize int
	}{
		{"defaults", "", "", 1, 50},
		{"explicit", "2", "10", 2, 10},
		{"non-numeric page", "abc", "10", 1, 10},
		{"zero page", "0", "10", 1, 10},
		{"negative page", "-3", "10", 1, 10},
		{"page size over max", "1", "1000", 1, 50},
		{"page size at max", "1", "100", 1, 100},
		{"zero page size", "1", "0", 1, 50},
		{"non-numeric page size", "1", "ten", 1, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ParsePageRequest(tt.page, tt.pageSize, limits)
			if p.Page != tt.expectedPage {
				t.Errorf("Page = %d, want %d", p.Page, tt.expectedPage)
			}
			if p.PageSize != tt.expectedSize {
				t.Errorf("PageSize = %d, want %d", p.PageSize, tt.expectedSize)
			}
		})
	}
}

func TestParsePageRequest_MisconfiguredLimits(t *testing.T) {
	p := ParsePageRequest("1", "", PageLimits{DefaultSize: 500, MaxSize: 0})
	if p.PageSize != DefaultPageSize {
		t.Errorf("PageSize = %d, want %d", p.PageSize, DefaultPageSize)
	}
}

func TestParsePageRequest_MaxSizeCappedAtHardLimit(t *testing.T) {
	limits := PageLimits{DefaultSize: 20, MaxSize: 500}

	if p := ParsePageRequest("1", "150", limits); p.PageSize != 20 {
		t.Errorf("PageSize = %d, want default 20 above the hard limit", p.PageSize)
	}
	if p := ParsePageRequest("1", "100", limits); p.PageSize != MaxPageSize {
		t.Errorf("PageSize = %d, want %d", p.PageSize, MaxPageSize)
	}
}

func TestToResponse_NullCreatedAt(t *testing.T) {
	tribute := Tribute{ID: 3, FromName: "Ana", Message: "Hello"}

	resp := tribute.ToResponse()
	if resp.Date != "" {
		t.Errorf("Date = %q, want empty for NULL created_at", resp.Date)
	}
	if resp.Photos == nil || len(resp.Photos) != 0 {
		t.Errorf("Photos = %#v, want empty slice", resp.Photos)
	}
}

func TestPageRequestOffset(t *testing.T) {
	p := PageRequest{Page: 3, PageSize: 10}
	if p.Offset() != 20 {
		t.Errorf("Offset() = %d, want 20", p.Offset())
	}
}

func TestNewPagination(t *testing.T) {
	tests := []struct {
		total    int64
		size     int
		expected int64
	}{
		{0, 50, 0},
		{25, 10, 3},
		{30, 10, 3},
		{31, 10, 4},
		{1, 100, 1},
	}

	for _, tt := range tests {
		p := NewPagination(PageRequest{Page: 1, PageSize: tt.size}, tt.total)
		if p.TotalPages != tt.expected {
			t.Errorf("NewPagination(total=%d, size=%d).TotalPages = %d, want %d", tt.total, tt.size, p.TotalPages, tt.expected)
		}
		if p.TotalCount != tt.total {
			t.Errorf("TotalCount = %d, want %d", p.TotalCount, tt.total)
		}
	}
}

func TestMissingFieldsError(t *testing.T) {
	if got := MissingFieldsError("id").Error(); got != "Missing required field: id" {
		t.Errorf("single field message = %q", got)
	}
	if got := MissingFieldsError("from", "msg").Error(); got != "Missing required fields (from, msg)" {
		t.Errorf("multi field message = %q", got)
	}
}
