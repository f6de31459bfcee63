package models

import (
	"database/sql"
	"encoding/json"
)

// Tribute represents a row of the tributes table
type Tribute struct {
	ID        int64          `db:"id"`
	FromName  string         `db:"from_name"`
	Message   string         `db:"message"`
	Photos    sql.NullString `db:"photos"`
	CreatedAt sql.NullString `db:"created_at"`
}

// TributeResponse is the external representation of a tribute
type TributeResponse struct {
	ID     int64    `json:"id"`
	From   string   `json:"from"`
	Msg    string   `json:"msg"`
	Photos []string `json:"photos"`
	Date   string   `json:"date"`
}

// NewTribute creates an unsaved tribute; the database assigns ID and CreatedAt on insert.
func NewTribute(from, msg string, photos []string) (*Tribute, error) {
	encoded, err := EncodePhotos(photos)
	if err != nil {
		return nil, err
	}

	return &Tribute{
		FromName: from,
		Message:  msg,
		Photos:   sql.NullString{String: encoded, Valid: true},
	}, nil
}

// Validate validates the tribute data
func (t *Tribute) Validate() error {
	if err := ValidateRequired(t.FromName, "from"); err != nil {
		return err
	}
	return ValidateRequired(t.Message, "msg")
}

// ToResponse maps a stored row to the external shape. This is the only place
// where storage names are translated, so every handler returns the same fields.
func (t *Tribute) ToResponse() TributeResponse {
	return TributeResponse{
		ID:     t.ID,
		From:   t.FromName,
		Msg:    t.Message,
		Photos: DecodePhotos(t.Photos),
		Date:   t.CreatedAt.String,
	}
}

// EncodePhotos serializes photo references for the photos column.
// A nil slice is stored as an empty array, never as NULL.
func EncodePhotos(photos []string) (string, error) {
	if photos == nil {
		photos = []string{}
	}
	data, err := json.Marshal(photos)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DecodePhotos parses the photos column. NULL, empty and malformed values all
// yield an empty, non-nil slice.
func DecodePhotos(raw sql.NullString) []string {
	if !raw.Valid || raw.String == "" {
		return []string{}
	}

	var photos []string
	if err := json.Unmarshal([]byte(raw.String), &photos); err != nil || photos == nil {
		return []string{}
	}
	return photos
}

// ToResponses maps a slice of rows, preserving order
func ToResponses(tributes []*Tribute) []TributeResponse {
	responses := make([]TributeResponse, 0, len(tributes))
	for _, t := range tributes {
		responses = append(responses, t.ToResponse())
	}
	return responses
}
