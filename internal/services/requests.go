package services

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"tribute-api/internal/models"
)

// MsgInvalidBody is returned when a body is not a JSON object of the expected shape
const MsgInvalidBody = "Invalid request body"

var validate = validator.New()

// TributeID is a tribute identifier as sent by clients. Both JSON numbers and
// numeric strings are accepted, including integral floats such as 1.0 or 1e2.
// Anything else decodes to zero, which validation then reports as missing.
type TributeID int64

// UnmarshalJSON implements json.Unmarshaler
func (id *TributeID) UnmarshalJSON(data []byte) error {
	*id = 0

	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	raw := string(data)
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		raw = strings.TrimSpace(s)
	}

	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		*id = TributeID(n)
		return nil
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return nil
	}
	*id = TributeID(int64(f))
	return nil
}

// CreateTributeRequest is a validated create body
type CreateTributeRequest struct {
	From   string   `json:"from" validate:"required"`
	Msg    string   `json:"msg" validate:"required"`
	Photos []string `json:"photos"`
}

// UpdateTributeRequest is a validated update body
type UpdateTributeRequest struct {
	ID     TributeID `json:"id" validate:"required"`
	From   string    `json:"from" validate:"required"`
	Msg    string    `json:"msg" validate:"required"`
	Photos []string  `json:"photos"`
}

// DeleteTributeRequest is a validated delete body
type DeleteTributeRequest struct {
	ID TributeID `json:"id" validate:"required"`
}

// ParseCreateRequest decodes and validates a create body. The error, when
// present, is always a *models.ValidationError.
func ParseCreateRequest(body []byte) (*CreateTributeRequest, error) {
	req := &CreateTributeRequest{}
	if err := parseBody(body, req, "from", "msg"); err != nil {
		return nil, err
	}
	return req, nil
}

// ParseUpdateRequest decodes and validates an update body
func ParseUpdateRequest(body []byte) (*UpdateTributeRequest, error) {
	req := &UpdateTributeRequest{}
	if err := parseBody(body, req, "id", "from", "msg"); err != nil {
		return nil, err
	}
	return req, nil
}

// ParseDeleteRequest decodes and validates a delete body
func ParseDeleteRequest(body []byte) (*DeleteTributeRequest, error) {
	req := &DeleteTributeRequest{}
	if err := parseBody(body, req, "id"); err != nil {
		return nil, err
	}
	return req, nil
}

// parseBody decodes body into dest and reports the full set of required
// fields when any of them is missing.
func parseBody(body []byte, dest interface{}, required ...string) error {
	if err := json.Unmarshal(body, dest); err != nil {
		return &models.ValidationError{Field: "body", Message: MsgInvalidBody}
	}

	if err := validate.Struct(dest); err != nil {
		return models.MissingFieldsError(required...)
	}

	return nil
}
