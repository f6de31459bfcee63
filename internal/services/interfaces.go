package services

import (
	"context"

	"tribute-api/internal/models"
)

// TributeService defines the interface for tribute operations
type TributeService interface {
	CreateTribute(ctx context.Context, req *CreateTributeRequest) (*models.TributeResponse, error)
	ListTributes(ctx context.Context, page models.PageRequest) (*TributePage, error)
	UpdateTribute(ctx context.Context, req *UpdateTributeRequest) (*models.TributeResponse, error)
	DeleteTribute(ctx context.Context, id int64) error
}

// SessionOpener hands out a tribute service bound to a fresh database session.
// Every session must be closed by the caller.
type SessionOpener interface {
	OpenSession(ctx context.Context) (*Session, error)
}

// TributePage is one page of the tribute listing
type TributePage struct {
	Tributes   []models.TributeResponse `json:"tributes"`
	Pagination models.Pagination        `json:"pagination"`
}
