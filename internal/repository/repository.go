// Package repository declares persistence for archived analyses.
// Implementations live in subpackages (postgres).
package repository

import (
	"context"

	"quoteapi/internal/model"
)

// AnalysisRepository stores archived analysis rows. No business logic here.
type AnalysisRepository interface {
	// Create inserts rec and returns the stored row.
	Create(ctx context.Context, rec *model.Record) (*model.Record, error)

	// FindByID returns the row with its analysis payload.
	FindByID(ctx context.Context, id string) (*model.Record, error)

	// List returns rows newest first, without analysis payloads, and the total row count.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Record], error)

	// Delete removes a row. Missing rows are not an error.
	Delete(ctx context.Context, id string) error
}

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a page of T plus the total count.
type PageResult[T any] struct {
	Items []T
	Total int
}
