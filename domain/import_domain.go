package domain

import (
	"errors"
)

var (
	MessageSuccessImport = "recipe import completed"
	MessageFailedImport  = "failed to import recipes"

	ErrImportIDMissing = errors.New("no importable id in request")
	ErrEmptyImport     = errors.New("import request needs an id, url, search term or category")
)

const (
	// ImportOutcome values for per-item bulk results.
	ImportOutcomeInserted = "inserted"
	ImportOutcomeSkipped  = "skipped"
	ImportOutcomeFailed   = "failed"

	// MaxBulkImportItems caps how many upstream records one bulk request
	// may process.
	MaxBulkImportItems = 50
)

type (
	ImportRequest struct {
		ID       string `json:"id,omitempty"`
		URL      string `json:"url,omitempty" validate:"omitempty,url"`
		Query    string `json:"q,omitempty" validate:"max=200"`
		Category string `json:"category,omitempty" validate:"max=100"`

		// OverrideCategory forces the internal category instead of the
		// mapping derived from the upstream category string.
		OverrideCategory string `json:"override_category,omitempty" validate:"omitempty,oneof=breakfast lunch dinner snack other"`
		Limit            int    `json:"limit,omitempty" validate:"omitempty,min=1,max=50"`
		IsPublic         *bool  `json:"is_public"`
		Published        *bool  `json:"published"`
	}

	ImportItemResult struct {
		ExternalID string `json:"external_id"`
		Title      string `json:"title,omitempty"`
		Outcome    string `json:"outcome"`
		Reason     string `json:"reason,omitempty"`
		RecipeID   string `json:"recipe_id,omitempty"`
	}

	ImportReport struct {
		Inserted int                `json:"inserted"`
		Skipped  int                `json:"skipped"`
		Items    []ImportItemResult `json:"items"`
	}
)
