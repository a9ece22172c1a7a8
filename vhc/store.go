package vhc

import (
	"context"

	"github.com/mmdatafocus/workshop_backend/models"
)

// Per-component store interfaces. The engine never touches an ambient DB
// handle; production wires GormStore, tests wire fakes.

type AliasStore interface {
	// LookupAlias returns (canonicalId, true) for an exact display-id match
	// scoped to the job, or (0, false) when no alias exists.
	LookupAlias(ctx context.Context, jobId int, displayId string) (int, bool, error)
	AliasesForJob(ctx context.Context, jobId int) (map[string]int, error)
}

type ItemStore interface {
	// GetVhcItem returns (nil, nil) when the row is absent.
	GetVhcItem(ctx context.Context, jobId, vhcItemId int) (*models.VhcItem, error)
	VhcItemsForJob(ctx context.Context, jobId int) ([]*models.VhcItem, error)
	// UpdateVhcItemApproval persists only the approval-owned fields:
	// approval status, display status and approval timestamp.
	UpdateVhcItemApproval(ctx context.Context, item *models.VhcItem) error
}

type PartStore interface {
	PartsForItem(ctx context.Context, jobId, vhcItemId int) ([]*models.JobPart, error)
	PartsForJob(ctx context.Context, jobId int) ([]*models.JobPart, error)
	// ClearPrePickLocations blanks (not deletes) the pre-pick location on
	// every part linked to the item and returns how many rows changed.
	ClearPrePickLocations(ctx context.Context, jobId, vhcItemId int) (int, error)
}

type RequestStore interface {
	// VhcRequests returns engine-owned rows only (source = VHC_AUTH),
	// oldest first.
	VhcRequests(ctx context.Context, jobId, vhcItemId int) ([]*models.JobRequest, error)
	InsertRequest(ctx context.Context, request *models.JobRequest) error
	SaveRequest(ctx context.Context, request *models.JobRequest) error
	DeleteRequestRows(ctx context.Context, ids []int) error
	// DeleteRequests removes every engine-owned row for the item and
	// returns how many rows were deleted.
	DeleteRequests(ctx context.Context, jobId, vhcItemId int) (int, error)
}

type RectificationStore interface {
	Rectifications(ctx context.Context, jobId, vhcItemId int) ([]*models.RectificationItem, error)
	InsertRectification(ctx context.Context, item *models.RectificationItem) error
	SaveRectification(ctx context.Context, item *models.RectificationItem) error
	DeleteRectificationRows(ctx context.Context, ids []int) error
	DeleteRectifications(ctx context.Context, jobId, vhcItemId int) (int, error)
}

type NoteStore interface {
	// NotesForJob returns every note on the job; link filtering happens in
	// Go because the list-link field is not portably queryable in SQL.
	NotesForJob(ctx context.Context, jobId int) ([]*models.JobNote, error)
	SaveNoteLinks(ctx context.Context, note *models.JobNote) error
}

type JobStore interface {
	// GetJob returns (nil, nil) when the row is absent.
	GetJob(ctx context.Context, jobId int) (*models.JobCard, error)
	// ActiveWriteupRef returns "" when the job has no active write-up.
	ActiveWriteupRef(ctx context.Context, jobId int) (string, error)
}

// Store is everything the synchronizer needs; the read path uses the
// narrower interfaces directly.
type Store interface {
	AliasStore
	ItemStore
	PartStore
	RequestStore
	RectificationStore
	NoteStore
	JobStore
}
