package vhc

import (
	"context"
	"errors"

	"github.com/mmdatafocus/workshop_backend/models"
	"gorm.io/gorm"
)

// GormStore is the production Store backed by the relational database.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) LookupAlias(ctx context.Context, jobId int, displayId string) (int, bool, error) {
	var alias models.VhcItemAlias
	err := s.db.WithContext(ctx).
		Where("job_id = ? AND display_id = ?", jobId, displayId).
		First(&alias).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return alias.VhcItemId, true, nil
}

func (s *GormStore) AliasesForJob(ctx context.Context, jobId int) (map[string]int, error) {
	var aliases []*models.VhcItemAlias
	if err := s.db.WithContext(ctx).
		Where("job_id = ?", jobId).
		Find(&aliases).Error; err != nil {
		return nil, err
	}
	aliasMap := make(map[string]int, len(aliases))
	for _, a := range aliases {
		aliasMap[a.DisplayId] = a.VhcItemId
	}
	return aliasMap, nil
}

func (s *GormStore) GetVhcItem(ctx context.Context, jobId, vhcItemId int) (*models.VhcItem, error) {
	var item models.VhcItem
	err := s.db.WithContext(ctx).
		Where("job_id = ? AND id = ?", jobId, vhcItemId).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (s *GormStore) VhcItemsForJob(ctx context.Context, jobId int) ([]*models.VhcItem, error) {
	var items []*models.VhcItem
	if err := s.db.WithContext(ctx).
		Where("job_id = ?", jobId).
		Order("id").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *GormStore) UpdateVhcItemApproval(ctx context.Context, item *models.VhcItem) error {
	return s.db.WithContext(ctx).Model(item).Updates(map[string]interface{}{
		"approval_status": item.ApprovalStatus,
		"display_status":  item.DisplayStatus,
		"approved_at":     item.ApprovedAt,
	}).Error
}

func (s *GormStore) PartsForItem(ctx context.Context, jobId, vhcItemId int) ([]*models.JobPart, error) {
	var parts []*models.JobPart
	if err := s.db.WithContext(ctx).
		Where("job_id = ? AND vhc_item_id = ?", jobId, vhcItemId).
		Order("id").
		Find(&parts).Error; err != nil {
		return nil, err
	}
	return parts, nil
}

func (s *GormStore) PartsForJob(ctx context.Context, jobId int) ([]*models.JobPart, error) {
	var parts []*models.JobPart
	if err := s.db.WithContext(ctx).
		Where("job_id = ?", jobId).
		Order("id").
		Find(&parts).Error; err != nil {
		return nil, err
	}
	return parts, nil
}

func (s *GormStore) ClearPrePickLocations(ctx context.Context, jobId, vhcItemId int) (int, error) {
	result := s.db.WithContext(ctx).Model(&models.JobPart{}).
		Where("job_id = ? AND vhc_item_id = ? AND pre_pick_location <> ''", jobId, vhcItemId).
		Update("pre_pick_location", "")
	return int(result.RowsAffected), result.Error
}

func (s *GormStore) VhcRequests(ctx context.Context, jobId, vhcItemId int) ([]*models.JobRequest, error) {
	var requests []*models.JobRequest
	if err := s.db.WithContext(ctx).
		Where("job_id = ? AND source = ? AND vhc_item_id = ?", jobId, models.JobRequestSourceVhcAuthorized, vhcItemId).
		Order("id").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (s *GormStore) InsertRequest(ctx context.Context, request *models.JobRequest) error {
	return s.db.WithContext(ctx).Create(request).Error
}

func (s *GormStore) SaveRequest(ctx context.Context, request *models.JobRequest) error {
	return s.db.WithContext(ctx).Save(request).Error
}

func (s *GormStore) DeleteRequestRows(ctx context.Context, ids []int) error {
	if len(ids) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Delete(&models.JobRequest{}, ids).Error
}

func (s *GormStore) DeleteRequests(ctx context.Context, jobId, vhcItemId int) (int, error) {
	result := s.db.WithContext(ctx).
		Where("job_id = ? AND source = ? AND vhc_item_id = ?", jobId, models.JobRequestSourceVhcAuthorized, vhcItemId).
		Delete(&models.JobRequest{})
	return int(result.RowsAffected), result.Error
}

func (s *GormStore) Rectifications(ctx context.Context, jobId, vhcItemId int) ([]*models.RectificationItem, error) {
	var items []*models.RectificationItem
	if err := s.db.WithContext(ctx).
		Where("job_id = ? AND vhc_item_id = ?", jobId, vhcItemId).
		Order("id").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *GormStore) InsertRectification(ctx context.Context, item *models.RectificationItem) error {
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *GormStore) SaveRectification(ctx context.Context, item *models.RectificationItem) error {
	return s.db.WithContext(ctx).Save(item).Error
}

func (s *GormStore) DeleteRectificationRows(ctx context.Context, ids []int) error {
	if len(ids) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Delete(&models.RectificationItem{}, ids).Error
}

func (s *GormStore) DeleteRectifications(ctx context.Context, jobId, vhcItemId int) (int, error) {
	result := s.db.WithContext(ctx).
		Where("job_id = ? AND vhc_item_id = ?", jobId, vhcItemId).
		Delete(&models.RectificationItem{})
	return int(result.RowsAffected), result.Error
}

func (s *GormStore) NotesForJob(ctx context.Context, jobId int) ([]*models.JobNote, error) {
	var notes []*models.JobNote
	if err := s.db.WithContext(ctx).
		Where("job_id = ?", jobId).
		Order("id").
		Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

func (s *GormStore) SaveNoteLinks(ctx context.Context, note *models.JobNote) error {
	return s.db.WithContext(ctx).Model(note).Updates(map[string]interface{}{
		"vhc_item_id":  note.VhcItemId,
		"vhc_item_ids": note.VhcItemIds,
	}).Error
}

func (s *GormStore) GetJob(ctx context.Context, jobId int) (*models.JobCard, error) {
	var job models.JobCard
	err := s.db.WithContext(ctx).First(&job, jobId).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &job, nil
}

func (s *GormStore) ActiveWriteupRef(ctx context.Context, jobId int) (string, error) {
	var writeup models.Writeup
	err := s.db.WithContext(ctx).
		Where("job_id = ? AND active = ?", jobId, true).
		Order("id DESC").
		First(&writeup).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return writeup.Reference, nil
}
