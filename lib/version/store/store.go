package versionstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"fleet-tools-backend/models/apperrors"
	dbmodels "fleet-tools-backend/models/db"
)

// Provider persists version snapshots. Rows are append-only: the only
// mutation allowed after insert is attaching the archive key.
type Provider interface {
	Create(rec dbmodels.VersionSnapshot) (id string, err error)
	GetByID(id string) (rec *dbmodels.VersionSnapshot, err error)
	List(subModuleID string, page, limit int) (list []dbmodels.VersionSnapshot, err error)
	ListCount(subModuleID string) (count int64, err error)
	SetArchiveKey(id, key string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.VersionSnapshot) (id string, err error) {
	err = i.db.Create(&rec).Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.VersionSnapshot, error) {
	rec := dbmodels.VersionSnapshot{}
	err := i.db.
		Where("id = ?", id).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) List(subModuleID string, page, limit int) (list []dbmodels.VersionSnapshot, err error) {
	list = []dbmodels.VersionSnapshot{}
	offset := (page - 1) * limit
	err = i.db.
		Where("sub_module_id = ?", subModuleID).
		Order("created_on desc").
		Offset(offset).
		Limit(limit).
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListCount(subModuleID string) (count int64, err error) {
	err = i.db.
		Model(&dbmodels.VersionSnapshot{}).
		Where("sub_module_id = ?", subModuleID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (i impl) SetArchiveKey(id, key string) error {
	tx := i.db.
		Model(&dbmodels.VersionSnapshot{}).
		Where("id = ?", id).
		Update("archive_key", key)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return apperrors.New(apperrors.KindNotFound, "version snapshot not found")
	}
	return nil
}
