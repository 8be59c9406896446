package trialrecordstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fleet-tools-backend/models"
	"fleet-tools-backend/models/apperrors"
	dbmodels "fleet-tools-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.TrialRecord) (id string, err error)
	GetByID(subModuleID, id string) (rec *dbmodels.TrialRecord, err error)
	Update(id string, updMap map[string]interface{}) error
	Delete(subModuleID, id string) error
	List(subModuleID string, status models.DraftStatus, page, limit int) (list []dbmodels.TrialRecord, err error)
	ListCount(subModuleID string, status models.DraftStatus) (count int64, err error)
	CompareAndSwapStatus(id string, current models.DraftStatus, lockVersion int, updMap map[string]interface{}) (matched bool, err error)
	ReplaceObservations(recordID string, observations []dbmodels.TrialObservation) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.TrialRecord) (id string, err error) {
	err = i.db.Omit(clause.Associations).
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(subModuleID, id string) (*dbmodels.TrialRecord, error) {
	rec := dbmodels.TrialRecord{}
	err := i.db.
		Where("id = ?", id).
		Where("sub_module_id = ?", subModuleID).
		Preload("Observations", func(db *gorm.DB) *gorm.DB {
			return db.Order("sr_no")
		}).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	tx := i.db.
		Model(&dbmodels.TrialRecord{}).
		Where("id = ?", id).
		Updates(updMap)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return apperrors.New(apperrors.KindNotFound, "record not found")
	}
	return nil
}

func (i impl) Delete(subModuleID, id string) error {
	rec := dbmodels.TrialRecord{
		BaseModel:   dbmodels.BaseModel{ID: id},
		SubModuleID: subModuleID,
	}
	err := i.db.
		Delete(&rec).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) List(subModuleID string, status models.DraftStatus, page, limit int) (list []dbmodels.TrialRecord, err error) {
	list = []dbmodels.TrialRecord{}
	offset := (page - 1) * limit
	tx := i.db.Where("sub_module_id = ?", subModuleID)
	if status != "" {
		tx = tx.Where("draft_status = ?", status)
	}
	err = tx.
		Order("created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListCount(subModuleID string, status models.DraftStatus) (count int64, err error) {
	tx := i.db.
		Model(&dbmodels.TrialRecord{}).
		Where("sub_module_id = ?", subModuleID)
	if status != "" {
		tx = tx.Where("draft_status = ?", status)
	}
	err = tx.Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// CompareAndSwapStatus commits a status change only while the row still
// carries the expected status and lock version; RowsAffected tells the
// state machine whether it won the race.
func (i impl) CompareAndSwapStatus(id string, current models.DraftStatus, lockVersion int, updMap map[string]interface{}) (matched bool, err error) {
	tx := i.db.
		Model(&dbmodels.TrialRecord{}).
		Where("id = ?", id).
		Where("draft_status = ?", current).
		Where("lock_version = ?", lockVersion).
		Updates(updMap)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

// ReplaceObservations rewrites the owned child rows; sr_no is assigned
// from the current array order.
func (i impl) ReplaceObservations(recordID string, observations []dbmodels.TrialObservation) error {
	err := i.db.
		Where("trial_record_id = ?", recordID).
		Delete(&dbmodels.TrialObservation{}).Error
	if err != nil {
		return err
	}
	for idx, obs := range observations {
		obs.TrialRecordID = recordID
		obs.SrNo = idx + 1
		if err := i.db.Create(&obs).Error; err != nil {
			return err
		}
	}
	return nil
}
