package dbmodels

import (
	"encoding/json"

	"fleet-tools-backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TrialRecord is a transactional inspection/trial form record (load
// trials, SEG forms, U/W compartment inspections). The form payload is
// opaque to the engine; only the lifecycle fields are interpreted.
type TrialRecord struct {
	BaseModel
	ModuleID       string `gorm:"type:varchar(36);index"`
	SubModuleID    string `gorm:"type:varchar(36);index"`
	VesselID       string `gorm:"type:varchar(36);index"`
	Payload        json.RawMessage    `gorm:"type:jsonb"`
	DraftStatus    models.DraftStatus `gorm:"type:varchar(20);index"`
	LockVersion    int                // optimistic guard for concurrent transitions
	CreatedBy      string             `gorm:"type:varchar(36)"`
	ModifiedBy     string             `gorm:"type:varchar(36)"`
	ReviewerRemark string
	Observations   []TrialObservation `gorm:"foreignKey:TrialRecordID"`
}

// TrialObservation rows are owned 1:N by the record; SrNo is recomputed
// from array order on every save.
type TrialObservation struct {
	ID            string `gorm:"primaryKey;default:uuid_generate_v4()"`
	TrialRecordID string `gorm:"type:varchar(36);index"`
	SrNo          int
	Observation   string
	Remark        string
}

func (t *TrialRecord) AfterDelete(tx *gorm.DB) (err error) {
	if t.ID == "" {
		return nil
	}
	tx.Clauses(clause.Returning{}).Where("trial_record_id = ?", t.ID).Delete(&TrialObservation{})
	return
}
