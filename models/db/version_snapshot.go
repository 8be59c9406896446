package dbmodels

import (
	"encoding/json"
	"time"

	"fleet-tools-backend/models"
)

// VersionSnapshot is an immutable, labeled capture of a record's rendered
// content. Rows are only ever inserted; a new edit produces a new row.
type VersionSnapshot struct {
	ID          string `gorm:"primaryKey;default:uuid_generate_v4()" json:"id"`
	Version     string `gorm:"type:varchar(100)" json:"version"`
	SubModuleID string `gorm:"type:varchar(36);index" json:"sub_module_id"`
	Data        json.RawMessage    `gorm:"type:jsonb" json:"data"`
	DraftStatus models.DraftStatus `gorm:"type:varchar(20)" json:"draft_status"`
	ArchiveKey  string             `gorm:"type:varchar(255)" json:"archive_key,omitempty"`
	CreatedOn   time.Time          `gorm:"autoCreateTime;index" json:"created_on"`
}
