package versionapimodels

import (
	"encoding/json"
	"time"

	"fleet-tools-backend/models"
	apimodels "fleet-tools-backend/models/api"
	"fleet-tools-backend/models/apperrors"
	dbmodels "fleet-tools-backend/models/db"
)

type VersionData struct {
	Version     string             `json:"version"`    // caller-supplied label
	SubModuleID string             `json:"sub_module"`
	Data        json.RawMessage    `json:"data"` // opaque rendered payload
	DraftStatus models.DraftStatus `json:"draft_status,omitempty"`
}

func (d VersionData) Validate() error {
	if d.Version == "" {
		return apperrors.OnField(apperrors.KindInvalidRequest, "version", "version label is required")
	}
	if d.SubModuleID == "" {
		return apperrors.OnField(apperrors.KindInvalidRequest, "sub_module", "sub module is required")
	}
	return nil
}

type VersionView struct {
	ID          string             `json:"id"`
	Version     string             `json:"version"`
	SubModuleID string             `json:"sub_module"`
	Data        json.RawMessage    `json:"data,omitempty"`
	DraftStatus models.DraftStatus `json:"draft_status,omitempty"`
	ArchiveKey  string             `json:"archive_key,omitempty"`
	CreatedOn   time.Time          `json:"created_on"`
}

func VersionConvert(rec dbmodels.VersionSnapshot) VersionView {
	return VersionView{
		ID:          rec.ID,
		Version:     rec.Version,
		SubModuleID: rec.SubModuleID,
		Data:        rec.Data,
		DraftStatus: rec.DraftStatus,
		ArchiveKey:  rec.ArchiveKey,
		CreatedOn:   rec.CreatedOn,
	}
}

type VersionFilter struct {
	apimodels.Pagination
	SubModuleID string `json:"sub_module" query:"sub_module"`
}

func (f VersionFilter) Validate() error {
	if f.SubModuleID == "" {
		return apperrors.OnField(apperrors.KindInvalidRequest, "sub_module", "sub module is required")
	}
	return nil
}
