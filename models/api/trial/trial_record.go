package trialapimodels

import (
	"encoding/json"
	"time"

	apimodels "fleet-tools-backend/models/api"

	"fleet-tools-backend/models"
	"fleet-tools-backend/models/apperrors"
	dbmodels "fleet-tools-backend/models/db"
)

type ObservationData struct {
	Observation string `json:"observation"`
	Remark      string `json:"remark,omitempty"`
}

type TrialRecordData struct {
	ID           string             `json:"id,omitempty"` // present on update
	ModuleID     string             `json:"module"`
	VesselID     string             `json:"vessel"`
	DraftStatus  models.DraftStatus `json:"draft_status"` // requested target status
	Payload      json.RawMessage    `json:"data"`         // opaque form payload
	Observations []ObservationData  `json:"observations"`
}

func (d TrialRecordData) Validate() error {
	if d.ModuleID == "" {
		return apperrors.OnField(apperrors.KindInvalidRequest, "module", "module is required")
	}
	if d.VesselID == "" {
		return apperrors.OnField(apperrors.KindInvalidRequest, "vessel", "vessel is required")
	}
	if d.DraftStatus != "" && !d.DraftStatus.IsValid() {
		return apperrors.OnField(apperrors.KindInvalidRequest, "draft_status",
			"unknown draft status: "+string(d.DraftStatus))
	}
	return nil
}

type RecordFilter struct {
	apimodels.Pagination
	DraftStatus models.DraftStatus `json:"draft_status" query:"draft_status"`
	CountOnly   bool               `json:"count_only" query:"count_only"`
}

func (f RecordFilter) Validate() error {
	if f.DraftStatus != "" && !f.DraftStatus.IsValid() {
		return apperrors.OnField(apperrors.KindInvalidRequest, "draft_status",
			"unknown draft status: "+string(f.DraftStatus))
	}
	return nil
}

type ObservationView struct {
	SrNo        int    `json:"sr_no"`
	Observation string `json:"observation"`
	Remark      string `json:"remark,omitempty"`
}

type TrialRecordView struct {
	ID             string             `json:"id"`
	ModuleID       string             `json:"module"`
	SubModuleID    string             `json:"sub_module"`
	VesselID       string             `json:"vessel"`
	DraftStatus    models.DraftStatus `json:"draft_status"`
	Payload        json.RawMessage    `json:"data,omitempty"`
	Observations   []ObservationView  `json:"observations"`
	CreatedBy      string             `json:"created_by"`
	ModifiedBy     string             `json:"modified_by,omitempty"`
	ReviewerRemark string             `json:"reviewer_remark,omitempty"`
	CreationDate   time.Time          `json:"creation_date"`
}

func TrialRecordConvert(rec dbmodels.TrialRecord) TrialRecordView {
	result := TrialRecordView{
		ID:             rec.ID,
		ModuleID:       rec.ModuleID,
		SubModuleID:    rec.SubModuleID,
		VesselID:       rec.VesselID,
		DraftStatus:    rec.DraftStatus,
		Payload:        rec.Payload,
		Observations:   make([]ObservationView, 0, len(rec.Observations)),
		CreatedBy:      rec.CreatedBy,
		ModifiedBy:     rec.ModifiedBy,
		ReviewerRemark: rec.ReviewerRemark,
		CreationDate:   rec.CreatedAt,
	}
	for _, obs := range rec.Observations {
		result.Observations = append(result.Observations, ObservationView{
			SrNo:        obs.SrNo,
			Observation: obs.Observation,
			Remark:      obs.Remark,
		})
	}
	return result
}

type RejectData struct {
	Remark string `json:"remark"`
}

type CapabilitiesView struct {
	Edit    bool `json:"edit"`
	Comment bool `json:"comment"`
	View    bool `json:"view"`
}

type StatusCounts struct {
	Draft    int64 `json:"draft"`
	Save     int64 `json:"save"`
	Approved int64 `json:"approved"`
}
