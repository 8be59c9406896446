package wsmodels

import "fleet-tools-backend/models"

// StatusEvent tells connected dashboards that a record changed status
// so the tri-tab counts can be refetched.
type StatusEvent struct {
	SubModuleID string             `json:"sub_module"`
	RecordID    string             `json:"record_id"`
	Status      models.DraftStatus `json:"status"`
	Time        string             `json:"time"`
}
