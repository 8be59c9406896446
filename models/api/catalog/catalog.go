package catalogapimodels

import (
	"fleet-tools-backend/models"
	dbmodels "fleet-tools-backend/models/db"
)

type ModuleView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func ModuleConvert(rec dbmodels.CatalogModule) ModuleView {
	return ModuleView{ID: rec.ID, Name: rec.Name}
}

type SubModuleView struct {
	ID       string `json:"id"`
	ModuleID string `json:"module"`
	Name     string `json:"name"`
}

func SubModuleConvert(rec dbmodels.SubModule) SubModuleView {
	return SubModuleView{ID: rec.ID, ModuleID: rec.ModuleID, Name: rec.Name}
}

type VesselView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	PennantNo   string `json:"pennant_no,omitempty"`
	ClusterName string `json:"cluster_name,omitempty"`
}

func VesselConvert(rec dbmodels.Vessel) VesselView {
	return VesselView{ID: rec.ID, Name: rec.Name, PennantNo: rec.PennantNo, ClusterName: rec.ClusterName}
}

type DirectorateView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code,omitempty"`
}

func DirectorateConvert(rec dbmodels.Directorate) DirectorateView {
	return DirectorateView{ID: rec.ID, Name: rec.Name, Code: rec.Code}
}

type UserView struct {
	ID            string          `json:"id"`
	DirectorateID string          `json:"directorate"`
	Name          string          `json:"name"`
	Email         string          `json:"email,omitempty"`
	Role          models.UserRole `json:"role,omitempty"`
}

func UserConvert(rec dbmodels.DirectorateUser) UserView {
	return UserView{
		ID:            rec.ID,
		DirectorateID: rec.DirectorateID,
		Name:          rec.Name,
		Email:         rec.Email,
		Role:          rec.Role,
	}
}
