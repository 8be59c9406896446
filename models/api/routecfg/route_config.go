package routecfgapimodels

import (
	"fleet-tools-backend/models"
	"fleet-tools-backend/models/apperrors"
	dbmodels "fleet-tools-backend/models/db"
)

type RoutePermissionData struct {
	PermissionType models.PermissionType `json:"permission_type"` // edit/comment
	IsGranted      bool                  `json:"is_granted"`
}

type RouteConfigData struct {
	ID            string                `json:"id,omitempty"`         // present on update/delete
	ModuleID      string                `json:"module"`               // functional area
	SubModuleID   string                `json:"sub_module"`           // form type
	VesselID      string                `json:"vessel"`               // asset the rule concerns
	Level         int                   `json:"level"`                // review order, lower reviews first
	RouteType     models.RouteType      `json:"route_type"`           // internal/external
	DirectorateID string                `json:"directorate"`          // reviewing unit
	UserID        string                `json:"user,omitempty"`       // pinned reviewer, optional
	Permissions   []RoutePermissionData `json:"permissions"`
	Delete        bool                  `json:"delete,omitempty"`     // soft-delete request
}

func (d RouteConfigData) Validate() error {
	if d.Delete {
		if d.ID == "" {
			return apperrors.OnField(apperrors.KindInvalidRequest, "id", "id is required for delete")
		}
		return nil
	}
	if d.ModuleID == "" {
		return apperrors.OnField(apperrors.KindValidation, "module", "module is required")
	}
	if d.SubModuleID == "" {
		return apperrors.OnField(apperrors.KindValidation, "sub_module", "sub module is required")
	}
	if d.VesselID == "" {
		return apperrors.OnField(apperrors.KindValidation, "vessel", "vessel is required")
	}
	if d.Level < 0 {
		return apperrors.OnField(apperrors.KindValidation, "level", "Level must be 0 or greater")
	}
	if err := d.RouteType.Validate(); err != nil {
		return apperrors.OnField(apperrors.KindValidation, "route_type", err.Error())
	}
	if d.RouteType == models.RouteTypeInternal && d.DirectorateID == "" {
		return apperrors.OnField(apperrors.KindValidation, "directorate", "directorate is required for internal routes")
	}
	seen := map[models.PermissionType]bool{}
	for _, perm := range d.Permissions {
		if err := perm.PermissionType.Validate(); err != nil {
			return apperrors.OnField(apperrors.KindValidation, "permissions", err.Error())
		}
		if seen[perm.PermissionType] {
			return apperrors.OnField(apperrors.KindValidation, "permissions",
				"duplicate permission type: "+string(perm.PermissionType))
		}
		seen[perm.PermissionType] = true
	}
	return nil
}

type RouteConfigView struct {
	ID              string                `json:"id"`
	ModuleID        string                `json:"module"`
	ModuleName      string                `json:"module_name,omitempty"`
	SubModuleID     string                `json:"sub_module"`
	SubModuleName   string                `json:"sub_module_name,omitempty"`
	VesselID        string                `json:"vessel"`
	VesselName      string                `json:"vessel_name,omitempty"`
	Level           int                   `json:"level"`
	RouteType       models.RouteType      `json:"route_type"`
	DirectorateID   string                `json:"directorate,omitempty"`
	DirectorateName string                `json:"directorate_name,omitempty"`
	UserID          string                `json:"user,omitempty"`
	UserName        string                `json:"user_name,omitempty"`
	Permissions     []RoutePermissionData `json:"permissions"`
	Active          bool                  `json:"active"`
}

func RouteConfigConvert(rec dbmodels.RouteConfig) RouteConfigView {
	result := RouteConfigView{
		ID:          rec.ID,
		ModuleID:    rec.ModuleID,
		SubModuleID: rec.SubModuleID,
		VesselID:    rec.VesselID,
		Level:       rec.Level,
		RouteType:   rec.RouteType,
		Permissions: make([]RoutePermissionData, 0, len(rec.Permissions)),
		Active:      rec.Active == 1,
	}
	if rec.Module != nil {
		result.ModuleName = rec.Module.Name
	}
	if rec.SubModule != nil {
		result.SubModuleName = rec.SubModule.Name
	}
	if rec.Vessel != nil {
		result.VesselName = rec.Vessel.Name
	}
	if rec.DirectorateID != nil {
		result.DirectorateID = *rec.DirectorateID
	}
	if rec.Directorate != nil {
		result.DirectorateName = rec.Directorate.Name
	}
	if rec.UserID != nil {
		result.UserID = *rec.UserID
	}
	if rec.User != nil {
		result.UserName = rec.User.Name
	}
	for _, perm := range rec.Permissions {
		result.Permissions = append(result.Permissions, RoutePermissionData{
			PermissionType: perm.PermissionType,
			IsGranted:      perm.IsGranted,
		})
	}
	return result
}
