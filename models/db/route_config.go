package dbmodels

import (
	"fleet-tools-backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RouteConfig binds a position in the org hierarchy to a reviewing actor
// and the capabilities granted there. Hierarchy references are weak: a
// deleted catalog node leaves the rule in place but inapplicable.
type RouteConfig struct {
	BaseModel
	ModuleID      string `gorm:"type:varchar(36);index:idx_route_coords"`
	Module        *CatalogModule
	SubModuleID   string `gorm:"type:varchar(36);index:idx_route_coords"`
	SubModule     *SubModule
	VesselID      string `gorm:"type:varchar(36);index:idx_route_coords"`
	Vessel        *Vessel
	Level         int
	RouteType     models.RouteType `gorm:"type:varchar(20)"`
	DirectorateID *string          `gorm:"type:varchar(36)"`
	Directorate   *Directorate
	UserID        *string `gorm:"type:varchar(36)"`
	User          *DirectorateUser
	Active        int               `gorm:"default:1"`
	Permissions   []RoutePermission `gorm:"foreignKey:RouteConfigID"`
}

type RoutePermission struct {
	ID             string `gorm:"primaryKey;default:uuid_generate_v4()"`
	RouteConfigID  string `gorm:"type:varchar(36);uniqueIndex:idx_route_permission_type"`
	PermissionType models.PermissionType `gorm:"type:varchar(20);uniqueIndex:idx_route_permission_type"`
	IsGranted      bool
}

func (r *RouteConfig) AfterDelete(tx *gorm.DB) (err error) {
	if r.ID == "" {
		return nil
	}
	tx.Clauses(clause.Returning{}).Where("route_config_id = ?", r.ID).Delete(&RoutePermission{})
	return
}

// Granted reports whether the config carries an explicit granted entry
// for the given permission type.
func (r RouteConfig) Granted(permType models.PermissionType) bool {
	for _, perm := range r.Permissions {
		if perm.PermissionType == permType {
			return perm.IsGranted
		}
	}
	return false
}
