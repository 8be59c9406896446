package routeconfigstore

import (
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fleet-tools-backend/models/apperrors"
	dbmodels "fleet-tools-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.RouteConfig) (id string, err error)
	Update(id string, updMap map[string]interface{}) error
	GetByID(id string) (rec *dbmodels.RouteConfig, err error)
	List(page, limit int) (list []dbmodels.RouteConfig, err error)
	ListCount() (count int64, err error)
	FindActive(moduleID, subModuleID, vesselID string) (list []dbmodels.RouteConfig, err error)
	ReplacePermissions(routeConfigID string, permissions []dbmodels.RoutePermission) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.RouteConfig) (id string, err error) {
	err = i.db.Omit(clause.Associations).
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	tx := i.db.
		Model(&dbmodels.RouteConfig{}).
		Where("id = ?", id).
		Updates(updMap)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return apperrors.New(apperrors.KindNotFound, "route config not found")
	}
	return nil
}

func (i impl) GetByID(id string) (*dbmodels.RouteConfig, error) {
	rec := dbmodels.RouteConfig{}
	err := i.db.
		Where("id = ?", id).
		Preload(clause.Associations).
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

func (i impl) List(page, limit int) (list []dbmodels.RouteConfig, err error) {
	list = []dbmodels.RouteConfig{}
	offset := (page - 1) * limit
	err = i.db.
		Preload(clause.Associations).
		Order("level").
		Order("created_at").
		Offset(offset).
		Limit(limit).
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListCount() (count int64, err error) {
	err = i.db.
		Model(&dbmodels.RouteConfig{}).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// FindActive returns the active rules for the given coordinates ordered
// by review level; equal levels fall back to id so a given database
// state always resolves the same sequence.
func (i impl) FindActive(moduleID, subModuleID, vesselID string) (list []dbmodels.RouteConfig, err error) {
	list = []dbmodels.RouteConfig{}
	err = i.db.
		Where("module_id = ?", moduleID).
		Where("sub_module_id = ?", subModuleID).
		Where("vessel_id = ?", vesselID).
		Where("active = ?", 1).
		Preload(clause.Associations).
		Order("level").
		Order("id").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ReplacePermissions(routeConfigID string, permissions []dbmodels.RoutePermission) error {
	err := i.db.
		Where("route_config_id = ?", routeConfigID).
		Delete(&dbmodels.RoutePermission{}).Error
	if err != nil {
		return err
	}
	for _, perm := range permissions {
		perm.RouteConfigID = routeConfigID
		if err := i.db.Create(&perm).Error; err != nil {
			var pqErr *pq.Error
			if errors.As(err, &pqErr) && pqErr.Code == "23505" {
				return apperrors.OnField(apperrors.KindValidation, "permissions",
					"duplicate permission type: "+string(perm.PermissionType))
			}
			return err
		}
	}
	return nil
}
