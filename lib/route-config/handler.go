package routeconfighandler

import (
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"fleet-tools-backend/db"
	hierarchystore "fleet-tools-backend/lib/hierarchy/store"
	routeconfigstore "fleet-tools-backend/lib/route-config/store"
	routecfgapimodels "fleet-tools-backend/models/api/routecfg"
	"fleet-tools-backend/models/apperrors"
	dbmodels "fleet-tools-backend/models/db"
)

type Provider interface {
	Save(userID string, data routecfgapimodels.RouteConfigData) (id string, err error)
	GetByID(id string) (item routecfgapimodels.RouteConfigView, err error)
	List(page, limit int) (list []routecfgapimodels.RouteConfigView, rowCount int64, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:          routeconfigstore.NewInstance(db.DB),
		hierarchyStore: hierarchystore.NewInstance(db.DB),
	}
}

type impl struct {
	store          routeconfigstore.Provider
	hierarchyStore hierarchystore.Provider
}

// Save handles create (no id), update (id present) and soft delete
// ({id, delete:true}). Rules are never hard-deleted: history keeps
// referencing them through the Active flag.
func (i impl) Save(userID string, data routecfgapimodels.RouteConfigData) (id string, err error) {
	logger := log.WithField("user_id", userID)
	if err := data.Validate(); err != nil {
		return "", err
	}
	if data.Delete {
		err = i.store.Update(data.ID, map[string]interface{}{"active": 0})
		if err != nil {
			logger.WithField("rec_id", data.ID).WithError(err).Error("route config soft delete failed")
			return "", err
		}
		logger.WithField("rec_id", data.ID).Info("route config deactivated")
		return data.ID, nil
	}
	if err := i.checkReviewer(data); err != nil {
		return "", err
	}

	rec := dbmodels.RouteConfig{
		ModuleID:    data.ModuleID,
		SubModuleID: data.SubModuleID,
		VesselID:    data.VesselID,
		Level:       data.Level,
		RouteType:   data.RouteType,
		Active:      1,
	}
	if data.DirectorateID != "" {
		rec.DirectorateID = &data.DirectorateID
	}
	if data.UserID != "" {
		rec.UserID = &data.UserID
	}

	permissions := make([]dbmodels.RoutePermission, 0, len(data.Permissions))
	for _, perm := range data.Permissions {
		permissions = append(permissions, dbmodels.RoutePermission{
			PermissionType: perm.PermissionType,
			IsGranted:      perm.IsGranted,
		})
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		store := routeconfigstore.NewInstance(tx)
		if data.ID != "" {
			updMap := map[string]interface{}{
				"ModuleID":      rec.ModuleID,
				"SubModuleID":   rec.SubModuleID,
				"VesselID":      rec.VesselID,
				"Level":         rec.Level,
				"RouteType":     rec.RouteType,
				"DirectorateID": rec.DirectorateID,
				"UserID":        rec.UserID,
			}
			if err := store.Update(data.ID, updMap); err != nil {
				return err
			}
			id = data.ID
		} else {
			newID, err := store.Create(rec)
			if err != nil {
				return err
			}
			id = newID
		}
		return store.ReplacePermissions(id, permissions)
	})
	if err != nil {
		logger.WithError(err).Error("route config save failed")
		return "", err
	}
	logger.WithField("rec_id", id).Info("route config saved")
	return id, nil
}

// checkReviewer verifies the reviewer references against the catalog. A
// pinned user must exist and belong to the configured directorate.
func (i impl) checkReviewer(data routecfgapimodels.RouteConfigData) error {
	if data.DirectorateID != "" {
		rec, err := i.hierarchyStore.GetDirectorate(data.DirectorateID)
		if err != nil {
			return err
		}
		if rec == nil {
			return apperrors.OnField(apperrors.KindValidation, "directorate", "directorate not found in the catalog")
		}
	}
	if data.UserID != "" {
		user, err := i.hierarchyStore.GetUser(data.UserID)
		if err != nil {
			return err
		}
		if user == nil {
			return apperrors.OnField(apperrors.KindValidation, "user", "user not found in the catalog")
		}
		if data.DirectorateID != "" && user.DirectorateID != data.DirectorateID {
			return apperrors.OnField(apperrors.KindValidation, "user", "user belongs to another directorate")
		}
	}
	return nil
}

func (i impl) GetByID(id string) (item routecfgapimodels.RouteConfigView, err error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		log.WithField("rec_id", id).WithError(err).Error("route config read failed")
		return routecfgapimodels.RouteConfigView{}, err
	}
	if rec == nil {
		return routecfgapimodels.RouteConfigView{}, apperrors.New(apperrors.KindNotFound, "route config not found")
	}
	return routecfgapimodels.RouteConfigConvert(*rec), nil
}

func (i impl) List(page, limit int) (list []routecfgapimodels.RouteConfigView, rowCount int64, err error) {
	rowCount, err = i.store.ListCount()
	if err != nil {
		return nil, 0, err
	}
	recList, err := i.store.List(page, limit)
	if err != nil {
		log.WithError(err).Error("route config list failed")
		return nil, 0, err
	}
	result := make([]routecfgapimodels.RouteConfigView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, routecfgapimodels.RouteConfigConvert(rec))
	}
	return result, rowCount, nil
}
