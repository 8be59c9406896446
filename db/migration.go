package db

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	dbmodels "fleet-tools-backend/models/db"
)

func AutoMigrateDB() error {
	DB.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")
	log.Info("running migrations")
	if err := DB.AutoMigrate(&dbmodels.CatalogModule{}); err != nil {
		return errors.Wrap(err, "migration error: CatalogModule")
	}
	if err := DB.AutoMigrate(&dbmodels.SubModule{}); err != nil {
		return errors.Wrap(err, "migration error: SubModule")
	}
	if err := DB.AutoMigrate(&dbmodels.Vessel{}); err != nil {
		return errors.Wrap(err, "migration error: Vessel")
	}
	if err := DB.AutoMigrate(&dbmodels.Directorate{}); err != nil {
		return errors.Wrap(err, "migration error: Directorate")
	}
	if err := DB.AutoMigrate(&dbmodels.DirectorateUser{}); err != nil {
		return errors.Wrap(err, "migration error: DirectorateUser")
	}
	if err := DB.AutoMigrate(&dbmodels.RouteConfig{}); err != nil {
		return errors.Wrap(err, "migration error: RouteConfig")
	}
	if err := DB.AutoMigrate(&dbmodels.RoutePermission{}); err != nil {
		return errors.Wrap(err, "migration error: RoutePermission")
	}
	if err := DB.AutoMigrate(&dbmodels.TrialRecord{}); err != nil {
		return errors.Wrap(err, "migration error: TrialRecord")
	}
	if err := DB.AutoMigrate(&dbmodels.TrialObservation{}); err != nil {
		return errors.Wrap(err, "migration error: TrialObservation")
	}
	if err := DB.AutoMigrate(&dbmodels.VersionSnapshot{}); err != nil {
		return errors.Wrap(err, "migration error: VersionSnapshot")
	}
	log.Info("migrations finished")
	return nil
}
