package db

import (
	log "github.com/sirupsen/logrus"

	dbmodels "fleet-tools-backend/models/db"
)

func InitPreload() {
	fillModules()
}

// fillModules seeds the functional-area catalog on an empty database so
// that the form screens have coordinates to work with from the start.
func fillModules() {
	var count int64
	if err := DB.Model(&dbmodels.CatalogModule{}).Count(&count).Error; err != nil {
		log.WithError(err).Error("module catalog seed check failed")
		return
	}
	if count > 0 {
		return
	}
	seed := map[string][]string{
		"Trials":      {"ETMA", "SEG", "HITU"},
		"Inspections": {"UW Compartment"},
	}
	for moduleName, subModules := range seed {
		rec := dbmodels.CatalogModule{Name: moduleName, Active: 1}
		if err := DB.Create(&rec).Error; err != nil {
			log.WithError(err).Error("module catalog seed failed")
			return
		}
		for _, name := range subModules {
			sub := dbmodels.SubModule{ModuleID: rec.ID, Name: name, Active: 1}
			if err := DB.Create(&sub).Error; err != nil {
				log.WithError(err).Error("sub module catalog seed failed")
				return
			}
		}
	}
	log.Info("module catalog seeded")
}
