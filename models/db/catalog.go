package dbmodels

import "fleet-tools-backend/models"

// Hierarchy catalog: module -> sub-module -> vessel -> directorate -> user.
// Supplied by the organizational catalog; read-only for the engine.

type CatalogModule struct {
	BaseModel
	Name   string `gorm:"type:varchar(255)"`
	Active int    `gorm:"default:1"`
}

type SubModule struct {
	BaseModel
	ModuleID string `gorm:"type:varchar(36);index"`
	Module   *CatalogModule
	Name     string `gorm:"type:varchar(255)"`
	Active   int    `gorm:"default:1"`
}

type Vessel struct {
	BaseModel
	Name       string `gorm:"type:varchar(255)"`
	PennantNo  string `gorm:"type:varchar(50)"`
	ClusterName string `gorm:"type:varchar(255)"`
	Active     int    `gorm:"default:1"`
}

type Directorate struct {
	BaseModel
	Name   string `gorm:"type:varchar(255)"`
	Code   string `gorm:"type:varchar(50)"`
	Active int    `gorm:"default:1"`
}

type DirectorateUser struct {
	BaseModel
	DirectorateID string `gorm:"type:varchar(36);index"`
	Directorate   *Directorate
	Name          string          `gorm:"type:varchar(255)"`
	Email         string          `gorm:"type:varchar(255)"`
	Role          models.UserRole `gorm:"type:varchar(100)"`
	Active        int             `gorm:"default:1"`
}
