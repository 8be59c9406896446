package hierarchystore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	dbmodels "fleet-tools-backend/models/db"
)

type Provider interface {
	ListModules() (list []dbmodels.CatalogModule, err error)
	ListSubModules(moduleID string) (list []dbmodels.SubModule, err error)
	GetSubModule(id string) (rec *dbmodels.SubModule, err error)
	ListVessels() (list []dbmodels.Vessel, err error)
	ListDirectorates() (list []dbmodels.Directorate, err error)
	GetDirectorate(id string) (rec *dbmodels.Directorate, err error)
	ListUsers(directorateID string) (list []dbmodels.DirectorateUser, err error)
	GetUser(id string) (rec *dbmodels.DirectorateUser, err error)
	FindUserByEmail(email string) (rec *dbmodels.DirectorateUser, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) ListModules() (list []dbmodels.CatalogModule, err error) {
	list = []dbmodels.CatalogModule{}
	err = i.db.
		Where("active = ?", 1).
		Order("name").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListSubModules(moduleID string) (list []dbmodels.SubModule, err error) {
	list = []dbmodels.SubModule{}
	err = i.db.
		Where("module_id = ?", moduleID).
		Where("active = ?", 1).
		Order("name").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) GetSubModule(id string) (*dbmodels.SubModule, error) {
	rec := dbmodels.SubModule{}
	err := i.db.
		Where("id = ?", id).
		Where("active = ?", 1).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) ListVessels() (list []dbmodels.Vessel, err error) {
	list = []dbmodels.Vessel{}
	err = i.db.
		Where("active = ?", 1).
		Order("name").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListDirectorates() (list []dbmodels.Directorate, err error) {
	list = []dbmodels.Directorate{}
	err = i.db.
		Where("active = ?", 1).
		Order("name").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) GetDirectorate(id string) (*dbmodels.Directorate, error) {
	rec := dbmodels.Directorate{}
	err := i.db.
		Where("id = ?", id).
		Where("active = ?", 1).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) ListUsers(directorateID string) (list []dbmodels.DirectorateUser, err error) {
	list = []dbmodels.DirectorateUser{}
	err = i.db.
		Where("directorate_id = ?", directorateID).
		Where("active = ?", 1).
		Order("name").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) GetUser(id string) (*dbmodels.DirectorateUser, error) {
	rec := dbmodels.DirectorateUser{}
	err := i.db.
		Where("id = ?", id).
		Where("active = ?", 1).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) FindUserByEmail(email string) (*dbmodels.DirectorateUser, error) {
	rec := dbmodels.DirectorateUser{}
	err := i.db.
		Where("email = ?", email).
		Where("active = ?", 1).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}
