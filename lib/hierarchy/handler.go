package hierarchyprovider

import (
	"fleet-tools-backend/db"
	hierarchystore "fleet-tools-backend/lib/hierarchy/store"
	"fleet-tools-backend/models/apperrors"
	catalogapimodels "fleet-tools-backend/models/api/catalog"
)

// HierarchyDirectory: read-only lookups over the organizational catalog.

type Provider interface {
	ListModules() (list []catalogapimodels.ModuleView, err error)
	ListSubModules(moduleID string) (list []catalogapimodels.SubModuleView, err error)
	ListVessels() (list []catalogapimodels.VesselView, err error)
	ListDirectorates() (list []catalogapimodels.DirectorateView, err error)
	ListUsers(directorateID string) (list []catalogapimodels.UserView, err error)
	GetUser(id string) (item catalogapimodels.UserView, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: hierarchystore.NewInstance(db.DB),
	}
}

type impl struct {
	store hierarchystore.Provider
}

func (i impl) ListModules() (list []catalogapimodels.ModuleView, err error) {
	recList, err := i.store.ListModules()
	if err != nil {
		return nil, err
	}
	result := make([]catalogapimodels.ModuleView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, catalogapimodels.ModuleConvert(rec))
	}
	return result, nil
}

func (i impl) ListSubModules(moduleID string) (list []catalogapimodels.SubModuleView, err error) {
	recList, err := i.store.ListSubModules(moduleID)
	if err != nil {
		return nil, err
	}
	result := make([]catalogapimodels.SubModuleView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, catalogapimodels.SubModuleConvert(rec))
	}
	return result, nil
}

func (i impl) ListVessels() (list []catalogapimodels.VesselView, err error) {
	recList, err := i.store.ListVessels()
	if err != nil {
		return nil, err
	}
	result := make([]catalogapimodels.VesselView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, catalogapimodels.VesselConvert(rec))
	}
	return result, nil
}

func (i impl) ListDirectorates() (list []catalogapimodels.DirectorateView, err error) {
	recList, err := i.store.ListDirectorates()
	if err != nil {
		return nil, err
	}
	result := make([]catalogapimodels.DirectorateView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, catalogapimodels.DirectorateConvert(rec))
	}
	return result, nil
}

func (i impl) ListUsers(directorateID string) (list []catalogapimodels.UserView, err error) {
	recList, err := i.store.ListUsers(directorateID)
	if err != nil {
		return nil, err
	}
	result := make([]catalogapimodels.UserView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, catalogapimodels.UserConvert(rec))
	}
	return result, nil
}

func (i impl) GetUser(id string) (item catalogapimodels.UserView, err error) {
	rec, err := i.store.GetUser(id)
	if err != nil {
		return catalogapimodels.UserView{}, err
	}
	if rec == nil {
		return catalogapimodels.UserView{}, apperrors.New(apperrors.KindNotFound, "user not found in the directorate catalog")
	}
	return catalogapimodels.UserConvert(*rec), nil
}
