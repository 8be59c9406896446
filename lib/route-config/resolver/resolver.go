package routeresolver

import (
	"fleet-tools-backend/db"
	hierarchystore "fleet-tools-backend/lib/hierarchy/store"
	routeconfigstore "fleet-tools-backend/lib/route-config/store"
	"fleet-tools-backend/models/apperrors"
	dbmodels "fleet-tools-backend/models/db"
)

// Resolver reduces the stored route configs for a record's hierarchy
// coordinates to the ordered review chain. Absence of rules is a valid
// result, not an error.

type Provider interface {
	Resolve(moduleID, subModuleID, vesselID string) (list []dbmodels.RouteConfig, err error)
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(routeconfigstore.NewInstance(db.DB), hierarchystore.NewInstance(db.DB))
}

func NewInstance(store routeconfigstore.Provider, hierarchyStore hierarchystore.Provider) Provider {
	return impl{
		store:          store,
		hierarchyStore: hierarchyStore,
	}
}

type impl struct {
	store          routeconfigstore.Provider
	hierarchyStore hierarchystore.Provider
}

func (i impl) Resolve(moduleID, subModuleID, vesselID string) (list []dbmodels.RouteConfig, err error) {
	if moduleID == "" {
		return nil, apperrors.OnField(apperrors.KindInvalidRequest, "module", "module is required")
	}
	if subModuleID == "" {
		return nil, apperrors.OnField(apperrors.KindInvalidRequest, "sub_module", "sub module is required")
	}
	if vesselID == "" {
		return nil, apperrors.OnField(apperrors.KindInvalidRequest, "vessel", "vessel is required")
	}
	recList, err := i.store.FindActive(moduleID, subModuleID, vesselID)
	if err != nil {
		return nil, err
	}
	result := make([]dbmodels.RouteConfig, 0, len(recList))
	for _, rec := range recList {
		applicable, err := i.isApplicable(rec)
		if err != nil {
			return nil, err
		}
		if applicable {
			result = append(result, rec)
		}
	}
	return result, nil
}

// isApplicable drops rules whose directorate or pinned user reference
// dangles: catalog nodes are deleted independently of the rules
// pointing at them.
func (i impl) isApplicable(rec dbmodels.RouteConfig) (bool, error) {
	if rec.DirectorateID != nil {
		directorate, err := i.hierarchyStore.GetDirectorate(*rec.DirectorateID)
		if err != nil {
			return false, err
		}
		if directorate == nil {
			return false, nil
		}
	}
	if rec.UserID != nil {
		user, err := i.hierarchyStore.GetUser(*rec.UserID)
		if err != nil {
			return false, err
		}
		if user == nil {
			return false, nil
		}
	}
	return true, nil
}
