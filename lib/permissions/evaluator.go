// Package permissions decides which capabilities an actor holds over a
// record given its resolved route configs.
//
// A config's user-level grant and its permission entries are only
// binding when the config's directorate equals the local unit of the
// deployment evaluating the request. A config pointing at a foreign
// directorate is informational: it routes and displays, it never grants
// edit or comment. This comparison rule is deliberate product behavior;
// change it here and nowhere else.
package permissions

import (
	"fleet-tools-backend/models"
	dbmodels "fleet-tools-backend/models/db"
)

type Actor struct {
	UserID        string
	DirectorateID string
}

type Capabilities struct {
	Edit    bool
	Comment bool
	View    bool
}

// CapabilitiesFor evaluates the actor against the resolved configs.
// localUnitID is threaded in explicitly by the caller; the evaluator
// holds no ambient state. No resolved config means no access at all.
func CapabilitiesFor(actor Actor, localUnitID string, configs []dbmodels.RouteConfig) Capabilities {
	if len(configs) == 0 {
		return Capabilities{}
	}
	// existence of a route implies visibility to directorate members
	caps := Capabilities{View: true}
	for _, config := range configs {
		if !bindsLocally(config, localUnitID) {
			continue
		}
		if !appliesTo(config, actor) {
			continue
		}
		if config.Granted(models.PermissionTypeEdit) {
			caps.Edit = true
		}
		if config.Granted(models.PermissionTypeComment) {
			caps.Comment = true
		}
	}
	return caps
}

// CapabilitiesForConfig evaluates a single config, used when a specific
// review level is being checked rather than the whole chain.
func CapabilitiesForConfig(actor Actor, localUnitID string, config dbmodels.RouteConfig) Capabilities {
	return CapabilitiesFor(actor, localUnitID, []dbmodels.RouteConfig{config})
}

func bindsLocally(config dbmodels.RouteConfig, localUnitID string) bool {
	if config.DirectorateID == nil || localUnitID == "" {
		return false
	}
	return *config.DirectorateID == localUnitID
}

func appliesTo(config dbmodels.RouteConfig, actor Actor) bool {
	if config.UserID != nil {
		// pinned reviewer: only that user receives the grant
		return actor.UserID == *config.UserID
	}
	// directorate-wide rule: any member of the reviewing directorate
	return config.DirectorateID != nil && actor.DirectorateID == *config.DirectorateID
}
