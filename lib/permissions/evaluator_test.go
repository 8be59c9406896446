package permissions

import (
	"testing"

	"github.com/stretchr/testify/require"

	"fleet-tools-backend/models"
	dbmodels "fleet-tools-backend/models/db"
)

func strPtr(s string) *string {
	return &s
}

func internalConfig(directorateID string, userID string, grants map[models.PermissionType]bool) dbmodels.RouteConfig {
	rec := dbmodels.RouteConfig{
		BaseModel:     dbmodels.BaseModel{ID: "c1"},
		ModuleID:      "m1",
		SubModuleID:   "s5",
		VesselID:      "v10",
		Level:         0,
		RouteType:     models.RouteTypeInternal,
		DirectorateID: strPtr(directorateID),
		Active:        1,
	}
	if userID != "" {
		rec.UserID = strPtr(userID)
	}
	for permType, granted := range grants {
		rec.Permissions = append(rec.Permissions, dbmodels.RoutePermission{
			PermissionType: permType,
			IsGranted:      granted,
		})
	}
	return rec
}

func TestCapabilitiesFor(t *testing.T) {
	editGrant := map[models.PermissionType]bool{models.PermissionTypeEdit: true}

	t.Run("local directorate member receives the grant", func(t *testing.T) {
		config := internalConfig("d7", "", editGrant)
		actor := Actor{UserID: "u1", DirectorateID: "d7"}
		caps := CapabilitiesFor(actor, "d7", []dbmodels.RouteConfig{config})
		require.True(t, caps.Edit)
		require.True(t, caps.View)
	})

	t.Run("directorate mismatch denies regardless of grants", func(t *testing.T) {
		config := internalConfig("d7", "", editGrant)
		actor := Actor{UserID: "u1", DirectorateID: "d7"}
		caps := CapabilitiesFor(actor, "d9", []dbmodels.RouteConfig{config})
		require.False(t, caps.Edit)
		require.False(t, caps.Comment)
		require.True(t, caps.View)
	})

	t.Run("no resolved config fails closed", func(t *testing.T) {
		actor := Actor{UserID: "u1", DirectorateID: "d7"}
		caps := CapabilitiesFor(actor, "d7", nil)
		require.Equal(t, Capabilities{}, caps)
	})

	t.Run("pinned user excludes other directorate members", func(t *testing.T) {
		config := internalConfig("d7", "u2", editGrant)
		caps := CapabilitiesFor(Actor{UserID: "u1", DirectorateID: "d7"}, "d7", []dbmodels.RouteConfig{config})
		require.False(t, caps.Edit)
		require.True(t, caps.View)

		caps = CapabilitiesFor(Actor{UserID: "u2", DirectorateID: "d7"}, "d7", []dbmodels.RouteConfig{config})
		require.True(t, caps.Edit)
	})

	t.Run("revoked entry does not grant", func(t *testing.T) {
		config := internalConfig("d7", "", map[models.PermissionType]bool{
			models.PermissionTypeEdit:    false,
			models.PermissionTypeComment: true,
		})
		caps := CapabilitiesFor(Actor{UserID: "u1", DirectorateID: "d7"}, "d7", []dbmodels.RouteConfig{config})
		require.False(t, caps.Edit)
		require.True(t, caps.Comment)
	})

	t.Run("actor outside the reviewing directorate gets view only", func(t *testing.T) {
		config := internalConfig("d7", "", editGrant)
		caps := CapabilitiesFor(Actor{UserID: "u1", DirectorateID: "d3"}, "d7", []dbmodels.RouteConfig{config})
		require.False(t, caps.Edit)
		require.True(t, caps.View)
	})

	t.Run("grants accumulate across the chain", func(t *testing.T) {
		chain := []dbmodels.RouteConfig{
			internalConfig("d7", "", map[models.PermissionType]bool{models.PermissionTypeComment: true}),
			internalConfig("d7", "", editGrant),
		}
		caps := CapabilitiesFor(Actor{UserID: "u1", DirectorateID: "d7"}, "d7", chain)
		require.True(t, caps.Edit)
		require.True(t, caps.Comment)
	})
}
