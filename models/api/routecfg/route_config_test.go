package routecfgapimodels

import (
	"testing"

	"github.com/stretchr/testify/require"

	"fleet-tools-backend/models"
	"fleet-tools-backend/models/apperrors"
)

func validData() RouteConfigData {
	return RouteConfigData{
		ModuleID:      "mod-trials",
		SubModuleID:   "sub-etma",
		VesselID:      "vsl-101",
		Level:         0,
		RouteType:     models.RouteTypeInternal,
		DirectorateID: "dir-hq",
		Permissions: []RoutePermissionData{
			{PermissionType: models.PermissionTypeEdit, IsGranted: true},
		},
	}
}

func TestValidateAcceptsLevelZero(t *testing.T) {
	require.NoError(t, validData().Validate())
}

func TestValidateRejectsNegativeLevel(t *testing.T) {
	data := validData()
	data.Level = -5
	err := data.Validate()
	require.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	appErr := apperrors.AsError(err)
	require.NotNil(t, appErr)
	require.Equal(t, "level", appErr.Field)
	require.Equal(t, "Level must be 0 or greater", appErr.Message)
}

func TestValidateRequiredCoordinates(t *testing.T) {
	for field, mutate := range map[string]func(*RouteConfigData){
		"module":     func(d *RouteConfigData) { d.ModuleID = "" },
		"sub_module": func(d *RouteConfigData) { d.SubModuleID = "" },
		"vessel":     func(d *RouteConfigData) { d.VesselID = "" },
	} {
		data := validData()
		mutate(&data)
		err := data.Validate()
		require.True(t, apperrors.IsKind(err, apperrors.KindValidation), field)
		require.Equal(t, field, apperrors.AsError(err).Field)
	}
}

func TestValidateInternalRouteNeedsDirectorate(t *testing.T) {
	data := validData()
	data.DirectorateID = ""
	err := data.Validate()
	require.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	require.Equal(t, "directorate", apperrors.AsError(err).Field)
}

func TestValidateRejectsUnknownRouteType(t *testing.T) {
	data := validData()
	data.RouteType = "postal"
	err := data.Validate()
	require.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestValidateRejectsDuplicatePermissionTypes(t *testing.T) {
	data := validData()
	data.Permissions = append(data.Permissions, RoutePermissionData{
		PermissionType: models.PermissionTypeEdit,
		IsGranted:      false,
	})
	err := data.Validate()
	require.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	require.Equal(t, "permissions", apperrors.AsError(err).Field)
}

func TestValidateDeleteNeedsID(t *testing.T) {
	data := RouteConfigData{Delete: true}
	err := data.Validate()
	require.True(t, apperrors.IsKind(err, apperrors.KindInvalidRequest))

	data.ID = "cfg-1"
	require.NoError(t, data.Validate())
}
