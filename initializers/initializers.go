package initializers

import (
	"context"

	"fleet-tools-backend/config"
	"fleet-tools-backend/fiberlog"
	authhandler "fleet-tools-backend/lib/auth"
	filestorage "fleet-tools-backend/lib/file-storage"
	hierarchyprovider "fleet-tools-backend/lib/hierarchy"
	"fleet-tools-backend/lib/notification"
	routeconfighandler "fleet-tools-backend/lib/route-config"
	routeresolver "fleet-tools-backend/lib/route-config/resolver"
	trialrecordhandler "fleet-tools-backend/lib/trial-record"
	versionhandler "fleet-tools-backend/lib/version"
	connectionhub "fleet-tools-backend/lib/ws/hub/connection-hub"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	InitS3(ctx)
	InitSmtp()
	connectionhub.Init()
	filestorage.NewHandler()
	notification.NewHandler()
	hierarchyprovider.NewHandler()
	authhandler.NewHandler()
	routeconfighandler.NewHandler()
	routeresolver.NewHandler()
	trialrecordhandler.NewHandler(config.Conf.Unit.LocalUnitID)
	versionhandler.NewHandler()
}
