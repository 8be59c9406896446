package versionhandler

import (
	"context"

	log "github.com/sirupsen/logrus"

	"fleet-tools-backend/db"
	filestorage "fleet-tools-backend/lib/file-storage"
	hierarchystore "fleet-tools-backend/lib/hierarchy/store"
	versionstore "fleet-tools-backend/lib/version/store"
	apimodels "fleet-tools-backend/models/api"
	versionapimodels "fleet-tools-backend/models/api/version"
	"fleet-tools-backend/models/apperrors"
	dbmodels "fleet-tools-backend/models/db"
)

type Provider interface {
	Save(ctx context.Context, data versionapimodels.VersionData) (id string, err error)
	GetByID(ctx context.Context, id string) (item versionapimodels.VersionView, err error)
	List(subModuleID string, pagination apimodels.Pagination) (list []versionapimodels.VersionView, rowCount int64, err error)
	Archive(ctx context.Context, id string) (key string, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:          versionstore.NewInstance(db.DB),
		hierarchyStore: hierarchystore.NewInstance(db.DB),
		archive:        filestorage.Instance,
	}
}

type impl struct {
	store          versionstore.Provider
	hierarchyStore hierarchystore.Provider
	archive        filestorage.Provider
}

// Save always inserts a new row; the stored payload is kept byte for
// byte as submitted. Archiving to object storage is best effort and
// never fails the save.
func (i impl) Save(ctx context.Context, data versionapimodels.VersionData) (id string, err error) {
	logger := log.WithField("sub_module_id", data.SubModuleID).
		WithField("version", data.Version)
	if err := data.Validate(); err != nil {
		return "", err
	}
	subModule, err := i.hierarchyStore.GetSubModule(data.SubModuleID)
	if err != nil {
		return "", err
	}
	if subModule == nil {
		return "", apperrors.New(apperrors.KindNotFound, "sub module not found")
	}
	rec := dbmodels.VersionSnapshot{
		Version:     data.Version,
		SubModuleID: data.SubModuleID,
		Data:        data.Data,
		DraftStatus: data.DraftStatus,
	}
	id, err = i.store.Create(rec)
	if err != nil {
		logger.WithError(err).Error("version snapshot save failed")
		return "", err
	}
	if i.archive != nil && len(data.Data) != 0 {
		key, err := i.archive.ArchiveSnapshot(ctx, id, data.Data)
		if err != nil {
			logger.WithError(err).Warn("version snapshot archive failed")
		} else if err := i.store.SetArchiveKey(id, key); err != nil {
			logger.WithError(err).Warn("archive key save failed")
		}
	}
	logger.WithField("rec_id", id).Info("version snapshot saved")
	return id, nil
}

func (i impl) GetByID(ctx context.Context, id string) (item versionapimodels.VersionView, err error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		log.WithField("rec_id", id).WithError(err).Error("version snapshot read failed")
		return versionapimodels.VersionView{}, err
	}
	if rec == nil {
		return versionapimodels.VersionView{}, apperrors.New(apperrors.KindNotFound, "version snapshot not found")
	}
	if len(rec.Data) == 0 && rec.ArchiveKey != "" && i.archive != nil {
		data, err := i.archive.GetArchive(ctx, rec.ArchiveKey)
		if err != nil {
			log.WithField("rec_id", id).WithError(err).Warn("archive read failed")
		} else {
			rec.Data = data
		}
	}
	return versionapimodels.VersionConvert(*rec), nil
}

// Archive re-uploads a snapshot payload to object storage on demand,
// for rows saved while the bucket was unreachable.
func (i impl) Archive(ctx context.Context, id string) (key string, err error) {
	logger := log.WithField("rec_id", id)
	rec, err := i.store.GetByID(id)
	if err != nil {
		logger.WithError(err).Error("version snapshot read failed")
		return "", err
	}
	if rec == nil {
		return "", apperrors.New(apperrors.KindNotFound, "version snapshot not found")
	}
	if len(rec.Data) == 0 {
		return "", apperrors.New(apperrors.KindInvalidRequest, "snapshot has no payload to archive")
	}
	if i.archive == nil {
		return "", apperrors.New(apperrors.KindStorage, "object storage is not configured")
	}
	key, err = i.archive.ArchiveSnapshot(ctx, rec.ID, rec.Data)
	if err != nil {
		logger.WithError(err).Error("version snapshot archive failed")
		return "", apperrors.Wrap(apperrors.KindStorage, err, "snapshot archive failed")
	}
	if err := i.store.SetArchiveKey(rec.ID, key); err != nil {
		logger.WithError(err).Error("archive key save failed")
		return "", err
	}
	logger.WithField("archive_key", key).Info("version snapshot archived")
	return key, nil
}

func (i impl) List(subModuleID string, pagination apimodels.Pagination) (list []versionapimodels.VersionView, rowCount int64, err error) {
	rowCount, err = i.store.ListCount(subModuleID)
	if err != nil {
		return nil, 0, err
	}
	page, limit := pagination.GetPage()
	recList, err := i.store.List(subModuleID, page, limit)
	if err != nil {
		log.WithField("sub_module_id", subModuleID).WithError(err).Error("version snapshot list failed")
		return nil, 0, err
	}
	result := make([]versionapimodels.VersionView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, versionapimodels.VersionConvert(rec))
	}
	return result, rowCount, nil
}
