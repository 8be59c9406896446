package versionhandler

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	apimodels "fleet-tools-backend/models/api"
	versionapimodels "fleet-tools-backend/models/api/version"
	"fleet-tools-backend/models/apperrors"
	dbmodels "fleet-tools-backend/models/db"
)

type fakeVersionStore struct {
	recs  map[string]*dbmodels.VersionSnapshot
	order []string
}

func newFakeVersionStore() *fakeVersionStore {
	return &fakeVersionStore{recs: map[string]*dbmodels.VersionSnapshot{}}
}

func (f *fakeVersionStore) Create(rec dbmodels.VersionSnapshot) (string, error) {
	rec.ID = fmt.Sprintf("ver-%d", len(f.order)+1)
	f.recs[rec.ID] = &rec
	f.order = append(f.order, rec.ID)
	return rec.ID, nil
}

func (f *fakeVersionStore) GetByID(id string) (*dbmodels.VersionSnapshot, error) {
	rec, ok := f.recs[id]
	if !ok {
		return nil, nil
	}
	clone := *rec
	return &clone, nil
}

func (f *fakeVersionStore) List(subModuleID string, page, limit int) ([]dbmodels.VersionSnapshot, error) {
	list := []dbmodels.VersionSnapshot{}
	for _, id := range f.order {
		if f.recs[id].SubModuleID == subModuleID {
			list = append(list, *f.recs[id])
		}
	}
	return list, nil
}

func (f *fakeVersionStore) ListCount(subModuleID string) (int64, error) {
	list, _ := f.List(subModuleID, 1, 100)
	return int64(len(list)), nil
}

func (f *fakeVersionStore) SetArchiveKey(id, key string) error {
	rec, ok := f.recs[id]
	if !ok {
		return apperrors.New(apperrors.KindNotFound, "version snapshot not found")
	}
	rec.ArchiveKey = key
	return nil
}

type fakeArchive struct {
	objects map[string][]byte
	fail    bool
}

func (f *fakeArchive) ArchiveSnapshot(ctx context.Context, snapshotID string, data []byte) (string, error) {
	if f.fail {
		return "", fmt.Errorf("bucket unavailable")
	}
	key := "versions/" + snapshotID + ".json"
	if f.objects == nil {
		f.objects = map[string][]byte{}
	}
	f.objects[key] = data
	return key, nil
}

func (f *fakeArchive) GetArchive(ctx context.Context, key string) ([]byte, error) {
	data, ok := f.objects[key]
	if !ok {
		return nil, fmt.Errorf("no such object")
	}
	return data, nil
}

func newTestHandler(archive *fakeArchive) (impl, *fakeVersionStore) {
	store := newFakeVersionStore()
	return impl{
		store:          store,
		hierarchyStore: fixedHierarchy{},
		archive:        archive,
	}, store
}

// fixedHierarchy knows a single sub module.
type fixedHierarchy struct{ emptyHierarchy }

func (fixedHierarchy) GetSubModule(id string) (*dbmodels.SubModule, error) {
	if id != "sub-etma" {
		return nil, nil
	}
	return &dbmodels.SubModule{Name: "ETMA"}, nil
}

type emptyHierarchy struct{}

func (emptyHierarchy) ListModules() ([]dbmodels.CatalogModule, error)            { return nil, nil }
func (emptyHierarchy) ListSubModules(string) ([]dbmodels.SubModule, error)       { return nil, nil }
func (emptyHierarchy) GetSubModule(string) (*dbmodels.SubModule, error)          { return nil, nil }
func (emptyHierarchy) ListVessels() ([]dbmodels.Vessel, error)                   { return nil, nil }
func (emptyHierarchy) ListDirectorates() ([]dbmodels.Directorate, error)         { return nil, nil }
func (emptyHierarchy) GetDirectorate(string) (*dbmodels.Directorate, error)      { return nil, nil }
func (emptyHierarchy) ListUsers(string) ([]dbmodels.DirectorateUser, error)      { return nil, nil }
func (emptyHierarchy) GetUser(string) (*dbmodels.DirectorateUser, error)         { return nil, nil }
func (emptyHierarchy) FindUserByEmail(string) (*dbmodels.DirectorateUser, error) { return nil, nil }

func TestSaveKeepsPayloadByteExact(t *testing.T) {
	handler, _ := newTestHandler(&fakeArchive{})

	// key order and spacing must survive the round trip untouched
	payload := json.RawMessage(`{"b":1, "a": {"nested":  "v"}}`)
	id, err := handler.Save(context.Background(), versionapimodels.VersionData{
		Version:     "v1.0",
		SubModuleID: "sub-etma",
		Data:        payload,
	})
	require.NoError(t, err)

	item, err := handler.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, []byte(payload), []byte(item.Data))
	require.Equal(t, "v1.0", item.Version)
}

func TestSaveAlwaysInsertsNewRow(t *testing.T) {
	handler, store := newTestHandler(&fakeArchive{})

	for n := 1; n <= 3; n++ {
		_, err := handler.Save(context.Background(), versionapimodels.VersionData{
			Version:     "v1.0",
			SubModuleID: "sub-etma",
			Data:        json.RawMessage(`{}`),
		})
		require.NoError(t, err)
	}
	require.Len(t, store.recs, 3)
}

func TestSaveSetsArchiveKey(t *testing.T) {
	archive := &fakeArchive{}
	handler, store := newTestHandler(archive)

	id, err := handler.Save(context.Background(), versionapimodels.VersionData{
		Version:     "v2.1",
		SubModuleID: "sub-etma",
		Data:        json.RawMessage(`{"rows":[]}`),
	})
	require.NoError(t, err)
	require.Equal(t, "versions/"+id+".json", store.recs[id].ArchiveKey)
	require.Equal(t, []byte(`{"rows":[]}`), archive.objects[store.recs[id].ArchiveKey])
}

func TestSaveSurvivesArchiveFailure(t *testing.T) {
	handler, store := newTestHandler(&fakeArchive{fail: true})

	id, err := handler.Save(context.Background(), versionapimodels.VersionData{
		Version:     "v1.0",
		SubModuleID: "sub-etma",
		Data:        json.RawMessage(`{}`),
	})
	require.NoError(t, err)
	require.Empty(t, store.recs[id].ArchiveKey)
}

func TestSaveWithoutArchiveConfigured(t *testing.T) {
	store := newFakeVersionStore()
	handler := impl{store: store, hierarchyStore: fixedHierarchy{}}

	id, err := handler.Save(context.Background(), versionapimodels.VersionData{
		Version:     "v1.0",
		SubModuleID: "sub-etma",
		Data:        json.RawMessage(`{"rows":[]}`),
	})
	require.NoError(t, err)
	require.Empty(t, store.recs[id].ArchiveKey)

	item, err := handler.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, []byte(`{"rows":[]}`), []byte(item.Data))
}

func TestSaveValidation(t *testing.T) {
	handler, _ := newTestHandler(&fakeArchive{})

	_, err := handler.Save(context.Background(), versionapimodels.VersionData{SubModuleID: "sub-etma"})
	require.True(t, apperrors.IsKind(err, apperrors.KindInvalidRequest))

	_, err = handler.Save(context.Background(), versionapimodels.VersionData{Version: "v1.0"})
	require.True(t, apperrors.IsKind(err, apperrors.KindInvalidRequest))

	_, err = handler.Save(context.Background(), versionapimodels.VersionData{
		Version:     "v1.0",
		SubModuleID: "sub-unknown",
	})
	require.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestListScopedToSubModule(t *testing.T) {
	handler, store := newTestHandler(&fakeArchive{})
	store.Create(dbmodels.VersionSnapshot{Version: "v1", SubModuleID: "sub-etma"})
	store.Create(dbmodels.VersionSnapshot{Version: "v1", SubModuleID: "sub-other"})

	list, rowCount, err := handler.List("sub-etma", apimodels.Pagination{})
	require.NoError(t, err)
	require.Equal(t, int64(1), rowCount)
	require.Len(t, list, 1)
	require.Equal(t, "sub-etma", list[0].SubModuleID)
}

func TestGetByIDUnknown(t *testing.T) {
	handler, _ := newTestHandler(&fakeArchive{})

	_, err := handler.GetByID(context.Background(), "missing")
	require.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestArchiveOnDemand(t *testing.T) {
	archive := &fakeArchive{}
	handler, store := newTestHandler(archive)
	id, _ := store.Create(dbmodels.VersionSnapshot{
		Version:     "v1.0",
		SubModuleID: "sub-etma",
		Data:        json.RawMessage(`{"rows":[1]}`),
	})

	key, err := handler.Archive(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, key, store.recs[id].ArchiveKey)
	require.Equal(t, []byte(`{"rows":[1]}`), archive.objects[key])

	_, err = handler.Archive(context.Background(), "missing")
	require.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestArchiveRejectsEmptyPayload(t *testing.T) {
	handler, store := newTestHandler(&fakeArchive{})
	id, _ := store.Create(dbmodels.VersionSnapshot{Version: "v1.0", SubModuleID: "sub-etma"})

	_, err := handler.Archive(context.Background(), id)
	require.True(t, apperrors.IsKind(err, apperrors.KindInvalidRequest))
}
