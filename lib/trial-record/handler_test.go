package trialrecordhandler

import (
	"sync"
	"testing"

	"github.com/gofiber/contrib/websocket"
	"github.com/stretchr/testify/require"

	"fleet-tools-backend/lib/permissions"
	"fleet-tools-backend/models"
	trialapimodels "fleet-tools-backend/models/api/trial"
	"fleet-tools-backend/models/apperrors"
	dbmodels "fleet-tools-backend/models/db"
	wsmodels "fleet-tools-backend/models/ws"
)

type fakeRecordStore struct {
	mu   sync.Mutex
	recs map[string]*dbmodels.TrialRecord
}

func newFakeRecordStore(recs ...*dbmodels.TrialRecord) *fakeRecordStore {
	store := &fakeRecordStore{recs: map[string]*dbmodels.TrialRecord{}}
	for _, rec := range recs {
		store.recs[rec.ID] = rec
	}
	return store
}

func (f *fakeRecordStore) Create(rec dbmodels.TrialRecord) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recs[rec.ID] = &rec
	return rec.ID, nil
}

func (f *fakeRecordStore) GetByID(subModuleID, id string) (*dbmodels.TrialRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.recs[id]
	if !ok || rec.SubModuleID != subModuleID {
		return nil, nil
	}
	clone := *rec
	return &clone, nil
}

func (f *fakeRecordStore) Update(id string, updMap map[string]interface{}) error { return nil }

func (f *fakeRecordStore) Delete(subModuleID, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.recs, id)
	return nil
}

func (f *fakeRecordStore) List(subModuleID string, status models.DraftStatus, page, limit int) ([]dbmodels.TrialRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	list := []dbmodels.TrialRecord{}
	for _, rec := range f.recs {
		if rec.SubModuleID != subModuleID {
			continue
		}
		if status != "" && rec.DraftStatus != status {
			continue
		}
		list = append(list, *rec)
	}
	return list, nil
}

func (f *fakeRecordStore) ListCount(subModuleID string, status models.DraftStatus) (int64, error) {
	list, _ := f.List(subModuleID, status, 1, 100)
	return int64(len(list)), nil
}

func (f *fakeRecordStore) CompareAndSwapStatus(id string, current models.DraftStatus, lockVersion int, updMap map[string]interface{}) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.recs[id]
	if !ok || rec.DraftStatus != current || rec.LockVersion != lockVersion {
		return false, nil
	}
	rec.DraftStatus = updMap["draft_status"].(models.DraftStatus)
	rec.LockVersion = updMap["lock_version"].(int)
	rec.ModifiedBy = updMap["modified_by"].(string)
	if remark, ok := updMap["reviewer_remark"]; ok {
		rec.ReviewerRemark = remark.(string)
	}
	return true, nil
}

func (f *fakeRecordStore) ReplaceObservations(recordID string, observations []dbmodels.TrialObservation) error {
	return nil
}

type fakeHierarchy struct {
	subModules map[string]dbmodels.SubModule
	users      map[string]dbmodels.DirectorateUser
}

func (f fakeHierarchy) ListModules() ([]dbmodels.CatalogModule, error)          { return nil, nil }
func (f fakeHierarchy) ListSubModules(string) ([]dbmodels.SubModule, error)     { return nil, nil }
func (f fakeHierarchy) ListVessels() ([]dbmodels.Vessel, error)                 { return nil, nil }
func (f fakeHierarchy) ListDirectorates() ([]dbmodels.Directorate, error)       { return nil, nil }
func (f fakeHierarchy) GetDirectorate(string) (*dbmodels.Directorate, error)    { return nil, nil }
func (f fakeHierarchy) ListUsers(string) ([]dbmodels.DirectorateUser, error)    { return nil, nil }
func (f fakeHierarchy) FindUserByEmail(string) (*dbmodels.DirectorateUser, error) {
	return nil, nil
}

func (f fakeHierarchy) GetSubModule(id string) (*dbmodels.SubModule, error) {
	rec, ok := f.subModules[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (f fakeHierarchy) GetUser(id string) (*dbmodels.DirectorateUser, error) {
	rec, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

type fakeResolver struct {
	configs []dbmodels.RouteConfig
}

func (f fakeResolver) Resolve(moduleID, subModuleID, vesselID string) ([]dbmodels.RouteConfig, error) {
	return f.configs, nil
}

type fakeNotification struct {
	reviewRequested []string
	rejected        []string
	lastRemark      string
}

func (f *fakeNotification) ReviewRequested(email, subModuleName, vesselName, recordID string) {
	f.reviewRequested = append(f.reviewRequested, email)
}

func (f *fakeNotification) RecordRejected(email, subModuleName, recordID, remark string) {
	f.rejected = append(f.rejected, email)
	f.lastRemark = remark
}

type fakeHub struct {
	events []wsmodels.StatusEvent
}

func (f *fakeHub) AddClient(userID string, conn *websocket.Conn) {}
func (f *fakeHub) DeleteClient(userID string)                    {}
func (f *fakeHub) IsConnected(userID string) bool                { return false }
func (f *fakeHub) BroadcastStatus(event wsmodels.StatusEvent) {
	f.events = append(f.events, event)
}

const (
	localUnit  = "dir-local"
	otherUnit  = "dir-remote"
	testModule = "mod-trials"
	testSub    = "sub-etma"
	testVessel = "vsl-101"
	creatorID  = "user-creator"
	reviewerID = "user-reviewer"
)

func grantedConfig(id string, directorateID string, perms ...models.PermissionType) dbmodels.RouteConfig {
	config := dbmodels.RouteConfig{
		BaseModel:     dbmodels.BaseModel{ID: id},
		ModuleID:      testModule,
		SubModuleID:   testSub,
		VesselID:      testVessel,
		RouteType:     models.RouteTypeInternal,
		DirectorateID: &directorateID,
		Active:        1,
	}
	for _, perm := range perms {
		config.Permissions = append(config.Permissions, dbmodels.RoutePermission{
			RouteConfigID:  id,
			PermissionType: perm,
			IsGranted:      true,
		})
	}
	return config
}

func savedRecord() *dbmodels.TrialRecord {
	return &dbmodels.TrialRecord{
		BaseModel:   dbmodels.BaseModel{ID: "rec-1"},
		ModuleID:    testModule,
		SubModuleID: testSub,
		VesselID:    testVessel,
		DraftStatus: models.DraftStatusSave,
		LockVersion: 1,
		CreatedBy:   creatorID,
	}
}

func newTestHandler(store *fakeRecordStore, resolver fakeResolver, hierarchy fakeHierarchy) (impl, *fakeNotification, *fakeHub) {
	mail := &fakeNotification{}
	hub := &fakeHub{}
	handler := impl{
		store:          store,
		hierarchyStore: hierarchy,
		resolver:       resolver,
		notification:   mail,
		hub:            hub,
		localUnitID:    localUnit,
	}
	return handler, mail, hub
}

func TestApproveWithEditCapability(t *testing.T) {
	store := newFakeRecordStore(savedRecord())
	resolver := fakeResolver{configs: []dbmodels.RouteConfig{
		grantedConfig("cfg-1", localUnit, models.PermissionTypeEdit, models.PermissionTypeComment),
	}}
	handler, _, hub := newTestHandler(store, resolver, fakeHierarchy{})

	actor := permissions.Actor{UserID: reviewerID, DirectorateID: localUnit}
	err := handler.Approve(testSub, "rec-1", actor)
	require.NoError(t, err)

	rec, err := store.GetByID(testSub, "rec-1")
	require.NoError(t, err)
	require.Equal(t, models.DraftStatusApproved, rec.DraftStatus)
	require.Equal(t, 2, rec.LockVersion)
	require.Len(t, hub.events, 1)
	require.Equal(t, models.DraftStatusApproved, hub.events[0].Status)
}

func TestApproveWithoutEditCapability(t *testing.T) {
	store := newFakeRecordStore(savedRecord())
	resolver := fakeResolver{configs: []dbmodels.RouteConfig{
		grantedConfig("cfg-1", localUnit, models.PermissionTypeComment),
	}}
	handler, _, _ := newTestHandler(store, resolver, fakeHierarchy{})

	actor := permissions.Actor{UserID: reviewerID, DirectorateID: localUnit}
	err := handler.Approve(testSub, "rec-1", actor)
	require.True(t, apperrors.IsKind(err, apperrors.KindInvalidTransition))

	rec, _ := store.GetByID(testSub, "rec-1")
	require.Equal(t, models.DraftStatusSave, rec.DraftStatus)
}

func TestApproveOutsideLocalUnit(t *testing.T) {
	// edit granted at directorate level, but the config's directorate is
	// not the local unit, so the grant does not bind
	store := newFakeRecordStore(savedRecord())
	resolver := fakeResolver{configs: []dbmodels.RouteConfig{
		grantedConfig("cfg-1", otherUnit, models.PermissionTypeEdit),
	}}
	handler, _, _ := newTestHandler(store, resolver, fakeHierarchy{})

	actor := permissions.Actor{UserID: reviewerID, DirectorateID: otherUnit}
	err := handler.Approve(testSub, "rec-1", actor)
	require.True(t, apperrors.IsKind(err, apperrors.KindInvalidTransition))
}

func TestRejectCarriesRemarkAndNotifiesCreator(t *testing.T) {
	store := newFakeRecordStore(savedRecord())
	resolver := fakeResolver{configs: []dbmodels.RouteConfig{
		grantedConfig("cfg-1", localUnit, models.PermissionTypeComment),
	}}
	hierarchy := fakeHierarchy{
		subModules: map[string]dbmodels.SubModule{testSub: {Name: "ETMA"}},
		users: map[string]dbmodels.DirectorateUser{
			creatorID: {Email: "creator@fleet.mil"},
		},
	}
	handler, mail, hub := newTestHandler(store, resolver, hierarchy)

	actor := permissions.Actor{UserID: reviewerID, DirectorateID: localUnit}
	err := handler.Reject(testSub, "rec-1", actor, trialapimodels.RejectData{Remark: "missing trial readings"})
	require.NoError(t, err)

	rec, _ := store.GetByID(testSub, "rec-1")
	require.Equal(t, models.DraftStatusDraft, rec.DraftStatus)
	require.Equal(t, "missing trial readings", rec.ReviewerRemark)
	require.Equal(t, []string{"creator@fleet.mil"}, mail.rejected)
	require.Equal(t, "missing trial readings", mail.lastRemark)
	require.Len(t, hub.events, 1)
}

func TestApproveUnknownRecord(t *testing.T) {
	handler, _, _ := newTestHandler(newFakeRecordStore(), fakeResolver{}, fakeHierarchy{})

	actor := permissions.Actor{UserID: reviewerID, DirectorateID: localUnit}
	err := handler.Approve(testSub, "missing", actor)
	require.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestSaveRejectsApprovedTarget(t *testing.T) {
	handler, _, _ := newTestHandler(newFakeRecordStore(), fakeResolver{}, fakeHierarchy{
		subModules: map[string]dbmodels.SubModule{testSub: {Name: "ETMA"}},
	})

	actor := permissions.Actor{UserID: creatorID, DirectorateID: localUnit}
	_, err := handler.Save(testSub, actor, trialapimodels.TrialRecordData{
		ModuleID:    testModule,
		VesselID:    testVessel,
		DraftStatus: models.DraftStatusApproved,
	})
	require.True(t, apperrors.IsKind(err, apperrors.KindInvalidRequest))
}

func TestSaveSubmitWithoutCapabilityCreatesNothing(t *testing.T) {
	store := newFakeRecordStore()
	handler, mail, _ := newTestHandler(store, fakeResolver{configs: []dbmodels.RouteConfig{
		grantedConfig("cfg-1", otherUnit, models.PermissionTypeEdit),
	}}, fakeHierarchy{
		subModules: map[string]dbmodels.SubModule{testSub: {Name: "ETMA"}},
	})

	// the grant binds to another unit, the submit is refused before any
	// row is written
	actor := permissions.Actor{UserID: creatorID, DirectorateID: otherUnit}
	_, err := handler.Save(testSub, actor, trialapimodels.TrialRecordData{
		ModuleID:    testModule,
		VesselID:    testVessel,
		DraftStatus: models.DraftStatusSave,
	})
	require.True(t, apperrors.IsKind(err, apperrors.KindInvalidTransition))
	require.Empty(t, store.recs)
	require.Empty(t, mail.reviewRequested)
}

func TestSaveUnknownSubModule(t *testing.T) {
	handler, _, _ := newTestHandler(newFakeRecordStore(), fakeResolver{}, fakeHierarchy{})

	actor := permissions.Actor{UserID: creatorID, DirectorateID: localUnit}
	_, err := handler.Save(testSub, actor, trialapimodels.TrialRecordData{
		ModuleID: testModule,
		VesselID: testVessel,
	})
	require.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestCapabilitiesFailClosed(t *testing.T) {
	store := newFakeRecordStore(savedRecord())
	handler, _, _ := newTestHandler(store, fakeResolver{}, fakeHierarchy{})

	actor := permissions.Actor{UserID: reviewerID, DirectorateID: localUnit}
	caps, err := handler.Capabilities(testSub, "rec-1", actor)
	require.NoError(t, err)
	require.False(t, caps.Edit)
	require.False(t, caps.Comment)
	require.False(t, caps.View)
}

func TestCountsPerStatus(t *testing.T) {
	draft := savedRecord()
	draft.ID = "rec-draft"
	draft.DraftStatus = models.DraftStatusDraft
	approved := savedRecord()
	approved.ID = "rec-approved"
	approved.DraftStatus = models.DraftStatusApproved
	store := newFakeRecordStore(savedRecord(), draft, approved)
	handler, _, _ := newTestHandler(store, fakeResolver{}, fakeHierarchy{})

	counts, err := handler.Counts(testSub)
	require.NoError(t, err)
	require.Equal(t, int64(1), counts.Draft)
	require.Equal(t, int64(1), counts.Save)
	require.Equal(t, int64(1), counts.Approved)
}
