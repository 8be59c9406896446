package trialrecordhandler

import (
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"fleet-tools-backend/db"
	hierarchystore "fleet-tools-backend/lib/hierarchy/store"
	"fleet-tools-backend/lib/notification"
	"fleet-tools-backend/lib/permissions"
	routeresolver "fleet-tools-backend/lib/route-config/resolver"
	trialrecordstore "fleet-tools-backend/lib/trial-record/store"
	connectionhub "fleet-tools-backend/lib/ws/hub/connection-hub"
	"fleet-tools-backend/lib/workflow"
	"fleet-tools-backend/models"
	trialapimodels "fleet-tools-backend/models/api/trial"
	"fleet-tools-backend/models/apperrors"
	dbmodels "fleet-tools-backend/models/db"
	wsmodels "fleet-tools-backend/models/ws"
)

type Provider interface {
	Save(subModuleID string, actor permissions.Actor, data trialapimodels.TrialRecordData) (id string, err error)
	GetByID(subModuleID, id string) (item trialapimodels.TrialRecordView, err error)
	Delete(subModuleID, id string, actor permissions.Actor) error
	List(subModuleID string, filter trialapimodels.RecordFilter) (list []trialapimodels.TrialRecordView, rowCount int64, err error)
	Count(subModuleID string, status models.DraftStatus) (count int64, err error)
	Counts(subModuleID string) (counts trialapimodels.StatusCounts, err error)
	Capabilities(subModuleID, id string, actor permissions.Actor) (item trialapimodels.CapabilitiesView, err error)
	Approve(subModuleID, id string, actor permissions.Actor) error
	Reject(subModuleID, id string, actor permissions.Actor, data trialapimodels.RejectData) error
}

var Instance Provider

func NewHandler(localUnitID string) {
	Instance = impl{
		store:          trialrecordstore.NewInstance(db.DB),
		hierarchyStore: hierarchystore.NewInstance(db.DB),
		resolver:       routeresolver.Instance,
		notification:   notification.Instance,
		hub:            connectionhub.Instance,
		localUnitID:    localUnitID,
	}
}

type impl struct {
	store          trialrecordstore.Provider
	hierarchyStore hierarchystore.Provider
	resolver       routeresolver.Provider
	notification   notification.Provider
	hub            connectionhub.Provider
	localUnitID    string
}

// Save handles create (no id), draft update and submit: the requested
// draft_status selects which transition is asked for. Approval is a
// reviewer action with its own entry point.
func (i impl) Save(subModuleID string, actor permissions.Actor, data trialapimodels.TrialRecordData) (id string, err error) {
	logger := log.WithField("sub_module_id", subModuleID).
		WithField("user_id", actor.UserID)
	if err := data.Validate(); err != nil {
		return "", err
	}
	target := data.DraftStatus
	if target == "" {
		target = models.DraftStatusDraft
	}
	if target == models.DraftStatusApproved {
		return "", apperrors.New(apperrors.KindInvalidRequest, "approval is a reviewer action, use the approve endpoint")
	}
	subModule, err := i.hierarchyStore.GetSubModule(subModuleID)
	if err != nil {
		return "", err
	}
	if subModule == nil {
		return "", apperrors.New(apperrors.KindNotFound, "sub module not found")
	}

	// a submit that would be refused must not leave an orphan draft behind
	if target == models.DraftStatusSave && data.ID == "" {
		configs, err := i.resolver.Resolve(data.ModuleID, subModuleID, data.VesselID)
		if err != nil {
			return "", err
		}
		if caps := permissions.CapabilitiesFor(actor, i.localUnitID, configs); !caps.Edit {
			return "", apperrors.New(apperrors.KindInvalidTransition, "edit capability is required to submit a draft")
		}
	}

	var rec *dbmodels.TrialRecord
	if data.ID == "" {
		rec, err = i.create(subModuleID, actor, data)
	} else {
		rec, err = i.update(subModuleID, actor, data)
	}
	if err != nil {
		logger.WithError(err).Error("record save failed")
		return "", err
	}

	if target == models.DraftStatusSave {
		if err := i.submit(rec, actor, subModule.Name); err != nil {
			return "", err
		}
	}
	logger.WithField("rec_id", rec.ID).Info("record saved")
	return rec.ID, nil
}

func (i impl) create(subModuleID string, actor permissions.Actor, data trialapimodels.TrialRecordData) (*dbmodels.TrialRecord, error) {
	rec := dbmodels.TrialRecord{
		ModuleID:    data.ModuleID,
		SubModuleID: subModuleID,
		VesselID:    data.VesselID,
		Payload:     data.Payload,
		DraftStatus: models.DraftStatusDraft,
		CreatedBy:   actor.UserID,
		ModifiedBy:  actor.UserID,
	}
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		store := trialrecordstore.NewInstance(tx)
		id, err := store.Create(rec)
		if err != nil {
			return err
		}
		rec.ID = id
		return store.ReplaceObservations(id, toObservations(data.Observations))
	})
	if err != nil {
		return nil, err
	}
	return i.getRec(subModuleID, rec.ID)
}

func (i impl) update(subModuleID string, actor permissions.Actor, data trialapimodels.TrialRecordData) (*dbmodels.TrialRecord, error) {
	rec, err := i.getRec(subModuleID, data.ID)
	if err != nil {
		return nil, err
	}
	if rec.DraftStatus != models.DraftStatusDraft {
		return nil, apperrors.New(apperrors.KindInvalidTransition, "only draft records can be edited")
	}
	if rec.CreatedBy != actor.UserID {
		caps, err := i.capabilities(rec, actor)
		if err != nil {
			return nil, err
		}
		if !caps.Edit {
			return nil, apperrors.New(apperrors.KindInvalidTransition, "edit capability is required to change this record")
		}
	}
	updMap := map[string]interface{}{
		"ModuleID":   data.ModuleID,
		"VesselID":   data.VesselID,
		"Payload":    data.Payload,
		"ModifiedBy": actor.UserID,
	}
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		store := trialrecordstore.NewInstance(tx)
		if err := store.Update(rec.ID, updMap); err != nil {
			return err
		}
		return store.ReplaceObservations(rec.ID, toObservations(data.Observations))
	})
	if err != nil {
		return nil, err
	}
	return i.getRec(subModuleID, rec.ID)
}

// submit moves draft -> save and hands the record to the review route.
func (i impl) submit(rec *dbmodels.TrialRecord, actor permissions.Actor, subModuleName string) error {
	logger := log.WithField("rec_id", rec.ID)
	configs, err := i.resolver.Resolve(rec.ModuleID, rec.SubModuleID, rec.VesselID)
	if err != nil {
		return err
	}
	caps := permissions.CapabilitiesFor(actor, i.localUnitID, configs)
	if err := workflow.Transition(i.store, rec, models.DraftStatusSave, actor.UserID, caps, ""); err != nil {
		return err
	}
	i.notifyReviewer(configs, rec, subModuleName)
	i.broadcast(rec)
	logger.Info("record submitted for review")
	return nil
}

func (i impl) Approve(subModuleID, id string, actor permissions.Actor) error {
	logger := log.WithField("rec_id", id).
		WithField("user_id", actor.UserID)
	rec, err := i.getRec(subModuleID, id)
	if err != nil {
		return err
	}
	caps, err := i.capabilities(rec, actor)
	if err != nil {
		return err
	}
	if err := workflow.Transition(i.store, rec, models.DraftStatusApproved, actor.UserID, caps, ""); err != nil {
		logger.WithError(err).Error("approve failed")
		return err
	}
	i.broadcast(rec)
	logger.Info("record approved")
	return nil
}

func (i impl) Reject(subModuleID, id string, actor permissions.Actor, data trialapimodels.RejectData) error {
	logger := log.WithField("rec_id", id).
		WithField("user_id", actor.UserID)
	rec, err := i.getRec(subModuleID, id)
	if err != nil {
		return err
	}
	caps, err := i.capabilities(rec, actor)
	if err != nil {
		return err
	}
	if err := workflow.Transition(i.store, rec, models.DraftStatusDraft, actor.UserID, caps, data.Remark); err != nil {
		logger.WithError(err).Error("reject failed")
		return err
	}
	i.notifyCreator(rec, data.Remark)
	i.broadcast(rec)
	logger.Info("record returned to draft")
	return nil
}

func (i impl) GetByID(subModuleID, id string) (item trialapimodels.TrialRecordView, err error) {
	rec, err := i.getRec(subModuleID, id)
	if err != nil {
		return trialapimodels.TrialRecordView{}, err
	}
	return trialapimodels.TrialRecordConvert(*rec), nil
}

func (i impl) Delete(subModuleID, id string, actor permissions.Actor) error {
	logger := log.WithField("rec_id", id)
	rec, err := i.getRec(subModuleID, id)
	if err != nil {
		return err
	}
	if rec.DraftStatus == models.DraftStatusApproved {
		return apperrors.New(apperrors.KindInvalidTransition, "approved records cannot be deleted")
	}
	if rec.CreatedBy != actor.UserID {
		caps, err := i.capabilities(rec, actor)
		if err != nil {
			return err
		}
		if !caps.Edit {
			return apperrors.New(apperrors.KindInvalidTransition, "edit capability is required to delete this record")
		}
	}
	err = i.store.Delete(subModuleID, id)
	if err != nil {
		logger.WithError(err).Error("record delete failed")
		return err
	}
	logger.Info("record deleted")
	return nil
}

func (i impl) List(subModuleID string, filter trialapimodels.RecordFilter) (list []trialapimodels.TrialRecordView, rowCount int64, err error) {
	rowCount, err = i.store.ListCount(subModuleID, filter.DraftStatus)
	if err != nil {
		return nil, 0, err
	}
	page, limit := filter.GetPage()
	offset := (page - 1) * limit
	if int64(offset) > rowCount {
		return []trialapimodels.TrialRecordView{}, rowCount, nil
	}
	recList, err := i.store.List(subModuleID, filter.DraftStatus, page, limit)
	if err != nil {
		log.WithField("sub_module_id", subModuleID).WithError(err).Error("record list failed")
		return nil, 0, err
	}
	result := make([]trialapimodels.TrialRecordView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, trialapimodels.TrialRecordConvert(rec))
	}
	return result, rowCount, nil
}

func (i impl) Count(subModuleID string, status models.DraftStatus) (count int64, err error) {
	return i.store.ListCount(subModuleID, status)
}

func (i impl) Counts(subModuleID string) (counts trialapimodels.StatusCounts, err error) {
	counts.Draft, err = i.store.ListCount(subModuleID, models.DraftStatusDraft)
	if err != nil {
		return counts, err
	}
	counts.Save, err = i.store.ListCount(subModuleID, models.DraftStatusSave)
	if err != nil {
		return counts, err
	}
	counts.Approved, err = i.store.ListCount(subModuleID, models.DraftStatusApproved)
	return counts, err
}

func (i impl) Capabilities(subModuleID, id string, actor permissions.Actor) (item trialapimodels.CapabilitiesView, err error) {
	rec, err := i.getRec(subModuleID, id)
	if err != nil {
		return trialapimodels.CapabilitiesView{}, err
	}
	caps, err := i.capabilities(rec, actor)
	if err != nil {
		return trialapimodels.CapabilitiesView{}, err
	}
	return trialapimodels.CapabilitiesView{
		Edit:    caps.Edit,
		Comment: caps.Comment,
		View:    caps.View,
	}, nil
}

func (i impl) getRec(subModuleID, id string) (*dbmodels.TrialRecord, error) {
	rec, err := i.store.GetByID(subModuleID, id)
	if err != nil {
		log.WithField("rec_id", id).WithError(err).Error("record read failed")
		return nil, err
	}
	if rec == nil {
		return nil, apperrors.New(apperrors.KindNotFound, "record not found")
	}
	return rec, nil
}

func (i impl) capabilities(rec *dbmodels.TrialRecord, actor permissions.Actor) (permissions.Capabilities, error) {
	configs, err := i.resolver.Resolve(rec.ModuleID, rec.SubModuleID, rec.VesselID)
	if err != nil {
		return permissions.Capabilities{}, err
	}
	return permissions.CapabilitiesFor(actor, i.localUnitID, configs), nil
}

// notifyReviewer mails the first pinned reviewer in level order.
func (i impl) notifyReviewer(configs []dbmodels.RouteConfig, rec *dbmodels.TrialRecord, subModuleName string) {
	for _, config := range configs {
		if config.UserID == nil {
			continue
		}
		user, err := i.hierarchyStore.GetUser(*config.UserID)
		if err != nil {
			log.WithField("rec_id", rec.ID).WithError(err).Error("reviewer lookup failed")
			return
		}
		if user != nil {
			vesselName := rec.VesselID
			if config.Vessel != nil {
				vesselName = config.Vessel.Name
			}
			i.notification.ReviewRequested(user.Email, subModuleName, vesselName, rec.ID)
		}
		return
	}
}

func (i impl) notifyCreator(rec *dbmodels.TrialRecord, remark string) {
	user, err := i.hierarchyStore.GetUser(rec.CreatedBy)
	if err != nil {
		log.WithField("rec_id", rec.ID).WithError(err).Error("creator lookup failed")
		return
	}
	if user != nil {
		subModuleName := rec.SubModuleID
		if subModule, err := i.hierarchyStore.GetSubModule(rec.SubModuleID); err == nil && subModule != nil {
			subModuleName = subModule.Name
		}
		i.notification.RecordRejected(user.Email, subModuleName, rec.ID, remark)
	}
}

func (i impl) broadcast(rec *dbmodels.TrialRecord) {
	i.hub.BroadcastStatus(wsmodels.StatusEvent{
		SubModuleID: rec.SubModuleID,
		RecordID:    rec.ID,
		Status:      rec.DraftStatus,
		Time:        time.Now().Format("02.01.2006 15:04:05"),
	})
}

func toObservations(data []trialapimodels.ObservationData) []dbmodels.TrialObservation {
	result := make([]dbmodels.TrialObservation, 0, len(data))
	for _, obs := range data {
		result = append(result, dbmodels.TrialObservation{
			Observation: obs.Observation,
			Remark:      obs.Remark,
		})
	}
	return result
}
