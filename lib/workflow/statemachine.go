// Package workflow governs a record's draft_status lifecycle:
// draft -> save (work in progress) -> approved, with the reviewer's
// reject moving save back to draft.
package workflow

import (
	"fleet-tools-backend/lib/permissions"
	"fleet-tools-backend/models"
	"fleet-tools-backend/models/apperrors"
	dbmodels "fleet-tools-backend/models/db"
)

// TransitionStore commits a status change only if the record still
// carries the expected status and lock version. matched=false means
// another writer got there first.
type TransitionStore interface {
	CompareAndSwapStatus(id string, current models.DraftStatus, lockVersion int, updMap map[string]interface{}) (matched bool, err error)
}

// Transition validates the requested move against the actor's
// capabilities and commits it with an optimistic guard. On success the
// in-memory record is updated to the committed state.
func Transition(store TransitionStore, rec *dbmodels.TrialRecord, target models.DraftStatus, actorID string, caps permissions.Capabilities, remark string) error {
	if !target.IsValid() {
		return apperrors.Newf(apperrors.KindInvalidRequest, "unknown draft status: %v", target)
	}
	if !rec.DraftStatus.IsAllowChange(target) {
		return apperrors.Newf(apperrors.KindInvalidTransition,
			"transition from %v to %v is not allowed", rec.DraftStatus.ToHuman(), target.ToHuman())
	}
	if err := checkCapability(target, caps); err != nil {
		return err
	}

	updMap := map[string]interface{}{
		"draft_status": target,
		"lock_version": rec.LockVersion + 1,
		"modified_by":  actorID,
	}
	switch target {
	case models.DraftStatusDraft:
		// reject carries the reviewer remark forward
		updMap["reviewer_remark"] = remark
	case models.DraftStatusSave:
		// a fresh submit clears the previous review round's remark
		updMap["reviewer_remark"] = ""
	}

	matched, err := store.CompareAndSwapStatus(rec.ID, rec.DraftStatus, rec.LockVersion, updMap)
	if err != nil {
		return apperrors.Wrap(apperrors.KindStorage, err, "status transition failed")
	}
	if !matched {
		return apperrors.New(apperrors.KindConcurrentModification,
			"record was modified by another user, reload and retry")
	}
	rec.DraftStatus = target
	rec.LockVersion++
	rec.ModifiedBy = actorID
	if target == models.DraftStatusDraft {
		rec.ReviewerRemark = remark
	} else if target == models.DraftStatusSave {
		rec.ReviewerRemark = ""
	}
	return nil
}

func checkCapability(target models.DraftStatus, caps permissions.Capabilities) error {
	switch target {
	case models.DraftStatusSave:
		if !caps.Edit {
			return apperrors.New(apperrors.KindInvalidTransition,
				"edit capability is required to submit a draft")
		}
	case models.DraftStatusApproved:
		if !caps.Edit {
			return apperrors.New(apperrors.KindInvalidTransition,
				"edit capability at the reviewing level is required to approve")
		}
	case models.DraftStatusDraft:
		if !caps.Comment && !caps.Edit {
			return apperrors.New(apperrors.KindInvalidTransition,
				"comment capability is required to reject")
		}
	}
	return nil
}
