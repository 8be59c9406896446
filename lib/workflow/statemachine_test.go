package workflow

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"fleet-tools-backend/lib/permissions"
	"fleet-tools-backend/models"
	"fleet-tools-backend/models/apperrors"
	dbmodels "fleet-tools-backend/models/db"
)

// casStore mimics the storage-layer optimistic guard: the swap only
// matches while the stored status and lock version equal the expected
// ones.
type casStore struct {
	mu          sync.Mutex
	status      models.DraftStatus
	lockVersion int
}

func (s *casStore) CompareAndSwapStatus(id string, current models.DraftStatus, lockVersion int, updMap map[string]interface{}) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != current || s.lockVersion != lockVersion {
		return false, nil
	}
	s.status = updMap["draft_status"].(models.DraftStatus)
	s.lockVersion = updMap["lock_version"].(int)
	return true, nil
}

func record(status models.DraftStatus) *dbmodels.TrialRecord {
	return &dbmodels.TrialRecord{
		BaseModel:   dbmodels.BaseModel{ID: "r1"},
		ModuleID:    "m1",
		SubModuleID: "s5",
		VesselID:    "v10",
		DraftStatus: status,
	}
}

var fullCaps = permissions.Capabilities{Edit: true, Comment: true, View: true}

func TestTransition(t *testing.T) {
	t.Run("draft to save requires edit", func(t *testing.T) {
		rec := record(models.DraftStatusDraft)
		store := &casStore{status: rec.DraftStatus}
		err := Transition(store, rec, models.DraftStatusSave, "u1", permissions.Capabilities{View: true}, "")
		require.Error(t, err)
		require.Equal(t, apperrors.KindInvalidTransition, apperrors.KindOf(err))
		require.Contains(t, err.Error(), "edit")

		err = Transition(store, rec, models.DraftStatusSave, "u1", fullCaps, "")
		require.NoError(t, err)
		require.Equal(t, models.DraftStatusSave, rec.DraftStatus)
		require.Equal(t, "u1", rec.ModifiedBy)
	})

	t.Run("save to approved", func(t *testing.T) {
		rec := record(models.DraftStatusSave)
		store := &casStore{status: rec.DraftStatus}
		err := Transition(store, rec, models.DraftStatusApproved, "u2", fullCaps, "")
		require.NoError(t, err)
		require.Equal(t, models.DraftStatusApproved, rec.DraftStatus)
	})

	t.Run("reject carries the reviewer remark", func(t *testing.T) {
		rec := record(models.DraftStatusSave)
		store := &casStore{status: rec.DraftStatus}
		err := Transition(store, rec, models.DraftStatusDraft, "u2", permissions.Capabilities{Comment: true, View: true}, "observation 3 incomplete")
		require.NoError(t, err)
		require.Equal(t, models.DraftStatusDraft, rec.DraftStatus)
		require.Equal(t, "observation 3 incomplete", rec.ReviewerRemark)
	})

	t.Run("reject requires comment or edit", func(t *testing.T) {
		rec := record(models.DraftStatusSave)
		store := &casStore{status: rec.DraftStatus}
		err := Transition(store, rec, models.DraftStatusDraft, "u2", permissions.Capabilities{View: true}, "")
		require.Error(t, err)
		require.Equal(t, apperrors.KindInvalidTransition, apperrors.KindOf(err))
	})

	t.Run("approved is terminal", func(t *testing.T) {
		rec := record(models.DraftStatusApproved)
		store := &casStore{status: rec.DraftStatus}
		err := Transition(store, rec, models.DraftStatusDraft, "u1", fullCaps, "")
		require.Error(t, err)
		require.Equal(t, apperrors.KindInvalidTransition, apperrors.KindOf(err))
	})

	t.Run("skipping save is rejected", func(t *testing.T) {
		rec := record(models.DraftStatusDraft)
		store := &casStore{status: rec.DraftStatus}
		err := Transition(store, rec, models.DraftStatusApproved, "u1", fullCaps, "")
		require.Error(t, err)
		require.Equal(t, apperrors.KindInvalidTransition, apperrors.KindOf(err))
	})

	t.Run("retry after commit is not silently idempotent", func(t *testing.T) {
		rec := record(models.DraftStatusDraft)
		store := &casStore{status: rec.DraftStatus}
		require.NoError(t, Transition(store, rec, models.DraftStatusSave, "u1", fullCaps, ""))
		err := Transition(store, rec, models.DraftStatusSave, "u1", fullCaps, "")
		require.Error(t, err)
		require.Equal(t, apperrors.KindInvalidTransition, apperrors.KindOf(err))
	})

	t.Run("concurrent transitions: exactly one commits", func(t *testing.T) {
		base := record(models.DraftStatusSave)
		store := &casStore{status: base.DraftStatus}

		results := make(chan error, 2)
		var wg sync.WaitGroup
		for i := 0; i < 2; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				rec := record(models.DraftStatusSave)
				results <- Transition(store, rec, models.DraftStatusApproved, "u2", fullCaps, "")
			}()
		}
		wg.Wait()
		close(results)

		committed, lost := 0, 0
		for err := range results {
			if err == nil {
				committed++
				continue
			}
			require.Equal(t, apperrors.KindConcurrentModification, apperrors.KindOf(err))
			lost++
		}
		require.Equal(t, 1, committed)
		require.Equal(t, 1, lost)
	})
}
