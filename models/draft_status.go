package models

type DraftStatus string

const (
	DraftStatusDraft    DraftStatus = "draft"
	DraftStatusSave     DraftStatus = "save"
	DraftStatusApproved DraftStatus = "approved"
)

var draftStatusHumanName = map[DraftStatus]string{
	DraftStatusDraft:    "Draft",
	DraftStatusSave:     "Work in progress",
	DraftStatusApproved: "Approved",
}

func (s DraftStatus) ToHuman() string {
	if human, exist := draftStatusHumanName[s]; exist {
		return human
	}
	return string(s)
}

func (s DraftStatus) IsValid() bool {
	switch s {
	case DraftStatusDraft, DraftStatusSave, DraftStatusApproved:
		return true
	}
	return false
}

// IsAllowChange reports whether the record lifecycle allows moving to target.
// The only backwards move is the reviewer's reject: save -> draft.
func (s DraftStatus) IsAllowChange(target DraftStatus) bool {
	switch s {
	case DraftStatusDraft:
		return target == DraftStatusSave
	case DraftStatusSave:
		return target == DraftStatusApproved || target == DraftStatusDraft
	case DraftStatusApproved:
		return false
	}
	return false
}
