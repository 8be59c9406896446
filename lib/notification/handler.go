package notification

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	smtpclient "fleet-tools-backend/lib/smtp"
)

// Reviewer mail is best effort: a failed send is logged, never surfaced
// to the submitting user.

type Provider interface {
	ReviewRequested(email, subModuleName, vesselName, recordID string)
	RecordRejected(email, subModuleName, recordID, remark string)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		smtp: smtpclient.Instance,
	}
}

type impl struct {
	smtp smtpclient.Provider
}

func (i impl) ReviewRequested(email, subModuleName, vesselName, recordID string) {
	if email == "" {
		return
	}
	msg := fmt.Sprintf("A %s record for vessel %s has been submitted for your review (record %s).",
		subModuleName, vesselName, recordID)
	if err := i.smtp.SendEMail(email, msg, "Review requested"); err != nil {
		log.WithField("rec_id", recordID).WithError(err).Error("review notification failed")
	}
}

func (i impl) RecordRejected(email, subModuleName, recordID, remark string) {
	if email == "" {
		return
	}
	msg := fmt.Sprintf("Your %s record %s was returned to draft.\nReviewer remark: %s", subModuleName, recordID, remark)
	if err := i.smtp.SendEMail(email, msg, "Record returned to draft"); err != nil {
		log.WithField("rec_id", recordID).WithError(err).Error("reject notification failed")
	}
}
