package deadline

import (
	"time"

	"github.com/loctime/controldoc/internal/domain/entities"
)

type State string

const (
	StateMissing   State = "missing"
	StateExpired   State = "expired"
	StateSatisfied State = "satisfied"
)

// WorklistEntry is the scan result for one required document.
type WorklistEntry struct {
	Document       entities.RequiredDocument `json:"document"`
	LatestApproved *entities.Submission      `json:"latest_approved,omitempty"`
	State          State                     `json:"state"`
}

// Scan composes a company's required documents with a user's submission
// history into a worklist. Only approved submissions count; the most recently
// approved one per required document is the "active" one for expiration
// purposes. With includeSatisfied false only missing/expired entries are
// returned (worklist mode); true returns every entry (dashboard mode).
//
// Pure function: callers fetch the data, Scan never touches storage.
func Scan(docs []entities.RequiredDocument, submissions []entities.Submission, asOf time.Time, includeSatisfied bool) ([]WorklistEntry, error) {
	latest := latestApprovedByDocument(submissions)

	entries := make([]WorklistEntry, 0, len(docs))
	for _, doc := range docs {
		entry := WorklistEntry{Document: doc}

		sub, ok := latest[doc.ID]
		if !ok {
			entry.State = StateMissing
		} else {
			entry.LatestApproved = sub
			expired, err := IsExpired(sub.ApprovedAt, doc.Deadline, asOf)
			if err != nil {
				return nil, err
			}
			if expired {
				entry.State = StateExpired
			} else {
				entry.State = StateSatisfied
			}
		}

		if entry.State == StateSatisfied && !includeSatisfied {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// latestApprovedByDocument picks, per required document, the approved
// submission with the greatest ApprovedAt. Equal timestamps are broken by
// submission ID so the choice is stable across runs.
func latestApprovedByDocument(submissions []entities.Submission) map[string]*entities.Submission {
	latest := make(map[string]*entities.Submission)
	for i := range submissions {
		sub := &submissions[i]
		if sub.Status != entities.SubmissionApproved || sub.ApprovedAt == nil {
			continue
		}
		cur, ok := latest[sub.RequiredDocumentID]
		if !ok || newerThan(sub, cur) {
			latest[sub.RequiredDocumentID] = sub
		}
	}
	return latest
}

func newerThan(a, b *entities.Submission) bool {
	if !a.ApprovedAt.Equal(*b.ApprovedAt) {
		return a.ApprovedAt.After(*b.ApprovedAt)
	}
	return a.ID > b.ID
}
