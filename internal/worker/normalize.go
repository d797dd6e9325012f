package worker

import "github.com/contactscan/contactscan/internal/model"

// Normalize converts a job outcome into the payload written back to the
// queue. Every job gets a payload, successes and failures alike; the
// downstream stage dispatches on the status string, so the mapping here
// is the contract:
//
//   - emails found: auto_completed, "new py"
//   - clean crawl, no emails: auto_need_google_search, "No emails found -py"
//   - failed crawl: auto_need_google_search, first page error as message
func Normalize(outcome *model.JobOutcome) *model.ResultPayload {
	payload := &model.ResultPayload{
		// Non-nil so the JSON renders [] rather than null.
		Emails:                append([]string{}, outcome.Emails...),
		FacebookURLs:          append([]string{}, outcome.SocialURLs...),
		NeedsBrowserRendering: false,
		ScrapeType:            model.ScrapeTypeBrowserRendering,
	}

	switch {
	case outcome.HasEmails():
		payload.Status = model.PayloadStatusCompleted
		payload.Message = model.MessageCompleted
	case outcome.Success:
		payload.Status = model.PayloadStatusNeedSearch
		payload.Message = model.MessageNoEmails
	default:
		payload.Status = model.PayloadStatusNeedSearch
		payload.Message = outcome.FirstError()
		if payload.Message == "" {
			payload.Message = model.MessageScrapeFailed
		}
	}

	return payload
}
