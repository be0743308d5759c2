package routes

import "net/url"

const (
	DashboardPath   = "/org/dashboard"
	EventCreatePath = "/org/event-create"
	RegisterPath    = "/register"
)

func questionPath(eventID string) string {
	return "/events/" + url.PathEscape(eventID)
}

func questionFragmentPath(eventID string) string {
	return questionPath(eventID) + "/question"
}

func responsePagePath(eventID, questionID string) string {
	return questionPath(eventID) + "/questions/" + url.PathEscape(questionID)
}

func responsePath(eventID, questionID string) string {
	return responsePagePath(eventID, questionID) + "/response"
}
