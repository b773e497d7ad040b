package dirsync

import (
	"net/http"

	"dirsync/core/reconcile"
)

const (
	// MessageSuccess is the message of a completed run.
	MessageSuccess = "Sync completed successfully"
	// MessageFailure is the message of a failed run.
	MessageFailure = "Sync failed"
)

// Event is the trigger payload of a run. The zero value runs a regular sync.
type Event struct {
	// DryRun computes the plan without writing to the store.
	DryRun bool `json:"dryRun"`
	// KeepRemoved disables deletions for this run whatever the settings say.
	KeepRemoved bool `json:"keepRemoved"`
}

// Response is the outcome envelope of a run.
type Response struct {
	StatusCode int `json:"statusCode"`
	Body       any `json:"body"`
}

// SuccessBody is the body of a completed run.
type SuccessBody struct {
	Message     string           `json:"message"`
	Environment string           `json:"environment"`
	Stats       reconcile.Result `json:"stats"`
}

// FailureBody is the body of a failed run.
type FailureBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// Success builds the envelope of a completed run.
func Success(environment string, stats reconcile.Result) Response {
	return Response{
		StatusCode: http.StatusOK,
		Body:       SuccessBody{Message: MessageSuccess, Environment: environment, Stats: stats},
	}
}

// Failure builds the envelope of a failed run.
func Failure(err error) Response {
	return Response{
		StatusCode: http.StatusInternalServerError,
		Body:       FailureBody{Message: MessageFailure, Error: err.Error()},
	}
}

// OK reports whether the run completed.
func (r Response) OK() bool {
	return r.StatusCode == http.StatusOK
}
