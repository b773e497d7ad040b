package reconcile

import "dirsync/core/identity"

// Identity is a user record read from the source directory.
// At least one of PrimaryEmail or SecondaryEmail is set; the source adapter
// drops anything else before it reaches the engine.
type Identity struct {
	// PrimaryEmail is the canonical contact address (the directory "mail").
	PrimaryEmail string `json:"email"`

	// SecondaryEmail is an alternate address such as the user principal name.
	SecondaryEmail string `json:"upn"`

	// GivenName is the first name.
	GivenName string `json:"givenName"`

	// FamilyName is the last name.
	FamilyName string `json:"familyName"`

	// DisplayName is the full display name.
	DisplayName string `json:"displayName"`
}

// Key returns the lookup key of the identity.
func (i Identity) Key() string {
	return identity.Key(i.PrimaryEmail, i.SecondaryEmail)
}

// Contact is a record held by the destination contact store.
type Contact struct {
	// ID is the destination-assigned identifier, required for update and delete.
	ID string `json:"id"`

	// ETag is the optimistic-concurrency token. It must be echoed back
	// unchanged on update and delete; a stale value is rejected.
	ETag string `json:"etag"`

	// Fields holds the name and email attributes of the contact.
	Fields Identity `json:"fields"`
}

// Key returns the lookup key of the contact.
func (c Contact) Key() string {
	return c.Fields.Key()
}

// Update is a planned overwrite of a destination contact with source fields.
type Update struct {
	ID     string   `json:"id"`
	ETag   string   `json:"etag"`
	Fields Identity `json:"fields"`
}

// Delete is a planned removal of a destination-only contact.
type Delete struct {
	ID   string `json:"id"`
	ETag string `json:"etag"`
	Key  string `json:"key"`
}

// Plan holds the three disjoint operation sets computed for one run.
type Plan struct {
	ToCreate []Identity `json:"toCreate"`
	ToUpdate []Update   `json:"toUpdate"`
	ToDelete []Delete   `json:"toDelete"`
}

// Summary returns the operation counts of the plan.
func (p *Plan) Summary() PlanSummary {
	return PlanSummary{
		Create: len(p.ToCreate),
		Update: len(p.ToUpdate),
		Delete: len(p.ToDelete),
	}
}

// Empty reports whether the plan has no operations.
func (p *Plan) Empty() bool {
	return len(p.ToCreate) == 0 && len(p.ToUpdate) == 0 && len(p.ToDelete) == 0
}

// PlanSummary provides aggregate counts for a plan.
type PlanSummary struct {
	Create int `json:"toCreate"`
	Update int `json:"toUpdate"`
	Delete int `json:"toDelete"`
}

// Result is the outcome of one run.
type Result struct {
	// TotalSourceRecords is the number of records returned by the source.
	TotalSourceRecords int `json:"totalSourceRecords"`

	// TotalDestinationRecords is the number of distinct keys in the destination.
	TotalDestinationRecords int `json:"totalDestinationRecords"`

	Created int `json:"created"`
	Updated int `json:"updated"`
	Deleted int `json:"deleted"`

	// Errors counts failed operations across all phases.
	Errors int `json:"errors"`
}

// ActionType names an operation phase.
type ActionType string

const (
	// ActionCreate creates a destination contact.
	ActionCreate ActionType = "create"
	// ActionUpdate overwrites a destination contact.
	ActionUpdate ActionType = "update"
	// ActionDelete removes a destination contact.
	ActionDelete ActionType = "delete"
)

// Options controls plan computation and execution.
type Options struct {
	// DeleteRemoved enables deletion of destination contacts whose key is
	// absent from the source.
	DeleteRemoved bool

	// DryRun computes the plan but executes nothing.
	DryRun bool

	// Concurrency bounds the number of in-flight operations within a phase.
	// Values below 2 run each phase sequentially in plan order.
	Concurrency int
}
