package services

import "github.com/marinehub/fleetdesk/modules/review/domain/insuredobject"

// Decision events published on the application bus after the backend
// confirmed the mutation.
type ObjectApproved struct {
	ID         string
	ObjectType insuredobject.ObjectType
}

type ObjectDeclined struct {
	ID         string
	ObjectType insuredobject.ObjectType
	Reason     string
}
