package services

import (
	"context"

	"github.com/marinehub/fleetdesk/modules/core/domain/aggregates/principal"
	"github.com/marinehub/fleetdesk/modules/core/domain/entities/session"
	"github.com/marinehub/fleetdesk/pkg/serrors"
)

// Directory is the external user directory lookup.
type Directory interface {
	FindUser(ctx context.Context, bearer, subjectID string) (*principal.Principal, error)
}

type IdentityService struct {
	directory Directory
}

func NewIdentityService(directory Directory) *IdentityService {
	return &IdentityService{directory: directory}
}

// Authenticate resolves a bearer token into a Principal: decode the subject
// claim, then look the subject up in the directory. A missing or undecodable
// token and a directory 403 all surface as ErrAuthExpired.
func (s *IdentityService) Authenticate(ctx context.Context, bearer string) (*principal.Principal, error) {
	if bearer == "" {
		return nil, serrors.ErrAuthExpired
	}
	subject, err := session.DecodeSubject(bearer)
	if err != nil {
		return nil, err
	}
	return s.directory.FindUser(ctx, bearer, subject.SubjectID)
}
