package session

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/marinehub/fleetdesk/pkg/serrors"
)

// Subject is the decoded bearer token: the subject id plus whatever claims
// the identity provider put in. Signatures are validated by the identity
// provider, not here.
type Subject struct {
	SubjectID string
	Claims    jwt.MapClaims
}

func DecodeSubject(token string) (*Subject, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, serrors.ErrAuthExpired
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return nil, serrors.ErrAuthExpired
	}
	return &Subject{SubjectID: sub, Claims: claims}, nil
}

// BearerFromHeader extracts the token from an Authorization header value.
func BearerFromHeader(header string) (string, bool) {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, prefix))
	return token, token != ""
}
