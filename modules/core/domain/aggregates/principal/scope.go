package principal

// Scope is the organization selection a request is evaluated against. It is a
// closed variant so call sites switch on Kind instead of comparing magic
// strings.
type Scope struct {
	kind         ScopeKind
	organization string
}

type ScopeKind int

const (
	ScopeUnrestricted ScopeKind = iota
	ScopeAllMemberships
	ScopeOrganization
)

// ScopeWireAll is the wire value the presentation layer sends to request the
// merged view over every membership.
const ScopeWireAll = "all"

func Unrestricted() Scope {
	return Scope{kind: ScopeUnrestricted}
}

func AllMemberships() Scope {
	return Scope{kind: ScopeAllMemberships}
}

func Organization(name string) Scope {
	return Scope{kind: ScopeOrganization, organization: name}
}

func (s Scope) Kind() ScopeKind {
	return s.kind
}

// Organization returns the selected organization name; empty unless
// Kind() == ScopeOrganization.
func (s Scope) Organization() string {
	return s.organization
}

// ParseScope maps a wire value onto a Scope. An empty value means "no
// selection" and yields ok=false; callers then fall back to the principal's
// primary organization.
func ParseScope(raw string) (Scope, bool) {
	switch raw {
	case "":
		return Scope{}, false
	case ScopeWireAll:
		return AllMemberships(), true
	default:
		return Organization(raw), true
	}
}
