package services

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/marinehub/fleetdesk/modules/access/domain/fieldconfig"
	"github.com/marinehub/fleetdesk/modules/core/domain/aggregates/principal"
	"github.com/marinehub/fleetdesk/pkg/serrors"
)

// ConfigStore is the external per-organization field configuration store.
type ConfigStore interface {
	FindByName(ctx context.Context, bearer, name string) (fieldconfig.Config, error)
}

type AccessService struct {
	configs ConfigStore
	log     *logrus.Logger
}

func NewAccessService(configs ConfigStore, log *logrus.Logger) *AccessService {
	return &AccessService{configs: configs, log: log}
}

func (s *AccessService) CanAccessOrganization(p *principal.Principal, org string) bool {
	return p.CanAccessOrganization(org)
}

// ResolveEffectiveFieldConfig computes the field configuration for a request.
// A nil result is the unrestricted sentinel: every field visible, nothing
// required. selected is the operator's organization selection; nil means no
// selection was made and the primary organization applies.
//
// Field visibility fails open: an unreachable config store never hides
// fields, and a partial fan-out failure merges whatever did arrive. Only an
// expired session propagates as an error.
func (s *AccessService) ResolveEffectiveFieldConfig(
	ctx context.Context,
	bearer string,
	p *principal.Principal,
	selected *principal.Scope,
) (*fieldconfig.Effective, error) {
	if p.Role == principal.RoleAdmin {
		return nil, nil
	}

	if selected == nil {
		if p.PrimaryOrganization == "" {
			return nil, nil
		}
		return s.fetchOne(ctx, bearer, p.PrimaryOrganization)
	}

	switch selected.Kind() {
	case principal.ScopeUnrestricted:
		return nil, nil
	case principal.ScopeAllMemberships:
		members := p.Memberships()
		switch len(members) {
		case 0:
			return nil, nil
		case 1:
			return s.fetchOne(ctx, bearer, members[0])
		default:
			return s.fetchMerged(ctx, bearer, members)
		}
	case principal.ScopeOrganization:
		if !p.CanAccessOrganization(selected.Organization()) {
			return nil, nil
		}
		return s.fetchOne(ctx, bearer, selected.Organization())
	}
	return nil, nil
}

func (s *AccessService) fetchOne(ctx context.Context, bearer, org string) (*fieldconfig.Effective, error) {
	cfg, err := s.configs.FindByName(ctx, bearer, org)
	if err != nil {
		if errors.Is(err, serrors.ErrAuthExpired) {
			return nil, err
		}
		s.log.WithError(err).Warnf("access: config fetch for %q failed, falling back to permissive defaults", org)
		return nil, nil
	}
	if cfg == nil {
		return nil, nil
	}
	return fieldconfig.NewEffective(cfg), nil
}

// fetchMerged fans out one fetch per membership and joins on all of them
// completing. Failed fetches are dropped from the merge so one unreachable
// organization never hides fields owned by a reachable one.
func (s *AccessService) fetchMerged(ctx context.Context, bearer string, members []string) (*fieldconfig.Effective, error) {
	type result struct {
		cfg fieldconfig.Config
		err error
	}

	results := make([]result, len(members))
	wg := sync.WaitGroup{}
	for i, org := range members {
		wg.Add(1)
		go func(i int, org string) {
			defer wg.Done()
			cfg, err := s.configs.FindByName(ctx, bearer, org)
			results[i] = result{cfg: cfg, err: err}
		}(i, org)
	}
	wg.Wait()

	configs := make([]fieldconfig.Config, 0, len(members))
	for i, res := range results {
		if res.err != nil {
			if errors.Is(res.err, serrors.ErrAuthExpired) {
				return nil, res.err
			}
			s.log.WithError(res.err).Warnf("access: config fetch for %q failed, merging without it", members[i])
			continue
		}
		if res.cfg != nil {
			configs = append(configs, res.cfg)
		}
	}
	if len(configs) == 0 {
		return nil, nil
	}
	return fieldconfig.Merge(configs...), nil
}

// FilterReachable is the listing filter: non-admin principals only see
// records of organizations they can access. Unlike field visibility this
// fails closed: a record of an unreachable organization is excluded, never
// shown.
func FilterReachable[T any](p *principal.Principal, records []T, orgOf func(T) string) []T {
	if p.Role == principal.RoleAdmin {
		return records
	}
	reachable := make([]T, 0, len(records))
	for _, record := range records {
		if p.CanAccessOrganization(orgOf(record)) {
			reachable = append(reachable, record)
		}
	}
	return reachable
}
