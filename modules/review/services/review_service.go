package services

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/marinehub/fleetdesk/modules/finance/domain/tariff"
	"github.com/marinehub/fleetdesk/modules/review/domain/insuredobject"
	"github.com/marinehub/fleetdesk/pkg/eventbus"
	"github.com/marinehub/fleetdesk/pkg/serrors"
)

// BackendAPI is the insured-object backend. It owns all authoritative state;
// the service only keeps a working snapshot.
type BackendAPI interface {
	ListPending(ctx context.Context, bearer string) ([]*insuredobject.PendingObject, error)
	Approve(ctx context.Context, bearer, id string, override *insuredobject.DecisionOverride) error
	Decline(ctx context.Context, bearer, id, reason string) error
}

// ReviewService drives the pending-object lifecycle. The working set is
// replaced wholesale after every confirmed mutation; it is never patched
// optimistically, so concurrent external changes are picked up on the next
// refetch.
type ReviewService struct {
	backend BackendAPI
	bus     eventbus.EventBus
	log     *logrus.Logger

	mu        sync.RWMutex
	objects   []*insuredobject.PendingObject
	selection map[string]struct{}

	flightMu sync.Mutex
	inFlight map[string]struct{}
}

func NewReviewService(backend BackendAPI, bus eventbus.EventBus, log *logrus.Logger) *ReviewService {
	return &ReviewService{
		backend:   backend,
		bus:       bus,
		log:       log,
		selection: map[string]struct{}{},
		inFlight:  map[string]struct{}{},
	}
}

// Refresh replaces the working set with the backend's current view. Every
// refetch drops the whole selection so no action can run on stale ids.
func (s *ReviewService) Refresh(ctx context.Context, bearer string) error {
	objects, err := s.backend.ListPending(ctx, bearer)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.objects = objects
	s.selection = map[string]struct{}{}
	s.mu.Unlock()
	return nil
}

// Objects returns a snapshot copy of the working set.
func (s *ReviewService) Objects() []*insuredobject.PendingObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot := make([]*insuredobject.PendingObject, len(s.objects))
	copy(snapshot, s.objects)
	return snapshot
}

func (s *ReviewService) find(id string) (*insuredobject.PendingObject, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, obj := range s.objects {
		if obj.ID == id {
			return obj, true
		}
	}
	return nil, false
}

// beginDecision claims the per-object mutual exclusion slot. The backend is
// not idempotent, so a second decision on the same id must wait for the
// first to settle.
func (s *ReviewService) beginDecision(id string) error {
	s.flightMu.Lock()
	defer s.flightMu.Unlock()
	if _, busy := s.inFlight[id]; busy {
		return serrors.ErrDecisionInFlight
	}
	s.inFlight[id] = struct{}{}
	return nil
}

func (s *ReviewService) endDecision(id string) {
	s.flightMu.Lock()
	delete(s.inFlight, id)
	s.flightMu.Unlock()
}

func effectiveConfigs(obj *insuredobject.PendingObject, override *insuredobject.DecisionOverride) (tariff.Config, tariff.Config) {
	if override != nil {
		return override.Premium, override.OwnRisk
	}
	return obj.StoredPremiumConfig(), obj.StoredOwnRiskConfig()
}

// checkApprovable is the client-side approval gate. It runs before any
// backend call: a zero premium or zero own-risk blocks the approval
// regardless of whether the amounts come from stored defaults or an
// operator override.
func checkApprovable(obj *insuredobject.PendingObject, override *insuredobject.DecisionOverride) error {
	if !obj.Status.Decidable() {
		return serrors.Validation("object %s is no longer decidable", obj.ID)
	}
	premiumCfg, ownRiskCfg := effectiveConfigs(obj, override)
	if override != nil {
		if err := premiumCfg.Validate(); err != nil {
			return err
		}
		if err := ownRiskCfg.Validate(); err != nil {
			return err
		}
	}
	if premiumCfg.Premium(obj.Value) == 0 {
		return serrors.Validation("premium resolves to zero; set a premium before approving")
	}
	if ownRiskCfg.OwnRisk(obj.Value) == 0 {
		return serrors.Validation("own risk resolves to zero; set an own risk before approving")
	}
	return nil
}

// Approve transitions a pending or rejected object to Approved. On backend
// success the id leaves the selection and the working set is refetched; on
// failure nothing moves locally.
func (s *ReviewService) Approve(ctx context.Context, bearer, id string, override *insuredobject.DecisionOverride) error {
	if err := s.beginDecision(id); err != nil {
		return err
	}
	defer s.endDecision(id)

	obj, ok := s.find(id)
	if !ok {
		return serrors.Validation("unknown object %s", id)
	}
	if err := checkApprovable(obj, override); err != nil {
		return err
	}
	if err := s.backend.Approve(ctx, bearer, id, override); err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.selection, id)
	s.mu.Unlock()
	s.bus.Publish(ObjectApproved{ID: id, ObjectType: obj.ObjectType})

	if err := s.Refresh(ctx, bearer); err != nil {
		s.log.WithError(err).Warn("review: refetch after approve failed; working set may be stale")
	}
	return nil
}

// Decline transitions the object to Rejected. Rejected is not terminal: the
// object stays in the working set for reconsideration.
func (s *ReviewService) Decline(ctx context.Context, bearer, id, reason string) error {
	if strings.TrimSpace(reason) == "" {
		return serrors.Validation("a decline reason is required")
	}
	if err := s.beginDecision(id); err != nil {
		return err
	}
	defer s.endDecision(id)

	obj, ok := s.find(id)
	if !ok {
		return serrors.Validation("unknown object %s", id)
	}
	if !obj.Status.Decidable() {
		return serrors.Validation("object %s is no longer decidable", id)
	}
	if err := s.backend.Decline(ctx, bearer, id, reason); err != nil {
		return err
	}

	s.bus.Publish(ObjectDeclined{ID: id, ObjectType: obj.ObjectType, Reason: reason})

	if err := s.Refresh(ctx, bearer); err != nil {
		s.log.WithError(err).Warn("review: refetch after decline failed; working set may be stale")
	}
	return nil
}

// BulkReport lists the per-id outcome of a bulk approval. Successes are
// never rolled back because some other id failed.
type BulkReport struct {
	Approved []string      `json:"approved"`
	Failed   []BulkFailure `json:"failed"`
}

type BulkFailure struct {
	ID    string `json:"id"`
	Error string `json:"error"`
}

// BulkApprove approves each id independently using the object's stored
// defaults; the bulk path never injects per-item overrides. Calls fan out
// concurrently and join before the single trailing refetch.
func (s *ReviewService) BulkApprove(ctx context.Context, bearer string, ids []string) (*BulkReport, error) {
	if len(ids) == 0 {
		return nil, serrors.Validation("no objects selected")
	}

	outcomes := make([]error, len(ids))
	wg := sync.WaitGroup{}
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			outcomes[i] = s.approveStored(ctx, bearer, id)
		}(i, id)
	}
	wg.Wait()

	report := &BulkReport{Approved: []string{}, Failed: []BulkFailure{}}
	for i, id := range ids {
		if outcomes[i] != nil {
			report.Failed = append(report.Failed, BulkFailure{ID: id, Error: outcomes[i].Error()})
			continue
		}
		report.Approved = append(report.Approved, id)
	}

	if err := s.Refresh(ctx, bearer); err != nil {
		s.log.WithError(err).Warn("review: refetch after bulk approve failed; working set may be stale")
	}
	return report, nil
}

func (s *ReviewService) approveStored(ctx context.Context, bearer, id string) error {
	if err := s.beginDecision(id); err != nil {
		return err
	}
	defer s.endDecision(id)

	obj, ok := s.find(id)
	if !ok {
		return serrors.Validation("unknown object %s", id)
	}
	if err := checkApprovable(obj, nil); err != nil {
		return err
	}
	if err := s.backend.Approve(ctx, bearer, id, nil); err != nil {
		return err
	}
	s.mu.Lock()
	delete(s.selection, id)
	s.mu.Unlock()
	s.bus.Publish(ObjectApproved{ID: id, ObjectType: obj.ObjectType})
	return nil
}

// BulkDecline is deliberately unsupported: a reason is mandatory and
// per-item, so declines must be issued individually.
func (s *ReviewService) BulkDecline() error {
	return serrors.ErrBulkDecline
}

// Select adds ids of objects currently in the working set to the selection.
func (s *ReviewService) Select(ids ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	known := make(map[string]struct{}, len(s.objects))
	for _, obj := range s.objects {
		known[obj.ID] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := known[id]; ok {
			s.selection[id] = struct{}{}
		}
	}
}

func (s *ReviewService) Deselect(id string) {
	s.mu.Lock()
	delete(s.selection, id)
	s.mu.Unlock()
}

func (s *ReviewService) ClearSelection() {
	s.mu.Lock()
	s.selection = map[string]struct{}{}
	s.mu.Unlock()
}

// SelectedIDs returns the selection in stable order.
func (s *ReviewService) SelectedIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.selection))
	for id := range s.selection {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
