package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/marinehub/fleetdesk/modules/finance/domain/tariff"
	"github.com/marinehub/fleetdesk/modules/review/domain/insuredobject"
	"github.com/marinehub/fleetdesk/pkg/eventbus"
	"github.com/marinehub/fleetdesk/pkg/serrors"
)

type declineCall struct {
	id     string
	reason string
}

type mockBackend struct {
	mu         sync.Mutex
	objects    []*insuredobject.PendingObject
	approveErr map[string]error
	approved   []string
	declined   []declineCall
	listCalls  int
	// blockApprove, when set, is received from before an approve returns.
	blockApprove chan struct{}
}

func (m *mockBackend) ListPending(ctx context.Context, bearer string) ([]*insuredobject.PendingObject, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listCalls++
	snapshot := make([]*insuredobject.PendingObject, len(m.objects))
	copy(snapshot, m.objects)
	return snapshot, nil
}

func (m *mockBackend) Approve(ctx context.Context, bearer, id string, override *insuredobject.DecisionOverride) error {
	if m.blockApprove != nil {
		<-m.blockApprove
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.approveErr[id]; ok {
		return err
	}
	m.approved = append(m.approved, id)
	remaining := m.objects[:0]
	for _, obj := range m.objects {
		if obj.ID != id {
			remaining = append(remaining, obj)
		}
	}
	m.objects = remaining
	return nil
}

func (m *mockBackend) Decline(ctx context.Context, bearer, id, reason string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.declined = append(m.declined, declineCall{id: id, reason: reason})
	for _, obj := range m.objects {
		if obj.ID == id {
			obj.Status = insuredobject.StatusRejected
		}
	}
	return nil
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func pendingObject(id string, value float64) *insuredobject.PendingObject {
	return &insuredobject.PendingObject{
		ID:                id,
		Name:              "Object " + id,
		ObjectType:        insuredobject.ObjectTypeBoat,
		Status:            insuredobject.StatusPending,
		Value:             value,
		Organization:      "Alpha",
		PremiumMethod:     tariff.MethodPercentage,
		PremiumPercentage: 2.5,
		OwnRiskAmount:     150,
		CreatedAt:         time.Now().Add(-24 * time.Hour),
	}
}

func newService(t *testing.T, backend *mockBackend) *ReviewService {
	t.Helper()
	svc := NewReviewService(backend, eventbus.NewEventPublisher(quietLogger()), quietLogger())
	require.NoError(t, svc.Refresh(context.Background(), "token"))
	return svc
}

func TestApprove_HappyPath(t *testing.T) {
	backend := &mockBackend{objects: []*insuredobject.PendingObject{pendingObject("a", 10000), pendingObject("b", 5000)}}
	svc := newService(t, backend)
	svc.Select("a", "b")

	require.NoError(t, svc.Approve(context.Background(), "token", "a", nil))
	require.Equal(t, []string{"a"}, backend.approved)

	// Backend confirmed, so the working set was refetched wholesale and the
	// refetch dropped the rest of the selection too.
	require.Len(t, svc.Objects(), 1)
	require.Empty(t, svc.SelectedIDs())
}

func TestApprove_ZeroPremiumBlocksWithoutBackendCall(t *testing.T) {
	obj := pendingObject("a", 10000)
	obj.PremiumPercentage = 0
	backend := &mockBackend{objects: []*insuredobject.PendingObject{obj}}
	svc := newService(t, backend)

	err := svc.Approve(context.Background(), "token", "a", nil)
	require.Error(t, err)
	var base *serrors.Base
	require.ErrorAs(t, err, &base)
	require.Equal(t, "VALIDATION", base.Code)
	require.Empty(t, backend.approved)
	require.Len(t, svc.Objects(), 1, "no state change on a blocked approve")
}

func TestApprove_ZeroOwnRiskBlocks(t *testing.T) {
	obj := pendingObject("a", 10000)
	// 20 snaps to the nearest multiple of 50, which is 0.
	obj.OwnRiskAmount = 20
	backend := &mockBackend{objects: []*insuredobject.PendingObject{obj}}
	svc := newService(t, backend)

	require.Error(t, svc.Approve(context.Background(), "token", "a", nil))
	require.Empty(t, backend.approved)
}

func TestApprove_OverrideReplacesStoredDefaults(t *testing.T) {
	obj := pendingObject("a", 10000)
	obj.PremiumPercentage = 0 // stored defaults alone would block
	backend := &mockBackend{objects: []*insuredobject.PendingObject{obj}}
	svc := newService(t, backend)

	override := &insuredobject.DecisionOverride{
		Premium: tariff.Fixed(125),
		OwnRisk: tariff.Fixed(150),
	}
	require.NoError(t, svc.Approve(context.Background(), "token", "a", override))
	require.Equal(t, []string{"a"}, backend.approved)
}

func TestApprove_InvalidOverrideIsRejected(t *testing.T) {
	backend := &mockBackend{objects: []*insuredobject.PendingObject{pendingObject("a", 10000)}}
	svc := newService(t, backend)

	override := &insuredobject.DecisionOverride{
		Premium: tariff.Percentage(0),
		OwnRisk: tariff.Fixed(150),
	}
	require.Error(t, svc.Approve(context.Background(), "token", "a", override))
	require.Empty(t, backend.approved)
}

func TestApprove_BackendFailureLeavesObjectUnmoved(t *testing.T) {
	backend := &mockBackend{
		objects:    []*insuredobject.PendingObject{pendingObject("a", 10000)},
		approveErr: map[string]error{"a": errors.New("500 internal server error")},
	}
	svc := newService(t, backend)

	require.Error(t, svc.Approve(context.Background(), "token", "a", nil))
	require.Len(t, svc.Objects(), 1)
}

func TestApprove_RejectedObjectCanBeApproved(t *testing.T) {
	obj := pendingObject("a", 10000)
	obj.Status = insuredobject.StatusRejected
	backend := &mockBackend{objects: []*insuredobject.PendingObject{obj}}
	svc := newService(t, backend)

	require.NoError(t, svc.Approve(context.Background(), "token", "a", nil))
}

func TestDecline_WhitespaceReasonBlocksWithoutBackendCall(t *testing.T) {
	backend := &mockBackend{objects: []*insuredobject.PendingObject{pendingObject("a", 10000)}}
	svc := newService(t, backend)

	require.Error(t, svc.Decline(context.Background(), "token", "a", "   "))
	require.Empty(t, backend.declined)
}

func TestDecline_RepeatDeclineIsAllowed(t *testing.T) {
	backend := &mockBackend{objects: []*insuredobject.PendingObject{pendingObject("a", 10000)}}
	svc := newService(t, backend)

	require.NoError(t, svc.Decline(context.Background(), "token", "a", "incomplete dossier"))
	require.NoError(t, svc.Decline(context.Background(), "token", "a", "still incomplete"))
	require.Len(t, backend.declined, 2)
	require.Len(t, svc.Objects(), 1, "rejected objects remain visible for reconsideration")
}

func TestBulkApprove_OneFailureDoesNotBlockOthers(t *testing.T) {
	backend := &mockBackend{
		objects: []*insuredobject.PendingObject{
			pendingObject("a", 10000),
			pendingObject("b", 10000),
			pendingObject("c", 10000),
		},
		approveErr: map[string]error{"b": errors.New("409 conflict")},
	}
	svc := newService(t, backend)

	report, err := svc.BulkApprove(context.Background(), "token", []string{"a", "b", "c"})
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"a", "c"}, report.Approved)
	require.Len(t, report.Failed, 1)
	require.Equal(t, "b", report.Failed[0].ID)
	require.ElementsMatch(t, []string{"a", "c"}, backend.approved)
}

func TestBulkApprove_UsesStoredDefaultsOnly(t *testing.T) {
	zero := pendingObject("z", 10000)
	zero.PremiumPercentage = 0
	backend := &mockBackend{objects: []*insuredobject.PendingObject{zero, pendingObject("a", 10000)}}
	svc := newService(t, backend)

	report, err := svc.BulkApprove(context.Background(), "token", []string{"z", "a"})
	require.NoError(t, err)
	require.Equal(t, []string{"a"}, report.Approved)
	require.Len(t, report.Failed, 1)
	require.Equal(t, "z", report.Failed[0].ID)
}

func TestBulkDecline_IsUnsupported(t *testing.T) {
	svc := newService(t, &mockBackend{})
	require.ErrorIs(t, svc.BulkDecline(), serrors.ErrBulkDecline)
}

func TestSelection_ClearedByRefresh(t *testing.T) {
	backend := &mockBackend{objects: []*insuredobject.PendingObject{pendingObject("a", 1), pendingObject("b", 2)}}
	svc := newService(t, backend)

	svc.Select("a", "b", "ghost")
	require.Equal(t, []string{"a", "b"}, svc.SelectedIDs(), "unknown ids are never selected")

	require.NoError(t, svc.Refresh(context.Background(), "token"))
	require.Empty(t, svc.SelectedIDs(), "selection never survives a refetch")
}

func TestSelection_DeselectAndClear(t *testing.T) {
	backend := &mockBackend{objects: []*insuredobject.PendingObject{pendingObject("a", 1), pendingObject("b", 2)}}
	svc := newService(t, backend)

	svc.Select("a", "b")
	svc.Deselect("a")
	require.Equal(t, []string{"b"}, svc.SelectedIDs())

	svc.ClearSelection()
	require.Empty(t, svc.SelectedIDs())
}

func TestApprove_SecondDecisionOnSameIDIsRefused(t *testing.T) {
	backend := &mockBackend{
		objects:      []*insuredobject.PendingObject{pendingObject("a", 10000)},
		blockApprove: make(chan struct{}),
	}
	svc := newService(t, backend)

	firstDone := make(chan error, 1)
	go func() {
		firstDone <- svc.Approve(context.Background(), "token", "a", nil)
	}()

	// Wait until the first approve is parked inside the backend call.
	require.Eventually(t, func() bool {
		return svc.Decline(context.Background(), "token", "a", "reason") == serrors.ErrDecisionInFlight
	}, time.Second, 5*time.Millisecond)

	close(backend.blockApprove)
	require.NoError(t, <-firstDone)
}
