package backendapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/marinehub/fleetdesk/modules/finance/domain/tariff"
	"github.com/marinehub/fleetdesk/modules/review/domain/insuredobject"
	"github.com/marinehub/fleetdesk/pkg/serrors"
)

func TestListPending_NormalizesSparseRecords(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/insured-object", r.URL.Path)
		require.Equal(t, "Pending,Rejected", r.URL.Query().Get("status"))
		_, _ = w.Write([]byte(`[
			{"id":"a","objectType":"motor","status":"Pending","value":5000,"organization":"Alpha"},
			{"notes":"no id, no org"}
		]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	objects, err := client.ListPending(context.Background(), "token")
	require.NoError(t, err)
	require.Len(t, objects, 2)
	require.Equal(t, insuredobject.ObjectTypeMotor, objects[0].ObjectType)
	require.NotEmpty(t, objects[1].ID)
	require.Equal(t, "Unknown", objects[1].Organization)
}

func TestApprove_WithoutOverrideSendsNoBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/insured-object/obj-1/approve", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		require.Empty(t, body)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	require.NoError(t, client.Approve(context.Background(), "token", "obj-1", nil))
}

func TestApprove_OverrideWireFormat(t *testing.T) {
	var got approveBody
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	err := client.Approve(context.Background(), "token", "obj-1", &insuredobject.DecisionOverride{
		Premium: tariff.Percentage(2.5),
		OwnRisk: tariff.Fixed(150),
	})
	require.NoError(t, err)
	require.Equal(t, approveBody{
		Premium: overridePart{Method: "percentage", Value: 2.5},
		OwnRisk: overridePart{Method: "fixed", Value: 150},
	}, got)
}

func TestDecline_SendsReason(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/insured-object/obj-1/decline", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "value outside appetite", body["reason"])
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	require.NoError(t, client.Decline(context.Background(), "token", "obj-1", "value outside appetite"))
}

func TestApprove_ForbiddenIsAuthExpired(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	err := client.Approve(context.Background(), "token", "obj-1", nil)
	require.ErrorIs(t, err, serrors.ErrAuthExpired)
}

func TestDecline_ServerErrorCarriesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "already approved elsewhere", http.StatusConflict)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	err := client.Decline(context.Background(), "token", "obj-1", "reason")

	var metaErr *serrors.MetaError
	require.ErrorAs(t, err, &metaErr)
	require.Equal(t, "409", metaErr.Meta["status"])
}
