package orgconfig

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFindByName(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/organization", r.URL.Path)
		require.Equal(t, "Alpha Rederij", r.URL.Query().Get("name"))
		_, _ = w.Write([]byte(`{"organizations":[{"name":"Alpha Rederij","fieldConfig":{"value":{"visible":true,"required":true}}}]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	cfg, err := client.FindByName(context.Background(), "token", "Alpha Rederij")
	require.NoError(t, err)
	require.True(t, cfg["value"].Visible)
	require.True(t, cfg["value"].Required)
}

func TestFindByName_NoMatchIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"organizations":[]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	cfg, err := client.FindByName(context.Background(), "token", "Unknown")
	require.NoError(t, err)
	require.Nil(t, cfg)
}

func TestFindByName_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	_, err := client.FindByName(context.Background(), "token", "Alpha")
	require.Error(t, err)
}
