package endpoint

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSupplierRoundRobin(t *testing.T) {
	t.Parallel()

	probe := func(context.Context, string) bool { return true }
	s := NewSupplier(context.Background(), "https://a.example", []string{"https://b.example/", "https://a.example"}, probe)

	require.Equal(t, 2, s.Len())
	require.Equal(t, "https://a.example", s.Get())
	require.Equal(t, "https://b.example", s.Get())
	require.Equal(t, "https://a.example", s.Get())
}

func TestSupplierDropsUnhealthy(t *testing.T) {
	t.Parallel()

	probe := func(_ context.Context, baseURL string) bool { return baseURL != "https://b.example" }
	s := NewSupplier(context.Background(), "https://a.example", []string{"https://b.example", "https://c.example"}, probe)

	require.Equal(t, 2, s.Len())
	require.Equal(t, "https://a.example", s.Get())
	require.Equal(t, "https://c.example", s.Get())
}

func TestSupplierKeepsPrimaryWhenNothingAnswers(t *testing.T) {
	t.Parallel()

	probe := func(context.Context, string) bool { return false }
	s := NewSupplier(context.Background(), "https://a.example", []string{"https://b.example"}, probe)

	require.Equal(t, 1, s.Len())
	require.Equal(t, "https://a.example", s.Get())
}

func TestSupplierEmpty(t *testing.T) {
	t.Parallel()

	s := NewSupplier(context.Background(), "", nil, nil)
	require.Equal(t, 0, s.Len())
	require.Equal(t, "", s.Get())
}

func TestRESTProber(t *testing.T) {
	t.Parallel()

	healthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/rest/v1/", r.URL.Path)
		require.Equal(t, "anon", r.Header.Get("apikey"))
		w.WriteHeader(http.StatusOK)
	}))
	defer healthy.Close()

	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer broken.Close()

	probe := RESTProber("anon")
	require.True(t, probe(context.Background(), healthy.URL))
	require.False(t, probe(context.Background(), broken.URL))
}
