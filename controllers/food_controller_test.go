package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestSearchFoodsShortQueryNeverReachesUpstream(t *testing.T) {
	gin.SetMode(gin.TestMode)

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("upstream must not be called for short queries")
	}))
	t.Cleanup(upstream.Close)
	t.Setenv("USDA_API_URL", upstream.URL)
	t.Setenv("USDA_API_KEY", "test-key")

	r := gin.New()
	r.GET("/food/search", SearchFoods)

	for _, q := range []string{"", "a"} {
		req := httptest.NewRequest(http.MethodGet, "/food/search?q="+q, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusBadRequest, w.Code)
	}
}

func TestSearchFoodsUpstreamFailureIsBadGateway(t *testing.T) {
	gin.SetMode(gin.TestMode)

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	t.Cleanup(upstream.Close)
	t.Setenv("USDA_API_URL", upstream.URL)
	t.Setenv("USDA_API_KEY", "test-key")

	r := gin.New()
	r.GET("/food/search", SearchFoods)

	req := httptest.NewRequest(http.MethodGet, "/food/search?q=chicken", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadGateway, w.Code)
}
