package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandsHitEndpoints(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.RequestURI()
		w.Write([]byte("OK!"))
	}))
	defer srv.Close()

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "health", args: []string{"health"}, want: "/health"},
		{name: "leaderboard default", args: []string{"leaderboard"}, want: "/leaderboard"},
		{name: "leaderboard limit", args: []string{"leaderboard", "--limit", "5"}, want: "/leaderboard?limit=5"},
		{name: "results", args: []string{"results", "comp-1"}, want: "/competitions/comp-1/results"},
		{name: "community", args: []string{"community", "club-1"}, want: "/communities/club-1/rankings"},
		{name: "metrics", args: []string{"metrics"}, want: "/metrics"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			limit = 0
			var out bytes.Buffer
			rootCmd.SetOut(&out)
			rootCmd.SetArgs(append(tc.args, "--host", srv.URL))

			require.NoError(t, rootCmd.Execute())
			assert.Equal(t, tc.want, gotPath)
			assert.Contains(t, out.String(), "Status Code: 200")
			assert.Contains(t, out.String(), "OK!")
		})
	}
}

func TestResultsRequiresCompetitionID(t *testing.T) {
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"results"})
	assert.Error(t, rootCmd.Execute())
}
