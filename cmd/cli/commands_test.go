package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSet(t *testing.T) {
	s, err := parseSet("2:4-6")
	require.NoError(t, err)
	assert.Equal(t, setScore{SetNumber: 2, Score1: 4, Score2: 6}, s)

	for _, bad := range []string{"", "1", "1:6", "x:6-4", "1:a-4", "1:6-b"} {
		_, err := parseSet(bad)
		assert.Error(t, err, bad)
	}
}

func TestScoreBody(t *testing.T) {
	body, err := scoreBody([]string{"1:6-4", "2:4-6"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"sets": [{"set_number": 1, "score_1": 6, "score_2": 4}, {"set_number": 2, "score_1": 4, "score_2": 6}]}`, string(body))
}

func TestScoreCommand(t *testing.T) {
	var gotPath, gotQuery string
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotBody, _ = io.ReadAll(r.Body)
		w.Write([]byte(`{"state": "done"}`))
	}))
	defer srv.Close()

	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetArgs([]string{"--host", srv.URL, "score", "cat-1", "101", "--set", "1:6-4", "--set", "2:6-3", "--dry-run"})
	require.NoError(t, rootCmd.Execute())

	assert.Equal(t, "/categories/cat-1/games/101/scores", gotPath)
	assert.Equal(t, "dry_run=true", gotQuery)
	assert.Contains(t, string(gotBody), `"score_2":3`)
	assert.Contains(t, out.String(), "Status Code: 200")
}

func TestBracketCommand(t *testing.T) {
	var gotURL string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotURL = r.URL.String()
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"--host", srv.URL, "bracket", "cat-1", "--courts", "--reload"})
	require.NoError(t, rootCmd.Execute())

	assert.Equal(t, "/categories/cat-1/bracket?reload=true&show_courts=true", gotURL)
}
