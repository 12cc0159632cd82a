package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var (
	showCourts bool
	reload     bool
	dryRun     bool
	sets       []string
)

func init() {
	bracketCmd.Flags().BoolVar(&showCourts, "courts", false, "Include courts and start times in match captions")
	bracketCmd.Flags().BoolVar(&reload, "reload", false, "Reload the category from the tournament backend")
	scoreCmd.Flags().StringArrayVar(&sets, "set", nil, "A set score as number:score1-score2, e.g. 1:6-4 (repeatable)")
	scoreCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Store the score without sending notifications")
	scoreCmd.MarkFlagRequired("set")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(bracketCmd)
	rootCmd.AddCommand(scoreCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(cmd.OutOrStdout(), http.MethodGet, "/health", nil)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(cmd.OutOrStdout(), http.MethodGet, "/metrics", nil)
	},
}

var bracketCmd = &cobra.Command{
	Use:   "bracket <categoryID>",
	Short: "Show the elimination bracket of a category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := url.Values{}
		if showCourts {
			query.Set("show_courts", "true")
		}
		if reload {
			query.Set("reload", "true")
		}
		endpoint := "/categories/" + url.PathEscape(args[0]) + "/bracket"
		if len(query) > 0 {
			endpoint += "?" + query.Encode()
		}
		return performRequest(cmd.OutOrStdout(), http.MethodGet, endpoint, nil)
	},
}

var scoreCmd = &cobra.Command{
	Use:   "score <categoryID> <gameID>",
	Short: "Submit the set scores of a match",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := strconv.Atoi(args[1]); err != nil {
			return fmt.Errorf("invalid game id %q: %w", args[1], err)
		}
		body, err := scoreBody(sets)
		if err != nil {
			return err
		}
		endpoint := "/categories/" + url.PathEscape(args[0]) + "/games/" + args[1] + "/scores"
		if dryRun {
			endpoint += "?dry_run=true"
		}
		return performRequest(cmd.OutOrStdout(), http.MethodPost, endpoint, bytes.NewReader(body))
	},
}

type setScore struct {
	SetNumber int `json:"set_number"`
	Score1    int `json:"score_1"`
	Score2    int `json:"score_2"`
}

// parseSet reads "number:score1-score2".
func parseSet(raw string) (setScore, error) {
	number, scores, ok := strings.Cut(strings.TrimSpace(raw), ":")
	if !ok {
		return setScore{}, fmt.Errorf("invalid set %q, expected number:score1-score2", raw)
	}
	s1, s2, ok := strings.Cut(scores, "-")
	if !ok {
		return setScore{}, fmt.Errorf("invalid set %q, expected number:score1-score2", raw)
	}
	var (
		s   setScore
		err error
	)
	if s.SetNumber, err = strconv.Atoi(number); err != nil {
		return setScore{}, fmt.Errorf("invalid set number in %q: %w", raw, err)
	}
	if s.Score1, err = strconv.Atoi(s1); err != nil {
		return setScore{}, fmt.Errorf("invalid score in %q: %w", raw, err)
	}
	if s.Score2, err = strconv.Atoi(s2); err != nil {
		return setScore{}, fmt.Errorf("invalid score in %q: %w", raw, err)
	}
	return s, nil
}

func scoreBody(raw []string) ([]byte, error) {
	req := struct {
		Sets []setScore `json:"sets"`
	}{Sets: make([]setScore, 0, len(raw))}
	for _, r := range raw {
		s, err := parseSet(r)
		if err != nil {
			return nil, err
		}
		req.Sets = append(req.Sets, s)
	}
	return json.Marshal(req)
}

func performRequest(out io.Writer, method, endpoint string, body io.Reader) error {
	target := host + endpoint
	fmt.Fprintf(out, "Making request to %s\n", target)

	req, err := http.NewRequest(method, target, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Fprintf(out, "Status Code: %d\n", resp.StatusCode)
	fmt.Fprintln(out, "Response Body:")
	fmt.Fprintln(out, string(respBody))

	return nil
}
