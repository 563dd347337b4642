// Package smoke exercises a running API deployment end to end.
package smoke

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/strixcodecipher/relicsneb/internal/logger"
)

const defaultTimeout = 10 * time.Second

// Result is the outcome of a single check.
type Result struct {
	Name   string
	URL    string
	Status int
	Passed bool
	Err    error
}

// Report summarizes a run.
type Report struct {
	Run     int
	Passed  int
	Results []Result
}

// OK reports whether every check passed.
func (r Report) OK() bool { return r.Run > 0 && r.Run == r.Passed }

// Runner hits the API under baseURL (without the /api prefix).
type Runner struct {
	baseURL string
	client  *http.Client
	log     *logger.Logger
	now     func() time.Time
}

// NewRunner builds a runner. client may be nil.
func NewRunner(baseURL string, client *http.Client, log *logger.Logger) *Runner {
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Runner{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		log:     log,
		now:     time.Now,
	}
}

type check struct {
	name     string
	method   string
	endpoint string
	expected int
	body     any
	validate func(body []byte) error
}

// Run executes every check in order and returns the report.
func (r *Runner) Run(ctx context.Context) Report {
	var rep Report
	record := func(res Result) {
		rep.Run++
		if res.Passed {
			rep.Passed++
			r.log.Infow("check_passed", "name", res.Name, "url", res.URL, "status", res.Status)
		} else {
			r.log.Errorw("check_failed", "name", res.Name, "url", res.URL, "status", res.Status, "err", res.Err)
		}
		rep.Results = append(rep.Results, res)
	}

	record(r.do(ctx, check{name: "Root API Endpoint", method: http.MethodGet, endpoint: "", expected: http.StatusOK}))
	record(r.do(ctx, check{name: "Health Check", method: http.MethodGet, endpoint: "health", expected: http.StatusOK, validate: validateHealth}))
	record(r.do(ctx, check{name: "Spawn Prediction", method: http.MethodGet, endpoint: "spawn-prediction", expected: http.StatusOK, validate: validateSpawnPrediction}))

	clientName := "test_client_" + r.now().Format("150405")
	var createdID string
	record(r.do(ctx, check{
		name:     "Create Status Check",
		method:   http.MethodPost,
		endpoint: "status",
		expected: http.StatusOK,
		body:     map[string]string{"client_name": clientName},
		validate: func(body []byte) error {
			var sc struct {
				ID         string `json:"id"`
				ClientName string `json:"client_name"`
			}
			if err := json.Unmarshal(body, &sc); err != nil {
				return err
			}
			if sc.ClientName != clientName || sc.ID == "" {
				return fmt.Errorf("unexpected status check %+v", sc)
			}
			createdID = sc.ID
			return nil
		},
	}))
	record(r.do(ctx, check{
		name:     "Get Status Checks",
		method:   http.MethodGet,
		endpoint: "status",
		expected: http.StatusOK,
		validate: func(body []byte) error {
			var list []struct {
				ID string `json:"id"`
			}
			if err := json.Unmarshal(body, &list); err != nil {
				return err
			}
			if createdID == "" {
				return nil
			}
			for _, sc := range list {
				if sc.ID == createdID {
					return nil
				}
			}
			return fmt.Errorf("created status check %s not listed", createdID)
		},
	}))
	record(r.do(ctx, check{
		name:     "Reject Invalid Status Check",
		method:   http.MethodPost,
		endpoint: "status",
		expected: http.StatusUnprocessableEntity,
		body:     map[string]string{},
	}))

	return rep
}

func (r *Runner) url(endpoint string) string {
	if endpoint == "" {
		return r.baseURL + "/api"
	}
	return r.baseURL + "/api/" + endpoint
}

func (r *Runner) do(ctx context.Context, c check) Result {
	res := Result{Name: c.name, URL: r.url(c.endpoint)}

	var payload io.Reader
	if c.body != nil {
		b, err := json.Marshal(c.body)
		if err != nil {
			res.Err = fmt.Errorf("encode body: %w", err)
			return res
		}
		payload = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, c.method, res.URL, payload)
	if err != nil {
		res.Err = fmt.Errorf("build request: %w", err)
		return res
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		res.Err = err
		return res
	}
	defer resp.Body.Close()

	res.Status = resp.StatusCode
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		res.Err = fmt.Errorf("read body: %w", err)
		return res
	}
	if resp.StatusCode != c.expected {
		res.Err = fmt.Errorf("expected %d, got %d: %.200s", c.expected, resp.StatusCode, body)
		return res
	}
	if c.validate != nil {
		if err := c.validate(body); err != nil {
			res.Err = err
			return res
		}
	}
	res.Passed = true
	return res
}

var spawnFields = []string{"current_spawns", "next_spawns", "time_to_next", "current_color_set", "server_time"}

func validateSpawnPrediction(body []byte) error {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(body, &m); err != nil {
		return err
	}
	var missing []string
	for _, f := range spawnFields {
		if _, ok := m[f]; !ok {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing fields in response: %v", missing)
	}
	return nil
}

func validateHealth(body []byte) error {
	var h struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(body, &h); err != nil {
		return err
	}
	if h.Status != "healthy" {
		return fmt.Errorf("status = %q", h.Status)
	}
	return nil
}
