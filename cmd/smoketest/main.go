// Command smoketest exercises the live HTTP surface of a running service
// instance end to end: health, list, create, fetch, update, validation
// failures, and delete. It exits non-zero if any step fails.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Count   *int            `json:"count"`
	Message string          `json:"message"`
}

type userView struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

func main() {
	baseURL := flag.String("base-url", "http://localhost:8080", "base URL of a running service instance")
	flag.Parse()

	st := &smokeTester{
		baseURL: *baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
	st.run()

	fmt.Printf("\n%d passed, %d failed\n", st.passed, st.failed)
	if st.failed > 0 {
		os.Exit(1)
	}
}

type smokeTester struct {
	baseURL string
	client  *http.Client
	passed  int
	failed  int
}

func (st *smokeTester) run() {
	email := fmt.Sprintf("smoke-%d@example.com", time.Now().UnixNano())

	st.step("health check", func() error {
		env, status, err := st.request(http.MethodGet, "/health", nil, "application/json")
		if err != nil {
			return err
		}
		return expect(status == http.StatusOK && env.Success, "expected 200 success, got %d", status)
	})

	st.step("list users", func() error {
		env, status, err := st.request(http.MethodGet, "/api/users", nil, "")
		if err != nil {
			return err
		}
		if status != http.StatusOK || !env.Success {
			return fmt.Errorf("expected 200 success, got %d", status)
		}
		var users []userView
		if err := json.Unmarshal(env.Data, &users); err != nil {
			return fmt.Errorf("decode data: %w", err)
		}
		return expect(env.Count != nil && *env.Count == len(users),
			"count %v does not match list length %d", env.Count, len(users))
	})

	var created userView
	st.step("create user", func() error {
		env, status, err := st.request(http.MethodPost, "/api/users",
			map[string]string{"name": "  Smoke Tester  ", "email": email}, "application/json")
		if err != nil {
			return err
		}
		if status != http.StatusCreated || !env.Success {
			return fmt.Errorf("expected 201 success, got %d (%s)", status, env.Message)
		}
		if err := json.Unmarshal(env.Data, &created); err != nil {
			return fmt.Errorf("decode data: %w", err)
		}
		return expect(created.Name == "Smoke Tester" && created.Email == email,
			"expected normalized user, got %+v", created)
	})

	st.step("fetch created user", func() error {
		env, status, err := st.request(http.MethodGet, fmt.Sprintf("/api/users/%d", created.ID), nil, "")
		if err != nil {
			return err
		}
		return expect(status == http.StatusOK && env.Success, "expected 200 success, got %d", status)
	})

	st.step("update user name", func() error {
		env, status, err := st.request(http.MethodPut, fmt.Sprintf("/api/users/%d", created.ID),
			map[string]string{"name": "Renamed Tester"}, "application/json")
		if err != nil {
			return err
		}
		return expect(status == http.StatusOK && env.Message == "User updated successfully",
			"expected 200 updated, got %d (%s)", status, env.Message)
	})

	st.step("duplicate email rejected", func() error {
		env, status, err := st.request(http.MethodPost, "/api/users",
			map[string]string{"name": "Copy Cat", "email": email}, "application/json")
		if err != nil {
			return err
		}
		return expect(status == http.StatusBadRequest && env.Message == "Email already exists",
			"expected 400 duplicate, got %d (%s)", status, env.Message)
	})

	st.step("empty payload rejected", func() error {
		env, status, err := st.request(http.MethodPost, "/api/users",
			map[string]string{"name": "", "email": "bad"}, "application/json")
		if err != nil {
			return err
		}
		return expect(status == http.StatusBadRequest && env.Message == "Name and email are required",
			"expected 400 required, got %d (%s)", status, env.Message)
	})

	st.step("non-JSON content type rejected", func() error {
		env, status, err := st.request(http.MethodPost, "/api/users",
			map[string]string{"name": "X", "email": "x@example.com"}, "text/plain")
		if err != nil {
			return err
		}
		return expect(status == http.StatusBadRequest && env.Message == "Content-Type must be application/json",
			"expected 400 content type, got %d (%s)", status, env.Message)
	})

	st.step("delete user", func() error {
		env, status, err := st.request(http.MethodDelete, fmt.Sprintf("/api/users/%d", created.ID), nil, "")
		if err != nil {
			return err
		}
		return expect(status == http.StatusOK && env.Message == "User deleted successfully",
			"expected 200 deleted, got %d (%s)", status, env.Message)
	})

	st.step("fetch after delete is 404", func() error {
		env, status, err := st.request(http.MethodGet, fmt.Sprintf("/api/users/%d", created.ID), nil, "")
		if err != nil {
			return err
		}
		return expect(status == http.StatusNotFound && env.Message == "User not found",
			"expected 404, got %d (%s)", status, env.Message)
	})

	st.step("unknown endpoint is 404", func() error {
		env, status, err := st.request(http.MethodGet, "/api/unknown", nil, "")
		if err != nil {
			return err
		}
		return expect(status == http.StatusNotFound && env.Message == "Endpoint not found",
			"expected 404 endpoint, got %d (%s)", status, env.Message)
	})
}

func (st *smokeTester) step(name string, fn func() error) {
	if err := fn(); err != nil {
		fmt.Printf("FAIL  %s: %v\n", name, err)
		st.failed++
		return
	}
	fmt.Printf("ok    %s\n", name)
	st.passed++
}

func (st *smokeTester) request(method, path string, body any, contentType string) (*envelope, int, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, 0, err
		}
	}

	req, err := http.NewRequest(method, st.baseURL+path, &buf)
	if err != nil {
		return nil, 0, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := st.client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, resp.StatusCode, fmt.Errorf("decode envelope: %w", err)
	}
	return &env, resp.StatusCode, nil
}

func expect(ok bool, format string, args ...any) error {
	if ok {
		return nil
	}
	return fmt.Errorf(format, args...)
}
