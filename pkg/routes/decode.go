package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	errs "github.com/matzehuels/apiscope/pkg/errors"
)

// Stdin is the path that makes ReadFile read standard input.
const Stdin = "-"

// jsonRoute is a route as exported by the monitoring backend.
type jsonRoute struct {
	Method         string   `json:"method"`
	Path           *string  `json:"path"`
	Status         string   `json:"status"`
	ResponseTime   *float64 `json:"responseTime"`
	ResponseTimeMs *float64 `json:"responseTimeMs"`
	LastChecked    *string  `json:"lastChecked"`
}

type jsonFile struct {
	Routes *[]jsonRoute `json:"routes"`
}

type tomlRoute struct {
	Method       string     `toml:"method"`
	Path         *string    `toml:"path"`
	Status       string     `toml:"status"`
	ResponseTime *float64   `toml:"response_time"`
	LastChecked  *time.Time `toml:"last_checked"`
}

type tomlFile struct {
	Routes []tomlRoute `toml:"routes"`
}

// ReadJSON decodes a route list from r. See [ParseJSON].
func ReadJSON(r io.Reader) ([]Route, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "read routes")
	}
	return ParseJSON(data)
}

// ParseJSON decodes either a JSON array of routes or an object holding one
// under "routes". The response time may be given as responseTime or
// responseTimeMs, and lastChecked as an RFC 3339 timestamp.
func ParseJSON(data []byte) ([]Route, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, errs.New(errs.ErrCodeInvalidFormat, "empty route list")
	}

	var raw []jsonRoute
	if data[0] == '{' {
		var f jsonFile
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode routes")
		}
		if f.Routes == nil {
			return nil, errs.New(errs.ErrCodeMissingField, "no \"routes\" array")
		}
		raw = *f.Routes
	} else if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode routes")
	}

	out := make([]Route, 0, len(raw))
	for i, jr := range raw {
		ms := jr.ResponseTime
		if ms == nil {
			ms = jr.ResponseTimeMs
		}
		var checked *time.Time
		if jr.LastChecked != nil && *jr.LastChecked != "" {
			t, err := time.Parse(time.RFC3339Nano, *jr.LastChecked)
			if err != nil {
				return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "route %d: lastChecked", i)
			}
			checked = &t
		}
		r, err := build(i, jr.Method, jr.Path, jr.Status, ms, checked)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// ReadTOML decodes a route list from [[routes]] tables:
//
//	[[routes]]
//	method = "GET"
//	path = "/users"
//	status = "success"
//	response_time = 120
//	last_checked = 2025-01-02T03:04:05Z
func ReadTOML(r io.Reader) ([]Route, error) {
	var f tomlFile
	if _, err := toml.NewDecoder(r).Decode(&f); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode routes")
	}
	out := make([]Route, 0, len(f.Routes))
	for i, tr := range f.Routes {
		r, err := build(i, tr.Method, tr.Path, tr.Status, tr.ResponseTime, tr.LastChecked)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// ReadFile reads a route list from path, choosing TOML for a .toml
// extension and JSON otherwise. The path "-" reads JSON from standard input.
func ReadFile(path string) ([]Route, error) {
	if path == Stdin {
		return ReadJSON(os.Stdin)
	}
	if err := errs.ValidateFilePath(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "routes file %s", path)
		}
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "open %s", path)
	}
	return Decode(path, data)
}

// Decode decodes a route list read from source: TOML when source has a .toml
// extension, JSON otherwise.
func Decode(source string, data []byte) ([]Route, error) {
	if strings.EqualFold(filepath.Ext(source), ".toml") {
		return ReadTOML(bytes.NewReader(data))
	}
	return ParseJSON(data)
}

// MaxResponseMs is the largest response time accepted, the largest integer
// a float64 holds exactly.
const MaxResponseMs = 1 << 53

// ParseMillis rounds a response time to whole milliseconds. Negative,
// non-finite and out-of-range values are rejected with INVALID_INPUT.
func ParseMillis(ms float64) (int64, error) {
	if ms < 0 || ms > MaxResponseMs || math.IsNaN(ms) || math.IsInf(ms, 0) {
		return 0, errs.New(errs.ErrCodeInvalidInput, "invalid response time %v", ms)
	}
	return int64(math.Round(ms)), nil
}

func build(i int, method string, path *string, status string, ms *float64, checked *time.Time) (Route, error) {
	if path == nil {
		return Route{}, errs.New(errs.ErrCodeMissingField, "route %d: no path", i)
	}
	r := Route{
		Method:        ParseMethod(method),
		Path:          *path,
		Status:        ParseStatus(status),
		LastCheckedAt: checked,
	}
	if ms != nil {
		n, err := ParseMillis(*ms)
		if err != nil {
			return Route{}, errs.Wrap(errs.ErrCodeInvalidInput, err, "route %d", i)
		}
		r.ResponseTimeMs = &n
	}
	return r, nil
}
