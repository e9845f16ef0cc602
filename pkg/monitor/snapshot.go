package monitor

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/tidwall/gjson"

	errs "github.com/matzehuels/apiscope/pkg/errors"
	"github.com/matzehuels/apiscope/pkg/routes"
	"github.com/matzehuels/apiscope/pkg/value"
)

// Stdin is the path that makes ReadFile read standard input.
const Stdin = "-"

// Kind distinguishes displayable entities.
type Kind string

const (
	KindAPI     Kind = "api"
	KindProject Kind = "project"
)

// Entity identifies what a viewer displays.
type Entity struct {
	Kind Kind
	ID   string
}

// String returns "kind:id".
func (e Entity) String() string { return string(e.Kind) + ":" + e.ID }

// IsZero reports whether e names nothing.
func (e Entity) IsZero() bool { return e == Entity{} }

// API is a monitored endpoint and the last payload it returned.
type API struct {
	ID             string
	URL            string
	LastStatus     string // raw status; see routes.ParseStatus for the known values
	LastCheckedAt  *time.Time
	ResponseTimeMs *int64
	ErrorMessage   string

	// Response is the last payload. Null when the API was never checked.
	Response value.Value
}

// Entity returns the identity of a.
func (a API) Entity() Entity { return Entity{Kind: KindAPI, ID: a.ID} }

// Metrics are the request counters the backend keeps per project.
type Metrics struct {
	TotalRequests       int
	SuccessfulRequests  int
	FailedRequests      int
	AverageResponseTime float64
}

// Project is a monitored application and its discovered routes.
type Project struct {
	ID             string
	Name           string
	APIURL         string
	APIStatus      string
	LastCheckedAt  *time.Time
	ResponseTimeMs *int64
	Routes         []routes.Route
	Metrics        *Metrics

	// Record is the full project record as received.
	Record value.Value
}

// Entity returns the identity of p.
func (p Project) Entity() Entity { return Entity{Kind: KindProject, ID: p.ID} }

// Snapshot is the exported state of the monitoring backend.
type Snapshot struct {
	APIs     []API
	Projects []Project
}

// Entities returns every API followed by every project, in file order.
func (s *Snapshot) Entities() []Entity {
	out := make([]Entity, 0, len(s.APIs)+len(s.Projects))
	for _, a := range s.APIs {
		out = append(out, a.Entity())
	}
	for _, p := range s.Projects {
		out = append(out, p.Entity())
	}
	return out
}

// API returns the API with the given ID.
func (s *Snapshot) API(id string) (API, error) {
	for _, a := range s.APIs {
		if a.ID == id {
			return a, nil
		}
	}
	return API{}, errs.New(errs.ErrCodeNotFound, "no API with id %q", id)
}

// Project returns the project with the given ID.
func (s *Snapshot) Project(id string) (Project, error) {
	for _, p := range s.Projects {
		if p.ID == id {
			return p, nil
		}
	}
	return Project{}, errs.New(errs.ErrCodeNotFound, "no project with id %q", id)
}

// Payload returns the value displayed for e: an API's last response or a
// project's full record.
func (s *Snapshot) Payload(e Entity) (value.Value, error) {
	switch e.Kind {
	case KindAPI:
		a, err := s.API(e.ID)
		return a.Response, err
	case KindProject:
		p, err := s.Project(e.ID)
		return p.Record, err
	}
	return value.Null(), errs.New(errs.ErrCodeNotFound, "unknown entity %s", e)
}

// Contains reports whether e is part of the snapshot.
func (s *Snapshot) Contains(e Entity) bool {
	_, err := s.Payload(e)
	return err == nil
}

// =============================================================================
// Decoding
// =============================================================================

type apiRecord struct {
	ID           string          `json:"_id"`
	URL          string          `json:"url"`
	LastStatus   string          `json:"lastStatus"`
	LastChecked  *string         `json:"lastChecked"`
	ResponseTime *float64        `json:"responseTime"`
	ErrorMessage string          `json:"errorMessage"`
	LastResponse json.RawMessage `json:"lastResponse"`
}

type projectRecord struct {
	ID           string          `json:"_id"`
	Name         string          `json:"name"`
	APIURL       string          `json:"apiUrl"`
	APIStatus    string          `json:"apiStatus"`
	LastChecked  *string         `json:"lastChecked"`
	ResponseTime *float64        `json:"responseTime"`
	Routes       json.RawMessage `json:"routes"`
	APIMetrics   *struct {
		TotalRequests       int     `json:"totalRequests"`
		SuccessfulRequests  int     `json:"successfulRequests"`
		FailedRequests      int     `json:"failedRequests"`
		AverageResponseTime float64 `json:"averageResponseTime"`
	} `json:"apiMetrics"`
}

type snapshotRecord struct {
	APIs     []json.RawMessage `json:"apis"`
	Projects []json.RawMessage `json:"projects"`
}

// IsSnapshot reports whether data has the shape of a snapshot: a JSON object
// with an "apis" or "projects" member, where every such member is an array of
// objects carrying a string "_id".
func IsSnapshot(data []byte) bool {
	r := gjson.ParseBytes(data)
	if !r.IsObject() {
		return false
	}
	found := false
	for _, key := range []string{"apis", "projects"} {
		m := r.Get(key)
		if !m.Exists() {
			continue
		}
		if !m.IsArray() {
			return false
		}
		for _, rec := range m.Array() {
			if !rec.IsObject() || rec.Get("_id").Type != gjson.String {
				return false
			}
		}
		found = true
	}
	return found
}

// Decode reads a snapshot from data, or wraps data as a bare payload when it
// is not one. source names the input for bare payload identity.
func Decode(source string, data []byte) (*Snapshot, error) {
	if !gjson.ValidBytes(data) {
		return nil, errs.New(errs.ErrCodeInvalidFormat, "%s: invalid JSON", displayName(source))
	}
	if !IsSnapshot(data) {
		return Wrap(source, data)
	}
	snap, err := decodeSnapshot(data)
	if err != nil {
		// Shown as a payload, so any JSON document stays viewable.
		return Wrap(source, data)
	}
	return snap, nil
}

// decodeSnapshot decodes data as a snapshot and reports every malformed
// record.
func decodeSnapshot(data []byte) (*Snapshot, error) {
	var rec snapshotRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode snapshot")
	}

	snap := &Snapshot{
		APIs:     make([]API, 0, len(rec.APIs)),
		Projects: make([]Project, 0, len(rec.Projects)),
	}
	for i, raw := range rec.APIs {
		a, err := decodeAPI(raw)
		if err != nil {
			return nil, errs.Wrap(errs.GetCode(err), err, "api %d", i)
		}
		snap.APIs = append(snap.APIs, a)
	}
	for i, raw := range rec.Projects {
		p, err := decodeProject(raw)
		if err != nil {
			return nil, errs.Wrap(errs.GetCode(err), err, "project %d", i)
		}
		snap.Projects = append(snap.Projects, p)
	}
	return snap, nil
}

// Read decodes a snapshot or bare payload from r.
func Read(source string, r io.Reader) (*Snapshot, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "read %s", displayName(source))
	}
	return Decode(source, data)
}

// ReadFile decodes the file at path. The path "-" reads standard input.
func ReadFile(path string) (*Snapshot, error) {
	if path == Stdin {
		return Read(Stdin, os.Stdin)
	}
	if err := errs.ValidateFilePath(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "snapshot %s", path)
		}
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "read %s", path)
	}
	return Decode(path, data)
}

// Wrap makes a one-API snapshot holding data as its payload. The API ID is the
// base name of source, or a content hash of data when source is empty or "-".
func Wrap(source string, data []byte) (*Snapshot, error) {
	v, err := value.Parse(data)
	if err != nil {
		return nil, err
	}
	id := filepath.Base(source)
	if source == "" || source == Stdin {
		id = ContentID(data)
	}
	return &Snapshot{
		APIs:     []API{{ID: id, URL: source, LastStatus: string(routes.StatusSuccess), Response: v}},
		Projects: []Project{},
	}, nil
}

// ContentID returns a short stable identifier for data.
func ContentID(data []byte) string {
	sum := sha256.Sum256(data)
	return "sha256:" + hex.EncodeToString(sum[:6])
}

func decodeAPI(raw json.RawMessage) (API, error) {
	var rec apiRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return API{}, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode")
	}
	if rec.ID == "" {
		return API{}, errs.New(errs.ErrCodeMissingField, "no _id")
	}
	a := API{
		ID:           rec.ID,
		URL:          rec.URL,
		LastStatus:   rec.LastStatus,
		ErrorMessage: rec.ErrorMessage,
	}
	var err error
	if a.LastCheckedAt, err = parseTime(rec.LastChecked); err != nil {
		return API{}, err
	}
	if a.ResponseTimeMs, err = parseMillis(rec.ResponseTime); err != nil {
		return API{}, err
	}
	if len(rec.LastResponse) > 0 {
		if a.Response, err = value.Parse(rec.LastResponse); err != nil {
			return API{}, err
		}
	}
	return a, nil
}

func decodeProject(raw json.RawMessage) (Project, error) {
	var rec projectRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return Project{}, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode")
	}
	if rec.ID == "" {
		return Project{}, errs.New(errs.ErrCodeMissingField, "no _id")
	}
	p := Project{
		ID:        rec.ID,
		Name:      rec.Name,
		APIURL:    rec.APIURL,
		APIStatus: rec.APIStatus,
		Routes:    []routes.Route{},
	}
	var err error
	if p.LastCheckedAt, err = parseTime(rec.LastChecked); err != nil {
		return Project{}, err
	}
	if p.ResponseTimeMs, err = parseMillis(rec.ResponseTime); err != nil {
		return Project{}, err
	}
	if len(rec.Routes) > 0 && string(rec.Routes) != "null" {
		if p.Routes, err = routes.ParseJSON(rec.Routes); err != nil {
			return Project{}, err
		}
	}
	if m := rec.APIMetrics; m != nil {
		p.Metrics = &Metrics{
			TotalRequests:       m.TotalRequests,
			SuccessfulRequests:  m.SuccessfulRequests,
			FailedRequests:      m.FailedRequests,
			AverageResponseTime: m.AverageResponseTime,
		}
	}
	if p.Record, err = value.Parse(raw); err != nil {
		return Project{}, err
	}
	return p, nil
}

func parseTime(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339Nano, *s)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "lastChecked")
	}
	return &t, nil
}

func parseMillis(f *float64) (*int64, error) {
	if f == nil {
		return nil, nil
	}
	n, err := routes.ParseMillis(*f)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func displayName(source string) string {
	if source == "" || source == Stdin {
		return "stdin"
	}
	return source
}
