// Package store persists mind maps. Adapter is implemented by a local Badger
// store and by a client of the REST API.
package store

import (
	"bytes"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"neonmap/internal/graph"
)

const (
	DefaultTitle = "New map"
	RenameTitle  = "Untitled"
	MaxTitleLen  = 255
)

// ID identifies a map. The REST API may send it as a JSON number or string.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return errors.Wrap(err, "map id")
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string {
	return string(id)
}

// Record is a persisted map.
type Record struct {
	ID              ID              `json:"id"`
	Title           string          `json:"title"`
	Owner           int64           `json:"owner"`
	Workspace       *int64          `json:"workspace"`
	Project         *int64          `json:"project"`
	RelatedWorkItem *int64          `json:"related_workitem"`
	Nodes           json.RawMessage `json:"nodes"`
	Edges           json.RawMessage `json:"edges"`
	IsPersonal      bool            `json:"is_personal"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// Map hydrates the record into an editable map, resolving defaults.
func (r *Record) Map() (*graph.Map, error) {
	m, err := graph.Hydrate(r.Title, r.Nodes, r.Edges)
	if err != nil {
		return nil, errors.Wrapf(err, "decode map %s", r.ID)
	}
	return m, nil
}

// OwnerContext ties a new map to a workspace, project or work item.
type OwnerContext struct {
	Workspace       *int64
	Project         *int64
	RelatedWorkItem *int64
}

type NewRecord struct {
	Title           string          `json:"title" validate:"required,max=255"`
	Nodes           json.RawMessage `json:"nodes"`
	Edges           json.RawMessage `json:"edges"`
	Workspace       *int64          `json:"workspace,omitempty"`
	Project         *int64          `json:"project,omitempty"`
	RelatedWorkItem *int64          `json:"related_workitem,omitempty"`
	IsPersonal      *bool           `json:"is_personal,omitempty"`
}

// NewRecordFromMap prepares a create request for m. A map tied to neither a
// project nor a work item is personal.
func NewRecordFromMap(m *graph.Map, owner OwnerContext) (NewRecord, error) {
	nodes, edges, err := m.Serialize()
	if err != nil {
		return NewRecord{}, errors.Wrap(err, "encode map")
	}
	personal := owner.Project == nil && owner.RelatedWorkItem == nil
	return NewRecord{
		Title:           m.Title,
		Nodes:           nodes,
		Edges:           edges,
		Workspace:       owner.Workspace,
		Project:         owner.Project,
		RelatedWorkItem: owner.RelatedWorkItem,
		IsPersonal:      &personal,
	}, nil
}

// Normalize fills the blank title and empty graph lists.
func (n *NewRecord) Normalize() {
	n.Title = strings.TrimSpace(n.Title)
	if n.Title == "" {
		n.Title = DefaultTitle
	}
	n.Nodes = emptyList(n.Nodes)
	n.Edges = emptyList(n.Edges)
	if n.IsPersonal == nil {
		personal := n.Project == nil && n.RelatedWorkItem == nil
		n.IsPersonal = &personal
	}
}

// Patch is a partial update. Nil fields are left as they are.
type Patch struct {
	Title *string         `json:"title,omitempty" validate:"omitempty,max=255"`
	Nodes json.RawMessage `json:"nodes,omitempty"`
	Edges json.RawMessage `json:"edges,omitempty"`
}

func TitlePatch(title string) Patch {
	return Patch{Title: &title}
}

// GraphPatch carries the nodes and edges of m, as sent by an explicit save.
func GraphPatch(m *graph.Map) (Patch, error) {
	nodes, edges, err := m.Serialize()
	if err != nil {
		return Patch{}, errors.Wrap(err, "encode map")
	}
	return Patch{Nodes: nodes, Edges: edges}, nil
}

// Normalize replaces a blank rename with the placeholder title.
func (p *Patch) Normalize() {
	if p.Title != nil {
		t := strings.TrimSpace(*p.Title)
		if t == "" {
			t = RenameTitle
		}
		p.Title = &t
	}
}

func (p Patch) Empty() bool {
	return p.Title == nil && p.Nodes == nil && p.Edges == nil
}

// Apply writes the patch onto r.
func (p Patch) Apply(r *Record) {
	if p.Title != nil {
		r.Title = *p.Title
	}
	if p.Nodes != nil {
		r.Nodes = p.Nodes
	}
	if p.Edges != nil {
		r.Edges = p.Edges
	}
}

func emptyList(raw json.RawMessage) json.RawMessage {
	if len(bytes.TrimSpace(raw)) == 0 || string(raw) == "null" {
		return json.RawMessage("[]")
	}
	return raw
}

// Filter narrows a listing. Nil fields match everything.
type Filter struct {
	Project         *int64
	Workspace       *int64
	RelatedWorkItem *int64
	Personal        *bool
}

func (f Filter) Match(r *Record) bool {
	return eq(f.Project, r.Project) &&
		eq(f.Workspace, r.Workspace) &&
		eq(f.RelatedWorkItem, r.RelatedWorkItem) &&
		(f.Personal == nil || *f.Personal == r.IsPersonal)
}

func eq(want, got *int64) bool {
	if want == nil {
		return true
	}
	return got != nil && *got == *want
}

// Query encodes the filter as query parameters.
func (f Filter) Query() url.Values {
	v := url.Values{}
	if f.Project != nil {
		v.Set("project", strconv.FormatInt(*f.Project, 10))
	}
	if f.Workspace != nil {
		v.Set("workspace", strconv.FormatInt(*f.Workspace, 10))
	}
	if f.RelatedWorkItem != nil {
		v.Set("related_workitem", strconv.FormatInt(*f.RelatedWorkItem, 10))
	}
	if f.Personal != nil {
		v.Set("is_personal", strconv.FormatBool(*f.Personal))
	}
	return v
}

// ParseFilter reads a filter from query parameters.
func ParseFilter(q url.Values) (Filter, error) {
	var f Filter
	for key, dst := range map[string]**int64{
		"project":          &f.Project,
		"workspace":        &f.Workspace,
		"related_workitem": &f.RelatedWorkItem,
	} {
		s := q.Get(key)
		if s == "" {
			continue
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return Filter{}, errors.Errorf("%s must be an integer", key)
		}
		*dst = &n
	}
	if s := q.Get("is_personal"); s != "" {
		b, err := strconv.ParseBool(s)
		if err != nil {
			return Filter{}, errors.New("is_personal must be a boolean")
		}
		f.Personal = &b
	}
	return f, nil
}

// Summary is one row of a listing.
type Summary struct {
	ID         ID
	Title      string
	Owner      int64
	Workspace  *int64
	Project    *int64
	IsPersonal bool
	Nodes      int
	Edges      int
	UpdatedAt  time.Time
}

func Summarize(r *Record) Summary {
	return Summary{
		ID:         r.ID,
		Title:      r.Title,
		Owner:      r.Owner,
		Workspace:  r.Workspace,
		Project:    r.Project,
		IsPersonal: r.IsPersonal,
		Nodes:      count(r.Nodes),
		Edges:      count(r.Edges),
		UpdatedAt:  r.UpdatedAt,
	}
}

func count(raw json.RawMessage) int {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return 0
	}
	return len(items)
}
