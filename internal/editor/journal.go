package editor

import (
	"slices"

	"neonmap/internal/graph"
)

type ChangeKind string

const (
	ChangeMove       ChangeKind = "move"
	ChangeResize     ChangeKind = "resize"
	ChangeCollapse   ChangeKind = "collapse"
	ChangeConnect    ChangeKind = "connect"
	ChangePaste      ChangeKind = "paste"
	ChangeAddNode    ChangeKind = "add_node"
	ChangeDelete     ChangeKind = "delete"
	ChangeUpdateNode ChangeKind = "update_node"
	ChangeUpdateEdge ChangeKind = "update_edge"
	ChangeRename     ChangeKind = "rename"
)

// Change is one applied mutation. Data describes the forward change and
// Inverse what restores the previous state.
type Change struct {
	Kind    ChangeKind
	IDs     []string
	Data    interface{}
	Inverse interface{}

	seq uint64
}

type MoveData struct {
	IDs   []string
	Delta graph.Point
}

type NodeState struct {
	Node graph.Node
}

type EdgeState struct {
	Edge graph.Edge
}

// Subgraph holds whole entities added to or removed from the map.
type Subgraph struct {
	Nodes []graph.Node
	Edges []graph.Edge
}

type TitleData struct {
	Title string
}

// Journal records the changes applied since the last save. Every change
// gets a revision number that later changes never reuse.
type Journal struct {
	changes []Change
	rev     uint64
	// Changes up to this revision no longer absorb later moves.
	sealed uint64
}

// Record appends c. A move of the same nodes as the newest unsealed move
// is folded into it.
func (j *Journal) Record(c Change) {
	if n := len(j.changes); n > 0 && c.Kind == ChangeMove {
		last := &j.changes[n-1]
		if last.seq > j.sealed && last.Kind == ChangeMove && slices.Equal(last.IDs, c.IDs) {
			last.Data = addMove(last.Data, c.Data)
			last.Inverse = addMove(last.Inverse, c.Inverse)
			return
		}
	}
	j.rev++
	c.seq = j.rev
	j.changes = append(j.changes, c)
}

func addMove(a, b interface{}) interface{} {
	x, _ := a.(MoveData)
	y, _ := b.(MoveData)
	x.Delta = x.Delta.Add(y.Delta.X, y.Delta.Y)
	return x
}

func (j *Journal) Len() int {
	return len(j.changes)
}

// Revision is the revision of the newest recorded change.
func (j *Journal) Revision() uint64 {
	return j.rev
}

// Seal returns the current revision and keeps later moves out of the
// changes recorded so far, so a snapshot taken now matches them exactly.
func (j *Journal) Seal() uint64 {
	j.sealed = j.rev
	return j.rev
}

// Changes returns the recorded changes, oldest first.
func (j *Journal) Changes() []Change {
	return append([]Change(nil), j.changes...)
}

func (j *Journal) Last() (Change, bool) {
	if len(j.changes) == 0 {
		return Change{}, false
	}
	return j.changes[len(j.changes)-1], true
}

func (j *Journal) Clear() {
	j.changes = j.changes[:0]
}

// Drop forgets every change up to revision rev. A save that sealed the
// journal at rev leaves anything recorded afterwards pending.
func (j *Journal) Drop(rev uint64) {
	i := 0
	for i < len(j.changes) && j.changes[i].seq <= rev {
		i++
	}
	j.changes = append(j.changes[:0], j.changes[i:]...)
}

// Forget removes the single change recorded at revision rev.
func (j *Journal) Forget(rev uint64) {
	j.changes = slices.DeleteFunc(j.changes, func(c Change) bool { return c.seq == rev })
}
