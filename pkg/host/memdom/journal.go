package memdom

import "fmt"

// OpKind names a host primitive.
type OpKind string

const (
	OpCreateElement OpKind = "createElement"
	OpCreateText    OpKind = "createText"
	OpSetAttribute  OpKind = "setAttribute"
	OpBindEvent     OpKind = "bindEvent"
	OpSetText       OpKind = "setText"
	OpInsert        OpKind = "insertBefore"
	OpAppend        OpKind = "appendChild"
	OpRemove        OpKind = "removeChild"
)

// Op is one journaled host operation. Nodes are referred to by ID.
type Op struct {
	Kind   OpKind `json:"kind"`
	Target int    `json:"target"`
	Parent int    `json:"parent,omitempty"`
	Ref    int    `json:"ref,omitempty"`
	Name   string `json:"name,omitempty"`
	Value  string `json:"value,omitempty"`
}

// String renders the op in a compact, readable form.
func (o Op) String() string {
	switch o.Kind {
	case OpCreateElement:
		return fmt.Sprintf("create #%d <%s>", o.Target, o.Name)
	case OpCreateText:
		return fmt.Sprintf("create #%d %q", o.Target, o.Value)
	case OpSetAttribute:
		return fmt.Sprintf("attr #%d %s=%q", o.Target, o.Name, o.Value)
	case OpBindEvent:
		return fmt.Sprintf("event #%d %s", o.Target, o.Name)
	case OpSetText:
		return fmt.Sprintf("text #%d %q", o.Target, o.Value)
	case OpInsert:
		if o.Ref == 0 {
			return fmt.Sprintf("insert #%d into #%d", o.Target, o.Parent)
		}
		return fmt.Sprintf("insert #%d into #%d before #%d", o.Target, o.Parent, o.Ref)
	case OpAppend:
		return fmt.Sprintf("append #%d to #%d", o.Target, o.Parent)
	case OpRemove:
		return fmt.Sprintf("remove #%d from #%d", o.Target, o.Parent)
	default:
		return fmt.Sprintf("%s #%d", o.Kind, o.Target)
	}
}

// Journal records the operations a Document performed, in order.
type Journal struct {
	ops []Op
}

func (j *Journal) record(op Op) {
	j.ops = append(j.ops, op)
}

// Ops returns a copy of the recorded operations.
func (j *Journal) Ops() []Op {
	out := make([]Op, len(j.ops))
	copy(out, j.ops)
	return out
}

// Len returns the number of recorded operations.
func (j *Journal) Len() int { return len(j.ops) }

// Count returns how many operations of the given kinds were recorded.
// With no kinds it counts everything.
func (j *Journal) Count(kinds ...OpKind) int {
	if len(kinds) == 0 {
		return len(j.ops)
	}
	n := 0
	for _, op := range j.ops {
		for _, k := range kinds {
			if op.Kind == k {
				n++
				break
			}
		}
	}
	return n
}

// Strings returns every op in its String form.
func (j *Journal) Strings() []string {
	out := make([]string, len(j.ops))
	for i, op := range j.ops {
		out[i] = op.String()
	}
	return out
}

// Reset clears the journal.
func (j *Journal) Reset() {
	j.ops = j.ops[:0]
}
