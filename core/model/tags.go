package model

import "fmt"

// TaskTag identifies the last task a shuttle executed before the window.
type TaskTag int

const (
	TaskOutbound TaskTag = iota
	TaskReturn
	TaskCharge
)

// ParseTaskTag converts a prev_task literal. Unknown literals are rejected.
func ParseTaskTag(s string) (TaskTag, error) {
	switch s {
	case "OUT":
		return TaskOutbound, nil
	case "RET":
		return TaskReturn, nil
	case "CRG":
		return TaskCharge, nil
	default:
		return 0, fmt.Errorf("unknown task tag %q", s)
	}
}

// String returns the literal used in subproblem documents.
func (t TaskTag) String() string {
	switch t {
	case TaskOutbound:
		return "OUT"
	case TaskReturn:
		return "RET"
	case TaskCharge:
		return "CRG"
	default:
		return "unknown"
	}
}

func (t TaskTag) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *TaskTag) UnmarshalText(b []byte) error {
	v, err := ParseTaskTag(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Direction is the travel direction of a passenger request.
type Direction int

const (
	DirOutbound Direction = iota
	DirReturn
)

// ParseDirection converts a dir literal. Unknown literals are rejected; callers
// decide whether to fall back to DirOutbound.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "OUT":
		return DirOutbound, nil
	case "RET":
		return DirReturn, nil
	default:
		return DirOutbound, fmt.Errorf("unknown direction %q", s)
	}
}

func (d Direction) String() string {
	switch d {
	case DirOutbound:
		return "OUT"
	case DirReturn:
		return "RET"
	default:
		return "unknown"
	}
}

func (d Direction) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

func (d *Direction) UnmarshalText(b []byte) error {
	v, err := ParseDirection(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}
