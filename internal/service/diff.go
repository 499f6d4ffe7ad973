// Package service wires the xdiff core to byte-in/byte-out operations the
// HTTP handlers and CLI can call without touching dom/etreedom directly.
package service

import (
	"fmt"

	"github.com/vortex/xdiff"
	"github.com/vortex/xdiff/dom/etreedom"
	"github.com/vortex/xdiff/editscript"
)

// DiffResult is the JSON-serializable outcome of a Diff call.
type DiffResult struct {
	Actions []ActionView `json:"actions"`
}

// ActionView is a JSON-friendly rendering of one editscript.Action.
type ActionView struct {
	Kind   string `json:"kind"`
	Detail string `json:"detail"`
}

// DiffService parses two XML documents, diffs them, and can render the
// result either as a structured action list or as an annotated XML
// document with diff:* marker attributes.
type DiffService interface {
	// Diff parses left and right as XML and returns the edit script
	// transforming left into right.
	Diff(left, right []byte) (*DiffResult, error)

	// Render parses left and right, diffs them, and returns left annotated
	// with diff:* marker attributes as serialized XML.
	Render(left, right []byte) ([]byte, error)
}

type diffService struct {
	cfg xdiff.Config
}

// NewDiffService creates a DiffService using cfg for matcher tuning and
// formatter tag vocabulary.
func NewDiffService(cfg xdiff.Config) DiffService {
	return &diffService{cfg: cfg}
}

func (s *diffService) parse(left, right []byte) (*etreedom.Elem, *etreedom.Elem, error) {
	l, err := etreedom.ParseBytes(left)
	if err != nil {
		return nil, nil, fmt.Errorf("service: parse left: %w", err)
	}
	r, err := etreedom.ParseBytes(right)
	if err != nil {
		return nil, nil, fmt.Errorf("service: parse right: %w", err)
	}
	return l, r, nil
}

func (s *diffService) Diff(left, right []byte) (*DiffResult, error) {
	l, r, err := s.parse(left, right)
	if err != nil {
		return nil, err
	}

	differ, err := xdiff.New(s.cfg)
	if err != nil {
		return nil, fmt.Errorf("service: configure differ: %w", err)
	}
	actions, err := differ.Diff(l, r)
	if err != nil {
		return nil, fmt.Errorf("service: diff: %w", err)
	}

	views := make([]ActionView, len(actions))
	for i, a := range actions {
		views[i] = ActionView{Kind: actionKind(a), Detail: a.String()}
	}
	return &DiffResult{Actions: views}, nil
}

func (s *diffService) Render(left, right []byte) ([]byte, error) {
	l, r, err := s.parse(left, right)
	if err != nil {
		return nil, err
	}

	differ, err := xdiff.New(s.cfg)
	if err != nil {
		return nil, fmt.Errorf("service: configure differ: %w", err)
	}
	actions, err := differ.Diff(l, r)
	if err != nil {
		return nil, fmt.Errorf("service: diff: %w", err)
	}
	annotated, err := differ.Format(actions)
	if err != nil {
		return nil, fmt.Errorf("service: format: %w", err)
	}

	out, err := etreedom.Serialize(annotated.(*etreedom.Elem))
	if err != nil {
		return nil, fmt.Errorf("service: serialize: %w", err)
	}
	return out, nil
}

func actionKind(a editscript.Action) string {
	switch a.(type) {
	case editscript.InsertNode:
		return "insert-node"
	case editscript.DeleteNode:
		return "delete-node"
	case editscript.MoveNode:
		return "move-node"
	case editscript.RenameNode:
		return "rename-node"
	case editscript.UpdateTextIn:
		return "update-text-in"
	case editscript.UpdateTextAfter:
		return "update-text-after"
	case editscript.InsertAttrib:
		return "insert-attrib"
	case editscript.DeleteAttrib:
		return "delete-attrib"
	case editscript.UpdateAttrib:
		return "update-attrib"
	default:
		return "unknown"
	}
}
