// Package replay runs YAML input scripts against a scene through a viewport
// controller and checks the selection after each step.
package replay

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dshills/scenepick/internal/geom"
	"github.com/dshills/scenepick/internal/input/key"
)

// Errors returned while loading scripts.
var (
	// ErrInvalidStep indicates a step with zero or several actions, or bad
	// coordinates.
	ErrInvalidStep = errors.New("invalid step")
)

// Script is a sequence of input steps.
//
//	scene: group.yaml
//	steps:
//	  - click: [15, 15]
//	    expect: [Root]
//	  - drag: {from: [0, 0], to: [45, 45]}
//	    mods: shift
//	  - menu: {at: [15, 15], hover: 1, choose: 1}
//	  - select: [Lamp]
//	  - press: [0, 0]
//	  - move: [30, 30]
//	  - blur: true
type Script struct {
	// Scene is a scene file path relative to the script.
	Scene string `yaml:"scene,omitempty"`
	Steps []Step `yaml:"steps"`

	// dir is the directory the script was loaded from.
	dir string
}

// Step is one user or external action. Exactly one action field must be
// set. Press, Move and Release split a gesture so Frame and Blur can happen
// in the middle of it.
type Step struct {
	Click   []int     `yaml:"click,omitempty"`
	Drag    *DragStep `yaml:"drag,omitempty"`
	Press   []int     `yaml:"press,omitempty"`
	Move    []int     `yaml:"move,omitempty"`
	Release []int     `yaml:"release,omitempty"`
	Frame   bool      `yaml:"frame,omitempty"`
	Menu    *MenuStep `yaml:"menu,omitempty"`
	Select  []string  `yaml:"select,omitempty"`
	Clear   bool      `yaml:"clear,omitempty"`
	Blur    bool      `yaml:"blur,omitempty"`

	// Mods lists held modifiers, e.g. "shift" or "action+shift". "action"
	// means the configured action modifier.
	Mods string `yaml:"mods,omitempty"`

	// Expect is the selection by name after the step, in selection order.
	// Nil skips the check; an empty list expects nothing selected.
	Expect *[]string `yaml:"expect,omitempty"`
}

// DragStep is a rectangle gesture.
type DragStep struct {
	From []int `yaml:"from"`
	To   []int `yaml:"to"`
}

// MenuStep opens the piercing menu, optionally hovers an entry and either
// commits one or closes without choosing.
type MenuStep struct {
	At     []int `yaml:"at"`
	Hover  *int  `yaml:"hover,omitempty"`
	Choose *int  `yaml:"choose,omitempty"`
}

// Kind names the action of a step.
func (s Step) Kind() string {
	switch {
	case s.Click != nil:
		return "click"
	case s.Drag != nil:
		return "drag"
	case s.Press != nil:
		return "press"
	case s.Move != nil:
		return "move"
	case s.Release != nil:
		return "release"
	case s.Frame:
		return "frame"
	case s.Menu != nil:
		return "menu"
	case s.Select != nil:
		return "select"
	case s.Clear:
		return "clear"
	case s.Blur:
		return "blur"
	default:
		return ""
	}
}

// Validate checks that exactly one action is set with well-formed points.
func (s Step) Validate() error {
	n := 0
	for _, set := range []bool{
		s.Click != nil, s.Drag != nil, s.Press != nil, s.Move != nil, s.Release != nil,
		s.Frame, s.Menu != nil, s.Select != nil, s.Clear, s.Blur,
	} {
		if set {
			n++
		}
	}
	if n != 1 {
		return fmt.Errorf("%w: want exactly one action, got %d", ErrInvalidStep, n)
	}

	switch {
	case s.Click != nil:
		_, err := point(s.Click)
		return err
	case s.Press != nil:
		_, err := point(s.Press)
		return err
	case s.Move != nil:
		_, err := point(s.Move)
		return err
	case s.Release != nil:
		_, err := point(s.Release)
		return err
	case s.Drag != nil:
		if _, err := point(s.Drag.From); err != nil {
			return err
		}
		_, err := point(s.Drag.To)
		return err
	case s.Menu != nil:
		_, err := point(s.Menu.At)
		return err
	}
	return nil
}

// Modifiers parses Mods, mapping "action" to action.
func (s Step) Modifiers(action key.Modifier) key.Modifier {
	var m key.Modifier
	for _, part := range strings.FieldsFunc(s.Mods, func(r rune) bool {
		return r == '+' || r == ',' || r == ' '
	}) {
		if strings.EqualFold(part, "action") {
			m = m.With(action)
			continue
		}
		m = m.With(key.ModifierFromName(part))
	}
	return m
}

// Load reads a script file.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.dir = filepath.Dir(path)
	return s, nil
}

// Parse decodes and validates a script.
func Parse(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	for i, step := range s.Steps {
		if err := step.Validate(); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return &s, nil
}

// ScenePath returns the scene file resolved against the script directory.
// It is empty when the script names no scene.
func (s *Script) ScenePath() string {
	if s.Scene == "" || filepath.IsAbs(s.Scene) {
		return s.Scene
	}
	return filepath.Join(s.dir, s.Scene)
}

func point(xy []int) (geom.Point, error) {
	if len(xy) != 2 {
		return geom.Point{}, fmt.Errorf("%w: point needs [x, y], got %v", ErrInvalidStep, xy)
	}
	return geom.Pt(xy[0], xy[1]), nil
}
