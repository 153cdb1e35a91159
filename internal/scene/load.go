package scene

import (
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/dshills/scenepick/internal/geom"
)

// File is the YAML layout of a scene.
//
//	objects:
//	  - name: Root
//	    rect: [10, 10, 40, 20]
//	    depth: 3
//	    base: true
//	    children:
//	      - name: Leaf
//	        rect: [12, 12, 8, 8]
//	        depth: 1
type File struct {
	Objects []FileObject `yaml:"objects"`
}

// FileObject is one object entry. Children inherit nothing but their parent
// link.
type FileObject struct {
	Name     string       `yaml:"name"`
	ID       string       `yaml:"id,omitempty"`
	Rect     []int        `yaml:"rect"`
	Depth    float64      `yaml:"depth"`
	Base     bool         `yaml:"base,omitempty"`
	Hidden   bool         `yaml:"hidden,omitempty"`
	Children []FileObject `yaml:"children,omitempty"`
}

// Load reads a scene from a YAML file.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	s, err := Parse(data)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Path = path
			return nil, le
		}
		return nil, &LoadError{Path: path, Err: err}
	}
	return s, nil
}

// Parse builds a scene from YAML data.
func Parse(data []byte) (*Scene, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, &LoadError{Err: err}
	}
	return Build(f)
}

// Build creates a scene from a decoded file, parents before children.
func Build(f File) (*Scene, error) {
	s := New()
	for _, fo := range f.Objects {
		if err := s.addTree(fo, nil); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Scene) addTree(fo FileObject, parent *Object) error {
	if len(fo.Rect) != 4 {
		return &LoadError{Object: fo.Name, Err: fmt.Errorf("%w: rect needs [x, y, w, h], got %v", ErrInvalidBounds, fo.Rect)}
	}

	o := &Object{
		Name:   fo.Name,
		Bounds: geom.XYWH(fo.Rect[0], fo.Rect[1], fo.Rect[2], fo.Rect[3]),
		Depth:  fo.Depth,
		Parent: parent,
		Base:   fo.Base,
		Hidden: fo.Hidden,
	}
	if fo.ID != "" {
		id, err := uuid.Parse(fo.ID)
		if err != nil {
			return &LoadError{Object: fo.Name, Err: err}
		}
		o.ID = id
	}
	if err := s.Add(o); err != nil {
		return &LoadError{Object: fo.Name, Err: err}
	}

	for _, child := range fo.Children {
		if err := s.addTree(child, o); err != nil {
			return err
		}
	}
	return nil
}

// Encode renders the scene back to YAML, nesting children under parents.
func (s *Scene) Encode() ([]byte, error) {
	children := make(map[*Object][]*Object)
	var roots []*Object
	for _, o := range s.objects {
		if o.Parent == nil {
			roots = append(roots, o)
			continue
		}
		children[o.Parent] = append(children[o.Parent], o)
	}

	var build func(o *Object) FileObject
	build = func(o *Object) FileObject {
		fo := FileObject{
			Name:   o.Name,
			ID:     o.ID.String(),
			Rect:   []int{o.Bounds.Min.X, o.Bounds.Min.Y, o.Bounds.Dx(), o.Bounds.Dy()},
			Depth:  o.Depth,
			Base:   o.Base,
			Hidden: o.Hidden,
		}
		for _, c := range children[o] {
			fo.Children = append(fo.Children, build(c))
		}
		return fo
	}

	var f File
	for _, r := range roots {
		f.Objects = append(f.Objects, build(r))
	}
	return yaml.Marshal(f)
}
