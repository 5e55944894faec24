// Package scene holds the posable objects of the capture rig: the face with
// its stickers and mask, and the camera on its holder.
//
// Objects live in a flat arena addressed by Handle. Handles are resolved once
// by New and passed to the components that move the objects.
package scene

import (
	"face-synth/internal/landmark"
	"face-synth/internal/mathutil"
)

// Handle addresses a node in a State.
type Handle int

// NoParent marks a root node.
const NoParent Handle = -1

// Node is a transform relative to its parent.
type Node struct {
	Name          string
	Parent        Handle
	LocalPosition mathutil.Vec3
	LocalRotation mathutil.Quat
	LocalScale    mathutil.Vec3
}

// Handles are the well-known nodes of the capture scene.
type Handles struct {
	Face     Handle
	Mask     Handle
	Rig      Handle
	Camera   Handle
	Stickers [landmark.Count]Handle
}

// State owns every node of the scene.
type State struct {
	nodes []Node
}

// New builds the capture scene: face (root) with the mask and one node per
// sticker as children, and the camera holder (root) carrying the camera.
func New() (*State, Handles) {
	s := &State{}
	var h Handles
	h.Face = s.Add("face", NoParent)
	h.Mask = s.Add("mask", h.Face)
	for i, name := range landmark.Names {
		h.Stickers[i] = s.Add(name, h.Face)
	}
	h.Rig = s.Add("CameraHolder", NoParent)
	h.Camera = s.Add("camera", h.Rig)
	return s, h
}

// Add appends an identity node and returns its handle.
func (s *State) Add(name string, parent Handle) Handle {
	s.nodes = append(s.nodes, Node{
		Name:          name,
		Parent:        parent,
		LocalRotation: mathutil.QuatIdentity(),
		LocalScale:    mathutil.One,
	})
	return Handle(len(s.nodes) - 1)
}

// Len returns the number of nodes.
func (s *State) Len() int { return len(s.nodes) }

// Node returns a copy of the node at h.
func (s *State) Node(h Handle) Node { return s.nodes[h] }

// Lookup finds a node by name. Intended for tools and tests; components
// hold Handles instead.
func (s *State) Lookup(name string) (Handle, bool) {
	for i, n := range s.nodes {
		if n.Name == name {
			return Handle(i), true
		}
	}
	return NoParent, false
}

func (s *State) LocalPosition(h Handle) mathutil.Vec3 { return s.nodes[h].LocalPosition }
func (s *State) LocalRotation(h Handle) mathutil.Quat { return s.nodes[h].LocalRotation }
func (s *State) LocalScale(h Handle) mathutil.Vec3    { return s.nodes[h].LocalScale }

func (s *State) SetLocalPosition(h Handle, p mathutil.Vec3) { s.nodes[h].LocalPosition = p }
func (s *State) SetLocalRotation(h Handle, q mathutil.Quat) { s.nodes[h].LocalRotation = q }
func (s *State) SetLocalScale(h Handle, v mathutil.Vec3)    { s.nodes[h].LocalScale = v }

// LocalEulerAngles returns the local rotation as z-x-y Euler degrees.
func (s *State) LocalEulerAngles(h Handle) mathutil.Vec3 {
	return s.nodes[h].LocalRotation.EulerAngles()
}

// SetLocalEulerAngles sets the local rotation from z-x-y Euler degrees.
func (s *State) SetLocalEulerAngles(h Handle, e mathutil.Vec3) {
	s.nodes[h].LocalRotation = mathutil.EulerVec(e)
}

// World returns the world-space position, rotation and lossy scale of h.
func (s *State) World(h Handle) (mathutil.Vec3, mathutil.Quat, mathutil.Vec3) {
	n := s.nodes[h]
	if n.Parent == NoParent {
		return n.LocalPosition, n.LocalRotation, n.LocalScale
	}
	pp, pr, ps := s.World(n.Parent)
	pos := pp.Add(pr.Rotate(ps.Mul(n.LocalPosition)))
	return pos, pr.Mul(n.LocalRotation), ps.Mul(n.LocalScale)
}

// Position returns the world-space position of h.
func (s *State) Position(h Handle) mathutil.Vec3 {
	p, _, _ := s.World(h)
	return p
}

// Rotation returns the world-space rotation of h.
func (s *State) Rotation(h Handle) mathutil.Quat {
	_, r, _ := s.World(h)
	return r
}

// SetPosition moves h to a world-space position.
func (s *State) SetPosition(h Handle, p mathutil.Vec3) {
	n := &s.nodes[h]
	if n.Parent == NoParent {
		n.LocalPosition = p
		return
	}
	pp, pr, ps := s.World(n.Parent)
	n.LocalPosition = pr.Conj().Rotate(p.Sub(pp)).Div(ps)
}

// SetRotation sets the world-space rotation of h.
func (s *State) SetRotation(h Handle, q mathutil.Quat) {
	n := &s.nodes[h]
	if n.Parent == NoParent {
		n.LocalRotation = q
		return
	}
	n.LocalRotation = s.Rotation(n.Parent).Conj().Mul(q)
}

// SetEulerAngles sets the world-space rotation of h from Euler degrees.
func (s *State) SetEulerAngles(h Handle, e mathutil.Vec3) {
	s.SetRotation(h, mathutil.EulerVec(e))
}

// TransformDirection maps a direction from h's local frame to world space.
func (s *State) TransformDirection(h Handle, dir mathutil.Vec3) mathutil.Vec3 {
	return s.Rotation(h).Rotate(dir)
}
