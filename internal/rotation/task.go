package rotation

import (
	"face-synth/internal/mathutil"
	"face-synth/internal/scene"
)

// Sampler is called by an incremental Task once per frame boundary.
type Sampler interface {
	// Capture records the frame as it is before the face moves.
	Capture()
	// Shake perturbs the camera after the face moved.
	Shake()
}

// Status is the outcome of a Task step.
type Status int

const (
	Running Status = iota
	Done
)

func (s Status) String() string {
	if s == Done {
		return "done"
	}
	return "running"
}

// Task sweeps the face from a start orientation by a target angle about an
// axis. It advances one step per frame boundary.
//
// An immediate task jumps to the goal on its first step without sampling.
// An incremental task samples, then turns by stepDeg, until the accumulated
// angle reaches the target; the final step snaps the face to exactly the goal.
type Task struct {
	start     mathutil.Quat
	axis      mathutil.Vec3
	target    float64
	stepDeg   float64
	immediate bool
	amount    float64
	status    Status
}

// NewTask returns a task that has not stepped yet.
func NewTask(start mathutil.Quat, axis mathutil.Vec3, target, stepDeg float64, immediate bool) *Task {
	return &Task{
		start:     start,
		axis:      axis,
		target:    target,
		stepDeg:   stepDeg,
		immediate: immediate,
	}
}

// Goal is the orientation the task ends on.
func (t *Task) Goal() mathutil.Quat {
	return t.at(t.target)
}

// Amount is the angle swept so far, in degrees.
func (t *Task) Amount() float64 { return t.amount }

// Status reports whether the task has finished.
func (t *Task) Status() Status { return t.status }

func (t *Task) at(deg float64) mathutil.Quat {
	return t.start.Mul(mathutil.AngleAxis(deg, t.axis))
}

// Step resumes the task at a frame boundary.
func (t *Task) Step(st *scene.State, face scene.Handle, s Sampler) Status {
	if t.status == Done {
		return Done
	}
	if t.immediate {
		st.SetRotation(face, t.Goal())
		t.status = Done
		return Done
	}

	if t.amount < t.target {
		s.Capture()
		t.amount += t.stepDeg
		st.SetRotation(face, t.at(t.amount))
		s.Shake()
	}
	if t.amount >= t.target {
		st.SetRotation(face, t.Goal())
		t.status = Done
	}
	return t.status
}
