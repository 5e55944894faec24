// Package rotation sequences the face sweeps of an iteration: front to up
// while sampling, then a single jump back to the front.
package rotation

import (
	"face-synth/internal/mathutil"
	"face-synth/internal/scene"
)

// Stage is the active sweep of an iteration.
type Stage int

const (
	FrontToUp Stage = iota
	UpToFront
)

func (s Stage) String() string {
	switch s {
	case FrontToUp:
		return "front_to_up"
	case UpToFront:
		return "up_to_front"
	default:
		return "unknown"
	}
}

// Event is what a machine tick observed.
type Event int

const (
	None Event = iota
	StageStarted
	StageFinished
	IterationComplete
)

func (e Event) String() string {
	switch e {
	case StageStarted:
		return "stage_started"
	case StageFinished:
		return "stage_finished"
	case IterationComplete:
		return "iteration_complete"
	default:
		return "none"
	}
}

type stageSpec struct {
	axis      mathutil.Vec3
	immediate bool
	next      Stage
	completes bool
}

// stages is the transition table. Stages run strictly in order.
var stages = map[Stage]stageSpec{
	FrontToUp: {axis: mathutil.Left, next: UpToFront},
	UpToFront: {axis: mathutil.Right, immediate: true, completes: true},
}

// Params are the sweep constants.
type Params struct {
	TargetAngle   float64 // degrees per stage
	Speed         float64 // degrees per second
	FixedTimestep float64 // seconds per tick
}

// StepDeg is the angle an incremental sweep turns per tick.
func (p Params) StepDeg() float64 {
	return p.FixedTimestep * p.Speed
}

// Machine drives one sweep task at a time.
type Machine struct {
	params Params
	stage  Stage
	doing  bool
	task   *Task
}

// NewMachine returns a machine idle in FrontToUp.
func NewMachine(p Params) *Machine {
	return &Machine{params: p, stage: FrontToUp}
}

// Stage returns the current stage.
func (m *Machine) Stage() Stage { return m.stage }

// Busy reports whether a stage's task has been started and not yet confirmed.
func (m *Machine) Busy() bool { return m.doing }

// Task returns the in-flight task, or nil.
func (m *Machine) Task() *Task { return m.task }

// Reset returns the machine to an idle FrontToUp.
func (m *Machine) Reset() {
	m.stage = FrontToUp
	m.doing = false
	m.task = nil
}

// Tick runs once per simulation tick. An idle machine starts the current
// stage's task from the face's present orientation. A busy machine confirms
// the face reached the task's goal and moves to the next stage, or reports
// the iteration complete after the last one.
func (m *Machine) Tick(st *scene.State, face scene.Handle) Event {
	spec := stages[m.stage]
	if !m.doing {
		m.task = NewTask(st.Rotation(face), spec.axis, m.params.TargetAngle, m.params.StepDeg(), spec.immediate)
		m.doing = true
		return StageStarted
	}

	if st.Rotation(face) != m.task.Goal() {
		return None
	}
	m.doing = false
	m.task = nil
	if spec.completes {
		return IterationComplete
	}
	m.stage = spec.next
	return StageFinished
}

// FrameEnd resumes the in-flight task at the frame boundary.
func (m *Machine) FrameEnd(st *scene.State, face scene.Handle, s Sampler) {
	if m.task == nil {
		return
	}
	m.task.Step(st, face, s)
}
