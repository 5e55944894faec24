package rotation

import (
	"math"
	"testing"

	"face-synth/internal/mathutil"
	"face-synth/internal/scene"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSampler struct {
	captures int
	shakes   int
}

func (c *countingSampler) Capture() { c.captures++ }
func (c *countingSampler) Shake()   { c.shakes++ }

func defaultParams() Params {
	return Params{TargetAngle: 80, Speed: 400, FixedTimestep: 0.02}
}

func TestTask_IncrementalCaptureCount(t *testing.T) {
	tests := []struct {
		name string
		dt   float64
	}{
		{"default timestep", 0.02},
		{"coarse timestep", 0.03},
		{"fine timestep", 0.015},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, h := scene.New()
			p := Params{TargetAngle: 80, Speed: 400, FixedTimestep: tt.dt}
			task := NewTask(st.Rotation(h.Face), mathutil.Left, p.TargetAngle, p.StepDeg(), false)
			s := &countingSampler{}

			steps := 0
			for task.Step(st, h.Face, s) != Done {
				steps++
				require.Less(t, steps, 1000)
			}
			want := int(math.Ceil(p.TargetAngle / p.StepDeg()))
			assert.Equal(t, want, s.captures)
			assert.Equal(t, want, s.shakes)
			assert.Equal(t, task.Goal(), st.Rotation(h.Face), "final step snaps to the goal")
		})
	}
}

func TestTask_ImmediateJumpsWithoutSampling(t *testing.T) {
	st, h := scene.New()
	task := NewTask(st.Rotation(h.Face), mathutil.Right, 80, 8, true)
	s := &countingSampler{}

	assert.Equal(t, Done, task.Step(st, h.Face, s))
	assert.Equal(t, 0, s.captures)
	assert.Equal(t, task.Goal(), st.Rotation(h.Face))
	assert.Equal(t, Done, task.Step(st, h.Face, s), "done tasks stay done")
}

func TestTask_SweepTurnsAboutAxis(t *testing.T) {
	st, h := scene.New()
	task := NewTask(st.Rotation(h.Face), mathutil.Left, 80, 8, false)
	task.Step(st, h.Face, &countingSampler{})
	assert.InDelta(t, 8, task.Amount(), 1e-12)
	assert.InDelta(t, 8, st.Rotation(h.Face).Angle(mathutil.QuatIdentity()), 1e-9)
}

func TestMachine_FullIteration(t *testing.T) {
	st, h := scene.New()
	m := NewMachine(defaultParams())
	s := &countingSampler{}

	var events []Event
	capturesByStage := map[Stage]int{}
	for tick := 0; tick < 100; tick++ {
		stage := m.Stage()
		ev := m.Tick(st, h.Face)
		if ev != None {
			events = append(events, ev)
		}
		if ev == IterationComplete {
			break
		}
		before := s.captures
		m.FrameEnd(st, h.Face, s)
		capturesByStage[stage] += s.captures - before
	}

	assert.Equal(t, []Event{StageStarted, StageFinished, StageStarted, IterationComplete}, events)
	assert.Equal(t, int(math.Ceil(80/(0.02*400))), capturesByStage[FrontToUp])
	assert.Equal(t, 0, capturesByStage[UpToFront])
	assert.Equal(t, UpToFront, m.Stage(), "last stage stays until Reset")
	assert.False(t, m.Busy())
	assert.InDelta(t, 0, st.Rotation(h.Face).Angle(mathutil.QuatIdentity()), 1e-6, "face is back at the front")

	m.Reset()
	assert.Equal(t, FrontToUp, m.Stage())
	assert.Nil(t, m.Task())
}

func TestMachine_WaitsForGoal(t *testing.T) {
	st, h := scene.New()
	m := NewMachine(defaultParams())
	require.Equal(t, StageStarted, m.Tick(st, h.Face))
	assert.True(t, m.Busy())
	// No frame boundary yet: the face has not moved, so nothing changes.
	assert.Equal(t, None, m.Tick(st, h.Face))
	assert.Equal(t, FrontToUp, m.Stage())
}

func TestStringers(t *testing.T) {
	assert.Equal(t, "front_to_up", FrontToUp.String())
	assert.Equal(t, "up_to_front", UpToFront.String())
	assert.Equal(t, "iteration_complete", IterationComplete.String())
	assert.Equal(t, "done", Done.String())
}
