package inkwell

import (
	"fmt"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// LightLevels is the state of the frontlight. Both values are percentages.
type LightLevels struct {
	Intensity float32 `toml:"intensity"`
	Warmth    float32 `toml:"warmth"`
}

// Interpolate returns the levels a fraction t of the way from l to other.
func (l LightLevels) Interpolate(other LightLevels, t float32) LightLevels {
	return LightLevels{
		Intensity: ease.Linear(t, l.Intensity, other.Intensity-l.Intensity, 1),
		Warmth:    ease.Linear(t, l.Warmth, other.Warmth-l.Warmth, 1),
	}
}

// Validate reports levels outside [0, 100].
func (l LightLevels) Validate() error {
	if l.Intensity < 0 || l.Intensity > 100 {
		return fmt.Errorf("frontlight intensity %g must be in [0, 100]", l.Intensity)
	}
	if l.Warmth < 0 || l.Warmth > 100 {
		return fmt.Errorf("frontlight warmth %g must be in [0, 100]", l.Warmth)
	}
	return nil
}

// Frontlight is the light driver. LightLevels is an in-memory implementation.
type Frontlight interface {
	SetIntensity(value float32)
	SetWarmth(value float32)
	Levels() LightLevels
}

func (l *LightLevels) SetIntensity(value float32) { l.Intensity = value }
func (l *LightLevels) SetWarmth(value float32)    { l.Warmth = value }
func (l *LightLevels) Levels() LightLevels        { return *l }

// FrontlightRamp moves a Frontlight smoothly to target levels. The UI loop
// advances it on every FrontlightTickEvent.
type FrontlightRamp struct {
	light     Frontlight
	intensity *gween.Tween
	warmth    *gween.Tween
	Done      bool
}

// NewFrontlightRamp starts a ramp of light from its current levels to target
// lasting d.
func NewFrontlightRamp(light Frontlight, target LightLevels, d time.Duration) *FrontlightRamp {
	from := light.Levels()
	secs := float32(d.Seconds())
	return &FrontlightRamp{
		light:     light,
		intensity: gween.New(from.Intensity, target.Intensity, secs, ease.InOutQuad),
		warmth:    gween.New(from.Warmth, target.Warmth, secs, ease.InOutQuad),
	}
}

// Advance moves the ramp forward by dt and applies the new levels. It
// returns true once the target is reached.
func (r *FrontlightRamp) Advance(dt time.Duration) bool {
	if r.Done {
		return true
	}
	secs := float32(dt.Seconds())
	i, iDone := r.intensity.Update(secs)
	w, wDone := r.warmth.Update(secs)
	r.light.SetIntensity(i)
	r.light.SetWarmth(w)
	r.Done = iDone && wDone
	return r.Done
}
