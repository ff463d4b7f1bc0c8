package base

import (
	"circuitsim/element"
	"circuitsim/mna"
	"circuitsim/types"
)

// RailConfig 定义元件
var RailConfig = element.AddElement(&element.Config{
	Name:      "rail",
	Pin:       []string{"out"},
	ValueName: waveValueName,
	ValueInit: []float64{float64(WfDC), 40, 5, 0, 0, 0.5},
}, func(posts []types.Point, values []float64) element.Device {
	return NewRail(posts, newWaveform(values))
})

// Rail 单端电源，输出相对于地
type Rail struct {
	*element.Base
	Waveform
}

// NewRail 创建单端电源
func NewRail(posts []types.Point, wf Waveform) *Rail {
	return &Rail{Base: element.NewBase(posts, 0, 1), Waveform: wf}
}

func (r *Rail) Kind() element.Kind             { return element.KindVoltage | element.KindRail }
func (r *Rail) HasGroundConnection(n int) bool { return true }

func (r *Rail) Reset() {
	r.Base.Reset()
	r.nextNoise()
}

func (r *Rail) Stamp(m mna.Stamper, t mna.Time) {
	if r.Wave == WfDC {
		m.StampVoltageSource(mna.Gnd, r.Nodes[0], r.VoltSource[0], r.Voltage(t))
		return
	}
	m.StampVoltageSourceChanges(mna.Gnd, r.Nodes[0], r.VoltSource[0])
}

func (r *Rail) DoStep(m mna.Stamper, t mna.Time) {
	if r.Wave != WfDC {
		m.UpdateVoltageSource(r.VoltSource[0], r.Voltage(t))
	}
}

func (r *Rail) StepFinished(t mna.Time) { r.nextNoise() }
