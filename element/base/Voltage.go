package base

import (
	"circuitsim/element"
	"circuitsim/mna"
	"circuitsim/types"
)

// VoltageConfig 定义元件
var VoltageConfig = element.AddElement(&element.Config{
	Name:      "v",
	Pin:       []string{"v-", "v+"},
	ValueName: waveValueName,
	ValueInit: []float64{float64(WfDC), 40, 5, 0, 0, 0.5},
}, func(posts []types.Point, values []float64) element.Device {
	return NewVoltage(posts, newWaveform(values))
})

// Voltage 独立电压源，引脚1为正极
type Voltage struct {
	*element.Base
	Waveform
}

// NewVoltage 创建电压源
func NewVoltage(posts []types.Point, wf Waveform) *Voltage {
	return &Voltage{Base: element.NewBase(posts, 0, 1), Waveform: wf}
}

// NewDCVoltage 创建直流电压源
func NewDCVoltage(posts []types.Point, v float64) *Voltage {
	return NewVoltage(posts, newWaveform([]float64{float64(WfDC), 0, v, 0, 0, 0.5}))
}

func (v *Voltage) Kind() element.Kind { return element.KindVoltage }

func (v *Voltage) Reset() {
	v.Base.Reset()
	v.nextNoise()
}

// Stamp 直流电压直接加盖，其余波形在 DoStep 中更新
func (v *Voltage) Stamp(m mna.Stamper, t mna.Time) {
	if v.Wave == WfDC {
		m.StampVoltageSource(v.Nodes[0], v.Nodes[1], v.VoltSource[0], v.Voltage(t))
		return
	}
	m.StampVoltageSourceChanges(v.Nodes[0], v.Nodes[1], v.VoltSource[0])
}

func (v *Voltage) DoStep(m mna.Stamper, t mna.Time) {
	if v.Wave != WfDC {
		m.UpdateVoltageSource(v.VoltSource[0], v.Voltage(t))
	}
}

func (v *Voltage) StepFinished(t mna.Time) { v.nextNoise() }
