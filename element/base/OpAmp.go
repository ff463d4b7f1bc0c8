package base

import (
	"math"
	"math/rand/v2"

	"circuitsim/element"
	"circuitsim/mna"
	"circuitsim/types"
)

// OpAmpConfig 定义元件
var OpAmpConfig = element.AddElement(&element.Config{
	Name:      "opamp",
	Pin:       []string{"in-", "in+", "out"},
	ValueName: []string{"maxOut", "minOut", "gain"},
	ValueInit: []float64{15, -15, 1e5}, // 输出范围和开环增益
}, func(posts []types.Point, values []float64) element.Device {
	return NewOpAmp(posts, values[0], values[1], values[2])
})

// OpAmp 运算放大器
// 输出端是一个对地电压源，线性区输出 Gain×(V(in+)-V(in-))，
// 超出输出范围后以很小的斜率钳位在 MaxOut/MinOut。
type OpAmp struct {
	*element.Base
	MaxOut float64 // 最大输出电压
	MinOut float64 // 最小输出电压
	Gain   float64 // 开环增益
	lastVd float64 // 上一次子迭代的输入电压差
	rng    *rand.Rand
}

// NewOpAmp 创建运算放大器
func NewOpAmp(posts []types.Point, maxOut, minOut, gain float64) *OpAmp {
	o := &OpAmp{Base: element.NewBase(posts, 0, 1), MaxOut: maxOut, MinOut: minOut, Gain: gain}
	o.Reset()
	return o
}

// 输入端没有电流通路，输出端经电压源接地
func (o *OpAmp) GetConnection(n1, n2 int) bool  { return false }
func (o *OpAmp) HasGroundConnection(n int) bool { return n == 2 }

// Reset 清除迭代状态
func (o *OpAmp) Reset() {
	o.Base.Reset()
	o.lastVd = 0
	o.rng = rand.New(rand.NewPCG(1, 2))
}

func (o *OpAmp) Stamp(m mna.Stamper, t mna.Time) {
	vn := m.VoltageSourceRow(o.VoltSource[0])
	m.StampNonLinear(vn)
	m.StampMatrix(o.Nodes[2], vn, 1)
}

// DoStep 在当前工作点线性化
// 输入电压差变化超过 0.1V 或输出超出范围 0.1V 时本次子迭代不收敛。
// 两个方向都满足钳位条件时随机选择，避免在两侧来回跳动。
func (o *OpAmp) DoStep(m mna.Stamper, t mna.Time) {
	vd := o.Volts[1] - o.Volts[0]
	if math.Abs(o.lastVd-vd) > 0.1 {
		t.NotConverged()
	} else if o.Volts[2] > o.MaxOut+0.1 || o.Volts[2] < o.MinOut-0.1 {
		t.NotConverged()
	}
	var x, dx float64
	switch {
	case vd >= o.MaxOut/o.Gain && (o.lastVd >= 0 || o.rng.IntN(4) == 1):
		dx = 1e-4
		x = o.MaxOut - dx*o.MaxOut/o.Gain
	case vd <= o.MinOut/o.Gain && (o.lastVd <= 0 || o.rng.IntN(4) == 1):
		dx = 1e-4
		x = o.MinOut - dx*o.MinOut/o.Gain
	default:
		dx = o.Gain
	}
	// V(out) = x + dx×(V(in+)-V(in-))
	vn := m.VoltageSourceRow(o.VoltSource[0])
	m.StampMatrix(vn, o.Nodes[0], dx)
	m.StampMatrix(vn, o.Nodes[1], -dx)
	m.StampMatrix(vn, o.Nodes[2], 1)
	m.StampRightSide(vn, x)
	o.lastVd = vd
}

// CurrentIntoNode 只有输出端有电流
func (o *OpAmp) CurrentIntoNode(p int) float64 {
	if p == 2 {
		return -o.Current
	}
	return 0
}
