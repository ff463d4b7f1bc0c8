package element

import (
	"circuitsim/mna"
	"circuitsim/types"
)

// Base 元件公共状态，元件通过嵌入获得 Device 接口的默认实现。
// 这些数据在仿真过程中会不断更新，反映元件的当前状态。
type Base struct {
	Posts      []types.Point   // 引脚坐标
	Nodes      []mna.NodeID    // 引脚和内部节点对应的全局节点
	Volts      []float64       // 引脚和内部节点电压
	VoltSource []mna.VoltageID // 电压源全局编号
	Current    float64         // 元件电流
	internal   int             // 内部节点数量
}

// NewBase 创建元件公共状态
// 参数posts: 引脚坐标
// 参数internal: 内部节点数量
// 参数vs: 电压源数量
func NewBase(posts []types.Point, internal, vs int) *Base {
	n := len(posts) + internal
	return &Base{
		Posts:      append([]types.Point(nil), posts...),
		Nodes:      make([]mna.NodeID, n),
		Volts:      make([]float64, n),
		VoltSource: make([]mna.VoltageID, vs),
		internal:   internal,
	}
}

func (b *Base) PostCount() int              { return len(b.Posts) }
func (b *Base) InternalNodeCount() int      { return b.internal }
func (b *Base) VoltageSourceCount() int     { return len(b.VoltSource) }
func (b *Base) ConnectionNodeCount() int    { return len(b.Posts) + b.internal }
func (b *Base) Post(n int) types.Point      { return b.Posts[n] }
func (b *Base) Kind() Kind                  { return 0 }
func (b *Base) IsWire() bool                { return false }
func (b *Base) GetNode(p int) mna.NodeID    { return b.Nodes[p] }
func (b *Base) SetNode(p int, n mna.NodeID) { b.Nodes[p] = n }

// SetVoltageSource 设置第 j 个电压源的全局编号
func (b *Base) SetVoltageSource(j int, vs mna.VoltageID) {
	if j >= 0 && j < len(b.VoltSource) {
		b.VoltSource[j] = vs
	}
}

func (b *Base) GetConnectionNode(n int) mna.NodeID { return b.Nodes[n] }
func (b *Base) GetConnection(n1, n2 int) bool      { return true }
func (b *Base) HasGroundConnection(n int) bool     { return false }

// Reset 清除电压和电流
func (b *Base) Reset() {
	clear(b.Volts)
	b.Current = 0
}

func (b *Base) StartIteration(t mna.Time)              {}
func (b *Base) Stamp(m mna.Stamper, t mna.Time)        {}
func (b *Base) DoStep(m mna.Stamper, t mna.Time)       {}
func (b *Base) CalculateCurrent()                      {}
func (b *Base) StepFinished(t mna.Time)                {}
func (b *Base) SetNodeVoltage(p int, v float64)        { b.Volts[p] = v }
func (b *Base) SetCurrent(vs mna.VoltageID, c float64) { b.Current = c }
func (b *Base) GetCurrent() float64                    { return b.Current }

// CurrentIntoNode 两端元件的电流从引脚0流向引脚1
func (b *Base) CurrentIntoNode(p int) float64 {
	if p == 0 && len(b.Posts) == 2 {
		return -b.Current
	}
	return b.Current
}

// VoltDiff 引脚0与引脚1的电压差
func (b *Base) VoltDiff() float64 { return b.Volts[0] - b.Volts[1] }
