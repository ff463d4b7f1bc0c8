package element

import (
	"circuitsim/mna"
	"circuitsim/types"
)

// Kind 元件类别标记，拓扑检查按类别决定可通过的元件
type Kind uint16

const (
	KindWire      Kind = 1 << iota // 理想导线
	KindVoltage                    // 电压源（含单端电源）
	KindGround                     // 地
	KindRail                       // 单端电源/逻辑输入
	KindCapacitor                  // 电容
	KindInductor                   // 电感
	KindCurrent                    // 电流源
)

// Has 判断是否包含指定类别
func (k Kind) Has(f Kind) bool { return k&f != 0 }

// Device 元件接口，所有电路元件都必须实现
// 拓扑分析通过它分配节点和电压源，求解过程通过它加盖矩阵并回传结果。
type Device interface {
	PostCount() int           // 外部引脚数量
	InternalNodeCount() int   // 内部节点数量
	VoltageSourceCount() int  // 电压源数量
	ConnectionNodeCount() int // 参与连通性检查的节点数量（引脚+内部节点）
	Post(n int) types.Point   // 引脚坐标
	Kind() Kind               // 元件类别
	IsWire() bool             // 是否等效为理想导线

	SetNode(p int, n mna.NodeID)              // 设置引脚或内部节点对应的全局节点
	GetNode(p int) mna.NodeID                 // 获取引脚或内部节点对应的全局节点
	SetVoltageSource(j int, vs mna.VoltageID) // 设置第 j 个电压源的全局编号

	GetConnectionNode(n int) mna.NodeID // 第 n 个连接节点
	GetConnection(n1, n2 int) bool      // 两个连接节点是否经元件导通
	HasGroundConnection(n int) bool     // 连接节点是否经元件接地

	Reset()                                 // 清除累积状态
	StartIteration(t mna.Time)              // 时间步开始
	Stamp(m mna.Stamper, t mna.Time)        // 加盖线性贡献
	DoStep(m mna.Stamper, t mna.Time)       // 加盖非线性贡献
	CalculateCurrent()                      // 由引脚电压计算电流
	StepFinished(t mna.Time)                // 时间步结束
	SetNodeVoltage(p int, v float64)        // 回传节点电压
	SetCurrent(vs mna.VoltageID, c float64) // 回传电压源电流
	GetCurrent() float64                    // 元件电流
	CurrentIntoNode(p int) float64          // 经引脚 p 流入节点的电流
}

// Shorter 两端被导线短路时需要特殊处理的元件
type Shorter interface {
	Shorted()
}

// Floater 两端之间没有电流通路时需要降级处理的元件
type Floater interface {
	Floating(floating bool)
}

// Failer 时间步结束后自检的元件，返回非空消息时仿真停止
type Failer interface {
	Failure() string
}
