package types

// ElementID 元件在电路槽位中的稳定索引
type ElementID int

// NoElement 表示没有关联元件
const NoElement ElementID = -1

// 默认参数常量定义
const (
	DefaultTimeStep             = 5e-6  // 默认时间步长
	DefaultSubIterMax           = 1000  // 非线性子迭代上限
	DefaultConvergeDelta        = 0.01  // 非线性元件收敛电压差
	DefaultGminStartIter        = 100   // 开始增加 gmin 的子迭代次数
	DefaultAutoGroundResistance = 1e8   // 悬浮节点接地电阻
	DefaultWireLoopFactor       = 2     // 导线电流求解重试倍数
	DefaultPivotNudge           = 1e-18 // 零主元替换值
)

// 停止信息
const (
	MsgVoltageLoop    = "Voltage source/wire loop with no resistance!"
	MsgCapacitorLoop  = "Capacitor loop with no resistance!"
	MsgWireLoop       = "wire loop detected"
	MsgMatrixError    = "Matrix error"
	MsgSingularMatrix = "Singular matrix!"
	MsgNonConvergence = "Convergence failed!"
	MsgNaNMatrix      = "Matrix contains NaN/Infinity"
	MsgNaNSolution    = "Solution contains NaN/Infinity"
	MsgBadResistance  = "bad resistance"
)
