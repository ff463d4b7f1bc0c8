package circuitsim

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"circuitsim/element"
	"circuitsim/graph"
	"circuitsim/mna"
	"circuitsim/types"
)

// Circuit 电路模拟器
// 元件按编号存放，删除的元件留下空槽位，编号保持不变。
// 元件变化后在下一次迭代前重新分析拓扑。
type Circuit struct {
	mu       sync.Mutex
	config   types.Config
	log      *slog.Logger
	elements []element.Device

	graph *graph.Graph // 当前拓扑
	mna   *mna.MNA     // 当前求解上下文
	x     []float64    // 求解结果

	time        float64 // 仿真时间(秒)
	subIter     int     // 当前子迭代次数
	converged   bool    // 当前子迭代是否收敛
	iterations  int     // 成功的时间步数
	needAnalyze bool    // 需要重新分析
	stopErr     *types.StopError

	running  atomic.Bool
	snapshot atomic.Pointer[Snapshot]
}

// NewCircuit 创建电路
// 参数config: 求解器参数，nil 使用默认值
// 参数log: 日志，nil 使用 slog.Default()
func NewCircuit(config *types.Config, log *slog.Logger) (*Circuit, error) {
	cfg := types.DefaultConfig()
	if config != nil {
		*cfg = *config
		cfg.ApplyDefaults()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("求解器参数错误: %w", err)
	}
	if log == nil {
		log = slog.Default()
	}
	c := &Circuit{config: *cfg, log: log, needAnalyze: true}
	c.snapshot.Store(&Snapshot{StopElement: types.NoElement})
	return c, nil
}

// AddElement 添加元件，返回元件编号
func (c *Circuit) AddElement(d element.Device) types.ElementID {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.elements = append(c.elements, d)
	c.needAnalyze = true
	return types.ElementID(len(c.elements) - 1)
}

// RemoveElement 删除元件，编号不再复用
func (c *Circuit) RemoveElement(id types.ElementID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if id < 0 || int(id) >= len(c.elements) || c.elements[id] == nil {
		return fmt.Errorf("元件不存在: %d", id)
	}
	c.elements[id] = nil
	c.needAnalyze = true
	return nil
}

// Element 按编号获取元件，不存在时返回 nil
func (c *Circuit) Element(id types.ElementID) element.Device {
	c.mu.Lock()
	defer c.mu.Unlock()
	if id < 0 || int(id) >= len(c.elements) {
		return nil
	}
	return c.elements[id]
}

// Len 元件槽位数量
func (c *Circuit) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.elements)
}

// Invalidate 元件参数或开关状态改变后调用，下一次迭代前重新分析
func (c *Circuit) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.needAnalyze = true
}

// Graph 当前拓扑，分析失败时为 nil
func (c *Circuit) Graph() *graph.Graph {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.graph
}

// MNA 当前求解上下文，分析失败时为 nil
func (c *Circuit) MNA() *mna.MNA {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mna
}

// Analyze 分析拓扑并建立矩阵
// 顺序：拓扑构建、拓扑检查、线性加盖、自动接地、矩阵简化。
func (c *Circuit) Analyze() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.analyze()
}

func (c *Circuit) analyze() error {
	c.needAnalyze = false
	c.stopErr = nil
	c.graph, c.mna, c.x = nil, nil, nil

	g, err := graph.Build(c.elements, c.config.WireLoopFactor)
	if err != nil {
		return c.halt(err)
	}
	if err := g.Validate(c.log); err != nil {
		return c.halt(err)
	}
	m := mna.NewMNA(g.NodeCount(), g.VoltageSourceCount(), c.config.PivotNudge)
	// 逐个加盖，出错时记录元件编号
	for i, d := range c.elements {
		if d == nil {
			continue
		}
		d.Stamp(m, c)
		if err := m.Err(); err != nil {
			se := types.AsStopError(err)
			se.Element = types.ElementID(i)
			return c.halt(se)
		}
	}
	for _, n := range g.GroundClosure(m, c.config.AutoGroundResistance) {
		c.log.Info("节点没有接地通路, 已自动接地", "node", n, "resistance", c.config.AutoGroundResistance)
	}
	if err := m.Simplify(); err != nil {
		return c.halt(err)
	}
	c.graph, c.mna = g, m
	c.x = make([]float64, m.FullSize())
	c.log.Debug("电路分析完成",
		"nodes", g.NodeCount(),
		"voltageSources", g.VoltageSourceCount(),
		"matrix", m.FullSize(),
		"simplified", m.Size(),
		"badConnections", len(g.BadConnections))
	c.publish()
	return nil
}

// Reset 重置所有元件状态和仿真时间
func (c *Circuit) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	element.CallMark(element.MarkReset, nil, c, c.elements)
	c.time = 0
	c.iterations = 0
	c.stopErr = nil
	c.needAnalyze = true
	c.publish()
}

// Start 允许 Run/RunFor 推进
func (c *Circuit) Start() { c.running.Store(true) }

// Stop 停止推进，当前时间步完成后生效
func (c *Circuit) Stop() { c.running.Store(false) }

// Running 是否在运行
func (c *Circuit) Running() bool { return c.running.Load() }

// Err 停止原因，没有停止时为 nil
func (c *Circuit) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopErr == nil {
		return nil
	}
	return c.stopErr
}

// halt 记录停止原因并发布，已发布的电压和电流保持不变
func (c *Circuit) halt(err error) error {
	se := types.AsStopError(err)
	se.Time = c.time
	c.stopErr = se
	c.running.Store(false)
	c.log.Warn("仿真停止", "err", se.Kind, "message", se.Message, "element", se.Element, "time", se.Time)
	c.publishStop()
	return se
}

// ------------------------------ mna.Time ------------------------------

func (c *Circuit) Time() float64         { return c.time }
func (c *Circuit) TimeStep() float64     { return c.config.TimeStep }
func (c *Circuit) SubIterations() int    { return c.subIter }
func (c *Circuit) NotConverged()         { c.converged = false }
func (c *Circuit) Config() *types.Config { return &c.config }
