package circuitsim

import "circuitsim/types"

// Snapshot 一个时间步完成后的求解结果，发布后不再修改
type Snapshot struct {
	Time          float64          `json:"time"`
	TimeStep      float64          `json:"timeStep"`
	Iterations    int              `json:"iterations"`    // 成功的时间步数
	SubIterations int              `json:"subIterations"` // 最近一个时间步的子迭代次数
	NodeVoltages  []float64        `json:"nodeVoltages"`  // 下标为节点编号，0 为地
	Currents      []float64        `json:"currents"`      // 下标为元件编号，空槽位为 0
	StopMessage   string           `json:"stopMessage,omitempty"`
	StopElement   types.ElementID  `json:"stopElement"`
	Err           *types.StopError `json:"-"`
}

// Stopped 仿真是否已停止
func (s *Snapshot) Stopped() bool { return s.Err != nil }

// Voltage 节点电压，节点不存在时为 0
func (s *Snapshot) Voltage(n int) float64 {
	if n <= 0 || n >= len(s.NodeVoltages) {
		return 0
	}
	return s.NodeVoltages[n]
}

// Snapshot 最近一次发布的结果，可以在其他协程读取
func (c *Circuit) Snapshot() *Snapshot { return c.snapshot.Load() }

// publish 复制当前状态并发布
func (c *Circuit) publish() {
	s := &Snapshot{
		Time:          c.time,
		TimeStep:      c.config.TimeStep,
		Iterations:    c.iterations,
		SubIterations: c.subIter,
		Currents:      make([]float64, len(c.elements)),
		StopElement:   types.NoElement,
	}
	if c.graph != nil && c.x != nil {
		nodes := c.graph.NodeCount()
		s.NodeVoltages = make([]float64, nodes)
		copy(s.NodeVoltages[1:], c.x[:nodes-1])
	}
	for i, d := range c.elements {
		if d != nil {
			s.Currents[i] = d.GetCurrent()
		}
	}
	if c.stopErr != nil {
		s.StopMessage = c.stopErr.Message
		s.StopElement = c.stopErr.Element
		s.Err = c.stopErr
	}
	c.snapshot.Store(s)
}

// publishStop 复制上一次发布的结果，只更新停止信息
func (c *Circuit) publishStop() {
	s := *c.snapshot.Load()
	s.StopMessage = c.stopErr.Message
	s.StopElement = c.stopErr.Element
	s.Err = c.stopErr
	c.snapshot.Store(&s)
}
