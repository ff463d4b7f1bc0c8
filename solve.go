package circuitsim

import (
	"context"
	"time"

	"circuitsim/element"
	"circuitsim/mna"
	"circuitsim/types"
)

// DoIteration 推进一个时间步
// 每次子迭代恢复线性基准、加盖非线性贡献、求解并回传结果，
// 直到没有元件报告大幅变化或达到子迭代上限。
func (c *Circuit) DoIteration() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.doIteration()
}

func (c *Circuit) doIteration() error {
	if c.needAnalyze {
		if err := c.analyze(); err != nil {
			return err
		}
	}
	if c.stopErr != nil {
		return c.stopErr
	}
	m := c.mna
	element.CallMark(element.MarkStartIteration, m, c, c.elements)

	limit := c.config.SubIterMax
	for c.subIter = 0; c.subIter < limit; c.subIter++ {
		c.converged = true
		m.Restore()
		element.CallMark(element.MarkDoStep, m, c, c.elements)
		if err := m.Err(); err != nil {
			return c.halt(err)
		}
		if err := m.CheckFinite(); err != nil {
			return c.halt(err)
		}
		if c.converged && c.subIter > 0 {
			break
		}
		if err := m.Solve(c.x); err != nil {
			return c.halt(err)
		}
		if n := m.Nudged(); n > 0 {
			c.log.Debug("零主元已替换", "count", n, "subIter", c.subIter)
		}
		c.apply()
		element.CallMark(element.MarkCalculateCurrent, m, c, c.elements)
	}
	if c.subIter == limit {
		return c.halt(types.NewStopError(types.ErrNonConvergence, types.MsgNonConvergence, types.NoElement))
	}

	element.CallMark(element.MarkStepFinished, m, c, c.elements)
	for i, d := range c.elements {
		if f, ok := d.(element.Failer); ok {
			if msg := f.Failure(); msg != "" {
				return c.halt(types.NewStopError(types.ErrNumeric, msg, types.ElementID(i)))
			}
		}
	}
	c.graph.WireCurrents()
	c.time += c.config.TimeStep
	c.iterations++
	c.publish()
	return nil
}

// apply 将求解结果回传给元件
// 节点电压写入节点上每个元件引脚，电压源电流写入对应元件。
func (c *Circuit) apply() {
	nodes := c.graph.NodeCount()
	for j, res := range c.x {
		if j < nodes-1 {
			for _, cnl := range c.graph.Nodes[j+1].Links {
				c.elements[cnl.Element].SetNodeVoltage(cnl.Post, res)
			}
			continue
		}
		ji := j - (nodes - 1)
		ref := c.graph.VoltageSources[ji]
		c.elements[ref.Element].SetCurrent(mna.VoltageID(ji), res)
	}
}

// Run 同步推进 n 个时间步，返回完成的步数
// 停止信号在每个时间步之间检查。
func (c *Circuit) Run(n int) (int, error) {
	c.Start()
	done := 0
	for ; done < n && c.Running(); done++ {
		if err := c.DoIteration(); err != nil {
			return done, err
		}
	}
	return done, nil
}

// RunFor 在时间预算内推进，直到预算用完、ctx 取消或仿真停止
func (c *Circuit) RunFor(ctx context.Context, budget time.Duration) (int, error) {
	c.Start()
	deadline := time.Now().Add(budget)
	done := 0
	for c.Running() && time.Now().Before(deadline) {
		if err := ctx.Err(); err != nil {
			return done, err
		}
		if err := c.DoIteration(); err != nil {
			return done, err
		}
		done++
	}
	return done, nil
}
