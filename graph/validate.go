package graph

import (
	"log/slog"

	"circuitsim/element"
	"circuitsim/mna"
	"circuitsim/types"
)

// Validate 检查电路中不能求解的连接
// 没有通路的电感和电流源降级处理，被导线短接的电容清除储能，
// 零电阻的电压源环路、单端电源接地和电容环路返回拓扑错误。
func (g *Graph) Validate(log *slog.Logger) error {
	for i, ce := range g.Devices {
		if ce == nil {
			continue
		}
		id := types.ElementID(i)
		kind := ce.Kind()

		// 电感和电流源需要电流通路
		if kind.Has(element.KindInductor | element.KindCurrent) {
			found := g.NewPathInfo(InductorPath, id, ce.GetNode(1)).FindPath(ce.GetNode(0))
			if f, ok := ce.(element.Floater); ok {
				f.Floating(!found)
			}
			if !found {
				log.Info("元件没有电流通路", "element", id)
			}
		}

		if ce.PostCount() == 2 {
			// 电压源或等效导线的零电阻环路
			if kind.Has(element.KindVoltage) || (ce.IsWire() && !kind.Has(element.KindWire)) {
				if g.NewPathInfo(VoltagePath, id, ce.GetNode(1)).FindPath(ce.GetNode(0)) {
					return types.NewStopError(types.ErrTopology, types.MsgVoltageLoop, id)
				}
			}
		} else if kind.Has(element.KindRail) {
			// 单端电源经零电阻接地
			if g.NewPathInfo(VoltagePath, id, ce.GetNode(0)).FindPath(mna.Gnd) {
				return types.NewStopError(types.ErrTopology, types.MsgVoltageLoop, id)
			}
		}

		if kind.Has(element.KindCapacitor) {
			if g.NewPathInfo(ShortPath, id, ce.GetNode(1)).FindPath(ce.GetNode(0)) {
				log.Info("电容被短接", "element", id)
				if s, ok := ce.(element.Shorter); ok {
					s.Shorted()
				}
			} else if g.NewPathInfo(CapacitorPath, id, ce.GetNode(1)).FindPath(ce.GetNode(0)) {
				return types.NewStopError(types.ErrTopology, types.MsgCapacitorLoop, id)
			}
		}
	}
	return nil
}

// GroundClosure 找出没有间接接地的节点，用大电阻接地后重新搜索
// 返回被接地的节点。
func (g *Graph) GroundClosure(m mna.Stamper, r float64) []mna.NodeID {
	var healed []mna.NodeID
	closure := make([]bool, len(g.Nodes))
	closure[0] = true
	for changed := true; changed; {
		changed = false
		for _, ce := range g.Devices {
			if ce == nil || ce.Kind().Has(element.KindWire) {
				continue
			}
			cnt := ce.ConnectionNodeCount()
			for j := range cnt {
				nj := ce.GetConnectionNode(j)
				if !closure[nj] {
					if ce.HasGroundConnection(j) {
						closure[nj] = true
						changed = true
					}
					continue
				}
				for k := range cnt {
					if j == k {
						continue
					}
					if kn := ce.GetConnectionNode(k); ce.GetConnection(j, k) && !closure[kn] {
						closure[kn] = true
						changed = true
					}
				}
			}
		}
		if changed {
			continue
		}
		// 第一个未接地的外部节点接大电阻到地，然后重新搜索
		for i, node := range g.Nodes {
			if !closure[i] && !node.Internal {
				m.StampResistor(mna.Gnd, mna.NodeID(i), r)
				healed = append(healed, mna.NodeID(i))
				closure[i] = true
				changed = true
				break
			}
		}
	}
	return healed
}
