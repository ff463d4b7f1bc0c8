package graph

import (
	"circuitsim/element"
	"circuitsim/types"
)

// WireInfo 导线电流计算信息
// 导线两端是同一个节点，电流由某一端其余元件流入节点的电流之和得到。
type WireInfo struct {
	Wire      types.ElementID // 导线元件编号
	Post      int             // 用于计算的导线引脚
	Neighbors []Link          // 该引脚处的其他元件
}

// calcWireInfo 为每根导线选择一个所有邻居电流已知的引脚
// 邻居是尚未计算的导线或接地元件时该端不可用；两端都不可用时导线移到队尾稍后再试。
// 整轮重排没有进展时，只被接地元件阻塞的一端也可使用，重排次数超过上限即为导线环路。
func (g *Graph) calcWireInfo(factor int) error {
	ready := map[types.ElementID]bool{}
	moved := 0
	for i := 0; i < len(g.Wires); i++ {
		wi := g.Wires[i]
		wire := g.Devices[wi.Wire]
		wirePosA, wirePosB := wire.Post(0), wire.Post(1)

		var neighbors0, neighbors1 []Link
		var wait0, wait1, gnd0, gnd1 bool
		for _, cnl := range g.Nodes[wire.GetNode(0)].Links {
			if cnl.Element == wi.Wire {
				continue
			}
			ce := g.Devices[cnl.Element]
			if cnl.Post >= ce.PostCount() {
				continue
			}
			notReady := ce.Kind().Has(element.KindWire) && !ready[cnl.Element]
			ground := ce.Kind().Has(element.KindGround) // 接地元件的电流未知
			switch ce.Post(cnl.Post) {
			case wirePosA:
				neighbors0 = append(neighbors0, cnl)
				wait0 = wait0 || notReady
				gnd0 = gnd0 || ground
			case wirePosB:
				neighbors1 = append(neighbors1, cnl)
				wait1 = wait1 || notReady
				gnd1 = gnd1 || ground
			}
		}

		stuck := moved >= len(g.Wires)
		switch {
		case !wait0 && !gnd0:
			wi.Neighbors, wi.Post = neighbors0, 0
		case !wait1 && !gnd1:
			wi.Neighbors, wi.Post = neighbors1, 1
		case stuck && !wait0:
			wi.Neighbors, wi.Post = neighbors0, 0
		case stuck && !wait1:
			wi.Neighbors, wi.Post = neighbors1, 1
		default:
			g.Wires = append(append(g.Wires[:i:i], g.Wires[i+1:]...), wi)
			i--
			moved++
			if moved > len(g.Wires)*factor {
				return types.NewStopError(types.ErrTopology, types.MsgWireLoop, wi.Wire)
			}
			continue
		}
		ready[wi.Wire] = true
		moved = 0
	}
	return nil
}

// WireCurrents 根据邻居元件电流计算导线电流
func (g *Graph) WireCurrents() {
	for _, wi := range g.Wires {
		var cur float64
		for _, cnl := range wi.Neighbors {
			cur += g.Devices[cnl.Element].CurrentIntoNode(cnl.Post)
		}
		wire := g.Devices[wi.Wire]
		if wi.Post == 0 {
			wire.SetCurrent(-1, cur)
		} else {
			wire.SetCurrent(-1, -cur)
		}
	}
}
