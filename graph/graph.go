package graph

import (
	"cmp"
	"slices"

	"circuitsim/element"
	"circuitsim/mna"
	"circuitsim/types"
)

// Link 节点上的一个元件引脚
type Link struct {
	Element types.ElementID // 元件编号
	Post    int             // 引脚或内部节点序号
}

// Node 电路节点，0 号节点为地
type Node struct {
	Links    []Link // 连接到该节点的元件引脚
	Internal bool   // 元件内部节点，不参与自动接地
}

// VoltageRef 电压源对应的元件
type VoltageRef struct {
	Element types.ElementID // 元件编号
	Index   int             // 元件内部电压源序号
}

// Graph 连接处理
// 元件列表中的空槽位表示已删除的元件，分析时跳过。
type Graph struct {
	Devices        []element.Device // 元件列表，下标即元件编号
	Nodes          []Node           // 节点列表
	VoltageSources []VoltageRef     // 电压源列表，下标即电压源编号
	Wires          []*WireInfo      // 导线电流计算顺序

	DrawPosts      []types.Point // 需要绘制的引脚
	UndrawPosts    []types.Point // 恰好两个元件共享的引脚
	BadConnections []types.Point // 只有一个元件的引脚
}

// nodeEntry 坐标到节点的映射，导线连接的坐标共享同一个入口
type nodeEntry struct {
	node int
}

// NodeCount 节点数量（含地节点）
func (g *Graph) NodeCount() int { return len(g.Nodes) }

// VoltageSourceCount 电压源数量
func (g *Graph) VoltageSourceCount() int { return len(g.VoltageSources) }

// Build 分析电路拓扑，分配节点和电压源
// 节点编号按元件列表顺序分配，相同的元件列表得到相同的编号。
// 参数devices: 元件列表，可以包含空槽位
// 参数wireLoopFactor: 导线电流计算的最大重排倍数
func Build(devices []element.Device, wireLoopFactor int) (*Graph, error) {
	g := &Graph{Devices: devices}
	nodeMap := g.wireClosure()
	g.chooseGround(nodeMap)

	postCount := map[types.Point]int{}
	vsCount := 0
	for i, ce := range devices {
		if ce == nil {
			continue
		}
		id := types.ElementID(i)
		// 每个引脚分配节点
		for j := range ce.PostCount() {
			pt := ce.Post(j)
			postCount[pt]++
			cln, ok := nodeMap[pt]
			if !ok || cln.node == -1 {
				n := len(g.Nodes)
				g.Nodes = append(g.Nodes, Node{Links: []Link{{id, j}}})
				ce.SetNode(j, mna.NodeID(n))
				if ok {
					cln.node = n
				} else {
					nodeMap[pt] = &nodeEntry{node: n}
				}
				continue
			}
			n := cln.node
			g.Nodes[n].Links = append(g.Nodes[n].Links, Link{id, j})
			ce.SetNode(j, mna.NodeID(n))
			// 地节点不会被求解结果覆盖
			if n == 0 {
				ce.SetNodeVoltage(j, 0)
			}
		}
		// 内部节点
		for j := range ce.InternalNodeCount() {
			n := len(g.Nodes)
			post := ce.PostCount() + j
			g.Nodes = append(g.Nodes, Node{Links: []Link{{id, post}}, Internal: true})
			ce.SetNode(post, mna.NodeID(n))
		}
		vsCount += ce.VoltageSourceCount()
	}

	g.makePostDrawList(postCount)
	if err := g.calcWireInfo(wireLoopFactor); err != nil {
		return g, err
	}

	g.VoltageSources = make([]VoltageRef, 0, vsCount)
	for i, ce := range devices {
		if ce == nil {
			continue
		}
		for j := range ce.VoltageSourceCount() {
			ce.SetVoltageSource(j, mna.VoltageID(len(g.VoltageSources)))
			g.VoltageSources = append(g.VoltageSources, VoltageRef{types.ElementID(i), j})
		}
	}
	return g, nil
}

// wireClosure 合并导线连接的坐标，并按元件顺序建立导线列表
func (g *Graph) wireClosure() map[types.Point]*nodeEntry {
	nodeMap := map[types.Point]*nodeEntry{}
	for i, ce := range g.Devices {
		if ce == nil || !ce.Kind().Has(element.KindWire) {
			continue
		}
		g.Wires = append(g.Wires, &WireInfo{Wire: types.ElementID(i)})
		p1, p2 := ce.Post(0), ce.Post(1)
		cn1, cp1 := nodeMap[p1]
		cn2, cp2 := nodeMap[p2]
		switch {
		case cp1 && cp2:
			if cn1 == cn2 {
				continue
			}
			for pt, cn := range nodeMap {
				if cn == cn2 {
					nodeMap[pt] = cn1
				}
			}
		case cp1:
			nodeMap[p2] = cn1
		case cp2:
			nodeMap[p1] = cn2
		default:
			cn := &nodeEntry{node: -1}
			nodeMap[p1] = cn
			nodeMap[p2] = cn
		}
	}
	return nodeMap
}

// chooseGround 确定地节点
// 没有接地元件和单端电源时，第一个电压源的引脚0作为地；接地元件的引脚总是地。
func (g *Graph) chooseGround(nodeMap map[types.Point]*nodeEntry) {
	var gotGround, gotRail bool
	var volt element.Device
	for _, ce := range g.Devices {
		if ce == nil {
			continue
		}
		kind := ce.Kind()
		if kind.Has(element.KindGround) {
			gotGround = true
		}
		if kind.Has(element.KindRail) {
			gotRail = true
		}
		if volt == nil && kind.Has(element.KindVoltage) {
			volt = ce
		}
	}
	g.Nodes = append(g.Nodes, Node{})
	ground := func(pt types.Point) {
		if cn, ok := nodeMap[pt]; ok {
			cn.node = 0
		} else {
			nodeMap[pt] = &nodeEntry{node: 0}
		}
	}
	if !gotGround && !gotRail && volt != nil {
		ground(volt.Post(0))
	}
	for _, ce := range g.Devices {
		if ce != nil && ce.Kind().Has(element.KindGround) {
			for j := range ce.PostCount() {
				ground(ce.Post(j))
			}
		}
	}
}

// makePostDrawList 统计引脚共享情况，结果按坐标排序
func (g *Graph) makePostDrawList(postCount map[types.Point]int) {
	for pt, count := range postCount {
		if count == 2 {
			g.UndrawPosts = append(g.UndrawPosts, pt)
		} else {
			g.DrawPosts = append(g.DrawPosts, pt)
		}
		if count == 1 {
			g.BadConnections = append(g.BadConnections, pt)
		}
	}
	for _, list := range [][]types.Point{g.DrawPosts, g.UndrawPosts, g.BadConnections} {
		slices.SortFunc(list, comparePoint)
	}
}

func comparePoint(a, b types.Point) int {
	if c := cmp.Compare(a.Y, b.Y); c != 0 {
		return c
	}
	return cmp.Compare(a.X, b.X)
}
