// Package debug 记录仿真过程并输出为 JSON、网页曲线或图片。
package debug

import (
	"encoding/json"
	"io"
	"slices"

	"circuitsim"
	"circuitsim/graph"
)

// Record 记录历史状态
type Record struct {
	Nodes    [][][2]int  `json:"nodes"`          // 每个节点连接的 [元件编号, 引脚]，下标 0 为地
	Elements []string    `json:"elements"`       // 元件名称，下标为元件编号
	Voltage  [][]float64 `json:"voltage"`        // 每个时间步的节点电压，不含地
	Current  [][]float64 `json:"current"`        // 每个时间步的元件电流
	Time     []float64   `json:"time"`           // 时间列
	Stop     string      `json:"stop,omitempty"` // 停止原因
}

// Init 记录拓扑，电路分析完成后调用
// 参数names: 元件名称，下标为元件编号
func (list *Record) Init(g *graph.Graph, names []string) {
	list.Elements = slices.Clone(names)
	list.Nodes = make([][][2]int, len(g.Nodes))
	for i, n := range g.Nodes {
		for _, cnl := range n.Links {
			list.Nodes[i] = append(list.Nodes[i], [2]int{int(cnl.Element), cnl.Post})
		}
	}
}

// Update 记录一个时间步的结果
func (list *Record) Update(s *circuitsim.Snapshot) {
	if s.Stopped() {
		list.Stop = s.StopMessage
		return
	}
	list.Time = append(list.Time, s.Time)
	var v []float64
	if len(s.NodeVoltages) > 0 {
		v = slices.Clone(s.NodeVoltages[1:])
	}
	list.Voltage = append(list.Voltage, v)
	list.Current = append(list.Current, slices.Clone(s.Currents))
}

// Len 已记录的时间步数
func (list *Record) Len() int { return len(list.Time) }

// Render 格式和输出内容
func (list *Record) Render(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(list)
}
