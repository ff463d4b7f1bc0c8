package debug

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// Charts 曲线绘制
type Charts struct {
	*Record
}

// legend 曲线图例放在右侧
var legend = opts.Legend{
	Type:   "scroll",
	Orient: "vertical",
	Right:  "10",
	Top:    "20",
	Bottom: "20",
}

// newLine 创建随时间变化的曲线图
func newLine(title, subtitle string) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: subtitle,
		}),
		charts.WithLegendOpts(legend),
		charts.WithXAxisOpts(opts.XAxis{
			SplitNumber: 20,
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Scale: opts.Bool(true),
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			XAxisIndex: []int{0},
		}),
		charts.WithAnimation(false),
	)
	return line
}

// addSeries 按列添加曲线，rows 每行为一个时间步
func addSeries(line *charts.Line, time []float64, rows [][]float64, name func(i int) string) {
	line.SetXAxis(time)
	if len(rows) == 0 {
		return
	}
	for i := range rows[len(rows)-1] {
		items := make([]opts.LineData, len(rows))
		for x, row := range rows {
			if i < len(row) {
				items[x].Value = row[i]
			}
		}
		line.AddSeries(name(i), items)
	}
}

// topology 元件与节点的连接关系图
func (c *Charts) topology() *charts.Graph {
	graph := charts.NewGraph()
	graph.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "电路节点信息",
			Subtitle: "电路连接节点网络图",
		}),
		charts.WithLegendOpts(legend),
	)
	graph.SetSeriesOptions(
		charts.WithEmphasisOpts(opts.Emphasis{
			Label: &opts.Label{
				Show:     opts.Bool(true),
				Color:    "black",
				Position: "left",
			},
		}),
		charts.WithLineStyleOpts(opts.LineStyle{
			Curveness: 0.3,
		}),
	)
	nodes := make([]opts.GraphNode, 0, len(c.Elements)+len(c.Nodes))
	for _, name := range c.Elements {
		nodes = append(nodes, opts.GraphNode{
			Name:     name,
			Category: 0,
			Tooltip:  &opts.Tooltip{Show: opts.Bool(true)},
		})
	}
	links := make([]opts.GraphLink, 0)
	for i, n := range c.Nodes {
		node := opts.GraphNode{
			Name:     fmt.Sprintf("Node(%d)", i),
			Category: 1,
			Tooltip:  &opts.Tooltip{Show: opts.Bool(true)},
		}
		if i == 0 {
			// 地线
			node.Name = "Gnd"
			node.ItemStyle = &opts.ItemStyle{Color: "#000000de"}
		}
		nodes = append(nodes, node)
		for _, y := range n {
			links = append(links, opts.GraphLink{
				Source: c.Elements[y[0]],
				Target: node.Name,
				Value:  float32(y[1]),
			})
		}
	}
	graph.AddSeries("电路列表", nodes, links,
		charts.WithGraphChartOpts(opts.GraphChart{
			Categories: []*opts.GraphCategory{
				{Name: "元件", ItemStyle: &opts.ItemStyle{Color: "#c71979b7"}},
				{Name: "节点", ItemStyle: &opts.ItemStyle{Color: "#1987c7b7"}},
			},
			Roam:               opts.Bool(true),
			Force:              &opts.GraphForce{Repulsion: 80},
			EdgeLabel:          &opts.EdgeLabel{Show: opts.Bool(true)},
			FocusNodeAdjacency: opts.Bool(true),
		}))
	return graph
}

// Render 生成网页
func (c *Charts) Render(w io.Writer) error {
	lineV := newLine("电压曲线", "电路节点电压随时间变化曲线")
	addSeries(lineV, c.Time, c.Voltage, func(i int) string { return fmt.Sprintf("Node(%d)", i+1) })
	lineA := newLine("电流曲线", "元件电流随时间变化曲线")
	addSeries(lineA, c.Time, c.Current, func(i int) string { return c.Elements[i] })

	page := components.NewPage()
	page.AddCharts(
		c.topology(),
		lineV,
		lineA,
	)
	return page.Render(w)
}

// Handler 发布到网页面
func (c *Charts) Handler(w http.ResponseWriter, _ *http.Request) {
	if err := c.Render(w); err != nil {
		slog.Error("生成网页失败", "err", err)
	}
}
