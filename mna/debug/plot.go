package debug

import (
	"fmt"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// 默认图片尺寸
const (
	PlotWidth  = 8 * vg.Inch
	PlotHeight = 4 * vg.Inch
)

// Plot 节点电压曲线图
func (list *Record) Plot() (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Node voltage"
	p.X.Label.Text = "t (s)"
	p.Y.Label.Text = "V"
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	if len(list.Voltage) == 0 {
		return p, nil
	}
	var lines []any
	for i := range list.Voltage[len(list.Voltage)-1] {
		xy := make(plotter.XYs, 0, len(list.Time))
		for x, row := range list.Voltage {
			if i < len(row) {
				xy = append(xy, plotter.XY{X: list.Time[x], Y: row[i]})
			}
		}
		lines = append(lines, fmt.Sprintf("Node(%d)", i+1), xy)
	}
	if err := plotutil.AddLines(p, lines...); err != nil {
		return nil, fmt.Errorf("添加曲线失败: %w", err)
	}
	return p, nil
}

// WritePlot 按格式输出图片，格式为 png、svg、pdf 等
func (list *Record) WritePlot(w io.Writer, format string) error {
	p, err := list.Plot()
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(PlotWidth, PlotHeight, format)
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

// SavePlot 保存图片，格式由扩展名决定
func (list *Record) SavePlot(path string) error {
	p, err := list.Plot()
	if err != nil {
		return err
	}
	return p.Save(PlotWidth, PlotHeight, path)
}
