// internal/gui/info_panel.go
// Scramble metrics for the current result
package gui

import (
	"fmt"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"arnold-cat-map/internal/metrics"
)

const metricsHint = "Metrics appear after a transform."

// InfoPanel lists how far the result has moved from the original.
type InfoPanel struct {
	container *fyne.Container

	metricsCard    *widget.Card
	metricsContent *fyne.Container
	currentReport  metrics.Report
	metricInfo     map[string]metrics.MetricInfo
}

// NewInfoPanel uses info to describe each metric row.
func NewInfoPanel(info map[string]metrics.MetricInfo) *InfoPanel {
	panel := &InfoPanel{metricInfo: info}
	panel.initializeUI()
	return panel
}

func (ip *InfoPanel) initializeUI() {
	ip.metricsContent = container.NewVBox(widget.NewLabel(metricsHint))
	ip.metricsCard = widget.NewCard("Scramble", "", ip.metricsContent)
	ip.container = container.NewVBox(ip.metricsCard)
}

func (ip *InfoPanel) GetContainer() fyne.CanvasObject {
	return ip.container
}

// UpdateReport shows the metrics of a finished transform.
func (ip *InfoPanel) UpdateReport(report metrics.Report) {
	ip.currentReport = report
	ip.metricsCard.SetSubTitle(fmt.Sprintf("%.0f%% (%s)", report.Scramble, report.Level))

	ip.metricsContent.RemoveAll()
	for _, name := range []string{"displaced", "psnr", "mse"} {
		if value, ok := report.Metrics[name]; ok {
			ip.metricsContent.Add(createMetricWidget(name, value, ip.metricInfo[name]))
		}
	}
	ip.metricsContent.Refresh()
}

func createMetricWidget(name string, value float64, info metrics.MetricInfo) fyne.CanvasObject {
	var displayText string
	icon := theme.InfoIcon()

	switch name {
	case "psnr":
		if math.IsInf(value, 1) {
			displayText = "PSNR: identical"
			icon = theme.ConfirmIcon()
		} else {
			displayText = fmt.Sprintf("PSNR: %.2f dB", value)
		}
	case "mse":
		displayText = fmt.Sprintf("MSE: %.2f", value)
	case "displaced":
		displayText = fmt.Sprintf("Displaced: %.1f%%", value*100)
		if value > 0.9 {
			icon = theme.WarningIcon()
		}
	default:
		displayText = fmt.Sprintf("%s: %.3f", name, value)
	}

	row := container.NewHBox(widget.NewIcon(icon), widget.NewLabel(displayText))
	if info.Description != "" {
		hint := widget.NewLabelWithStyle(info.Description, fyne.TextAlignLeading, fyne.TextStyle{Italic: true})
		hint.Importance = widget.LowImportance
		row.Add(hint)
	}
	return row
}

func (ip *InfoPanel) Clear() {
	ip.currentReport = metrics.Report{}
	ip.metricsCard.SetSubTitle("")
	ip.metricsContent.RemoveAll()
	ip.metricsContent.Add(widget.NewLabel(metricsHint))
	ip.metricsContent.Refresh()
}
