package tui

const (
	headerRows = 1
	// minBodyRows keeps the panels visible in very short terminals.
	minBodyRows = 4
	// logsShare is the percentage of the width given to the activity log.
	logsShare = 60
	// metricsRows is the preferred height of the metrics panel.
	metricsRows = 6
)

// screen holds the terminal size and the space taken by the footer, which
// grows when the full help is shown.
type screen struct {
	width        int
	height       int
	footerHeight int
}

// panelSize is the outer size of one dashboard panel.
type panelSize struct {
	width, height int
}

// dashboardLayout is the size of every body panel. The log fills the left
// column; metrics and chart share the right one.
type dashboardLayout struct {
	logs    panelSize
	metrics panelSize
	chart   panelSize
}

func (s screen) ready() bool {
	return s.width > 0 && s.height > 0
}

func (s screen) layout() dashboardLayout {
	body := max(s.height-headerRows-max(s.footerHeight, 1), minBodyRows)
	left := s.width * logsShare / 100
	right := s.width - left
	top := min(metricsRows, body/2)
	return dashboardLayout{
		logs:    panelSize{left, body},
		metrics: panelSize{right, top},
		chart:   panelSize{right, body - top},
	}
}
