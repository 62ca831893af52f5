package tui

// EventChannelBuffer sizes the channel carrying monitor results into the
// event loop.
const EventChannelBuffer = 100

// ChartHeight is the number of terminal rows given to the waveform chart,
// time ruler included.
const ChartHeight = 14

// MinChartWidth is the narrowest terminal the chart still draws at.
const MinChartWidth = 24
