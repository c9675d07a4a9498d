package domain

// StationGroup is one scan location and its sub-stations, as offered to
// the scan form datalists.
type StationGroup struct {
	Area     string   `json:"area"`
	SubAreas []string `json:"sub_areas"`
}

// StationCatalog lists every scannable location on the shop floor.
// Order matters for display.
var StationCatalog = []StationGroup{
	{Area: AreaOffice, SubAreas: []string{SubWrittenUp, SubIssuedFactory, SubFactoryComplete}},
	{Area: "FIRE-DOORS", SubAreas: []string{"BEAM-SAW", "WALL-SAW", "PANEL-SAW", "COLD-PRESS", "HOT-PRESS", "SPINDLE-MOULDER", "UPCUT-SAW", "FRAMING", "HAND-TOOLS"}},
	{Area: "DET", SubAreas: []string{"DET-MACHINE", "HAND-TOOLS"}},
	{Area: "FACTORY-8", SubAreas: []string{"CNC", "EDGE-RUNNER", "HAND-TOOLS", "UPCUT-SAW"}},
	{Area: "NON-RATED", SubAreas: []string{"BEAM-SAW", "WALL-SAW", "PANEL-SAW", "COLD-PRESS", "UPCUT-SAW", "FRAMING", "HAND-TOOLS"}},
	{Area: AreaDespatch, SubAreas: []string{SubWrapped, SubSent}},
}
