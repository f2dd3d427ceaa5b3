package lines

import "github.com/banshee-data/agnite/internal/agn"

// Rest wavelengths in Angstrom (air).
var transitions = map[string]EmissionLine{
	"Ne5":     {Key: "Ne5", RestWavelength: 3426.850, Label: "[Ne V]"},
	"O2":      {Key: "O2", RestWavelength: 3727.092, Label: "[O II]"},
	"Ne3":     {Key: "Ne3", RestWavelength: 3868.760, Label: "[Ne III]"},
	"Ca2K":    {Key: "Ca2K", RestWavelength: 3933.663, Label: "Ca II K"},
	"Ca2H":    {Key: "Ca2H", RestWavelength: 3968.468, Label: "Ca II H"},
	"H-delta": {Key: "H-delta", RestWavelength: 4101.742, Label: "Hδ"},
	"H-gamma": {Key: "H-gamma", RestWavelength: 4340.471, Label: "Hγ"},
	"O3":      {Key: "O3", RestWavelength: 4363.210, Label: "[O III]"},
	"He2":     {Key: "He2", RestWavelength: 4685.710, Label: "He II"},
	"H-beta":  {Key: "H-beta", RestWavelength: 4861.333, Label: "Hβ"},
	"O3a":     {Key: "O3a", RestWavelength: 4958.911, Label: "[O III]"},
	"O3b":     {Key: "O3b", RestWavelength: 5006.843, Label: "[O III]"},
	"Mgb":     {Key: "Mgb", RestWavelength: 5175.300, Label: "Mg I b"},
	"Cl3a":    {Key: "Cl3a", RestWavelength: 5517.709, Label: "[Cl III]"},
	"Cl3b":    {Key: "Cl3b", RestWavelength: 5537.873, Label: "[Cl III]"},
	"He1":     {Key: "He1", RestWavelength: 5875.624, Label: "He I"},
	"NaD":     {Key: "NaD", RestWavelength: 5891.583, Label: "Na I D"},
	"Fe7":     {Key: "Fe7", RestWavelength: 6087.000, Label: "[Fe VII]"},
	"O1":      {Key: "O1", RestWavelength: 6300.304, Label: "[O I]"},
	"N2a":     {Key: "N2a", RestWavelength: 6548.050, Label: "[N II]"},
	"H-alpha": {Key: "H-alpha", RestWavelength: 6562.819, Label: "Hα"},
	"N2b":     {Key: "N2b", RestWavelength: 6583.460, Label: "[N II]"},
	"S2a":     {Key: "S2a", RestWavelength: 6716.440, Label: "[S II]"},
	"S2":      {Key: "S2", RestWavelength: 6724.000, Label: "[S II]"},
	"S2b":     {Key: "S2b", RestWavelength: 6730.810, Label: "[S II]"},
}

// table builds one archetype's line set from transition keys; keys listed
// in right get their label drawn on the right of the marker.
func table(keys []string, right ...string) []EmissionLine {
	rightSet := make(map[string]bool, len(right))
	for _, k := range right {
		rightSet[k] = true
	}
	out := make([]EmissionLine, 0, len(keys))
	for _, k := range keys {
		l, ok := transitions[k]
		if !ok {
			panic("lines: unknown transition " + k)
		}
		if rightSet[k] {
			l.Side = Right
		}
		out = append(out, l)
	}
	return out
}

var catalog = map[agn.Archetype][]EmissionLine{
	agn.Blazar: table(
		[]string{"Ca2K", "Ca2H", "Mgb", "NaD"},
	),
	agn.RadioLoudQuasar: table(
		[]string{"H-gamma", "H-beta", "O3a", "O3b", "He1", "O1", "N2a", "H-alpha", "N2b", "S2a", "S2b"},
		"O3b", "S2b",
	),
	agn.BroadLineRadioGalaxy: table(
		[]string{"Ne3", "H-gamma", "H-beta", "O3a", "O3b", "O1", "H-alpha", "S2"},
		"O3b",
	),
	agn.NarrowLineRadioGalaxy: table(
		[]string{"O2", "Ne3", "H-beta", "O3a", "O3b", "O1", "N2a", "H-alpha", "S2"},
		"O3b", "H-alpha", "S2",
	),
	agn.Seyfert2: table(
		[]string{"Ne5", "O2", "Ne3", "He2", "H-beta", "O3a", "O3b", "Cl3a", "Cl3b", "O1", "N2a", "H-alpha", "N2b", "S2"},
		"O3b", "Cl3b",
	),
	agn.Seyfert1: table(
		[]string{"H-delta", "H-gamma", "He2", "H-beta", "O3a", "O3b", "He1", "Fe7", "O1", "H-alpha", "S2"},
		"O3b", "H-alpha",
	),
	agn.RadioQuietQuasar: table(
		[]string{"H-delta", "H-gamma", "O3", "H-beta", "O3a", "O3b", "H-alpha"},
		"O3",
	),
}
