package shape

// SVG text-anchor values for the anchor letters of the scene format.
var anchorNames = map[byte]string{
	'i': "start",
	'm': "middle",
	'f': "end",
}

// AnchorName is the SVG text-anchor for the text. Unknown anchors start.
func (t *Text) AnchorName() string {
	if name, ok := anchorNames[t.Anchor]; ok {
		return name
	}
	return "start"
}

// AnchorFromName is the inverse of AnchorName.
func AnchorFromName(name string) byte {
	for anchor, n := range anchorNames {
		if n == name {
			return anchor
		}
	}
	return 'i'
}

var weightNames = map[string]string{
	"n":  "normal",
	"b":  "bold",
	"b+": "bolder",
	"l":  "lighter",
}

// WeightName is the SVG font-weight for the style. Unknown weights are normal.
func (s TextStyle) WeightName() string {
	if name, ok := weightNames[s.Weight]; ok {
		return name
	}
	return "normal"
}

func WeightFromName(name string) string {
	for weight, n := range weightNames {
		if n == name {
			return weight
		}
	}
	return "n"
}
