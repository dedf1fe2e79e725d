package widgets

import "strconv"

// Control describes one input for rendering
type Control struct {
	Name    string   `json:"name"`
	Label   string   `json:"label"`
	Kind    Kind     `json:"kind"`
	Section Section  `json:"section"`
	Min     float64  `json:"min"`
	Max     float64  `json:"max"`
	Step    float64  `json:"step"`
	Value   string   `json:"value"`
	Options []string `json:"options,omitempty"`
	Checked bool     `json:"checked,omitempty"`
}

// Controls describes every input, populated with the values in s, in page order
func Controls(s State) []Control {
	values := s.Query()
	var out []Control

	add := func(section Section) {
		for _, sl := range sliders {
			if sl.section != section {
				continue
			}
			out = append(out, Control{
				Name: sl.name, Label: sl.label, Kind: Slider, Section: section,
				Min: sl.min, Max: sl.max, Step: sl.step,
				Value: values.Get(sl.name),
			})
		}
		for _, sb := range selects {
			if sb.section != section {
				continue
			}
			out = append(out, Control{
				Name: sb.name, Label: sb.label, Kind: Select, Section: section,
				Value:   values.Get(sb.name),
				Options: append([]string(nil), sb.options...),
			})
		}
		for _, cb := range checkboxes {
			if cb.section != section {
				continue
			}
			checked := values.Get(cb.name) != ""
			out = append(out, Control{
				Name: cb.name, Label: cb.label, Kind: Checkbox, Section: section,
				Value:   strconv.FormatBool(checked),
				Checked: checked,
			})
		}
	}

	add(SectionTaxi)
	add(SectionChurn)
	add(SectionEngagement)
	return out
}

// BySection filters controls to one section
func BySection(controls []Control, section Section) []Control {
	var out []Control
	for _, c := range controls {
		if c.Section == section {
			out = append(out, c)
		}
	}
	return out
}
