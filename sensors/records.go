package sensors

import (
	"fmt"
	"strings"

	"clock/config"
	"clock/glyph"
)

// RuleWidth is the width of the rule above the temperature lines.
const RuleWidth = 26

// Record is one line of the temperature panel.
type Record struct {
	Label string
	Value string
}

func (r Record) String() string { return r.Label + r.Value }

var componentLabels = map[string]map[string]string{
	config.LanguageRU: {
		CPU:         "Температура ЦПУ: ",
		GPU:         "Температура ГПУ: ",
		RAM:         "Температура ОЗУ: ",
		Storage:     "Тмп. накопителя: ",
		Motherboard: "Тмп. мат. платы: ",
	},
	config.LanguageEN: {
		CPU:         "CPU temperature: ",
		GPU:         "GPU temperature: ",
		RAM:         "RAM temperature: ",
		Storage:     "Storage t.     : ",
		Motherboard: "Motherboard t. : ",
	},
}

var averageLabels = map[string]string{
	config.LanguageRU: "Средняя тмп.   : ",
	config.LanguageEN: "Average tmp.   : ",
}

// Records formats readings and their average for the panel.
func Records(readings []Reading, language string) []Record {
	language = config.VerifyLanguage(language)
	labels := componentLabels[language]

	out := make([]Record, 0, len(readings)+2)
	out = append(out, Record{Value: strings.Repeat("─", RuleWidth)})
	for _, r := range readings {
		label, ok := labels[r.Component]
		if !ok {
			label = r.Component + ": "
		}
		out = append(out, Record{Label: label, Value: FormatCelsius(r.Celsius, r.Present)})
	}
	avg, ok := Average(readings)
	out = append(out, Record{Label: averageLabels[language], Value: FormatCelsius(avg, ok)})
	return out
}

// FormatCelsius renders "47.3°C", or the placeholder when absent.
func FormatCelsius(v float64, present bool) string {
	if !present {
		return glyph.Placeholder
	}
	return fmt.Sprintf("%.1f°C", v)
}

// Lines renders records in order.
func Lines(records []Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.String()
	}
	return out
}
