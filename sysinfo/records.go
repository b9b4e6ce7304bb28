package sysinfo

import (
	"fmt"
	"strings"

	"clock/config"

	"github.com/mattn/go-runewidth"
)

// ipPadding blanks out the tail of a previously longer address.
const ipPadding = "         "

// Record is one line of the info panel.
type Record struct {
	Label string
	Value string
}

// String renders the record as it is drawn.
func (r Record) String() string { return r.Label + r.Value }

type infoLabels struct {
	os, release, arch, runtime, processor, ip string
}

var labels = map[string]infoLabels{
	config.LanguageRU: {
		os:        "ОС: ",
		release:   "Версия ОС: ",
		arch:      "Архитектура: ",
		runtime:   "Go: ",
		processor: "Процессор: ",
		ip:        "IP-адрес: ",
	},
	config.LanguageEN: {
		os:        "OS: ",
		release:   "OS Version: ",
		arch:      "Architecture: ",
		runtime:   "Go: ",
		processor: "Processor: ",
		ip:        "IP address: ",
	},
}

// Records formats id for the panel: the user@host line, a rule of the same
// width, then one labelled line per field. Unknown languages use Russian.
func Records(id Identity, language string) []Record {
	l, ok := labels[config.VerifyLanguage(language)]
	if !ok {
		l = labels[config.LanguageRU]
	}
	v := func(s string) string { return Verify(s, DefaultMaxLength) }

	ident := fmt.Sprintf("%s@%s", v(id.User), v(id.Host))
	rule := strings.Repeat("─", runewidth.StringWidth(ident))

	return []Record{
		{Value: ident},
		{Value: rule},
		{Label: l.os, Value: v(id.System)},
		{Label: l.release, Value: v(id.Release)},
		{Label: l.arch, Value: fmt.Sprintf("%s, %s", v(id.Architecture), v(id.Machine))},
		{Label: l.runtime, Value: v(id.Runtime)},
		{Label: l.processor, Value: v(id.Processor)},
		{Label: l.ip, Value: v(id.IP) + ipPadding},
	}
}

// Lines renders records in order.
func Lines(records []Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.String()
	}
	return out
}
