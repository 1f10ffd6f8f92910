package theme

import (
	"sort"
	"strings"

	"github.com/fastygo/todo/internal/countdown"
)

const DefaultName = "light"

// Palette maps each display status to a background colour.
type Palette struct {
	Name         string `json:"name"`
	Completed    string `json:"completed"`
	Expired      string `json:"expired"`
	NearDeadline string `json:"near_deadline"`
	Normal       string `json:"normal"`
	Invalid      string `json:"invalid"`
}

var (
	Light = Palette{
		Name:         "light",
		Completed:    "#3CB371",
		Expired:      "#63666A",
		NearDeadline: "#E9967A",
		Normal:       "#E9967A",
		Invalid:      "#B0B0B0",
	}
	Dark = Palette{
		Name:         "dark",
		Completed:    "#2E7D4F",
		Expired:      "#3A3C40",
		NearDeadline: "#C8553D",
		Normal:       "#8C5A46",
		Invalid:      "#5A5A5A",
	}
)

var palettes = map[string]Palette{
	Light.Name: Light,
	Dark.Name:  Dark,
}

// Lookup finds a palette by case-insensitive name.
func Lookup(name string) (Palette, bool) {
	p, ok := palettes[strings.ToLower(strings.TrimSpace(name))]
	return p, ok
}

// Names lists the available palettes.
func Names() []string {
	names := make([]string, 0, len(palettes))
	for name := range palettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Color returns the colour for a status, falling back to Normal.
func (p Palette) Color(status countdown.Status) string {
	switch status {
	case countdown.StatusCompleted:
		return p.Completed
	case countdown.StatusExpired:
		return p.Expired
	case countdown.StatusNearDeadline:
		return p.NearDeadline
	case countdown.StatusInvalid:
		return p.Invalid
	default:
		return p.Normal
	}
}
