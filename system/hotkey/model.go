package hotkey

import (
	"io/ioutil"
	"strings"
)

// Model identifies the platform variant. A handful of event codes behave
// differently across variants, so the dispatcher takes the model as an
// explicit input instead of probing DMI on every event.
type Model int

// Defines the known platform variants
const (
	ModelUnknown Model = iota
	ModelEvo
	ModelCreative
	ModelExecutive
	ModelHero
	ModelTitan
)

func (m Model) String() string {
	return [...]string{"unknown", "evo", "creative", "executive", "hero", "titan"}[m]
}

// ModelFromString maps a configuration value to a Model. Unrecognized
// values map to ModelUnknown.
func ModelFromString(s string) Model {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "evo":
		return ModelEvo
	case "creative":
		return ModelCreative
	case "executive":
		return ModelExecutive
	case "hero":
		return ModelHero
	case "titan":
		return ModelTitan
	default:
		return ModelUnknown
	}
}

const dmiProductNamePath = "/sys/class/dmi/id/product_name"

// DetectModel reads the DMI product name and maps it to a Model.
// ModelUnknown disables every model-gated behavior, which is the safe
// default on hardware we have not seen.
func DetectModel() Model {
	b, err := ioutil.ReadFile(dmiProductNamePath)
	if err != nil {
		return ModelUnknown
	}
	name := strings.ToLower(string(b))
	switch {
	case strings.Contains(name, "evo"):
		return ModelEvo
	case strings.Contains(name, "creative"):
		return ModelCreative
	case strings.Contains(name, "executive"):
		return ModelExecutive
	case strings.Contains(name, "hero"):
		return ModelHero
	case strings.Contains(name, "titan"):
		return ModelTitan
	default:
		return ModelUnknown
	}
}
