package engine

import "encoding/json"

// Policy holds every watering threshold. All fields are required: the engine
// applies no implicit defaults, and a Policy that arrives over the wire with
// a key absent fails to unmarshal with a ConfigError naming the gaps.
type Policy struct {
	RainSkip      float64 `json:"rainSkip"`      // today's rain (in) that alone cancels watering
	RainSkip3     float64 `json:"rainSkip3"`     // trailing 3-day rain (in) that cancels watering
	HumidHigh     float64 `json:"humidHigh"`     // humidity (%) treated as saturated air
	WarmDay       float64 `json:"warmDay"`       // forward avg high (°F) below which humidity wins
	MaxYesPerWeek int     `json:"maxYesPerWeek"` // watering quota per ISO week
	MinGapDays    int     `json:"minGapDays"`    // two waterings must be more than this many days apart
	PopCaution    float64 `json:"popCaution"`    // precipitation probability (%) that defers watering
	QPFTinyToday  float64 `json:"qpfTinyToday"`  // trace QPF (in) for today in the convective test
	QPFTinyNext3  float64 `json:"qpfTinyNext3"`  // trace QPF (in) over the next 3 days
	HotWave       float64 `json:"hotWave"`       // forward avg high (°F) marking a multi-day heat wave
	DryTrigger3   float64 `json:"dryTrigger3"`   // trailing 3-day rain (in) still counted as dry
	HumidMod      float64 `json:"humidMod"`      // humidity (%) cap for the heat-wave override
	HotDay        float64 `json:"hotDay"`        // single-day high (°F) for the hot-and-dry override
	WindyMph      float64 `json:"windyMph"`      // wind (mph) worth a breezy callout
}

// policyKeys lists the wire names of every required threshold.
var policyKeys = []string{
	"rainSkip", "rainSkip3", "humidHigh", "warmDay", "maxYesPerWeek",
	"minGapDays", "popCaution", "qpfTinyToday", "qpfTinyNext3", "hotWave",
	"dryTrigger3", "humidMod", "hotDay", "windyMph",
}

// UnmarshalJSON rejects payloads with absent threshold keys rather than
// letting them silently decode to zero values.
func (p *Policy) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var missing []string
	for _, key := range policyKeys {
		if _, ok := raw[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return &ConfigError{Missing: missing}
	}

	type plain Policy
	var decoded plain
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*p = Policy(decoded)
	return nil
}

// Validate catches programmatically constructed policies that were never
// filled in. Every threshold except MinGapDays is meaningless at zero, so a
// zero there is treated as "never set". MinGapDays may legitimately be 0
// (only same-day duplicates forbidden) and is not checked.
func (p Policy) Validate() error {
	var missing []string
	check := func(key string, set bool) {
		if !set {
			missing = append(missing, key)
		}
	}

	check("rainSkip", p.RainSkip > 0)
	check("rainSkip3", p.RainSkip3 > 0)
	check("humidHigh", p.HumidHigh > 0)
	check("warmDay", p.WarmDay > 0)
	check("maxYesPerWeek", p.MaxYesPerWeek > 0)
	check("popCaution", p.PopCaution > 0)
	check("qpfTinyToday", p.QPFTinyToday > 0)
	check("qpfTinyNext3", p.QPFTinyNext3 > 0)
	check("hotWave", p.HotWave > 0)
	check("dryTrigger3", p.DryTrigger3 > 0)
	check("humidMod", p.HumidMod > 0)
	check("hotDay", p.HotDay > 0)
	check("windyMph", p.WindyMph > 0)

	if len(missing) > 0 {
		return &ConfigError{Missing: missing}
	}
	return nil
}
