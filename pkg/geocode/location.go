package geocode

// Location is a normalized geocoding record. Every field is optional: a nil
// field was not provided upstream and is left out of JSON and YAML output.
type Location struct {
	Latitude    *float64 `json:"latitude,omitempty" yaml:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty" yaml:"longitude,omitempty"`
	City        *string  `json:"city,omitempty" yaml:"city,omitempty"`
	Region      *string  `json:"region,omitempty" yaml:"region,omitempty"`
	County      *string  `json:"county,omitempty" yaml:"county,omitempty"`
	Zipcode     *string  `json:"zipcode,omitempty" yaml:"zipcode,omitempty"`
	Country     *string  `json:"country,omitempty" yaml:"country,omitempty"`
	CountryCode *string  `json:"countryCode,omitempty" yaml:"countryCode,omitempty"`
	Locality    *string  `json:"locality,omitempty" yaml:"locality,omitempty"`
	Timezone    *string  `json:"timezone,omitempty" yaml:"timezone,omitempty"`
}

// Fields returns the present fields keyed by their output name.
func (l Location) Fields() map[string]any {
	out := make(map[string]any)
	for key, v := range map[string]*float64{
		"latitude":  l.Latitude,
		"longitude": l.Longitude,
	} {
		if v != nil {
			out[key] = *v
		}
	}
	for key, v := range map[string]*string{
		"city":        l.City,
		"region":      l.Region,
		"county":      l.County,
		"zipcode":     l.Zipcode,
		"country":     l.Country,
		"countryCode": l.CountryCode,
		"locality":    l.Locality,
		"timezone":    l.Timezone,
	} {
		if v != nil {
			out[key] = *v
		}
	}
	return out
}

// localhostLocation is the stub returned for reserved and local addresses.
func localhostLocation() Location {
	return Location{
		Locality: stringPtr("localhost"),
		Country:  stringPtr("localhost"),
	}
}

func stringPtr(s string) *string { return &s }
