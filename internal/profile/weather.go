package profile

// WeatherType labels a PV day by inferred sky condition, derived from the
// day's accumulated production relative to the rest of its season.
type WeatherType int

// Weather types ordered from lowest to highest accumulated production,
// matching the equal-width bins computed by the weather categorizer.
const (
	Rainy WeatherType = iota
	Cloudy
	PartiallyCloudy
	Sunny
)

// WeatherTypes lists all weather types from lowest to highest production.
var WeatherTypes = []WeatherType{Rainy, Cloudy, PartiallyCloudy, Sunny}

func (w WeatherType) String() string {
	switch w {
	case Rainy:
		return "rainy"
	case Cloudy:
		return "cloudy"
	case PartiallyCloudy:
		return "partially_cloudy"
	case Sunny:
		return "sunny"
	}
	return "unknown"
}
