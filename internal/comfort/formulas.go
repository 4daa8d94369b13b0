package comfort

import "math"

// Pure formulas mapping a (temperature °C, relative humidity %) pair to a
// derived quantity. No shared state; the Engine is the only caller and
// feeds them already validated, in-domain inputs.

// CelsiusToFahrenheit converts a temperature from Celsius to Fahrenheit.
func CelsiusToFahrenheit(c float64) float64 {
	return c*9/5 + 32
}

// FahrenheitToCelsius converts a temperature from Fahrenheit to Celsius.
func FahrenheitToCelsius(f float64) float64 {
	return (f - 32) * 5 / 9
}

// KelvinToCelsius converts a temperature from Kelvin to Celsius.
func KelvinToCelsius(k float64) float64 {
	return k - 273.15
}

// DewPoint computes the dew point in °C from the Goff-Gratch style
// saturation vapour pressure closed form.
// http://wahiduddin.net/calc/density_algorithms.htm
func DewPoint(temperature, humidity float64) float64 {
	a0 := 373.15 / (273.15 + temperature)
	sum := -7.90298 * (a0 - 1)
	sum += 5.02808 * math.Log10(a0)
	sum += -1.3816e-7 * (math.Pow(10, 11.344*(1-1/a0)) - 1)
	sum += 8.1328e-3 * (math.Pow(10, -3.49149*(a0-1)) - 1)
	sum += math.Log10(1013.246)

	vp := math.Pow(10, sum-3) * humidity
	td := math.Log(vp / 0.61078)

	return (241.88 * td) / (17.558 - td)
}

// HeatIndex computes the NOAA heat index in °C, including the Rothfusz
// regression and its low/high humidity adjustments.
// http://www.wpc.ncep.noaa.gov/html/heatindex_equation.shtml
func HeatIndex(temperature, humidity float64) float64 {
	fahrenheit := CelsiusToFahrenheit(temperature)

	hi := 0.5 * (fahrenheit + 61.0 + ((fahrenheit - 68.0) * 1.2) + (humidity * 0.094))

	if hi > 79 {
		hi = -42.379 + 2.04901523*fahrenheit
		hi += 10.14333127 * humidity
		hi += -0.22475541 * fahrenheit * humidity
		hi += -0.00683783 * fahrenheit * fahrenheit
		hi += -0.05481717 * humidity * humidity
		hi += 0.00122874 * fahrenheit * fahrenheit * humidity
		hi += 0.00085282 * fahrenheit * humidity * humidity
		hi += -0.00000199 * fahrenheit * fahrenheit * humidity * humidity
	}

	switch {
	case humidity < 13 && fahrenheit >= 80 && fahrenheit <= 112:
		hi -= ((13 - humidity) * 0.25) * math.Sqrt((17-math.Abs(fahrenheit-95))*0.05882)
	case humidity > 85 && fahrenheit >= 80 && fahrenheit <= 87:
		hi += ((humidity - 85) * 0.1) * ((87 - fahrenheit) * 0.2)
	}

	return FahrenheitToCelsius(hi)
}

// Humidex computes the humidex in °C from the temperature and an already
// computed dew point.
// https://simple.wikipedia.org/wiki/Humidex#Humidex_formula
func Humidex(temperature, dewPoint float64) float64 {
	e := 6.11 * math.Exp(5417.7530*((1/273.16)-(1/(dewPoint+273.15))))

	return temperature + 0.5555*(e-10.0)
}

// AbsoluteHumidity computes the absolute humidity in g/m³.
// https://carnotcycle.wordpress.com/2012/08/04/how-to-convert-relative-humidity-to-absolute-humidity/
func AbsoluteHumidity(temperature, humidity float64) float64 {
	absHumidity := 6.112
	absHumidity *= math.Exp((17.67 * temperature) / (243.5 + temperature))
	absHumidity *= humidity
	absHumidity *= 2.1674
	absHumidity /= temperature + 273.15

	return absHumidity
}

// FrostPoint computes the frost point in °C from the temperature and an
// already computed dew point.
// https://pon.fr/dzvents-alerte-givre-et-calcul-humidite-absolue/
func FrostPoint(temperature, dewPoint float64) float64 {
	t := temperature + 273.15
	td := dewPoint + 273.15

	return (td + (2671.02 / ((2954.61 / t) + 2.193665*math.Log(t) - 13.3448)) - t) - 273.15
}

// simmerIndexMinF is the lower validity bound of the summer simmer
// regression; below it the raw Fahrenheit temperature is used instead.
const simmerIndexMinF = 58.0

// SummerSimmerIndex computes the summer simmer index in °C.
// https://www.vcalc.com/wiki/rklarsen/Summer+Simmer+Index
func SummerSimmerIndex(temperature, humidity float64) float64 {
	fahrenheit := CelsiusToFahrenheit(temperature)

	si := 1.98*(fahrenheit-(0.55-(0.0055*humidity))*(fahrenheit-simmerIndexMinF)) - 56.83
	if fahrenheit < simmerIndexMinF {
		si = fahrenheit
	}

	return FahrenheitToCelsius(si)
}

// RelativeStrainIndex computes the relative strain index, rounded to two
// decimals as published.
func RelativeStrainIndex(temperature, humidity float64) float64 {
	vp := 6.112 * math.Pow(10, 7.5*temperature/(237.7+temperature))
	e := humidity * vp / 100

	return round2((temperature - 21) / (58 - e))
}

// SummerScharlauIndex computes the summer Scharlau index.
// https://revistadechimie.ro/pdf/16%20RUSANESCU%204%2019.pdf
func SummerScharlauIndex(temperature, humidity float64) float64 {
	tc := -17.089*math.Log(humidity) + 94.979

	return tc - temperature
}

// WinterScharlauIndex computes the winter Scharlau index.
func WinterScharlauIndex(temperature, humidity float64) float64 {
	tc := (0.0003 * humidity) + (0.1497 * humidity) - 7.7133

	return temperature - tc
}

// ThomsDiscomfortIndex computes Thom's discomfort index from the
// Stull wet-bulb approximation.
func ThomsDiscomfortIndex(temperature, humidity float64) float64 {
	tw := temperature*math.Atan(0.151977*math.Sqrt(humidity+8.313659)) +
		math.Atan(temperature+humidity) -
		math.Atan(humidity-1.676331) +
		math.Pow(0.00391838*humidity, 1.5)*math.Atan(0.023101*humidity) -
		4.686035

	return 0.5*tw + 0.5*temperature
}

// MoistAirEnthalpy computes the enthalpy of moist air in kJ/kg at
// standard sea-level pressure.
func MoistAirEnthalpy(temperature, humidity float64) float64 {
	const (
		patm   = 101325.0 // standard pressure at sea level, Pa
		cToK   = 273.15
		// ASHRAE fundamentals 2021 pg 1.5
		c1  = -5.6745359e03
		c2  = 6.3925247e00
		c3  = -9.6778430e-03
		c4  = 6.2215701e-07
		c5  = 2.0747825e-09
		c6  = -9.4840240e-13
		c7  = 4.1635019e00
		c8  = -5.8002206e03
		c9  = 1.3914993e00
		c10 = -4.8640239e-02
		c11 = 4.1764768e-05
		c12 = -1.4452093e-08
		c13 = 6.5459673e00
	)

	t := temperature + cToK

	// Saturation vapour pressure, eq 5 below freezing and eq 6 above.
	var pws float64
	if t < cToK {
		pws = math.Exp(c1/t + c2 + c3*t + c4*t*t + c5*t*t*t + c6*t*t*t*t + c7*math.Log(t))
	} else {
		pws = math.Exp(c8/t + c9 + c10*t + c11*t*t + c12*t*t*t + c13*math.Log(t))
	}

	// Vapour pressure (eq 22), humidity ratio (eq 20), enthalpy (eq 30).
	pw := humidity / 100 * pws
	w := 0.621945 * pw / (patm - pw)

	return 1.006*temperature + w*(2501+1.86*temperature)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
