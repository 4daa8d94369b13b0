package comfort

// DewPointPerception describes comfort by dew point.
type DewPointPerception string

const (
	DewPointDry                    DewPointPerception = "dry"
	DewPointVeryComfortable        DewPointPerception = "very_comfortable"
	DewPointComfortable            DewPointPerception = "comfortable"
	DewPointOkButHumid             DewPointPerception = "ok_but_humid"
	DewPointSomewhatUncomfortable  DewPointPerception = "somewhat_uncomfortable"
	DewPointQuiteUncomfortable     DewPointPerception = "quite_uncomfortable"
	DewPointExtremelyUncomfortable DewPointPerception = "extremely_uncomfortable"
	DewPointSeverelyHigh           DewPointPerception = "severely_high"
)

// FrostRisk is the four level ordinal frost risk.
type FrostRisk string

const (
	FrostRiskNone   FrostRisk = "no_risk"
	FrostRiskLow    FrostRisk = "unlikely"
	FrostRiskMedium FrostRisk = "probable"
	FrostRiskHigh   FrostRisk = "high"
)

// HumidexPerception describes comfort by humidex.
type HumidexPerception string

const (
	HumidexComfortable         HumidexPerception = "comfortable"
	HumidexNoticableDiscomfort HumidexPerception = "noticable_discomfort"
	HumidexEvidentDiscomfort   HumidexPerception = "evident_discomfort"
	HumidexGreatDiscomfort     HumidexPerception = "great_discomfort"
	HumidexDangerousDiscomfort HumidexPerception = "dangerous_discomfort"
	HumidexHeatStroke          HumidexPerception = "heat_stroke"
)

// RelativeStrainPerception describes comfort by the relative strain index.
type RelativeStrainPerception string

const (
	RelativeStrainOutsideRange          RelativeStrainPerception = "outside_calculable_range"
	RelativeStrainComfortable           RelativeStrainPerception = "comfortable"
	RelativeStrainSlightDiscomfort      RelativeStrainPerception = "slight_discomfort"
	RelativeStrainDiscomfort            RelativeStrainPerception = "discomfort"
	RelativeStrainSignificantDiscomfort RelativeStrainPerception = "significant_discomfort"
	RelativeStrainExtremeDiscomfort     RelativeStrainPerception = "extreme_discomfort"
)

// ScharlauPerception describes comfort by the summer or winter Scharlau
// index.
type ScharlauPerception string

const (
	ScharlauOutsideRange            ScharlauPerception = "outside_calculable_range"
	ScharlauComfortable             ScharlauPerception = "comfortable"
	ScharlauSlightlyUncomfortable   ScharlauPerception = "slightly_uncomfortable"
	ScharlauModeratlyUncomfortable  ScharlauPerception = "moderatly_uncomfortable"
	ScharlauHighlyUncomfortable     ScharlauPerception = "highly_uncomfortable"
)

// SummerSimmerPerception describes comfort by the summer simmer index.
type SummerSimmerPerception string

const (
	SimmerCool                        SummerSimmerPerception = "cool"
	SimmerSlightlyCool                SummerSimmerPerception = "slightly_cool"
	SimmerComfortable                 SummerSimmerPerception = "comfortable"
	SimmerSlightlyWarm                SummerSimmerPerception = "slightly_warm"
	SimmerIncreasingDiscomfort        SummerSimmerPerception = "increasing_discomfort"
	SimmerExtremelyWarm               SummerSimmerPerception = "extremely_warm"
	SimmerDangerOfHeatstroke          SummerSimmerPerception = "danger_of_heatstroke"
	SimmerExtremeDangerOfHeatstroke   SummerSimmerPerception = "extreme_danger_of_heatstroke"
	SimmerCirculatoryCollapseImminent SummerSimmerPerception = "circulatory_collapse_imminent"
)

// ThomsDiscomfortPerception describes the share of a population feeling
// discomfort per Thom's discomfort index.
type ThomsDiscomfortPerception string

const (
	ThomsNoDiscomfort ThomsDiscomfortPerception = "no_discomfort"
	ThomsLessThanHalf ThomsDiscomfortPerception = "less_than_half"
	ThomsMoreThanHalf ThomsDiscomfortPerception = "more_than_half"
	ThomsMost         ThomsDiscomfortPerception = "most"
	ThomsEveryone     ThomsDiscomfortPerception = "everyone"
	ThomsDangerous    ThomsDiscomfortPerception = "dangerous"
)

var (
	dewPointPerceptionOptions = []string{
		string(DewPointDry),
		string(DewPointVeryComfortable),
		string(DewPointComfortable),
		string(DewPointOkButHumid),
		string(DewPointSomewhatUncomfortable),
		string(DewPointQuiteUncomfortable),
		string(DewPointExtremelyUncomfortable),
		string(DewPointSeverelyHigh),
	}
	frostRiskOptions = []string{
		string(FrostRiskNone),
		string(FrostRiskLow),
		string(FrostRiskMedium),
		string(FrostRiskHigh),
	}
	humidexPerceptionOptions = []string{
		string(HumidexComfortable),
		string(HumidexNoticableDiscomfort),
		string(HumidexEvidentDiscomfort),
		string(HumidexGreatDiscomfort),
		string(HumidexDangerousDiscomfort),
		string(HumidexHeatStroke),
	}
	relativeStrainPerceptionOptions = []string{
		string(RelativeStrainOutsideRange),
		string(RelativeStrainComfortable),
		string(RelativeStrainSlightDiscomfort),
		string(RelativeStrainDiscomfort),
		string(RelativeStrainSignificantDiscomfort),
		string(RelativeStrainExtremeDiscomfort),
	}
	scharlauPerceptionOptions = []string{
		string(ScharlauOutsideRange),
		string(ScharlauComfortable),
		string(ScharlauSlightlyUncomfortable),
		string(ScharlauModeratlyUncomfortable),
		string(ScharlauHighlyUncomfortable),
	}
	summerSimmerPerceptionOptions = []string{
		string(SimmerCool),
		string(SimmerSlightlyCool),
		string(SimmerComfortable),
		string(SimmerSlightlyWarm),
		string(SimmerIncreasingDiscomfort),
		string(SimmerExtremelyWarm),
		string(SimmerDangerOfHeatstroke),
		string(SimmerExtremeDangerOfHeatstroke),
		string(SimmerCirculatoryCollapseImminent),
	}
	thomsDiscomfortPerceptionOptions = []string{
		string(ThomsNoDiscomfort),
		string(ThomsLessThanHalf),
		string(ThomsMoreThanHalf),
		string(ThomsMost),
		string(ThomsEveryone),
		string(ThomsDangerous),
	}
)

// PerceiveDewPoint thresholds a dew point in Celsius.
func PerceiveDewPoint(dewPoint float64) DewPointPerception {
	switch {
	case dewPoint < 10:
		return DewPointDry
	case dewPoint < 13:
		return DewPointVeryComfortable
	case dewPoint < 16:
		return DewPointComfortable
	case dewPoint < 18:
		return DewPointOkButHumid
	case dewPoint < 21:
		return DewPointSomewhatUncomfortable
	case dewPoint < 24:
		return DewPointQuiteUncomfortable
	case dewPoint < 26:
		return DewPointExtremelyUncomfortable
	default:
		return DewPointSeverelyHigh
	}
}

// frostRiskHumidityThreshold separates the unlikely and high risk levels
// in g/m³ of absolute humidity.
const frostRiskHumidityThreshold = 2.8

// PerceiveFrostRisk thresholds temperature, frost point and absolute
// humidity into the four risk levels.
func PerceiveFrostRisk(temperature, frostPoint, absoluteHumidity float64) FrostRisk {
	switch {
	case temperature <= 1 && frostPoint <= 0:
		if absoluteHumidity <= frostRiskHumidityThreshold {
			return FrostRiskLow
		}

		return FrostRiskHigh
	case temperature <= 4 && frostPoint <= 0.5 && absoluteHumidity > frostRiskHumidityThreshold:
		return FrostRiskMedium
	default:
		return FrostRiskNone
	}
}

// PerceiveHumidex thresholds a humidex value.
func PerceiveHumidex(humidex float64) HumidexPerception {
	switch {
	case humidex > 54:
		return HumidexHeatStroke
	case humidex >= 45:
		return HumidexDangerousDiscomfort
	case humidex >= 40:
		return HumidexGreatDiscomfort
	case humidex >= 35:
		return HumidexEvidentDiscomfort
	case humidex >= 30:
		return HumidexNoticableDiscomfort
	default:
		return HumidexComfortable
	}
}

// PerceiveRelativeStrain thresholds the relative strain index. The index
// is only validated for 26..35°C; outside that range the perception is
// outside_calculable_range regardless of the index value.
func PerceiveRelativeStrain(temperature, rsi float64) RelativeStrainPerception {
	switch {
	case temperature < 26 || temperature > 35:
		return RelativeStrainOutsideRange
	case rsi >= 0.45:
		return RelativeStrainExtremeDiscomfort
	case rsi >= 0.35:
		return RelativeStrainSignificantDiscomfort
	case rsi >= 0.25:
		return RelativeStrainDiscomfort
	case rsi >= 0.15:
		return RelativeStrainSlightDiscomfort
	default:
		return RelativeStrainComfortable
	}
}

// PerceiveSummerScharlau thresholds the summer Scharlau index, valid for
// 17..39°C and humidity of at least 30%.
func PerceiveSummerScharlau(temperature, humidity, index float64) ScharlauPerception {
	if temperature < 17 || temperature > 39 || humidity < 30 {
		return ScharlauOutsideRange
	}

	return perceiveScharlau(index)
}

// PerceiveWinterScharlau thresholds the winter Scharlau index, valid for
// -5..6°C and humidity of at least 40%.
func PerceiveWinterScharlau(temperature, humidity, index float64) ScharlauPerception {
	if temperature < -5 || temperature > 6 || humidity < 40 {
		return ScharlauOutsideRange
	}

	return perceiveScharlau(index)
}

func perceiveScharlau(index float64) ScharlauPerception {
	switch {
	case index <= -3:
		return ScharlauHighlyUncomfortable
	case index <= -1:
		return ScharlauModeratlyUncomfortable
	case index < 0:
		return ScharlauSlightlyUncomfortable
	default:
		return ScharlauComfortable
	}
}

// PerceiveSummerSimmer thresholds a summer simmer index in Celsius.
func PerceiveSummerSimmer(si float64) SummerSimmerPerception {
	switch {
	case si < 21.1:
		return SimmerCool
	case si < 25.0:
		return SimmerSlightlyCool
	case si < 28.3:
		return SimmerComfortable
	case si < 32.8:
		return SimmerSlightlyWarm
	case si < 37.8:
		return SimmerIncreasingDiscomfort
	case si < 44.4:
		return SimmerExtremelyWarm
	case si < 51.7:
		return SimmerDangerOfHeatstroke
	case si < 65.6:
		return SimmerExtremeDangerOfHeatstroke
	default:
		return SimmerCirculatoryCollapseImminent
	}
}

// PerceiveThomsDiscomfort thresholds Thom's discomfort index.
func PerceiveThomsDiscomfort(tdi float64) ThomsDiscomfortPerception {
	switch {
	case tdi >= 32:
		return ThomsDangerous
	case tdi >= 29:
		return ThomsEveryone
	case tdi >= 27:
		return ThomsMost
	case tdi >= 24:
		return ThomsMoreThanHalf
	case tdi >= 21:
		return ThomsLessThanHalf
	default:
		return ThomsNoDiscomfort
	}
}
