package intent

// Intent labels recognized by the assistant.
const (
	Greeting           = "greeting"
	CarbonFootprint    = "carbon_footprint"
	EnergySaving       = "energy_saving"
	Recycling          = "recycling"
	Transportation     = "transportation"
	WaterConservation  = "water_conservation"
	FoodSustainability = "food_sustainability"
	DataAnalysis       = "data_analysis"
	TipsRequest        = "tips_request"
	Badges             = "badges"
	Thanks             = "thanks"
	Goodbye            = "goodbye"
)

// DefaultRules returns the static rule set in priority order. The "default"
// intent carries no pattern and is produced only when nothing here matches.
func DefaultRules() []Rule {
	return []Rule{
		{Intent: Greeting, Pattern: "hello|hi there|hey|good morning|good afternoon|good evening|greetings"},
		{Intent: CarbonFootprint, Pattern: "carbon|footprint|co2|emission|offset"},
		{Intent: EnergySaving, Pattern: "energy|electricity|power bill|appliance|thermostat|insulation|solar"},
		{Intent: Recycling, Pattern: "recycl|compost|plastic|landfill|waste|trash"},
		{Intent: Transportation, Pattern: "commute|transport|car|bike|bicycle|bus|train|electric vehicle|ev charging"},
		{Intent: WaterConservation, Pattern: "water|shower|irrigation|rainwater|leak"},
		{Intent: FoodSustainability, Pattern: "food|diet|vegetarian|vegan|organic|local produce|meat"},
		{Intent: DataAnalysis, Pattern: "analy|statistic|progress|chart|trend|report|data"},
		{Intent: TipsRequest, Pattern: "tip|advice|suggest|recommend|how can i|help me"},
		{Intent: Badges, Pattern: "badge|achievement|reward|streak|points"},
		{Intent: Thanks, Pattern: "thank|thx|appreciate"},
		{Intent: Goodbye, Pattern: "bye|goodbye|see you|farewell"},
	}
}
