package responder

import "github.com/sunjohabdurazck/EcoHabit-sub001/internal/service/intent"

// DefaultBank returns the static reply templates keyed by intent. Every
// deployment must keep a non-empty "default" bank; unknown intents fall back
// to it.
func DefaultBank() map[string][]string {
	return map[string][]string{
		intent.Greeting: {
			"Hello! Ready to make today a little greener?",
			"Hey there! What eco-habit are we working on today?",
			"Welcome back! Ask me anything about living more sustainably.",
		},
		intent.CarbonFootprint: {
			"Cutting your carbon footprint starts with the big three: how you travel, how you heat your home, and what you eat. Swapping one weekly car trip for transit or a bike ride is a great first step.",
			"A typical household can trim around 20% of its CO2 emissions with low-effort changes: LED bulbs, a slightly lower thermostat, and combining errands into one trip.",
			"Try tracking one week of travel and energy use in the app. Once you can see where the emissions come from, offsetting and reducing get much easier.",
		},
		intent.EnergySaving: {
			"Heating and cooling are usually the biggest share of a power bill. Lowering the thermostat by one degree can save about 3% of heating energy.",
			"Unplug chargers and idle appliances, or put them on a switchable power strip. Standby power adds up to a surprising amount over a year.",
			"If you can, run dishwashers and laundry at off-peak hours and always with full loads. Your appliances will use noticeably less energy per wash.",
		},
		intent.Recycling: {
			"Rinse containers before recycling and keep soft plastics out of the bin unless your area collects them separately. Contamination is the main reason batches get landfilled.",
			"Composting food scraps can cut your household waste by a third. Even a small countertop bin makes a difference.",
			"When in doubt, check your local recycling guide. Rules differ a lot between areas, and one wrong item can spoil a whole batch.",
		},
		intent.Transportation: {
			"For trips under two miles, walking or cycling beats the car on both emissions and time spent parking. Try it for one regular errand this week.",
			"Carpooling twice a week can cut your commute emissions nearly in half. The app can log shared rides as eco activities.",
			"If you're considering a new car, an electric or hybrid model pays off fastest when most of your driving is short urban trips.",
		},
		intent.WaterConservation: {
			"A five-minute shower uses around 40 liters less water than a ten-minute one. A simple shower timer is the cheapest water-saving gadget there is.",
			"Fixing a dripping tap can save thousands of liters a year. It is usually a one-washer repair.",
			"Collecting rainwater for garden use keeps treated drinking water where it belongs. Even a small barrel helps through the summer.",
		},
		intent.FoodSustainability: {
			"One or two meat-free days a week is among the highest-impact food changes you can make. Beans and lentils are cheap, filling stand-ins.",
			"Local and seasonal produce usually travels a fraction of the distance of imported goods. Farmers' markets are a good place to start.",
			"Plan meals before shopping: most household food waste comes from buying more perishables than the week actually needs.",
		},
		intent.DataAnalysis: {
			"Your activity log is the best place to spot trends. Look at which weeks scored highest and what you did differently.",
			"Compare this month's logged activities against last month's to see where your habits are sticking. Streaks are a strong sign a habit has settled in.",
			"I can summarize this conversation or you can open the progress charts for a full breakdown of your logged activities.",
		},
		intent.TipsRequest: {
			"Here's one to try today: switch your next hot wash to 30 degrees. Modern detergents work fine in cold water and you save real energy.",
			"Quick win: carry a reusable bottle and coffee cup this week and log each use. Small repeated actions build the strongest habits.",
			"Pick one room and hunt for standby power: TVs, consoles, chargers. Plugging them into one switchable strip is an easy permanent saving.",
		},
		intent.Badges: {
			"Badges unlock as you log activities: streaks, milestones, and category challenges all count. Check the badge gallery to see what's within reach.",
			"You earn progress toward badges every time you log an eco activity. Consistency beats intensity: daily small actions finish most badges fastest.",
		},
		intent.Thanks: {
			"You're welcome! Every small step counts.",
			"Glad to help! Keep up the good habits.",
			"Anytime! Come back whenever you want another idea.",
		},
		intent.Goodbye: {
			"Goodbye! Keep those green habits going.",
			"See you next time! Don't forget to log today's activities.",
			"Take care! The planet thanks you for the effort.",
		},
		intent.Default: {
			"I'm your sustainability assistant. Ask me about saving energy, cutting waste, greener travel, or your progress so far.",
			"I can help with eco-friendly habits: try asking about your carbon footprint, recycling, or energy saving tips.",
			"Not sure I caught that. I know about topics like energy, water, recycling, food, and transport. What would you like to explore?",
		},
	}
}
