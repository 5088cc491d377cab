package content

// scenarioCatalog keys scenarios by language. Graphs are acyclic; terminal
// nodes carry the walk outcome. Rewards are granted only for success endings.
var scenarioCatalog = map[string][]Scenario{
	"en": {
		{
			ID:     "phishing_link",
			Title:  "The Urgent Bank Email",
			Intro:  "An email from 'your bank' says your account will be blocked in 2 hours unless you verify your details.",
			Reward: 30,
			Badge:  "phishing_hero",
			Start:  "inbox",
			Nodes: map[string]Node{
				"inbox": {
					Text:     "The email looks official: bank logo, your first name, and a big red VERIFY NOW button. What do you do?",
					Progress: 0.2,
					Options: []Option{
						{
							Label:    "Click VERIFY NOW before the deadline",
							Feedback: "The button leads to a fake login page that harvests your credentials.",
							Impact:   ImpactDanger,
							Next:     "fake_login",
						},
						{
							Label:    "Check the sender address carefully",
							Feedback: "Good instinct. The address is security@bank-alerts-247.com, not your bank's domain.",
							Impact:   ImpactSafe,
							Next:     "sender_checked",
						},
						{
							Label:    "Forward it to friends asking if it's real",
							Feedback: "Spreading the link exposes more people to it.",
							Impact:   ImpactWarning,
							Next:     "sender_checked",
						},
					},
				},
				"fake_login": {
					Text:     "The page asks for your card number, PIN, and the SMS code you just received. It insists the code is 'for verification only'.",
					Progress: 0.6,
					Options: []Option{
						{
							Label:    "Enter everything - the deadline is close",
							Feedback: "The SMS code authorized a transfer from your account.",
							Impact:   ImpactDanger,
							Next:     "scammed",
						},
						{
							Label:    "Stop - real banks never ask for PIN and SMS codes",
							Feedback: "Exactly. You close the page before anything is sent.",
							Impact:   ImpactSafe,
							Next:     "sender_checked",
						},
					},
				},
				"sender_checked": {
					Text:     "You are fairly sure this is phishing. What's the right final step?",
					Progress: 0.8,
					Options: []Option{
						{
							Label:    "Delete the email and move on",
							Feedback: "Safe for you, but the campaign keeps running against others.",
							Impact:   ImpactWarning,
							Next:     "avoided",
						},
						{
							Label:    "Report it to your bank's fraud team, then delete it",
							Feedback: "Reporting helps the bank take the fake site down.",
							Impact:   ImpactReport,
							Next:     "avoided",
						},
					},
				},
				"scammed": {
					Terminal: true,
					Outcome:  OutcomeFail,
					Progress: 1.0,
					Text:     "Money left your account within minutes. Phishing pages copy bank branding perfectly - the sender domain and the request for codes are the tells.",
				},
				"avoided": {
					Terminal: true,
					Outcome:  OutcomeSuccess,
					Progress: 1.0,
					Text:     "You spotted the fake domain and kept your codes to yourself. The 'deadline' was pure pressure tactics.",
				},
			},
		},
		{
			ID:     "fake_call",
			Title:  "The Security Department Call",
			Intro:  "A caller introduces himself as the bank's security department: 'We detected a suspicious transfer from your account.'",
			Reward: 40,
			Badge:  "call_guard",
			Start:  "call_opening",
			Nodes: map[string]Node{
				"call_opening": {
					Text:     "The caller knows your full name and the last 4 digits of your card. He asks you to 'confirm your identity' to cancel the transfer.",
					Progress: 0.25,
					Options: []Option{
						{
							Label:    "Answer his questions - he already knows my details",
							Feedback: "Partial details are bought in bulk from data leaks; knowing them proves nothing.",
							Impact:   ImpactDanger,
							Next:     "identity_quiz",
						},
						{
							Label:    "Hang up and call the number on the back of your card",
							Feedback: "The official line confirms there is no suspicious transfer.",
							Impact:   ImpactSafe,
							Next:     "official_line",
						},
					},
				},
				"identity_quiz": {
					Text:     "He now says a 'secure vault account' has been prepared and you must move your money there immediately, staying on the line.",
					Progress: 0.6,
					Options: []Option{
						{
							Label:    "Transfer the money to the vault account",
							Feedback: "The 'vault' is the scammer's card. Banks never move money by phone instruction.",
							Impact:   ImpactDanger,
							Next:     "drained",
						},
						{
							Label:    "Refuse and hang up",
							Feedback: "Pressure to act while staying on the line is the core of this scam.",
							Impact:   ImpactSafe,
							Next:     "official_line",
						},
					},
				},
				"official_line": {
					Text:     "Your real bank confirms the call was fraudulent. The operator asks if you want to file a report about the number.",
					Progress: 0.85,
					Options: []Option{
						{
							Label:    "File the report",
							Feedback: "The number goes to the bank's block list.",
							Impact:   ImpactReport,
							Next:     "reported",
						},
						{
							Label:    "Skip it - nothing was lost",
							Feedback: "You are safe either way.",
							Impact:   ImpactWarning,
							Next:     "defended",
						},
					},
				},
				"drained": {
					Terminal: true,
					Outcome:  OutcomeFail,
					Progress: 1.0,
					Text:     "The 'vault account' belonged to the caller. No bank ever asks you to move money during a call.",
				},
				"defended": {
					Terminal: true,
					Outcome:  OutcomeSuccess,
					Progress: 1.0,
					Text:     "You broke the caller's script by hanging up and dialing the official number yourself.",
				},
				"reported": {
					Terminal: true,
					Outcome:  OutcomeReport,
					Progress: 1.0,
					Text:     "Report filed. The next person this number dials will be warned before picking up.",
				},
			},
		},
		{
			ID:     "marketplace_deal",
			Title:  "The Too-Good Marketplace Deal",
			Intro:  "A seller offers a phone at half price, but only if you pay today through a 'secure delivery service' link he sends.",
			Reward: 35,
			Badge:  "deal_detective",
			Start:  "offer",
			Nodes: map[string]Node{
				"offer": {
					Text:     "The link opens a page that looks like the marketplace's delivery service and asks for your full card details.",
					Progress: 0.3,
					Options: []Option{
						{
							Label:    "Pay on the page - the design matches the marketplace",
							Feedback: "The page is a clone hosted outside the marketplace; your card details go to the seller.",
							Impact:   ImpactDanger,
							Next:     "card_stolen",
						},
						{
							Label:    "Insist on paying inside the marketplace's own flow",
							Feedback: "The seller suddenly becomes evasive and pushy.",
							Impact:   ImpactSafe,
							Next:     "seller_pressure",
						},
					},
				},
				"seller_pressure": {
					Text:     "'The in-app payment has high fees, my link is the same thing,' the seller insists. 'Other buyers are waiting.'",
					Progress: 0.7,
					Options: []Option{
						{
							Label:    "Give in - you don't want to lose the deal",
							Feedback: "Urgency is manufactured; the other buyers do not exist.",
							Impact:   ImpactDanger,
							Next:     "card_stolen",
						},
						{
							Label:    "Walk away and report the listing",
							Feedback: "Off-platform payment demands are against marketplace rules for exactly this reason.",
							Impact:   ImpactReport,
							Next:     "listing_reported",
						},
					},
				},
				"card_stolen": {
					Terminal: true,
					Outcome:  OutcomeFail,
					Progress: 1.0,
					Text:     "Your card was charged far more than the 'discounted' price. Payments outside the platform have no buyer protection.",
				},
				"listing_reported": {
					Terminal: true,
					Outcome:  OutcomeSuccess,
					Progress: 1.0,
					Text:     "The listing was taken down. Half-price offers that demand off-platform payment are the oldest marketplace scam.",
				},
			},
		},
	},
}
