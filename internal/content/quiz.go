package content

// quizCatalog keys questions by language, then level. Levels unlock in order;
// a perfect score on level N unlocks N+1.
var quizCatalog = map[string]map[int][]QuizQuestion{
	"en": {
		1: {
			{
				Prompt: "Which sign most clearly indicates a phishing email?",
				Options: []string{
					"A) Personalized greeting with your full name",
					"B) Urgent demand to click a link or your account will be blocked",
					"C) A professional-looking signature",
					"D) Attachment labeled as invoice",
				},
				Answer: 1,
			},
			{
				Prompt: "Safe approach when a friend asks for money online?",
				Options: []string{
					"A) Send funds immediately to maintain trust",
					"B) Transfer to the card number sent in the chat",
					"C) Verify via an independent channel before sending money",
					"D) Save the card for future transfers",
				},
				Answer: 2,
			},
			{
				Prompt: "Suspicious SMS link received - best action?",
				Options: []string{
					"A) Open it if the branding looks genuine",
					"B) Share with friends to double-check",
					"C) Contact official bank support to verify",
					"D) Visit it in incognito mode",
				},
				Answer: 2,
			},
		},
		2: {
			{
				Prompt: "How do you secure mobile banking on a new phone?",
				Options: []string{
					"A) Enable auto-fill passwords in the browser",
					"B) Activate biometrics, 2FA, and remove risky apps",
					"C) Install the APK from a third-party website",
					"D) Disable screen lock for quicker access",
				},
				Answer: 1,
			},
			{
				Prompt: "Response to an unexpected login push notification?",
				Options: []string{
					"A) Ignore if the transaction amount is small",
					"B) Tap approve to prevent account freeze",
					"C) Change password immediately and call the bank",
					"D) Post it in a community forum",
				},
				Answer: 2,
			},
			{
				Prompt: "Proper storage for emergency 2FA backup codes?",
				Options: []string{
					"A) Email them to yourself",
					"B) Keep them in phone notes",
					"C) Store inside an encrypted password manager",
					"D) Print and carry in your wallet",
				},
				Answer: 2,
			},
		},
		3: {
			{
				Prompt: "Detecting caller ID spoofing from a 'bank' caller?",
				Options: []string{
					"A) Genuine calls always match the bank number exactly",
					"B) Hang up and dial the number printed on your bank card",
					"C) Ask the caller to tell your middle name",
					"D) Request a badge photo",
				},
				Answer: 1,
			},
			{
				Prompt: "First step after ransomware infects your PC?",
				Options: []string{
					"A) Pay the ransom to get files back quickly",
					"B) Connect a drive to back up remaining data",
					"C) Disconnect from networks and alert IT/bank",
					"D) Run a quick system restart",
				},
				Answer: 2,
			},
			{
				Prompt: "Validating a high-return investment pitch?",
				Options: []string{
					"A) Trust screenshots shared in a chat",
					"B) Test by sending a small amount",
					"C) Verify licenses with the regulator and consult your bank",
					"D) Agree if returns beat fixed deposits",
				},
				Answer: 2,
			},
		},
	},
}
