package intent

const (
	greeting = "Hi,\n\nThanks for reaching out."
	signoff  = "\n\nBest regards,\n[Your Name]"
)

// templates maps each intent to its fixed pair of reply drafts. Bracketed
// placeholders like [amount] and [date/time] are left for the user to fill.
var templates = map[Intent][2]string{
	Invoice: {
		greeting + " I've received your invoice and will review it shortly. Could you confirm the due date and any early payment discounts?" + signoff,
		greeting + " The invoice appears to be for [amount]. Please confirm the PO/reference and the billing period." + signoff,
	},
	Meeting: {
		greeting + " I'm available for a meeting. Does [date/time] work? If not, please share two alternate slots." + signoff,
		greeting + " Let's set an agenda so we can keep it efficient. Here are a few topics I propose: [topics]." + signoff,
	},
	Job: {
		greeting + " I'm interested in the role. I've attached my resume. Could you share the job description and next steps?" + signoff,
		greeting + " Thanks for considering me. I'm available for an interview on [dates]." + signoff,
	},
	Support: {
		greeting + " Sorry to hear about the issue. Could you share steps to reproduce, screenshots, and any error messages?" + signoff,
		greeting + " I've logged this for investigation. I'll follow up with an update by [timeframe]." + signoff,
	},
	Order: {
		greeting + " Please share your order number so I can check the status. I'll get back with tracking details." + signoff,
		greeting + " I'm checking with the fulfillment team. I'll update you as soon as I have the delivery ETA." + signoff,
	},
	Info: {
		greeting + " Here are the details: [summary/bullet points]. Let me know if you need more information." + signoff,
		greeting + " Could you clarify which part you'd like more detail on, so I can tailor the response?" + signoff,
	},
	Generic: {
		greeting + " I've read your email and will get back to you shortly with more details." + signoff,
		greeting + " Noted, thanks for the update. I'll follow up if I have any questions." + signoff,
	},
}

// Suggest returns exactly two reply drafts derived from the detected intent
func Suggest(text string) []string {
	drafts := templates[Detect(text)]
	return []string{drafts[0], drafts[1]}
}
