package content

// Default returns the built-in catalog. Keys match the weak-topic labels
// present in the historical dataset plus the bare product types used as
// fallbacks. New topics are added here; there is no dynamic registration.
func Default() Catalog {
	return Catalog{
		"loan_closing_technique": {
			{
				Video:    "https://www.youtube.com/watch?v=loan_closing_video",
				Tip:      "Master the art of closing loan deals with these proven techniques.",
				NextStep: "Practice these closing questions with a colleague.",
			},
		},
		"insurance_objection_handling": {
			{
				Video:    "https://www.youtube.com/watch?v=insurance_objection_video",
				Tip:      "Learn to effectively handle common objections when selling insurance.",
				NextStep: "Role-play an objection scenario for an insurance product.",
			},
		},
		"credit_card_benefits_explaining": {
			{
				Video:    "https://www.youtube.com/watch?v=cc_benefits_video",
				Tip:      "Clearly articulate the unique benefits of our credit card offers.",
				NextStep: "List 3 key benefits for each credit card you offer.",
			},
		},
		"loan_application_process": {
			{
				Video:    "https://www.youtube.com/watch?v=loan_application_video",
				Tip:      "Guide clients smoothly through the loan application process.",
				NextStep: "Create a checklist for the loan application steps.",
			},
		},
		"insurance_policy_comparison": {
			{
				Video:    "https://www.youtube.com/watch?v=insurance_compare_video",
				Tip:      "Help clients compare insurance policies to find the best fit.",
				NextStep: "Compare two similar insurance policies and highlight differences.",
			},
		},
		"insurance_product_knowledge": {
			{
				Video:    "https://www.youtube.com/watch?v=insurance_knowledge_video",
				Tip:      "Deepen your understanding of our insurance product details.",
				NextStep: "Study the product brochure for a new insurance policy.",
			},
		},
		"credit_card_sales_pitch": {
			{
				Video:    "https://www.youtube.com/watch?v=cc_pitch_video",
				Tip:      "Craft a compelling sales pitch for credit cards.",
				NextStep: "Record yourself delivering a credit card sales pitch.",
			},
		},
		"loan_eligibility_criteria": {
			{
				Video:    "https://www.youtube.com/watch?v=loan_eligibility_video",
				Tip:      "Understand and explain loan eligibility criteria accurately.",
				NextStep: "Review the eligibility criteria for three different loan products.",
			},
		},
		"insurance_claim_process": {
			{
				Video:    "https://www.youtube.com/watch?v=insurance_claim_video",
				Tip:      "Assist clients efficiently through the insurance claim process.",
				NextStep: "Outline the steps for a typical insurance claim.",
			},
		},
		"loan_negotiation_skills": {
			{
				Video:    "https://www.youtube.com/watch?v=loan_negotiation_video",
				Tip:      "Improve your negotiation skills for loan terms and conditions.",
				NextStep: "Identify three negotiation points for a loan scenario.",
			},
		},
		DefaultKey: {
			{
				Video:    "https://www.youtube.com/watch?v=generic_sales_video",
				Tip:      "Always listen to your customer's needs first.",
				NextStep: "Practice active listening in your next conversation.",
			},
		},
	}
}
