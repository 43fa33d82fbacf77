package pipeline

import "github.com/sells-group/adscout/internal/model"

type jobStructurer struct{}

func (jobStructurer) Structure(ev Evidence, out *model.ScrapedData) {
	out.CompanyInfo["company_name"] = ev.Subject.Name

	if culture := ev.matching("culture"); len(culture) > 0 {
		out.CompanyCulture = &model.CultureInfo{
			Highlights: culture[0].Answer,
			Reviews:    ExtractLines(culture[0].Answer, maxReviews),
		}
	}
	if balance := ev.matching("balance"); len(balance) > 0 {
		out.WorkLifeBalance = &model.BalanceInfo{
			Rating:   balance[0].Answer,
			Feedback: ExtractLines(balance[0].Answer, maxReviews),
		}
	}
	if benefits := ev.matching("benefit", "compensation"); len(benefits) > 0 {
		out.BenefitsInfo = &model.BenefitsInfo{
			Salary: truncateRunes(benefits[0].Answer, salaryRunes, "..."),
			Perks:  ExtractLines(benefits[0].Answer, maxPerks),
		}
	}
}
