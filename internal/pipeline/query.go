package pipeline

import (
	"fmt"
	"strings"

	"github.com/sells-group/adscout/internal/model"
)

// BuildQueries returns the primary research questions for a subject.
func BuildQueries(s model.Subject) model.QueryBatch {
	switch s.Type {
	case model.SubjectProduct:
		return productQueries(s)
	case model.SubjectEvent:
		return eventQueries(s.Name)
	case model.SubjectJob:
		return jobQueries(s.Name)
	default:
		return model.QueryBatch{
			"general_info": fmt.Sprintf("What are the key features and reviews of %s?", s.Name),
		}
	}
}

// CategoryQueries returns the market-level questions used when primary
// research comes back thin.
func CategoryQueries(category string) model.QueryBatch {
	return model.QueryBatch{
		"category_overview": fmt.Sprintf("Who are the key players and trends in the %s market?", category),
		"customer_needs":    fmt.Sprintf("What features and needs do customers want in %s products?", category),
	}
}

func productQueries(s model.Subject) model.QueryBatch {
	q := model.QueryBatch{}
	competitors := firstN(s.Competitors, model.MaxCompetitors)

	if len(competitors) > 0 {
		claims := "better features"
		if len(s.KeyMessages) > 0 {
			claims = strings.Join(firstN(s.KeyMessages, 2), ", ")
		}
		for i, c := range competitors {
			prefix := fmt.Sprintf("competitor_%d", i+1)
			q[prefix+"_overview"] = fmt.Sprintf("What are the key features, price, and specifications of %s?", c)
			q[prefix+"_weaknesses"] = fmt.Sprintf("What are the main customer complaints and problems with %s?", c)
			q[prefix+"_vs_us"] = fmt.Sprintf("How does %s compare to a product with %s?", c, claims)
		}
	} else {
		q["identify_competitors"] = fmt.Sprintf("Who are the top 2 competitors in the %s market and their prices?", s.Category)
		q["market_pain_points"] = fmt.Sprintf("What are common customer complaints in the %s market?", s.Category)
	}

	q["market_gaps"] = fmt.Sprintf("What unmet needs and gaps exist in the %s market for %s?", s.Category, s.Name)

	if s.HasPrice() {
		if len(competitors) > 0 {
			q["pricing_comparison"] = fmt.Sprintf("Compare the price of %s at %s with %s?",
				s.Name, s.Price, strings.Join(competitors, ", "))
		} else {
			q["pricing_landscape"] = fmt.Sprintf("What are typical prices in the %s market compared to %s?", s.Category, s.Price)
		}
	}

	if len(s.KeyMessages) > 0 {
		q["validate_claims"] = fmt.Sprintf("Do customers care about %s in %s products?",
			strings.Join(firstN(s.KeyMessages, 2), ", "), s.Category)
	}

	return q
}

func eventQueries(name string) model.QueryBatch {
	return model.QueryBatch{
		"event_success_history": fmt.Sprintf("What are the attendance numbers and success metrics for %s?", name),
		"attendee_testimonials": fmt.Sprintf("What do attendees say about their experience at %s?", name),
		"event_highlights":      fmt.Sprintf("What are the notable achievements and highlights of %s?", name),
		"organizer_credibility": fmt.Sprintf("Who organizes %s and what is their reputation?", name),
		"networking_value":      fmt.Sprintf("What networking and career opportunities does %s provide?", name),
	}
}

func jobQueries(name string) model.QueryBatch {
	return model.QueryBatch{
		"company_culture":       fmt.Sprintf("What is the company culture like at %s?", name),
		"work_life_balance":     fmt.Sprintf("What is the work-life balance at %s?", name),
		"compensation_benefits": fmt.Sprintf("What are the salary and benefits at %s?", name),
		"career_growth":         fmt.Sprintf("What career growth opportunities does %s offer?", name),
		"employee_satisfaction": fmt.Sprintf("What do employees say about working at %s?", name),
		"company_stability":     fmt.Sprintf("What is the financial stability and outlook of %s?", name),
	}
}

func firstN[T any](in []T, n int) []T {
	if len(in) > n {
		return in[:n]
	}
	return in
}
