package pipeline

import "github.com/sells-group/adscout/internal/model"

type eventStructurer struct{}

func (eventStructurer) Structure(ev Evidence, out *model.ScrapedData) {
	out.CompanyInfo["event_name"] = ev.Subject.Name

	if success := ev.matching("success"); len(success) > 0 {
		out.EventSuccessMetrics = &model.EventMetrics{
			Attendance: success[0].Answer,
			Sources:    success[0].SourceURLs(maxSources),
		}
	}
	if quotes := ev.matching("testimonial"); len(quotes) > 0 {
		out.AttendeeTestimonials = ExtractLines(quotes[0].Answer, maxTestimonial)
	}
}
