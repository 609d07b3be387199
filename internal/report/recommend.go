package report

import "github.com/wheemin1/MobileSiteCheck/pkg/models"

// rule is one entry of the recommendation rule table. When trigger
// returns true the fixed recommendation is appended to the output.
type rule struct {
	trigger func(*models.AnalysisReport) bool
	rec     models.Recommendation
}

// primaryRules is the canonical ordered rule list. Emission order is rule
// order; the sequence is never re-sorted by priority.
var primaryRules = []rule{
	{
		trigger: func(r *models.AnalysisReport) bool { return !r.MobileViewport.Passed },
		rec: models.Recommendation{
			Type:        "viewport",
			Title:       "Configure the mobile viewport",
			Description: "The page does not render at the correct size on mobile devices.",
			Priority:    models.PriorityHigh,
			Solutions: []string{
				`Add a <meta name="viewport" content="width=device-width, initial-scale=1.0"> tag`,
				"Implement a responsive design",
				"Use CSS media queries to adapt to different screen sizes",
			},
		},
	},
	{
		trigger: func(r *models.AnalysisReport) bool { return !r.TouchElements.Passed },
		rec: models.Recommendation{
			Type:        "touch-targets",
			Title:       "Increase spacing between touch targets",
			Description: "Tappable elements are placed too close together.",
			Priority:    models.PriorityMedium,
			Solutions: []string{
				"Keep at least 44px between buttons and links",
				"Size touch targets to 44px or larger",
				"Use CSS padding and margin to separate interactive elements",
			},
		},
	},
	{
		trigger: func(r *models.AnalysisReport) bool { return !r.TextSize.Passed },
		rec: models.Recommendation{
			Type:        "font-size",
			Title:       "Use legible font sizes",
			Description: "Text on the page is too small to read comfortably on mobile.",
			Priority:    models.PriorityMedium,
			Solutions: []string{
				"Use at least 16px for body text",
				"Prefer 18px or larger for important text",
				"Set font-size: 16px or 1rem in CSS",
			},
		},
	},
	{
		trigger: func(r *models.AnalysisReport) bool { return !r.ContentWidth.Passed },
		rec: models.Recommendation{
			Type:        "content-width",
			Title:       "Size content to the viewport",
			Description: "The page requires horizontal scrolling on mobile.",
			Priority:    models.PriorityHigh,
			Solutions: []string{
				"Constrain content with CSS max-width: 100%",
				"Apply overflow-x: hidden to prevent horizontal scrolling",
				"Build responsive layouts with Flexbox or Grid",
			},
		},
	},
	{
		trigger: func(r *models.AnalysisReport) bool { return r.CoreWebVitals.LCP.Score < 0.9 },
		rec: models.Recommendation{
			Type:        "lcp",
			Title:       "Improve loading performance",
			Description: "Largest Contentful Paint is slow.",
			Priority:    models.PriorityHigh,
			Solutions: []string{
				"Optimize and compress images",
				"Preload critical resources",
				"Reduce server response time",
				"Serve static assets from a CDN",
			},
		},
	},
	{
		trigger: func(r *models.AnalysisReport) bool { return r.CoreWebVitals.CLS.Score < 0.9 },
		rec: models.Recommendation{
			Type:        "cls",
			Title:       "Improve layout stability",
			Description: "The layout shifts while the page is loading.",
			Priority:    models.PriorityMedium,
			Solutions: []string{
				"Set explicit dimensions on images and ads",
				"Reserve space for dynamic content up front",
				"Optimize web font loading",
				"Animate only with CSS transform and opacity",
			},
		},
	},
	{
		trigger: func(r *models.AnalysisReport) bool { return r.CoreWebVitals.INP.Score < 0.9 },
		rec: models.Recommendation{
			Type:        "inp",
			Title:       "Improve interaction responsiveness",
			Description: "The page responds slowly to user input.",
			Priority:    models.PriorityMedium,
			Solutions: []string{
				"Remove unnecessary JavaScript",
				"Optimize event handlers",
				"Apply code splitting and lazy loading",
				"Move heavy work to Web Workers",
			},
		},
	},
}

// Category thresholds for the extended rule set.
const (
	performanceThreshold   = 70
	accessibilityThreshold = 80
)

// extendedRules run after the primary rules, only for reports produced by
// the simulated provider.
var extendedRules = []rule{
	{
		trigger: func(r *models.AnalysisReport) bool { return r.PerformanceScore < performanceThreshold },
		rec: models.Recommendation{
			Type:        "performance",
			Title:       "Improve overall performance",
			Description: "The site needs general performance optimization.",
			Priority:    models.PriorityHigh,
			Solutions: []string{
				"Serve images as WebP or AVIF",
				"Reduce JavaScript bundle size",
				"Leverage browser caching",
				"Remove unused plugins and scripts",
			},
		},
	},
	{
		trigger: func(r *models.AnalysisReport) bool { return r.AccessibilityScore < accessibilityThreshold },
		rec: models.Recommendation{
			Type:        "accessibility",
			Title:       "Improve accessibility",
			Description: "The site needs accessibility improvements.",
			Priority:    models.PriorityMedium,
			Solutions: []string{
				"Add alt attributes to images",
				"Ensure sufficient color contrast",
				"Support keyboard navigation",
				"Improve screen reader compatibility",
			},
		},
	},
}

// Derive evaluates the primary rule table against normalized metrics and
// returns the triggered recommendations in rule order. Pure and
// deterministic: identical input yields an identical sequence, and a
// report with every check passing and all vitals scoring 0.9 or better
// yields an empty (non-nil) slice.
func Derive(r *models.AnalysisReport) []models.Recommendation {
	return evaluate(r, primaryRules)
}

// DeriveExtended evaluates the primary rules followed by the general
// performance and accessibility rules. Used for simulated-provider
// results only.
func DeriveExtended(r *models.AnalysisReport) []models.Recommendation {
	recs := evaluate(r, primaryRules)
	return append(recs, evaluate(r, extendedRules)...)
}

func evaluate(r *models.AnalysisReport, rules []rule) []models.Recommendation {
	recs := make([]models.Recommendation, 0, len(rules))
	for _, rl := range rules {
		if rl.trigger(r) {
			recs = append(recs, rl.rec)
		}
	}
	return recs
}
