package render

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/wheemin1/MobileSiteCheck/pkg/models"
)

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Mobile Friendliness Report</title>
<style>
  body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 800px; margin: 0 auto; padding: 20px; }
  .header { text-align: center; margin-bottom: 30px; border-bottom: 2px solid #3B82F6; padding-bottom: 20px; }
  .score-circle { width: 120px; height: 120px; border-radius: 50%; background: linear-gradient(135deg, #10B981, #059669);
    color: white; display: flex; align-items: center; justify-content: center; font-size: 36px; font-weight: bold; margin: 20px auto; }
  .verdict { text-align: center; font-size: 18px; font-weight: bold; }
  .metrics { display: grid; grid-template-columns: repeat(2, 1fr); gap: 20px; margin: 30px 0; }
  .metric { background: #f8f9fa; padding: 20px; border-radius: 8px; text-align: center; }
  .metric h3 { margin: 0 0 10px 0; color: #3B82F6; }
  .metric .value { font-size: 24px; font-weight: bold; }
  .recommendation { background: #fff; border: 1px solid #e5e7eb; border-radius: 8px; padding: 20px; margin-bottom: 20px; }
  .recommendation h4 { color: #1f2937; margin-bottom: 10px; }
  .solutions { list-style: none; padding: 0; }
  .solutions li { padding: 5px 0 5px 20px; position: relative; }
  .solutions li::before { content: "\2022"; color: #3B82F6; font-weight: bold; position: absolute; left: 0; }
  footer { margin-top: 40px; text-align: center; color: #666; font-size: 12px; }
</style>
</head>
<body>
  <div class="header">
    <h1>Mobile Friendliness Report</h1>
    <p><strong>URL:</strong> {{.Report.URL}}</p>
    <p><strong>Analyzed:</strong> {{.Timestamp}}</p>
  </div>

  <div class="score-circle">{{.Report.OverallScore}}</div>
  <p class="verdict">{{.Verdict}}</p>

  <div class="metrics">
    <div class="metric"><h3>Performance</h3><div class="value">{{.Report.PerformanceScore}}</div></div>
    <div class="metric"><h3>Accessibility</h3><div class="value">{{.Report.AccessibilityScore}}</div></div>
    <div class="metric"><h3>Best Practices</h3><div class="value">{{.Report.BestPracticesScore}}</div></div>
    <div class="metric"><h3>SEO</h3><div class="value">{{.Report.SEOScore}}</div></div>
  </div>

  <h2>Recommendations</h2>
  {{range .Report.Recommendations}}
  <div class="recommendation">
    <h4>{{.Title}} ({{.Priority}})</h4>
    <p>{{.Description}}</p>
    <ul class="solutions">
      {{range .Solutions}}<li>{{.}}</li>{{end}}
    </ul>
  </div>
  {{else}}
  <p>No issues found. The page passed every mobile-usability check.</p>
  {{end}}

  <footer><p>Mobile Friendliness Test &mdash; report #{{.Report.ID}}</p></footer>
</body>
</html>
`))

// scoreVerdict maps an overall score to the banner text used in rendered
// documents.
func scoreVerdict(score int) string {
	switch {
	case score >= 90:
		return "Excellent mobile optimization"
	case score >= 70:
		return "Good mobile optimization"
	default:
		return "Mobile optimization needs work"
	}
}

// reportHTML renders the report into the document template.
func reportHTML(report *models.AnalysisReport) ([]byte, error) {
	var buf bytes.Buffer
	err := reportTemplate.Execute(&buf, struct {
		Report    *models.AnalysisReport
		Timestamp string
		Verdict   string
	}{
		Report:    report,
		Timestamp: report.AnalysisTimestamp.Format("2006-01-02 15:04 MST"),
		Verdict:   scoreVerdict(report.OverallScore),
	})
	if err != nil {
		return nil, fmt.Errorf("execute report template: %w", err)
	}
	return buf.Bytes(), nil
}
