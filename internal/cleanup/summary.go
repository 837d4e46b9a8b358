package cleanup

import (
	"bytes"
	"text/template"
)

type summaryData struct {
	Name      string
	Installed bool
}

var summaryTemplate = template.Must(template.New("summary").Parse(`Your project is now "{{.Name}}".

Next steps:
{{- if .Installed }}
  1. npm start
{{- else }}
  1. npm install
  2. npm start
{{- end }}`))

// renderSummary produces the final next-step guidance. The wording
// differs depending on whether packages were installed during the run.
func renderSummary(data summaryData) (string, error) {
	var buf bytes.Buffer
	if err := summaryTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
