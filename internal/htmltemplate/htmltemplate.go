package htmltemplate

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/rampworks/ramp-gateway/internal/transak"
)

//go:embed tmpl/*.tmpl
var Tmpl embed.FS

func ExecuteHTMLTemplate(templateName string, data interface{}) (string, error) {
	// Define the function map that will be available inside the templates
	funcMap := template.FuncMap{
		"WidgetPageStyle": func() template.HTML {
			return widgetPageStyle
		},
	}

	t, err := template.New("").Funcs(funcMap).ParseFS(Tmpl, "tmpl/*.tmpl")
	if err != nil {
		return "", fmt.Errorf("error parsing embedded template files: %w", err)
	}

	var executedTemplate bytes.Buffer
	err = t.ExecuteTemplate(&executedTemplate, templateName, data)
	if err != nil {
		return "", fmt.Errorf("executing html template: %w", err)
	}

	return executedTemplate.String(), nil
}

// WidgetPageTemplate feeds the configuration form and the script that embeds the widget. AuthPath and
// WidgetURLPath are relative to the page, so the page works behind any prefix.
type WidgetPageTemplate struct {
	Title          string
	Environment    string
	Networks       []transak.Network
	FiatCurrencies []string
	CountryCodes   []string
	MinAmount      float64
	MaxAmount      float64
	DefaultAmount  float64
	AuthPath       string
	WidgetURLPath  string
}

func ExecuteHTMLTemplateForWidgetPage(data WidgetPageTemplate) (string, error) {
	return ExecuteHTMLTemplate("widget_page.tmpl", data)
}

const widgetPageStyle = template.HTML(`
    <style>
        body {
			font-family: Arial, sans-serif;
			line-height: 1.5;
			color: #111111;
			background-color: #f7f7f8;
			margin: 0;
		}
		header {
			display: flex;
			align-items: center;
			gap: 12px;
			padding: 16px 24px;
			background-color: #000000;
			color: #ffffff;
		}
		header h1 {
			font-size: 20px;
			margin: 0;
		}
		.badge {
			font-size: 12px;
			padding: 2px 8px;
			border-radius: 10px;
			background-color: #333333;
		}
		main {
			display: grid;
			grid-template-columns: minmax(280px, 360px) 1fr;
			gap: 24px;
			padding: 24px;
		}
		fieldset {
			border: 1px solid #dddddd;
			border-radius: 8px;
			margin-bottom: 16px;
			background-color: #ffffff;
		}
		label {
			display: block;
			margin: 8px 0;
			font-size: 14px;
		}
		input[type=text], input[type=email], input[type=number], select {
			width: 100%;
			padding: 6px;
			box-sizing: border-box;
		}
		iframe {
			width: 100%;
			height: 680px;
			border: none;
			border-radius: 8px;
			background-color: #ffffff;
		}
		.status[data-state=loading] { color: #555555; }
		.status[data-state=error] { color: #b00020; }
		.error {
			display: flex;
			gap: 8px;
			align-items: center;
			padding: 12px;
			margin: 12px 0;
			border-radius: 6px;
			background-color: #fdecea;
			color: #b00020;
		}
		.error span { flex: 1; }
		.demo {
			padding: 24px;
			border: 1px dashed #999999;
			border-radius: 8px;
			background-color: #ffffff;
		}
		.muted { color: #777777; font-size: 13px; }
    </style>
`)
