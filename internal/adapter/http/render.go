package http

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/couchcryptid/air-quality-predictor/internal/domain"
)

//go:embed templates/index.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// formField describes one input on the form page.
type formField struct {
	Name    string
	Label   string
	Example string
}

// formFields follows domain.FeatureNames order.
var formFields = [domain.NumFeatures]formField{
	{Name: "co", Label: "CO(GT)", Example: "2.6"},
	{Name: "benzene", Label: "C6H6(GT)", Example: "11.88"},
	{Name: "nox", Label: "NOx(GT)", Example: "166.0"},
	{Name: "no2", Label: "NO2(GT)", Example: "113.0"},
	{Name: "temp", Label: "Temperature (T)", Example: "13.6"},
	{Name: "rh", Label: "Relative Humidity (RH)", Example: "48.87"},
	{Name: "ah", Label: "Absolute Humidity (AH)", Example: "0.75"},
}

// page is the render state: at most one of Result and Error is set.
type page struct {
	Fields []formField
	Result *domain.Prediction
	Error  string
}

func emptyPage() page {
	return page{Fields: formFields[:]}
}

func resultPage(p domain.Prediction) page {
	pg := emptyPage()
	pg.Result = &p
	return pg
}

func errorPage(msg string) page {
	pg := emptyPage()
	pg.Error = msg
	return pg
}

// renderPage executes the template into a buffer first so a template error
// never leaves a half-written response.
func renderPage(pg page) ([]byte, error) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, pg); err != nil {
		return nil, fmt.Errorf("render page: %w", err)
	}
	return buf.Bytes(), nil
}

// userMessage turns a prediction error into text suitable for the page.
func userMessage(err error) string {
	var missing *domain.MissingFieldError
	if errors.As(err, &missing) {
		return "Missing required field: " + missing.Field
	}
	var parse *domain.ParseError
	if errors.As(err, &parse) {
		return fmt.Sprintf("Field %s must be a number, got %q", parse.Field, parse.Value)
	}
	return "The model could not produce a prediction. Please try again later."
}

// statusFor maps a prediction error to an HTTP status.
func statusFor(err error) int {
	if domain.IsClientError(err) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
