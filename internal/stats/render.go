package stats

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"
)

// OutputFormat selects how summaries are written.
type OutputFormat string

// Supported output formats.
const (
	OutputFormatTable OutputFormat = "table"
	OutputFormatJSON  OutputFormat = "json"
	OutputFormatYAML  OutputFormat = "yaml"
)

const (
	tableHeaderConstant               = "NAME\tCOMMITS\tBRANCH"
	tableRowTemplateConstant          = "%s\t%s\t%s\n"
	tableMinimumWidthConstant         = 0
	tableTabWidthConstant             = 4
	tablePaddingConstant              = 2
	tablePaddingCharacterConstant     = ' '
	jsonIndentConstant                = "  "
	unsupportedFormatTemplateConstant = "unsupported output format %q"
	renderErrorTemplateConstant       = "unable to render %s output: %w"
)

// OutputFormats lists the supported formats with the default first.
func OutputFormats() []string {
	return []string{string(OutputFormatTable), string(OutputFormatJSON), string(OutputFormatYAML)}
}

// ParseOutputFormat normalizes a configured format. Empty input selects the table format.
func ParseOutputFormat(value string) (OutputFormat, error) {
	normalized := OutputFormat(strings.ToLower(strings.TrimSpace(value)))
	switch normalized {
	case "":
		return OutputFormatTable, nil
	case OutputFormatTable, OutputFormatJSON, OutputFormatYAML:
		return normalized, nil
	default:
		return "", fmt.Errorf(unsupportedFormatTemplateConstant, value)
	}
}

// RenderSummaries writes summaries ordered by name. JSON and YAML output is an object keyed by name.
func RenderSummaries(writer io.Writer, format OutputFormat, summaries Summaries) error {
	switch format {
	case OutputFormatJSON:
		return renderJSON(writer, format, summaries)
	case OutputFormatYAML:
		return renderYAML(writer, format, summaries)
	case OutputFormatTable, "":
		return renderTable(writer, summaries.Ordered())
	default:
		return fmt.Errorf(unsupportedFormatTemplateConstant, format)
	}
}

// RenderSummary writes a single summary.
func RenderSummary(writer io.Writer, format OutputFormat, summary Summary) error {
	switch format {
	case OutputFormatJSON:
		return renderJSON(writer, format, summary)
	case OutputFormatYAML:
		return renderYAML(writer, format, summary)
	case OutputFormatTable, "":
		return renderTable(writer, []Summary{summary})
	default:
		return fmt.Errorf(unsupportedFormatTemplateConstant, format)
	}
}

func renderTable(writer io.Writer, summaries []Summary) error {
	tableWriter := tabwriter.NewWriter(writer, tableMinimumWidthConstant, tableTabWidthConstant, tablePaddingConstant, tablePaddingCharacterConstant, 0)
	if _, writeError := fmt.Fprintln(tableWriter, tableHeaderConstant); writeError != nil {
		return fmt.Errorf(renderErrorTemplateConstant, OutputFormatTable, writeError)
	}
	for _, summary := range summaries {
		if _, writeError := fmt.Fprintf(tableWriter, tableRowTemplateConstant, summary.Name, humanize.Comma(int64(summary.Commits)), summary.Branch); writeError != nil {
			return fmt.Errorf(renderErrorTemplateConstant, OutputFormatTable, writeError)
		}
	}
	if flushError := tableWriter.Flush(); flushError != nil {
		return fmt.Errorf(renderErrorTemplateConstant, OutputFormatTable, flushError)
	}
	return nil
}

func renderJSON(writer io.Writer, format OutputFormat, value any) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", jsonIndentConstant)
	if encodeError := encoder.Encode(value); encodeError != nil {
		return fmt.Errorf(renderErrorTemplateConstant, format, encodeError)
	}
	return nil
}

func renderYAML(writer io.Writer, format OutputFormat, value any) error {
	encoder := yaml.NewEncoder(writer)
	encoder.SetIndent(2)
	if encodeError := encoder.Encode(value); encodeError != nil {
		return fmt.Errorf(renderErrorTemplateConstant, format, encodeError)
	}
	if closeError := encoder.Close(); closeError != nil {
		return fmt.Errorf(renderErrorTemplateConstant, format, closeError)
	}
	return nil
}
