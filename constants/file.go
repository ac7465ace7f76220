package constants

import "strings"

// Source formats understood by the text source.
const (
	PDF   = "PDF"
	HTML  = "HTML"
	TEXT  = "TEXT"
	IMAGE = "IMAGE"
)

// Output formats understood by the export service.
const (
	XLSX = "XLSX"
	CSV  = "CSV"
	JSON = "JSON"
	YAML = "YAML"
)

// SourceExtensions maps allowed input extensions (lowercase, no dot) to a source format.
var SourceExtensions = map[string]string{
	"pdf":  PDF,
	"html": HTML,
	"htm":  HTML,
	"txt":  TEXT,
	"text": TEXT,
	"md":   TEXT,
	"png":  IMAGE,
	"jpg":  IMAGE,
	"jpeg": IMAGE,
	"tif":  IMAGE,
	"tiff": IMAGE,
}

// OutputExtensions maps allowed output extensions to an output format.
var OutputExtensions = map[string]string{
	"xlsx": XLSX,
	"csv":  CSV,
	"json": JSON,
	"yaml": YAML,
	"yml":  YAML,
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// MapExtToFormat returns the source format for ext, or "" when unsupported.
func MapExtToFormat(ext string) string {
	return SourceExtensions[NormalizeExt(ext)]
}

// MapExtToOutput returns the output format for ext, or "" when unsupported.
func MapExtToOutput(ext string) string {
	return OutputExtensions[NormalizeExt(ext)]
}
