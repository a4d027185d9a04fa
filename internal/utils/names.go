package utils

import (
	"fmt"
	"mime"
	"path"
	"regexp"
	"strings"
)

var dispositionFilename = regexp.MustCompile(`(?i)filename="?([^";]+)"?`)

// FilenameFromDisposition extracts the file name of a Content-Disposition
// header, or returns def. Directory parts are dropped.
func FilenameFromDisposition(header, def string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return def
	}

	if _, params, err := mime.ParseMediaType(header); err == nil {
		if fn := strings.TrimSpace(params["filename"]); fn != "" {
			return cleanName(fn, def)
		}
	}

	if m := dispositionFilename.FindStringSubmatch(header); len(m) > 1 {
		return cleanName(m[1], def)
	}
	return def
}

func ChargedFinesPDFName(policeID string) string {
	return fmt.Sprintf("charged_fines_by_%s.pdf", strings.TrimSpace(policeID))
}

func cleanName(name, def string) string {
	name = strings.TrimSpace(strings.ReplaceAll(name, `\`, "/"))
	base := path.Base(name)
	if base == "" || base == "." || base == "/" {
		return def
	}
	return base
}
