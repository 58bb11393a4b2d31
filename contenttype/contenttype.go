package contenttype

import "strings"

const (
	HTML = "text/html"
	Text = "text/plain"
	JPEG = "image/jpeg"
	ICO  = "image/x-ico"
	PDF  = "application/pdf"
)

// Known extensions, lower case. Everything else is served as Text.
var table = map[string]string{
	"jpeg": JPEG,
	"jpg":  JPEG,
	"ico":  ICO,
	"pdf":  PDF,
}

// Extension returns everything after the first '.' in name.
// ok is false when name has no dot at all.
func Extension(name string) (ext string, ok bool) {
	i := strings.IndexByte(name, '.')
	if i < 0 {
		return "", false
	}
	return name[i+1:], true
}

// ForExtension maps an extension to its content type, ignoring case.
func ForExtension(ext string) string {
	if ct, ok := table[strings.ToLower(ext)]; ok {
		return ct
	}
	return Text
}

// ForName classifies a file name. Names without any dot are
// reported as HTML.
func ForName(name string) string {
	ext, ok := Extension(name)
	if !ok {
		return HTML
	}
	return ForExtension(ext)
}
