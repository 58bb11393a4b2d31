package response

import (
	"fmt"
	"strings"
)

const ContentTypeHeader = "Content-type"

const pageHead = `<!DOCTYPE html>
<html lang=en>
  <meta charset=utf-8>
  <meta name=viewport content='initial-scale=1, minimum-scale=1, width=device-width'>
`

const pageTail = "</body></html>\n"

// Files advertised on the landing page.
var LandingLinks = []string{
	"report.pdf",
	"README.txt",
	"webserver.c",
	"image.jpg",
	"Makefile",
}

// page renders the shared head, a title and the body paragraphs, one
// per line. The last newline is left off so callers decide where the
// closing tags go.
func page(title string, paragraphs ...string) string {
	var sb strings.Builder
	sb.WriteString(pageHead)
	fmt.Fprintf(&sb, "  <title>%s</title>", title)
	for _, p := range paragraphs {
		sb.WriteString("\n  ")
		sb.WriteString(p)
	}
	return sb.String()
}

func errorPage(code HttpCode, title, message string) []byte {
	body := page(
		fmt.Sprintf("Error %d (%s)!!", int(code), title),
		fmt.Sprintf("<p><b>%d.</b> <ins>That’s an error.</ins></p>", int(code)),
		message,
	)
	return []byte(body + pageTail)
}

func htmlResponse(code HttpCode) *Response {
	return New(code).SetHeader(ContentTypeHeader, "text/html")
}

// SuccessHeader is the head of a file response; the file bytes follow
// it on the wire.
func SuccessHeader(contentType string) *Response {
	return New(Ok).SetHeader(ContentTypeHeader, contentType)
}

// LandingPage is served for "/". Every link points back at port.
func LandingPage(port int) *Response {
	paragraphs := []string{
		"",
		"<p>This server provides you html, jpg, pdf, and jpeg files.</p>",
	}
	for _, name := range LandingLinks {
		paragraphs = append(paragraphs, fmt.Sprintf(
			`<p>You may try to access <a href="http://localhost:%d/%s">%s</a></p>`, port, name, name))
	}
	body := page("Webserver", paragraphs...) + "\n" + pageTail
	return htmlResponse(Ok).SetBody([]byte(body))
}

func BadRequestPage() *Response {
	return htmlResponse(BadRequest).SetBody(errorPage(BadRequest, "Bad Request",
		"<p>This server didn't understand your request.</p>"))
}

func NotFoundPage(path string, reflect Reflector) *Response {
	return htmlResponse(NotFound).SetBody(errorPage(NotFound, "Not Found", fmt.Sprintf(
		"<p>The requested URL <code>%s</code> was not found on this server.  <ins>That’s all we know.</ins></p>",
		reflect(path))))
}

func BadMethodPage(method string, reflect Reflector) *Response {
	return htmlResponse(NotImplemented).SetBody(errorPage(NotImplemented, "Not Found", fmt.Sprintf(
		"<p>The method <code>%s</code> was not implemented on this server. </p>",
		reflect(method))))
}
