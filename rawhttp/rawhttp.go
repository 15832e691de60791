// Package rawhttp holds helpers for inspecting raw HTTP responses: sniffing the body type,
// prettifying JSON, XML and HTML bodies and dumping responses for debug logs.
package rawhttp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/http/httputil"
	"strings"

	"github.com/beevik/etree"
	"github.com/gabriel-vasile/mimetype"
	"github.com/yosssi/gohtml"
)

// DetectMIME sniffs the body and returns its media type without parameters, e.g. "application/json".
func DetectMIME(body []byte) string {
	if len(bytes.TrimSpace(body)) == 0 {
		return "application/octet-stream"
	}
	mediaType, _, err := mime.ParseMediaType(mimetype.Detect(bytes.TrimSpace(body)).String())
	if err != nil {
		return "application/octet-stream"
	}
	return mediaType
}

// LooksLikeJSON reports whether the body sniffs as JSON.
// JSON arrays and objects are detected from content, the declared Content-Type is not trusted.
func LooksLikeJSON(body []byte) bool {
	return DetectMIME(body) == "application/json"
}

// Prettify will attempt to indent a JSON, XML or HTML body.
// It returns an empty slice when the body is none of these.
func Prettify(body []byte) ([]byte, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return []byte{}, nil
	}

	switch kind := DetectMIME(trimmed); {
	case kind == "application/json":
		var out bytes.Buffer
		if err := json.Indent(&out, trimmed, "", "  "); err != nil {
			return []byte{}, fmt.Errorf("indenting JSON: %w", err)
		}
		return out.Bytes(), nil
	case strings.HasSuffix(kind, "xml") && bytes.HasPrefix(trimmed, []byte("<?xml")):
		doc := etree.NewDocument()
		if err := doc.ReadFromBytes(trimmed); err != nil || doc.Root() == nil {
			return []byte{}, nil
		}
		doc.Indent(1)
		var out bytes.Buffer
		if _, err := doc.WriteTo(&out); err != nil {
			return []byte{}, fmt.Errorf("writing indented XML : %w", err)
		}
		return out.Bytes(), nil
	case kind == "text/html" || bytes.HasPrefix(trimmed, []byte("<")):
		out := gohtml.FormatBytes(trimmed)
		if len(out) > 0 && !bytes.Equal(out, trimmed) {
			return out, nil
		}
	}

	return []byte{}, nil
}

// Snippet returns at most max bytes of the body as a single line string, for error messages.
func Snippet(body []byte, max int) string {
	s := strings.Join(strings.Fields(string(body)), " ")
	if max > 0 && len(s) > max {
		return s[:max] + "..."
	}
	return s
}

// DumpResponse dumps the response headers followed by the prettified body, or the raw body when it cannot be prettified.
// The body is read fully and replaced so it can still be consumed by the caller.
func DumpResponse(res *http.Response) (string, error) {
	headers, err := httputil.DumpResponse(res, false)
	if err != nil {
		return "", fmt.Errorf("dumping response : %w", err)
	}

	var body []byte
	if res.Body != nil {
		body, err = io.ReadAll(res.Body)
		res.Body.Close()
		if err != nil {
			return "", fmt.Errorf("reading response body: %w", err)
		}
	}
	res.Body = io.NopCloser(bytes.NewReader(body))

	pretty, err := Prettify(body)
	if err != nil || len(pretty) == 0 {
		pretty = body
	}
	return string(headers) + string(pretty), nil
}
