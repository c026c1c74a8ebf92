package access

import (
	"bytes"
	"io"
	"mime"
	"regexp"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
)

// xmlDeclPrefix bounds how far into the body the XML declaration is looked for
const xmlDeclPrefix = 1024

var (
	utf8BOM = []byte{0xEF, 0xBB, 0xBF}

	xmlEncodingPattern = regexp.MustCompile(`^\s*<\?xml[^>]*?\sencoding\s*=\s*["']([A-Za-z0-9._:-]+)["']`)
)

// decodeBody converts a response body to UTF-8 text. The encoding comes from,
// in order: the Content-Type charset, the XML declaration, the body itself
// when it is valid UTF-8, and finally charset sniffing. It returns the label
// that was used.
func decodeBody(data []byte, contentType string) (string, string, error) {
	if bytes.HasPrefix(data, utf8BOM) {
		return string(data[len(utf8BOM):]), "utf-8", nil
	}

	if label := headerCharset(contentType); label != "" {
		if text, err := decodeLabel(label, data); err == nil {
			return text, label, nil
		}
	}

	if label := xmlDeclaredEncoding(data); label != "" {
		if text, err := decodeLabel(label, data); err == nil {
			return text, label, nil
		}
	}

	if utf8.Valid(data) {
		return string(data), "utf-8", nil
	}

	_, name, _ := charset.DetermineEncoding(data, contentType)
	text, err := decodeLabel(name, data)
	if err != nil {
		return string(data), "", err
	}
	return text, name, nil
}

func headerCharset(contentType string) string {
	if contentType == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return params["charset"]
}

func xmlDeclaredEncoding(data []byte) string {
	if len(data) > xmlDeclPrefix {
		data = data[:xmlDeclPrefix]
	}
	m := xmlEncodingPattern.FindSubmatch(data)
	if m == nil {
		return ""
	}
	return string(m[1])
}

func decodeLabel(label string, data []byte) (string, error) {
	r, err := charset.NewReaderLabel(label, bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	text, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(text), nil
}
