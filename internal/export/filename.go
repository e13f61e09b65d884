package export

import (
	"strings"
	"unicode"
)

// Kind is an export format.
type Kind string

const (
	KindPDF  Kind = "pdf"
	KindDOCX Kind = "docx"
)

const (
	ContentTypePDF  = "application/pdf"
	ContentTypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// ContentType returns the MIME type for k.
func (k Kind) ContentType() string {
	if k == KindDOCX {
		return ContentTypeDOCX
	}
	return ContentTypePDF
}

// FileName derives the download name from the person's name: each whitespace
// character becomes an underscore, "Jane Doe" -> "Jane_Doe_Resume.pdf" or
// "Jane_Doe.docx". Path separators and quotes are replaced too. A blank name
// falls back to "resume".
func FileName(k Kind, personName string) string {
	base := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '/' || r == '\\' || r == '"' {
			return '_'
		}
		return r
	}, strings.TrimSpace(personName))
	if base == "" {
		base = "resume"
	}
	if k == KindDOCX {
		return base + ".docx"
	}
	return base + "_Resume.pdf"
}
