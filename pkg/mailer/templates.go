package mailer

import (
	"embed"
	"io/fs"
)

//go:embed templates
var embedded embed.FS

// AffiliationTemplate is the message sent with every submitted form.
const AffiliationTemplate = "affiliation.md"

// DefaultLayout wraps rendered templates in the branded HTML shell.
const DefaultLayout = "base.html"

// Templates returns the built-in templates, rooted so that layouts live under "layouts/".
func Templates() fs.FS {
	sub, err := fs.Sub(embedded, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}
