package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/gofiber/fiber/v2"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	pageHome      = "home.html"
	pageList      = "list.html"
	pageDetail    = "detail.html"
	pageAdd       = "add.html"
	pageEdit      = "edit.html"
	pageEditImage = "edit-image.html"
	pageDelete    = "delete.html"
)

var templateFuncs = template.FuncMap{
	"lower": strings.ToLower,
	"deref": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
	"selected": func(a, b string) bool { return strings.EqualFold(a, b) },
}

// renderer holds one parsed template set per page, each wrapped in the layout.
type renderer struct {
	pages map[string]*template.Template
}

func newRenderer() (*renderer, error) {
	names := []string{pageHome, pageList, pageDetail, pageAdd, pageEdit, pageEditImage, pageDelete}
	pages := make(map[string]*template.Template, len(names))

	for _, name := range names {
		t, err := template.New("layout.html").
			Funcs(templateFuncs).
			ParseFS(templateFS, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		pages[name] = t
	}

	return &renderer{pages: pages}, nil
}

func (r *renderer) render(c *fiber.Ctx, name string, data fiber.Map) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown template %s", name)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return err
	}

	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}
