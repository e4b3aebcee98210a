package mailer

import (
	"sync"
	"sync/atomic"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
)

func TestRenderer_Render_TextAndHTML(t *testing.T) {
	t.Parallel()

	renderer := NewRenderer(testFS())

	result, err := renderer.Render("base.html", "notice.md", map[string]string{"Name": "Ana"})
	require.NoError(t, err)

	require.Equal(t, "Hola **Ana**", result.Text)
	require.NotContains(t, result.Text, "<strong>")
	require.Contains(t, result.HTML, "<strong>Ana</strong>")
	require.Contains(t, result.HTML, "<html><body>")
	require.Equal(t, "Aviso para {{.Name}}", result.Metadata["Subject"])
}

func TestRenderer_Render_Missing(t *testing.T) {
	t.Parallel()

	renderer := NewRenderer(testFS())

	_, err := renderer.Render("base.html", "nope.md", nil)
	require.ErrorIs(t, err, ErrTemplateNotFound)

	_, err = renderer.Render("nope.html", "notice.md", map[string]string{"Name": "Ana"})
	require.ErrorIs(t, err, ErrLayoutNotFound)
}

func TestRenderer_Render_Affiliation(t *testing.T) {
	t.Parallel()

	renderer := NewRenderer(Templates())

	result, err := renderer.Render(DefaultLayout, AffiliationTemplate, map[string]string{
		"Name":   "",
		"Email":  "ana@example.com",
		"City":   "Medellín",
		"SentAt": "2/1/2025, 3:04:05 a. m.",
	})
	require.NoError(t, err)

	require.Equal(t, "Formulario SINDEGEOLOGICO", result.Metadata["Subject"])
	require.Equal(t, "Se adjunta formulario SINDEGEOLOGICO generado automaticamente.\n"+
		"\n"+
		"Nombre:\n"+
		"Correo: ana@example.com\n"+
		"Ciudad: Medellín\n"+
		"Fecha envio: 2/1/2025, 3:04:05 a. m.", result.Text)
	require.Contains(t, result.HTML, "Correo: ana@example.com<br>")
	require.Contains(t, result.HTML, "Nueva solicitud de afiliación")
}

func TestRenderer_Render_CachesTemplates(t *testing.T) {
	t.Parallel()

	var reads atomic.Int32
	cfs := &countingFS{MapFS: testFS(), reads: &reads}
	renderer := NewRenderer(cfs)

	_, err := renderer.Render("base.html", "notice.md", map[string]string{"Name": "Ana"})
	require.NoError(t, err)
	require.Equal(t, int32(2), reads.Load(), "template and layout are read once")

	_, err = renderer.Render("base.html", "notice.md", map[string]string{"Name": "Luz"})
	require.NoError(t, err)
	require.Equal(t, int32(2), reads.Load(), "second render is served from cache")
}

func TestRenderer_Render_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	renderer := NewRenderer(testFS())

	var wg sync.WaitGroup
	errs := make(chan error, 50)
	for i := range 50 {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			if _, err := renderer.Render("base.html", "notice.md", map[string]int{"Name": id}); err != nil {
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent render failed: %v", err)
	}
}

func TestPlainText(t *testing.T) {
	t.Parallel()

	require.Equal(t, "a\n\nb", plainText("a  \n\t\nb \n\n"))
	require.Equal(t, "x", plainText("x\r\n"))
}

// countingFS wraps MapFS and counts ReadFile calls.
type countingFS struct {
	fstest.MapFS
	reads *atomic.Int32
}

func (c *countingFS) ReadFile(name string) ([]byte, error) {
	c.reads.Add(1)
	return c.MapFS.ReadFile(name)
}
