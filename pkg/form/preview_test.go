package form_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sindegeologico/sindeform/pkg/form"
)

func TestNewPreview(t *testing.T) {
	t.Parallel()

	r := form.Defaults()
	r.Nombres = "Ana"
	r.Firma1Image = "data:image/png;base64,AAAA"

	p := form.NewPreview(r)
	require.Equal(t, form.MarkerLoaded, p.Firma1Image)
	require.Equal(t, form.MarkerMissing, p.Firma2Image)
	require.Equal(t, "Ana", p.Nombres)
	require.Equal(t, form.DefaultAuthorization, p.AutorizacionTexto)
	require.Equal(t, "data:image/png;base64,AAAA", r.Firma1Image, "source record untouched")
}
