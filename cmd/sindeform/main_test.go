package main

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sindegeologico/sindeform/pkg/form"
	"github.com/sindegeologico/sindeform/pkg/pdfdoc"
)

func run(t *testing.T, ctx context.Context, args ...string) (string, error) {
	t.Helper()

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	return out.String(), err
}

func decodeView(t *testing.T, out string) formView {
	t.Helper()

	var v formView
	require.NoError(t, json.Unmarshal([]byte(out), &v), out)
	return v
}

func TestVersionCmd(t *testing.T) {
	t.Parallel()

	out, err := run(t, context.Background(), "version")
	require.NoError(t, err)
	require.Contains(t, out, "sindeform version dev")
}

func TestFormCmd_Workflow(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := t.TempDir()

	out, err := run(t, ctx, "--store", store, "form", "show")
	require.NoError(t, err)
	v := decodeView(t, out)
	require.Equal(t, "editable", v.Mode)
	require.Equal(t, form.DefaultAuthorization, v.Form.AutorizacionTexto)

	out, err = run(t, ctx, "--store", store, "form", "set", "nombres=Ana", "apellidos=Gómez", "cc_1=123", "de_1=Bogotá")
	require.NoError(t, err)
	v = decodeView(t, out)
	require.Equal(t, "review", v.Mode)
	require.Equal(t, "Ana Gómez", v.Form.Yo)
	require.Equal(t, "123", v.Form.CC2)
	require.Equal(t, form.MarkerMissing, v.Form.Firma1Image)

	out, err = run(t, ctx, "--store", store, "form", "show")
	require.NoError(t, err)
	require.Equal(t, "Ana Gómez", decodeView(t, out).Form.Yo)

	out, err = run(t, ctx, "--store", store, "form", "reset")
	require.NoError(t, err)
	require.Contains(t, out, "Formulario reiniciado.")

	out, err = run(t, ctx, "--store", store, "form", "show")
	require.NoError(t, err)
	v = decodeView(t, out)
	require.Equal(t, "editable", v.Mode)
	require.Empty(t, v.Form.Nombres)
}

func TestFormCmd_SetRejected(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		arg  string
		want error
	}{
		{name: "derived", arg: "yo=Otra", want: form.ErrReadOnlyField},
		{name: "unknown", arg: "edad=30", want: form.ErrUnknownField},
		{name: "no value", arg: "nombres", want: errBadAssignment},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := run(t, context.Background(), "--store", t.TempDir(), "form", "set", tt.arg)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestFormCmd_Signatures(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := t.TempDir()

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 30, 10))))
	sig := filepath.Join(t.TempDir(), "firma.png")
	require.NoError(t, os.WriteFile(sig, buf.Bytes(), 0o600))

	out, err := run(t, ctx, "--store", store, "form", "sign", sig)
	require.NoError(t, err)
	v := decodeView(t, out)
	require.Equal(t, form.MarkerLoaded, v.Form.Firma1Image)
	require.Equal(t, form.MarkerLoaded, v.Form.Firma2Image)

	out, err = run(t, ctx, "--store", store, "form", "unsign", "--slot", "2")
	require.NoError(t, err)
	v = decodeView(t, out)
	require.Equal(t, form.MarkerLoaded, v.Form.Firma1Image)
	require.Equal(t, form.MarkerMissing, v.Form.Firma2Image)

	notImage := filepath.Join(t.TempDir(), "notas.txt")
	require.NoError(t, os.WriteFile(notImage, []byte("hola"), 0o600))
	out, err = run(t, ctx, "--store", store, "form", "sign", "--slot", "2", notImage)
	require.NoError(t, err)
	require.Equal(t, form.MarkerMissing, decodeView(t, out).Form.Firma2Image)

	out, err = run(t, ctx, "--store", store, "form", "unsign")
	require.NoError(t, err)
	v = decodeView(t, out)
	require.Equal(t, form.MarkerMissing, v.Form.Firma1Image)
	require.Equal(t, form.MarkerMissing, v.Form.Firma2Image)
}

func TestPdfCmd(t *testing.T) {
	t.Parallel()

	out := t.TempDir()
	stdout, err := run(t, context.Background(), "--store", t.TempDir(), "pdf", "--out", out)
	require.NoError(t, err)

	path := filepath.Join(out, pdfdoc.FileName)
	require.Contains(t, stdout, path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestPdfCmd_Stdout(t *testing.T) {
	t.Parallel()

	stdout, err := run(t, context.Background(), "--store", t.TempDir(), "pdf", "--stdout")
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix([]byte(stdout), []byte("%PDF-")))
}

func TestSendCmd(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true,"message":"Correo enviado a office@example.com"}`))
	}))
	t.Cleanup(srv.Close)

	out := t.TempDir()
	stdout, err := run(t, context.Background(), "--store", t.TempDir(), "--api", srv.URL, "send", "--out", out)
	require.NoError(t, err)
	require.Contains(t, stdout, "Correo enviado a office@example.com")
	require.Contains(t, stdout, filepath.Join(out, pdfdoc.FileName))
}

func TestSendCmd_RelayDown(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	stdout, err := run(t, context.Background(), "--store", t.TempDir(), "--api", url, "send")
	require.NoError(t, err)
	require.Contains(t, stdout, "Error enviando correo.")
}

func TestServeCmd_StopsWithContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := run(t, ctx, "serve", "--port", "0")
	require.NoError(t, err)
}
