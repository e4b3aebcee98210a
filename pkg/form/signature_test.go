package form_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sindegeologico/sindeform/pkg/form"
)

func TestSlot_Field(t *testing.T) {
	t.Parallel()

	f, err := form.SlotAffiliation.Field()
	require.NoError(t, err)
	require.Equal(t, form.FieldFirma1, f)

	f, err = form.SlotAuthorization.Field()
	require.NoError(t, err)
	require.Equal(t, form.FieldFirma2, f)

	_, err = form.Slot(7).Field()
	require.ErrorIs(t, err, form.ErrUnknownSlot)
}

func TestIsImageType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		contentType string
		want        bool
	}{
		{"image/png", true},
		{"image/jpeg", true},
		{" IMAGE/PNG ", true},
		{"application/pdf", false},
		{"text/plain", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, form.IsImageType(tt.contentType))
		})
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk gone") }

func TestReadDataURL(t *testing.T) {
	t.Parallel()

	got, err := form.ReadDataURL(strings.NewReader("abc"), "image/PNG; charset=binary")
	require.NoError(t, err)
	require.Equal(t, "data:image/png;base64,YWJj", got)

	_, err = form.ReadDataURL(strings.NewReader("abc"), "text/plain")
	require.ErrorIs(t, err, form.ErrNotImage)

	_, err = form.ReadDataURL(failingReader{}, "image/png")
	require.Error(t, err)
	require.NotErrorIs(t, err, form.ErrNotImage)
}

func TestDecodeDataURL(t *testing.T) {
	t.Parallel()

	mediaType, raw, err := form.DecodeDataURL(form.EncodeDataURL("image/jpeg", []byte{0xff, 0xd8}))
	require.NoError(t, err)
	require.Equal(t, "image/jpeg", mediaType)
	require.Equal(t, []byte{0xff, 0xd8}, raw)

	for _, bad := range []string{
		"",
		"image/png;base64,AAAA",
		"data:image/png;base64",
		"data:image/png,AAAA",
		"data:image/png;base64,***",
	} {
		_, _, err := form.DecodeDataURL(bad)
		require.ErrorIs(t, err, form.ErrInvalidDataURL, bad)
	}
}

func TestWithSignature(t *testing.T) {
	t.Parallel()

	const img = "data:image/png;base64,AAAA"

	r, err := form.WithSignature(form.Record{}, form.SlotAffiliation, img)
	require.NoError(t, err)
	require.Equal(t, img, r.Firma1Image)
	require.Equal(t, img, r.Firma2Image)

	r, err = form.WithSignature(form.Record{Firma1Image: img}, form.SlotAuthorization, "data:image/png;base64,BBBB")
	require.NoError(t, err)
	require.Equal(t, img, r.Firma1Image)
	require.Equal(t, "data:image/png;base64,BBBB", r.Firma2Image)

	_, err = form.WithSignature(form.Record{}, form.Slot(0), img)
	require.ErrorIs(t, err, form.ErrUnknownSlot)
}

func TestWithoutSignature(t *testing.T) {
	t.Parallel()

	const img = "data:image/png;base64,AAAA"
	both := form.Record{Firma1Image: img, Firma2Image: img}

	r, err := form.WithoutSignature(both, form.SlotAffiliation)
	require.NoError(t, err)
	require.Empty(t, r.Firma1Image)
	require.Empty(t, r.Firma2Image)

	r, err = form.WithoutSignature(both, form.SlotAuthorization)
	require.NoError(t, err)
	require.Equal(t, img, r.Firma1Image)
	require.Empty(t, r.Firma2Image)
}
