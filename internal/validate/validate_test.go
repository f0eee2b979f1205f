package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateRUT(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		rut  string
		want bool
	}{
		{name: "valid with dots and dash", rut: "20.142.499-2", want: true},
		{name: "valid without formatting", rut: "201424992", want: true},
		{name: "valid repeated digits", rut: "11111111-1", want: true},
		{name: "valid with K verifier", rut: "20.347.878-K", want: true},
		{name: "valid with lowercase k", rut: "20347878-k", want: true},
		{name: "wrong check digit", rut: "12345678-9", want: false},
		{name: "letters only", rut: "abc-def", want: false},
		{name: "empty", rut: "", want: false},
		{name: "too short", rut: "1234-5", want: false},
		{name: "too long", rut: "123.456.789-01", want: false},
		{name: "k inside body", rut: "1k111111-1", want: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ValidateRUT(tt.rut))
		})
	}
}

func TestValidateRUT_FormattingInsensitive(t *testing.T) {
	t.Parallel()

	pairs := [][2]string{
		{"20.142.499-2", "201424992"},
		{"11.111.111-1", "11111111-1"},
		{"12.345.678-9", "123456789"},
	}
	for _, p := range pairs {
		assert.Equal(t, ValidateRUT(p[0]), ValidateRUT(p[1]), "formatted %q vs stripped %q", p[0], p[1])
	}
}

func TestValidateEmail(t *testing.T) {
	t.Parallel()

	assert.True(t, ValidateEmail("cliente@cliente.com"))
	assert.True(t, ValidateEmail("a.b@dominio.cl"))
	assert.False(t, ValidateEmail("sin-arroba"))
	assert.False(t, ValidateEmail("dos espacios@x.cl"))
	assert.False(t, ValidateEmail(""))
}

func TestValidateChileanPhone(t *testing.T) {
	t.Parallel()

	assert.True(t, ValidateChileanPhone("+56912345678"))
	assert.True(t, ValidateChileanPhone("56912345678"))
	assert.True(t, ValidateChileanPhone("912345678"))
	assert.False(t, ValidateChileanPhone("812345678"))
	assert.False(t, ValidateChileanPhone("1234"))
	assert.False(t, ValidateChileanPhone(""))
}
