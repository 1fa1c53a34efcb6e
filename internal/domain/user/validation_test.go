package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adotefacil/service-adoption/pkg/domain"
)

func TestValidCPF(t *testing.T) {
	assert.True(t, ValidCPF("529.982.247-25"))
	assert.True(t, ValidCPF("52998224725"))
	assert.True(t, ValidCPF("111.444.777-35"))

	assert.False(t, ValidCPF("529.982.247-24"), "wrong second check digit")
	assert.False(t, ValidCPF("529.982.247-15"), "wrong first check digit")
	assert.False(t, ValidCPF("111.111.111-11"), "repeated digits")
	assert.False(t, ValidCPF("123"))
	assert.False(t, ValidCPF(""))
	assert.False(t, ValidCPF("529982247250"), "too many digits")
}

func TestNormalizeCPF(t *testing.T) {
	assert.Equal(t, "52998224725", NormalizeCPF("529.982.247-25"))
	assert.Equal(t, "52998224725", NormalizeCPF(" 52998224725 "))
}

func TestValidEmail(t *testing.T) {
	assert.True(t, ValidEmail("ana@gmail.com"))
	assert.True(t, ValidEmail("ana@OUTLOOK.com.br"))
	assert.True(t, ValidEmail("ana@test.dev"))

	assert.False(t, ValidEmail("ana@corporate.com"), "domain not allow-listed")
	assert.False(t, ValidEmail("not-an-email"))
	assert.False(t, ValidEmail("ana @gmail.com"))
	assert.False(t, ValidEmail(""))
}

func TestValidatePassword(t *testing.T) {
	require.NoError(t, ValidatePassword("Abcdef1@"))
	require.NoError(t, ValidatePassword("Str0ng&longer"))

	tests := []struct {
		name     string
		password string
	}{
		{"too short", "Ab1@x"},
		{"no lower case", "ABCDEF1@"},
		{"no upper case", "abcdef1@"},
		{"no digit", "Abcdefg@"},
		{"no special", "Abcdefg1"},
		{"disallowed character", "Abcdef1@#"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			require.Error(t, err)
			assert.True(t, domain.IsKind(err, domain.KindValidation))
		})
	}
}

func TestNewUser(t *testing.T) {
	u, err := NewUser("Ana", "ana@gmail.com", "52998224725", "hash", "user")
	require.NoError(t, err)
	assert.Equal(t, "Ana", u.Name())
	assert.Equal(t, "ana@gmail.com", u.Email())
	assert.Equal(t, "52998224725", u.CPF())

	_, err = NewUser("Ana", "ana@corporate.com", "52998224725", "hash", "user")
	assert.True(t, domain.IsKind(err, domain.KindValidation))

	_, err = NewUser("Ana", "ana@gmail.com", "11111111111", "hash", "user")
	assert.True(t, domain.IsKind(err, domain.KindValidation))
}
