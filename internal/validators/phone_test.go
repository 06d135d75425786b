package validators_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leo-otica/otica-erp/internal/validators"
)

func TestDigitsOnlyStripsMask(t *testing.T) {
	assert.Equal(t, "11999998888", validators.DigitsOnly("(11) 99999-8888"))
	assert.Equal(t, "551133334444", validators.DigitsOnly("+55 (11) 3333-4444"))
	assert.Equal(t, "", validators.DigitsOnly("abc"))
}

func TestIsValidPhone(t *testing.T) {
	assert.True(t, validators.IsValidPhone("(11) 99999-8888"))
	assert.True(t, validators.IsValidPhone("1133334444"))
	assert.False(t, validators.IsValidPhone("99999-888"))
	assert.False(t, validators.IsValidPhone(""))
	assert.False(t, validators.IsValidPhone("551199999888812"))
}

func TestIsValidUsername(t *testing.T) {
	assert.True(t, validators.IsValidUsername("maria.silva"))
	assert.True(t, validators.IsValidUsername("joao_99"))
	assert.False(t, validators.IsValidUsername("ab"))
	assert.False(t, validators.IsValidUsername("Maria"))
	assert.False(t, validators.IsValidUsername("maria silva"))
	assert.False(t, validators.IsValidUsername("maria@loja"))
}
