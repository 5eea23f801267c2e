package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Endereço malformado reprova antes de qualquer consulta DNS.
func TestEmailDomainResolvesMalformado(t *testing.T) {
	assert.False(t, EmailDomainResolves("sem-arroba"))
	assert.False(t, EmailDomainResolves("@dominio.com"))
	assert.False(t, EmailDomainResolves("ana@"))
	assert.False(t, EmailDomainResolves(""))
}

func TestDomainOf(t *testing.T) {
	d, ok := domainOf("ana@studio.com.br")
	assert.True(t, ok)
	assert.Equal(t, "studio.com.br", d)

	// Último @ manda, como em endereços com aspas.
	d, ok = domainOf(`"a@b"@exemplo.com`)
	assert.True(t, ok)
	assert.Equal(t, "exemplo.com", d)

	_, ok = domainOf("ana")
	assert.False(t, ok)
}
