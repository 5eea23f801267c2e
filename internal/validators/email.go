package validators

import (
	"net"
	"strings"
)

// EmailDomainResolves confere se o domínio do e-mail existe no DNS
// (MX ou, na falta dele, A/AAAA). Sintaxe fina fica com o binding do
// gin; aqui só barramos domínio inventado no cadastro.
func EmailDomainResolves(email string) bool {
	domain, ok := domainOf(email)
	if !ok {
		return false
	}

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}

	ips, err := net.LookupIP(domain)
	return err == nil && len(ips) > 0
}

func domainOf(email string) (string, bool) {
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return "", false
	}
	return email[at+1:], true
}
